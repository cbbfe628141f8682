// Package signature validates hand-drawn signature images submitted as
// base64-encoded rasters.
package signature

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"

	// Signature pads on some tablets export webp.
	_ "golang.org/x/image/webp"
)

var (
	ErrEmpty    = errors.New("signature is required")
	ErrNotImage = errors.New("signature is not a decodable image")
	ErrBlank    = errors.New("signature image is blank")
	ErrTooLarge = errors.New("signature image is too large")
)

// Signature canvases are small; anything beyond this is not a signature.
const maxEncodedLen = 4 << 20

// minInkPixels mirrors the threshold the capture canvas uses before it
// considers a drawing non-empty.
const minInkPixels = 200

// Decode parses a base64 signature, verifies it decodes to an image and
// contains enough ink, and returns the raw image bytes.
func Decode(b64 string) ([]byte, error) {
	if b64 == "" {
		return nil, ErrEmpty
	}
	if len(b64) > maxEncodedLen {
		return nil, ErrTooLarge
	}

	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, ErrNotImage
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrNotImage
	}
	if !hasInk(img) {
		return nil, ErrBlank
	}
	return raw, nil
}

// hasInk counts pixels meaningfully darker than white. A signature drawn
// with a 3px stroke easily clears minInkPixels; an untouched canvas does not.
func hasInk(img image.Image) bool {
	bounds := img.Bounds()
	count := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			// 8-bit luma from the 16-bit channels.
			luma := (299*(r>>8) + 587*(g>>8) + 114*(b>>8)) / 1000
			if luma < 250 {
				count++
				if count >= minInkPixels {
					return true
				}
			}
		}
	}
	return false
}
