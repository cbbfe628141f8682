package signature

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, draw bool) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 120, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 120; x++ {
			img.Set(x, y, color.White)
		}
	}
	if draw {
		for y := 20; y < 40; y++ {
			for x := 10; x < 110; x++ {
				img.Set(x, y, color.Black)
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeValidSignature(t *testing.T) {
	raw, err := Decode(encodePNG(t, true))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(raw) == 0 {
		t.Error("expected raw image bytes")
	}
	if !bytes.HasPrefix(raw, []byte("\x89PNG")) {
		t.Error("returned bytes are not the original PNG")
	}
}

func TestDecodeBlank(t *testing.T) {
	if _, err := Decode(encodePNG(t, false)); !errors.Is(err, ErrBlank) {
		t.Errorf("expected ErrBlank, got %v", err)
	}
}

func TestDecodeEmpty(t *testing.T) {
	if _, err := Decode(""); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode("not-base64!!!"); !errors.Is(err, ErrNotImage) {
		t.Errorf("expected ErrNotImage for bad base64, got %v", err)
	}
	b64 := base64.StdEncoding.EncodeToString([]byte("plain text, no image"))
	if _, err := Decode(b64); !errors.Is(err, ErrNotImage) {
		t.Errorf("expected ErrNotImage for non-image payload, got %v", err)
	}
}

func TestDecodeBarelyInked(t *testing.T) {
	// A handful of dark pixels is still blank.
	img := image.NewRGBA(image.Rect(0, 0, 120, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 120; x++ {
			img.Set(x, y, color.White)
		}
	}
	for i := 0; i < 50; i++ {
		img.Set(i, 30, color.Black)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	b64 := base64.StdEncoding.EncodeToString(buf.Bytes())
	if _, err := Decode(b64); !errors.Is(err, ErrBlank) {
		t.Errorf("expected ErrBlank for 50 inked pixels, got %v", err)
	}
}
