// Package pdf renders the approved checklist report.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/despachos/equipcheck/internal/models"
)

// Render produces the final A4 report for an approved submission: the
// submission metadata, the per-item detail, the approval block, both
// signatures and the list of attached evidence photos.
func Render(sub *models.Submission, items []models.SubmissionItem, photos []models.Photo, appr *models.Approval) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 14)
	doc.Cell(0, 8, "Equipment Checklist - Approved Report")
	doc.Ln(10)

	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 5, fmt.Sprintf("Equipment: %s", sub.Equipment))
	doc.Ln(5)
	doc.Cell(0, 5, fmt.Sprintf("Date: %s   |   Shift: %s   |   Created: %s",
		sub.Date, sub.Shift, sub.CreatedAt.Format("2006-01-02 15:04:05")))
	doc.Ln(5)
	doc.Cell(0, 5, fmt.Sprintf("Operator: %s (%s)", sub.OperatorName, sub.OperatorUsername))
	doc.Ln(5)
	doc.Cell(0, 5, fmt.Sprintf("Global status: %s", sub.GlobalStatus))
	doc.Ln(7)

	if sub.Note != "" {
		doc.SetFont("Helvetica", "B", 10)
		doc.Cell(0, 5, "Operator note:")
		doc.Ln(5)
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(0, 5, sub.Note, "", "L", false)
		doc.Ln(2)
	}

	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(0, 6, "Item detail")
	doc.Ln(7)
	doc.SetFont("Helvetica", "", 9)
	for _, it := range items {
		line := fmt.Sprintf("- %s | Status: %s", it.Item, it.Status)
		if it.Section != "" {
			line = fmt.Sprintf("- [%s] %s | Status: %s", it.Section, it.Item, it.Status)
		}
		if it.Comment != "" {
			line += fmt.Sprintf(" | Comment: %s", truncate(it.Comment, 60))
		}
		doc.MultiCell(0, 4.5, line, "", "L", false)
	}
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(0, 6, "Supervisor approval")
	doc.Ln(7)
	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 5, fmt.Sprintf("Supervisor: %s (%s)", appr.SupervisorName, appr.SupervisorUsername))
	doc.Ln(5)
	doc.Cell(0, 5, fmt.Sprintf("Approved at: %s   |   Conform: %s",
		appr.ApprovedAt.Format("2006-01-02 15:04:05"), conformLabel(appr.Approved)))
	doc.Ln(5)
	if appr.Notes != "" {
		doc.MultiCell(0, 5, fmt.Sprintf("Remarks: %s", appr.Notes), "", "L", false)
	}
	doc.Ln(4)

	drawSignatures(doc, sub.OperatorSignature, appr.SupervisorSignature)

	if len(photos) > 0 {
		doc.Ln(6)
		doc.SetFont("Helvetica", "B", 11)
		doc.Cell(0, 6, "Evidence (attached photos)")
		doc.Ln(7)
		doc.SetFont("Helvetica", "", 9)
		for _, p := range photos {
			doc.Cell(0, 4.5, fmt.Sprintf("- Item %d: %s", p.ItemIndex, p.Filename))
			doc.Ln(4.5)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawSignatures(doc *gofpdf.Fpdf, operator, supervisor []byte) {
	// Keep the signature block on one page.
	if doc.GetY() > 230 {
		doc.AddPage()
	}

	doc.SetFont("Helvetica", "B", 10)
	y := doc.GetY()
	doc.Text(20, y+5, "Operator signature")
	doc.Text(110, y+5, "Supervisor signature")

	placeSignature(doc, "sig-operator", operator, 20, y+8)
	placeSignature(doc, "sig-supervisor", supervisor, 110, y+8)
	doc.SetY(y + 42)
}

// placeSignature embeds one signature image. A broken image must not
// break the report, so decode failures are silently skipped.
func placeSignature(doc *gofpdf.Fpdf, name string, img []byte, x, y float64) {
	imgType := sniffImageType(img)
	if imgType == "" {
		return
	}
	opts := gofpdf.ImageOptions{ImageType: imgType}
	doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
	if doc.Err() {
		// Reset so the rest of the document still renders.
		doc.ClearError()
		return
	}
	doc.ImageOptions(name, x, y, 75, 30, false, opts, 0, "")
}

func sniffImageType(data []byte) string {
	switch {
	case len(data) > 8 && bytes.Equal(data[:8], []byte("\x89PNG\r\n\x1a\n")):
		return "PNG"
	case len(data) > 3 && bytes.Equal(data[:3], []byte("\xff\xd8\xff")):
		return "JPG"
	default:
		return ""
	}
}

func conformLabel(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
