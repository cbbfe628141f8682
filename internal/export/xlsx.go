// Package export builds the weekly XLSX workbook with submissions, item
// detail and approvals for a date range.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/despachos/equipcheck/internal/models"
)

// WeekRange returns the Monday and Saturday of the week containing ref.
// The working week runs Monday through Saturday.
func WeekRange(ref time.Time) (time.Time, time.Time) {
	dow := int(ref.Weekday()) // Sunday=0
	offset := dow - 1
	if dow == 0 {
		offset = 6
	}
	monday := ref.AddDate(0, 0, -offset)
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, ref.Location())
	saturday := monday.AddDate(0, 0, 5)
	return monday, saturday
}

var submissionHeader = []any{
	"submission_id", "date", "shift", "equipment", "operator_username",
	"operator_name", "global_status", "note", "status", "created_at", "updated_at",
}

var itemHeader = []any{
	"submission_id", "item_index", "section", "item", "status", "comment",
}

var approvalHeader = []any{
	"submission_id", "supervisor_username", "supervisor_name",
	"approved", "notes", "approved_at",
}

// Workbook renders the three-sheet export. Signature and photo blobs stay
// out of the spreadsheet; it is a review artifact, not a backup.
func Workbook(subs []models.Submission, items []models.SubmissionItem, approvals []models.Approval) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, "submissions", submissionHeader, len(subs), func(i int) []any {
		s := subs[i]
		return []any{
			s.ID, s.Date, s.Shift, s.Equipment, s.OperatorUsername,
			s.OperatorName, s.GlobalStatus, s.Note, s.Status,
			s.CreatedAt.Format(time.RFC3339), s.UpdatedAt.Format(time.RFC3339),
		}
	}); err != nil {
		return nil, err
	}

	if err := writeSheet(f, "items", itemHeader, len(items), func(i int) []any {
		it := items[i]
		return []any{it.SubmissionID, it.ItemIndex, it.Section, it.Item, it.Status, it.Comment}
	}); err != nil {
		return nil, err
	}

	if err := writeSheet(f, "approvals", approvalHeader, len(approvals), func(i int) []any {
		a := approvals[i]
		return []any{
			a.SubmissionID, a.SupervisorUsername, a.SupervisorName,
			a.Approved, a.Notes, a.ApprovedAt.Format(time.RFC3339),
		}
	}); err != nil {
		return nil, err
	}

	// excelize creates "Sheet1" by default; the first data sheet replaces it.
	f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, name string, header []any, rows int, row func(int) []any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("sheet %s: %w", name, err)
	}
	if err := setRow(f, name, 1, header); err != nil {
		return err
	}
	for i := 0; i < rows; i++ {
		if err := setRow(f, name, i+2, row(i)); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("sheet %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}
