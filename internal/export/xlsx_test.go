package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/despachos/equipcheck/internal/models"
)

func TestWeekRange(t *testing.T) {
	cases := []struct {
		name     string
		ref      string
		monday   string
		saturday string
	}{
		{"monday", "2026-08-24", "2026-08-24", "2026-08-29"},
		{"wednesday", "2026-08-26", "2026-08-24", "2026-08-29"},
		{"saturday", "2026-08-29", "2026-08-24", "2026-08-29"},
		{"sunday rolls back", "2026-08-30", "2026-08-24", "2026-08-29"},
	}
	for _, tc := range cases {
		ref, _ := time.Parse("2006-01-02", tc.ref)
		mon, sat := WeekRange(ref)
		if mon.Format("2006-01-02") != tc.monday {
			t.Errorf("%s: monday = %s, want %s", tc.name, mon.Format("2006-01-02"), tc.monday)
		}
		if sat.Format("2006-01-02") != tc.saturday {
			t.Errorf("%s: saturday = %s, want %s", tc.name, sat.Format("2006-01-02"), tc.saturday)
		}
	}
}

func TestWorkbook(t *testing.T) {
	now := time.Date(2026, 8, 24, 8, 30, 0, 0, time.UTC)
	subs := []models.Submission{{
		ID:               "S20260824083000ABCD",
		Date:             "2026-08-24",
		Shift:            "day",
		Equipment:        "Excavator 320",
		OperatorUsername: "op1",
		OperatorName:     "Juan Perez",
		GlobalStatus:     models.ConditionOperational,
		Status:           models.StatusApproved,
		CreatedAt:        now,
		UpdatedAt:        now,
	}}
	items := []models.SubmissionItem{
		{SubmissionID: subs[0].ID, ItemIndex: 1, Section: "Engine", Item: "Oil level", Status: models.ConditionOperational},
		{SubmissionID: subs[0].ID, ItemIndex: 2, Section: "Hydraulics", Item: "Hoses", Status: models.ConditionFault, Comment: "slow leak"},
	}
	approvals := []models.Approval{{
		SubmissionID:       subs[0].ID,
		SupervisorUsername: "sup1",
		SupervisorName:     "Maria Lopez",
		Approved:           true,
		ApprovedAt:         now.Add(2 * time.Hour),
	}}

	data, err := Workbook(subs, items, approvals)
	if err != nil {
		t.Fatalf("Workbook failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("submissions")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	if rows[0][0] != "submission_id" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][3] != "Excavator 320" {
		t.Errorf("equipment column wrong: %v", rows[1])
	}

	itemRows, _ := f.GetRows("items")
	if len(itemRows) != 3 {
		t.Errorf("expected header + 2 item rows, got %d", len(itemRows))
	}
	if itemRows[2][5] != "slow leak" {
		t.Errorf("comment column wrong: %v", itemRows[2])
	}

	apprRows, _ := f.GetRows("approvals")
	if len(apprRows) != 2 {
		t.Errorf("expected header + 1 approval row, got %d", len(apprRows))
	}

	// The default Sheet1 must be gone.
	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		t.Error("default Sheet1 was not removed")
	}
}
