package service

import (
	"context"
	"errors"
	"time"

	"github.com/despachos/equipcheck/internal/export"
	"github.com/despachos/equipcheck/internal/repository"
)

var (
	ErrBadDateRange = errors.New("end date must not be before start date")
	ErrHalfRange    = errors.New("start and end dates must be given together")
)

type ExportService struct {
	subs      *repository.SubmissionRepo
	approvals *repository.ApprovalRepo
}

func NewExportService(subs *repository.SubmissionRepo, approvals *repository.ApprovalRepo) *ExportService {
	return &ExportService{subs: subs, approvals: approvals}
}

// Weekly builds the XLSX export for [start, end]. Zero times default to
// the Monday–Saturday window of the current week.
func (s *ExportService) Weekly(ctx context.Context, start, end time.Time) ([]byte, error) {
	if start.IsZero() != end.IsZero() {
		return nil, ErrHalfRange
	}
	if start.IsZero() {
		start, end = export.WeekRange(time.Now())
	}
	if end.Before(start) {
		return nil, ErrBadDateRange
	}

	subs, err := s.subs.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.ID)
	}

	items, err := s.subs.ItemsForAll(ctx, ids)
	if err != nil {
		return nil, err
	}
	approvals, err := s.approvals.FindForSubmissions(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Strip signature blobs; the workbook carries review columns only.
	for i := range subs {
		subs[i].OperatorSignature = nil
	}

	return export.Workbook(subs, items, approvals)
}
