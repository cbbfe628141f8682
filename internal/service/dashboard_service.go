package service

import (
	"context"

	"github.com/despachos/equipcheck/internal/models"
	"github.com/despachos/equipcheck/internal/repository"
)

type DashboardService struct {
	subs *repository.SubmissionRepo
}

func NewDashboardService(subs *repository.SubmissionRepo) *DashboardService {
	return &DashboardService{subs: subs}
}

type DashboardStats struct {
	Total    int64               `json:"total"`
	Approved int64               `json:"approved"`
	Pending  int64               `json:"pending"`
	Faulty   int64               `json:"faulty"`
	Latest   []models.Submission `json:"latest"`
}

const latestLimit = 20

// Stats aggregates the supervisor dashboard: workflow counters plus the
// most recent submissions (without signature blobs).
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	counts, err := s.subs.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	latest, err := s.subs.Find(ctx, repository.SubmissionFilter{})
	if err != nil {
		return nil, err
	}
	if len(latest) > latestLimit {
		latest = latest[:latestLimit]
	}
	for i := range latest {
		latest[i].OperatorSignature = nil
	}

	return &DashboardStats{
		Total:    counts.Total,
		Approved: counts.Approved,
		Pending:  counts.Pending,
		Faulty:   counts.Faulty,
		Latest:   latest,
	}, nil
}
