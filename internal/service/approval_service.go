package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/despachos/equipcheck/internal/models"
	"github.com/despachos/equipcheck/internal/pdf"
	"github.com/despachos/equipcheck/internal/repository"
	"github.com/despachos/equipcheck/internal/signature"
)

var (
	ErrNotPending  = errors.New("submission is no longer pending")
	ErrNotApproved = errors.New("submission is not approved")
	ErrNoPDF       = errors.New("no report stored for this submission")
)

type ApprovalService struct {
	subs      *repository.SubmissionRepo
	photos    *repository.PhotoRepo
	approvals *repository.ApprovalRepo
	log       zerolog.Logger
}

func NewApprovalService(subs *repository.SubmissionRepo, photos *repository.PhotoRepo, approvals *repository.ApprovalRepo, log zerolog.Logger) *ApprovalService {
	return &ApprovalService{subs: subs, photos: photos, approvals: approvals, log: log}
}

type ApproveInput struct {
	Approved  bool   `json:"approved"`
	Notes     string `json:"notes"`
	Signature string `json:"signature"` // base64 PNG/JPEG
}

// Approve moves a PENDING submission to APPROVED, renders the final PDF
// and stores the approval row. Approving twice fails on the status guard.
func (s *ApprovalService) Approve(ctx context.Context, id, supervisor, supervisorName string, in ApproveInput) (*models.Approval, error) {
	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}
	if sub.Status != models.StatusPending {
		return nil, ErrNotPending
	}

	sigBytes, err := signature.Decode(in.Signature)
	if err != nil {
		return nil, fmt.Errorf("supervisor signature: %w", err)
	}

	items, err := s.subs.ItemsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	photos, err := s.photos.FindBySubmission(ctx, id)
	if err != nil {
		return nil, err
	}

	appr := &models.Approval{
		SubmissionID:        id,
		SupervisorUsername:  supervisor,
		SupervisorName:      supervisorName,
		Approved:            in.Approved,
		Notes:               in.Notes,
		SupervisorSignature: sigBytes,
		ApprovedAt:          time.Now().UTC(),
	}

	start := time.Now()
	report, err := pdf.Render(sub, items, photos, appr)
	if err != nil {
		return nil, err
	}
	appr.PDF = report
	s.log.Info().
		Str("submission", id).
		Int("pdfBytes", len(report)).
		Dur("renderTime", time.Since(start)).
		Msg("approval report rendered")

	ok, err := s.subs.SetStatus(ctx, id, models.StatusPending, models.StatusApproved)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Another supervisor approved between the read and the update.
		return nil, ErrNotPending
	}

	if err := s.approvals.Replace(ctx, appr); err != nil {
		return nil, err
	}
	return appr, nil
}

// PDF returns the stored report for an approved submission.
func (s *ApprovalService) PDF(ctx context.Context, id string) ([]byte, error) {
	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}
	if sub.Status != models.StatusApproved {
		return nil, ErrNotApproved
	}
	appr, err := s.approvals.FindBySubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	if appr == nil || len(appr.PDF) == 0 {
		return nil, ErrNoPDF
	}
	return appr.PDF, nil
}
