package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/despachos/equipcheck/internal/models"
)

func TestApproveFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sub, err := env.subSvc.Create(ctx, "op1", "Juan Perez", validInput(t))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// PDF before approval is refused.
	if _, err := env.apprSvc.PDF(ctx, sub.ID); !errors.Is(err, ErrNotApproved) {
		t.Errorf("expected ErrNotApproved, got %v", err)
	}

	appr, err := env.apprSvc.Approve(ctx, sub.ID, "sup1", "Maria Lopez", ApproveInput{
		Approved:  true,
		Notes:     "checked on site",
		Signature: signaturePNG(t),
	})
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if appr.SupervisorUsername != "sup1" || !appr.Approved {
		t.Errorf("unexpected approval: %+v", appr)
	}
	if len(appr.PDF) == 0 || !bytes.HasPrefix(appr.PDF, []byte("%PDF")) {
		t.Error("approval did not produce a PDF report")
	}

	got, err := env.subs.FindByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.Status != models.StatusApproved {
		t.Errorf("expected status APPROVED, got %s", got.Status)
	}

	// Stored report is downloadable.
	report, err := env.apprSvc.PDF(ctx, sub.ID)
	if err != nil {
		t.Fatalf("PDF failed: %v", err)
	}
	if !bytes.Equal(report, appr.PDF) {
		t.Error("stored PDF differs from rendered PDF")
	}
}

func TestApproveTwice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sub, err := env.subSvc.Create(ctx, "op1", "", validInput(t))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	in := ApproveInput{Approved: true, Signature: signaturePNG(t)}
	if _, err := env.apprSvc.Approve(ctx, sub.ID, "sup1", "", in); err != nil {
		t.Fatalf("first Approve failed: %v", err)
	}
	if _, err := env.apprSvc.Approve(ctx, sub.ID, "sup2", "", in); !errors.Is(err, ErrNotPending) {
		t.Errorf("expected ErrNotPending on second approval, got %v", err)
	}
}

func TestApproveValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	in := ApproveInput{Approved: true, Signature: signaturePNG(t)}
	if _, err := env.apprSvc.Approve(ctx, "S00000000000000XXXX", "sup1", "", in); !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("expected ErrSubmissionNotFound, got %v", err)
	}

	sub, err := env.subSvc.Create(ctx, "op1", "", validInput(t))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := env.apprSvc.Approve(ctx, sub.ID, "sup1", "", ApproveInput{Approved: true}); err == nil {
		t.Error("expected error for missing supervisor signature")
	}
	if _, err := env.apprSvc.Approve(ctx, sub.ID, "sup1", "", ApproveInput{Approved: true, Signature: blankPNG(t)}); err == nil {
		t.Error("expected error for blank supervisor signature")
	}

	// Failed attempts must not consume the PENDING status.
	got, _ := env.subs.FindByID(ctx, sub.ID)
	if got.Status != models.StatusPending {
		t.Errorf("submission should still be PENDING, got %s", got.Status)
	}
}
