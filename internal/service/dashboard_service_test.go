package service

import (
	"context"
	"testing"

	"github.com/despachos/equipcheck/internal/models"
)

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.subSvc.Create(ctx, "op1", "", validInput(t)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	faulty := validInput(t)
	faulty.GlobalStatus = models.ConditionFault
	if _, err := env.subSvc.Create(ctx, "op1", "", faulty); err != nil {
		t.Fatalf("Create faulty failed: %v", err)
	}

	// INOPERATIVE is out of service, not a fault, and must not count.
	down := validInput(t)
	down.GlobalStatus = models.ConditionInoperative
	if _, err := env.subSvc.Create(ctx, "op2", "", down); err != nil {
		t.Fatalf("Create inoperative failed: %v", err)
	}

	stats, err := env.dashSvc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 3 || stats.Pending != 3 || stats.Approved != 0 {
		t.Errorf("unexpected counters: %+v", stats)
	}
	if stats.Faulty != 1 {
		t.Errorf("expected 1 faulty submission, got %d", stats.Faulty)
	}
	if len(stats.Latest) != 3 {
		t.Errorf("expected 3 latest rows, got %d", len(stats.Latest))
	}
	for _, sub := range stats.Latest {
		if sub.OperatorSignature != nil {
			t.Error("latest rows must not carry signature blobs")
		}
	}
}
