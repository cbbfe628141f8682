package service

import (
	"context"
	"errors"
	"testing"

	"github.com/despachos/equipcheck/internal/models"
)

func TestSeedAdminAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.authSvc.SeedAdmin(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("SeedAdmin failed: %v", err)
	}
	// Seeding again is a no-op.
	if err := env.authSvc.SeedAdmin(ctx, "admin", "other"); err != nil {
		t.Fatalf("second SeedAdmin failed: %v", err)
	}

	result, err := env.authSvc.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
	if result.User.Role != models.RoleSupervisor {
		t.Errorf("seeded admin should be a supervisor, got %s", result.User.Role)
	}

	if _, err := env.authSvc.Login(ctx, "admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := env.authSvc.Login(ctx, "nobody", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.userSvc.Upsert(ctx, UpsertUserInput{
		Username: "op1", Password: "secret123", Role: models.RoleOperator, IsActive: false,
	}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if _, err := env.authSvc.Login(ctx, "op1", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("inactive user must not log in, got %v", err)
	}
}
