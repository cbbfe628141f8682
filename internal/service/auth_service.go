package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/despachos/equipcheck/internal/auth"
	"github.com/despachos/equipcheck/internal/models"
	"github.com/despachos/equipcheck/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	users     *repository.UserRepo
	jwtSecret string
}

func NewAuthService(users *repository.UserRepo, jwtSecret string) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret}
}

type AuthResult struct {
	Token string              `json:"token"`
	User  models.UserResponse `json:"user"`
}

// Login authenticates a user. Unknown users, wrong passwords and
// deactivated accounts all collapse into the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	token, err := auth.GenerateToken(s.jwtSecret, user.ID.String(), user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.ToResponse()}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*models.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	resp := user.ToResponse()
	return &resp, nil
}

// SeedAdmin creates the default supervisor account when the users table
// is empty, so a fresh deployment can be logged into.
func (s *AuthService) SeedAdmin(ctx context.Context, username, password string) error {
	n, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		FullName:     "Administrator",
		Role:         models.RoleSupervisor,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	return s.users.Create(ctx, user)
}
