package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/despachos/equipcheck/internal/auth"
	"github.com/despachos/equipcheck/internal/models"
	"github.com/despachos/equipcheck/internal/repository"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,}$`)

var (
	ErrBadUsername      = errors.New("username must be at least 3 characters of letters, digits, . _ -")
	ErrPasswordRequired = errors.New("password is required when creating a user")
	ErrBadRole          = errors.New("role must be operator or supervisor")
	ErrUserNotFound     = errors.New("user not found")
	ErrAdminProtected   = errors.New("the admin user cannot be deleted")
)

type UserService struct {
	users     *repository.UserRepo
	adminUser string
}

func NewUserService(users *repository.UserRepo, adminUser string) *UserService {
	return &UserService{users: users, adminUser: adminUser}
}

func (s *UserService) List(ctx context.Context) ([]models.UserResponse, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	return out, nil
}

type UpsertUserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
	IsActive bool   `json:"isActive"`
}

// Upsert creates the user when the username is new, otherwise updates role,
// full name and active flag. The password only changes when one is given.
func (s *UserService) Upsert(ctx context.Context, in UpsertUserInput) (*models.UserResponse, error) {
	if !usernamePattern.MatchString(in.Username) {
		return nil, ErrBadUsername
	}
	if in.Role != models.RoleOperator && in.Role != models.RoleSupervisor {
		return nil, ErrBadRole
	}

	existing, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		if in.Password == "" {
			return nil, ErrPasswordRequired
		}
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user := &models.User{
			ID:           uuid.New(),
			Username:     in.Username,
			PasswordHash: hash,
			FullName:     in.FullName,
			Role:         in.Role,
			IsActive:     in.IsActive,
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		resp := user.ToResponse()
		return &resp, nil
	}

	existing.Role = in.Role
	existing.FullName = in.FullName
	existing.IsActive = in.IsActive
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		existing.PasswordHash = hash
	}
	if err := s.users.Update(ctx, existing); err != nil {
		return nil, err
	}
	resp := existing.ToResponse()
	return &resp, nil
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	if username == s.adminUser {
		return ErrAdminProtected
	}
	ok, err := s.users.DeleteByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}
