package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/repository"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// UserService handles account provisioning. Only USER and SUPPORT
// accounts can be created through the API; MANAGER accounts come from
// seeding.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// CreateUserInput describes account provisioning payload.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// Create provisions a new account with a lowercase-normalized unique
// email.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if input.Role != domain.RoleUser && input.Role != domain.RoleSupport {
		return nil, apperrors.NewValidationError("role must be either USER or SUPPORT")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ToDomainError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return user, nil
}

// List returns all accounts, newest first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return users, nil
}
