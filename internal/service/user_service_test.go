package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/domain"
)

func TestCreateUserRejectsManagerRole(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{}, 4)

	_, err := svc.Create(context.Background(), CreateUserInput{
		Name:     "Eve",
		Email:    "eve@example.com",
		Password: "Secret123!",
		Role:     domain.RoleManager,
	})
	assertCode(t, err, "VALIDATION_FAILED")
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	users := &fakeUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u1", Email: email}, nil
		},
	}
	svc := NewUserService(users, 4)

	_, err := svc.Create(context.Background(), CreateUserInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "Secret123!",
		Role:     domain.RoleUser,
	})
	assertCode(t, err, "CONFLICT")
}

func TestCreateUserHashesPassword(t *testing.T) {
	var created *domain.User
	users := &fakeUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, pgx.ErrNoRows
		},
		CreateFn: func(ctx context.Context, user *domain.User) error {
			user.ID = "u1"
			created = user
			return nil
		},
	}
	svc := NewUserService(users, 4)

	user, err := svc.Create(context.Background(), CreateUserInput{
		Name:     "  Alice  ",
		Email:    " Alice@Example.COM ",
		Password: "Secret123!",
		Role:     domain.RoleSupport,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("user not persisted")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if user.Name != "Alice" {
		t.Errorf("name not trimmed: %q", user.Name)
	}
	if user.PasswordHash == "Secret123!" || user.PasswordHash == "" {
		t.Error("password stored unhashed")
	}
	if err := auth.ComparePassword(user.PasswordHash, "Secret123!"); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}
