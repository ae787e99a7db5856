package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/config"
	"github.com/spec-kit/ticket-tracker/internal/domain"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 5, BcryptCost: 4}
}

func TestLoginSuccess(t *testing.T) {
	hash, err := auth.HashPassword("Manager123!", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	var requestedEmail string
	users := &fakeUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			requestedEmail = email
			return &domain.User{ID: "m1", Email: email, PasswordHash: hash, Role: domain.RoleManager}, nil
		},
	}
	svc := NewAuthService(testAuthConfig(), users)

	user, token, expiresAt, err := svc.Login(context.Background(), "  Manager@Example.com ", "Manager123!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requestedEmail != "manager@example.com" {
		t.Errorf("email not normalized: %q", requestedEmail)
	}
	if token == "" || expiresAt.IsZero() {
		t.Error("expected a signed token with an expiry")
	}

	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("token does not round-trip: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != domain.RoleManager {
		t.Errorf("claims = %+v, want user %s with MANAGER role", claims, user.ID)
	}
}

// Unknown email and wrong password must read identically.
func TestLoginFailuresAreUniform(t *testing.T) {
	hash, err := auth.HashPassword("correct-password", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := &fakeUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			if email == "known@example.com" {
				return &domain.User{ID: "u1", Email: email, PasswordHash: hash, Role: domain.RoleUser}, nil
			}
			return nil, pgx.ErrNoRows
		},
	}
	svc := NewAuthService(testAuthConfig(), users)

	_, _, _, errUnknown := svc.Login(context.Background(), "nobody@example.com", "whatever")
	_, _, _, errBadPass := svc.Login(context.Background(), "known@example.com", "wrong-password")

	assertCode(t, errUnknown, "UNAUTHORIZED")
	assertCode(t, errBadPass, "UNAUTHORIZED")
	if errUnknown.Error() != errBadPass.Error() {
		t.Errorf("unknown email (%q) and bad password (%q) must read identically", errUnknown, errBadPass)
	}
}
