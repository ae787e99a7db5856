package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-tracker/internal/api/dto"
	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/service"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password are required")
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": dto.LoginResponse{
			Token:     token,
			ExpiresAt: exp,
			User:      userResponse(user),
		},
	})
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
