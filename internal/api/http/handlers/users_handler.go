package handlers

import (
	"net/http"
	"net/mail"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-tracker/internal/api/dto"
	"github.com/spec-kit/ticket-tracker/internal/service"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// UsersHandler exposes MANAGER-only account provisioning endpoints.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// Create POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email and password are required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return apperrors.NewValidationError("email is not valid")
	}

	user, err := h.service.Create(c.Context(), service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    userResponse(user),
	})
}

// List GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}
