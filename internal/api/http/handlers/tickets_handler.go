package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-tracker/internal/api/dto"
	"github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/policy"
	"github.com/spec-kit/ticket-tracker/internal/service"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if len(strings.TrimSpace(req.Title)) < 5 {
		return apperrors.NewValidationError("title must be at least 5 characters")
	}
	if len(strings.TrimSpace(req.Description)) < 10 {
		return apperrors.NewValidationError("description must be at least 10 characters")
	}
	if req.Priority != "" && !req.Priority.Valid() {
		return apperrors.NewValidationError("priority must be LOW, MEDIUM, or HIGH")
	}

	ticket, err := h.service.Create(c.Context(), actor, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    ticketResponse(ticket),
	})
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	tickets, err := h.service.ListForActor(c.Context(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.GetByID(c.Context(), c.Params("id"), actor)
	if err != nil {
		return err
	}
	history, err := h.service.StatusHistory(c.Context(), ticket.ID, actor)
	if err != nil {
		return err
	}
	detail := dto.TicketDetailResponse{
		TicketResponse:    ticketResponse(ticket),
		ValidNextStatuses: policy.ValidNextStatuses(ticket.Status),
		StatusHistory:     statusLogResponses(history),
	}
	return c.JSON(fiber.Map{"success": true, "data": detail})
}

// Assign PATCH /tickets/:id/assign.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.AssignedTo == "" {
		return apperrors.NewValidationError("assigned_to is required")
	}

	ticket, err := h.service.Assign(c.Context(), c.Params("id"), req.AssignedTo, actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": ticketResponse(ticket)})
}

// UpdateStatus PATCH /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status is required")
	}
	if !req.Status.Valid() {
		return apperrors.NewValidationError("status must be OPEN, IN_PROGRESS, RESOLVED, or CLOSED")
	}

	ticket, err := h.service.UpdateStatus(c.Context(), c.Params("id"), req.Status, actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": ticketResponse(ticket)})
}

// Delete DELETE /tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), c.Params("id"), actor); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func requireActor(c *fiber.Ctx) (service.Actor, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return service.Actor{}, apperrors.NewUnauthorized("authentication required")
	}
	return service.Actor{ID: principal.ID(), Role: principal.Role()}, nil
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	resp := dto.TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
		Priority:    ticket.Priority,
		CreatedBy:   userRefResponse(ticket.Creator),
		CreatedAt:   ticket.CreatedAt,
	}
	if ticket.Assignee != nil {
		ref := userRefResponse(*ticket.Assignee)
		resp.AssignedTo = &ref
	}
	return resp
}

func userRefResponse(ref domain.UserRef) dto.UserRefResponse {
	return dto.UserRefResponse{ID: ref.ID, Name: ref.Name, Email: ref.Email}
}

func statusLogResponses(entries []domain.StatusLogEntry) []dto.StatusLogResponse {
	resp := make([]dto.StatusLogResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, dto.StatusLogResponse{
			ID:        entry.ID,
			OldStatus: entry.OldStatus,
			NewStatus: entry.NewStatus,
			ChangedBy: entry.ChangedBy,
			ChangedAt: entry.ChangedAt,
		})
	}
	return resp
}
