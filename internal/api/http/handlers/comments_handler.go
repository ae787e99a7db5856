package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-tracker/internal/api/dto"
	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/service"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// CommentsHandler manages comment thread endpoints.
type CommentsHandler struct {
	service *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{service: commentService}
}

// Create POST /tickets/:id/comments.
func (h *CommentsHandler) Create(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	req, err := parseCommentBody(c)
	if err != nil {
		return err
	}

	comment, err := h.service.Create(c.Context(), c.Params("id"), actor, req.Comment)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    commentResponse(comment),
	})
}

// List GET /tickets/:id/comments.
func (h *CommentsHandler) List(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	comments, err := h.service.List(c.Context(), c.Params("id"), actor)
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, commentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

// Update PATCH /comments/:id.
func (h *CommentsHandler) Update(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	req, err := parseCommentBody(c)
	if err != nil {
		return err
	}

	comment, err := h.service.Update(c.Context(), c.Params("id"), actor, req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": commentResponse(comment)})
}

// Delete DELETE /comments/:id.
func (h *CommentsHandler) Delete(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), c.Params("id"), actor); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseCommentBody(c *fiber.Ctx) (dto.CommentRequest, error) {
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return req, apperrors.NewValidationError("invalid payload")
	}
	if strings.TrimSpace(req.Comment) == "" {
		return req, apperrors.NewValidationError("comment is required")
	}
	return req, nil
}

func commentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:          comment.ID,
		TicketID:    comment.TicketID,
		TicketTitle: comment.TicketTitle,
		Author:      userRefResponse(comment.Author),
		Comment:     comment.Body,
		CreatedAt:   comment.CreatedAt,
	}
}
