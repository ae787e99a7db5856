package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/policy"
	"github.com/spec-kit/ticket-tracker/internal/repository"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// CommentService coordinates the comment thread scoped to a ticket.
type CommentService struct {
	comments   repository.CommentRepository
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// CommentDependencies bundles repositories for comment service.
type CommentDependencies struct {
	CommentRepo repository.CommentRepository
	TicketRepo  repository.TicketRepository
	Dispatcher  events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{
		comments:   deps.CommentRepo,
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create posts a comment on a ticket. Only the ticket's owner (USER),
// its assignee (SUPPORT) or a MANAGER may comment.
func (s *CommentService) Create(ctx context.Context, ticketID string, actor Actor, body string) (*domain.Comment, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket")
		}
		return nil, apperrors.ToDomainError(err)
	}
	if !policy.CanCommentOnTicket(actor.Role, actor.ID, ticket.CreatorID, ticket.AssigneeID) {
		return nil, apperrors.NewAccessDenied("only the ticket owner, assignee or a manager can comment")
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("comment body is required")
	}

	comment := &domain.Comment{
		TicketID: ticket.ID,
		AuthorID: actor.ID,
		Body:     body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	s.publish(ctx, events.Event{
		Type:      events.EventCommentAdded,
		TicketID:  ticket.ID,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Payload: events.CommentAddedPayload{
			CommentID: comment.ID,
			AuthorID:  actor.ID,
		},
	})
	return s.resolve(ctx, comment.ID)
}

// List returns the ticket's comments, oldest first. Unlike the ticket
// detail lookup, denial here is reported as access denied, not as a
// missing ticket.
func (s *CommentService) List(ctx context.Context, ticketID string, actor Actor) ([]domain.Comment, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket")
		}
		return nil, apperrors.ToDomainError(err)
	}
	if !policy.CanViewComments(actor.Role, actor.ID, ticket.CreatorID, ticket.AssigneeID) {
		return nil, apperrors.NewAccessDenied("access denied")
	}

	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return comments, nil
}

// Update rewrites a comment's body. Only the author or a MANAGER may do
// so.
func (s *CommentService) Update(ctx context.Context, commentID string, actor Actor, newBody string) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("comment")
		}
		return nil, apperrors.ToDomainError(err)
	}
	if !policy.CanModifyComment(actor.Role, actor.ID, comment.AuthorID) {
		return nil, apperrors.NewAccessDenied("only a manager or the comment author can update")
	}

	newBody = strings.TrimSpace(newBody)
	if newBody == "" {
		return nil, apperrors.NewValidationError("comment body is required")
	}

	if err := s.comments.UpdateBody(ctx, commentID, newBody); err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return s.resolve(ctx, commentID)
}

// Delete hard-deletes a comment under the same rule as Update.
func (s *CommentService) Delete(ctx context.Context, commentID string, actor Actor) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("comment")
		}
		return apperrors.ToDomainError(err)
	}
	if !policy.CanModifyComment(actor.Role, actor.ID, comment.AuthorID) {
		return apperrors.NewAccessDenied("only a manager or the comment author can delete")
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return apperrors.ToDomainError(err)
	}
	return nil
}

func (s *CommentService) resolve(ctx context.Context, commentID string) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return comment, nil
}

func (s *CommentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
