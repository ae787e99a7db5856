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

// Actor identifies the authenticated caller of a service operation. Role
// is the caller's current role, loaded fresh by the auth middleware.
type Actor struct {
	ID   string
	Role domain.Role
}

// TicketService coordinates the ticket lifecycle: creation, role-scoped
// listing, assignment, status transitions and deletion.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	statusLog  repository.StatusLogRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo    repository.TicketRepository
	UserRepo      repository.UserRepository
	StatusLogRepo repository.StatusLogRepository
	Dispatcher    events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		statusLog:  deps.StatusLogRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create opens a new ticket for the actor. Tickets always start OPEN and
// unassigned; the creator reference is immutable afterwards.
func (s *TicketService) Create(ctx context.Context, actor Actor, input TicketCreateInput) (*domain.Ticket, error) {
	if !policy.CanCreateTicket(actor.Role) {
		return nil, apperrors.NewAccessDenied("role cannot create tickets")
	}

	ticket := &domain.Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		Priority:    input.Priority,
		CreatorID:   actor.ID,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	s.publish(ctx, events.Event{
		Type:      events.EventTicketCreated,
		TicketID:  ticket.ID,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Priority: ticket.Priority,
		},
	})
	return s.resolve(ctx, ticket.ID)
}

// ListForActor returns tickets visible to the actor, newest first:
// everything for MANAGER, assigned tickets for SUPPORT, own for USER.
func (s *TicketService) ListForActor(ctx context.Context, actor Actor) ([]domain.Ticket, error) {
	scope := policy.TicketListScope(actor.Role, actor.ID)
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		CreatorID:  scope.CreatorID,
		AssigneeID: scope.AssigneeID,
	})
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return tickets, nil
}

// GetByID loads a single ticket. A ticket the actor may not view is
// reported as not found, deliberately indistinguishable from a missing
// one.
func (s *TicketService) GetByID(ctx context.Context, id string, actor Actor) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket")
		}
		return nil, apperrors.ToDomainError(err)
	}
	if !policy.CanViewTicket(actor.Role, actor.ID, ticket.CreatorID, ticket.AssigneeID) {
		return nil, apperrors.NewNotFound("ticket")
	}
	return ticket, nil
}

// Assign sets the ticket's assignee. The target account, not the actor,
// must currently hold SUPPORT or MANAGER.
func (s *TicketService) Assign(ctx context.Context, ticketID, assigneeID string, actor Actor) (*domain.Ticket, error) {
	if !policy.CanAssignTicket(actor.Role) {
		return nil, apperrors.NewAccessDenied("role cannot assign tickets")
	}

	assignee, err := s.users.GetByID(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignee")
		}
		return nil, apperrors.ToDomainError(err)
	}
	if !policy.IsAssignableRole(assignee.Role) {
		return nil, apperrors.NewIllegalAssignee("cannot assign ticket to a USER role account; only SUPPORT or MANAGER can be assigned")
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket")
		}
		return nil, apperrors.ToDomainError(err)
	}

	ticket.AssigneeID = &assignee.ID
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	s.publish(ctx, events.Event{
		Type:      events.EventTicketAssigned,
		TicketID:  ticket.ID,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Payload:   events.TicketAssignedPayload{AssigneeID: assignee.ID},
	})
	return s.resolve(ctx, ticket.ID)
}

// UpdateStatus moves a ticket along the status chain and appends an
// audit entry. The append runs after the ticket mutation is durable; the
// pair is not atomic, an unlogged transition is an accepted rarity since
// the log is informational only.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID string, newStatus domain.TicketStatus, actor Actor) (*domain.Ticket, error) {
	if !policy.CanChangeStatus(actor.Role) {
		return nil, apperrors.NewAccessDenied("role cannot change ticket status")
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket")
		}
		return nil, apperrors.ToDomainError(err)
	}

	oldStatus := ticket.Status
	if !policy.IsValidTransition(oldStatus, newStatus) {
		return nil, apperrors.NewIllegalTransition(string(oldStatus), string(newStatus))
	}

	ticket.Status = newStatus
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	entry := &domain.StatusLogEntry{
		TicketID:  ticket.ID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedBy: actor.ID,
		ChangedAt: time.Now(),
	}
	if err := s.statusLog.Append(ctx, entry); err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventTicketStatusChanged,
		TicketID:  ticket.ID,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return s.resolve(ctx, ticket.ID)
}

// Delete hard-deletes a ticket. Comments and status log entries are left
// behind; orphaned records are accepted.
func (s *TicketService) Delete(ctx context.Context, ticketID string, actor Actor) error {
	if !policy.CanDeleteTicket(actor.Role) {
		return apperrors.NewAccessDenied("role cannot delete tickets")
	}

	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket")
		}
		return apperrors.ToDomainError(err)
	}
	s.publish(ctx, events.Event{
		Type:      events.EventTicketDeleted,
		TicketID:  ticketID,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
	})
	return nil
}

// StatusHistory returns the audit trail of a ticket, oldest first, under
// the same visibility rule (and not-found conflation) as GetByID.
func (s *TicketService) StatusHistory(ctx context.Context, ticketID string, actor Actor) ([]domain.StatusLogEntry, error) {
	if _, err := s.GetByID(ctx, ticketID, actor); err != nil {
		return nil, err
	}
	entries, err := s.statusLog.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return entries, nil
}

func (s *TicketService) resolve(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return ticket, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
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
