package events

import (
	"time"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketDeleted       EventType = "ticket_deleted"
	EventCommentAdded        EventType = "ticket_comment_added"
)

// Event represents a domain event emitted by services. Events are
// informational; dispatch failures never affect the request path.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   string      `json:"actor_id"`
	ActorRole domain.Role `json:"actor_role"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title    string                `json:"title"`
	Priority domain.TicketPriority `json:"priority"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssigneeID string `json:"assignee_id"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID string `json:"comment_id"`
	AuthorID  string `json:"author_id"`
}
