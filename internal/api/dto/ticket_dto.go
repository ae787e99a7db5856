package dto

import (
	"time"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	AssignedTo string `json:"assigned_to"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// UserRefResponse is the resolved display fragment for a referenced
// account.
type UserRefResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TicketResponse is the wire shape of a ticket with references resolved.
type TicketResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority"`
	CreatedBy   UserRefResponse       `json:"created_by"`
	AssignedTo  *UserRefResponse      `json:"assigned_to"`
	CreatedAt   time.Time             `json:"created_at"`
}

// TicketDetailResponse adds the legal next statuses and the audit trail
// to a single-ticket lookup.
type TicketDetailResponse struct {
	TicketResponse
	ValidNextStatuses []domain.TicketStatus `json:"valid_next_statuses"`
	StatusHistory     []StatusLogResponse   `json:"status_history"`
}

// StatusLogResponse is one audit trail entry.
type StatusLogResponse struct {
	ID        string              `json:"id"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	ChangedBy string              `json:"changed_by"`
	ChangedAt time.Time           `json:"changed_at"`
}
