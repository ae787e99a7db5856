package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// Valid reports whether the status is a known lifecycle state.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
)

// Valid reports whether the priority is a known level.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests. CreatorID and CreatedAt are
// immutable after creation; AssigneeID may only reference a SUPPORT or
// MANAGER account at assignment time.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	CreatorID   string
	AssigneeID  *string
	CreatedAt   time.Time

	// Resolved display fragments, populated by read queries.
	Creator  UserRef
	Assignee *UserRef
}
