package domain

import "time"

// StatusLogEntry is an append-only audit record of a status transition.
// Entries are never updated or deleted and are never consulted by any
// business rule.
type StatusLogEntry struct {
	ID        string
	TicketID  string
	OldStatus TicketStatus
	NewStatus TicketStatus
	ChangedBy string
	ChangedAt time.Time
}
