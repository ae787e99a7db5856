package domain

import "time"

// Comment is a threaded message on a ticket. TicketID, AuthorID and
// CreatedAt are immutable; only Body may change after creation.
type Comment struct {
	ID        string
	TicketID  string
	AuthorID  string
	Body      string
	CreatedAt time.Time

	// Resolved display fragments, populated by read queries.
	Author      UserRef
	TicketTitle string
}
