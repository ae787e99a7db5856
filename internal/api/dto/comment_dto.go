package dto

import "time"

// CommentRequest payload for creating and updating comments.
type CommentRequest struct {
	Comment string `json:"comment"`
}

// CommentResponse is the wire shape of a comment with its author
// resolved.
type CommentResponse struct {
	ID          string          `json:"id"`
	TicketID    string          `json:"ticket_id"`
	TicketTitle string          `json:"ticket_title,omitempty"`
	Author      UserRefResponse `json:"author"`
	Comment     string          `json:"comment"`
	CreatedAt   time.Time       `json:"created_at"`
}
