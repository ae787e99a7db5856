// Package policy holds the pure decision functions of the service: the
// ticket status transition chain and the role-based access rules. Nothing
// in this package touches storage or carries state.
package policy

import "github.com/spec-kit/ticket-tracker/internal/domain"

// transitionChain maps each status to its legal successors. The chain is
// strictly linear: no skips, no backward moves, no self-loops. CLOSED is
// terminal.
var transitionChain = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusOpen:       {domain.TicketStatusInProgress},
	domain.TicketStatusInProgress: {domain.TicketStatusResolved},
	domain.TicketStatusResolved:   {domain.TicketStatusClosed},
	domain.TicketStatusClosed:     {},
}

// IsValidTransition reports whether a ticket may move from old to next.
// An empty old status means the ticket has no prior status yet and any
// target is accepted; unknown statuses are rejected.
func IsValidTransition(old, next domain.TicketStatus) bool {
	if old == "" {
		return true
	}
	allowed, ok := transitionChain[old]
	if !ok {
		return false
	}
	for _, candidate := range allowed {
		if candidate == next {
			return true
		}
	}
	return false
}

// ValidNextStatuses returns the legal successors of a status: at most one
// entry, empty for CLOSED or unknown statuses. Used to surface allowed
// actions without attempting and failing a transition.
func ValidNextStatuses(status domain.TicketStatus) []domain.TicketStatus {
	allowed, ok := transitionChain[status]
	if !ok {
		return nil
	}
	out := make([]domain.TicketStatus, len(allowed))
	copy(out, allowed)
	return out
}
