package policy

import (
	"testing"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

func TestIsValidTransition(t *testing.T) {
	cases := []struct {
		old   domain.TicketStatus
		next  domain.TicketStatus
		valid bool
	}{
		{domain.TicketStatusOpen, domain.TicketStatusInProgress, true},
		{domain.TicketStatusInProgress, domain.TicketStatusResolved, true},
		{domain.TicketStatusResolved, domain.TicketStatusClosed, true},

		// skips
		{domain.TicketStatusOpen, domain.TicketStatusResolved, false},
		{domain.TicketStatusOpen, domain.TicketStatusClosed, false},
		{domain.TicketStatusInProgress, domain.TicketStatusClosed, false},

		// reversals
		{domain.TicketStatusInProgress, domain.TicketStatusOpen, false},
		{domain.TicketStatusResolved, domain.TicketStatusOpen, false},
		{domain.TicketStatusResolved, domain.TicketStatusInProgress, false},

		// unset prior status is always valid
		{"", domain.TicketStatusOpen, true},
		{"", domain.TicketStatusClosed, true},

		// unknown statuses
		{"ARCHIVED", domain.TicketStatusOpen, false},
		{domain.TicketStatusOpen, "ARCHIVED", false},
	}

	for _, tt := range cases {
		if got := IsValidTransition(tt.old, tt.next); got != tt.valid {
			t.Fatalf("IsValidTransition(%q, %q)=%v, want %v", tt.old, tt.next, got, tt.valid)
		}
	}
}

func TestNoSelfLoops(t *testing.T) {
	statuses := []domain.TicketStatus{
		domain.TicketStatusOpen,
		domain.TicketStatusInProgress,
		domain.TicketStatusResolved,
		domain.TicketStatusClosed,
	}
	for _, s := range statuses {
		if IsValidTransition(s, s) {
			t.Fatalf("IsValidTransition(%q, %q) should be false", s, s)
		}
	}
}

func TestClosedIsTerminal(t *testing.T) {
	targets := []domain.TicketStatus{
		domain.TicketStatusOpen,
		domain.TicketStatusInProgress,
		domain.TicketStatusResolved,
		domain.TicketStatusClosed,
	}
	for _, next := range targets {
		if IsValidTransition(domain.TicketStatusClosed, next) {
			t.Fatalf("transition CLOSED -> %q should be rejected", next)
		}
	}
	if got := ValidNextStatuses(domain.TicketStatusClosed); len(got) != 0 {
		t.Fatalf("ValidNextStatuses(CLOSED)=%v, want empty", got)
	}
}

func TestValidNextStatuses(t *testing.T) {
	cases := []struct {
		status domain.TicketStatus
		want   []domain.TicketStatus
	}{
		{domain.TicketStatusOpen, []domain.TicketStatus{domain.TicketStatusInProgress}},
		{domain.TicketStatusInProgress, []domain.TicketStatus{domain.TicketStatusResolved}},
		{domain.TicketStatusResolved, []domain.TicketStatus{domain.TicketStatusClosed}},
		{domain.TicketStatusClosed, []domain.TicketStatus{}},
		{"ARCHIVED", nil},
	}
	for _, tt := range cases {
		got := ValidNextStatuses(tt.status)
		if len(got) != len(tt.want) {
			t.Fatalf("ValidNextStatuses(%q)=%v, want %v", tt.status, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("ValidNextStatuses(%q)=%v, want %v", tt.status, got, tt.want)
			}
		}
	}
}
