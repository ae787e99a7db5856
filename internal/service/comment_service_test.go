package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/events"
)

func newCommentService(comments *fakeCommentRepo, tickets *fakeTicketRepo, dispatcher events.Dispatcher) *CommentService {
	return NewCommentService(CommentDependencies{
		CommentRepo: comments,
		TicketRepo:  tickets,
		Dispatcher:  dispatcher,
	})
}

func commentableTicket() *fakeTicketRepo {
	return &fakeTicketRepo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Ticket, error) {
			return &domain.Ticket{ID: id, CreatorID: "owner", AssigneeID: strptr("agent")}, nil
		},
	}
}

func TestCreateCommentOnMissingTicket(t *testing.T) {
	svc := newCommentService(&fakeCommentRepo{}, notFoundTicketRepo(), nil)

	_, err := svc.Create(context.Background(), "ghost", Actor{ID: "u1", Role: domain.RoleUser}, "hello")
	assertCode(t, err, "NOT_FOUND")
}

func TestCreateCommentDeniedForOutsiders(t *testing.T) {
	svc := newCommentService(&fakeCommentRepo{}, commentableTicket(), nil)

	for _, actor := range []Actor{
		{ID: "other", Role: domain.RoleUser},
		{ID: "other", Role: domain.RoleSupport},
	} {
		_, err := svc.Create(context.Background(), "t1", actor, "hello")
		assertCode(t, err, "ACCESS_DENIED")
	}
}

func TestCreateCommentEmptyBody(t *testing.T) {
	svc := newCommentService(&fakeCommentRepo{}, commentableTicket(), nil)

	_, err := svc.Create(context.Background(), "t1", Actor{ID: "owner", Role: domain.RoleUser}, "   ")
	assertCode(t, err, "VALIDATION_FAILED")
}

func TestCreateComment(t *testing.T) {
	var created *domain.Comment
	comments := &fakeCommentRepo{
		CreateFn: func(ctx context.Context, comment *domain.Comment) error {
			comment.ID = "c1"
			created = comment
			return nil
		},
		GetByIDFn: func(ctx context.Context, id string) (*domain.Comment, error) {
			return created, nil
		},
	}
	dispatcher := events.NewInMemoryDispatcher()
	var published []events.Event
	dispatcher.Subscribe(events.EventCommentAdded, func(ctx context.Context, event events.Event) error {
		published = append(published, event)
		return nil
	})
	svc := newCommentService(comments, commentableTicket(), dispatcher)

	for _, actor := range []Actor{
		{ID: "owner", Role: domain.RoleUser},
		{ID: "agent", Role: domain.RoleSupport},
		{ID: "m1", Role: domain.RoleManager},
	} {
		comment, err := svc.Create(context.Background(), "t1", actor, "  status update  ")
		if err != nil {
			t.Fatalf("actor %s: unexpected error: %v", actor.ID, err)
		}
		if comment.Body != "status update" {
			t.Errorf("body not trimmed: %q", comment.Body)
		}
		if comment.AuthorID != actor.ID {
			t.Errorf("author = %s, want %s", comment.AuthorID, actor.ID)
		}
	}
	if len(published) != 3 {
		t.Errorf("expected 3 comment events, got %d", len(published))
	}
}

// Comment listing reports a denial as forbidden, unlike the ticket detail
// lookup which hides the ticket's existence.
func TestListCommentsDeniedIsForbidden(t *testing.T) {
	svc := newCommentService(&fakeCommentRepo{}, commentableTicket(), nil)

	_, err := svc.List(context.Background(), "t1", Actor{ID: "other", Role: domain.RoleUser})
	assertCode(t, err, "ACCESS_DENIED")
}

func TestListCommentsMissingTicket(t *testing.T) {
	svc := newCommentService(&fakeCommentRepo{}, notFoundTicketRepo(), nil)

	_, err := svc.List(context.Background(), "ghost", Actor{ID: "m1", Role: domain.RoleManager})
	assertCode(t, err, "NOT_FOUND")
}

func TestListComments(t *testing.T) {
	comments := &fakeCommentRepo{
		ListByTicketFn: func(ctx context.Context, ticketID string) ([]domain.Comment, error) {
			return []domain.Comment{
				{ID: "c1", TicketID: ticketID, AuthorID: "owner", Body: "first"},
				{ID: "c2", TicketID: ticketID, AuthorID: "agent", Body: "second"},
			}, nil
		},
	}
	svc := newCommentService(comments, commentableTicket(), nil)

	got, err := svc.List(context.Background(), "t1", Actor{ID: "agent", Role: domain.RoleSupport})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c1" {
		t.Errorf("unexpected comments: %+v", got)
	}
}

func existingComment() *fakeCommentRepo {
	comment := &domain.Comment{ID: "c1", TicketID: "t1", AuthorID: "author", Body: "original"}
	return &fakeCommentRepo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Comment, error) {
			if id == "c1" {
				return comment, nil
			}
			return nil, pgx.ErrNoRows
		},
		UpdateBodyFn: func(ctx context.Context, id, body string) error {
			comment.Body = body
			return nil
		},
		DeleteFn: func(ctx context.Context, id string) error {
			return nil
		},
	}
}

func TestUpdateCommentAuthorOrManager(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		wantErr string
	}{
		{"author", Actor{ID: "author", Role: domain.RoleUser}, ""},
		{"manager", Actor{ID: "m1", Role: domain.RoleManager}, ""},
		{"other support", Actor{ID: "s1", Role: domain.RoleSupport}, "ACCESS_DENIED"},
		{"other user", Actor{ID: "u2", Role: domain.RoleUser}, "ACCESS_DENIED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newCommentService(existingComment(), &fakeTicketRepo{}, nil)
			got, err := svc.Update(context.Background(), "c1", tt.actor, "edited")
			if tt.wantErr != "" {
				assertCode(t, err, tt.wantErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Body != "edited" {
				t.Errorf("body = %q, want edited", got.Body)
			}
		})
	}
}

func TestUpdateCommentEmptyBody(t *testing.T) {
	svc := newCommentService(existingComment(), &fakeTicketRepo{}, nil)

	_, err := svc.Update(context.Background(), "c1", Actor{ID: "author", Role: domain.RoleUser}, " ")
	assertCode(t, err, "VALIDATION_FAILED")
}

func TestDeleteComment(t *testing.T) {
	svc := newCommentService(existingComment(), &fakeTicketRepo{}, nil)

	err := svc.Delete(context.Background(), "c1", Actor{ID: "s1", Role: domain.RoleSupport})
	assertCode(t, err, "ACCESS_DENIED")

	if err := svc.Delete(context.Background(), "c1", Actor{ID: "author", Role: domain.RoleUser}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = svc.Delete(context.Background(), "missing", Actor{ID: "m1", Role: domain.RoleManager})
	assertCode(t, err, "NOT_FOUND")
}
