package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/repository"
)

// Function-field fakes. A nil field means the test does not expect that
// call; hitting one fails loudly via the panic.

type fakeTicketRepo struct {
	CreateFn         func(ctx context.Context, ticket *domain.Ticket) error
	UpdateFn         func(ctx context.Context, ticket *domain.Ticket) error
	GetByIDFn        func(ctx context.Context, id string) (*domain.Ticket, error)
	ListWithFilterFn func(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error)
	DeleteFn         func(ctx context.Context, id string) error
}

func (f *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	if f.CreateFn == nil {
		panic("unexpected TicketRepository.Create")
	}
	return f.CreateFn(ctx, ticket)
}

func (f *fakeTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	if f.UpdateFn == nil {
		panic("unexpected TicketRepository.Update")
	}
	return f.UpdateFn(ctx, ticket)
}

func (f *fakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if f.GetByIDFn == nil {
		panic("unexpected TicketRepository.GetByID")
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	if f.ListWithFilterFn == nil {
		panic("unexpected TicketRepository.ListWithFilter")
	}
	return f.ListWithFilterFn(ctx, filter)
}

func (f *fakeTicketRepo) Delete(ctx context.Context, id string) error {
	if f.DeleteFn == nil {
		panic("unexpected TicketRepository.Delete")
	}
	return f.DeleteFn(ctx, id)
}

type fakeUserRepo struct {
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	ListFn       func(ctx context.Context) ([]domain.User, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if f.CreateFn == nil {
		panic("unexpected UserRepository.Create")
	}
	return f.CreateFn(ctx, user)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.GetByIDFn == nil {
		panic("unexpected UserRepository.GetByID")
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.GetByEmailFn == nil {
		panic("unexpected UserRepository.GetByEmail")
	}
	return f.GetByEmailFn(ctx, email)
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	if f.ListFn == nil {
		panic("unexpected UserRepository.List")
	}
	return f.ListFn(ctx)
}

type fakeStatusLogRepo struct {
	AppendFn       func(ctx context.Context, entry *domain.StatusLogEntry) error
	ListByTicketFn func(ctx context.Context, ticketID string) ([]domain.StatusLogEntry, error)
}

func (f *fakeStatusLogRepo) Append(ctx context.Context, entry *domain.StatusLogEntry) error {
	if f.AppendFn == nil {
		panic("unexpected StatusLogRepository.Append")
	}
	return f.AppendFn(ctx, entry)
}

func (f *fakeStatusLogRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.StatusLogEntry, error) {
	if f.ListByTicketFn == nil {
		panic("unexpected StatusLogRepository.ListByTicket")
	}
	return f.ListByTicketFn(ctx, ticketID)
}

type fakeCommentRepo struct {
	CreateFn       func(ctx context.Context, comment *domain.Comment) error
	UpdateBodyFn   func(ctx context.Context, id, body string) error
	GetByIDFn      func(ctx context.Context, id string) (*domain.Comment, error)
	ListByTicketFn func(ctx context.Context, ticketID string) ([]domain.Comment, error)
	DeleteFn       func(ctx context.Context, id string) error
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	if f.CreateFn == nil {
		panic("unexpected CommentRepository.Create")
	}
	return f.CreateFn(ctx, comment)
}

func (f *fakeCommentRepo) UpdateBody(ctx context.Context, id, body string) error {
	if f.UpdateBodyFn == nil {
		panic("unexpected CommentRepository.UpdateBody")
	}
	return f.UpdateBodyFn(ctx, id, body)
}

func (f *fakeCommentRepo) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	if f.GetByIDFn == nil {
		panic("unexpected CommentRepository.GetByID")
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeCommentRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	if f.ListByTicketFn == nil {
		panic("unexpected CommentRepository.ListByTicket")
	}
	return f.ListByTicketFn(ctx, ticketID)
}

func (f *fakeCommentRepo) Delete(ctx context.Context, id string) error {
	if f.DeleteFn == nil {
		panic("unexpected CommentRepository.Delete")
	}
	return f.DeleteFn(ctx, id)
}

// notFoundTicketRepo is a GetByID that always misses.
func notFoundTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Ticket, error) {
			return nil, pgx.ErrNoRows
		},
	}
}

func strptr(s string) *string { return &s }
