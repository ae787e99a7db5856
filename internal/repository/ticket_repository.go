package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// TicketFilter captures role-scoped listing parameters.
type TicketFilter struct {
	CreatorID  *string
	AssigneeID *string
}

// TicketRepository encapsulates ticket persistence. Read operations
// resolve creator and assignee references to display fragments.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	Delete(ctx context.Context, id string) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketSelect = `
        SELECT t.id, t.title, t.description, t.status, t.priority, t.creator_id, t.assignee_id, t.created_at,
               c.name, c.email,
               a.name, a.email
        FROM tickets t
        JOIN users c ON c.id = t.creator_id
        LEFT JOIN users a ON a.id = t.assignee_id`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, status, priority, creator_id, assignee_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.CreatorID,
		ticket.AssigneeID,
	).Scan(&ticket.ID, &ticket.CreatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET status=$1, assignee_id=$2, priority=$3
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Status,
		ticket.AssigneeID,
		ticket.Priority,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := ticketSelect + ` WHERE t.id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTicket(row)
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CreatorID != nil {
		args = append(args, *filter.CreatorID)
		clauses = append(clauses, fmt.Sprintf("t.creator_id=$%d", len(args)))
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		clauses = append(clauses, fmt.Sprintf("t.assignee_id=$%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY t.created_at DESC",
		ticketSelect, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var (
		ticket        domain.Ticket
		assigneeName  *string
		assigneeEmail *string
	)
	if err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&ticket.CreatorID,
		&ticket.AssigneeID,
		&ticket.CreatedAt,
		&ticket.Creator.Name,
		&ticket.Creator.Email,
		&assigneeName,
		&assigneeEmail,
	); err != nil {
		return nil, err
	}
	ticket.Creator.ID = ticket.CreatorID
	if ticket.AssigneeID != nil {
		ref := domain.UserRef{ID: *ticket.AssigneeID}
		if assigneeName != nil {
			ref.Name = *assigneeName
		}
		if assigneeEmail != nil {
			ref.Email = *assigneeEmail
		}
		ticket.Assignee = &ref
	}
	return &ticket, nil
}
