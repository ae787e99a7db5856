package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// StatusLogRepository stores the append-only audit trail of status
// transitions. There is deliberately no update or delete.
type StatusLogRepository interface {
	Append(ctx context.Context, entry *domain.StatusLogEntry) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.StatusLogEntry, error)
}

type statusLogRepository struct {
	pool *pgxpool.Pool
}

// NewStatusLogRepository builds repository.
func NewStatusLogRepository(pool *pgxpool.Pool) StatusLogRepository {
	return &statusLogRepository{pool: pool}
}

func (r *statusLogRepository) Append(ctx context.Context, entry *domain.StatusLogEntry) error {
	const query = `
        INSERT INTO ticket_status_log (ticket_id, old_status, new_status, changed_by)
        VALUES ($1,$2,$3,$4)
        RETURNING id, changed_at`
	return r.pool.QueryRow(ctx, query,
		entry.TicketID,
		entry.OldStatus,
		entry.NewStatus,
		entry.ChangedBy,
	).Scan(&entry.ID, &entry.ChangedAt)
}

func (r *statusLogRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.StatusLogEntry, error) {
	const query = `
        SELECT id, ticket_id, old_status, new_status, changed_by, changed_at
        FROM ticket_status_log WHERE ticket_id=$1 ORDER BY changed_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StatusLogEntry
	for rows.Next() {
		var entry domain.StatusLogEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.OldStatus,
			&entry.NewStatus,
			&entry.ChangedBy,
			&entry.ChangedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
