package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// CommentRepository manages the comment thread for tickets. Reads resolve
// the author and, on single fetches, the parent ticket title.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	UpdateBody(ctx context.Context, id, body string) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Comment, error)
	Delete(ctx context.Context, id string) error
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository builds repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO ticket_comments (ticket_id, author_id, body)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		comment.TicketID,
		comment.AuthorID,
		comment.Body,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *commentRepository) UpdateBody(ctx context.Context, id, body string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE ticket_comments SET body=$1 WHERE id=$2`, body, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	// Ticket title is joined loosely: comments may outlive their ticket.
	const query = `
        SELECT m.id, m.ticket_id, m.author_id, m.body, m.created_at,
               u.name, u.email,
               COALESCE(t.title, '')
        FROM ticket_comments m
        JOIN users u ON u.id = m.author_id
        LEFT JOIN tickets t ON t.id = m.ticket_id
        WHERE m.id=$1`

	var comment domain.Comment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.TicketID,
		&comment.AuthorID,
		&comment.Body,
		&comment.CreatedAt,
		&comment.Author.Name,
		&comment.Author.Email,
		&comment.TicketTitle,
	); err != nil {
		return nil, err
	}
	comment.Author.ID = comment.AuthorID
	return &comment, nil
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	const query = `
        SELECT m.id, m.ticket_id, m.author_id, m.body, m.created_at,
               u.name, u.email
        FROM ticket_comments m
        JOIN users u ON u.id = m.author_id
        WHERE m.ticket_id=$1 ORDER BY m.created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.TicketID,
			&comment.AuthorID,
			&comment.Body,
			&comment.CreatedAt,
			&comment.Author.Name,
			&comment.Author.Email,
		); err != nil {
			return nil, err
		}
		comment.Author.ID = comment.AuthorID
		result = append(result, comment)
	}
	return result, rows.Err()
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM ticket_comments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
