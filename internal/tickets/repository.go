package tickets

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantage-intel/vantage/internal/shared"
)

// PGRepository provides PostgreSQL backed persistence for tickets.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const ticketColumns = `id, title, description, category, priority, status, requester, COALESCE(assigned_to, ''), created_at`

// FindByID fetches one ticket.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (Ticket, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id)
	t, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Ticket{}, shared.ErrNotFound
		}
		return Ticket{}, err
	}
	return t, nil
}

// List returns a filtered page of tickets and the total matching count.
func (r *PGRepository) List(ctx context.Context, req ListTicketsRequest) ([]Ticket, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if req.Status != nil {
		args = append(args, *req.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if req.Priority != nil {
		args = append(args, *req.Priority)
		where += fmt.Sprintf(` AND priority = $%d`, len(args))
	}
	if req.Category != nil {
		args = append(args, *req.Category)
		where += fmt.Sprintf(` AND category = $%d`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := shared.NewPagination(req.Page, req.PerPage, total)
	args = append(args, page.PerPage, (page.Page-1)*page.PerPage)
	query := `SELECT ` + ticketColumns + ` FROM tickets` + where +
		fmt.Sprintf(` ORDER BY id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tickets []Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

// ListActive returns tickets whose SLA clock is still running.
func (r *PGRepository) ListActive(ctx context.Context) ([]Ticket, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE status IN ('open', 'in_progress', 'pending') ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// Insert persists a new ticket and returns its ID.
func (r *PGRepository) Insert(ctx context.Context, t Ticket) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tickets (title, description, category, priority, status, requester, assigned_to)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		 RETURNING id`,
		t.Title, t.Description, t.Category, t.Priority, t.Status, t.Requester, t.AssignedTo,
	).Scan(&id)
	return id, err
}

// Update rewrites all mutable columns of a ticket.
func (r *PGRepository) Update(ctx context.Context, t Ticket) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tickets
		 SET title = $2, description = $3, category = $4, priority = $5, status = $6,
		     requester = $7, assigned_to = NULLIF($8, '')
		 WHERE id = $1`,
		t.ID, t.Title, t.Description, t.Category, t.Priority, t.Status, t.Requester, t.AssignedTo,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of tickets.
func (r *PGRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&n)
	return n, err
}

func scanTicket(row pgx.Row) (Ticket, error) {
	var t Ticket
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Category, &t.Priority, &t.Status, &t.Requester, &t.AssignedTo, &t.CreatedAt)
	return t, err
}
