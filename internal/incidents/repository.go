package incidents

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantage-intel/vantage/internal/shared"
)

// PGRepository provides PostgreSQL backed persistence for incidents.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const incidentColumns = `id, title, description, incident_date, severity, status, COALESCE(assigned_to, ''), COALESCE(reported_by, ''), created_at`

// FindByID fetches one incident.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (Incident, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+incidentColumns+` FROM incidents WHERE id = $1`, id)
	inc, err := scanIncident(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Incident{}, shared.ErrNotFound
		}
		return Incident{}, err
	}
	return inc, nil
}

// List returns a filtered page of incidents and the total matching count.
func (r *PGRepository) List(ctx context.Context, req ListIncidentsRequest) ([]Incident, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if req.Status != nil {
		args = append(args, *req.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if req.Severity != nil {
		args = append(args, *req.Severity)
		where += fmt.Sprintf(` AND severity = $%d`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM incidents`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := shared.NewPagination(req.Page, req.PerPage, total)
	args = append(args, page.PerPage, (page.Page-1)*page.PerPage)
	query := `SELECT ` + incidentColumns + ` FROM incidents` + where +
		fmt.Sprintf(` ORDER BY id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var incidents []Incident
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			return nil, 0, err
		}
		incidents = append(incidents, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return incidents, total, nil
}

// Insert persists a new incident and returns its ID.
func (r *PGRepository) Insert(ctx context.Context, inc Incident) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO incidents (title, description, incident_date, severity, status, assigned_to, reported_by)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''))
		 RETURNING id`,
		inc.Title, inc.Description, inc.IncidentDate, inc.Severity, inc.Status, inc.AssignedTo, inc.ReportedBy,
	).Scan(&id)
	return id, err
}

// Update rewrites all mutable columns of an incident.
func (r *PGRepository) Update(ctx context.Context, inc Incident) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE incidents
		 SET title = $2, description = $3, incident_date = $4, severity = $5, status = $6,
		     assigned_to = NULLIF($7, ''), reported_by = NULLIF($8, '')
		 WHERE id = $1`,
		inc.ID, inc.Title, inc.Description, inc.IncidentDate, inc.Severity, inc.Status, inc.AssignedTo, inc.ReportedBy,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of incidents.
func (r *PGRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM incidents`).Scan(&n)
	return n, err
}

func scanIncident(row pgx.Row) (Incident, error) {
	var inc Incident
	err := row.Scan(&inc.ID, &inc.Title, &inc.Description, &inc.IncidentDate, &inc.Severity, &inc.Status, &inc.AssignedTo, &inc.ReportedBy, &inc.CreatedAt)
	return inc, err
}
