package datasets

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantage-intel/vantage/internal/shared"
)

// PGRepository provides PostgreSQL backed persistence for datasets.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const datasetColumns = `id, name, description, source, classification, format, size_mb, created_at`

// FindByID fetches one dataset.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (Dataset, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+datasetColumns+` FROM datasets WHERE id = $1`, id)
	d, err := scanDataset(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Dataset{}, shared.ErrNotFound
		}
		return Dataset{}, err
	}
	return d, nil
}

// List returns a filtered page of datasets and the total matching count.
func (r *PGRepository) List(ctx context.Context, req ListDatasetsRequest) ([]Dataset, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if req.Classification != nil {
		args = append(args, *req.Classification)
		where += fmt.Sprintf(` AND classification = $%d`, len(args))
	}
	if req.Format != nil {
		args = append(args, *req.Format)
		where += fmt.Sprintf(` AND format = $%d`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM datasets`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := shared.NewPagination(req.Page, req.PerPage, total)
	args = append(args, page.PerPage, (page.Page-1)*page.PerPage)
	query := `SELECT ` + datasetColumns + ` FROM datasets` + where +
		fmt.Sprintf(` ORDER BY id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var datasets []Dataset
	for rows.Next() {
		d, err := scanDataset(rows)
		if err != nil {
			return nil, 0, err
		}
		datasets = append(datasets, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return datasets, total, nil
}

// Insert persists a new dataset and returns its ID.
func (r *PGRepository) Insert(ctx context.Context, d Dataset) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO datasets (name, description, source, classification, format, size_mb)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		d.Name, d.Description, d.Source, d.Classification, d.Format, d.SizeMB,
	).Scan(&id)
	return id, err
}

// Update rewrites all mutable columns of a dataset.
func (r *PGRepository) Update(ctx context.Context, d Dataset) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE datasets
		 SET name = $2, description = $3, source = $4, classification = $5, format = $6, size_mb = $7
		 WHERE id = $1`,
		d.ID, d.Name, d.Description, d.Source, d.Classification, d.Format, d.SizeMB,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of datasets.
func (r *PGRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM datasets`).Scan(&n)
	return n, err
}

func scanDataset(row pgx.Row) (Dataset, error) {
	var d Dataset
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Source, &d.Classification, &d.Format, &d.SizeMB, &d.CreatedAt)
	return d, err
}
