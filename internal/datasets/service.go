package datasets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vantage-intel/vantage/internal/policy"
	"github.com/vantage-intel/vantage/internal/shared"
)

// Repository defines the record store contract for datasets.
type Repository interface {
	FindByID(ctx context.Context, id int64) (Dataset, error)
	List(ctx context.Context, req ListDatasetsRequest) ([]Dataset, int, error)
	Insert(ctx context.Context, d Dataset) (int64, error)
	Update(ctx context.Context, d Dataset) error
	Count(ctx context.Context) (int, error)
}

// Service holds dataset business rules. Reads are filtered by the caller's
// role: a dataset the role cannot access behaves as if it does not exist.
type Service struct {
	repo  Repository
	audit *shared.AuditLogger
	log   *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, audit *shared.AuditLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, log: logger}
}

// Create validates and persists a new dataset. Classification defaults to
// internal, the conservative middle ground.
func (s *Service) Create(ctx context.Context, req CreateDatasetRequest, actorID int64) (Dataset, error) {
	d := Dataset{
		Name:           req.Name,
		Description:    req.Description,
		Source:         req.Source,
		Classification: policy.ClassificationInternal,
		Format:         Format(req.Format),
		SizeMB:         req.SizeMB,
	}
	if req.Classification != "" {
		d.Classification = policy.Classification(req.Classification)
	}
	if err := d.Validate(); err != nil {
		return Dataset{}, err
	}

	id, err := s.repo.Insert(ctx, d)
	if err != nil {
		return Dataset{}, fmt.Errorf("create dataset: %w", err)
	}
	d.ID = id

	s.record(ctx, actorID, "dataset.create", id, map[string]any{"classification": d.Classification})
	return d, nil
}

// Get fetches a dataset, hiding records the role may not access.
func (s *Service) Get(ctx context.Context, id int64, role policy.Role) (Dataset, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Dataset{}, err
	}
	if !d.AccessibleBy(role) {
		return Dataset{}, shared.ErrNotFound
	}
	return d, nil
}

// List returns the page of datasets visible to the role. Filtering happens
// after the query so the total reflects what the caller can actually see.
func (s *Service) List(ctx context.Context, req ListDatasetsRequest, role policy.Role) ([]Dataset, int, error) {
	all, _, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	visible := make([]Dataset, 0, len(all))
	for _, d := range all {
		if d.AccessibleBy(role) {
			visible = append(visible, d)
		}
	}
	return visible, len(visible), nil
}

// Update applies partial field changes. Classification changes go through
// Upgrade/Downgrade only.
func (s *Service) Update(ctx context.Context, id int64, req UpdateDatasetRequest, actorID int64) (Dataset, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Dataset{}, err
	}

	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.Source != nil {
		d.Source = *req.Source
	}
	if req.Format != nil {
		d.Format = Format(*req.Format)
	}
	if req.SizeMB != nil {
		d.SizeMB = *req.SizeMB
	}
	if err := d.Validate(); err != nil {
		return Dataset{}, err
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return Dataset{}, fmt.Errorf("update dataset: %w", err)
	}
	s.record(ctx, actorID, "dataset.update", id, nil)
	return d, nil
}

// Upgrade raises the classification one step. A no-op at restricted still
// succeeds without touching the store.
func (s *Service) Upgrade(ctx context.Context, id int64, actorID int64) (Dataset, error) {
	return s.shiftClassification(ctx, id, actorID, true)
}

// Downgrade lowers the classification one step; a no-op at public.
func (s *Service) Downgrade(ctx context.Context, id int64, actorID int64) (Dataset, error) {
	return s.shiftClassification(ctx, id, actorID, false)
}

func (s *Service) shiftClassification(ctx context.Context, id, actorID int64, up bool) (Dataset, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Dataset{}, err
	}

	from := d.Classification
	if up {
		d = d.Upgrade()
	} else {
		d = d.Downgrade()
	}
	if d.Classification == from {
		return d, nil
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return Dataset{}, fmt.Errorf("reclassify dataset: %w", err)
	}
	s.record(ctx, actorID, "dataset.classification", id, map[string]any{"from": from, "to": d.Classification})
	return d, nil
}

func (s *Service) record(ctx context.Context, actorID int64, action string, entityID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "dataset",
		EntityID: fmt.Sprintf("%d", entityID),
		Meta:     meta,
	})
	if err != nil && s.log != nil {
		s.log.Warn("audit record failed", "action", action, "error", err)
	}
}
