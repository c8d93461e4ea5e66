package ingredient

import (
	"context"
	"fmt"

	"prepstock/internal/core/apperror"
	"prepstock/internal/core/id"
	"prepstock/internal/core/types"
	"prepstock/internal/domain"
	"prepstock/pkg/logger"
)

// SnapshotCache caches a user's full catalog between mutations.
type SnapshotCache interface {
	Get(ctx context.Context, ownerID id.ID) ([]*Ingredient, bool)
	Set(ctx context.Context, ownerID id.ID, items []*Ingredient)
	Invalidate(ctx context.Context, ownerID id.ID)
}

// CostInvalidator drops memoized recipe cost figures. Any catalog change
// can shift every recipe's cost, so invalidation is a full flush.
type CostInvalidator interface {
	Flush()
}

// Service provides business logic for the ingredient catalog.
type Service struct {
	repo      Repository
	snapshots SnapshotCache
	costs     CostInvalidator
}

// NewService creates a new ingredient service. snapshots and costs may be
// nil; caching is then skipped.
func NewService(repo Repository, snapshots SnapshotCache, costs CostInvalidator) *Service {
	return &Service{
		repo:      repo,
		snapshots: snapshots,
		costs:     costs,
	}
}

// Create validates and persists a new ingredient.
func (s *Service) Create(ctx context.Context, ing *Ingredient) error {
	if err := ing.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, ing); err != nil {
		return fmt.Errorf("create ingredient: %w", err)
	}

	s.invalidate(ctx, ing.OwnerID)
	logger.Info(ctx, "ingredient created",
		"ingredient_id", ing.ID,
		"name", ing.Name,
	)
	return nil
}

// Get retrieves an ingredient owned by ownerID.
func (s *Service) Get(ctx context.Context, ownerID, ingredientID id.ID) (*Ingredient, error) {
	ing, err := s.repo.GetByID(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	if ing.OwnerID != ownerID {
		return nil, apperror.NewNotFound("ingredient", ingredientID.String())
	}
	return ing, nil
}

// Update validates and persists changes to an ingredient.
func (s *Service) Update(ctx context.Context, ownerID id.ID, ing *Ingredient) error {
	if err := ing.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.Get(ctx, ownerID, ing.ID)
	if err != nil {
		return err
	}
	ing.OwnerID = existing.OwnerID

	if err := s.repo.Update(ctx, ing); err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}

	s.invalidate(ctx, ownerID)
	return nil
}

// Delete removes an ingredient. Recipes referencing it keep their usage
// entries; the cost calculator and reconciler treat the dangling id as a
// zero-cost, skip-validation line.
func (s *Service) Delete(ctx context.Context, ownerID, ingredientID id.ID) error {
	if _, err := s.Get(ctx, ownerID, ingredientID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, ingredientID); err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}

	s.invalidate(ctx, ownerID)
	logger.Info(ctx, "ingredient deleted", "ingredient_id", ingredientID)
	return nil
}

// List retrieves a user's ingredients with filtering and pagination.
func (s *Service) List(ctx context.Context, ownerID id.ID, filter domain.ListFilter) (domain.ListResult[*Ingredient], error) {
	return s.repo.List(ctx, ownerID, filter)
}

// Snapshot returns the user's full catalog keyed by id, served from the
// snapshot cache when warm. Callers treat the snapshot as read-only.
func (s *Service) Snapshot(ctx context.Context, ownerID id.ID) (Catalog, error) {
	if s.snapshots != nil {
		if items, ok := s.snapshots.Get(ctx, ownerID); ok {
			return NewCatalog(items), nil
		}
	}

	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	if s.snapshots != nil {
		s.snapshots.Set(ctx, ownerID, items)
	}
	return NewCatalog(items), nil
}

// LowStock returns the user's ingredients at or below the low-stock threshold.
func (s *Service) LowStock(ctx context.Context, ownerID id.ID) ([]*Ingredient, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	low := make([]*Ingredient, 0)
	for _, ing := range items {
		if ing.Stock.LessThanOrEqual(LowStockThreshold) {
			low = append(low, ing)
		}
	}
	return low, nil
}

// UpdateStock sets a single ingredient's stock level. This is the
// reconciler's collaborator: each call is an independent write.
func (s *Service) UpdateStock(ctx context.Context, ingredientID id.ID, stock types.Quantity) error {
	if stock.IsNegative() {
		return apperror.NewValidation("stock cannot be negative").
			WithDetail("field", "stock").
			WithDetail("ingredientId", ingredientID.String())
	}

	ing, err := s.repo.GetByID(ctx, ingredientID)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateStock(ctx, ingredientID, stock); err != nil {
		return fmt.Errorf("update stock: %w", err)
	}

	s.invalidate(ctx, ing.OwnerID)
	logger.Debug(ctx, "stock updated",
		"ingredient_id", ingredientID,
		"stock", stock,
	)
	return nil
}

func (s *Service) invalidate(ctx context.Context, ownerID id.ID) {
	if s.snapshots != nil {
		s.snapshots.Invalidate(ctx, ownerID)
	}
	if s.costs != nil {
		s.costs.Flush()
	}
}
