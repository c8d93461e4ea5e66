package recipe

import (
	"context"
	"fmt"

	"prepstock/internal/core/apperror"
	"prepstock/internal/core/id"
	"prepstock/internal/domain"
	"prepstock/internal/domain/costing"
	"prepstock/internal/domain/ingredient"
	"prepstock/internal/domain/reconcile"
	"prepstock/pkg/logger"
)

// CatalogSource provides the ingredient snapshot each operation works from.
// The snapshot is fetched once per call; two concurrent edits against the
// same ingredient can therefore race and double-deduct. Single mutating
// client per recipe is assumed.
type CatalogSource interface {
	Snapshot(ctx context.Context, ownerID id.ID) (ingredient.Catalog, error)
}

// CostCache memoizes computed cost breakdowns per recipe.
type CostCache interface {
	Get(recipeID id.ID) (costing.Breakdown, bool)
	Set(recipeID id.ID, b costing.Breakdown)
	Flush()
}

// CommitResult is the outcome of a create or edit attempt. When Stock
// reports shortages, nothing was persisted and Recipe is nil; shortages
// are data for the caller, not an error.
type CommitResult struct {
	Recipe *Recipe                    `json:"recipe,omitempty"`
	Stock  reconcile.ValidationResult `json:"stock"`
}

// Service orchestrates the recipe lifecycle: validate availability, persist
// the document, then reconcile ingredient stock.
type Service struct {
	repo      Repository
	catalog   CatalogSource
	committer *reconcile.Committer
	costs     CostCache
}

// NewService creates a new recipe service. costs may be nil to disable
// cost memoization.
func NewService(repo Repository, catalog CatalogSource, committer *reconcile.Committer, costs CostCache) *Service {
	return &Service{
		repo:      repo,
		catalog:   catalog,
		committer: committer,
		costs:     costs,
	}
}

// Create validates the recipe and stock availability, persists the document,
// then deducts pack usage from each referenced ingredient.
//
// Stock updates are sequential independent writes issued after the recipe
// document is saved; a mid-sequence failure leaves the already-applied
// deductions in place and is surfaced as STOCK_UPDATE_INCOMPLETE.
func (s *Service) Create(ctx context.Context, r *Recipe) (CommitResult, error) {
	if err := r.Validate(ctx); err != nil {
		return CommitResult{}, err
	}

	catalog, err := s.catalog.Snapshot(ctx, r.OwnerID)
	if err != nil {
		return CommitResult{}, err
	}

	validation := reconcile.ValidateAvailability(r.Ingredients, catalog, nil)
	if !validation.OK() {
		return CommitResult{Stock: validation}, nil
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return CommitResult{}, fmt.Errorf("create recipe: %w", err)
	}
	s.flushCosts()

	deltas := reconcile.CreationDeltas(r.Ingredients, catalog)
	if err := s.committer.Commit(ctx, deltas); err != nil {
		return CommitResult{Recipe: r, Stock: validation},
			apperror.NewStockNotCommitted(r.ID.String(), err)
	}

	logger.Info(ctx, "recipe created",
		"recipe_id", r.ID,
		"name", r.Name,
		"ingredients", len(r.Ingredients),
	)
	return CommitResult{Recipe: r, Stock: validation}, nil
}

// Update replaces a recipe's content and adjusts stock by the net change
// in pack usage. The previous version's consumption is notionally restored
// before availability is checked, so an edit that keeps quantities
// unchanged always validates.
func (s *Service) Update(ctx context.Context, ownerID id.ID, r *Recipe) (CommitResult, error) {
	if err := r.Validate(ctx); err != nil {
		return CommitResult{}, err
	}

	previous, err := s.Get(ctx, ownerID, r.ID)
	if err != nil {
		return CommitResult{}, err
	}
	r.OwnerID = previous.OwnerID

	catalog, err := s.catalog.Snapshot(ctx, ownerID)
	if err != nil {
		return CommitResult{}, err
	}

	validation := reconcile.ValidateAvailability(r.Ingredients, catalog, previous.Ingredients)
	if !validation.OK() {
		return CommitResult{Stock: validation}, nil
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return CommitResult{}, fmt.Errorf("update recipe: %w", err)
	}
	s.flushCosts()

	deltas := reconcile.EditDeltas(previous.Ingredients, r.Ingredients, catalog)
	if err := s.committer.Commit(ctx, deltas); err != nil {
		return CommitResult{Recipe: r, Stock: validation},
			apperror.NewStockNotCommitted(r.ID.String(), err)
	}

	logger.Info(ctx, "recipe updated",
		"recipe_id", r.ID,
		"adjusted_ingredients", len(deltas),
	)
	return CommitResult{Recipe: r, Stock: validation}, nil
}

// Delete removes the recipe document only. Consumed ingredient stock is
// NOT restored; the ingredients are treated as already used.
func (s *Service) Delete(ctx context.Context, ownerID, recipeID id.ID) error {
	if _, err := s.Get(ctx, ownerID, recipeID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, recipeID); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	s.flushCosts()

	logger.Info(ctx, "recipe deleted", "recipe_id", recipeID)
	return nil
}

// Get retrieves a recipe owned by ownerID.
func (s *Service) Get(ctx context.Context, ownerID, recipeID id.ID) (*Recipe, error) {
	r, err := s.repo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if r.OwnerID != ownerID {
		return nil, apperror.NewNotFound("recipe", recipeID.String())
	}
	return r, nil
}

// List retrieves a user's recipes.
func (s *Service) List(ctx context.Context, ownerID id.ID, filter domain.ListFilter) (domain.ListResult[*Recipe], error) {
	return s.repo.List(ctx, ownerID, filter)
}

// Cost returns the cost breakdown for a recipe against the current catalog.
// Read-only: fetches are best-effort, missing ingredient references
// contribute zero cost and are listed in the result.
func (s *Service) Cost(ctx context.Context, ownerID, recipeID id.ID) (costing.Breakdown, error) {
	// Ownership gate comes first: the cache is keyed by recipe id alone
	// and must never answer for a recipe the caller does not own.
	r, err := s.Get(ctx, ownerID, recipeID)
	if err != nil {
		return costing.Breakdown{}, err
	}

	if s.costs != nil {
		if b, ok := s.costs.Get(recipeID); ok {
			return b, nil
		}
	}

	catalog, err := s.catalog.Snapshot(ctx, ownerID)
	if err != nil {
		return costing.Breakdown{}, err
	}

	b := costing.Compute(r.Servings, r.TargetMargin, r.Ingredients, catalog)
	if s.costs != nil {
		s.costs.Set(recipeID, b)
	}
	return b, nil
}

// ValidateStock runs the availability pre-check without persisting anything.
// previousRecipeID, when set, nets out that recipe's current usage (edit
// preview).
func (s *Service) ValidateStock(ctx context.Context, ownerID id.ID, usage costing.UsageMap, previousRecipeID *id.ID) (reconcile.ValidationResult, error) {
	catalog, err := s.catalog.Snapshot(ctx, ownerID)
	if err != nil {
		return reconcile.ValidationResult{}, err
	}

	var previous costing.UsageMap
	if previousRecipeID != nil {
		prev, err := s.Get(ctx, ownerID, *previousRecipeID)
		if err != nil {
			return reconcile.ValidationResult{}, err
		}
		previous = prev.Ingredients
	}

	return reconcile.ValidateAvailability(usage, catalog, previous), nil
}

func (s *Service) flushCosts() {
	if s.costs != nil {
		s.costs.Flush()
	}
}
