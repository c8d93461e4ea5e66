package recipe

import (
	"context"

	"prepstock/internal/core/id"
	"prepstock/internal/domain"
)

// Repository defines the interface for recipe persistence.
type Repository interface {
	// Create inserts a new recipe.
	Create(ctx context.Context, r *Recipe) error

	// GetByID retrieves a recipe by id.
	GetByID(ctx context.Context, recipeID id.ID) (*Recipe, error)

	// Update modifies an existing recipe (optimistic locking).
	Update(ctx context.Context, r *Recipe) error

	// Delete removes a recipe document. Stock is not touched here.
	Delete(ctx context.Context, recipeID id.ID) error

	// List retrieves a user's recipes with filtering and pagination.
	List(ctx context.Context, ownerID id.ID, filter domain.ListFilter) (domain.ListResult[*Recipe], error)
}
