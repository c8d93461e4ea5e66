package ingredient

import (
	"context"

	"prepstock/internal/core/id"
	"prepstock/internal/core/types"
	"prepstock/internal/domain"
)

// Repository defines the interface for ingredient persistence.
type Repository interface {
	// Create inserts a new ingredient.
	Create(ctx context.Context, ing *Ingredient) error

	// GetByID retrieves an ingredient by id.
	GetByID(ctx context.Context, ingredientID id.ID) (*Ingredient, error)

	// Update modifies an existing ingredient (optimistic locking).
	Update(ctx context.Context, ing *Ingredient) error

	// Delete removes an ingredient.
	Delete(ctx context.Context, ingredientID id.ID) error

	// List retrieves a user's ingredients with filtering and pagination.
	List(ctx context.Context, ownerID id.ID, filter domain.ListFilter) (domain.ListResult[*Ingredient], error)

	// ListByOwner retrieves the full catalog of one user, unpaginated.
	// This is the snapshot the cost calculator and reconciler work from.
	ListByOwner(ctx context.Context, ownerID id.ID) ([]*Ingredient, error)

	// ListAll retrieves every ingredient across users (alert watcher scan).
	ListAll(ctx context.Context) ([]*Ingredient, error)

	// UpdateStock sets the stock level of a single ingredient.
	// Issued by the reconciler as an independent write, not part of any
	// larger transaction.
	UpdateStock(ctx context.Context, ingredientID id.ID, stock types.Quantity) error
}
