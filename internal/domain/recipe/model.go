// Package recipe provides the recipe catalog and the create/edit/delete
// orchestration that keeps ingredient stock in step with recipe changes.
package recipe

import (
	"context"

	"prepstock/internal/core/apperror"
	"prepstock/internal/core/entity"
	"prepstock/internal/core/id"
	"prepstock/internal/core/types"
	"prepstock/internal/domain/costing"
)

// Recipe represents a dish composed from catalog ingredients.
type Recipe struct {
	entity.BaseEntity

	// Name is the display name
	Name string `db:"name" json:"name"`

	// Servings the recipe yields (≥ 1)
	Servings int64 `db:"servings" json:"servings"`

	// TargetMargin is the desired profit percentage applied per serving
	TargetMargin types.Money `db:"target_margin" json:"targetMargin"`

	// Ingredients maps ingredient id to required quantity in natural units
	Ingredients costing.UsageMap `db:"ingredients" json:"ingredients"`
}

// New creates a new Recipe with required fields.
func New(ownerID id.ID, name string, servings int64) *Recipe {
	return &Recipe{
		BaseEntity: entity.NewBaseEntity(ownerID),
		Name:       name,
		Servings:   servings,
	}
}

// Validate implements entity.Validatable.
func (r *Recipe) Validate(ctx context.Context) error {
	if r.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if r.Servings < 1 {
		return apperror.NewValidation("servings must be at least 1").
			WithDetail("field", "servings")
	}

	if r.TargetMargin.IsNegative() {
		return apperror.NewValidation("target margin cannot be negative").
			WithDetail("field", "targetMargin")
	}

	if len(r.Ingredients) == 0 {
		return apperror.NewValidation("at least one ingredient is required").
			WithDetail("field", "ingredients")
	}

	for ingredientID, qty := range r.Ingredients {
		if !qty.IsPositive() {
			return apperror.NewValidation("ingredient quantity must be positive").
				WithDetail("field", "ingredients").
				WithDetail("ingredientId", ingredientID.String())
		}
	}

	return nil
}
