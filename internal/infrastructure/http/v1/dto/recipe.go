package dto

import (
	"time"

	"prepstock/internal/core/apperror"
	"prepstock/internal/core/id"
	"prepstock/internal/core/types"
	"prepstock/internal/domain"
	"prepstock/internal/domain/costing"
	"prepstock/internal/domain/recipe"
)

// CreateRecipeRequest for adding a recipe.
type CreateRecipeRequest struct {
	Name         string                    `json:"name" binding:"required"`
	Servings     int64                     `json:"servings" binding:"required,min=1"`
	TargetMargin types.Money               `json:"targetMargin"`
	Ingredients  map[string]types.Quantity `json:"ingredients" binding:"required"`
}

// ToDomain builds a new Recipe owned by ownerID.
func (r CreateRecipeRequest) ToDomain(ownerID id.ID) (*recipe.Recipe, error) {
	usage, err := ParseUsage(r.Ingredients)
	if err != nil {
		return nil, err
	}

	rec := recipe.New(ownerID, r.Name, r.Servings)
	rec.TargetMargin = r.TargetMargin
	rec.Ingredients = usage
	return rec, nil
}

// UpdateRecipeRequest for replacing a recipe.
type UpdateRecipeRequest struct {
	Name         string                    `json:"name" binding:"required"`
	Servings     int64                     `json:"servings" binding:"required,min=1"`
	TargetMargin types.Money               `json:"targetMargin"`
	Ingredients  map[string]types.Quantity `json:"ingredients" binding:"required"`
	Version      int                       `json:"version" binding:"required,min=1"`
}

// ToDomain builds the updated Recipe for recipeID.
func (r UpdateRecipeRequest) ToDomain(ownerID, recipeID id.ID) (*recipe.Recipe, error) {
	usage, err := ParseUsage(r.Ingredients)
	if err != nil {
		return nil, err
	}

	rec := recipe.New(ownerID, r.Name, r.Servings)
	rec.ID = recipeID
	rec.TargetMargin = r.TargetMargin
	rec.Ingredients = usage
	rec.SetVersion(r.Version)
	return rec, nil
}

// ValidateStockRequest runs the availability pre-check.
type ValidateStockRequest struct {
	Ingredients      map[string]types.Quantity `json:"ingredients" binding:"required"`
	PreviousRecipeID *string                   `json:"previousRecipeId"`
}

// ParseUsage converts a string-keyed quantity map into a usage map.
func ParseUsage(raw map[string]types.Quantity) (costing.UsageMap, error) {
	usage := make(costing.UsageMap, len(raw))
	for key, qty := range raw {
		ingredientID, err := id.Parse(key)
		if err != nil {
			return nil, apperror.NewValidation("invalid ingredient id").
				WithDetail("field", "ingredients").
				WithDetail("value", key)
		}
		usage[ingredientID] = qty
	}
	return usage, nil
}

// RecipeResponse is the API view of a recipe.
type RecipeResponse struct {
	ID           string                    `json:"id"`
	Name         string                    `json:"name"`
	Servings     int64                     `json:"servings"`
	TargetMargin types.Money               `json:"targetMargin"`
	Ingredients  map[string]types.Quantity `json:"ingredients"`
	Version      int                       `json:"version"`
	CreatedAt    time.Time                 `json:"createdAt"`
	UpdatedAt    time.Time                 `json:"updatedAt"`
}

// FromRecipe converts a domain recipe.
func FromRecipe(rec *recipe.Recipe) RecipeResponse {
	usage := make(map[string]types.Quantity, len(rec.Ingredients))
	for ingredientID, qty := range rec.Ingredients {
		usage[ingredientID.String()] = qty
	}
	return RecipeResponse{
		ID:           rec.ID.String(),
		Name:         rec.Name,
		Servings:     rec.Servings,
		TargetMargin: rec.TargetMargin,
		Ingredients:  usage,
		Version:      rec.Version,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

// RecipeListResponse wraps a paginated recipe listing.
type RecipeListResponse struct {
	Items      []RecipeResponse `json:"items"`
	TotalCount int64            `json:"totalCount"`
	Limit      int              `json:"limit"`
	Offset     int              `json:"offset"`
}

// FromRecipeList converts a domain list result.
func FromRecipeList(result domain.ListResult[*recipe.Recipe]) RecipeListResponse {
	items := make([]RecipeResponse, 0, len(result.Items))
	for _, rec := range result.Items {
		items = append(items, FromRecipe(rec))
	}
	return RecipeListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	}
}
