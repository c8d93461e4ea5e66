package dto

import (
	"time"

	"prepstock/internal/core/id"
	"prepstock/internal/core/types"
	"prepstock/internal/domain"
	"prepstock/internal/domain/ingredient"
)

// CreateIngredientRequest for adding a catalog entry.
type CreateIngredientRequest struct {
	Name         string         `json:"name" binding:"required"`
	Unit         string         `json:"unit" binding:"required"`
	PackQuantity types.Quantity `json:"packQuantity"`
	PackCost     types.Money    `json:"packCost"`
	Stock        types.Quantity `json:"stock"`
	ExpiresAt    time.Time      `json:"expiresAt"`
}

// ToDomain builds a new Ingredient owned by ownerID.
func (r CreateIngredientRequest) ToDomain(ownerID id.ID) *ingredient.Ingredient {
	ing := ingredient.New(ownerID, r.Name, ingredient.Unit(r.Unit))
	ing.PackQuantity = r.PackQuantity
	ing.PackCost = r.PackCost
	ing.Stock = r.Stock
	ing.ExpiresAt = r.ExpiresAt
	return ing
}

// UpdateIngredientRequest for replacing a catalog entry.
type UpdateIngredientRequest struct {
	Name         string         `json:"name" binding:"required"`
	Unit         string         `json:"unit" binding:"required"`
	PackQuantity types.Quantity `json:"packQuantity"`
	PackCost     types.Money    `json:"packCost"`
	Stock        types.Quantity `json:"stock"`
	ExpiresAt    time.Time      `json:"expiresAt"`
	Version      int            `json:"version" binding:"required,min=1"`
}

// ToDomain builds the updated Ingredient for ingredientID.
func (r UpdateIngredientRequest) ToDomain(ownerID, ingredientID id.ID) *ingredient.Ingredient {
	ing := ingredient.New(ownerID, r.Name, ingredient.Unit(r.Unit))
	ing.ID = ingredientID
	ing.PackQuantity = r.PackQuantity
	ing.PackCost = r.PackCost
	ing.Stock = r.Stock
	ing.ExpiresAt = r.ExpiresAt
	ing.SetVersion(r.Version)
	return ing
}

// UpdateStockRequest sets a single ingredient's stock level.
type UpdateStockRequest struct {
	Stock types.Quantity `json:"stock"`
}

// IngredientResponse is the API view of a catalog entry.
type IngredientResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Unit         string         `json:"unit"`
	PackQuantity types.Quantity `json:"packQuantity"`
	PackCost     types.Money    `json:"packCost"`
	Stock        types.Quantity `json:"stock"`
	ExpiresAt    time.Time      `json:"expiresAt"`
	Version      int            `json:"version"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// FromIngredient converts a domain ingredient.
func FromIngredient(ing *ingredient.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:           ing.ID.String(),
		Name:         ing.Name,
		Unit:         string(ing.Unit),
		PackQuantity: ing.PackQuantity,
		PackCost:     ing.PackCost,
		Stock:        ing.Stock,
		ExpiresAt:    ing.ExpiresAt,
		Version:      ing.Version,
		CreatedAt:    ing.CreatedAt,
		UpdatedAt:    ing.UpdatedAt,
	}
}

// IngredientListResponse wraps a paginated catalog listing.
type IngredientListResponse struct {
	Items      []IngredientResponse `json:"items"`
	TotalCount int64                `json:"totalCount"`
	Limit      int                  `json:"limit"`
	Offset     int                  `json:"offset"`
}

// FromIngredientList converts a domain list result.
func FromIngredientList(result domain.ListResult[*ingredient.Ingredient]) IngredientListResponse {
	items := make([]IngredientResponse, 0, len(result.Items))
	for _, ing := range result.Items {
		items = append(items, FromIngredient(ing))
	}
	return IngredientListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	}
}
