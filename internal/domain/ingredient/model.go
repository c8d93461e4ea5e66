// Package ingredient provides the ingredient catalog.
// An ingredient is purchased in packs; stock counts packs on hand
// (or individual pieces for piece-type ingredients).
package ingredient

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"prepstock/internal/core/apperror"
	"prepstock/internal/core/entity"
	"prepstock/internal/core/id"
	"prepstock/internal/core/types"
)

// Unit defines the natural measurement unit of an ingredient.
type Unit string

const (
	UnitKilogram   Unit = "kg"
	UnitLiter      Unit = "l"
	UnitGram       Unit = "g"
	UnitMilliliter Unit = "ml"
	UnitPiece      Unit = "piece"
)

// Ingredient represents a catalog entry.
type Ingredient struct {
	entity.BaseEntity

	// Name is the display name
	Name string `db:"name" json:"name"`

	// Unit is the natural measurement unit
	Unit Unit `db:"unit" json:"unit"`

	// PackQuantity is the amount of Unit per purchased pack.
	// Unused when Unit is piece (pack and item coincide).
	PackQuantity types.Quantity `db:"pack_quantity" json:"packQuantity"`

	// PackCost is the purchase price per pack
	PackCost types.Money `db:"pack_cost" json:"packCost"`

	// Stock is the number of packs on hand (pieces for piece-type)
	Stock types.Quantity `db:"stock" json:"stock"`

	// ExpiresAt is the expiry date of the current stock
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
}

// New creates a new Ingredient with required fields.
func New(ownerID id.ID, name string, unit Unit) *Ingredient {
	return &Ingredient{
		BaseEntity: entity.NewBaseEntity(ownerID),
		Name:       name,
		Unit:       unit,
	}
}

// IsPiece reports whether the ingredient is counted per piece,
// where pack and unit item coincide.
func (i *Ingredient) IsPiece() bool {
	return i.Unit == UnitPiece
}

// AvailableAmount returns current stock expressed in natural units:
// packs times pack size for measured ingredients, raw count for pieces.
func (i *Ingredient) AvailableAmount() types.Quantity {
	if i.IsPiece() {
		return i.Stock
	}
	return i.Stock.Mul(i.PackQuantity)
}

// DaysToExpiry returns whole days until the expiry date (negative if past).
func (i *Ingredient) DaysToExpiry(now time.Time) int {
	return int(i.ExpiresAt.Sub(now).Hours() / 24)
}

// Validate implements entity.Validatable.
func (i *Ingredient) Validate(ctx context.Context) error {
	if i.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if !isValidUnit(i.Unit) {
		return apperror.NewValidation("invalid unit").
			WithDetail("field", "unit").
			WithDetail("value", string(i.Unit))
	}

	// Pack size is meaningless for pieces, mandatory otherwise
	if !i.IsPiece() && !i.PackQuantity.IsPositive() {
		return apperror.NewValidation("pack quantity must be positive").
			WithDetail("field", "packQuantity")
	}

	if i.PackCost.IsNegative() {
		return apperror.NewValidation("pack cost cannot be negative").
			WithDetail("field", "packCost")
	}

	if i.Stock.IsNegative() {
		return apperror.NewValidation("stock cannot be negative").
			WithDetail("field", "stock")
	}

	return nil
}

func isValidUnit(u Unit) bool {
	switch u {
	case UnitKilogram, UnitLiter, UnitGram, UnitMilliliter, UnitPiece:
		return true
	}
	return false
}

// Catalog is an in-memory snapshot of a user's ingredients, keyed by id.
// The cost calculator and the stock reconciler both read from it; the
// snapshot is fetched once per operation, never mutated in place.
type Catalog map[id.ID]*Ingredient

// NewCatalog builds a Catalog from a slice of ingredients.
func NewCatalog(items []*Ingredient) Catalog {
	c := make(Catalog, len(items))
	for _, item := range items {
		c[item.ID] = item
	}
	return c
}

// Lookup returns the ingredient for id, or nil if absent.
func (c Catalog) Lookup(ingredientID id.ID) *Ingredient {
	return c[ingredientID]
}

// LowStockThreshold is the pack count at or below which an ingredient
// is considered low on stock.
var LowStockThreshold = decimal.NewFromInt(1)
