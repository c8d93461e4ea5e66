package costing

import (
	"prepstock/internal/core/types"
	"prepstock/internal/domain/ingredient"
)

// PackUsage converts a required quantity in natural units into the number of
// packs consumed. For piece-type ingredients pack and item coincide, so the
// quantity passes through unchanged. A non-positive pack size makes the
// conversion undefined and yields zero, never a division error.
//
// This is the single conversion shared by the cost calculator and the stock
// reconciler; stock is always compared in pack terms.
func PackUsage(requiredQty types.Quantity, ing *ingredient.Ingredient) types.Quantity {
	if ing.IsPiece() {
		return requiredQty
	}
	if !ing.PackQuantity.IsPositive() {
		return types.Zero()
	}
	return requiredQty.Div(ing.PackQuantity)
}
