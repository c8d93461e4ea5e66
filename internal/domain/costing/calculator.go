// Package costing implements the recipe cost rollup: per-ingredient line
// costs, cost per serving and margin-based selling price. Pure computation,
// no persistence, no side effects.
package costing

import (
	"sort"

	"prepstock/internal/core/id"
	"prepstock/internal/core/types"
	"prepstock/internal/domain/ingredient"
)

// Line is the cost contribution of a single ingredient.
type Line struct {
	IngredientID id.ID          `json:"ingredientId"`
	Name         string         `json:"name"`
	Unit         ingredient.Unit `json:"unit"`
	RequiredQty  types.Quantity `json:"requiredQty"`
	PackUsage    types.Quantity `json:"packUsage"`
	Cost         types.Money    `json:"cost"`
}

// Breakdown is the full cost and pricing result for one recipe.
type Breakdown struct {
	Lines []Line `json:"lines"`

	// Missing lists usage-map ids with no catalog entry. Those lines
	// contribute zero cost, so the total silently undercounts; callers
	// may surface this as a warning.
	Missing []id.ID `json:"missing,omitempty"`

	TotalCost        types.Money `json:"totalCost"`
	CostPerServing   types.Money `json:"costPerServing"`
	ProfitPerServing types.Money `json:"profitPerServing"`
	PricePerServing  types.Money `json:"pricePerServing"`
	TotalSaleAmount  types.Money `json:"totalSaleAmount"`
}

// Compute calculates the cost breakdown for a recipe given the current
// ingredient catalog. Deterministic: iteration order of the usage map does
// not affect any figure (the sum is commutative, lines are sorted by name).
//
// Servings below 1 are clamped to 1; the caller is expected to have
// validated servings already, the clamp only prevents division blowups.
func Compute(servings int64, targetMargin types.Money, usage UsageMap, catalog ingredient.Catalog) Breakdown {
	b := Breakdown{
		Lines:            make([]Line, 0, len(usage)),
		TotalCost:        types.Zero(),
		CostPerServing:   types.Zero(),
		ProfitPerServing: types.Zero(),
		PricePerServing:  types.Zero(),
		TotalSaleAmount:  types.Zero(),
	}

	for ingredientID, requiredQty := range usage {
		ing := catalog.Lookup(ingredientID)
		if ing == nil {
			b.Missing = append(b.Missing, ingredientID)
			continue
		}

		packs := PackUsage(requiredQty, ing)
		cost := lineCost(requiredQty, ing)

		b.Lines = append(b.Lines, Line{
			IngredientID: ingredientID,
			Name:         ing.Name,
			Unit:         ing.Unit,
			RequiredQty:  requiredQty,
			PackUsage:    packs,
			Cost:         cost,
		})
		b.TotalCost = b.TotalCost.Add(cost)
	}

	sort.Slice(b.Lines, func(i, j int) bool {
		if b.Lines[i].Name != b.Lines[j].Name {
			return b.Lines[i].Name < b.Lines[j].Name
		}
		return b.Lines[i].IngredientID.String() < b.Lines[j].IngredientID.String()
	})
	sort.Slice(b.Missing, func(i, j int) bool {
		return b.Missing[i].String() < b.Missing[j].String()
	})

	if servings < 1 {
		servings = 1
	}
	servingsDec := types.NewFromFloat(float64(servings))

	b.CostPerServing = b.TotalCost.Div(servingsDec)
	b.ProfitPerServing = b.CostPerServing.Mul(targetMargin).Div(types.Hundred)
	b.PricePerServing = b.CostPerServing.Add(b.ProfitPerServing)
	b.TotalSaleAmount = b.PricePerServing.Mul(servingsDec)

	return b
}

// lineCost is requiredQty / packQuantity * packCost for measured ingredients.
// Piece-type ingredients are priced per item (pack cost is the item cost).
// A non-positive pack size yields zero, matching PackUsage.
func lineCost(requiredQty types.Quantity, ing *ingredient.Ingredient) types.Money {
	if ing.IsPiece() {
		return requiredQty.Mul(ing.PackCost)
	}
	if !ing.PackQuantity.IsPositive() {
		return types.Zero()
	}
	return requiredQty.Div(ing.PackQuantity).Mul(ing.PackCost)
}
