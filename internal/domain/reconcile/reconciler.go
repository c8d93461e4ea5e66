// Package reconcile keeps ingredient stock consistent with recipe
// creation and editing. It validates availability before any persistence
// and computes the per-ingredient pack deltas to apply afterwards.
package reconcile

import (
	"context"
	"fmt"
	"sort"

	"prepstock/internal/core/id"
	"prepstock/internal/core/types"
	"prepstock/internal/domain/costing"
	"prepstock/internal/domain/ingredient"
	"prepstock/pkg/logger"
)

// InsufficientItem describes one failed availability check.
// Requested and Available are reported in natural units so the UI can
// render "requested 30 g, available 10 g" directly.
type InsufficientItem struct {
	IngredientID id.ID           `json:"ingredientId"`
	Name         string          `json:"name"`
	Requested    types.Quantity  `json:"requested"`
	Available    types.Quantity  `json:"available"`
	Unit         ingredient.Unit `json:"unit"`
}

// ValidationResult reports availability for a candidate usage map.
// It is returned as data, never as an error, so the caller can render
// shortages inline.
type ValidationResult struct {
	Insufficient []InsufficientItem `json:"insufficientItems"`

	// Missing lists usage-map ids with no catalog entry. They cannot be
	// validated and are skipped, mirroring the cost calculator's
	// permissiveness, but surfaced here rather than dropped silently.
	Missing []id.ID `json:"missing,omitempty"`
}

// OK reports whether every line passed the availability check.
func (r ValidationResult) OK() bool {
	return len(r.Insufficient) == 0
}

// ValidateAvailability checks that the catalog can cover newUsage.
//
// For edits, previousUsage is the usage map of the recipe version being
// replaced: whatever that version consumed is notionally given back before
// checking the new request, so an edit that does not change quantities can
// never fail on stock. Pass nil for brand-new recipes.
//
// Purely computational; must run, and pass, before any persistence.
func ValidateAvailability(newUsage costing.UsageMap, catalog ingredient.Catalog, previousUsage costing.UsageMap) ValidationResult {
	var result ValidationResult

	for ingredientID, requestedQty := range newUsage {
		ing := catalog.Lookup(ingredientID)
		if ing == nil {
			result.Missing = append(result.Missing, ingredientID)
			continue
		}

		previousPacks := costing.PackUsage(previousUsage.Get(ingredientID), ing)
		effectiveAvailablePacks := ing.Stock.Add(previousPacks)
		requestedPacks := costing.PackUsage(requestedQty, ing)

		if requestedPacks.GreaterThan(effectiveAvailablePacks) {
			available := effectiveAvailablePacks
			if !ing.IsPiece() {
				available = effectiveAvailablePacks.Mul(ing.PackQuantity)
			}
			result.Insufficient = append(result.Insufficient, InsufficientItem{
				IngredientID: ingredientID,
				Name:         ing.Name,
				Requested:    requestedQty,
				Available:    available,
				Unit:         ing.Unit,
			})
		}
	}

	sort.Slice(result.Insufficient, func(i, j int) bool {
		return result.Insufficient[i].Name < result.Insufficient[j].Name
	})
	sort.Slice(result.Missing, func(i, j int) bool {
		return result.Missing[i].String() < result.Missing[j].String()
	})

	return result
}

// StockDelta is one pending stock mutation: Packs is the pack usage to
// subtract from the ingredient's stock (negative restores stock), NewStock
// is the resulting level computed from the catalog snapshot.
type StockDelta struct {
	IngredientID id.ID
	Packs        types.Quantity
	NewStock     types.Quantity
}

// CreationDeltas computes the deductions for a brand-new recipe.
// Unknown ingredient ids are skipped.
func CreationDeltas(usage costing.UsageMap, catalog ingredient.Catalog) []StockDelta {
	deltas := make([]StockDelta, 0, len(usage))
	for ingredientID, usedQty := range usage {
		ing := catalog.Lookup(ingredientID)
		if ing == nil {
			continue
		}
		packs := costing.PackUsage(usedQty, ing)
		deltas = append(deltas, StockDelta{
			IngredientID: ingredientID,
			Packs:        packs,
			NewStock:     ing.Stock.Sub(packs),
		})
	}
	sortDeltas(deltas)
	return deltas
}

// EditDeltas computes stock adjustments for an edit: the union of ids in
// oldUsage and newUsage, with absent quantities defaulting to zero. An
// ingredient removed from the recipe nets to a restore, a newly added one
// to a plain deduction. Zero deltas are dropped to avoid needless writes.
func EditDeltas(oldUsage, newUsage costing.UsageMap, catalog ingredient.Catalog) []StockDelta {
	ids := oldUsage.Union(newUsage)
	deltas := make([]StockDelta, 0, len(ids))

	for _, ingredientID := range ids {
		ing := catalog.Lookup(ingredientID)
		if ing == nil {
			continue
		}
		oldPacks := costing.PackUsage(oldUsage.Get(ingredientID), ing)
		newPacks := costing.PackUsage(newUsage.Get(ingredientID), ing)
		delta := newPacks.Sub(oldPacks)
		if delta.IsZero() {
			continue
		}
		deltas = append(deltas, StockDelta{
			IngredientID: ingredientID,
			Packs:        delta,
			NewStock:     ing.Stock.Sub(delta),
		})
	}
	sortDeltas(deltas)
	return deltas
}

func sortDeltas(deltas []StockDelta) {
	sort.Slice(deltas, func(i, j int) bool {
		return deltas[i].IngredientID.String() < deltas[j].IngredientID.String()
	})
}

// StockWriter persists a single ingredient's new stock level.
type StockWriter interface {
	UpdateStock(ctx context.Context, ingredientID id.ID, stock types.Quantity) error
}

// Committer applies stock deltas through a StockWriter.
type Committer struct {
	stocks StockWriter
}

// NewCommitter creates a Committer.
func NewCommitter(stocks StockWriter) *Committer {
	return &Committer{stocks: stocks}
}

// Commit applies deltas as sequential independent writes. There is no
// batching and no rollback: a mid-sequence failure leaves earlier writes
// applied and returns the failing ingredient's error. The caller decides
// how to report the partial state.
func (c *Committer) Commit(ctx context.Context, deltas []StockDelta) error {
	for i, d := range deltas {
		if err := c.stocks.UpdateStock(ctx, d.IngredientID, d.NewStock); err != nil {
			logger.Error(ctx, "stock update failed mid-commit",
				"ingredient_id", d.IngredientID,
				"applied", i,
				"total", len(deltas),
			)
			return fmt.Errorf("update stock for %s: %w", d.IngredientID, err)
		}
	}

	if len(deltas) > 0 {
		logger.Info(ctx, "stock reconciled",
			"ingredients", len(deltas),
		)
	}
	return nil
}
