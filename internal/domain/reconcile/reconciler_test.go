package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepstock/internal/core/entity"
	"prepstock/internal/core/id"
	"prepstock/internal/core/types"
	"prepstock/internal/domain/costing"
	"prepstock/internal/domain/ingredient"
)

func stockedIngredient(name string, unit ingredient.Unit, packQuantity, stock string) *ingredient.Ingredient {
	return &ingredient.Ingredient{
		BaseEntity:   entity.NewBaseEntity(id.New()),
		Name:         name,
		Unit:         unit,
		PackQuantity: types.Must(packQuantity),
		Stock:        types.Must(stock),
	}
}

func TestValidateAvailability_Sufficient(t *testing.T) {
	flour := stockedIngredient("flour", ingredient.UnitGram, "1000", "2")
	catalog := ingredient.NewCatalog([]*ingredient.Ingredient{flour})

	// 2 packs on hand, 1.5 packs requested
	result := ValidateAvailability(costing.UsageMap{flour.ID: types.Must("1500")}, catalog, nil)

	assert.True(t, result.OK())
	assert.Empty(t, result.Insufficient)
	assert.Empty(t, result.Missing)
}

func TestValidateAvailability_ShortageReportedInNaturalUnits(t *testing.T) {
	flour := stockedIngredient("flour", ingredient.UnitGram, "1000", "0.01")
	catalog := ingredient.NewCatalog([]*ingredient.Ingredient{flour})

	result := ValidateAvailability(costing.UsageMap{flour.ID: types.Must("30")}, catalog, nil)

	require.Len(t, result.Insufficient, 1)
	item := result.Insufficient[0]
	assert.Equal(t, flour.ID, item.IngredientID)
	assert.Equal(t, "flour", item.Name)
	assert.True(t, item.Requested.Equal(types.Must("30")), "requested %s", item.Requested)
	assert.True(t, item.Available.Equal(types.Must("10")), "available %s", item.Available)
	assert.Equal(t, ingredient.UnitGram, item.Unit)
	assert.False(t, result.OK())
}

func TestValidateAvailability_PieceShortageStaysRaw(t *testing.T) {
	egg := stockedIngredient("egg", ingredient.UnitPiece, "0", "2")
	catalog := ingredient.NewCatalog([]*ingredient.Ingredient{egg})

	result := ValidateAvailability(costing.UsageMap{egg.ID: types.Must("5")}, catalog, nil)

	require.Len(t, result.Insufficient, 1)
	assert.True(t, result.Insufficient[0].Available.Equal(types.Must("2")))
}

func TestValidateAvailability_EditRestoresPreviousUsage(t *testing.T) {
	// Stock already reduced to zero by the previous version's consumption.
	flour := stockedIngredient("flour", ingredient.UnitGram, "1000", "0")
	catalog := ingredient.NewCatalog([]*ingredient.Ingredient{flour})

	previous := costing.UsageMap{flour.ID: types.Must("1000")}

	// Unchanged quantities must always validate.
	result := ValidateAvailability(previous, catalog, previous)
	assert.True(t, result.OK())

	// Requesting more than stock plus restored usage must fail.
	result = ValidateAvailability(costing.UsageMap{flour.ID: types.Must("1500")}, catalog, previous)
	assert.False(t, result.OK())
}

func TestValidateAvailability_UnknownIngredientSkippedButSurfaced(t *testing.T) {
	catalog := ingredient.Catalog{}
	ghost := id.New()

	result := ValidateAvailability(costing.UsageMap{ghost: types.Must("5")}, catalog, nil)

	assert.True(t, result.OK())
	require.Len(t, result.Missing, 1)
	assert.Equal(t, ghost, result.Missing[0])
}

func TestCreationDeltas(t *testing.T) {
	flour := stockedIngredient("flour", ingredient.UnitGram, "1000", "2")
	egg := stockedIngredient("egg", ingredient.UnitPiece, "0", "10")
	catalog := ingredient.NewCatalog([]*ingredient.Ingredient{flour, egg})

	usage := costing.UsageMap{
		flour.ID: types.Must("500"),
		egg.ID:   types.Must("3"),
		id.New(): types.Must("42"), // unknown, skipped
	}

	deltas := CreationDeltas(usage, catalog)
	require.Len(t, deltas, 2)

	byID := map[id.ID]StockDelta{}
	for _, d := range deltas {
		byID[d.IngredientID] = d
	}
	assert.True(t, byID[flour.ID].NewStock.Equal(types.Must("1.5")))
	assert.True(t, byID[egg.ID].NewStock.Equal(types.Must("7")))
}

func TestEditDeltas_NetsOldAgainstNew(t *testing.T) {
	flour := stockedIngredient("flour", ingredient.UnitGram, "1000", "1.5")
	sugar := stockedIngredient("sugar", ingredient.UnitGram, "500", "1")
	egg := stockedIngredient("egg", ingredient.UnitPiece, "0", "7")
	catalog := ingredient.NewCatalog([]*ingredient.Ingredient{flour, sugar, egg})

	oldUsage := costing.UsageMap{
		flour.ID: types.Must("500"), // 0.5 packs
		egg.ID:   types.Must("3"),
	}
	newUsage := costing.UsageMap{
		flour.ID: types.Must("1000"), // 1 pack, delta +0.5
		sugar.ID: types.Must("250"),  // newly added, 0.5 packs
		// egg removed, delta -3
	}

	deltas := EditDeltas(oldUsage, newUsage, catalog)
	require.Len(t, deltas, 3)

	byID := map[id.ID]StockDelta{}
	for _, d := range deltas {
		byID[d.IngredientID] = d
	}
	assert.True(t, byID[flour.ID].Packs.Equal(types.Must("0.5")))
	assert.True(t, byID[flour.ID].NewStock.Equal(types.Must("1")))
	assert.True(t, byID[sugar.ID].Packs.Equal(types.Must("0.5")))
	assert.True(t, byID[sugar.ID].NewStock.Equal(types.Must("0.5")))
	assert.True(t, byID[egg.ID].Packs.Equal(types.Must("-3")))
	assert.True(t, byID[egg.ID].NewStock.Equal(types.Must("10")))
}

func TestEditDeltas_DropsZeroDeltas(t *testing.T) {
	flour := stockedIngredient("flour", ingredient.UnitGram, "1000", "2")
	catalog := ingredient.NewCatalog([]*ingredient.Ingredient{flour})

	usage := costing.UsageMap{flour.ID: types.Must("500")}
	deltas := EditDeltas(usage, usage, catalog)

	assert.Empty(t, deltas)
}

type recordingStockWriter struct {
	writes  []id.ID
	failOn  id.ID
	failErr error
}

func (w *recordingStockWriter) UpdateStock(ctx context.Context, ingredientID id.ID, stock types.Quantity) error {
	if w.failErr != nil && ingredientID == w.failOn {
		return w.failErr
	}
	w.writes = append(w.writes, ingredientID)
	return nil
}

func TestCommitter_AppliesAllDeltas(t *testing.T) {
	writer := &recordingStockWriter{}
	c := NewCommitter(writer)

	deltas := []StockDelta{
		{IngredientID: id.New(), NewStock: types.Must("1")},
		{IngredientID: id.New(), NewStock: types.Must("2")},
	}

	err := c.Commit(context.Background(), deltas)
	require.NoError(t, err)
	assert.Len(t, writer.writes, 2)
}

func TestCommitter_StopsMidSequenceWithoutRollback(t *testing.T) {
	first := stockedIngredient("a", ingredient.UnitGram, "1000", "1")
	second := stockedIngredient("b", ingredient.UnitGram, "1000", "1")
	third := stockedIngredient("c", ingredient.UnitGram, "1000", "1")

	boom := errors.New("connection lost")
	writer := &recordingStockWriter{failOn: second.ID, failErr: boom}
	c := NewCommitter(writer)

	deltas := []StockDelta{
		{IngredientID: first.ID, NewStock: types.Must("0.5")},
		{IngredientID: second.ID, NewStock: types.Must("0.5")},
		{IngredientID: third.ID, NewStock: types.Must("0.5")},
	}
	// Deltas are pre-sorted by the callers; keep the declared order here.

	err := c.Commit(context.Background(), deltas)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// First write applied and kept, third never attempted.
	assert.Equal(t, []id.ID{first.ID}, writer.writes)
}
