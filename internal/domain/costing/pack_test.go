package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"prepstock/internal/core/types"
	"prepstock/internal/domain/ingredient"
)

func measuredIngredient(packQuantity string) *ingredient.Ingredient {
	return &ingredient.Ingredient{
		Name:         "flour",
		Unit:         ingredient.UnitGram,
		PackQuantity: types.Must(packQuantity),
	}
}

func TestPackUsage_Measured(t *testing.T) {
	ing := measuredIngredient("1000")

	got := PackUsage(types.Must("500"), ing)
	assert.True(t, got.Equal(types.Must("0.5")), "got %s", got)

	got = PackUsage(types.Must("2500"), ing)
	assert.True(t, got.Equal(types.Must("2.5")), "got %s", got)
}

func TestPackUsage_PiecePassesThrough(t *testing.T) {
	ing := &ingredient.Ingredient{Name: "egg", Unit: ingredient.UnitPiece}

	got := PackUsage(types.Must("3"), ing)
	assert.True(t, got.Equal(types.Must("3")), "got %s", got)
}

func TestPackUsage_NonPositivePackSizeYieldsZero(t *testing.T) {
	got := PackUsage(types.Must("500"), measuredIngredient("0"))
	assert.True(t, got.IsZero(), "got %s", got)

	got = PackUsage(types.Must("500"), measuredIngredient("-10"))
	assert.True(t, got.IsZero(), "got %s", got)
}
