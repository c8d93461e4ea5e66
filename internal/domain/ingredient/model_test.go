package ingredient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepstock/internal/core/apperror"
	"prepstock/internal/core/id"
	"prepstock/internal/core/types"
)

func validIngredient() *Ingredient {
	ing := New(id.New(), "flour", UnitGram)
	ing.PackQuantity = types.Must("1000")
	ing.PackCost = types.Must("10")
	ing.Stock = types.Must("2")
	return ing
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Ingredient)
		wantErr bool
	}{
		{"valid", func(i *Ingredient) {}, false},
		{"empty name", func(i *Ingredient) { i.Name = "" }, true},
		{"unknown unit", func(i *Ingredient) { i.Unit = "barrel" }, true},
		{"zero pack size for measured", func(i *Ingredient) { i.PackQuantity = types.Zero() }, true},
		{"negative cost", func(i *Ingredient) { i.PackCost = types.Must("-1") }, true},
		{"negative stock", func(i *Ingredient) { i.Stock = types.Must("-1") }, true},
		{"piece without pack size", func(i *Ingredient) {
			i.Unit = UnitPiece
			i.PackQuantity = types.Zero()
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing := validIngredient()
			tt.mutate(ing)

			err := ing.Validate(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				appErr, ok := apperror.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, apperror.CodeValidation, appErr.Code)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAvailableAmount(t *testing.T) {
	measured := validIngredient()
	assert.True(t, measured.AvailableAmount().Equal(types.Must("2000")))

	piece := New(id.New(), "egg", UnitPiece)
	piece.Stock = types.Must("7")
	assert.True(t, piece.AvailableAmount().Equal(types.Must("7")))
}

func TestDaysToExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	ing := validIngredient()
	ing.ExpiresAt = now.Add(72 * time.Hour)
	assert.Equal(t, 3, ing.DaysToExpiry(now))

	ing.ExpiresAt = now.Add(-48 * time.Hour)
	assert.Equal(t, -2, ing.DaysToExpiry(now))
}

func TestCatalogLookup(t *testing.T) {
	ing := validIngredient()
	catalog := NewCatalog([]*Ingredient{ing})

	assert.Equal(t, ing, catalog.Lookup(ing.ID))
	assert.Nil(t, catalog.Lookup(id.New()))
}
