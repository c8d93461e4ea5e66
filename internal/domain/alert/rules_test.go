package alert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepstock/internal/core/entity"
	"prepstock/internal/core/id"
	"prepstock/internal/core/types"
	"prepstock/internal/domain/ingredient"
)

func ruleIngredient(name, stock string) *ingredient.Ingredient {
	return &ingredient.Ingredient{
		BaseEntity:   entity.NewBaseEntity(id.New()),
		Name:         name,
		Unit:         ingredient.UnitGram,
		PackQuantity: types.Must("1000"),
		Stock:        types.Must(stock),
	}
}

func TestDefaultRules_ExpiringSoon(t *testing.T) {
	rules, err := DefaultRules()
	require.NoError(t, err)
	require.Len(t, rules, 2)

	expiry := rules[0]
	assert.Equal(t, TypeExpirationWarning, expiry.AlertType)

	ing := ruleIngredient("milk", "2")

	tests := []struct {
		days int
		want bool
	}{
		{0, true},
		{3, true},
		{7, true},
		{8, false},
		{-1, false}, // already expired, not "expiring"
	}
	for _, tt := range tests {
		matched, err := expiry.Matches(ing, tt.days)
		require.NoError(t, err)
		assert.Equal(t, tt.want, matched, "days=%d", tt.days)
	}
}

func TestDefaultRules_OutOfStock(t *testing.T) {
	rules, err := DefaultRules()
	require.NoError(t, err)

	depleted := rules[1]
	assert.Equal(t, TypeOutOfStock, depleted.AlertType)

	matched, err := depleted.Matches(ruleIngredient("milk", "0"), 30)
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = depleted.Matches(ruleIngredient("milk", "0.5"), 30)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestNewRule_CustomCondition(t *testing.T) {
	rule, err := NewRule("low-flour", TypeRule, "%s is running low",
		`name == "flour" && stock < 1.0`)
	require.NoError(t, err)

	matched, err := rule.Matches(ruleIngredient("flour", "0.5"), 30)
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = rule.Matches(ruleIngredient("sugar", "0.5"), 30)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestNewRule_RejectsInvalidConditions(t *testing.T) {
	_, err := NewRule("broken", TypeRule, "%s", "stock <")
	assert.Error(t, err)

	_, err = NewRule("not-bool", TypeRule, "%s", "stock + 1.0")
	assert.Error(t, err)
}
