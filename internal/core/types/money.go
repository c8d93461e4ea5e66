// Package types provides common value types shared across the domain.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// Quantity represents an amount of an ingredient, either in natural units
// (grams, milliliters, pieces) or in packs depending on context.
// Decimal keeps pack-usage division exact enough for stock comparisons.
type Quantity = decimal.Decimal

// NewFromFloat creates a decimal value from a float.
// Prefer NewFromString for values parsed from user input.
func NewFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// NewFromString creates a decimal value from a string.
func NewFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// Must creates a decimal value from a string, panics on error.
// Use only for constants and tests.
func Must(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns the zero decimal value.
func Zero() decimal.Decimal {
	return decimal.Zero
}

// Hundred is used for percent math (margin / 100).
var Hundred = decimal.NewFromInt(100)
