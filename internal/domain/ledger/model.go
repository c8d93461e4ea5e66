// Package ledger records expenses and sales and produces monthly totals.
// It is bookkeeping for the dashboard, not a general ledger: no accounts,
// no double entry.
package ledger

import (
	"context"
	"time"

	"prepstock/internal/core/apperror"
	"prepstock/internal/core/entity"
	"prepstock/internal/core/id"
	"prepstock/internal/core/types"
)

// Expense is a recorded business expense.
type Expense struct {
	entity.BaseEntity

	Title    string      `db:"title" json:"title"`
	Category string      `db:"category" json:"category"`
	Amount   types.Money `db:"amount" json:"amount"`
	Date     time.Time   `db:"date" json:"date"`
}

// NewExpense creates an expense record.
func NewExpense(ownerID id.ID, title, category string, amount types.Money, date time.Time) *Expense {
	return &Expense{
		BaseEntity: entity.NewBaseEntity(ownerID),
		Title:      title,
		Category:   category,
		Amount:     amount,
		Date:       date,
	}
}

// Validate implements entity.Validatable.
func (e *Expense) Validate(ctx context.Context) error {
	if e.Title == "" {
		return apperror.NewValidation("title is required").
			WithDetail("field", "title")
	}
	if !e.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}
	if e.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}

// Sale is a recorded sale of a prepared recipe.
type Sale struct {
	entity.BaseEntity

	RecipeName string      `db:"recipe_name" json:"recipeName"`
	Quantity   int64       `db:"quantity" json:"quantity"`
	UnitPrice  types.Money `db:"unit_price" json:"unitPrice"`
	Amount     types.Money `db:"amount" json:"amount"`
	Date       time.Time   `db:"date" json:"date"`
}

// NewSale creates a sale record; Amount is derived from quantity and price.
func NewSale(ownerID id.ID, recipeName string, quantity int64, unitPrice types.Money, date time.Time) *Sale {
	return &Sale{
		BaseEntity: entity.NewBaseEntity(ownerID),
		RecipeName: recipeName,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Amount:     unitPrice.Mul(types.NewFromFloat(float64(quantity))),
		Date:       date,
	}
}

// Validate implements entity.Validatable.
func (s *Sale) Validate(ctx context.Context) error {
	if s.RecipeName == "" {
		return apperror.NewValidation("recipe name is required").
			WithDetail("field", "recipeName")
	}
	if s.Quantity < 1 {
		return apperror.NewValidation("quantity must be at least 1").
			WithDetail("field", "quantity")
	}
	if s.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unitPrice")
	}
	if s.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}

// Month identifies a calendar month.
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// CurrentMonth returns the month containing now.
func CurrentMonth(now time.Time) Month {
	return Month{Year: now.Year(), Month: now.Month()}
}

// Bounds returns the UTC half-open interval [start, end) of the month.
func (m Month) Bounds() (time.Time, time.Time) {
	start := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Summary aggregates one month of activity.
type Summary struct {
	Month         Month       `json:"month"`
	TotalExpenses types.Money `json:"totalExpenses"`
	TotalSales    types.Money `json:"totalSales"`
	Net           types.Money `json:"net"`
}
