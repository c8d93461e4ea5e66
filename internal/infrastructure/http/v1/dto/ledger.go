package dto

import (
	"time"

	"prepstock/internal/core/id"
	"prepstock/internal/core/types"
	"prepstock/internal/domain/ledger"
)

// CreateExpenseRequest for recording an expense.
type CreateExpenseRequest struct {
	Title    string      `json:"title" binding:"required"`
	Category string      `json:"category"`
	Amount   types.Money `json:"amount"`
	Date     time.Time   `json:"date"`
}

// ToDomain builds an Expense owned by ownerID.
func (r CreateExpenseRequest) ToDomain(ownerID id.ID) *ledger.Expense {
	return ledger.NewExpense(ownerID, r.Title, r.Category, r.Amount, r.Date)
}

// CreateSaleRequest for recording a sale.
type CreateSaleRequest struct {
	RecipeName string      `json:"recipeName" binding:"required"`
	Quantity   int64       `json:"quantity" binding:"required,min=1"`
	UnitPrice  types.Money `json:"unitPrice"`
	Date       time.Time   `json:"date"`
}

// ToDomain builds a Sale owned by ownerID.
func (r CreateSaleRequest) ToDomain(ownerID id.ID) *ledger.Sale {
	return ledger.NewSale(ownerID, r.RecipeName, r.Quantity, r.UnitPrice, r.Date)
}

// MonthQuery selects a calendar month, defaulting to the current one.
type MonthQuery struct {
	Year  int `form:"year" binding:"omitempty,min=2000,max=2200"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

// ToDomain resolves the query against now.
func (q MonthQuery) ToDomain(now time.Time) ledger.Month {
	m := ledger.CurrentMonth(now)
	if q.Year != 0 {
		m.Year = q.Year
	}
	if q.Month != 0 {
		m.Month = time.Month(q.Month)
	}
	return m
}
