package ledger

import (
	"context"

	"prepstock/internal/core/id"
)

// Repository defines the interface for ledger persistence.
type Repository interface {
	// CreateExpense inserts an expense record.
	CreateExpense(ctx context.Context, e *Expense) error

	// CreateSale inserts a sale record.
	CreateSale(ctx context.Context, s *Sale) error

	// ListExpenses retrieves a user's expenses for one month, newest first.
	ListExpenses(ctx context.Context, ownerID id.ID, month Month) ([]*Expense, error)

	// ListSales retrieves a user's sales for one month, newest first.
	ListSales(ctx context.Context, ownerID id.ID, month Month) ([]*Sale, error)

	// DeleteExpense removes a user's expense record.
	DeleteExpense(ctx context.Context, ownerID, expenseID id.ID) error

	// DeleteSale removes a user's sale record.
	DeleteSale(ctx context.Context, ownerID, saleID id.ID) error
}
