package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"prepstock/internal/core/apperror"
	"prepstock/internal/core/id"
	"prepstock/internal/domain/ledger"
)

const (
	expensesTable = "expenses"
	salesTable    = "sales"
)

var expenseColumns = []string{
	"id", "owner_id", "version", "created_at", "updated_at",
	"title", "category", "amount", "date",
}

var saleColumns = []string{
	"id", "owner_id", "version", "created_at", "updated_at",
	"recipe_name", "quantity", "unit_price", "amount", "date",
}

// LedgerRepo is the PostgreSQL implementation of ledger.Repository.
type LedgerRepo struct {
	tx *TxManager
}

// NewLedgerRepo creates a new ledger repository.
func NewLedgerRepo(tx *TxManager) *LedgerRepo {
	return &LedgerRepo{tx: tx}
}

var _ ledger.Repository = (*LedgerRepo)(nil)

// CreateExpense inserts an expense record.
func (r *LedgerRepo) CreateExpense(ctx context.Context, e *ledger.Expense) error {
	sql, args, err := builder().
		Insert(expensesTable).
		Columns(expenseColumns...).
		Values(
			e.ID, e.OwnerID, e.Version, e.CreatedAt, e.UpdatedAt,
			e.Title, e.Category, e.Amount, e.Date,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// CreateSale inserts a sale record.
func (r *LedgerRepo) CreateSale(ctx context.Context, s *ledger.Sale) error {
	sql, args, err := builder().
		Insert(salesTable).
		Columns(saleColumns...).
		Values(
			s.ID, s.OwnerID, s.Version, s.CreatedAt, s.UpdatedAt,
			s.RecipeName, s.Quantity, s.UnitPrice, s.Amount, s.Date,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ListExpenses retrieves a user's expenses for one month, newest first.
func (r *LedgerRepo) ListExpenses(ctx context.Context, ownerID id.ID, month ledger.Month) ([]*ledger.Expense, error) {
	start, end := month.Bounds()
	sql, args, err := builder().
		Select(expenseColumns...).
		From(expensesTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.Lt{"date": end}).
		OrderBy("date DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var items []*ledger.Expense
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select expenses: %w", err)
	}
	return items, nil
}

// ListSales retrieves a user's sales for one month, newest first.
func (r *LedgerRepo) ListSales(ctx context.Context, ownerID id.ID, month ledger.Month) ([]*ledger.Sale, error) {
	start, end := month.Bounds()
	sql, args, err := builder().
		Select(saleColumns...).
		From(salesTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.Lt{"date": end}).
		OrderBy("date DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var items []*ledger.Sale
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select sales: %w", err)
	}
	return items, nil
}

// DeleteExpense removes a user's expense record.
func (r *LedgerRepo) DeleteExpense(ctx context.Context, ownerID, expenseID id.ID) error {
	return r.deleteFrom(ctx, expensesTable, "expense", ownerID, expenseID)
}

// DeleteSale removes a user's sale record.
func (r *LedgerRepo) DeleteSale(ctx context.Context, ownerID, saleID id.ID) error {
	return r.deleteFrom(ctx, salesTable, "sale", ownerID, saleID)
}

func (r *LedgerRepo) deleteFrom(ctx context.Context, table, resource string, ownerID, recordID id.ID) error {
	sql, args, err := builder().
		Delete(table).
		Where(squirrel.Eq{"id": recordID, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", resource, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(resource, recordID.String())
	}
	return nil
}
