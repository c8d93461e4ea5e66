package ledger

import (
	"context"
	"fmt"

	"prepstock/internal/core/id"
	"prepstock/internal/core/types"
	"prepstock/pkg/logger"
)

// Service provides business logic for the expenses and sales ledger.
type Service struct {
	repo Repository
}

// NewService creates a new ledger service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddExpense validates and records an expense.
func (s *Service) AddExpense(ctx context.Context, e *Expense) error {
	if err := e.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	logger.Info(ctx, "expense recorded",
		"expense_id", e.ID,
		"category", e.Category,
		"amount", e.Amount,
	)
	return nil
}

// AddSale validates and records a sale.
func (s *Service) AddSale(ctx context.Context, sale *Sale) error {
	if err := sale.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.CreateSale(ctx, sale); err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	logger.Info(ctx, "sale recorded",
		"sale_id", sale.ID,
		"recipe", sale.RecipeName,
		"amount", sale.Amount,
	)
	return nil
}

// Expenses lists a user's expenses for the given month.
func (s *Service) Expenses(ctx context.Context, ownerID id.ID, month Month) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, ownerID, month)
}

// Sales lists a user's sales for the given month.
func (s *Service) Sales(ctx context.Context, ownerID id.ID, month Month) ([]*Sale, error) {
	return s.repo.ListSales(ctx, ownerID, month)
}

// DeleteExpense removes a user's expense record.
func (s *Service) DeleteExpense(ctx context.Context, ownerID, expenseID id.ID) error {
	return s.repo.DeleteExpense(ctx, ownerID, expenseID)
}

// DeleteSale removes a user's sale record.
func (s *Service) DeleteSale(ctx context.Context, ownerID, saleID id.ID) error {
	return s.repo.DeleteSale(ctx, ownerID, saleID)
}

// MonthlySummary totals one month of expenses and sales.
func (s *Service) MonthlySummary(ctx context.Context, ownerID id.ID, month Month) (Summary, error) {
	expenses, err := s.repo.ListExpenses(ctx, ownerID, month)
	if err != nil {
		return Summary{}, fmt.Errorf("list expenses: %w", err)
	}
	sales, err := s.repo.ListSales(ctx, ownerID, month)
	if err != nil {
		return Summary{}, fmt.Errorf("list sales: %w", err)
	}

	summary := Summary{
		Month:         month,
		TotalExpenses: types.Zero(),
		TotalSales:    types.Zero(),
	}
	for _, e := range expenses {
		summary.TotalExpenses = summary.TotalExpenses.Add(e.Amount)
	}
	for _, sale := range sales {
		summary.TotalSales = summary.TotalSales.Add(sale.Amount)
	}
	summary.Net = summary.TotalSales.Sub(summary.TotalExpenses)

	return summary, nil
}
