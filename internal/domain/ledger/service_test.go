package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepstock/internal/core/id"
	"prepstock/internal/core/types"
)

type fakeLedgerRepo struct {
	expenses []*Expense
	sales    []*Sale
}

func (r *fakeLedgerRepo) CreateExpense(ctx context.Context, e *Expense) error {
	r.expenses = append(r.expenses, e)
	return nil
}

func (r *fakeLedgerRepo) CreateSale(ctx context.Context, s *Sale) error {
	r.sales = append(r.sales, s)
	return nil
}

func (r *fakeLedgerRepo) ListExpenses(ctx context.Context, ownerID id.ID, month Month) ([]*Expense, error) {
	start, end := month.Bounds()
	var out []*Expense
	for _, e := range r.expenses {
		if e.OwnerID == ownerID && !e.Date.Before(start) && e.Date.Before(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) ListSales(ctx context.Context, ownerID id.ID, month Month) ([]*Sale, error) {
	start, end := month.Bounds()
	var out []*Sale
	for _, s := range r.sales {
		if s.OwnerID == ownerID && !s.Date.Before(start) && s.Date.Before(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) DeleteExpense(ctx context.Context, ownerID, expenseID id.ID) error {
	return nil
}

func (r *fakeLedgerRepo) DeleteSale(ctx context.Context, ownerID, saleID id.ID) error {
	return nil
}

func TestNewSale_DerivesAmount(t *testing.T) {
	sale := NewSale(id.New(), "pancakes", 3, types.Must("8.25"), time.Now())
	assert.True(t, sale.Amount.Equal(types.Must("24.75")), "amount %s", sale.Amount)
}

func TestMonthlySummary(t *testing.T) {
	owner := id.New()
	repo := &fakeLedgerRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	march := Month{Year: 2026, Month: time.March}
	inMarch := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	inApril := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, svc.AddExpense(ctx, NewExpense(owner, "flour order", "supplies", types.Must("120.50"), inMarch)))
	require.NoError(t, svc.AddExpense(ctx, NewExpense(owner, "rent", "fixed", types.Must("800"), inMarch)))
	// Outside the month, must not count
	require.NoError(t, svc.AddExpense(ctx, NewExpense(owner, "gas", "fixed", types.Must("60"), inApril)))

	require.NoError(t, svc.AddSale(ctx, NewSale(owner, "pancakes", 10, types.Must("8"), inMarch)))
	require.NoError(t, svc.AddSale(ctx, NewSale(owner, "crepes", 5, types.Must("12.10"), inMarch)))

	summary, err := svc.MonthlySummary(ctx, owner, march)
	require.NoError(t, err)

	assert.True(t, summary.TotalExpenses.Equal(types.Must("920.50")), "expenses %s", summary.TotalExpenses)
	assert.True(t, summary.TotalSales.Equal(types.Must("140.50")), "sales %s", summary.TotalSales)
	assert.True(t, summary.Net.Equal(types.Must("-780")), "net %s", summary.Net)
}

func TestMonthlySummary_EmptyMonthIsZero(t *testing.T) {
	svc := NewService(&fakeLedgerRepo{})

	summary, err := svc.MonthlySummary(context.Background(), id.New(), Month{Year: 2026, Month: time.January})
	require.NoError(t, err)

	assert.True(t, summary.TotalExpenses.IsZero())
	assert.True(t, summary.TotalSales.IsZero())
	assert.True(t, summary.Net.IsZero())
}

func TestAddExpense_RejectsInvalid(t *testing.T) {
	svc := NewService(&fakeLedgerRepo{})

	err := svc.AddExpense(context.Background(),
		NewExpense(id.New(), "", "supplies", types.Must("10"), time.Now()))
	assert.Error(t, err)

	err = svc.AddExpense(context.Background(),
		NewExpense(id.New(), "flour", "supplies", types.Zero(), time.Now()))
	assert.Error(t, err)
}

func TestMonthBounds(t *testing.T) {
	start, end := Month{Year: 2026, Month: time.December}.Bounds()
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), end)
}
