package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"prepstock/internal/core/apperror"
	"prepstock/internal/core/id"
	"prepstock/internal/domain/alert"
)

const alertsTable = "alerts"

var alertColumns = []string{
	"id", "owner_id", "version", "created_at", "updated_at",
	"ingredient_id", "ingredient_name", "type", "message", "expires_at", "is_read",
}

// AlertRepo is the PostgreSQL implementation of alert.Repository.
type AlertRepo struct {
	tx *TxManager
}

// NewAlertRepo creates a new alert repository.
func NewAlertRepo(tx *TxManager) *AlertRepo {
	return &AlertRepo{tx: tx}
}

var _ alert.Repository = (*AlertRepo)(nil)

// Create inserts a new alert.
func (r *AlertRepo) Create(ctx context.Context, a *alert.Alert) error {
	sql, args, err := builder().
		Insert(alertsTable).
		Columns(alertColumns...).
		Values(
			a.ID, a.OwnerID, a.Version, a.CreatedAt, a.UpdatedAt,
			a.IngredientID, a.IngredientName, a.Type, a.Message, a.ExpiresAt, a.IsRead,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// ListByOwner retrieves a user's alerts, newest first.
func (r *AlertRepo) ListByOwner(ctx context.Context, ownerID id.ID) ([]*alert.Alert, error) {
	sql, args, err := builder().
		Select(alertColumns...).
		From(alertsTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var items []*alert.Alert
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select alerts: %w", err)
	}
	return items, nil
}

// MarkRead flags an alert as read.
func (r *AlertRepo) MarkRead(ctx context.Context, alertID id.ID) error {
	sql, args, err := builder().
		Update(alertsTable).
		Set("is_read", true).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": alertID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("alert", alertID.String())
	}
	return nil
}

// UnreadCount returns the number of unread alerts for a user.
func (r *AlertRepo) UnreadCount(ctx context.Context, ownerID id.ID) (int64, error) {
	sql, args, err := builder().
		Select("count(*)").
		From(alertsTable).
		Where(squirrel.Eq{"owner_id": ownerID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int64
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &count, sql, args...); err != nil {
		return 0, fmt.Errorf("count alerts: %w", err)
	}
	return count, nil
}

// HasUnread reports whether an unread alert of the given type already
// exists for the ingredient.
func (r *AlertRepo) HasUnread(ctx context.Context, ingredientID id.ID, alertType alert.Type) (bool, error) {
	sql, args, err := builder().
		Select("count(*)").
		From(alertsTable).
		Where(squirrel.Eq{
			"ingredient_id": ingredientID,
			"type":          alertType,
			"is_read":       false,
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build count: %w", err)
	}

	var count int64
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &count, sql, args...); err != nil {
		return false, fmt.Errorf("check unread alert: %w", err)
	}
	return count > 0, nil
}
