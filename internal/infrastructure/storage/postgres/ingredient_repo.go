package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"prepstock/internal/core/apperror"
	"prepstock/internal/core/id"
	"prepstock/internal/core/types"
	"prepstock/internal/domain"
	"prepstock/internal/domain/ingredient"
)

const ingredientsTable = "ingredients"

var ingredientColumns = []string{
	"id", "owner_id", "version", "created_at", "updated_at",
	"name", "unit", "pack_quantity", "pack_cost", "stock", "expires_at",
}

// IngredientRepo is the PostgreSQL implementation of ingredient.Repository.
type IngredientRepo struct {
	tx *TxManager
}

// NewIngredientRepo creates a new ingredient repository.
func NewIngredientRepo(tx *TxManager) *IngredientRepo {
	return &IngredientRepo{tx: tx}
}

var _ ingredient.Repository = (*IngredientRepo)(nil)

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new ingredient.
func (r *IngredientRepo) Create(ctx context.Context, ing *ingredient.Ingredient) error {
	sql, args, err := builder().
		Insert(ingredientsTable).
		Columns(ingredientColumns...).
		Values(
			ing.ID, ing.OwnerID, ing.Version, ing.CreatedAt, ing.UpdatedAt,
			ing.Name, ing.Unit, ing.PackQuantity, ing.PackCost, ing.Stock, ing.ExpiresAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// GetByID retrieves an ingredient by id.
func (r *IngredientRepo) GetByID(ctx context.Context, ingredientID id.ID) (*ingredient.Ingredient, error) {
	sql, args, err := builder().
		Select(ingredientColumns...).
		From(ingredientsTable).
		Where(squirrel.Eq{"id": ingredientID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var ing ingredient.Ingredient
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &ing, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("ingredient", ingredientID.String())
		}
		return nil, fmt.Errorf("select ingredient: %w", err)
	}
	return &ing, nil
}

// Update modifies an existing ingredient with optimistic locking.
func (r *IngredientRepo) Update(ctx context.Context, ing *ingredient.Ingredient) error {
	sql, args, err := builder().
		Update(ingredientsTable).
		Set("name", ing.Name).
		Set("unit", ing.Unit).
		Set("pack_quantity", ing.PackQuantity).
		Set("pack_cost", ing.PackCost).
		Set("stock", ing.Stock).
		Set("expires_at", ing.ExpiresAt).
		Set("updated_at", squirrel.Expr("now()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": ing.ID, "version": ing.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("ingredient", ing.ID.String())
	}
	return nil
}

// Delete removes an ingredient.
func (r *IngredientRepo) Delete(ctx context.Context, ingredientID id.ID) error {
	sql, args, err := builder().
		Delete(ingredientsTable).
		Where(squirrel.Eq{"id": ingredientID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("ingredient", ingredientID.String())
	}
	return nil
}

// List retrieves a user's ingredients with filtering and pagination.
func (r *IngredientRepo) List(ctx context.Context, ownerID id.ID, filter domain.ListFilter) (domain.ListResult[*ingredient.Ingredient], error) {
	result := domain.ListResult[*ingredient.Ingredient]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := builder().
		Select(ingredientColumns...).
		From(ingredientsTable).
		Where(squirrel.Eq{"owner_id": ownerID})
	countQ := builder().
		Select("count(*)").
		From(ingredientsTable).
		Where(squirrel.Eq{"owner_id": ownerID})

	if filter.Search != "" {
		like := squirrel.ILike{"name": "%" + filter.Search + "%"}
		q = q.Where(like)
		countQ = countQ.Where(like)
	}

	order, err := parseOrderBy(filter.OrderBy, ingredientColumns)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(order)
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build select: %w", err)
	}
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("select ingredients: %w", err)
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &result.TotalCount, countSQL, countArgs...); err != nil {
		return result, fmt.Errorf("count ingredients: %w", err)
	}

	return result, nil
}

// ListByOwner retrieves a user's full catalog, unpaginated.
func (r *IngredientRepo) ListByOwner(ctx context.Context, ownerID id.ID) ([]*ingredient.Ingredient, error) {
	sql, args, err := builder().
		Select(ingredientColumns...).
		From(ingredientsTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var items []*ingredient.Ingredient
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select catalog: %w", err)
	}
	return items, nil
}

// ListAll retrieves every ingredient across users (alert watcher scan).
func (r *IngredientRepo) ListAll(ctx context.Context) ([]*ingredient.Ingredient, error) {
	sql, args, err := builder().
		Select(ingredientColumns...).
		From(ingredientsTable).
		OrderBy("owner_id", "name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var items []*ingredient.Ingredient
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select ingredients: %w", err)
	}
	return items, nil
}

// UpdateStock sets the stock level of a single ingredient. Deliberately a
// standalone write with no version check: the reconciler issues these as
// independent best-effort calls.
func (r *IngredientRepo) UpdateStock(ctx context.Context, ingredientID id.ID, stock types.Quantity) error {
	sql, args, err := builder().
		Update(ingredientsTable).
		Set("stock", stock).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": ingredientID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("ingredient", ingredientID.String())
	}
	return nil
}
