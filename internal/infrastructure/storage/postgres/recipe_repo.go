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
	"prepstock/internal/domain"
	"prepstock/internal/domain/recipe"
)

const recipesTable = "recipes"

var recipeColumns = []string{
	"id", "owner_id", "version", "created_at", "updated_at",
	"name", "servings", "target_margin", "ingredients",
}

// RecipeRepo is the PostgreSQL implementation of recipe.Repository.
// The ingredient usage map is stored as a jsonb column; stock effects
// live entirely in the ingredients table.
type RecipeRepo struct {
	tx *TxManager
}

// NewRecipeRepo creates a new recipe repository.
func NewRecipeRepo(tx *TxManager) *RecipeRepo {
	return &RecipeRepo{tx: tx}
}

var _ recipe.Repository = (*RecipeRepo)(nil)

// Create inserts a new recipe.
func (r *RecipeRepo) Create(ctx context.Context, rec *recipe.Recipe) error {
	sql, args, err := builder().
		Insert(recipesTable).
		Columns(recipeColumns...).
		Values(
			rec.ID, rec.OwnerID, rec.Version, rec.CreatedAt, rec.UpdatedAt,
			rec.Name, rec.Servings, rec.TargetMargin, rec.Ingredients,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert recipe: %w", err)
	}
	return nil
}

// GetByID retrieves a recipe by id.
func (r *RecipeRepo) GetByID(ctx context.Context, recipeID id.ID) (*recipe.Recipe, error) {
	sql, args, err := builder().
		Select(recipeColumns...).
		From(recipesTable).
		Where(squirrel.Eq{"id": recipeID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rec recipe.Recipe
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &rec, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("recipe", recipeID.String())
		}
		return nil, fmt.Errorf("select recipe: %w", err)
	}
	return &rec, nil
}

// Update modifies an existing recipe with optimistic locking.
func (r *RecipeRepo) Update(ctx context.Context, rec *recipe.Recipe) error {
	sql, args, err := builder().
		Update(recipesTable).
		Set("name", rec.Name).
		Set("servings", rec.Servings).
		Set("target_margin", rec.TargetMargin).
		Set("ingredients", rec.Ingredients).
		Set("updated_at", squirrel.Expr("now()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": rec.ID, "version": rec.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("recipe", rec.ID.String())
	}
	return nil
}

// Delete removes a recipe document. Ingredient stock is untouched.
func (r *RecipeRepo) Delete(ctx context.Context, recipeID id.ID) error {
	sql, args, err := builder().
		Delete(recipesTable).
		Where(squirrel.Eq{"id": recipeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("recipe", recipeID.String())
	}
	return nil
}

// List retrieves a user's recipes with filtering and pagination.
func (r *RecipeRepo) List(ctx context.Context, ownerID id.ID, filter domain.ListFilter) (domain.ListResult[*recipe.Recipe], error) {
	result := domain.ListResult[*recipe.Recipe]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := builder().
		Select(recipeColumns...).
		From(recipesTable).
		Where(squirrel.Eq{"owner_id": ownerID})
	countQ := builder().
		Select("count(*)").
		From(recipesTable).
		Where(squirrel.Eq{"owner_id": ownerID})

	if filter.Search != "" {
		like := squirrel.ILike{"name": "%" + filter.Search + "%"}
		q = q.Where(like)
		countQ = countQ.Where(like)
	}

	order, err := parseOrderBy(filter.OrderBy, recipeColumns)
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
		return result, fmt.Errorf("select recipes: %w", err)
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &result.TotalCount, countSQL, countArgs...); err != nil {
		return result, fmt.Errorf("count recipes: %w", err)
	}

	return result, nil
}
