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
	"prepstock/internal/domain/auth"
)

const usersTable = "users"

var userColumns = []string{"id", "email", "name", "password_hash", "created_at"}

// UserRepo is the PostgreSQL implementation of auth.Repository.
type UserRepo struct {
	tx *TxManager
}

// NewUserRepo creates a new user repository.
func NewUserRepo(tx *TxManager) *UserRepo {
	return &UserRepo{tx: tx}
}

var _ auth.Repository = (*UserRepo)(nil)

// Create inserts a new user.
func (r *UserRepo) Create(ctx context.Context, u *auth.User) error {
	sql, args, err := builder().
		Insert(usersTable).
		Columns(userColumns...).
		Values(u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	sql, args, err := builder().
		Select(userColumns...).
		From(usersTable).
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var u auth.User
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &u, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user", email)
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}

// GetByID retrieves a user by id.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	sql, args, err := builder().
		Select(userColumns...).
		From(usersTable).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var u auth.User
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &u, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user", userID.String())
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}
