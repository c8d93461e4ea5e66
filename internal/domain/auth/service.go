package auth

import (
	"fmt"
	"strings"
	"time"

	"context"

	"golang.org/x/crypto/bcrypt"

	"prepstock/internal/core/apperror"
	"prepstock/internal/core/id"
	"prepstock/pkg/logger"
)

// TokenPair is the result of a successful login or registration.
type TokenPair struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        *User     `json:"user"`
}

// Transactor runs fn within a database transaction; repository calls made
// with the callback's context join it.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides registration and login.
type Service struct {
	repo Repository
	jwt  *JWTService
	tx   Transactor
}

// NewService creates a new auth service.
func NewService(repo Repository, jwt *JWTService, tx Transactor) *Service {
	return &Service{repo: repo, jwt: jwt, tx: tx}
}

// Register creates an account and returns a fresh token. The uniqueness
// check and the insert run in one transaction so two concurrent signups
// with the same email cannot both pass the check.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*TokenPair, error) {
	if err := req.Validate(ctx); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Hash outside the transaction; bcrypt is deliberately slow.
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           id.New(),
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	err = s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if existing, err := s.repo.GetByEmail(txCtx, email); err == nil && existing != nil {
			return apperror.NewDuplicate("user", "email", email)
		}
		if err := s.repo.Create(txCtx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", "user_id", user.ID, "email", email)
	return s.issueToken(user)
}

// Login verifies credentials and returns a fresh token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Same answer for unknown email and bad password
		return nil, apperror.NewUnauthorized("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid email or password")
	}

	return s.issueToken(user)
}

func (s *Service) issueToken(user *User) (*TokenPair, error) {
	token, expiresAt, err := s.jwt.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &TokenPair{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}
