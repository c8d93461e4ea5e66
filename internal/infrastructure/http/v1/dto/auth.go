package dto

import (
	"time"

	"prepstock/internal/domain/auth"
)

// RegisterRequest for account creation.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToDomain converts to the domain request.
func (r RegisterRequest) ToDomain() auth.RegisterRequest {
	return auth.RegisterRequest{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
	}
}

// LoginRequest for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// TokenResponse carries a fresh access token.
type TokenResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}

// FromTokenPair converts the domain token pair.
func FromTokenPair(tp *auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken: tp.AccessToken,
		ExpiresAt:   tp.ExpiresAt,
		User: UserResponse{
			ID:        tp.User.ID.String(),
			Email:     tp.User.Email,
			Name:      tp.User.Name,
			CreatedAt: tp.User.CreatedAt,
		},
	}
}
