// Package alert raises and tracks inventory alerts: expiring stock,
// empty stock, and any custom rule-driven condition.
package alert

import (
	"time"

	"prepstock/internal/core/entity"
	"prepstock/internal/core/id"
)

// Type classifies an alert.
type Type string

const (
	TypeExpirationWarning Type = "expiration_warning"
	TypeOutOfStock        Type = "out_of_stock"
	TypeRule              Type = "rule"
)

// Alert is a persisted notification about one ingredient.
type Alert struct {
	entity.BaseEntity

	IngredientID   id.ID     `db:"ingredient_id" json:"ingredientId"`
	IngredientName string    `db:"ingredient_name" json:"ingredientName"`
	Type           Type      `db:"type" json:"type"`
	Message        string    `db:"message" json:"message"`
	ExpiresAt      time.Time `db:"expires_at" json:"expiresAt"`
	IsRead         bool      `db:"is_read" json:"isRead"`
}

// New creates an alert for an ingredient.
func New(ownerID, ingredientID id.ID, name string, alertType Type, message string, expiresAt time.Time) *Alert {
	return &Alert{
		BaseEntity:     entity.NewBaseEntity(ownerID),
		IngredientID:   ingredientID,
		IngredientName: name,
		Type:           alertType,
		Message:        message,
		ExpiresAt:      expiresAt,
	}
}
