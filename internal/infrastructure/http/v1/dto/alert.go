package dto

import (
	"time"

	"prepstock/internal/domain/alert"
)

// AlertResponse is the API view of an alert.
type AlertResponse struct {
	ID             string    `json:"id"`
	IngredientID   string    `json:"ingredientId"`
	IngredientName string    `json:"ingredientName"`
	Type           string    `json:"type"`
	Message        string    `json:"message"`
	ExpiresAt      time.Time `json:"expiresAt"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FromAlert converts a domain alert.
func FromAlert(a *alert.Alert) AlertResponse {
	return AlertResponse{
		ID:             a.ID.String(),
		IngredientID:   a.IngredientID.String(),
		IngredientName: a.IngredientName,
		Type:           string(a.Type),
		Message:        a.Message,
		ExpiresAt:      a.ExpiresAt,
		IsRead:         a.IsRead,
		CreatedAt:      a.CreatedAt,
	}
}

// FromAlerts converts a slice of domain alerts.
func FromAlerts(alerts []*alert.Alert) []AlertResponse {
	out := make([]AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, FromAlert(a))
	}
	return out
}

// UnreadCountResponse carries the unread alert counter.
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
