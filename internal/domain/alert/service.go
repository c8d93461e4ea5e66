package alert

import (
	"context"
	"fmt"
	"time"

	"prepstock/internal/core/apperror"
	"prepstock/internal/core/id"
	"prepstock/internal/domain/ingredient"
	"prepstock/pkg/logger"
)

// Service provides business logic for alerts.
type Service struct {
	repo  Repository
	rules []*Rule
}

// NewService creates a new alert service with the given rule set.
func NewService(repo Repository, rules []*Rule) *Service {
	return &Service{repo: repo, rules: rules}
}

// List retrieves a user's alerts, newest first.
func (s *Service) List(ctx context.Context, ownerID id.ID) ([]*Alert, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// MarkRead flags a user's alert as read.
func (s *Service) MarkRead(ctx context.Context, ownerID, alertID id.ID) error {
	alerts, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	for _, a := range alerts {
		if a.ID == alertID {
			return s.repo.MarkRead(ctx, alertID)
		}
	}
	return apperror.NewNotFound("alert", alertID.String())
}

// UnreadCount returns the number of unread alerts for a user.
func (s *Service) UnreadCount(ctx context.Context, ownerID id.ID) (int64, error) {
	return s.repo.UnreadCount(ctx, ownerID)
}

// Scan evaluates every rule against every ingredient and raises alerts
// for new matches. An ingredient with an unread alert of the same type is
// skipped so the user is not re-notified on every sweep.
func (s *Service) Scan(ctx context.Context, items []*ingredient.Ingredient, now time.Time) (int, error) {
	raised := 0

	for _, ing := range items {
		days := ing.DaysToExpiry(now)

		for _, rule := range s.rules {
			matched, err := rule.Matches(ing, days)
			if err != nil {
				logger.Warn(ctx, "alert rule evaluation failed",
					"rule", rule.Name,
					"ingredient_id", ing.ID,
					"error", err,
				)
				continue
			}
			if !matched {
				continue
			}

			exists, err := s.repo.HasUnread(ctx, ing.ID, rule.AlertType)
			if err != nil {
				return raised, fmt.Errorf("check open alerts: %w", err)
			}
			if exists {
				continue
			}

			a := New(
				ing.OwnerID,
				ing.ID,
				ing.Name,
				rule.AlertType,
				fmt.Sprintf(rule.Message, ing.Name),
				ing.ExpiresAt,
			)
			if err := s.repo.Create(ctx, a); err != nil {
				return raised, fmt.Errorf("create alert: %w", err)
			}
			raised++
		}
	}

	if raised > 0 {
		logger.Info(ctx, "alerts raised", "count", raised)
	}
	return raised, nil
}
