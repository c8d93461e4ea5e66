package alert

import (
	"context"
	"time"

	"prepstock/internal/domain/ingredient"
	"prepstock/pkg/logger"
)

// IngredientLister provides the full ingredient set to scan.
type IngredientLister interface {
	ListAll(ctx context.Context) ([]*ingredient.Ingredient, error)
}

// Watcher periodically sweeps the catalog and raises alerts.
type Watcher struct {
	service     *Service
	ingredients IngredientLister
	interval    time.Duration
}

// DefaultScanInterval between catalog sweeps.
const DefaultScanInterval = time.Hour

// NewWatcher creates a Watcher. A non-positive interval falls back to
// DefaultScanInterval.
func NewWatcher(service *Service, ingredients IngredientLister, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultScanInterval
	}
	return &Watcher{
		service:     service,
		ingredients: ingredients,
		interval:    interval,
	}
}

// Run scans immediately, then on every tick until ctx is cancelled.
// Intended to be started as a goroutine from main.
func (w *Watcher) Run(ctx context.Context) {
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "alert watcher stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Watcher) sweep(ctx context.Context) {
	items, err := w.ingredients.ListAll(ctx)
	if err != nil {
		logger.Error(ctx, "alert sweep failed to load ingredients", "error", err)
		return
	}

	if _, err := w.service.Scan(ctx, items, time.Now().UTC()); err != nil {
		logger.Error(ctx, "alert sweep failed", "error", err)
	}
}
