package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"prepstock/internal/core/id"
	"prepstock/internal/domain/costing"
	"prepstock/internal/domain/ingredient"
	"prepstock/internal/domain/recipe"
)

// DefaultCostTTL bounds staleness of memoized cost breakdowns.
const DefaultCostTTL = 5 * time.Minute

// CostCache memoizes computed cost breakdowns per recipe in process
// memory. Any catalog or recipe mutation flushes the whole cache: a single
// ingredient price change can shift every recipe's cost.
type CostCache struct {
	inner *gocache.Cache
}

var (
	_ recipe.CostCache           = (*CostCache)(nil)
	_ ingredient.CostInvalidator = (*CostCache)(nil)
)

// NewCostCache creates a cost cache with the given TTL.
func NewCostCache(ttl time.Duration) *CostCache {
	if ttl <= 0 {
		ttl = DefaultCostTTL
	}
	return &CostCache{
		inner: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the memoized breakdown for recipeID.
func (c *CostCache) Get(recipeID id.ID) (costing.Breakdown, bool) {
	v, ok := c.inner.Get(recipeID.String())
	if !ok {
		return costing.Breakdown{}, false
	}
	b, ok := v.(costing.Breakdown)
	return b, ok
}

// Set memoizes the breakdown for recipeID.
func (c *CostCache) Set(recipeID id.ID, b costing.Breakdown) {
	c.inner.SetDefault(recipeID.String(), b)
}

// Flush drops every memoized breakdown.
func (c *CostCache) Flush() {
	c.inner.Flush()
}
