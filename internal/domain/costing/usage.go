package costing

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"prepstock/internal/core/id"
	"prepstock/internal/core/types"
)

// UsageMap is a sparse mapping from ingredient id to the quantity a recipe
// requires, expressed in the ingredient's natural unit (grams, pieces, ...),
// never in packs. Stored as JSONB.
type UsageMap map[id.ID]types.Quantity

// Get returns the quantity for an ingredient, zero if absent.
// A nil map is a valid empty usage map.
func (m UsageMap) Get(ingredientID id.ID) types.Quantity {
	if m == nil {
		return types.Zero()
	}
	if q, ok := m[ingredientID]; ok {
		return q
	}
	return types.Zero()
}

// IDs returns the ingredient ids referenced by the map.
func (m UsageMap) IDs() []id.ID {
	ids := make([]id.ID, 0, len(m))
	for ingredientID := range m {
		ids = append(ids, ingredientID)
	}
	return ids
}

// Union returns the set of ids appearing in either map.
// Used by edit reconciliation to net old against new usage.
func (m UsageMap) Union(other UsageMap) []id.ID {
	seen := make(map[id.ID]struct{}, len(m)+len(other))
	ids := make([]id.ID, 0, len(m)+len(other))
	for ingredientID := range m {
		if _, ok := seen[ingredientID]; !ok {
			seen[ingredientID] = struct{}{}
			ids = append(ids, ingredientID)
		}
	}
	for ingredientID := range other {
		if _, ok := seen[ingredientID]; !ok {
			seen[ingredientID] = struct{}{}
			ids = append(ids, ingredientID)
		}
	}
	return ids
}

// Value implements driver.Valuer (JSONB column).
func (m UsageMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner (JSONB column).
func (m *UsageMap) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = UsageMap{}
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported usage map source type %T", src)
	}
}
