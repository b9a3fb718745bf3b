// Package registry provides in-memory caching of resolved table mappings.
// It maintains a thread-safe registry keyed by OWNER.TABLE using sync.Map so
// repeated lookups of the same table skip the data dictionary.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/thalib/oranum/cmd/oranum/internal/mapping"
)

// TableMapping holds the resolved columns of a table. Owner and Name are those
// of the base table when the lookup went through a synonym.
type TableMapping struct {
	Owner   string                  `json:"owner"`
	Name    string                  `json:"name"`
	Columns []mapping.ColumnMapping `json:"columns"`
}

func (t *TableMapping) clone() *TableMapping {
	return &TableMapping{
		Owner:   t.Owner,
		Name:    t.Name,
		Columns: append([]mapping.ColumnMapping(nil), t.Columns...),
	}
}

// Key returns the registry key for owner and table
func Key(owner, table string) string {
	return strings.ToUpper(strings.TrimSpace(owner)) + "." + strings.ToUpper(strings.TrimSpace(table))
}

// MappingRegistry manages the in-memory cache of table mappings
type MappingRegistry struct {
	tables sync.Map // map[string]*TableMapping
}

// NewMappingRegistry creates a new mapping registry
func NewMappingRegistry() *MappingRegistry {
	return &MappingRegistry{}
}

// Set stores or replaces the mapping looked up as key
func (r *MappingRegistry) Set(key string, table *TableMapping) error {
	if table == nil {
		return fmt.Errorf("table mapping cannot be nil")
	}
	if key == "" {
		return fmt.Errorf("registry key cannot be empty")
	}

	// Store a copy to prevent external modifications
	r.tables.Store(key, table.clone())
	return nil
}

// Get retrieves a copy of the mapping stored under key
func (r *MappingRegistry) Get(key string) (*TableMapping, bool) {
	value, ok := r.tables.Load(key)
	if !ok {
		return nil, false
	}
	return value.(*TableMapping).clone(), true
}

// Delete removes the mapping stored under key
func (r *MappingRegistry) Delete(key string) {
	r.tables.Delete(key)
}

// Keys returns the cached keys in sorted order
func (r *MappingRegistry) Keys() []string {
	var keys []string
	r.tables.Range(func(key, _ any) bool {
		keys = append(keys, key.(string))
		return true
	})
	sort.Strings(keys)
	return keys
}

// Clear removes all mappings from the registry
func (r *MappingRegistry) Clear() {
	r.tables.Range(func(key, _ any) bool {
		r.tables.Delete(key)
		return true
	})
}

// Count returns the number of cached tables
func (r *MappingRegistry) Count() int {
	count := 0
	r.tables.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}
