package star

import "fmt"

// Registry holds the named, swappable strategies for one algorithm category
// (mapping, normalization, error, clustering). The active strategy is
// selected by identifier; activating an unknown identifier is an error and
// leaves the previous selection in place.
type Registry[T any] struct {
	order   []string
	entries map[string]T
	active  string
}

// NewRegistry creates a registry with the given entries registered in order.
// The first entry becomes the active strategy.
func NewRegistry[T any](ids []string, entries map[string]T) *Registry[T] {
	r := &Registry[T]{
		order:   append([]string(nil), ids...),
		entries: entries,
	}
	if len(ids) > 0 {
		r.active = ids[0]
	}
	return r
}

// Options returns the registered identifiers in registration order.
func (r *Registry[T]) Options() []string {
	return append([]string(nil), r.order...)
}

// ActiveID returns the identifier of the active strategy.
func (r *Registry[T]) ActiveID() string { return r.active }

// Active returns the active strategy.
func (r *Registry[T]) Active() T { return r.entries[r.active] }

// Activate selects the strategy with the given identifier.
func (r *Registry[T]) Activate(id string) error {
	if _, ok := r.entries[id]; !ok {
		return fmt.Errorf("unknown algorithm %q", id)
	}
	r.active = id
	return nil
}
