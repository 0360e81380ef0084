// pkg/items/registry.go
package items

import (
	"fmt"
	"strings"
	"sync"
)

// IDStrategy selects how Create assigns ids.
type IDStrategy string

const (
	// IDLength assigns len(items)+1. Ids can collide after a delete
	// (seed 1,2,3; delete 2; create -> 3 again). Kept as the default for
	// compatibility with existing clients.
	IDLength IDStrategy = "length"
	// IDMonotonic assigns one past the highest id ever issued.
	IDMonotonic IDStrategy = "monotonic"
)

// ParseIDStrategy accepts "", "length" or "monotonic" (case-insensitive).
func ParseIDStrategy(s string) (IDStrategy, error) {
	switch IDStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", IDLength:
		return IDLength, nil
	case IDMonotonic:
		return IDMonotonic, nil
	default:
		return "", fmt.Errorf("items: unknown id strategy %q", s)
	}
}

type Option func(*Registry)

func WithIDStrategy(s IDStrategy) Option { return func(r *Registry) { r.strategy = s } }

// WithSeed replaces the default seed records.
func WithSeed(seed []Item) Option {
	return func(r *Registry) { r.items = append([]Item(nil), seed...) }
}

// WithOnChange registers a hook called with the new count after every
// successful Create or Delete. It runs under the registry lock and must not
// call back into the registry.
func WithOnChange(fn func(count int)) Option { return func(r *Registry) { r.onChange = fn } }

// Registry is the ordered in-memory item collection. All methods are safe for
// concurrent use; a single RWMutex serialises writers.
type Registry struct {
	mu       sync.RWMutex
	items    []Item
	strategy IDStrategy
	lastID   int
	onChange func(int)
}

// NewRegistry returns a registry holding Seed() unless WithSeed overrides it.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{items: Seed(), strategy: IDLength}
	for _, o := range opts {
		o(r)
	}
	for _, it := range r.items {
		if it.ID > r.lastID {
			r.lastID = it.ID
		}
	}
	if r.onChange != nil {
		r.onChange(len(r.items))
	}
	return r
}

// List returns a copy of all items in insertion order.
func (r *Registry) List() []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

// Len reports the current item count.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *Registry) Get(id int) (Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return Item{}, ErrNotFound
	}
	return r.items[i], nil
}

// Create validates in, assigns an id and appends the new item.
func (r *Registry) Create(in CreateInput) (Item, error) {
	if !present(in.Name) {
		return Item{}, ErrNameRequired
	}
	status := DefaultStatus
	if present(in.Status) {
		status = *in.Status
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	it := Item{ID: r.nextID(), Name: *in.Name, Status: status}
	r.items = append(r.items, it)
	if it.ID > r.lastID {
		r.lastID = it.ID
	}
	r.changed()
	return it, nil
}

// Update overwrites the supplied non-empty fields of the item with id.
func (r *Registry) Update(id int, in UpdateInput) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return Item{}, ErrNotFound
	}
	if present(in.Name) {
		r.items[i].Name = *in.Name
	}
	if present(in.Status) {
		r.items[i].Status = *in.Status
	}
	return r.items[i], nil
}

// Delete removes the item with id, keeping the order of the rest, and
// returns the removed record.
func (r *Registry) Delete(id int) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return Item{}, ErrNotFound
	}
	removed := r.items[i]
	r.items = append(r.items[:i], r.items[i+1:]...)
	r.changed()
	return removed, nil
}

// ---- helpers (callers hold mu) ----

func (r *Registry) indexOf(id int) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) nextID() int {
	if r.strategy == IDMonotonic {
		return r.lastID + 1
	}
	return len(r.items) + 1
}

func (r *Registry) changed() {
	if r.onChange != nil {
		r.onChange(len(r.items))
	}
}
