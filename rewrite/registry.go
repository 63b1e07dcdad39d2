package rewrite

import (
	"fmt"
	"slices"
	"sync"
)

// Factory builds a recipe from its options. Factories never fail; invalid
// options are reported by the recipe's Validate.
type Factory func(Options) Recipe

type registration struct {
	description string
	factory     Factory
}

// Registry maps recipe names to factories.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registration
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registration)}
}

func (r *Registry) Register(name, description string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = registration{description: description, factory: factory}
}

// Build configures the recipe registered under name.
func (r *Registry) Build(name string, opts Options) (Recipe, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecipe, name)
	}
	if opts == nil {
		opts = Options{}
	}
	return entry.factory(opts), nil
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r *Registry) Describe(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[name].description
}
