package convert

import (
	"slices"
	"sync"

	"intellenum-generator/primitive"
)

// Registry holds generators in a fixed order. It is safe for concurrent use;
// Append is expected during setup.
type Registry struct {
	mu   sync.RWMutex
	gens []Generator
}

// NewRegistry creates a registry with the builtin generators reading
// templates from store. A nil store means the shipped templates.
func NewRegistry(store primitive.TemplateStore) *Registry {
	if store == nil {
		store = primitive.DefaultStore()
	}

	return &Registry{gens: Builtin(store)}
}

// Append registers g after the existing generators.
func (r *Registry) Append(g Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gens = append(r.gens, g)
}

// Generators returns every registered generator in order.
func (r *Registry) Generators() []Generator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.gens)
}

// Enabled returns the generators selected by t.Conversions, in order.
func (r *Registry) Enabled(t Target) []Generator {
	var res []Generator
	for _, g := range r.Generators() {
		if t.Conversions.Has(g.Flag()) {
			res = append(res, g)
		}
	}

	return res
}

// AllDecorations returns the decorations of the enabled generators.
func (r *Registry) AllDecorations(t Target) []string {
	var res []string
	for _, g := range r.Enabled(t) {
		if d := g.Decoration(t); d != "" {
			res = append(res, d)
		}
	}

	return res
}

// AllBodies returns the bodies of the enabled generators.
func (r *Registry) AllBodies(t Target) []string {
	var res []string
	for _, g := range r.Enabled(t) {
		if b := g.Body(t); b != "" {
			res = append(res, b)
		}
	}

	return res
}

// AllImports returns the sorted, deduplicated imports of the enabled
// generators.
func (r *Registry) AllImports(t Target) []string {
	var res []string
	for _, g := range r.Enabled(t) {
		res = append(res, g.Imports(t)...)
	}

	slices.Sort(res)

	return slices.Compact(res)
}
