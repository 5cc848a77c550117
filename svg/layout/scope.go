// Package layout implements the element resolution pipeline: scope and
// variable management, compound-attribute expansion (xy/cxy/wh/rxy),
// and per-element bbox/position resolution, driven by the transform
// package's document walk.
package layout

// Scope is one entry in the variable scope stack. Each container element
// (g/svg/symbol) pushes a child scope, holding that element's attributes,
// which shadows, but does not mutate, its parent's bindings.
type Scope struct {
	vars   map[string]string
	parent *Scope
}

// NewRootScope creates the outermost scope, seeded with a copy of the
// given variables (the caller-supplied Config.Vars).
func NewRootScope(seed map[string]string) *Scope {
	vars := map[string]string{}
	for k, v := range seed {
		vars[k] = v
	}
	return &Scope{vars: vars}
}

// Push creates a child scope.
func (s *Scope) Push() *Scope {
	return &Scope{vars: map[string]string{}, parent: s}
}

// Set binds a variable in this scope (not the parent).
func (s *Scope) Set(name, value string) {
	s.vars[name] = value
}

// Lookup walks from this scope outward to the root, returning the
// innermost binding.
func (s *Scope) Lookup(name string) (string, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return "", false
}
