package svcconfig

import "fmt"

// Registry is an ordered set of parsers. Each parser is assigned a stable
// integer index at registration; parse-time access is by index rather than
// name so callers hold a small integer handle instead of repeating string
// lookups on the call hot path.
//
// A Registry is built once at startup, before any document is parsed, and
// must not be mutated afterwards; a stable Registry is safe for concurrent
// use by any number of Create calls.
type Registry struct {
	parsers []Parser
	byName  map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register appends p and assigns it the next index. Registering a second
// parser under an existing name is a configuration-time error, not a
// runtime one.
func (r *Registry) Register(p Parser) error {
	name := p.Name()
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("service config parser %q already registered", name)
	}
	r.byName[name] = len(r.parsers)
	r.parsers = append(r.parsers, p)
	return nil
}

// MustRegister is Register for startup paths where a duplicate name is
// unrecoverable.
func (r *Registry) MustRegister(p Parser) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// GetParserIndex returns the registration index for name.
func (r *Registry) GetParserIndex(name string) (int, bool) {
	i, ok := r.byName[name]
	return i, ok
}

// NumParsers returns the number of registered parsers.
func (r *Registry) NumParsers() int { return len(r.parsers) }
