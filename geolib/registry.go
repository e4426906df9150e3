package geolib

import "fmt"

// Registry is an ordered catalog of known providers. Insertion order is
// the priority/display order; lookups by name are constant time. The
// zero value is an empty catalog ready to use.
//
// Registration happens once during startup, before concurrent requests
// begin, so the registry needs no locking: after that point it is only
// read.
type Registry struct {
	names     []string
	providers map[string]Provider
}

// Register adds a provider to the catalog. Registering two providers
// under the same name is a programming error and is rejected.
func (r *Registry) Register(p Provider) error {
	name := p.Name()

	if _, ok := r.providers[name]; ok {
		return fmt.Errorf("%w: %s", ErrProviderRegistered, name)
	}

	if r.providers == nil {
		r.providers = make(map[string]Provider)
	}

	r.names = append(r.names, name)
	r.providers[name] = p

	return nil
}

// Get returns a provider by its name.
func (r *Registry) Get(name string) (Provider, bool) {
	p, ok := r.providers[name]

	return p, ok
}

// Names returns provider names in registration order.
func (r *Registry) Names() []string {
	rv := make([]string, len(r.names))

	copy(rv, r.names)

	return rv
}

// Providers returns providers in registration order.
func (r *Registry) Providers() []Provider {
	rv := make([]Provider, 0, len(r.names))

	for _, name := range r.names {
		rv = append(rv, r.providers[name])
	}

	return rv
}

// NewRegistry builds a catalog of the given providers, keeping their
// order.
func NewRegistry(providers ...Provider) (*Registry, error) {
	rv := &Registry{
		providers: make(map[string]Provider),
	}

	for _, p := range providers {
		if err := rv.Register(p); err != nil {
			return nil, err
		}
	}

	return rv, nil
}
