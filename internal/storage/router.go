package storage

import (
	"errors"
	"fmt"

	"github.com/akyairhashvil/sprintsync/internal/identity"
)

// Router picks the backend for a user id. The resolver is consulted on every
// call, so a store never caches a backend choice across users.
type Router struct {
	resolver identity.Resolver
	backends map[identity.Kind]Backend
}

// NewRouter builds a router over the given backends, keyed by their Kind().
// A nil resolver defaults to identity.PrefixResolver.
func NewRouter(resolver identity.Resolver, backends ...Backend) *Router {
	if resolver == nil {
		resolver = identity.PrefixResolver{}
	}
	r := &Router{resolver: resolver, backends: make(map[identity.Kind]Backend, len(backends))}
	for _, b := range backends {
		if b != nil {
			r.backends[b.Kind()] = b
		}
	}
	return r
}

// Classify exposes the resolver decision for userID.
func (r *Router) Classify(userID string) identity.Kind {
	return r.resolver.Classify(userID)
}

// For returns the backend owning userID's data.
func (r *Router) For(userID string) (Backend, error) {
	kind := r.resolver.Classify(userID)
	b, ok := r.backends[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return b, nil
}

// Kinds lists the registered backend kinds.
func (r *Router) Kinds() []identity.Kind {
	kinds := make([]identity.Kind, 0, len(r.backends))
	for k := range r.backends {
		kinds = append(kinds, k)
	}
	return kinds
}

// Close closes every backend and joins their errors.
func (r *Router) Close() error {
	var errs []error
	for _, b := range r.backends {
		if err := b.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
