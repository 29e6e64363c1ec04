package docstore

import (
	"context"
	"sync"
)

// Opener connects to a backend and returns a ready store.
type Opener func(ctx context.Context) (Store, error)

// Provider hands out one shared Store per process. The first Acquire opens
// it; concurrent first callers wait for that single attempt and share its
// result, including a failure.
type Provider struct {
	open Opener

	once  sync.Once
	store Store
	err   error
}

// NewProvider wraps open in a lazily-initialized provider.
func NewProvider(open Opener) *Provider {
	return &Provider{open: open}
}

// Acquire returns the shared store, opening it on first use.
func (p *Provider) Acquire(ctx context.Context) (Store, error) {
	p.once.Do(func() {
		p.store, p.err = p.open(ctx)
	})
	return p.store, p.err
}

// Collection acquires the store and returns the named collection.
func (p *Provider) Collection(ctx context.Context, name string) (Collection, error) {
	store, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return store.Collection(name), nil
}

// Close closes the store if it was ever opened successfully.
func (p *Provider) Close() {
	p.once.Do(func() {
		p.err = errProviderClosed
	})
	if p.store != nil {
		p.store.Close()
	}
}
