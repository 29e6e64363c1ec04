// Package memory is an in-process docstore backend. It keeps every
// collection in memory for the lifetime of the process and is used for
// local runs (STORE_DRIVER=memory) and tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"interlink/internal/repository/docstore"
)

// Store holds named collections.
type Store struct {
	mu          sync.Mutex
	collections map[string]*collection
}

// New creates an empty store.
func New() *Store {
	return &Store{collections: make(map[string]*collection)}
}

// Open adapts New to a docstore.Opener.
func Open(_ context.Context) (docstore.Store, error) {
	return New(), nil
}

// Collection returns the named collection, creating it on first use.
func (s *Store) Collection(name string) docstore.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		c = &collection{}
		s.collections[name] = c
	}
	return c
}

// Close is a no-op; contents live until the process exits.
func (s *Store) Close() {}

type record struct {
	id  uuid.UUID
	doc map[string]any
}

// collection keeps documents in insertion order. A single RWMutex makes
// every write atomic with respect to every other operation.
type collection struct {
	mu   sync.RWMutex
	docs []record
}

func (c *collection) Find(ctx context.Context, filter docstore.Filter, sort ...docstore.SortKey) ([]docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	var matched []record
	for _, r := range c.docs {
		if filter.Matches(r.id, r.doc) {
			matched = append(matched, r)
		}
	}
	c.mu.RUnlock()

	if len(sort) > 0 {
		slices.SortStableFunc(matched, func(a, b record) int {
			for _, key := range sort {
				cmp := strings.Compare(sortValue(a.doc, key.Field), sortValue(b.doc, key.Field))
				if key.Desc {
					cmp = -cmp
				}
				if cmp != 0 {
					return cmp
				}
			}
			return 0
		})
	}

	out := make([]docstore.Document, 0, len(matched))
	for _, r := range matched {
		doc, err := toDocument(r)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (c *collection) FindOne(ctx context.Context, filter docstore.Filter) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return docstore.Document{}, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(filter); i >= 0 {
		return toDocument(c.docs[i])
	}
	return docstore.Document{}, docstore.ErrNoDocuments
}

func (c *collection) InsertOne(ctx context.Context, body any) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}

	doc, err := toMap(body)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert document: %w", err)
	}

	id := uuid.New()
	c.mu.Lock()
	c.docs = append(c.docs, record{id: id, doc: doc})
	c.mu.Unlock()
	return id, nil
}

func (c *collection) UpdateOne(ctx context.Context, filter docstore.Filter, update docstore.Update, opts ...docstore.UpdateOption) (docstore.UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return docstore.UpdateResult{}, err
	}
	options := docstore.ResolveUpdateOptions(opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(filter); i >= 0 {
		next := maps.Clone(c.docs[i].doc)
		if err := update.Apply(next); err != nil {
			return docstore.UpdateResult{}, fmt.Errorf("update document: %w", err)
		}
		c.docs[i].doc = next
		return docstore.UpdateResult{Matched: 1}, nil
	}

	if !options.Upsert {
		return docstore.UpdateResult{}, nil
	}

	doc, err := docstore.NewDocument(filter, update)
	if err != nil {
		return docstore.UpdateResult{}, fmt.Errorf("upsert document: %w", err)
	}
	id := uuid.New()
	c.docs = append(c.docs, record{id: id, doc: doc})
	return docstore.UpdateResult{UpsertedID: id}, nil
}

func (c *collection) DeleteOne(ctx context.Context, filter docstore.Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(filter)
	if i < 0 {
		return 0, nil
	}
	c.docs = slices.Delete(c.docs, i, i+1)
	return 1, nil
}

// indexOf must be called with c.mu held.
func (c *collection) indexOf(filter docstore.Filter) int {
	for i, r := range c.docs {
		if filter.Matches(r.id, r.doc) {
			return i
		}
	}
	return -1
}

func toDocument(r record) (docstore.Document, error) {
	body, err := json.Marshal(r.doc)
	if err != nil {
		return docstore.Document{}, fmt.Errorf("encode document %s: %w", r.id, err)
	}
	return docstore.Document{ID: r.id, Body: body}, nil
}

func toMap(body any) (map[string]any, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("document body must be a JSON object: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("document body must be a JSON object")
	}
	return doc, nil
}

func sortValue(doc map[string]any, field string) string {
	v, _ := doc[field].(string)
	return v
}
