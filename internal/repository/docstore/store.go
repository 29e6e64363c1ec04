// Package docstore is the persistence provider for the catalog: a small
// document store abstraction with collection-scoped find / insert / update /
// delete, equality filters and atomic set mutations.
//
// Backends live in sibling packages (postgres for production, memory for
// local runs and tests). Repositories only ever talk to the interfaces below.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// ErrNoDocuments is returned by FindOne when nothing matches the filter.
var ErrNoDocuments = errors.New("no documents in result")

// ErrDuplicateKey is returned by InsertOne and UpdateOne when a unique index
// rejects the document.
var ErrDuplicateKey = errors.New("duplicate key")

var errProviderClosed = errors.New("docstore provider closed")

// Store is an opened document store.
type Store interface {
	// Collection returns a handle for the named collection. Handles are cheap
	// and safe for concurrent use.
	Collection(name string) Collection

	// Close releases the underlying connection.
	Close()
}

// Collection is a flat set of JSON documents keyed by an internal identifier.
type Collection interface {
	// Find returns every document matching filter, ordered by sort keys when given.
	Find(ctx context.Context, filter Filter, sort ...SortKey) ([]Document, error)

	// FindOne returns the first matching document or ErrNoDocuments.
	FindOne(ctx context.Context, filter Filter) (Document, error)

	// InsertOne stores body (any JSON-marshalable value) under a new identifier.
	InsertOne(ctx context.Context, body any) (uuid.UUID, error)

	// UpdateOne applies update to the first matching document.
	UpdateOne(ctx context.Context, filter Filter, update Update, opts ...UpdateOption) (UpdateResult, error)

	// DeleteOne removes the first matching document and reports how many were removed.
	DeleteOne(ctx context.Context, filter Filter) (int64, error)
}

// Document is a stored record: the internal identifier plus the JSON body.
// The identifier is never part of the body.
type Document struct {
	ID   uuid.UUID
	Body json.RawMessage
}

// Decode unmarshals the document body into v.
func (d Document) Decode(v any) error {
	if len(d.Body) == 0 {
		return fmt.Errorf("decode document %s: empty body", d.ID)
	}
	if err := json.Unmarshal(d.Body, v); err != nil {
		return fmt.Errorf("decode document %s: %w", d.ID, err)
	}
	return nil
}

// UpdateResult reports the outcome of UpdateOne.
type UpdateResult struct {
	Matched    int64
	UpsertedID uuid.UUID // uuid.Nil unless the update inserted a document
}

// UpdateOption tunes UpdateOne.
type UpdateOption func(*UpdateOptions)

// UpdateOptions is the resolved form of a list of UpdateOption.
type UpdateOptions struct {
	Upsert bool
}

// Upsert makes UpdateOne insert a document when nothing matches. The new
// document starts from the filter's equality fields with the update applied.
func Upsert() UpdateOption {
	return func(o *UpdateOptions) { o.Upsert = true }
}

// ResolveUpdateOptions folds opts into an UpdateOptions value.
func ResolveUpdateOptions(opts []UpdateOption) UpdateOptions {
	var o UpdateOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// CollectionSpec describes a collection for backends that need a schema.
type CollectionSpec struct {
	Name    string
	Indexes []Index
}

// Index is a secondary index over string fields.
type Index struct {
	Fields []string
	Unique bool
}

var fieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidField reports whether name can be used as a document field name.
// Backends interpolate field names into queries, so only plain identifiers pass.
func ValidField(name string) bool {
	return fieldPattern.MatchString(name)
}
