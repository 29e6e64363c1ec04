package docstore

import (
	"fmt"

	"github.com/google/uuid"

	"interlink/internal/domain"
)

// Identifiable is implemented by caller-facing models that carry a string id.
type Identifiable[T any] interface {
	*T
	SetID(id string)
}

// Export projects a stored document into its caller-facing model: the body is
// decoded into a fresh T and the internal identifier is exposed only as the
// string id. overrideID, when non-nil, is used instead of doc.ID (right after
// an insert, when the body has not been read back).
func Export[T any, P Identifiable[T]](doc Document, overrideID *uuid.UUID) (T, error) {
	var out T

	id := doc.ID
	if overrideID != nil {
		id = *overrideID
	}
	if id == uuid.Nil {
		return out, fmt.Errorf("export document: %w", domain.ErrInvalidRecord)
	}

	if err := doc.Decode(&out); err != nil {
		return out, err
	}
	P(&out).SetID(id.String())
	return out, nil
}

// ExportAll projects every document, stopping at the first malformed one.
// The result is never nil.
func ExportAll[T any, P Identifiable[T]](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		item, err := Export[T, P](doc, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
