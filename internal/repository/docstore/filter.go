package docstore

import "github.com/google/uuid"

// FieldMatch is one equality condition on a string field.
type FieldMatch struct {
	Field string
	Value string
}

// Filter selects documents. The zero Filter matches every document.
type Filter struct {
	ids      []uuid.UUID
	matchIDs bool
	fields   []FieldMatch
}

// ByID matches the document with the given internal identifier.
func ByID(id uuid.UUID) Filter {
	return Filter{ids: []uuid.UUID{id}, matchIDs: true}
}

// ByIDs matches documents whose identifier is in ids. An empty set matches nothing.
func ByIDs(ids []uuid.UUID) Filter {
	return Filter{ids: append([]uuid.UUID(nil), ids...), matchIDs: true}
}

// Where matches documents whose string field equals value.
func Where(field, value string) Filter {
	return Filter{}.And(field, value)
}

// And adds another equality condition.
func (f Filter) And(field, value string) Filter {
	fields := make([]FieldMatch, len(f.fields), len(f.fields)+1)
	copy(fields, f.fields)
	f.fields = append(fields, FieldMatch{Field: field, Value: value})
	return f
}

// IDs returns the identifier set and whether the filter restricts on it.
func (f Filter) IDs() ([]uuid.UUID, bool) {
	return f.ids, f.matchIDs
}

// Fields returns the equality conditions in the order they were added.
func (f Filter) Fields() []FieldMatch {
	return f.fields
}

// Matches evaluates the filter against a decoded document.
func (f Filter) Matches(id uuid.UUID, doc map[string]any) bool {
	if f.matchIDs {
		found := false
		for _, candidate := range f.ids {
			if candidate == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, m := range f.fields {
		v, ok := doc[m.Field].(string)
		if !ok || v != m.Value {
			return false
		}
	}
	return true
}

// SortKey orders Find results by a string field.
type SortKey struct {
	Field string
	Desc  bool
}

// Asc sorts ascending on field.
func Asc(field string) SortKey {
	return SortKey{Field: field}
}
