package docstore

import (
	"encoding/json"
	"fmt"
)

// OpKind names an update operator.
type OpKind int

const (
	OpSet OpKind = iota
	OpUnset
	OpAddToSet
	OpPull
)

// Op is one field mutation.
type Op struct {
	Kind  OpKind
	Field string
	Value any // Set: any JSON value; AddToSet / Pull: the string element
}

// Update is an ordered list of field mutations applied atomically to one document.
type Update struct {
	ops []Op
}

// Set replaces field with value.
func Set(field string, value any) Update {
	return Update{}.Set(field, value)
}

// Set replaces field with value.
func (u Update) Set(field string, value any) Update {
	return u.with(Op{Kind: OpSet, Field: field, Value: value})
}

// Unset removes field from the document.
func (u Update) Unset(field string) Update {
	return u.with(Op{Kind: OpUnset, Field: field})
}

// AddToSet appends elem to the array field unless it is already present.
func (u Update) AddToSet(field, elem string) Update {
	return u.with(Op{Kind: OpAddToSet, Field: field, Value: elem})
}

// Pull removes every occurrence of elem from the array field.
func (u Update) Pull(field, elem string) Update {
	return u.with(Op{Kind: OpPull, Field: field, Value: elem})
}

// Ops returns the mutations in application order.
func (u Update) Ops() []Op {
	return u.ops
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return len(u.ops) == 0
}

func (u Update) with(op Op) Update {
	ops := make([]Op, len(u.ops), len(u.ops)+1)
	copy(ops, u.ops)
	u.ops = append(ops, op)
	return u
}

// Apply mutates doc in place, one operator after another, each seeing the
// result of the ones before it. It is the reference semantics every backend
// must match; the memory backend uses it directly.
func (u Update) Apply(doc map[string]any) error {
	for _, op := range u.ops {
		switch op.Kind {
		case OpSet:
			v, err := normalize(op.Value)
			if err != nil {
				return fmt.Errorf("set %s: %w", op.Field, err)
			}
			doc[op.Field] = v
		case OpUnset:
			delete(doc, op.Field)
		case OpAddToSet:
			arr, err := arrayField(doc, op.Field)
			if err != nil {
				return err
			}
			if !containsElem(arr, op.Value) {
				arr = append(arr, op.Value)
			}
			doc[op.Field] = arr
		case OpPull:
			arr, err := arrayField(doc, op.Field)
			if err != nil {
				return err
			}
			kept := make([]any, 0, len(arr))
			for _, e := range arr {
				if e != op.Value {
					kept = append(kept, e)
				}
			}
			doc[op.Field] = kept
		default:
			return fmt.Errorf("unknown update operator %d", op.Kind)
		}
	}
	return nil
}

// NewDocument builds the body an upsert inserts: the filter's equality
// fields with the update applied on top.
func NewDocument(filter Filter, update Update) (map[string]any, error) {
	doc := make(map[string]any, len(filter.fields)+len(update.ops))
	for _, m := range filter.fields {
		doc[m.Field] = m.Value
	}
	if err := update.Apply(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func arrayField(doc map[string]any, field string) ([]any, error) {
	switch v := doc[field].(type) {
	case nil:
		return []any{}, nil
	case []any:
		return append([]any(nil), v...), nil
	default:
		return nil, fmt.Errorf("field %s is not an array", field)
	}
}

func containsElem(arr []any, elem any) bool {
	for _, e := range arr {
		if e == elem {
			return true
		}
	}
	return false
}

// normalize round-trips v through JSON so stored values only ever hold the
// types encoding/json produces.
func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
