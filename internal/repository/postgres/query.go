package postgres

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"interlink/internal/repository/docstore"
)

// Documents live in tables of shape (id UUID, doc JSONB). The builders below
// translate docstore filters and updates into parameterized SQL. Field names
// are interpolated as string literals after docstore.ValidField accepts them;
// every value travels as a bind parameter.

// argList accumulates bind parameters and hands out their placeholders.
type argList []any

func (a *argList) add(v any) string {
	*a = append(*a, v)
	return fmt.Sprintf("$%d", len(*a))
}

func fieldText(field string) (string, error) {
	if !docstore.ValidField(field) {
		return "", fmt.Errorf("invalid field name %q", field)
	}
	return fmt.Sprintf("(doc->>'%s')", field), nil
}

func fieldJSON(source, field string) (string, error) {
	if !docstore.ValidField(field) {
		return "", fmt.Errorf("invalid field name %q", field)
	}
	return fmt.Sprintf("(%s->'%s')", source, field), nil
}

func buildWhere(filter docstore.Filter, args *argList) (string, error) {
	var conds []string

	if ids, ok := filter.IDs(); ok {
		if len(ids) == 0 {
			return "FALSE", nil
		}
		conds = append(conds, fmt.Sprintf("id = ANY(%s::uuid[])", args.add(uuidStrings(ids))))
	}

	for _, m := range filter.Fields() {
		ref, err := fieldText(m.Field)
		if err != nil {
			return "", err
		}
		conds = append(conds, fmt.Sprintf("%s = %s", ref, args.add(m.Value)))
	}

	if len(conds) == 0 {
		return "TRUE", nil
	}
	return strings.Join(conds, " AND "), nil
}

func buildFind(table string, filter docstore.Filter, sort []docstore.SortKey, limit int) (string, []any, error) {
	var args argList
	where, err := buildWhere(filter, &args)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT id::text, doc FROM %s WHERE %s", table, where)

	if len(sort) > 0 {
		keys := make([]string, 0, len(sort))
		for _, key := range sort {
			ref, err := fieldText(key.Field)
			if err != nil {
				return "", nil, err
			}
			dir := "ASC"
			if key.Desc {
				dir = "DESC"
			}
			// Byte-wise ordering, independent of the database collation.
			keys = append(keys, fmt.Sprintf(`%s COLLATE "C" %s`, ref, dir))
		}
		fmt.Fprintf(&b, " ORDER BY %s", strings.Join(keys, ", "))
	}

	if limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", limit)
	}
	return b.String(), args, nil
}

// buildInsert adds a new document. With skipConflict, a unique-key clash
// inserts nothing instead of failing.
func buildInsert(table string, id uuid.UUID, body []byte, skipConflict bool) (string, []any) {
	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1::uuid, $2::jsonb)`, table)
	if skipConflict {
		query += " ON CONFLICT DO NOTHING"
	}
	return query, []any{id.String(), body}
}

// buildUpdate rewrites at most one matching document in a single statement,
// so set mutations never read-modify-write from the client. Each operator
// reads the output of the previous one, matching docstore.Update.Apply.
func buildUpdate(table string, filter docstore.Filter, update docstore.Update) (string, []any, error) {
	var args argList

	expr := "doc"
	for _, op := range update.Ops() {
		next, err := applyOp(expr, op, &args)
		if err != nil {
			return "", nil, err
		}
		expr = next
	}

	where, err := buildWhere(filter, &args)
	if err != nil {
		return "", nil, err
	}

	query := fmt.Sprintf(
		`UPDATE %[1]s SET doc = %[2]s, updated_at = NOW() WHERE id = (SELECT id FROM %[1]s WHERE %[3]s LIMIT 1 FOR UPDATE)`,
		table, expr, where,
	)
	return query, args, nil
}

func applyOp(expr string, op docstore.Op, args *argList) (string, error) {
	if !docstore.ValidField(op.Field) {
		return "", fmt.Errorf("invalid field name %q", op.Field)
	}
	path := fmt.Sprintf("'{%s}'", op.Field)

	switch op.Kind {
	case docstore.OpSet:
		value, err := json.Marshal(op.Value)
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", op.Field, err)
		}
		return fmt.Sprintf("jsonb_set(%s, %s, %s::jsonb, true)", expr, path, args.add(value)), nil

	case docstore.OpUnset:
		return fmt.Sprintf("(%s - '%s')", expr, op.Field), nil

	case docstore.OpAddToSet:
		elem, err := json.Marshal([]any{op.Value})
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", op.Field, err)
		}
		current, _ := fieldJSON(expr, op.Field)
		current = fmt.Sprintf("COALESCE(%s, '[]'::jsonb)", current)
		p := args.add(elem)
		return fmt.Sprintf(
			"jsonb_set(%s, %s, CASE WHEN %s @> %s::jsonb THEN %s ELSE %s || %s::jsonb END, true)",
			expr, path, current, p, current, current, p,
		), nil

	case docstore.OpPull:
		elem, err := json.Marshal(op.Value)
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", op.Field, err)
		}
		current, _ := fieldJSON(expr, op.Field)
		return fmt.Sprintf(
			"jsonb_set(%s, %s, COALESCE((SELECT jsonb_agg(e) FROM jsonb_array_elements(COALESCE(%s, '[]'::jsonb)) AS e WHERE e <> %s::jsonb), '[]'::jsonb), true)",
			expr, path, current, args.add(elem),
		), nil

	default:
		return "", fmt.Errorf("unknown update operator %d", op.Kind)
	}
}

func buildDelete(table string, filter docstore.Filter) (string, []any, error) {
	var args argList
	where, err := buildWhere(filter, &args)
	if err != nil {
		return "", nil, err
	}
	query := fmt.Sprintf(`DELETE FROM %[1]s WHERE id = (SELECT id FROM %[1]s WHERE %[2]s LIMIT 1 FOR UPDATE)`, table, where)
	return query, args, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
