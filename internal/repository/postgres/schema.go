package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"interlink/internal/repository/docstore"
)

// EnsureSchema creates the schema, one table per collection and the
// declared indexes, all in one transaction. It is idempotent.
func EnsureSchema(ctx context.Context, tm *TransactionManager, schema string, collections []docstore.CollectionSpec) error {
	statements, err := schemaStatements(schema, collections)
	if err != nil {
		return err
	}

	return tm.ExecTx(ctx, func(ctx context.Context) error {
		executor := GetExecutor(ctx, tm.pool)
		for _, stmt := range statements {
			if _, err := executor.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}
		}
		return nil
	})
}

// DropCollections removes the tables backing collections. Used by the seed tool's reset.
func DropCollections(ctx context.Context, tm *TransactionManager, schema string, collections []docstore.CollectionSpec) error {
	return tm.ExecTx(ctx, func(ctx context.Context) error {
		executor := GetExecutor(ctx, tm.pool)
		for _, c := range collections {
			stmt := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName(schema, c.Name))
			if _, err := executor.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("drop %s: %w", c.Name, err)
			}
		}
		return nil
	})
}

func schemaStatements(schema string, collections []docstore.CollectionSpec) ([]string, error) {
	statements := []string{
		fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", pgx.Identifier{schema}.Sanitize()),
	}

	for _, c := range collections {
		table := tableName(schema, c.Name)
		statements = append(statements, fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				doc JSONB NOT NULL DEFAULT '{}'::jsonb,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, table))

		for _, idx := range c.Indexes {
			stmt, err := indexStatement(table, c.Name, idx)
			if err != nil {
				return nil, err
			}
			statements = append(statements, stmt)
		}
	}

	return statements, nil
}

func indexStatement(table, collection string, idx docstore.Index) (string, error) {
	if len(idx.Fields) == 0 {
		return "", fmt.Errorf("index on %s has no fields", collection)
	}

	exprs := make([]string, 0, len(idx.Fields))
	for _, f := range idx.Fields {
		ref, err := fieldText(f)
		if err != nil {
			return "", err
		}
		exprs = append(exprs, ref)
	}

	kind := "INDEX"
	suffix := "idx"
	if idx.Unique {
		kind = "UNIQUE INDEX"
		suffix = "key"
	}
	name := pgx.Identifier{fmt.Sprintf("%s_%s_%s", collection, strings.Join(idx.Fields, "_"), suffix)}.Sanitize()

	return fmt.Sprintf("CREATE %s IF NOT EXISTS %s ON %s (%s)", kind, name, table, strings.Join(exprs, ", ")), nil
}
