package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"interlink/internal/repository/docstore"
)

// Store implements docstore.Store with one JSONB table per collection,
// all inside a single Postgres schema.
type Store struct {
	pool   *pgxpool.Pool
	schema string
	logger *slog.Logger
}

// NewStore wraps an open pool. Collections are created by EnsureSchema.
func NewStore(pool *pgxpool.Pool, schema string, logger *slog.Logger) *Store {
	return &Store{pool: pool, schema: schema, logger: logger}
}

// Collection returns a handle on the table backing name.
func (s *Store) Collection(name string) docstore.Collection {
	return &collection{
		pool:   s.pool,
		table:  tableName(s.schema, name),
		logger: s.logger,
	}
}

// Close closes the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// tableName returns the quoted, schema-qualified table for a collection.
func tableName(schema, collection string) string {
	return pgx.Identifier{schema, collection}.Sanitize()
}

type collection struct {
	pool   *pgxpool.Pool
	table  string
	logger *slog.Logger
}

func (c *collection) Find(ctx context.Context, filter docstore.Filter, sort ...docstore.SortKey) ([]docstore.Document, error) {
	query, args, err := buildFind(c.table, filter, sort, 0)
	if err != nil {
		return nil, err
	}

	executor := GetExecutor(ctx, c.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", c.table, err)
	}
	defer rows.Close()

	docs := []docstore.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", c.table, err)
	}

	return docs, nil
}

func (c *collection) FindOne(ctx context.Context, filter docstore.Filter) (docstore.Document, error) {
	query, args, err := buildFind(c.table, filter, nil, 1)
	if err != nil {
		return docstore.Document{}, err
	}

	executor := GetExecutor(ctx, c.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, args...))
	if err != nil {
		if IsPgNoRowsError(err) {
			return docstore.Document{}, docstore.ErrNoDocuments
		}
		return docstore.Document{}, fmt.Errorf("find one in %s: %w", c.table, err)
	}
	return doc, nil
}

func (c *collection) InsertOne(ctx context.Context, body any) (uuid.UUID, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode document: %w", err)
	}

	id := uuid.New()
	query, args := buildInsert(c.table, id, raw, false)

	executor := GetExecutor(ctx, c.pool)
	if _, err := executor.Exec(ctx, query, args...); err != nil {
		if IsPgDuplicateError(err) {
			return uuid.Nil, fmt.Errorf("insert into %s: %w", c.table, docstore.ErrDuplicateKey)
		}
		return uuid.Nil, fmt.Errorf("insert into %s: %w", c.table, err)
	}
	return id, nil
}

func (c *collection) UpdateOne(ctx context.Context, filter docstore.Filter, update docstore.Update, opts ...docstore.UpdateOption) (docstore.UpdateResult, error) {
	options := docstore.ResolveUpdateOptions(opts)

	matched, err := c.updateExisting(ctx, filter, update)
	if err != nil || matched > 0 || !options.Upsert {
		return docstore.UpdateResult{Matched: matched}, err
	}

	body, err := docstore.NewDocument(filter, update)
	if err != nil {
		return docstore.UpdateResult{}, fmt.Errorf("upsert into %s: %w", c.table, err)
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return docstore.UpdateResult{}, fmt.Errorf("encode document: %w", err)
	}

	id := uuid.New()
	query, args := buildInsert(c.table, id, raw, true)
	executor := GetExecutor(ctx, c.pool)
	tag, err := executor.Exec(ctx, query, args...)
	if err != nil {
		return docstore.UpdateResult{}, fmt.Errorf("upsert into %s: %w", c.table, err)
	}
	if tag.RowsAffected() == 1 {
		return docstore.UpdateResult{UpsertedID: id}, nil
	}

	// A concurrent upsert inserted the same unique key first; apply ours to it.
	c.logger.Debug("upsert lost insert race, retrying update", "table", c.table)
	matched, err = c.updateExisting(ctx, filter, update)
	return docstore.UpdateResult{Matched: matched}, err
}

func (c *collection) updateExisting(ctx context.Context, filter docstore.Filter, update docstore.Update) (int64, error) {
	if update.IsEmpty() {
		// Nothing to write; still report whether the document exists.
		_, err := c.FindOne(ctx, filter)
		if errors.Is(err, docstore.ErrNoDocuments) {
			return 0, nil
		}
		if err != nil {
			return 0, err
		}
		return 1, nil
	}

	query, args, err := buildUpdate(c.table, filter, update)
	if err != nil {
		return 0, err
	}

	executor := GetExecutor(ctx, c.pool)
	tag, err := executor.Exec(ctx, query, args...)
	if err != nil {
		if IsPgDuplicateError(err) {
			return 0, fmt.Errorf("update %s: %w", c.table, docstore.ErrDuplicateKey)
		}
		return 0, fmt.Errorf("update %s: %w", c.table, err)
	}
	return tag.RowsAffected(), nil
}

func (c *collection) DeleteOne(ctx context.Context, filter docstore.Filter) (int64, error) {
	query, args, err := buildDelete(c.table, filter)
	if err != nil {
		return 0, err
	}

	executor := GetExecutor(ctx, c.pool)
	tag, err := executor.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", c.table, err)
	}
	return tag.RowsAffected(), nil
}

func scanDocument(row pgx.Row) (docstore.Document, error) {
	var (
		idText string
		body   []byte
	)
	if err := row.Scan(&idText, &body); err != nil {
		return docstore.Document{}, err
	}

	id, err := uuid.Parse(idText)
	if err != nil {
		return docstore.Document{}, fmt.Errorf("parse document id %q: %w", idText, err)
	}
	return docstore.Document{ID: id, Body: body}, nil
}
