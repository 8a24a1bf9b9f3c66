package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Collection is a JSONB-backed document table. Each row is
// (id UUID, doc JSONB, created_at, updated_at); every entity kind gets its
// own table and wraps a Collection in its repository.
type Collection struct {
	pool  *pgxpool.Pool
	table string
}

// NewCollection binds a Collection to a table. The table name comes from a
// fixed set defined by the migrations, never from user input.
func NewCollection(pool *pgxpool.Pool, table string) *Collection {
	return &Collection{pool: pool, table: table}
}

// Table returns the underlying table name.
func (c *Collection) Table() string { return c.table }

// Pool exposes the connection pool for repository-specific queries.
func (c *Collection) Pool() *pgxpool.Pool { return c.pool }

// Insert stores a new document and returns its generated identifier.
// created_at and updated_at are stamped by the database.
func (c *Collection) Insert(ctx context.Context, doc Document) (uuid.UUID, error) {
	id := uuid.New()
	body, err := json.Marshal(StripReserved(doc))
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode document: %w", err)
	}
	_, err = c.pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)`, c.table),
		id, body)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Get returns a single document with id, createdAt and updatedAt injected.
func (c *Collection) Get(ctx context.Context, id uuid.UUID) (Document, error) {
	row := c.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT doc, created_at, updated_at FROM %s WHERE id = $1`, c.table),
		id)
	return scanDocument(row, id)
}

// List returns every document in insertion order.
func (c *Collection) List(ctx context.Context) ([]Document, error) {
	return c.queryDocuments(ctx,
		fmt.Sprintf(`SELECT id, doc, created_at, updated_at FROM %s ORDER BY created_at, id`, c.table))
}

// ListWhere returns documents matching the given WHERE clause, in insertion
// order. The clause references columns and doc fields directly and uses
// positional placeholders for args.
func (c *Collection) ListWhere(ctx context.Context, where string, args ...interface{}) ([]Document, error) {
	return c.queryDocuments(ctx,
		fmt.Sprintf(`SELECT id, doc, created_at, updated_at FROM %s WHERE %s ORDER BY created_at, id`, c.table, where),
		args...)
}

func (c *Collection) queryDocuments(ctx context.Context, query string, args ...interface{}) ([]Document, error) {
	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		var (
			id        uuid.UUID
			body      []byte
			createdAt time.Time
			updatedAt time.Time
		)
		if err := rows.Scan(&id, &body, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		doc, err := decodeDocument(body, id, createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Merge applies a partial update: named fields replace their previous
// values, all other fields keep theirs, and updated_at is refreshed.
func (c *Collection) Merge(ctx context.Context, id uuid.UUID, fields Document) error {
	body, err := json.Marshal(StripReserved(fields))
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	tag, err := c.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET doc = doc || $2::jsonb, updated_at = NOW() WHERE id = $1`, c.table),
		id, body)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a document by identifier.
func (c *Collection) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := c.pool.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, c.table), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll wipes the collection.
func (c *Collection) DeleteAll(ctx context.Context) error {
	_, err := c.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, c.table))
	return err
}

// Count returns the number of documents in the collection.
func (c *Collection) Count(ctx context.Context) (int64, error) {
	var n int64
	err := c.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s`, c.table)).Scan(&n)
	return n, err
}

// ExistsWhere reports whether any document has the given top-level field
// equal to value.
func (c *Collection) ExistsWhere(ctx context.Context, field, value string) (bool, error) {
	var exists bool
	err := c.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE doc->>$1 = $2)`, c.table),
		field, value).Scan(&exists)
	return exists, err
}

func scanDocument(row pgx.Row, id uuid.UUID) (Document, error) {
	var (
		body      []byte
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&body, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeDocument(body, id, createdAt, updatedAt)
}

func decodeDocument(body []byte, id uuid.UUID, createdAt, updatedAt time.Time) (Document, error) {
	doc := Document{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc["id"] = id
	doc["createdAt"] = createdAt
	doc["updatedAt"] = updatedAt
	return doc, nil
}
