package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/covadmin/covadmin/internal/platform/docstore"
)

type PGRepository struct {
	col *docstore.Collection
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{col: docstore.NewCollection(pool, "billing")}
}

func (r *PGRepository) Insert(ctx context.Context, doc docstore.Document) (uuid.UUID, error) {
	return r.col.Insert(ctx, doc)
}

func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (docstore.Document, error) {
	return r.col.Get(ctx, id)
}

func (r *PGRepository) List(ctx context.Context) ([]docstore.Document, error) {
	return r.col.List(ctx)
}

func (r *PGRepository) Merge(ctx context.Context, id uuid.UUID, fields docstore.Document) error {
	return r.col.Merge(ctx, id, fields)
}

func (r *PGRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.col.Delete(ctx, id)
}

func (r *PGRepository) DeleteAll(ctx context.Context) error {
	return r.col.DeleteAll(ctx)
}

func (r *PGRepository) Count(ctx context.Context) (int64, error) {
	return r.col.Count(ctx)
}

func (r *PGRepository) TotalAmount(ctx context.Context) (float64, error) {
	var total float64
	err := r.col.Pool().QueryRow(ctx,
		`SELECT COALESCE(SUM((doc->>'amount')::numeric), 0)::float8 FROM billing`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum billing amount: %w", err)
	}
	return total, nil
}

func (r *PGRepository) ListByServiceDateRange(ctx context.Context, start, end *time.Time) ([]docstore.Document, error) {
	if start == nil || end == nil {
		return r.col.List(ctx)
	}
	return r.col.ListWhere(ctx,
		`(doc->>'serviceDate')::timestamptz BETWEEN $1 AND $2`, *start, *end)
}

func (r *PGRepository) SummarizeByStatus(ctx context.Context, start, end *time.Time) ([]StatusSummary, error) {
	query := `
		SELECT COALESCE(doc->>'status', ''),
		       COUNT(*)::int,
		       COALESCE(SUM((doc->>'amount')::numeric), 0)::float8
		FROM billing`
	args := []interface{}{}
	if start != nil && end != nil {
		query += ` WHERE (doc->>'serviceDate')::timestamptz BETWEEN $1 AND $2`
		args = append(args, *start, *end)
	}
	query += ` GROUP BY 1 ORDER BY 1`

	rows, err := r.col.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summarize billing by status: %w", err)
	}
	defer rows.Close()

	var summaries []StatusSummary
	for rows.Next() {
		var s StatusSummary
		if err := rows.Scan(&s.Status, &s.Count, &s.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan status summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status summaries: %w", err)
	}
	return summaries, nil
}
