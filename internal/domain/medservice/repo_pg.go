package medservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/covadmin/covadmin/internal/platform/docstore"
)

type PGRepository struct {
	col *docstore.Collection
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{col: docstore.NewCollection(pool, "services")}
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

func (r *PGRepository) CountByMonth(ctx context.Context) ([]MonthlyCount, error) {
	rows, err := r.col.Pool().Query(ctx, `
		SELECT EXTRACT(YEAR FROM (doc->>'date')::timestamptz)::int AS y,
		       EXTRACT(MONTH FROM (doc->>'date')::timestamptz)::int AS m,
		       COUNT(*)::int
		FROM services
		WHERE doc ? 'date'
		GROUP BY 1, 2
		ORDER BY 1, 2
		LIMIT 12`)
	if err != nil {
		return nil, fmt.Errorf("count services by month: %w", err)
	}
	defer rows.Close()

	var buckets []MonthlyCount
	for rows.Next() {
		var b MonthlyCount
		if err := rows.Scan(&b.Year, &b.Month, &b.Count); err != nil {
			return nil, fmt.Errorf("scan monthly count: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly counts: %w", err)
	}
	return buckets, nil
}
