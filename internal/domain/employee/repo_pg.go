package employee

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
	return &PGRepository{col: docstore.NewCollection(pool, "employees")}
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

func (r *PGRepository) ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error) {
	return r.col.ExistsWhere(ctx, "employeeId", employeeID)
}

func (r *PGRepository) CountByCoveragePlan(ctx context.Context) (map[string]int, error) {
	rows, err := r.col.Pool().Query(ctx,
		`SELECT doc->>'coveragePlan', COUNT(*) FROM employees GROUP BY 1`)
	if err != nil {
		return nil, fmt.Errorf("count by coverage plan: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var plan *string
		var n int
		if err := rows.Scan(&plan, &n); err != nil {
			return nil, fmt.Errorf("scan coverage plan count: %w", err)
		}
		if plan != nil {
			counts[*plan] = n
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate coverage plan counts: %w", err)
	}
	return counts, nil
}
