package beneficiary

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/covadmin/covadmin/internal/platform/docstore"
)

type PGRepository struct {
	col *docstore.Collection
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{col: docstore.NewCollection(pool, "beneficiaries")}
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

func (r *PGRepository) ExistsByBeneficiaryID(ctx context.Context, beneficiaryID string) (bool, error) {
	return r.col.ExistsWhere(ctx, "beneficiaryId", beneficiaryID)
}
