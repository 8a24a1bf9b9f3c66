package beneficiary

import (
	"context"

	"github.com/google/uuid"

	"github.com/covadmin/covadmin/internal/platform/docstore"
)

type Repository interface {
	Insert(ctx context.Context, doc docstore.Document) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (docstore.Document, error)
	List(ctx context.Context) ([]docstore.Document, error)
	Merge(ctx context.Context, id uuid.UUID, fields docstore.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	ExistsByBeneficiaryID(ctx context.Context, beneficiaryID string) (bool, error)
}

// EmployeeDirectory is the read-only view of employees the beneficiary
// service needs to validate and resolve the employeeId back reference.
type EmployeeDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (docstore.Document, error)
}
