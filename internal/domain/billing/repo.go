package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/covadmin/covadmin/internal/platform/docstore"
)

// StatusSummary is one status group of the billing report.
type StatusSummary struct {
	Status      string  `json:"status"`
	Count       int     `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

type Repository interface {
	Insert(ctx context.Context, doc docstore.Document) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (docstore.Document, error)
	List(ctx context.Context) ([]docstore.Document, error)
	Merge(ctx context.Context, id uuid.UUID, fields docstore.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	// TotalAmount sums the amount field across all records, zero when empty.
	TotalAmount(ctx context.Context) (float64, error)
	// ListByServiceDateRange returns records whose serviceDate falls within
	// [start, end], both ends inclusive. A nil range returns all records.
	ListByServiceDateRange(ctx context.Context, start, end *time.Time) ([]docstore.Document, error)
	// SummarizeByStatus groups the records matching the range by status.
	SummarizeByStatus(ctx context.Context, start, end *time.Time) ([]StatusSummary, error)
}
