// Package billing manages insurance claim records and the aggregations
// behind the billing report and dashboard totals.
package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/covadmin/covadmin/internal/platform/docstore"
)

var requiredFields = []string{
	"claimId", "serviceDate", "patientName", "service", "amount", "coverage", "status",
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a claim. As with medical services, the claimId
// business identifier is not checked for duplicates.
func (s *Service) Create(ctx context.Context, doc docstore.Document) (uuid.UUID, error) {
	for _, field := range requiredFields {
		if _, ok := doc[field]; !ok {
			return uuid.Nil, docstore.Invalidf("Missing required field: %s", field)
		}
	}
	if err := docstore.NormalizeDateField(doc, "serviceDate"); err != nil {
		return uuid.Nil, err
	}
	return s.repo.Insert(ctx, doc)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (docstore.Document, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]docstore.Document, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, fields docstore.Document) error {
	if err := docstore.NormalizeDateField(fields, "serviceDate"); err != nil {
		return err
	}
	return s.repo.Merge(ctx, id, fields)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// TotalAmount feeds the dashboard's billing total.
func (s *Service) TotalAmount(ctx context.Context) (float64, error) {
	return s.repo.TotalAmount(ctx)
}

func (s *Service) ListByServiceDateRange(ctx context.Context, start, end *time.Time) ([]docstore.Document, error) {
	return s.repo.ListByServiceDateRange(ctx, start, end)
}

func (s *Service) SummarizeByStatus(ctx context.Context, start, end *time.Time) ([]StatusSummary, error) {
	return s.repo.SummarizeByStatus(ctx, start, end)
}
