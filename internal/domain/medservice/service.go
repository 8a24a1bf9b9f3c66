// Package medservice manages medical service records (consultations,
// diagnostics, procedures) rendered to covered patients.
package medservice

import (
	"context"

	"github.com/google/uuid"

	"github.com/covadmin/covadmin/internal/platform/docstore"
)

var requiredFields = []string{
	"serviceId", "date", "patientName", "serviceType", "provider", "cost", "status",
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a service record. The serviceId business
// identifier is not checked for duplicates; only the opaque identifier is
// unique.
func (s *Service) Create(ctx context.Context, doc docstore.Document) (uuid.UUID, error) {
	for _, field := range requiredFields {
		if _, ok := doc[field]; !ok {
			return uuid.Nil, docstore.Invalidf("Missing required field: %s", field)
		}
	}
	if err := docstore.NormalizeDateField(doc, "date"); err != nil {
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
	if err := docstore.NormalizeDateField(fields, "date"); err != nil {
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

// MonthlyCounts feeds the dashboard's service-usage chart.
func (s *Service) MonthlyCounts(ctx context.Context) ([]MonthlyCount, error) {
	return s.repo.CountByMonth(ctx)
}
