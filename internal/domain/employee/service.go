// Package employee manages covered-employee records.
package employee

import (
	"context"

	"github.com/google/uuid"

	"github.com/covadmin/covadmin/internal/platform/docstore"
)

var requiredFields = []string{
	"employeeId", "firstName", "lastName", "department", "position", "coveragePlan", "status",
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, doc docstore.Document) (uuid.UUID, error) {
	for _, field := range requiredFields {
		if _, ok := doc[field]; !ok {
			return uuid.Nil, docstore.Invalidf("Missing required field: %s", field)
		}
	}

	employeeID, _ := doc["employeeId"].(string)
	exists, err := s.repo.ExistsByEmployeeID(ctx, employeeID)
	if err != nil {
		return uuid.Nil, err
	}
	if exists {
		return uuid.Nil, docstore.Invalidf("Employee ID already exists")
	}

	id, err := s.repo.Insert(ctx, doc)
	if err != nil {
		// The unique index closes the gap between the check and the insert.
		if docstore.IsUniqueViolation(err) {
			return uuid.Nil, docstore.Invalidf("Employee ID already exists")
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (docstore.Document, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]docstore.Document, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, fields docstore.Document) error {
	err := s.repo.Merge(ctx, id, fields)
	if err != nil && docstore.IsUniqueViolation(err) {
		return docstore.Invalidf("Employee ID already exists")
	}
	return err
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// CoverageCounts returns per-plan employee counts for the dashboard.
func (s *Service) CoverageCounts(ctx context.Context) (map[string]int, error) {
	return s.repo.CountByCoveragePlan(ctx)
}
