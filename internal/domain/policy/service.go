// Package policy manages the coverage plan catalog.
package policy

import (
	"context"

	"github.com/google/uuid"

	"github.com/covadmin/covadmin/internal/platform/docstore"
)

var requiredFields = []string{
	"policyName", "annualLimit", "deductible", "coverage", "status",
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
	return s.repo.Insert(ctx, doc)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (docstore.Document, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]docstore.Document, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, fields docstore.Document) error {
	return s.repo.Merge(ctx, id, fields)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
