// Package beneficiary manages dependents covered under an employee's plan.
// Each beneficiary carries a soft back reference to its owning employee via
// the employeeId field, which holds the employee's opaque identifier.
package beneficiary

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/covadmin/covadmin/internal/platform/docstore"
)

var requiredFields = []string{
	"beneficiaryId", "firstName", "lastName", "relationship", "employeeId", "coverage", "status",
}

type Service struct {
	repo      Repository
	employees EmployeeDirectory
}

func NewService(repo Repository, employees EmployeeDirectory) *Service {
	return &Service{repo: repo, employees: employees}
}

func (s *Service) Create(ctx context.Context, doc docstore.Document) (uuid.UUID, error) {
	for _, field := range requiredFields {
		if _, ok := doc[field]; !ok {
			return uuid.Nil, docstore.Invalidf("Missing required field: %s", field)
		}
	}

	beneficiaryID, _ := doc["beneficiaryId"].(string)
	exists, err := s.repo.ExistsByBeneficiaryID(ctx, beneficiaryID)
	if err != nil {
		return uuid.Nil, err
	}
	if exists {
		return uuid.Nil, docstore.Invalidf("Beneficiary ID already exists")
	}

	// The back reference must resolve to a real employee at creation time.
	// It is never re-validated afterwards and deletions do not cascade.
	employeeRef, _ := doc["employeeId"].(string)
	employeeID, err := uuid.Parse(employeeRef)
	if err != nil {
		return uuid.Nil, docstore.Invalidf("Employee not found")
	}
	if _, err := s.employees.Get(ctx, employeeID); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return uuid.Nil, docstore.Invalidf("Employee not found")
		}
		return uuid.Nil, err
	}

	id, err := s.repo.Insert(ctx, doc)
	if err != nil {
		if docstore.IsUniqueViolation(err) {
			return uuid.Nil, docstore.Invalidf("Beneficiary ID already exists")
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (docstore.Document, error) {
	return s.repo.Get(ctx, id)
}

// ListEnriched returns all beneficiaries with an employeeName field computed
// from the referenced employee ("{firstName} {lastName}", or "Unknown" when
// the reference does not resolve). When enrichment cannot proceed, for
// example a malformed reference, the plain unenriched listing is returned
// and enriched is false.
func (s *Service) ListEnriched(ctx context.Context) ([]docstore.Document, bool, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, false, err
	}

	// Enrich into copies so the fallback path serves the listing untouched.
	enriched := make([]docstore.Document, len(docs))
	names := make(map[uuid.UUID]string)
	for i, doc := range docs {
		ref, _ := doc["employeeId"].(string)
		employeeID, parseErr := uuid.Parse(ref)
		if parseErr != nil {
			return docs, false, nil
		}

		name, cached := names[employeeID]
		if !cached {
			emp, getErr := s.employees.Get(ctx, employeeID)
			switch {
			case errors.Is(getErr, docstore.ErrNotFound):
				name = "Unknown"
			case getErr != nil:
				return docs, false, nil
			default:
				name = fmt.Sprintf("%v %v", emp["firstName"], emp["lastName"])
			}
			names[employeeID] = name
		}

		out := docstore.Document{}
		for k, v := range doc {
			out[k] = v
		}
		out["employeeName"] = name
		enriched[i] = out
	}
	return enriched, true, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, fields docstore.Document) error {
	err := s.repo.Merge(ctx, id, fields)
	if err != nil && docstore.IsUniqueViolation(err) {
		return docstore.Invalidf("Beneficiary ID already exists")
	}
	return err
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
