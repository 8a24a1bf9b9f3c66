// Package sandbox provides the sample-data initializer used for demos and
// local development. Seeding wipes all five collections and inserts a fixed
// dataset, so running it repeatedly always leaves the same records.
package sandbox

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/covadmin/covadmin/internal/platform/docstore"
)

// CollectionWriter is the slice of a repository the seeder needs.
type CollectionWriter interface {
	Insert(ctx context.Context, doc docstore.Document) (uuid.UUID, error)
	DeleteAll(ctx context.Context) error
}

// Collections groups the writers for all five collections.
type Collections struct {
	Employees     CollectionWriter
	Beneficiaries CollectionWriter
	Services      CollectionWriter
	Billing       CollectionWriter
	Policies      CollectionWriter
}

// SeedResult reports how many records each collection received.
type SeedResult struct {
	Employees     int `json:"employees"`
	Beneficiaries int `json:"beneficiaries"`
	Services      int `json:"services"`
	Billing       int `json:"billing"`
	Policies      int `json:"policies"`
}

type Seeder struct {
	cols Collections
	log  zerolog.Logger
}

func NewSeeder(cols Collections, log zerolog.Logger) *Seeder {
	return &Seeder{cols: cols, log: log}
}

// Seed wipes every collection and inserts the sample dataset. The two
// beneficiaries reference the first two employees by their freshly generated
// identifiers.
func (s *Seeder) Seed(ctx context.Context) (*SeedResult, error) {
	wipes := []struct {
		name string
		col  CollectionWriter
	}{
		{"employees", s.cols.Employees},
		{"beneficiaries", s.cols.Beneficiaries},
		{"services", s.cols.Services},
		{"billing", s.cols.Billing},
		{"policies", s.cols.Policies},
	}
	for _, w := range wipes {
		if err := w.col.DeleteAll(ctx); err != nil {
			return nil, fmt.Errorf("wipe %s: %w", w.name, err)
		}
	}

	result := &SeedResult{}

	employeeIDs := make([]uuid.UUID, 0, len(sampleEmployees))
	for _, doc := range sampleEmployees {
		id, err := s.cols.Employees.Insert(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("seed employees: %w", err)
		}
		employeeIDs = append(employeeIDs, id)
		result.Employees++
	}

	for i, doc := range sampleBeneficiaries(employeeIDs) {
		if _, err := s.cols.Beneficiaries.Insert(ctx, doc); err != nil {
			return nil, fmt.Errorf("seed beneficiary %d: %w", i, err)
		}
		result.Beneficiaries++
	}

	now := time.Now().UTC()
	for _, doc := range sampleServices(now) {
		if _, err := s.cols.Services.Insert(ctx, doc); err != nil {
			return nil, fmt.Errorf("seed services: %w", err)
		}
		result.Services++
	}
	for _, doc := range sampleBilling(now) {
		if _, err := s.cols.Billing.Insert(ctx, doc); err != nil {
			return nil, fmt.Errorf("seed billing: %w", err)
		}
		result.Billing++
	}
	for _, doc := range samplePolicies {
		if _, err := s.cols.Policies.Insert(ctx, doc); err != nil {
			return nil, fmt.Errorf("seed policies: %w", err)
		}
		result.Policies++
	}

	s.log.Info().
		Int("employees", result.Employees).
		Int("beneficiaries", result.Beneficiaries).
		Int("services", result.Services).
		Int("billing", result.Billing).
		Int("policies", result.Policies).
		Msg("sample data initialized")

	return result, nil
}

// Handler serves POST /initialize.
type Handler struct {
	seeder *Seeder
}

func NewHandler(seeder *Seeder) *Handler {
	return &Handler{seeder: seeder}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/initialize", h.Initialize)
}

func (h *Handler) Initialize(c echo.Context) error {
	result, err := h.seeder.Seed(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Sample data initialized successfully",
		"counts":  result,
	})
}

var sampleEmployees = []docstore.Document{
	{
		"employeeId":   "EMP001",
		"firstName":    "John",
		"lastName":     "Doe",
		"department":   "IT",
		"position":     "Software Engineer",
		"coveragePlan": "Premium",
		"status":       "Active",
	},
	{
		"employeeId":   "EMP002",
		"firstName":    "Jane",
		"lastName":     "Smith",
		"department":   "HR",
		"position":     "HR Manager",
		"coveragePlan": "Family",
		"status":       "Active",
	},
	{
		"employeeId":   "EMP003",
		"firstName":    "Mike",
		"lastName":     "Johnson",
		"department":   "Finance",
		"position":     "Accountant",
		"coveragePlan": "Basic",
		"status":       "Active",
	},
}

func sampleBeneficiaries(employeeIDs []uuid.UUID) []docstore.Document {
	return []docstore.Document{
		{
			"beneficiaryId": "BEN001",
			"firstName":     "Sarah",
			"lastName":      "Doe",
			"relationship":  "spouse",
			"employeeId":    employeeIDs[0].String(),
			"coverage":      "Premium",
			"status":        "Active",
		},
		{
			"beneficiaryId": "BEN002",
			"firstName":     "Tom",
			"lastName":      "Smith",
			"relationship":  "child",
			"employeeId":    employeeIDs[1].String(),
			"coverage":      "Family",
			"status":        "Active",
		},
	}
}

func sampleServices(now time.Time) []docstore.Document {
	return []docstore.Document{
		{
			"serviceId":   "SRV001",
			"date":        now.AddDate(0, 0, -30).Format(time.RFC3339),
			"patientName": "John Doe",
			"serviceType": "Consultation",
			"provider":    "City Hospital",
			"cost":        150,
			"status":      "Processed",
		},
		{
			"serviceId":   "SRV002",
			"date":        now.AddDate(0, 0, -15).Format(time.RFC3339),
			"patientName": "Sarah Doe",
			"serviceType": "Diagnostic",
			"provider":    "Med Lab",
			"cost":        300,
			"status":      "Pending",
		},
	}
}

func sampleBilling(now time.Time) []docstore.Document {
	return []docstore.Document{
		{
			"claimId":     "CLM001",
			"serviceDate": now.AddDate(0, 0, -30).Format(time.RFC3339),
			"patientName": "John Doe",
			"service":     "Consultation",
			"amount":      150,
			"coverage":    80,
			"status":      "Processed",
		},
		{
			"claimId":     "CLM002",
			"serviceDate": now.AddDate(0, 0, -15).Format(time.RFC3339),
			"patientName": "Sarah Doe",
			"service":     "Diagnostic",
			"amount":      300,
			"coverage":    90,
			"status":      "Pending",
		},
	}
}

var samplePolicies = []docstore.Document{
	{
		"policyName":  "Basic Coverage",
		"annualLimit": 5000,
		"deductible":  500,
		"coverage":    80,
		"status":      "Active",
	},
	{
		"policyName":  "Premium Coverage",
		"annualLimit": 15000,
		"deductible":  250,
		"coverage":    90,
		"status":      "Active",
	},
	{
		"policyName":  "Family Coverage",
		"annualLimit": 25000,
		"deductible":  200,
		"coverage":    95,
		"status":      "Active",
	},
}
