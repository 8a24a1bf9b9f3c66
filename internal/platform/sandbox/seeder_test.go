package sandbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/covadmin/covadmin/internal/platform/docstore"
)

type memCollection struct {
	docs map[uuid.UUID]docstore.Document
	seq  []uuid.UUID
}

func newMemCollection() *memCollection {
	return &memCollection{docs: make(map[uuid.UUID]docstore.Document)}
}

func (m *memCollection) Insert(_ context.Context, doc docstore.Document) (uuid.UUID, error) {
	id := uuid.New()
	m.docs[id] = doc
	m.seq = append(m.seq, id)
	return id, nil
}

func (m *memCollection) DeleteAll(_ context.Context) error {
	m.docs = make(map[uuid.UUID]docstore.Document)
	m.seq = nil
	return nil
}

func testCollections() (Collections, map[string]*memCollection) {
	cols := map[string]*memCollection{
		"employees":     newMemCollection(),
		"beneficiaries": newMemCollection(),
		"services":      newMemCollection(),
		"billing":       newMemCollection(),
		"policies":      newMemCollection(),
	}
	return Collections{
		Employees:     cols["employees"],
		Beneficiaries: cols["beneficiaries"],
		Services:      cols["services"],
		Billing:       cols["billing"],
		Policies:      cols["policies"],
	}, cols
}

func TestSeedCounts(t *testing.T) {
	cols, raw := testCollections()
	seeder := NewSeeder(cols, zerolog.Nop())

	result, err := seeder.Seed(context.Background())
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if result.Employees != 3 || result.Beneficiaries != 2 || result.Services != 2 ||
		result.Billing != 2 || result.Policies != 3 {
		t.Errorf("unexpected counts: %+v", result)
	}
	if len(raw["employees"].docs) != 3 {
		t.Errorf("employees collection holds %d records", len(raw["employees"].docs))
	}
}

func TestSeedIdempotent(t *testing.T) {
	cols, raw := testCollections()
	seeder := NewSeeder(cols, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if _, err := seeder.Seed(context.Background()); err != nil {
			t.Fatalf("Seed run %d: %v", i+1, err)
		}
	}

	want := map[string]int{
		"employees": 3, "beneficiaries": 2, "services": 2, "billing": 2, "policies": 3,
	}
	for name, n := range want {
		if got := len(raw[name].docs); got != n {
			t.Errorf("%s: got %d records after two runs, want %d", name, got, n)
		}
	}
}

func TestSeedBeneficiaryReferences(t *testing.T) {
	cols, raw := testCollections()
	seeder := NewSeeder(cols, zerolog.Nop())

	if _, err := seeder.Seed(context.Background()); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	employeeIDs := make(map[string]bool)
	for id := range raw["employees"].docs {
		employeeIDs[id.String()] = true
	}
	for _, doc := range raw["beneficiaries"].docs {
		ref, _ := doc["employeeId"].(string)
		if !employeeIDs[ref] {
			t.Errorf("beneficiary %v references unknown employee %q", doc["beneficiaryId"], ref)
		}
	}
}

func TestInitializeHTTP(t *testing.T) {
	cols, _ := testCollections()
	seeder := NewSeeder(cols, zerolog.Nop())

	e := echo.New()
	NewHandler(seeder).RegisterRoutes(e.Group("/api"))

	req := httptest.NewRequest(http.MethodPost, "/api/initialize", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Sample data initialized successfully") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
