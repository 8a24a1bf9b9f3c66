package medservice

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/covadmin/covadmin/internal/platform/docstore"
)

type mockRepo struct {
	docs    map[uuid.UUID]docstore.Document
	monthly []MonthlyCount
}

func newMockRepo() *mockRepo {
	return &mockRepo{docs: make(map[uuid.UUID]docstore.Document)}
}

func (m *mockRepo) Insert(_ context.Context, doc docstore.Document) (uuid.UUID, error) {
	id := uuid.New()
	stored := docstore.Document{}
	for k, v := range doc {
		stored[k] = v
	}
	m.docs[id] = stored
	return id, nil
}

func (m *mockRepo) Get(_ context.Context, id uuid.UUID) (docstore.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return doc, nil
}

func (m *mockRepo) List(_ context.Context) ([]docstore.Document, error) {
	var out []docstore.Document
	for _, doc := range m.docs {
		out = append(out, doc)
	}
	return out, nil
}

func (m *mockRepo) Merge(_ context.Context, id uuid.UUID, fields docstore.Document) error {
	doc, ok := m.docs[id]
	if !ok {
		return docstore.ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.docs[id]; !ok {
		return docstore.ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

func (m *mockRepo) DeleteAll(_ context.Context) error {
	m.docs = make(map[uuid.UUID]docstore.Document)
	return nil
}

func (m *mockRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.docs)), nil
}

func (m *mockRepo) CountByMonth(_ context.Context) ([]MonthlyCount, error) {
	return m.monthly, nil
}

func validService() docstore.Document {
	return docstore.Document{
		"serviceId":   "SRV001",
		"date":        "2024-06-01",
		"patientName": "John Doe",
		"serviceType": "Consultation",
		"provider":    "City Hospital",
		"cost":        150.0,
		"status":      "Processed",
	}
}

func TestCreateServiceNormalizesDate(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), validService())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	doc, _ := repo.Get(context.Background(), id)
	if doc["date"] != "2024-06-01T00:00:00Z" {
		t.Errorf("date not normalized: %v", doc["date"])
	}
}

func TestCreateServiceMalformedDate(t *testing.T) {
	svc := NewService(newMockRepo())

	doc := validService()
	doc["date"] = "June 1st"

	_, err := svc.Create(context.Background(), doc)
	if !docstore.IsInvalid(err) {
		t.Errorf("expected invalid-input error, got %v", err)
	}
}

func TestCreateServiceMissingField(t *testing.T) {
	svc := NewService(newMockRepo())

	doc := validService()
	delete(doc, "provider")

	_, err := svc.Create(context.Background(), doc)
	if err == nil || err.Error() != "Missing required field: provider" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCreateServiceAllowsDuplicateServiceID(t *testing.T) {
	svc := NewService(newMockRepo())

	if _, err := svc.Create(context.Background(), validService()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), validService()); err != nil {
		t.Errorf("duplicate serviceId should be accepted, got %v", err)
	}
}

func TestUpdateServiceNormalizesDateWhenPresent(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), validService())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Update(context.Background(), id, docstore.Document{"date": "2024-07-15"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	doc, _ := repo.Get(context.Background(), id)
	if doc["date"] != "2024-07-15T00:00:00Z" {
		t.Errorf("date not normalized on update: %v", doc["date"])
	}

	// Updates without a date field leave it alone.
	if err := svc.Update(context.Background(), id, docstore.Document{"status": "Pending"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestMonthlyCounts(t *testing.T) {
	repo := newMockRepo()
	repo.monthly = []MonthlyCount{
		{Year: 2024, Month: 1, Count: 3},
		{Year: 2024, Month: 3, Count: 2},
	}
	svc := NewService(repo)

	buckets, err := svc.MonthlyCounts(context.Background())
	if err != nil {
		t.Fatalf("MonthlyCounts: %v", err)
	}
	if len(buckets) != 2 || buckets[0].Month != 1 || buckets[1].Count != 2 {
		t.Errorf("unexpected buckets: %v", buckets)
	}
}
