package reporting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/covadmin/covadmin/internal/domain/billing"
	"github.com/covadmin/covadmin/internal/platform/docstore"
)

type stubSource struct {
	records   []docstore.Document
	summaries []billing.StatusSummary

	gotStart, gotEnd *time.Time
}

func (s *stubSource) ListByServiceDateRange(_ context.Context, start, end *time.Time) ([]docstore.Document, error) {
	s.gotStart, s.gotEnd = start, end
	return s.records, nil
}

func (s *stubSource) SummarizeByStatus(_ context.Context, start, end *time.Time) ([]billing.StatusSummary, error) {
	return s.summaries, nil
}

func newTestServer(src *stubSource) *echo.Echo {
	e := echo.New()
	NewHandler(src).RegisterRoutes(e.Group("/api"))
	return e
}

func TestBillingReport(t *testing.T) {
	src := &stubSource{
		records: []docstore.Document{
			{"claimId": "CLM001", "amount": 150.0, "status": "Processed"},
		},
		summaries: []billing.StatusSummary{
			{Status: "Processed", Count: 1, TotalAmount: 150},
		},
	}
	e := newTestServer(src)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/billing", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rec.Code, rec.Body.String())
	}
	var report map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	summary := report["summary"].([]interface{})
	if len(summary) != 1 {
		t.Fatalf("expected 1 summary group, got %d", len(summary))
	}
	group := summary[0].(map[string]interface{})
	if group["status"] != "Processed" || group["count"] != 1.0 || group["totalAmount"] != 150.0 {
		t.Errorf("unexpected summary group: %v", group)
	}
	if report["generatedAt"] == "" {
		t.Error("generatedAt missing")
	}
	if src.gotStart != nil {
		t.Error("no range params should mean no filter")
	}
}

func TestBillingReportDateRange(t *testing.T) {
	src := &stubSource{}
	e := newTestServer(src)

	req := httptest.NewRequest(http.MethodGet,
		"/api/reports/billing?start_date=2024-01-01&end_date=2024-06-30", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rec.Code, rec.Body.String())
	}
	if src.gotStart == nil || src.gotEnd == nil {
		t.Fatal("range not passed to source")
	}
	if !src.gotStart.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start: %v", src.gotStart)
	}

	// A range matching nothing yields an empty report, not an error.
	var report map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(report["summary"].([]interface{})) != 0 {
		t.Errorf("expected empty summary: %v", report["summary"])
	}
}

func TestBillingReportMalformedDate(t *testing.T) {
	e := newTestServer(&stubSource{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/reports/billing?start_date=bogus&end_date=2024-06-30", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBillingReportSingleParamIgnored(t *testing.T) {
	src := &stubSource{}
	e := newTestServer(src)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/billing?start_date=2024-01-01", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}
	if src.gotStart != nil {
		t.Error("a lone start_date should not filter")
	}
}
