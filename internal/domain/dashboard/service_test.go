package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/covadmin/covadmin/internal/domain/medservice"
)

type stubStats struct {
	employeeCount     int64
	coverageCounts    map[string]int
	coverageCountsErr error
	countErr          error
}

func (s *stubStats) Count(context.Context) (int64, error) {
	return s.employeeCount, s.countErr
}

func (s *stubStats) CoverageCounts(context.Context) (map[string]int, error) {
	return s.coverageCounts, s.coverageCountsErr
}

type stubBeneficiaries struct{ count int64 }

func (s *stubBeneficiaries) Count(context.Context) (int64, error) { return s.count, nil }

type stubServices struct {
	count      int64
	monthly    []medservice.MonthlyCount
	monthlyErr error
}

func (s *stubServices) Count(context.Context) (int64, error) { return s.count, nil }
func (s *stubServices) MonthlyCounts(context.Context) ([]medservice.MonthlyCount, error) {
	return s.monthly, s.monthlyErr
}

type stubBilling struct {
	total float64
	err   error
}

func (s *stubBilling) TotalAmount(context.Context) (float64, error) { return s.total, s.err }

func TestSummaryMonthGapFilling(t *testing.T) {
	svc := NewService(
		&stubStats{employeeCount: 3, coverageCounts: map[string]int{}},
		&stubBeneficiaries{count: 2},
		&stubServices{count: 5, monthly: []medservice.MonthlyCount{
			{Year: 2024, Month: 1, Count: 3},
			{Year: 2024, Month: 3, Count: 2},
		}},
		&stubBilling{total: 450},
		zerolog.Nop(),
	)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	usage := summary.ChartData.ServiceUsage
	if usage.Source != SourceComputed {
		t.Errorf("expected computed series, got %q", usage.Source)
	}
	want := []int{3, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	if !reflect.DeepEqual(usage.Data, want) {
		t.Errorf("gap filling: got %v, want %v", usage.Data, want)
	}
}

func TestSummaryCoverageDistributionOrdering(t *testing.T) {
	svc := NewService(
		&stubStats{employeeCount: 4, coverageCounts: map[string]int{
			"Basic": 2, "Premium": 1, "Family": 1, "Platinum": 9,
		}},
		&stubBeneficiaries{},
		&stubServices{},
		&stubBilling{},
		zerolog.Nop(),
	)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	dist := summary.ChartData.CoverageDistribution
	if dist.Source != SourceComputed {
		t.Errorf("expected computed series, got %q", dist.Source)
	}
	// Unrecognized plans are dropped, slots are [Basic, Premium, Family].
	if !reflect.DeepEqual(dist.Data, []int{2, 1, 1}) {
		t.Errorf("unexpected distribution: %v", dist.Data)
	}
}

func TestSummaryChartFallbacks(t *testing.T) {
	svc := NewService(
		&stubStats{coverageCountsErr: errors.New("aggregation failed")},
		&stubBeneficiaries{},
		&stubServices{monthlyErr: errors.New("aggregation failed")},
		&stubBilling{},
		zerolog.Nop(),
	)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	usage := summary.ChartData.ServiceUsage
	if usage.Source != SourceFallback {
		t.Errorf("expected fallback series, got %q", usage.Source)
	}
	if !reflect.DeepEqual(usage.Data, []int{65, 78, 85, 92, 88, 95, 102, 88, 96, 78, 85, 92}) {
		t.Errorf("unexpected fallback data: %v", usage.Data)
	}

	dist := summary.ChartData.CoverageDistribution
	if dist.Source != SourceFallback {
		t.Errorf("expected fallback series, got %q", dist.Source)
	}
	if !reflect.DeepEqual(dist.Data, []int{65, 25, 10}) {
		t.Errorf("unexpected fallback data: %v", dist.Data)
	}
}

func TestSummaryPropagatesCountErrors(t *testing.T) {
	svc := NewService(
		&stubStats{countErr: errors.New("store down")},
		&stubBeneficiaries{},
		&stubServices{},
		&stubBilling{},
		zerolog.Nop(),
	)

	if _, err := svc.Summary(context.Background()); err == nil {
		t.Fatal("expected error from employee count")
	}
}

func TestSummaryZeroBillingTotal(t *testing.T) {
	svc := NewService(
		&stubStats{coverageCounts: map[string]int{}},
		&stubBeneficiaries{},
		&stubServices{},
		&stubBilling{total: 0},
		zerolog.Nop(),
	)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.TotalBilling != 0 {
		t.Errorf("expected 0 billing total, got %v", summary.TotalBilling)
	}
}

func TestDashboardHTTP(t *testing.T) {
	svc := NewService(
		&stubStats{employeeCount: 3, coverageCounts: map[string]int{"Basic": 3}},
		&stubBeneficiaries{count: 2},
		&stubServices{count: 5},
		&stubBilling{total: 450},
		zerolog.Nop(),
	)

	e := echo.New()
	NewHandler(svc).RegisterRoutes(e.Group("/api"))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["totalEmployees"] != 3.0 || body["totalBilling"] != 450.0 {
		t.Errorf("unexpected totals: %v", body)
	}
	chart, ok := body["chartData"].(map[string]interface{})
	if !ok {
		t.Fatal("chartData missing")
	}
	if _, ok := chart["serviceUsage"]; !ok {
		t.Error("serviceUsage missing")
	}
}
