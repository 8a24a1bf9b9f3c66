package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	collector := NewCollector()

	e := echo.New()
	e.Use(collector.Middleware())
	e.GET("/api/employees/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", collector.Handler())

	req := httptest.NewRequest(http.MethodGet, "/api/employees/abc", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("request: got status %d", rec.Code)
	}

	scrape := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	srec := httptest.NewRecorder()
	e.ServeHTTP(srec, scrape)
	if srec.Code != http.StatusOK {
		t.Fatalf("scrape: got status %d", srec.Code)
	}

	body := srec.Body.String()
	if !strings.Contains(body, `covadmin_http_requests_total{method="GET",path="/api/employees/:id",status="200"} 1`) {
		t.Errorf("counter with route template label not found in scrape output:\n%s", body)
	}
	if !strings.Contains(body, "covadmin_http_request_duration_seconds") {
		t.Error("latency histogram not found in scrape output")
	}
}

func TestMiddlewareLabelsErrorStatus(t *testing.T) {
	collector := NewCollector()

	e := echo.New()
	e.Use(collector.Middleware())
	e.GET("/api/policies/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "Policy not found")
	})
	e.GET("/metrics", collector.Handler())

	req := httptest.NewRequest(http.MethodGet, "/api/policies/missing", nil)
	e.ServeHTTP(httptest.NewRecorder(), req)

	srec := httptest.NewRecorder()
	e.ServeHTTP(srec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !strings.Contains(srec.Body.String(), `status="404"`) {
		t.Error("expected 404 status label in scrape output")
	}
}
