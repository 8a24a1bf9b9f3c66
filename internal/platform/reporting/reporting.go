// Package reporting generates the billing report: per-status aggregation plus
// the detailed record list for an optional service-date range.
package reporting

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/covadmin/covadmin/internal/domain/billing"
	"github.com/covadmin/covadmin/internal/platform/docstore"
)

// BillingSource is the slice of the billing service the report reads from.
type BillingSource interface {
	ListByServiceDateRange(ctx context.Context, start, end *time.Time) ([]docstore.Document, error)
	SummarizeByStatus(ctx context.Context, start, end *time.Time) ([]billing.StatusSummary, error)
}

// Report is the billing report response body.
type Report struct {
	Summary         []billing.StatusSummary `json:"summary"`
	DetailedRecords interface{}             `json:"detailedRecords"`
	GeneratedAt     string                  `json:"generatedAt"`
}

type Handler struct {
	src BillingSource
}

func NewHandler(src BillingSource) *Handler {
	return &Handler{src: src}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/reports/billing", h.BillingReport)
}

// BillingReport filters claims by serviceDate within [start_date, end_date],
// both ends inclusive. The range applies only when both parameters are given;
// otherwise every record is reported.
func (h *Handler) BillingReport(c echo.Context) error {
	var start, end *time.Time
	startParam := c.QueryParam("start_date")
	endParam := c.QueryParam("end_date")
	if startParam != "" && endParam != "" {
		s, err := docstore.ParseTimestamp(startParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid start_date")
		}
		e, err := docstore.ParseTimestamp(endParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid end_date")
		}
		start, end = &s, &e
	}

	ctx := c.Request().Context()
	summary, err := h.src.SummarizeByStatus(ctx, start, end)
	if err != nil {
		return echo.NewHTTPError(docstore.HTTPStatus(err), err.Error())
	}
	records, err := h.src.ListByServiceDateRange(ctx, start, end)
	if err != nil {
		return echo.NewHTTPError(docstore.HTTPStatus(err), err.Error())
	}

	if summary == nil {
		summary = []billing.StatusSummary{}
	}
	return c.JSON(http.StatusOK, Report{
		Summary:         summary,
		DetailedRecords: docstore.Normalize(records),
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
	})
}
