package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/covadmin/covadmin/internal/platform/docstore"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard", h.Summary)
}

func (h *Handler) Summary(c echo.Context) error {
	summary, err := h.svc.Summary(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(docstore.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}
