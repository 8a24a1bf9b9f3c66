package beneficiary

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/covadmin/covadmin/internal/platform/docstore"
)

type Handler struct {
	svc *Service
	log zerolog.Logger
}

func NewHandler(svc *Service, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/beneficiaries", h.List)
	api.POST("/beneficiaries", h.Create)
	api.GET("/beneficiaries/:id", h.Get)
	api.PUT("/beneficiaries/:id", h.Update)
	api.DELETE("/beneficiaries/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	doc := docstore.Document{}
	if err := c.Bind(&doc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id, err := h.svc.Create(c.Request().Context(), doc)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"message": "Beneficiary created successfully",
		"id":      id.String(),
	})
}

func (h *Handler) List(c echo.Context) error {
	docs, enriched, err := h.svc.ListEnriched(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	if !enriched {
		h.log.Warn().Msg("beneficiary enrichment failed, serving unenriched listing")
	}
	return c.JSON(http.StatusOK, docstore.Normalize(docs))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Beneficiary not found")
	}
	doc, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, docstore.Normalize(doc))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Beneficiary not found")
	}
	fields := docstore.Document{}
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Update(c.Request().Context(), id, fields); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Beneficiary updated successfully"})
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Beneficiary not found")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Beneficiary deleted successfully"})
}

func httpError(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Beneficiary not found")
	}
	return echo.NewHTTPError(docstore.HTTPStatus(err), err.Error())
}
