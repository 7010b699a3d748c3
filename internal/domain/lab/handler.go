package lab

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dka/dka/internal/platform/auth"
	"github.com/dka/dka/internal/platform/httperr"
	"github.com/dka/dka/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	role := auth.RequireRole("admin", "physician", "nurse")

	g := api.Group("", role)
	g.GET("/labs", h.ListResults)
	g.GET("/labs/:id", h.GetResult)
	g.POST("/labs", h.CreateResult)
	g.PUT("/labs/:id", h.UpdateResult)
	g.DELETE("/labs/:id", h.DeleteResult)
	g.GET("/patients/:id/labs", h.ListByPatient)
	g.GET("/patients/:id/suggestion", h.SuggestTreatment)
}

func (h *Handler) CreateResult(c echo.Context) error {
	var r Result
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if _, err := h.svc.CreateResult(c.Request().Context(), &r); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) GetResult(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	r, err := h.svc.GetResult(c.Request().Context(), id)
	if err != nil {
		return httperr.From(err)
	}
	if r == nil {
		return echo.NewHTTPError(http.StatusNotFound, "lab result not found")
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) ListResults(c echo.Context) error {
	results, err := h.svc.ListResults(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	pg := pagination.FromContext(c)
	page := pagination.Slice(results, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, len(results), pg.Limit, pg.Offset))
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := parseID(c)
	if err != nil {
		return err
	}
	results, err := h.svc.ListByPatient(c.Request().Context(), patientID)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, results)
}

func (h *Handler) SuggestTreatment(c echo.Context) error {
	patientID, err := parseID(c)
	if err != nil {
		return err
	}
	sug, err := h.svc.SuggestTreatment(c.Request().Context(), patientID)
	if err != nil {
		return httperr.From(err)
	}
	if sug == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no lab results for patient")
	}
	return c.JSON(http.StatusOK, sug)
}

func (h *Handler) UpdateResult(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var patch Patch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	updated, err := h.svc.UpdateResult(c.Request().Context(), id, patch)
	if err != nil {
		return httperr.From(err)
	}
	if !updated {
		return echo.NewHTTPError(http.StatusNotFound, "lab result not found")
	}
	r, err := h.svc.GetResult(c.Request().Context(), id)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) DeleteResult(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	deleted, err := h.svc.DeleteResult(c.Request().Context(), id)
	if err != nil {
		return httperr.From(err)
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, "lab result not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
