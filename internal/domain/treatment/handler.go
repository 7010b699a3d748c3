package treatment

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
	g.GET("/treatments", h.ListTreatments)
	g.GET("/treatments/:id", h.GetTreatment)
	g.POST("/treatments", h.CreateTreatment)
	g.PUT("/treatments/:id", h.UpdateTreatment)
	g.DELETE("/treatments/:id", h.DeleteTreatment)
	g.GET("/patients/:id/treatments", h.ListByPatient)
}

func (h *Handler) CreateTreatment(c echo.Context) error {
	var t Treatment
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if _, err := h.svc.CreateTreatment(c.Request().Context(), &t); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) GetTreatment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	t, err := h.svc.GetTreatment(c.Request().Context(), id)
	if err != nil {
		return httperr.From(err)
	}
	if t == nil {
		return echo.NewHTTPError(http.StatusNotFound, "treatment not found")
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) ListTreatments(c echo.Context) error {
	treatments, err := h.svc.ListTreatments(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	pg := pagination.FromContext(c)
	page := pagination.Slice(treatments, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, len(treatments), pg.Limit, pg.Offset))
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := parseID(c)
	if err != nil {
		return err
	}
	treatments, err := h.svc.ListByPatient(c.Request().Context(), patientID)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, treatments)
}

func (h *Handler) UpdateTreatment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var patch Patch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	updated, err := h.svc.UpdateTreatment(c.Request().Context(), id, patch)
	if err != nil {
		return httperr.From(err)
	}
	if !updated {
		return echo.NewHTTPError(http.StatusNotFound, "treatment not found")
	}
	t, err := h.svc.GetTreatment(c.Request().Context(), id)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteTreatment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	deleted, err := h.svc.DeleteTreatment(c.Request().Context(), id)
	if err != nil {
		return httperr.From(err)
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, "treatment not found")
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
