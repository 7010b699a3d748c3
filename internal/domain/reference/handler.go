package reference

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dka/dka/internal/platform/auth"
	"github.com/dka/dka/internal/platform/httperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers reads plus the mutating verbs. The mutations
// are deliberately routed so clients get an explicit 403 from the
// read-only policy rather than a generic 405.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	role := auth.RequireRole("admin", "physician", "nurse")

	g := api.Group("", role)
	g.GET("/treatment-types", h.ListTreatmentTypes)
	g.GET("/treatment-types/:id", h.GetTreatmentType)
	g.POST("/treatment-types", h.CreateTreatmentType)
	g.DELETE("/treatment-types/:id", h.DeleteTreatmentType)

	g.GET("/application-methods", h.ListApplicationMethods)
	g.GET("/application-methods/:id", h.GetApplicationMethod)
	g.POST("/application-methods", h.CreateApplicationMethod)
	g.DELETE("/application-methods/:id", h.DeleteApplicationMethod)
}

func (h *Handler) ListTreatmentTypes(c echo.Context) error {
	types, err := h.svc.ListTreatmentTypes(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, types)
}

func (h *Handler) GetTreatmentType(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	t, err := h.svc.GetTreatmentType(c.Request().Context(), id)
	if err != nil {
		return httperr.From(err)
	}
	if t == nil {
		return echo.NewHTTPError(http.StatusNotFound, "treatment type not found")
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) CreateTreatmentType(c echo.Context) error {
	var t TreatmentType
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return httperr.From(h.svc.CreateTreatmentType(c.Request().Context(), &t))
}

func (h *Handler) DeleteTreatmentType(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	return httperr.From(h.svc.DeleteTreatmentType(c.Request().Context(), id))
}

func (h *Handler) ListApplicationMethods(c echo.Context) error {
	methods, err := h.svc.ListApplicationMethods(c.Request().Context())
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, methods)
}

func (h *Handler) GetApplicationMethod(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	m, err := h.svc.GetApplicationMethod(c.Request().Context(), id)
	if err != nil {
		return httperr.From(err)
	}
	if m == nil {
		return echo.NewHTTPError(http.StatusNotFound, "application method not found")
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) CreateApplicationMethod(c echo.Context) error {
	var m ApplicationMethod
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return httperr.From(h.svc.CreateApplicationMethod(c.Request().Context(), &m))
}

func (h *Handler) DeleteApplicationMethod(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	return httperr.From(h.svc.DeleteApplicationMethod(c.Request().Context(), id))
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
