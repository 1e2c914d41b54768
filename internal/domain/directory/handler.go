package directory

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/caseflow/caseflow/internal/platform/auth"
	"github.com/caseflow/caseflow/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	staff := auth.RequireRole("admin", "agent", "hospital", "finance")

	api.GET("/users/:id", h.GetUser, auth.RequireRole("admin"))
	api.GET("/users", h.ListUsersByRole, auth.RequireRole("admin"))
	api.GET("/hospitals", h.ListHospitals, staff)
	api.GET("/hospitals/:id", h.GetHospital, staff)
	api.GET("/universities", h.ListUniversities, staff)
	api.GET("/universities/:id", h.GetUniversity, staff)
}

func notFoundOr500(err error) error {
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (h *Handler) GetUser(c echo.Context) error {
	u, err := h.svc.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return notFoundOr500(err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) ListUsersByRole(c echo.Context) error {
	role := c.QueryParam("role")
	if role == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "role is required")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListUsersByRole(c.Request().Context(), role, pg.Limit, pg.Offset)
	if err != nil {
		return notFoundOr500(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetHospital(c echo.Context) error {
	hosp, err := h.svc.GetHospital(c.Request().Context(), c.Param("id"))
	if err != nil {
		return notFoundOr500(err)
	}
	return c.JSON(http.StatusOK, hosp)
}

func (h *Handler) ListHospitals(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListHospitals(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return notFoundOr500(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetUniversity(c echo.Context) error {
	u, err := h.svc.GetUniversity(c.Request().Context(), c.Param("id"))
	if err != nil {
		return notFoundOr500(err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) ListUniversities(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListUniversities(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return notFoundOr500(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
