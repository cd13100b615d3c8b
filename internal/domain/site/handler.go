package site

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/carepoint/timetrack/internal/platform/auth"
	"github.com/carepoint/timetrack/internal/platform/httperr"
	"github.com/carepoint/timetrack/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleNurse, auth.RolePharmacist))
	read.GET("/sites", h.List)
	read.GET("/sites/sites-and-buildings", h.ListWithBuildings)
	read.GET("/sites/:id", h.Get)

	write := api.Group("", auth.RequireRole(auth.RoleAdmin))
	write.POST("/sites", h.Create)
	write.PUT("/sites/:id", h.Update)
	write.DELETE("/sites/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	s := Site{IsActive: true}
	if err := c.Bind(&s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &s); err != nil {
		return httperr.From(err, "site not found")
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	scope := auth.ScopeFromClaims(auth.ClaimsFromContext(c.Request().Context()))
	s, err := h.svc.Get(c.Request().Context(), id, scope)
	if err != nil {
		return httperr.From(err, "site not found")
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	filter := ListFilter{
		Search:  c.QueryParam("search"),
		Status:  c.QueryParam("status"),
		SortKey: c.QueryParam("sortField"),
		SortDir: c.QueryParam("sortDirection"),
	}
	scope := auth.ScopeFromClaims(auth.ClaimsFromContext(c.Request().Context()))
	items, total, err := h.svc.List(c.Request().Context(), filter, scope, pg.Limit, pg.Offset())
	if err != nil {
		return httperr.From(err, "sites not found")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

func (h *Handler) ListWithBuildings(c echo.Context) error {
	scope := auth.ScopeFromClaims(auth.ClaimsFromContext(c.Request().Context()))
	items, err := h.svc.ListWithBuildings(c.Request().Context(), scope)
	if err != nil {
		return httperr.From(err, "sites not found")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var patch Patch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s, err := h.svc.Update(c.Request().Context(), id, patch)
	if err != nil {
		return httperr.From(err, "site not found")
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return httperr.From(err, "site not found")
	}
	return c.NoContent(http.StatusNoContent)
}
