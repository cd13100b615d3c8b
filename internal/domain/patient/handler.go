package patient

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
	g := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleNurse, auth.RolePharmacist))
	g.GET("/patients", h.List)
	g.GET("/patients/:id", h.Get)
	g.GET("/sites/:siteId/patients", h.ListBySite)
	g.POST("/patients", h.Create)
	g.PUT("/patients/:id", h.Update)
	g.DELETE("/patients/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	p := Patient{IsActive: true}
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	scope := auth.ScopeFromClaims(auth.ClaimsFromContext(c.Request().Context()))
	created, err := h.svc.Create(c.Request().Context(), &p, scope)
	if err != nil {
		return httperr.From(err, "site not found")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	scope := auth.ScopeFromClaims(auth.ClaimsFromContext(c.Request().Context()))
	p, err := h.svc.Get(c.Request().Context(), id, scope)
	if err != nil {
		return httperr.From(err, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) List(c echo.Context) error {
	return h.list(c, 0)
}

func (h *Handler) ListBySite(c echo.Context) error {
	siteID, err := strconv.ParseInt(c.Param("siteId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid site id")
	}
	return h.list(c, siteID)
}

func (h *Handler) list(c echo.Context, siteID int64) error {
	pg := pagination.FromContext(c)
	filter := ListFilter{
		Search:  c.QueryParam("search"),
		SiteID:  siteID,
		Status:  c.QueryParam("status"),
		SortKey: c.QueryParam("sortField"),
		SortDir: c.QueryParam("sortDirection"),
	}
	if filter.SiteID == 0 {
		if site := c.QueryParam("site"); site != "" && site != "all" {
			id, err := strconv.ParseInt(site, 10, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid site filter")
			}
			filter.SiteID = id
		}
	}
	if building := c.QueryParam("building"); building != "" && building != "all" {
		id, err := strconv.ParseInt(building, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid building filter")
		}
		filter.BuildingID = id
	}
	scope := auth.ScopeFromClaims(auth.ClaimsFromContext(c.Request().Context()))
	items, total, err := h.svc.List(c.Request().Context(), filter, scope, pg.Limit, pg.Offset())
	if err != nil {
		return httperr.From(err, "patients not found")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
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
	scope := auth.ScopeFromClaims(auth.ClaimsFromContext(c.Request().Context()))
	p, err := h.svc.Update(c.Request().Context(), id, patch, scope)
	if err != nil {
		return httperr.From(err, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	scope := auth.ScopeFromClaims(auth.ClaimsFromContext(c.Request().Context()))
	if err := h.svc.Delete(c.Request().Context(), id, scope); err != nil {
		return httperr.From(err, "patient not found")
	}
	return c.NoContent(http.StatusNoContent)
}
