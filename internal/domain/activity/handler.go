package activity

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
	g.GET("/activities", h.List)
	g.GET("/activities/:id", h.Get)
	g.GET("/patients/:patientId/activities", h.ListByPatient)
	g.POST("/activities", h.Create)
	g.POST("/activities/batch", h.ListBatch)
	g.PUT("/activities/:id", h.Update)
	g.DELETE("/activities/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var a Activity
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	scope := auth.ScopeFromClaims(auth.ClaimsFromContext(c.Request().Context()))
	created, err := h.svc.Create(c.Request().Context(), &a, scope)
	if err != nil {
		return httperr.From(err, "patient not found")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	scope := auth.ScopeFromClaims(auth.ClaimsFromContext(c.Request().Context()))
	a, err := h.svc.Get(c.Request().Context(), id, scope)
	if err != nil {
		return httperr.From(err, "activity not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) List(c echo.Context) error {
	return h.list(c, 0)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	return h.list(c, patientID)
}

func (h *Handler) list(c echo.Context, patientID int64) error {
	pg := pagination.FromContext(c)
	filter := ListFilter{
		Search:       c.QueryParam("search"),
		PatientID:    patientID,
		ActivityType: c.QueryParam("type"),
		PharmFlag:    c.QueryParam("pharmFlag"),
		SortKey:      c.QueryParam("sortField"),
		SortDir:      c.QueryParam("sortDirection"),
	}
	if site := c.QueryParam("site"); site != "" && site != "all" {
		id, err := strconv.ParseInt(site, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid site filter")
		}
		filter.SiteID = id
	}
	scope := auth.ScopeFromClaims(auth.ClaimsFromContext(c.Request().Context()))
	items, total, err := h.svc.List(c.Request().Context(), filter, scope, pg.Limit, pg.Offset())
	if err != nil {
		return httperr.From(err, "activities not found")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

// ListBatch fetches activities for a set of patients in one request. It is
// a POST so the id set rides in the body rather than the query string.
func (h *Handler) ListBatch(c echo.Context) error {
	var body struct {
		PatientIDs []int64 `json:"patient_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	pg := pagination.FromContext(c)
	scope := auth.ScopeFromClaims(auth.ClaimsFromContext(c.Request().Context()))
	items, total, err := h.svc.ListByPatients(c.Request().Context(), body.PatientIDs, scope, pg.Limit, pg.Offset())
	if err != nil {
		return httperr.From(err, "activities not found")
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
	a, err := h.svc.Update(c.Request().Context(), id, patch, scope)
	if err != nil {
		return httperr.From(err, "activity not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	scope := auth.ScopeFromClaims(auth.ClaimsFromContext(c.Request().Context()))
	if err := h.svc.Delete(c.Request().Context(), id, scope); err != nil {
		return httperr.From(err, "activity not found")
	}
	return c.NoContent(http.StatusNoContent)
}
