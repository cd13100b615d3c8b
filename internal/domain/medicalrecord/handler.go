package medicalrecord

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/carepoint/timetrack/internal/platform/auth"
	"github.com/carepoint/timetrack/internal/platform/httperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleNurse, auth.RolePharmacist))
	g.POST("/medical-records", h.Create)
	g.GET("/patients/:patientId/medical-records", h.ListByPatient)
	g.GET("/patients/:patientId/medical-records/latest", h.LatestByPatient)
}

func (h *Handler) Create(c echo.Context) error {
	var rec MedicalRecord
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	scope := auth.ScopeFromClaims(auth.ClaimsFromContext(c.Request().Context()))
	if err := h.svc.Create(c.Request().Context(), &rec, scope); err != nil {
		return httperr.From(err, "patient not found")
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	scope := auth.ScopeFromClaims(auth.ClaimsFromContext(c.Request().Context()))
	items, err := h.svc.ListByPatient(c.Request().Context(), patientID, scope)
	if err != nil {
		return httperr.From(err, "patient not found")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) LatestByPatient(c echo.Context) error {
	patientID, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	scope := auth.ScopeFromClaims(auth.ClaimsFromContext(c.Request().Context()))
	rec, err := h.svc.LatestByPatient(c.Request().Context(), patientID, scope)
	if err != nil {
		return httperr.From(err, "no medical records for patient")
	}
	return c.JSON(http.StatusOK, rec)
}
