package site

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/carepoint/timetrack/internal/platform/auth"
	"github.com/carepoint/timetrack/pkg/pagination"
)

func newTestServer(repo Repository, claims *auth.Claims) *echo.Echo {
	e := echo.New()
	api := e.Group("/api/v1")
	api.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims != nil {
				c.SetRequest(c.Request().WithContext(auth.WithClaims(c.Request().Context(), claims)))
			}
			return next(c)
		}
	})
	NewHandler(NewService(repo)).RegisterRoutes(api)
	return e
}

func adminClaims() *auth.Claims {
	return &auth.Claims{Role: auth.RoleAdmin}
}

func nurseClaims(primary int64, assigned ...int64) *auth.Claims {
	return &auth.Claims{Role: auth.RoleNurse, PrimarySiteID: primary, AssignedSiteIDs: assigned}
}

func TestHandlerCreate(t *testing.T) {
	repo := newMockRepo()
	e := newTestServer(repo, adminClaims())

	body := `{"name":"Riverside","city":"Columbus","state":"OH"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sites", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var got Site
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID == 0 {
		t.Error("expected created site to have an id")
	}
	if !got.IsActive {
		t.Error("expected is_active to default to true when omitted")
	}
}

func TestHandlerCreate_MissingName(t *testing.T) {
	e := newTestServer(newMockRepo(), adminClaims())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sites", strings.NewReader(`{"city":"Columbus"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlerCreate_ForbiddenForNurse(t *testing.T) {
	e := newTestServer(newMockRepo(), nurseClaims(1))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sites", strings.NewReader(`{"name":"X"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestHandlerGet_OutOfScope(t *testing.T) {
	repo := newMockRepo()
	repo.add(Site{Name: "A"})
	other := repo.add(Site{Name: "B"})

	e := newTestServer(repo, nurseClaims(1))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sites/2", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for out-of-scope site %d, got %d", other.ID, rec.Code)
	}
}

func TestHandlerList_Envelope(t *testing.T) {
	repo := newMockRepo()
	repo.add(Site{Name: "A"})
	repo.add(Site{Name: "B"})

	e := newTestServer(repo, adminClaims())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sites?page=1&limit=50", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp pagination.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 2 || resp.TotalPages != 1 {
		t.Errorf("expected total 2 over 1 page, got %d/%d", resp.Total, resp.TotalPages)
	}
	if resp.Items == nil {
		t.Error("items must never be null")
	}
}

func TestHandlerSitesAndBuildings(t *testing.T) {
	repo := newMockRepo()
	a := repo.add(Site{Name: "A"})
	repo.add(Site{Name: "B"})
	repo.buildings[a.ID] = []SiteBuilding{{ID: 1, Name: "East Wing", IsActive: true}}

	// the literal path segment must not be captured by the /sites/:id route
	e := newTestServer(repo, nurseClaims(a.ID))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sites/sites-and-buildings", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got []SiteWithBuildings
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].ID != a.ID {
		t.Fatalf("expected only the caller's site, got %d items", len(got))
	}
	if len(got[0].Buildings) != 1 || got[0].Buildings[0].Name != "East Wing" {
		t.Errorf("expected nested building, got %+v", got[0].Buildings)
	}
}

func TestHandlerUpdate_EmptyPatch(t *testing.T) {
	repo := newMockRepo()
	repo.add(Site{Name: "A"})

	e := newTestServer(repo, adminClaims())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/sites/1", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty patch, got %d", rec.Code)
	}
}

func TestHandlerDelete(t *testing.T) {
	repo := newMockRepo()
	repo.add(Site{Name: "A"})

	e := newTestServer(repo, adminClaims())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/sites/1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(repo.sites) != 0 {
		t.Error("expected site to be removed")
	}
}

func TestHandlerGet_InvalidID(t *testing.T) {
	e := newTestServer(newMockRepo(), adminClaims())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sites/abc", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
	}
}
