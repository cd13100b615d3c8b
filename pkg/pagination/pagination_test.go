package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, DefaultLimit},
		{"explicit", "page=3&limit=25", 3, 25},
		{"zero page", "page=0", 1, DefaultLimit},
		{"negative page", "page=-2", 1, DefaultLimit},
		{"zero limit", "limit=0", 1, DefaultLimit},
		{"limit clamped", "limit=1000", 1, MaxLimit},
		{"garbage", "page=abc&limit=xyz", 1, DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paramsFor(t, tt.query)
			if p.Page != tt.wantPage {
				t.Errorf("expected page %d, got %d", tt.wantPage, p.Page)
			}
			if p.Limit != tt.wantLimit {
				t.Errorf("expected limit %d, got %d", tt.wantLimit, p.Limit)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	if got := (Params{Page: 1, Limit: 50}).Offset(); got != 0 {
		t.Errorf("expected offset 0, got %d", got)
	}
	if got := (Params{Page: 4, Limit: 25}).Offset(); got != 75 {
		t.Errorf("expected offset 75, got %d", got)
	}
}

func TestNewResponse(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		limit          int
		wantTotalPages int
	}{
		{"exact multiple", 100, 50, 2},
		{"remainder rounds up", 101, 50, 3},
		{"single partial page", 7, 50, 1},
		{"empty", 0, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewResponse([]int{}, tt.total, Params{Page: 1, Limit: tt.limit})
			if resp.TotalPages != tt.wantTotalPages {
				t.Errorf("expected %d total pages, got %d", tt.wantTotalPages, resp.TotalPages)
			}
			if resp.Total != tt.total {
				t.Errorf("expected total %d, got %d", tt.total, resp.Total)
			}
		})
	}
}
