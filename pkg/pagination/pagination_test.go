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

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor(t, "")
	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected offset 0, got %d", p.Offset)
	}
}

func TestFromContext_Clamping(t *testing.T) {
	p := paramsFor(t, "limit=5000&offset=-3")
	if p.Limit != MaxLimit {
		t.Errorf("expected limit clamped to %d, got %d", MaxLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected negative offset clamped to 0, got %d", p.Offset)
	}

	p = paramsFor(t, "limit=abc")
	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit for garbage input, got %d", p.Limit)
	}
}

func TestFromContext_Explicit(t *testing.T) {
	p := paramsFor(t, "limit=25&offset=50")
	if p.Limit != 25 || p.Offset != 50 {
		t.Errorf("expected 25/50, got %d/%d", p.Limit, p.Offset)
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	r := NewResponse([]string{"a", "b"}, 10, 2, 0)
	if !r.HasMore {
		t.Error("expected has_more true with 10 total at offset 0")
	}

	r = NewResponse([]string{"a", "b"}, 10, 2, 8)
	if r.HasMore {
		t.Error("expected has_more false on the last page")
	}
}

func TestParams_NextOffset(t *testing.T) {
	p := Params{Limit: 20, Offset: 40}
	if p.NextOffset() != 60 {
		t.Errorf("expected 60, got %d", p.NextOffset())
	}
	if !p.HasNext(100) {
		t.Error("expected more pages with total 100")
	}
	if p.HasNext(60) {
		t.Error("expected no more pages with total 60")
	}
}
