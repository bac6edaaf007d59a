package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(target string) Params {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContext(t *testing.T) {
	cases := []struct {
		target     string
		wantLimit  int
		wantOffset int
	}{
		{"/?limit=10&offset=5", 10, 5},
		{"/", DefaultLimit, 0},
		{"/?limit=0", DefaultLimit, 0},
		{"/?limit=-3", DefaultLimit, 0},
		{"/?limit=9999", MaxLimit, 0},
		{"/?offset=-1", DefaultLimit, 0},
		{"/?limit=abc&offset=xyz", DefaultLimit, 0},
	}
	for _, tc := range cases {
		got := paramsFor(tc.target)
		if got.Limit != tc.wantLimit || got.Offset != tc.wantOffset {
			t.Errorf("%s: got %+v, want limit %d offset %d", tc.target, got, tc.wantLimit, tc.wantOffset)
		}
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	if r := NewResponse(nil, 30, 10, 0); !r.HasMore {
		t.Error("expected more pages at offset 0 of 30")
	}
	if r := NewResponse(nil, 30, 10, 20); r.HasMore {
		t.Error("expected no more pages at the last page")
	}
	if r := NewResponse(nil, 0, 10, 0); r.HasMore {
		t.Error("expected no more pages for empty results")
	}
}
