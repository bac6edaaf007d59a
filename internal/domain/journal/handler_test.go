package journal

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/flarelog/flarelog/internal/platform/auth"
)

func newTestAPI(repo EntryRepository) *echo.Echo {
	e := echo.New()
	h := NewHandler(NewService(repo))
	h.RegisterRoutes(e.Group("/api/v1"))
	return e
}

func doJSON(e *echo.Echo, method, path, userID string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if userID != "" {
		req = req.WithContext(auth.ContextWithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_CreateEntry(t *testing.T) {
	e := newTestAPI(newMemEntryRepo())

	body := `{"type":"flare","severity":"mild","symptoms":["Headache"],"user_id":"someone-else"}`
	rec := doJSON(e, http.MethodPost, "/api/v1/entries", "u1", strings.NewReader(body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	// Identity always comes from the token, never the payload.
	if created.UserID != "u1" {
		t.Errorf("expected user id from auth context, got %q", created.UserID)
	}
	if created.Symptoms[0] != "headache" {
		t.Errorf("expected normalized symptoms, got %v", created.Symptoms)
	}
}

func TestHandler_CreateEntry_InvalidType(t *testing.T) {
	e := newTestAPI(newMemEntryRepo())

	rec := doJSON(e, http.MethodPost, "/api/v1/entries", "u1", strings.NewReader(`{"type":"mood"}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_Unauthenticated(t *testing.T) {
	e := newTestAPI(newMemEntryRepo())

	rec := doJSON(e, http.MethodGet, "/api/v1/entries", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestHandler_GetEntry_NotOwned(t *testing.T) {
	repo := newMemEntryRepo()
	e := newTestAPI(repo)

	rec := doJSON(e, http.MethodPost, "/api/v1/entries", "u1", strings.NewReader(`{"type":"note","note":"hi"}`))
	if rec.Code != http.StatusCreated {
		t.Fatal(rec.Body.String())
	}
	var created Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	rec = doJSON(e, http.MethodGet, "/api/v1/entries/"+created.ID.String(), "u2", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for foreign entry, got %d", rec.Code)
	}
}

func TestHandler_GetEntry_BadID(t *testing.T) {
	e := newTestAPI(newMemEntryRepo())

	rec := doJSON(e, http.MethodGet, "/api/v1/entries/not-a-uuid", "u1", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_DeleteEntry(t *testing.T) {
	repo := newMemEntryRepo()
	e := newTestAPI(repo)

	rec := doJSON(e, http.MethodPost, "/api/v1/entries", "u1", strings.NewReader(`{"type":"note"}`))
	var created Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	rec = doJSON(e, http.MethodDelete, "/api/v1/entries/"+created.ID.String(), "u1", nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	rec = doJSON(e, http.MethodGet, "/api/v1/entries/"+created.ID.String(), "u1", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestHandler_ListEntries(t *testing.T) {
	repo := newMemEntryRepo()
	e := newTestAPI(repo)

	for i := 0; i < 3; i++ {
		rec := doJSON(e, http.MethodPost, "/api/v1/entries", "u1", strings.NewReader(`{"type":"note"}`))
		if rec.Code != http.StatusCreated {
			t.Fatal(rec.Body.String())
		}
	}

	rec := doJSON(e, http.MethodGet, "/api/v1/entries?limit=2", "u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Data    []*Entry `json:"data"`
		Total   int      `json:"total"`
		HasMore bool     `json:"has_more"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Total != 3 || len(body.Data) != 2 || !body.HasMore {
		t.Errorf("unexpected page: total %d, data %d, has_more %t", body.Total, len(body.Data), body.HasMore)
	}
}
