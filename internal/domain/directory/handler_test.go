package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/caseflow/caseflow/internal/platform/auth"
)

type mockDirectoryRepo struct {
	users        map[string]*User
	hospitals    map[string]*Hospital
	universities map[string]*University
}

func newMockDirectoryRepo() *mockDirectoryRepo {
	return &mockDirectoryRepo{
		users:        make(map[string]*User),
		hospitals:    make(map[string]*Hospital),
		universities: make(map[string]*University),
	}
}

func (m *mockDirectoryRepo) GetUser(ctx context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *mockDirectoryRepo) ListUsersByRole(ctx context.Context, role string, limit, offset int) ([]*User, int, error) {
	var out []*User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, len(out), nil
}

func (m *mockDirectoryRepo) GetHospital(ctx context.Context, id string) (*Hospital, error) {
	h, ok := m.hospitals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return h, nil
}

func (m *mockDirectoryRepo) ListHospitals(ctx context.Context, limit, offset int) ([]*Hospital, int, error) {
	var out []*Hospital
	for _, h := range m.hospitals {
		out = append(out, h)
	}
	return out, len(out), nil
}

func (m *mockDirectoryRepo) GetUniversity(ctx context.Context, id string) (*University, error) {
	u, ok := m.universities[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *mockDirectoryRepo) ListUniversities(ctx context.Context, limit, offset int) ([]*University, int, error) {
	var out []*University
	for _, u := range m.universities {
		out = append(out, u)
	}
	return out, len(out), nil
}

func newTestServer(repo Repository) *echo.Echo {
	e := echo.New()
	e.Use(auth.DevAuthMiddleware())
	NewHandler(NewService(repo)).RegisterRoutes(e.Group("/api/v1"))
	return e
}

func get(e *echo.Echo, path, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if role != "" {
		req.Header.Set("X-Dev-Role", role)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_GetUser(t *testing.T) {
	repo := newMockDirectoryRepo()
	repo.users["u1"] = &User{ID: "u1", Name: "Leila Mansour", Role: "agent", AgentType: "hospital"}
	e := newTestServer(repo)

	rec := get(e, "/api/v1/users/u1", "admin")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var u User
	if err := json.Unmarshal(rec.Body.Bytes(), &u); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if u.Name != "Leila Mansour" || u.AgentType != "hospital" {
		t.Errorf("unexpected user %+v", u)
	}

	rec = get(e, "/api/v1/users/missing", "admin")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandler_UserRoutesAdminOnly(t *testing.T) {
	repo := newMockDirectoryRepo()
	repo.users["u1"] = &User{ID: "u1", Role: "agent"}
	e := newTestServer(repo)

	rec := get(e, "/api/v1/users/u1", "agent")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}
}

func TestHandler_ListUsersRequiresRoleFilter(t *testing.T) {
	e := newTestServer(newMockDirectoryRepo())
	rec := get(e, "/api/v1/users", "admin")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without role filter, got %d", rec.Code)
	}
}

func TestHandler_ListHospitals(t *testing.T) {
	repo := newMockDirectoryRepo()
	repo.hospitals["h1"] = &Hospital{ID: "h1", Name: "Central Clinic", Country: "TR"}
	repo.hospitals["h2"] = &Hospital{ID: "h2", Name: "City Hospital", Country: "DE"}
	e := newTestServer(repo)

	rec := get(e, "/api/v1/hospitals", "agent")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("expected total 2, got %d", resp.Total)
	}
}

func TestHandler_GetUniversity(t *testing.T) {
	repo := newMockDirectoryRepo()
	repo.universities["uni1"] = &University{ID: "uni1", Name: "Tech University", Programs: []string{"CS"}}
	e := newTestServer(repo)

	rec := get(e, "/api/v1/universities/uni1", "hospital")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var u University
	if err := json.Unmarshal(rec.Body.Bytes(), &u); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if u.Name != "Tech University" {
		t.Errorf("unexpected university %+v", u)
	}
}
