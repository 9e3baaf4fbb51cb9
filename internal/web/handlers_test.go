package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/opticode-ai/opticode/internal/adapters/sqlite"
	"github.com/opticode-ai/opticode/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(string) {}
func (nopLogger) Error(string) {}

func testServer(t *testing.T) *Server {
	t.Helper()

	db, err := sqlite.NewDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewServer(sqlite.NewSessionStore(db), ":0", nopLogger{})
}

func seedSession(t *testing.T, s *Server, id string, createdAt time.Time) {
	t.Helper()
	session := &domain.Session{
		ID:           id,
		Name:         "Session " + id,
		OriginalCode: "print('x')",
		Level:        domain.LevelOne,
		CreatedAt:    createdAt,
	}
	if err := s.store.Create(context.Background(), session); err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHandleRegister(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name       string
		payload    string
		wantStatus int
	}{
		{"valid", `{"name":"Dev","email":"dev@example.com","password":"secret1"}`, http.StatusCreated},
		{"missing name", `{"name":"","email":"dev@example.com","password":"secret1"}`, http.StatusBadRequest},
		{"short password", `{"name":"Dev","email":"dev@example.com","password":"abc"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPost, "/api/auth/register", tt.payload)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}

	rec := doRequest(t, s, http.MethodPost, "/api/auth/register", `{"name":"Dev","email":"DEV@Example.com","password":"secret1"}`)
	var body struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	decodeBody(t, rec, &body)
	if !strings.HasPrefix(body.Token, "dev-") {
		t.Errorf("token = %q, want dev- prefix", body.Token)
	}
	if body.User.Email != "dev@example.com" {
		t.Errorf("email = %q, want lowercased", body.User.Email)
	}
}

func TestHandleMe(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/api/auth/me", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		User struct {
			ID    string `json:"_id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	decodeBody(t, rec, &body)
	if body.User.ID == "" || body.User.Email == "" {
		t.Errorf("expected a populated user, got %+v", body.User)
	}
}

func TestHandleLogin(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/auth/login", `{"email":"dev@example.com","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &body)
	if !strings.HasPrefix(body.Token, "dev-") {
		t.Errorf("token = %q, want dev- prefix", body.Token)
	}

	rec = doRequest(t, s, http.MethodPost, "/api/auth/login", `{"email":"","password":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty credentials: status = %d, want 400", rec.Code)
	}
}

func TestHandleListHistory(t *testing.T) {
	s := testServer(t)
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	seedSession(t, s, "old", base)
	seedSession(t, s, "new", base.Add(time.Hour))

	rec := doRequest(t, s, http.MethodGet, "/api/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Sessions []struct {
			ID      string   `json:"_id"`
			Level   string   `json:"level"`
			Changes []string `json:"changes"`
		} `json:"sessions"`
	}
	decodeBody(t, rec, &body)
	if len(body.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(body.Sessions))
	}
	if body.Sessions[0].ID != "new" || body.Sessions[1].ID != "old" {
		t.Errorf("order = [%s %s], want newest first", body.Sessions[0].ID, body.Sessions[1].ID)
	}
	if body.Sessions[0].Level != "level1" {
		t.Errorf("level = %q, want level1", body.Sessions[0].Level)
	}
	if body.Sessions[0].Changes == nil {
		t.Error("changes should encode as an empty array, not null")
	}
}

func TestHandleDeleteSession(t *testing.T) {
	s := testServer(t)
	seedSession(t, s, "x", time.Now().UTC())

	rec := doRequest(t, s, http.MethodDelete, "/api/history/x", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = doRequest(t, s, http.MethodDelete, "/api/history/x", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", rec.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &body)
	if body.Error == "" {
		t.Error("expected an error envelope")
	}
}

func TestHandleRenameSession(t *testing.T) {
	s := testServer(t)
	seedSession(t, s, "x", time.Now().UTC())

	tests := []struct {
		name       string
		path       string
		payload    string
		wantStatus int
	}{
		{"valid rename", "/api/history/x/rename", `{"name":"better"}`, http.StatusOK},
		{"empty name", "/api/history/x/rename", `{"name":"  "}`, http.StatusBadRequest},
		{"unknown id", "/api/history/ghost/rename", `{"name":"better"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPatch, tt.path, tt.payload)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}

	got, err := s.store.GetByID(context.Background(), "x")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "better" {
		t.Errorf("name = %q, want %q", got.Name, "better")
	}
}

func TestHandleToggleStar(t *testing.T) {
	s := testServer(t)
	seedSession(t, s, "x", time.Now().UTC())

	var body struct {
		Starred bool `json:"starred"`
	}

	rec := doRequest(t, s, http.MethodPatch, "/api/history/x/star", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	decodeBody(t, rec, &body)
	if !body.Starred {
		t.Error("first toggle should report starred = true")
	}

	rec = doRequest(t, s, http.MethodPatch, "/api/history/x/star", "")
	decodeBody(t, rec, &body)
	if body.Starred {
		t.Error("second toggle should report starred = false")
	}

	rec = doRequest(t, s, http.MethodPatch, "/api/history/ghost/star", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: status = %d, want 404", rec.Code)
	}
}

func TestHandleAnalyse(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/analyse", `{"code":"print('x')","optimization_level":"LEVEL_1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var result domain.AnalysisResult
	decodeBody(t, rec, &result)
	if !result.PassedErrorCheck {
		t.Error("expected passed_error_check = true")
	}
	if result.Level != domain.LevelOne {
		t.Errorf("level = %q, want %q (alias normalized)", result.Level, domain.LevelOne)
	}
	if result.SessionID == nil {
		t.Fatal("expected a session id")
	}

	stored, err := s.store.GetByID(context.Background(), *result.SessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored == nil {
		t.Fatal("analysis should persist a session")
	}

	rec = doRequest(t, s, http.MethodPost, "/api/analyse", `{"code":"","optimization_level":"none"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty code: status = %d, want 400", rec.Code)
	}
	rec = doRequest(t, s, http.MethodPost, "/api/analyse", `{"code":"x","optimization_level":"turbo"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown level: status = %d, want 400", rec.Code)
	}
}

func TestHandleProfileStats(t *testing.T) {
	s := testServer(t)
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	seedSession(t, s, "a", base)
	seedSession(t, s, "b", base.Add(time.Hour))

	rec := doRequest(t, s, http.MethodGet, "/api/profile/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Stats struct {
			Total       int64   `json:"total"`
			Level1Count int64   `json:"level1_count"`
			LastActive  *string `json:"last_active"`
		} `json:"stats"`
	}
	decodeBody(t, rec, &body)
	if body.Stats.Total != 2 || body.Stats.Level1Count != 2 {
		t.Errorf("unexpected stats: %+v", body.Stats)
	}
	if body.Stats.LastActive == nil {
		t.Error("expected last_active to be set")
	}
}
