package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opticode-ai/opticode/internal/domain"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRegister validates the payload the way the hosted backend does but
// creates no account: the development authority has no user store. The
// caller gets a throwaway token and an echo of the submitted identity.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name := strings.TrimSpace(payload.Name)
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	password := strings.TrimSpace(payload.Password)
	if name == "" || email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are all required")
		return
	}
	if len(password) < 6 {
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	user := domain.User{ID: uuid.New().String(), Name: name, Email: email}
	writeJSON(w, http.StatusCreated, map[string]any{
		"token": "dev-" + uuid.New().String(),
		"user":  user,
	})
}

// handleLogin accepts any credentials. The development authority has no user
// store; it hands out a throwaway bearer token so the client's auth flow can
// run unchanged.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": "dev-" + uuid.New().String()})
}

// handleMe returns the single local identity every token maps to.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"user": domain.User{ID: "local", Name: "Local Developer", Email: "dev@localhost"},
	})
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	wire := make([]sessionDoc, len(sessions))
	for i, session := range sessions {
		wire[i] = docFromSession(session)
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": wire})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	deleted, err := s.store.Delete(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleRenameSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name must not be empty")
		return
	}

	renamed, err := s.store.Rename(r.Context(), id, name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !renamed {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

func (s *Server) handleToggleStar(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	starred, found, err := s.store.ToggleStar(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"starred": starred})
}

// handleAnalyse is a passthrough stand-in: it has no analysis pipeline, so it
// records the submission as a successful level-none run and echoes the code
// back unmodified. Enough for the client to exercise its persistence path.
func (s *Server) handleAnalyse(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Code  string `json:"code"`
		Level string `json:"optimization_level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Code) == "" {
		writeError(w, http.StatusBadRequest, "code must not be empty")
		return
	}
	level, ok := domain.NormalizeLevel(payload.Level)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown optimization level %q", payload.Level))
		return
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:            uuid.New().String(),
		Name:          "Session " + now.Format("2006-01-02 15:04"),
		OriginalCode:  payload.Code,
		OptimizedCode: payload.Code,
		Level:         level,
		CreatedAt:     now,
	}
	if err := s.store.Create(r.Context(), session); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := domain.AnalysisResult{
		PassedErrorCheck: true,
		OriginalCode:     session.OriginalCode,
		OptimizedCode:    session.OptimizedCode,
		Level:            session.Level,
		Changes:          []string{},
		SessionID:        &session.ID,
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleProfileStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	doc := map[string]any{
		"total":         stats.Total,
		"level1_count":  stats.Level1Count,
		"level2_count":  stats.Level2Count,
		"starred_count": stats.StarredCount,
	}
	if stats.LastActive != nil {
		doc["last_active"] = stats.LastActive.Format(time.RFC3339Nano)
	} else {
		doc["last_active"] = nil
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": doc})
}

// sessionDoc is the session record as it crosses the wire.
type sessionDoc struct {
	ID                string         `json:"_id"`
	Name              string         `json:"name"`
	OriginalCode      string         `json:"original_code"`
	OptimizedCode     string         `json:"optimized_code"`
	Level             string         `json:"level"`
	Changes           []string       `json:"changes"`
	OriginalAnalysis  map[string]any `json:"original_analysis"`
	OptimizedAnalysis map[string]any `json:"optimized_analysis"`
	Error             *string        `json:"error"`
	Starred           bool           `json:"starred"`
	CreatedAt         string         `json:"created_at"`
}

func docFromSession(s *domain.Session) sessionDoc {
	changes := s.Changes
	if changes == nil {
		changes = []string{}
	}
	return sessionDoc{
		ID:                s.ID,
		Name:              s.Name,
		OriginalCode:      s.OriginalCode,
		OptimizedCode:     s.OptimizedCode,
		Level:             string(s.Level),
		Changes:           changes,
		OriginalAnalysis:  s.OriginalAnalysis,
		OptimizedAnalysis: s.OptimizedAnalysis,
		Error:             s.Error,
		Starred:           s.Starred,
		CreatedAt:         s.CreatedAt.Format(time.RFC3339Nano),
	}
}
