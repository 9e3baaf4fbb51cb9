// Package authority implements the remote session authority contract over
// the OptiCode REST API.
package authority

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/opticode-ai/opticode/internal/domain"
)

// Client talks to the OptiCode backend. All requests carry the bearer token;
// failures come back as plain transport errors and are mapped to the cache's
// error taxonomy by the caller.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates an authority client for the given base URL. The token
// may be empty for the unauthenticated endpoints (register, login, health).
// A non-positive timeout falls back to 10 seconds.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// apiError is the backend's uniform error envelope.
type apiError struct {
	Error string `json:"error"`
}

// wireSession mirrors the backend's session document.
type wireSession struct {
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

// ListSessions fetches the owner's full record set, newest first.
func (c *Client) ListSessions(ctx context.Context) ([]*domain.Session, error) {
	var body struct {
		Sessions []wireSession `json:"sessions"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/history", nil, &body); err != nil {
		return nil, err
	}

	sessions := make([]*domain.Session, len(body.Sessions))
	for i, w := range body.Sessions {
		sessions[i] = sessionFromWire(w)
	}
	return sessions, nil
}

// DeleteSession removes one record.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/history/"+id, nil, nil)
}

// RenameSession sets a record's display name.
func (c *Client) RenameSession(ctx context.Context, id, name string) error {
	payload := map[string]string{"name": name}
	return c.do(ctx, http.MethodPatch, "/api/history/"+id+"/rename", payload, nil)
}

// ToggleStar flips a record's starred flag and returns the new value.
func (c *Client) ToggleStar(ctx context.Context, id string) (bool, error) {
	var body struct {
		Starred bool `json:"starred"`
	}
	if err := c.do(ctx, http.MethodPatch, "/api/history/"+id+"/star", nil, &body); err != nil {
		return false, err
	}
	return body.Starred, nil
}

// Analyze submits code for analysis and optional optimization. The
// diagnostic report arrives embedded in the result.
func (c *Client) Analyze(ctx context.Context, code string, level domain.Level) (*domain.AnalysisResult, error) {
	payload := map[string]string{
		"code":               code,
		"optimization_level": string(level),
	}
	var result domain.AnalysisResult
	if err := c.do(ctx, http.MethodPost, "/api/analyse", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Stats fetches the aggregated profile statistics.
func (c *Client) Stats(ctx context.Context) (*domain.ProfileStats, error) {
	var body struct {
		Stats struct {
			Total        int64   `json:"total"`
			Level1Count  int64   `json:"level1_count"`
			Level2Count  int64   `json:"level2_count"`
			StarredCount int64   `json:"starred_count"`
			LastActive   *string `json:"last_active"`
		} `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/profile/stats", nil, &body); err != nil {
		return nil, err
	}

	stats := &domain.ProfileStats{
		Total:        body.Stats.Total,
		Level1Count:  body.Stats.Level1Count,
		Level2Count:  body.Stats.Level2Count,
		StarredCount: body.Stats.StarredCount,
	}
	if body.Stats.LastActive != nil {
		if t, ok := parseTimestamp(*body.Stats.LastActive); ok {
			stats.LastActive = &t
		}
	}
	return stats, nil
}

// Register creates an account and returns the bearer token issued for it.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	payload := map[string]string{"name": name, "email": email, "password": password}
	var body struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", payload, &body); err != nil {
		return "", err
	}
	return body.Token, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}
	var body struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", payload, &body); err != nil {
		return "", err
	}
	return body.Token, nil
}

// Me returns the account the stored token belongs to.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var body struct {
		User domain.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &body); err != nil {
		return nil, err
	}
	return &body.User, nil
}

// Health checks that the backend is reachable.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

// do runs one request against the API: JSON in, JSON out, bearer auth,
// error envelope decoded on non-2xx status.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var reqBody *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func sessionFromWire(w wireSession) *domain.Session {
	level, ok := domain.NormalizeLevel(w.Level)
	if !ok {
		level = domain.LevelNone
	}
	s := &domain.Session{
		ID:                w.ID,
		Name:              w.Name,
		OriginalCode:      w.OriginalCode,
		OptimizedCode:     w.OptimizedCode,
		Level:             level,
		Changes:           w.Changes,
		OriginalAnalysis:  w.OriginalAnalysis,
		OptimizedAnalysis: w.OptimizedAnalysis,
		Error:             w.Error,
		Starred:           w.Starred,
	}
	if t, ok := parseTimestamp(w.CreatedAt); ok {
		s.CreatedAt = t
	}
	return s
}

// timestampLayouts covers RFC3339 plus the zone-less ISO form older backend
// versions emit.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
