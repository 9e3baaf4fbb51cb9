package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/opticode-ai/opticode/internal/domain"
)

// SessionStore persists session records for the development authority.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore creates a store over an opened database.
func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Create inserts a fully formed record. The caller assigns ID and CreatedAt.
func (s *SessionStore) Create(ctx context.Context, session *domain.Session) error {
	changes, err := json.Marshal(orEmpty(session.Changes))
	if err != nil {
		return fmt.Errorf("failed to encode changes: %w", err)
	}
	originalAnalysis, err := marshalNullable(session.OriginalAnalysis)
	if err != nil {
		return fmt.Errorf("failed to encode original analysis: %w", err)
	}
	optimizedAnalysis, err := marshalNullable(session.OptimizedAnalysis)
	if err != nil {
		return fmt.Errorf("failed to encode optimized analysis: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, name, original_code, optimized_code, level, changes,
			original_analysis, optimized_analysis, error, starred, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		session.ID,
		session.Name,
		session.OriginalCode,
		session.OptimizedCode,
		string(session.Level),
		string(changes),
		originalAnalysis,
		optimizedAnalysis,
		toNullString(session.Error),
		boolToInt(session.Starred),
		session.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// List returns all records, newest first.
func (s *SessionStore) List(ctx context.Context) ([]*domain.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, original_code, optimized_code, level, changes,
			original_analysis, optimized_analysis, error, starred, created_at
		FROM sessions
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// GetByID returns one record, or nil when absent.
func (s *SessionStore) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, original_code, optimized_code, level, changes,
			original_analysis, optimized_analysis, error, starred, created_at
		FROM sessions WHERE id = ?
	`, id)

	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Delete removes one record. Returns true when something was deleted.
func (s *SessionStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Rename sets a record's display name. Returns true when the record exists.
func (s *SessionStore) Rename(ctx context.Context, id, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE sessions SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return false, fmt.Errorf("failed to rename session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ToggleStar flips the starred flag and returns the new value. found is
// false when the record does not exist.
func (s *SessionStore) ToggleStar(ctx context.Context, id string) (starred, found bool, err error) {
	var current int
	err = s.db.QueryRowContext(ctx, `SELECT starred FROM sessions WHERE id = ?`, id).Scan(&current)
	if err == sql.ErrNoRows {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to read starred flag: %w", err)
	}

	newVal := current == 0
	if _, err := s.db.ExecContext(ctx, `UPDATE sessions SET starred = ? WHERE id = ?`, boolToInt(newVal), id); err != nil {
		return false, false, fmt.Errorf("failed to update starred flag: %w", err)
	}
	return newVal, true, nil
}

// Stats aggregates the profile statistics in one pass.
func (s *SessionStore) Stats(ctx context.Context) (*domain.ProfileStats, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN level = 'level1' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN level = 'level2' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(starred), 0),
			MAX(created_at)
		FROM sessions
	`)

	var stats domain.ProfileStats
	var lastActive sql.NullString
	if err := row.Scan(&stats.Total, &stats.Level1Count, &stats.Level2Count, &stats.StarredCount, &lastActive); err != nil {
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}
	if lastActive.Valid {
		if t, err := time.Parse(time.RFC3339Nano, lastActive.String); err == nil {
			stats.LastActive = &t
		}
	}
	return &stats, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*domain.Session, error) {
	var (
		session           domain.Session
		level             string
		changes           string
		originalAnalysis  sql.NullString
		optimizedAnalysis sql.NullString
		errText           sql.NullString
		starred           int
		createdAt         string
	)

	err := row.Scan(&session.ID, &session.Name, &session.OriginalCode, &session.OptimizedCode,
		&level, &changes, &originalAnalysis, &optimizedAnalysis, &errText, &starred, &createdAt)
	if err != nil {
		return nil, err
	}

	if l, ok := domain.NormalizeLevel(level); ok {
		session.Level = l
	} else {
		session.Level = domain.LevelNone
	}
	if err := json.Unmarshal([]byte(changes), &session.Changes); err != nil {
		return nil, fmt.Errorf("failed to decode changes: %w", err)
	}
	if originalAnalysis.Valid {
		if err := json.Unmarshal([]byte(originalAnalysis.String), &session.OriginalAnalysis); err != nil {
			return nil, fmt.Errorf("failed to decode original analysis: %w", err)
		}
	}
	if optimizedAnalysis.Valid {
		if err := json.Unmarshal([]byte(optimizedAnalysis.String), &session.OptimizedAnalysis); err != nil {
			return nil, fmt.Errorf("failed to decode optimized analysis: %w", err)
		}
	}
	if errText.Valid {
		session.Error = &errText.String
	}
	session.Starred = starred != 0
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		session.CreatedAt = t
	}
	return &session, nil
}

func marshalNullable(m map[string]any) (sql.NullString, error) {
	if m == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func orEmpty(changes []string) []string {
	if changes == nil {
		return []string{}
	}
	return changes
}
