// Package history holds the client-side view of a user's optimization
// sessions: a write-through cache over the remote authority, the projector
// that derives display lists from it, and the per-card UI state machine.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/opticode-ai/opticode/internal/domain"
	"github.com/opticode-ai/opticode/internal/ports"
)

// Cache is the authoritative-as-of-last-fetch set of the owner's session
// records. It is write-through: a mutation is committed locally only after
// the authority has confirmed it, so local state never leads remote state.
//
// Cache is designed for a single goroutine of control (the event-driven UI
// model): operations run to completion without interleaving and carry no
// internal locking. It is scoped to one authenticated identity; switching
// identity means discarding the cache and loading a fresh one.
type Cache struct {
	authority ports.Authority
	logger    ports.Logger
	metrics   ports.MetricsExporter

	sessions   []*domain.Session
	byID       map[string]*domain.Session
	loadErr    error
	generation uint64
}

// NewCache creates an empty cache backed by the given authority. Logger and
// metrics may be nil, in which case those concerns are skipped.
func NewCache(authority ports.Authority, logger ports.Logger, metrics ports.MetricsExporter) *Cache {
	return &Cache{
		authority: authority,
		logger:    logger,
		metrics:   metrics,
		byID:      make(map[string]*domain.Session),
	}
}

// Load fetches the full record set from the authority, replacing the cache
// wholesale. On failure the cache is left empty and the error is kept for
// display; there is no automatic retry.
func (c *Cache) Load(ctx context.Context) error {
	start := time.Now()
	sessions, err := c.authority.ListSessions(ctx)
	if err != nil {
		c.sessions = nil
		c.byID = make(map[string]*domain.Session)
		c.loadErr = fmt.Errorf("%w: %v", ErrAuthorityUnavailable, err)
		c.generation++
		c.errorf("load failed: %v", err)
		c.recordLoad(ctx, 0, time.Since(start), c.loadErr)
		return c.loadErr
	}

	c.sessions = sessions
	c.byID = make(map[string]*domain.Session, len(sessions))
	for _, s := range sessions {
		c.byID[s.ID] = s
	}
	c.loadErr = nil
	c.generation++
	c.debugf("loaded %d sessions", len(sessions))
	c.recordLoad(ctx, len(sessions), time.Since(start), nil)
	return nil
}

// Rename sets a record's display name through the authority. An empty
// (after trim) or unchanged name is rejected locally with no network round
// trip. On authority failure the cache is left unchanged.
func (c *Cache) Rename(ctx context.Context, id, newName string) error {
	rec, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("%w: unknown session %q", ErrValidationRejected, id)
	}

	trimmed := strings.TrimSpace(newName)
	if trimmed == "" {
		return fmt.Errorf("%w: name must not be empty", ErrValidationRejected)
	}
	if trimmed == rec.Name {
		// Nothing to do; the authority is not contacted.
		return nil
	}

	if err := c.authority.RenameSession(ctx, id, trimmed); err != nil {
		c.errorf("rename %s failed: %v", id, err)
		c.recordMutation(ctx, "rename", err)
		return fmt.Errorf("%w: %v", ErrMutationFailed, err)
	}

	rec.Name = trimmed
	c.generation++
	c.recordMutation(ctx, "rename", nil)
	return nil
}

// ToggleStar flips a record's starred flag through the authority. The value
// acknowledged by the authority wins, mirroring its last-writer-wins
// semantics. Failure leaves the cache unchanged; starring is non-critical,
// so callers may ignore the error.
func (c *Cache) ToggleStar(ctx context.Context, id string) error {
	rec, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("%w: unknown session %q", ErrValidationRejected, id)
	}

	starred, err := c.authority.ToggleStar(ctx, id)
	if err != nil {
		c.errorf("toggle star %s failed: %v", id, err)
		c.recordMutation(ctx, "star", err)
		return fmt.Errorf("%w: %v", ErrMutationFailed, err)
	}

	rec.Starred = starred
	c.generation++
	c.recordMutation(ctx, "star", nil)
	return nil
}

// Remove deletes a record through the authority, dropping it locally only
// after confirmation. Removing an id that is no longer present is a no-op,
// so repeated removals cannot corrupt the cache.
func (c *Cache) Remove(ctx context.Context, id string) error {
	if _, ok := c.byID[id]; !ok {
		return nil
	}

	if err := c.authority.DeleteSession(ctx, id); err != nil {
		c.errorf("remove %s failed: %v", id, err)
		c.recordMutation(ctx, "remove", err)
		return fmt.Errorf("%w: %v", ErrMutationFailed, err)
	}

	delete(c.byID, id)
	for i, s := range c.sessions {
		if s.ID == id {
			c.sessions = append(c.sessions[:i], c.sessions[i+1:]...)
			break
		}
	}
	c.generation++
	c.recordMutation(ctx, "remove", nil)
	return nil
}

// RemoveAll removes every record currently in the cache. Each deletion
// follows the write-through contract independently: partial failure leaves
// exactly the records whose remote deletion did not succeed. There is no
// atomicity across the batch.
func (c *Cache) RemoveAll(ctx context.Context) error {
	ids := make([]string, len(c.sessions))
	for i, s := range c.sessions {
		ids[i] = s.ID
	}

	var errs []error
	for _, id := range ids {
		if err := c.Remove(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Sessions returns the cached records in authority order (newest first).
// The returned slice is a copy; mutating it does not affect the cache.
func (c *Cache) Sessions() []*domain.Session {
	out := make([]*domain.Session, len(c.sessions))
	copy(out, c.sessions)
	return out
}

// Get returns the cached record with the given id.
func (c *Cache) Get(id string) (*domain.Session, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// Len returns the number of cached records.
func (c *Cache) Len() int { return len(c.sessions) }

// LoadErr returns the error of the most recent Load, or nil.
func (c *Cache) LoadErr() error { return c.loadErr }

// Generation increases every time the cached data changes. The projector
// uses it to invalidate its memo.
func (c *Cache) Generation() uint64 { return c.generation }

func (c *Cache) debugf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(fmt.Sprintf(format, args...))
	}
}

func (c *Cache) errorf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Error(fmt.Sprintf(format, args...))
	}
}

func (c *Cache) recordLoad(ctx context.Context, n int, d time.Duration, err error) {
	if c.metrics != nil {
		c.metrics.RecordLoad(ctx, n, d, err)
	}
}

func (c *Cache) recordMutation(ctx context.Context, op string, err error) {
	if c.metrics != nil {
		c.metrics.RecordMutation(ctx, op, err)
	}
}
