package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/opticode-ai/opticode/internal/domain"
)

func testStore(t *testing.T) *SessionStore {
	t.Helper()

	db, err := NewDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewSessionStore(db)
}

func testSession(id string, createdAt time.Time) *domain.Session {
	return &domain.Session{
		ID:            id,
		Name:          "Session " + id,
		OriginalCode:  "print('x')",
		OptimizedCode: "print('x')",
		Level:         domain.LevelOne,
		Changes:       []string{"inlined constant"},
		CreatedAt:     createdAt,
	}
}

func TestSessionStore_CreateAndList(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		if err := store.Create(ctx, testSession(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	sessions, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	for i, want := range []string{"c", "b", "a"} {
		if sessions[i].ID != want {
			t.Errorf("sessions[%d] = %s, want %s (newest first)", i, sessions[i].ID, want)
		}
	}
	if got := sessions[2].Changes; len(got) != 1 || got[0] != "inlined constant" {
		t.Errorf("changes did not round-trip: %v", got)
	}
}

func TestSessionStore_GetByID(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	errText := "pipeline exploded"
	session := testSession("x", time.Now().UTC())
	session.Error = &errText
	session.OriginalAnalysis = map[string]any{"loc": float64(12)}

	if err := store.Create(ctx, session); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.GetByID(ctx, "x")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected a record")
	}
	if got.Error == nil || *got.Error != errText {
		t.Errorf("error = %v, want %q", got.Error, errText)
	}
	if got.OriginalAnalysis["loc"] != float64(12) {
		t.Errorf("analysis did not round-trip: %v", got.OriginalAnalysis)
	}

	missing, err := store.GetByID(ctx, "nope")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for a missing record")
	}
}

func TestSessionStore_Delete(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, testSession("x", time.Now().UTC())); err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := store.Delete(ctx, "x")
	if err != nil || !deleted {
		t.Fatalf("delete = (%v, %v), want (true, nil)", deleted, err)
	}

	deleted, err = store.Delete(ctx, "x")
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if deleted {
		t.Error("second delete should report nothing deleted")
	}
}

func TestSessionStore_Rename(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, testSession("x", time.Now().UTC())); err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := store.Rename(ctx, "x", "better name")
	if err != nil || !ok {
		t.Fatalf("rename = (%v, %v), want (true, nil)", ok, err)
	}
	got, _ := store.GetByID(ctx, "x")
	if got.Name != "better name" {
		t.Errorf("name = %q", got.Name)
	}

	ok, err = store.Rename(ctx, "ghost", "whatever")
	if err != nil {
		t.Fatalf("rename missing: %v", err)
	}
	if ok {
		t.Error("renaming a missing record should report not found")
	}
}

func TestSessionStore_ToggleStar(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, testSession("x", time.Now().UTC())); err != nil {
		t.Fatalf("create: %v", err)
	}

	starred, found, err := store.ToggleStar(ctx, "x")
	if err != nil || !found || !starred {
		t.Fatalf("first toggle = (%v, %v, %v), want (true, true, nil)", starred, found, err)
	}
	starred, found, err = store.ToggleStar(ctx, "x")
	if err != nil || !found || starred {
		t.Fatalf("second toggle = (%v, %v, %v), want (false, true, nil)", starred, found, err)
	}

	_, found, err = store.ToggleStar(ctx, "ghost")
	if err != nil {
		t.Fatalf("toggle missing: %v", err)
	}
	if found {
		t.Error("toggling a missing record should report not found")
	}
}

func TestSessionStore_Stats(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	empty, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats on empty store: %v", err)
	}
	if empty.Total != 0 || empty.LastActive != nil {
		t.Errorf("unexpected empty stats: %+v", empty)
	}

	l1 := testSession("a", base)
	l2 := testSession("b", base.Add(time.Hour))
	l2.Level = domain.LevelTwo
	l2.Starred = true
	none := testSession("c", base.Add(2*time.Hour))
	none.Level = domain.LevelNone

	for _, s := range []*domain.Session{l1, l2, none} {
		if err := store.Create(ctx, s); err != nil {
			t.Fatalf("create %s: %v", s.ID, err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 3 || stats.Level1Count != 1 || stats.Level2Count != 1 || stats.StarredCount != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.LastActive == nil || !stats.LastActive.Equal(base.Add(2*time.Hour)) {
		t.Errorf("last active = %v, want %v", stats.LastActive, base.Add(2*time.Hour))
	}
}
