package ports

import (
	"context"

	"github.com/opticode-ai/opticode/internal/domain"
)

// Authority is the remote system of record for session history. All calls
// are synchronous round trips; implementations map transport failures to the
// history package's error taxonomy.
type Authority interface {
	// ListSessions returns the owner's full record set, newest first.
	ListSessions(ctx context.Context) ([]*domain.Session, error)
	// DeleteSession removes one record.
	DeleteSession(ctx context.Context, id string) error
	// RenameSession sets a record's display name. The name is assumed to be
	// validated by the caller.
	RenameSession(ctx context.Context, id, name string) error
	// ToggleStar flips a record's starred flag and returns the new value.
	ToggleStar(ctx context.Context, id string) (bool, error)
}

// Analyzer submits code to the analysis backend. The diagnostic report
// arrives embedded in the result; there is no separate report call.
type Analyzer interface {
	Analyze(ctx context.Context, code string, level domain.Level) (*domain.AnalysisResult, error)
}

// StatsProvider serves aggregate history statistics for the profile view.
type StatsProvider interface {
	Stats(ctx context.Context) (*domain.ProfileStats, error)
}
