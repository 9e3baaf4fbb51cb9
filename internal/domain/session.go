package domain

import "time"

// Level is the optimization tier a session was run at.
type Level string

const (
	LevelNone Level = "none"
	LevelOne  Level = "level1"
	LevelTwo  Level = "level2"
)

// levelAliases maps legacy tier spellings still emitted by older clients
// to their canonical form.
var levelAliases = map[string]Level{
	"LEVEL_1": LevelOne,
	"LEVEL_2": LevelTwo,
	"level_1": LevelOne,
	"level_2": LevelTwo,
}

// NormalizeLevel canonicalizes a tier string. It returns false when the
// value is not a known tier or alias.
func NormalizeLevel(s string) (Level, bool) {
	if l, ok := levelAliases[s]; ok {
		return l, true
	}
	switch Level(s) {
	case LevelNone, LevelOne, LevelTwo:
		return Level(s), true
	}
	return "", false
}

// Session is one persisted optimization run, as delivered by the authority.
// ID is server-assigned and never changes; OriginalCode, OptimizedCode,
// Level, Changes and CreatedAt are immutable once created. Name and Starred
// are the only user-editable fields.
type Session struct {
	ID                string
	Name              string
	OriginalCode      string
	OptimizedCode     string
	Level             Level
	Changes           []string
	OriginalAnalysis  map[string]any
	OptimizedAnalysis map[string]any
	Error             *string
	Starred           bool
	CreatedAt         time.Time
}
