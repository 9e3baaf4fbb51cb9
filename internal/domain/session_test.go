package domain

import "testing"

func TestNormalizeLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  Level
		valid bool
	}{
		{"none", LevelNone, true},
		{"level1", LevelOne, true},
		{"level2", LevelTwo, true},
		{"LEVEL_1", LevelOne, true},
		{"LEVEL_2", LevelTwo, true},
		{"level_1", LevelOne, true},
		{"level_2", LevelTwo, true},
		{"level3", "", false},
		{"", "", false},
		{"NONE", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeLevel(tt.in)
		if ok != tt.valid {
			t.Errorf("NormalizeLevel(%q): valid = %v, want %v", tt.in, ok, tt.valid)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
