package diagnostics

import "testing"

func TestExtractLine(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		found bool
	}{
		{"plain", "SyntaxError: expected ':' on line 7", "7", true},
		{"uppercase", "Risk detected on LINE 42", "42", true},
		{"near", "Possible infinite loop near line 4", "4", true},
		{"multi digit", "Use of os.system() detected on line 128", "128", true},
		{"first wins", "line 3 conflicts with line 9", "3", true},
		{"no token", "division by zero in helper()", "", false},
		{"word prefix", "newline 5 is not a locator", "", false},
		{"no number", "error near line end", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractLine(tt.in)
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if got != tt.want {
				t.Errorf("line = %q, want %q", got, tt.want)
			}
		})
	}
}
