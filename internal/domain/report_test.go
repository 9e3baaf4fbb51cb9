package domain

import (
	"encoding/json"
	"testing"
)

func TestLineRef_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want LineRef
	}{
		{"number", `{"line": 12}`, "12"},
		{"string", `{"line": "12"}`, "12"},
		{"text locator", `{"line": "inside loop body"}`, "inside loop body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f OptimizationFinding
			if err := json.Unmarshal([]byte(tt.in), &f); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if f.Line != tt.want {
				t.Errorf("Line = %q, want %q", f.Line, tt.want)
			}
		})
	}
}

func TestLineRef_MarshalJSON(t *testing.T) {
	tests := []struct {
		in   LineRef
		want string
	}{
		{"7", `7`},
		{"near the top", `"near the top"`},
	}

	for _, tt := range tests {
		got, err := json.Marshal(tt.in)
		if err != nil {
			t.Fatalf("marshal %q: %v", tt.in, err)
		}
		if string(got) != tt.want {
			t.Errorf("marshal %q = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestErrorReport_RoundTripOptionalFields(t *testing.T) {
	raw := `{
		"language": {"accepted": false, "reason": "not python"},
		"syntax_error": "OK",
		"security_issues": ["Use of eval() detected on line 3"],
		"optimizations": [{"category": "nested-loop", "line": 5, "suggestion": "flatten"}],
		"aborted": "language rejected"
	}`

	var r ErrorReport
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.Language == nil || r.Language.Accepted {
		t.Errorf("expected rejected language verdict, got %+v", r.Language)
	}
	if r.SyntaxError != SyntaxOK {
		t.Errorf("SyntaxError = %q, want sentinel %q", r.SyntaxError, SyntaxOK)
	}
	if len(r.Runtime) != 0 {
		t.Errorf("expected no runtime risks, got %v", r.Runtime)
	}
	if len(r.Optimizations) != 1 || r.Optimizations[0].Line != "5" {
		t.Errorf("unexpected optimizations: %+v", r.Optimizations)
	}
	if r.Aborted == "" {
		t.Error("expected aborted reason to survive the round trip")
	}
}
