package domain

import (
	"encoding/json"
	"strconv"
)

// SyntaxOK is the sentinel the analysis backend uses for "no syntax error".
const SyntaxOK = "OK"

// Finding categories the optimizer reports. Unknown tags are tolerated and
// resolved to a generic tip by the classifier.
const (
	FindingNestedLoop     = "nested-loop"
	FindingLargeFunction  = "large-function"
	FindingNestedBinaryOp = "nested-binary-operation"
)

// LanguageVerdict is the backend's language-acceptance decision.
type LanguageVerdict struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason"`
}

// LineRef is a line locator as it appears on the wire: either a JSON number
// or a free-text string. It is kept as text.
type LineRef string

func (l *LineRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = LineRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*l = LineRef(n.String())
	return nil
}

func (l LineRef) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(l)); err == nil {
		return json.Marshal(n)
	}
	return json.Marshal(string(l))
}

// OptimizationFinding is one optimizer advisory in a raw report.
type OptimizationFinding struct {
	Category   string  `json:"category"`
	Line       LineRef `json:"line"`
	Suggestion string  `json:"suggestion"`
}

// ErrorReport is the raw diagnostic payload attached to an analysis result.
// Field names mirror the backend wire format; it is consumed as-is and never
// mutated.
type ErrorReport struct {
	Language      *LanguageVerdict      `json:"language,omitempty"`
	SyntaxError   string                `json:"syntax_error,omitempty"`
	Security      []string              `json:"security_issues,omitempty"`
	Runtime       []string              `json:"runtime_risks,omitempty"`
	Optimizations []OptimizationFinding `json:"optimizations,omitempty"`
	Aborted       string                `json:"aborted,omitempty"`
}

// AnalysisResult is the envelope returned by the analyse operation. The
// authority persists a Session for it server-side when the error check
// passed; SessionID carries the new record's identity back to the client.
type AnalysisResult struct {
	PassedErrorCheck  bool           `json:"passed_error_check"`
	OriginalCode      string         `json:"original_code"`
	OptimizedCode     string         `json:"optimized_code"`
	Level             Level          `json:"level"`
	Changes           []string       `json:"changes"`
	OriginalAnalysis  map[string]any `json:"original_analysis,omitempty"`
	OptimizedAnalysis map[string]any `json:"optimized_analysis,omitempty"`
	Error             *string        `json:"error,omitempty"`
	Report            *ErrorReport   `json:"error_report,omitempty"`
	SessionID         *string        `json:"session_id,omitempty"`
}
