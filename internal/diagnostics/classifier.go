package diagnostics

import "github.com/opticode-ai/opticode/internal/domain"

// Item is one classified textual diagnostic: the original text plus the
// extracted line locator (empty when none was found) and a remediation tip.
type Item struct {
	Text string `json:"text"`
	Line string `json:"line,omitempty"`
	Tip  string `json:"tip"`
}

// Finding is one classified optimizer advisory.
type Finding struct {
	Category   string `json:"category"`
	Line       string `json:"line,omitempty"`
	Suggestion string `json:"suggestion"`
	Tip        string `json:"tip"`
}

// Counts holds the per-category advisory counts of a classified report.
type Counts struct {
	Syntax       int `json:"syntax"`
	Security     int `json:"security"`
	Runtime      int `json:"runtime"`
	Optimization int `json:"optimization"`
}

// Report is the advisory view of one raw error report. It is recomputed
// fresh for every displayed result and never cached or merged.
//
// Language and Syntax are populated only on blocking reports; security,
// runtime and optimization advisories render regardless of the blocking
// verdict.
type Report struct {
	Blocking      bool                    `json:"is_blocking"`
	Aborted       string                  `json:"aborted,omitempty"`
	Language      *domain.LanguageVerdict `json:"language,omitempty"`
	Syntax        *Item                   `json:"syntax,omitempty"`
	Security      []Item                  `json:"security"`
	Runtime       []Item                  `json:"runtime"`
	Optimizations []Finding               `json:"optimizations"`
	Counts        Counts                  `json:"counts"`
	AdvisoryCount int                     `json:"advisory_count"`
}

// Empty reports whether there is nothing to render: no blocking reason and
// zero advisories across all categories.
func (r *Report) Empty() bool {
	return !r.Blocking && r.AdvisoryCount == 0 && r.Counts.Syntax == 0
}

// Classify turns a raw error report into its advisory view. It is a pure
// function: identical input yields identical output, and the input is not
// modified. A nil report classifies to an empty, non-blocking view.
func Classify(raw *domain.ErrorReport) *Report {
	out := &Report{
		Security:      []Item{},
		Runtime:       []Item{},
		Optimizations: []Finding{},
	}
	if raw == nil {
		return out
	}

	out.Aborted = raw.Aborted
	out.Blocking = raw.Aborted != ""

	// The language verdict and syntax error accompany the aborted banner;
	// outside a blocking report they are suppressed.
	if out.Blocking {
		out.Language = raw.Language
		if raw.SyntaxError != "" && raw.SyntaxError != domain.SyntaxOK {
			item := classifyItem(raw.SyntaxError, syntaxTip(raw.SyntaxError))
			out.Syntax = &item
			out.Counts.Syntax = 1
		}
	}

	for _, text := range raw.Security {
		out.Security = append(out.Security, classifyItem(text, matchKeyword(securityRules, text, genericSecurityTip)))
	}
	out.Counts.Security = len(out.Security)

	for _, text := range raw.Runtime {
		out.Runtime = append(out.Runtime, classifyItem(text, matchKeyword(runtimeRules, text, genericRuntimeTip)))
	}
	out.Counts.Runtime = len(out.Runtime)

	for _, f := range raw.Optimizations {
		line := string(f.Line)
		if line == "" {
			line, _ = ExtractLine(f.Suggestion)
		}
		out.Optimizations = append(out.Optimizations, Finding{
			Category:   f.Category,
			Line:       line,
			Suggestion: f.Suggestion,
			Tip:        optimizationTip(f.Category),
		})
	}
	out.Counts.Optimization = len(out.Optimizations)

	out.AdvisoryCount = out.Counts.Security + out.Counts.Runtime + out.Counts.Optimization
	return out
}

func classifyItem(text, tip string) Item {
	line, _ := ExtractLine(text)
	return Item{Text: text, Line: line, Tip: tip}
}
