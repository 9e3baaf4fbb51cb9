// Package diagnostics classifies raw analysis error reports into categorized
// advisories with remediation tips.
package diagnostics

import (
	"regexp"
	"strings"

	"github.com/opticode-ai/opticode/internal/domain"
)

// syntaxRule pairs an error-text pattern with a remediation tip. Rules are
// evaluated in table order and the first match wins, so the more specific
// patterns stay on top.
type syntaxRule struct {
	pattern *regexp.Regexp
	tip     string
}

var syntaxRules = []syntaxRule{
	{regexp.MustCompile(`(?i)expected\s+':'`), "Add the missing colon ':' at the end of the statement header (def, if, for, while, class)."},
	{regexp.MustCompile(`(?i)unexpected\s+indent`), "Remove the extra indentation; this line is indented deeper than its block allows."},
	{regexp.MustCompile(`(?i)expected an indented block`), "Indent the body of the block, or use 'pass' as a placeholder."},
	{regexp.MustCompile(`(?i)unterminated (string|triple-quoted)`), "Close the string literal; a quote is missing at the end."},
	{regexp.MustCompile(`(?i)unmatched|was never closed`), "Balance the brackets: every '(', '[' and '{' needs its closing counterpart."},
	{regexp.MustCompile(`(?i)invalid syntax`), "Re-read the statement against the language grammar; something near the reported position is malformed."},
	{regexp.MustCompile(`(?i)cannot assign`), "The left side of '=' must be a plain name, attribute or subscript. Use '==' for comparison."},
}

// genericSyntaxTip is the fallback when no syntax rule matches.
const genericSyntaxTip = "Fix the syntax error at the reported location, then re-run the analysis."

// keywordRule pairs a forbidden-construct keyword with a remediation tip.
// Matching is a case-insensitive substring test over the issue text, in
// table-definition order.
type keywordRule struct {
	keyword string
	tip     string
}

var securityRules = []keywordRule{
	{"os.system", "Avoid os.system; use the subprocess module with an argument list and shell=False."},
	{"subprocess", "Invoke subprocess with an explicit argument list and shell=False; never interpolate user input into a shell string."},
	{"eval", "Do not eval untrusted text; parse it instead (e.g. ast.literal_eval for plain data)."},
	{"exec", "Avoid exec on dynamic strings; restructure the code so the behavior is expressed directly."},
	{"pickle", "Never unpickle untrusted data; prefer a safe format such as JSON."},
	{"__import__", "Use a static import statement; dynamic __import__ on user input allows arbitrary code loading."},
	{"open(", "Validate and normalize file paths before opening them; reject paths outside the intended directory."},
}

const genericSecurityTip = "Remove or isolate the flagged construct; it can execute or expose more than the surrounding code intends."

var runtimeRules = []keywordRule{
	{"infinite loop", "Ensure the loop condition can become false, or add an explicit break condition that is guaranteed to be reached."},
	{"division by zero", "Guard the denominator: check it is nonzero (or catch ZeroDivisionError) before dividing."},
	{"infinite recursion", "Add a base case that stops the recursion, and make sure each call moves toward it."},
	{"unreachable code", "Remove the code after the unconditional return/raise/break, or restructure so it can execute."},
	{"index out of range", "Check the index against the collection length before subscripting."},
	{"unbound", "Assign the variable on every path before it is read, or give it a default up front."},
}

const genericRuntimeTip = "Trace the flagged path by hand and add a guard so the failing case cannot be reached."

// optimizationTips resolves a finding's category tag exactly. The tag set is
// closed on the backend side; unknown tags get the generic fallback.
var optimizationTips = map[string]string{
	domain.FindingNestedLoop:     "Hoist invariant work out of the inner loop, or replace the nesting with a hash lookup to cut the quadratic cost.",
	domain.FindingLargeFunction:  "Split the function into smaller helpers; each should do one thing and be testable on its own.",
	domain.FindingNestedBinaryOp: "Factor the repeated subexpression into a local variable so it is computed once.",
}

const genericOptimizationTip = "Simplify the flagged expression to reduce computational overhead."

// matchKeyword returns the tip of the first rule whose keyword occurs in
// text, or fallback when none match.
func matchKeyword(rules []keywordRule, text, fallback string) string {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if strings.Contains(lower, r.keyword) {
			return r.tip
		}
	}
	return fallback
}

// syntaxTip resolves the tip for a syntax error text.
func syntaxTip(text string) string {
	for _, r := range syntaxRules {
		if r.pattern.MatchString(text) {
			return r.tip
		}
	}
	return genericSyntaxTip
}

// optimizationTip resolves the tip for a finding category tag.
func optimizationTip(category string) string {
	if tip, ok := optimizationTips[category]; ok {
		return tip
	}
	return genericOptimizationTip
}
