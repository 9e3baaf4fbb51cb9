package diagnostics

import "regexp"

// lineToken finds the word "line" followed by a decimal integer, the form
// every backend diagnostic uses when it knows the location.
var lineToken = regexp.MustCompile(`(?i)\bline\s+(\d+)`)

// ExtractLine returns the line-number token embedded in a diagnostic string.
// It is a best-effort heuristic: when no token is present it returns
// ("", false) rather than failing.
func ExtractLine(text string) (string, bool) {
	m := lineToken.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
