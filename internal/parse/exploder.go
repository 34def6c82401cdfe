package parse

import (
	"regexp"
	"strings"
)

// answerTokenPattern matches one packed answer pair: 1-3 digits, an
// optional separator, a single option letter, nothing else.
var answerTokenPattern = regexp.MustCompile(`^\d{1,3}[.)\-]?[A-Ea-e]$`)

// explodeDense splits lines that pack several number+letter answer pairs
// ("97.B 98.C 99.D") into one line per token, preserving order. Without
// this, per-line key parsing would capture only the first pair. Lines with
// fewer than two such tokens pass through unchanged.
func explodeDense(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		matches := 0
		for _, f := range fields {
			if answerTokenPattern.MatchString(f) {
				matches++
			}
		}
		if matches >= 2 {
			out = append(out, fields...)
			continue
		}
		out = append(out, line)
	}
	return out
}
