package parse

import "strings"

// LocateMethod reports how the answer-section start was chosen.
type LocateMethod string

const (
	// LocateHeader means a line containing "answer" was found; the key
	// starts on the next line.
	LocateHeader LocateMethod = "header"
	// LocatePositional means no header was found and the start was placed
	// a fixed fraction into the document. This fallback is approximate
	// and the dominant source of misparses on atypical layouts.
	LocatePositional LocateMethod = "positional"
)

func locateAnswerSection(lines []string, ratio float64) (int, LocateMethod) {
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), "answer") {
			return i + 1, LocateHeader
		}
	}
	return int(float64(len(lines)) * ratio), LocatePositional
}
