package parse

import (
	"regexp"
	"strconv"
	"strings"

	"pdfquiz/internal/constants"
)

// keyEntryPattern matches the leading token of an answer-key line:
// question number, optional separator, correct letter, then whatever
// explanation text follows on the same line.
var keyEntryPattern = regexp.MustCompile(`^(\d{1,3})\s*[.):\-]?\s*([A-Ea-e])\b\s*(.*)$`)

type keyState int

const (
	scanningKey keyState = iota
	inEntry
)

// parseAnswerKey walks candidate key lines with a two-state machine. A
// matching line opens (or overwrites) the entry for that number; following
// non-matching lines are space-joined into that entry's explanation until
// the next match or end of input. Lines seen while scanning with no open
// entry are discarded, as are numbers outside the allowed range (footers
// and document codes commonly masquerade as entries).
func parseAnswerKey(lines []string) map[int]AnswerEntry {
	entries := make(map[int]AnswerEntry)
	state := scanningKey
	open := 0

	for _, line := range lines {
		if m := keyEntryPattern.FindStringSubmatch(line); m != nil {
			num, _ := strconv.Atoi(m[1])
			if num < constants.MinQuestionNumber || num > constants.MaxQuestionNumber {
				state = scanningKey
				continue
			}
			entries[num] = AnswerEntry{
				Number:      num,
				Letter:      strings.ToUpper(m[2]),
				Explanation: strings.TrimSpace(m[3]),
			}
			open = num
			state = inEntry
			continue
		}

		if state == inEntry {
			entry := entries[open]
			if entry.Explanation == "" {
				entry.Explanation = line
			} else {
				entry.Explanation += " " + line
			}
			entries[open] = entry
		}
	}

	return entries
}

// rescanAnswerKey re-scans the entire document with the same token
// pattern, filling only numbers not already present. Entries found during
// the regular key pass are never overwritten. Used when the located key
// region produced fewer entries than the body produced question blocks.
func rescanAnswerKey(allLines []string, entries map[int]AnswerEntry) int {
	filled := 0
	for _, line := range explodeDense(allLines) {
		m := keyEntryPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		num, _ := strconv.Atoi(m[1])
		if num < constants.MinQuestionNumber || num > constants.MaxQuestionNumber {
			continue
		}
		if _, exists := entries[num]; exists {
			continue
		}
		entries[num] = AnswerEntry{
			Number:      num,
			Letter:      strings.ToUpper(m[2]),
			Explanation: strings.TrimSpace(m[3]),
		}
		filled++
	}
	return filled
}
