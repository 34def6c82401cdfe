package parse

import (
	"regexp"
	"strconv"
	"strings"

	"pdfquiz/internal/constants"
)

var (
	// questionOpenPattern matches "12." / "12)" / "12-" plus remainder.
	questionOpenPattern = regexp.MustCompile(`^(\d{1,3})\s*[.)\-]\s*(.*)$`)
	// optionOpenPattern matches "A." / "B)" / "(C)" / "D-" plus remainder.
	optionOpenPattern = regexp.MustCompile(`^\(?([A-Ea-e])[.)\-]\s*(.*)$`)
	// loneLetterPattern flags a numbered line whose remainder is a bare
	// option letter -- an answer-key entry that bled into the body, not a
	// question opener.
	loneLetterPattern = regexp.MustCompile(`^[A-Ea-e]$`)
)

type bodyState int

const (
	scanningBody bodyState = iota
	inQuestion
	inOption
)

// parseQuestionBlocks recovers numbered question blocks from body lines
// with a three-state machine. A numbered line with a non-key-looking
// remainder opens a block and seeds its prompt; following lines append to
// the prompt until an option opener appears; lines after an option opener
// that open nothing new are appended to the current option, so option text
// may wrap across physical lines. A new numbered line closes the prior
// block. Returns blocks in encounter order plus the numbers of duplicates
// that were discarded (first occurrence wins).
func parseQuestionBlocks(lines []string) ([]QuestionBlock, []int) {
	var blocks []QuestionBlock
	var duplicates []int
	seen := make(map[int]bool)

	state := scanningBody
	var current *QuestionBlock

	closeCurrent := func() {
		if current == nil {
			return
		}
		// an opener like "E)" at the end of a block never receives text;
		// trailing empties are safe to drop without shifting letters
		for len(current.Options) > 0 && current.Options[len(current.Options)-1] == "" {
			current.Options = current.Options[:len(current.Options)-1]
		}
		if current.Number >= constants.MinQuestionNumber && current.Number <= constants.MaxQuestionNumber {
			if seen[current.Number] {
				duplicates = append(duplicates, current.Number)
			} else {
				seen[current.Number] = true
				current.Prompt = strings.TrimSpace(current.Prompt)
				blocks = append(blocks, *current)
			}
		}
		current = nil
	}

	for _, line := range lines {
		if m := questionOpenPattern.FindStringSubmatch(line); m != nil {
			rest := strings.TrimSpace(m[2])
			if !loneLetterPattern.MatchString(rest) {
				closeCurrent()
				num, _ := strconv.Atoi(m[1])
				current = &QuestionBlock{Number: num, Prompt: rest}
				state = inQuestion
				continue
			}
		}

		if current != nil && len(current.Options) < constants.MaxOptionsPerQuestion {
			if m := optionOpenPattern.FindStringSubmatch(line); m != nil {
				current.Options = append(current.Options, strings.TrimSpace(m[2]))
				state = inOption
				continue
			}
		}

		switch state {
		case inQuestion:
			current.Prompt += " " + line
		case inOption:
			last := len(current.Options) - 1
			if current.Options[last] == "" {
				current.Options[last] = line
			} else {
				current.Options[last] += " " + line
			}
		case scanningBody:
			// preamble before the first question, discard
		}
	}
	closeCurrent()

	return blocks, duplicates
}
