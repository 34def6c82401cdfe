// Package parse recovers a normalized quiz model from the ordered text
// lines of an exam PDF. There is no fixed grammar: both the question-body
// and answer-key parsers are hand-rolled state machines that tolerate
// inline vs multi-line options, dense answer lines packing several
// number+letter pairs, and explanations trailing an answer until the next
// entry.
package parse

import (
	"pdfquiz/internal/constants"
	"pdfquiz/internal/models"
)

// AnswerEntry is one answer-key row: question number, correct letter and
// whatever explanation text trailed it.
type AnswerEntry struct {
	Number      int
	Letter      string
	Explanation string
}

// QuestionBlock is a question recovered from the body region before answer
// attachment: prompt plus options in encounter order.
type QuestionBlock struct {
	Number  int
	Prompt  string
	Options []string
}

// Options tunes the heuristic parts of the pipeline.
type Options struct {
	// AnswerSectionRatio places the answer-key start when no header line
	// is found. Approximate by nature; see LocatePositional.
	AnswerSectionRatio float64
	// MinOptions is the smallest option count a question may keep.
	MinOptions int
}

func DefaultOptions() Options {
	return Options{
		AnswerSectionRatio: constants.AnswerSectionRatio,
		MinOptions:         constants.MinOptionsPerQuestion,
	}
}

// Result carries the assembled test together with the diagnostics callers
// need to explain why a file under-produced questions.
type Result struct {
	Test *models.Test
	// KeyLocation reports how the answer-section start was chosen.
	KeyLocation LocateMethod
	// RescanFilled counts key entries recovered by the whole-document
	// rescan fallback; zero when the fallback never fired.
	RescanFilled int
	// Skips lists questions dropped during attachment, with reasons.
	Skips []Skip
	// DuplicateBlocks lists body question numbers seen more than once;
	// the first occurrence was kept.
	DuplicateBlocks []int
}

// Build runs the full pipeline over extracted lines. sourcePath only feeds
// the deterministic test id and display name, never the parse itself.
func Build(lines []string, sourcePath string, opts Options) (*Result, error) {
	if opts.AnswerSectionRatio <= 0 || opts.AnswerSectionRatio >= 1 {
		opts.AnswerSectionRatio = constants.AnswerSectionRatio
	}
	if opts.MinOptions < 2 {
		opts.MinOptions = constants.MinOptionsPerQuestion
	}

	start, method := locateAnswerSection(lines, opts.AnswerSectionRatio)

	bodyEnd := start
	if method == LocateHeader {
		// exclude the header line itself
		bodyEnd = start - 1
	}
	blocks, duplicates := parseQuestionBlocks(lines[:bodyEnd])

	var keyLines []string
	if start < len(lines) {
		keyLines = explodeDense(lines[start:])
	}
	entries := parseAnswerKey(keyLines)

	filled := 0
	if len(entries) < len(blocks) {
		filled = rescanAnswerKey(lines, entries)
	}
	if len(entries) == 0 {
		return nil, ErrNoAnswerKey
	}

	questions, skips := attach(blocks, entries, opts.MinOptions)
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	return &Result{
		Test:            assemble(questions, sourcePath),
		KeyLocation:     method,
		RescanFilled:    filled,
		Skips:           skips,
		DuplicateBlocks: duplicates,
	}, nil
}
