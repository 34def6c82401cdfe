package parse

import (
	"errors"
	"fmt"
)

// Whole-file failures. Both are recoverable: the file is excluded from the
// available tests, never a crash. Extraction failures surface as wrapped
// errors from the extract package instead.
var (
	ErrNoAnswerKey = errors.New("no answer key entries found")
	ErrNoQuestions = errors.New("no questions survived answer attachment")
)

// Skip records one question dropped during attachment. Skips are
// diagnostics, not errors: the rest of the file keeps parsing.
type Skip struct {
	Number int
	Reason string
}

func (s Skip) String() string {
	return fmt.Sprintf("Skipping question %d: %s", s.Number, s.Reason)
}
