package parse

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"pdfquiz/internal/models"
)

var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a stable test identifier from a file name stem. The same
// path always yields the same id.
func slugify(stem string) string {
	id := strings.ToLower(stem)
	id = slugStripPattern.ReplaceAllString(id, "-")
	id = strings.Trim(id, "-")
	if id == "" {
		return "test"
	}
	return id
}

// assemble wraps the attached questions into a Test keyed by a slug of the
// source file name. Question ids are derived from the test id and the
// question number so they survive re-parsing unchanged.
func assemble(questions []models.Question, sourcePath string) *models.Test {
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	id := slugify(stem)

	for i := range questions {
		questions[i].ID = fmt.Sprintf("%s-q%d", id, questions[i].Number)
	}

	return &models.Test{
		ID:          id,
		Name:        stem,
		Description: fmt.Sprintf("Imported from %s", filepath.Base(sourcePath)),
		Questions:   questions,
		Total:       len(questions),
	}
}
