// Package export renders parsed tests to study-sheet files. Markdown is
// the source format; HTML and PDF are derived from it.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
	"github.com/yuin/goldmark"

	"pdfquiz/internal/models"
	"pdfquiz/internal/templates"
)

// Format names an output rendering.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
)

// ParseFormat maps a user-facing flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want markdown, html or pdf)", s)
	}
}

// Markdown builds the study-sheet source for a test: every question with
// its options, the correct one marked, followed by the explanation when
// one was recovered.
func Markdown(test *models.Test) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", test.Name)
	fmt.Fprintf(&b, "%d questions.\n\n", test.Total)

	for _, q := range test.Questions {
		fmt.Fprintf(&b, "## Question %d\n\n", q.Number)
		fmt.Fprintf(&b, "%s\n\n", q.Prompt)

		for i, opt := range q.Options {
			letter := string(rune('A' + i))
			if i == q.CorrectIndex {
				fmt.Fprintf(&b, "- **%s) %s** ✓\n", letter, opt)
			} else {
				fmt.Fprintf(&b, "- %s) %s\n", letter, opt)
			}
		}
		b.WriteString("\n")

		if q.Explanation != "" {
			fmt.Fprintf(&b, "> %s\n\n", q.Explanation)
		}
	}

	return []byte(b.String())
}

// HTML renders the markdown study sheet and injects it into the embedded
// page shell.
func HTML(test *models.Test) ([]byte, error) {
	var body bytes.Buffer
	if err := goldmark.Convert(Markdown(test), &body); err != nil {
		return nil, fmt.Errorf("rendering markdown for %s: %w", test.ID, err)
	}

	shell := strings.ReplaceAll(templates.StudySheetShell, templates.TitleAnchor, test.Name)
	if !strings.Contains(shell, templates.ContentAnchor) {
		return nil, fmt.Errorf("page shell is missing the content anchor")
	}
	doc := strings.Replace(shell, templates.ContentAnchor, body.String(), 1)
	return []byte(doc), nil
}

// Write renders the test in the given format into dir and returns the
// written path. The file name is derived from the test id, so repeated
// exports of the same test overwrite each other.
func Write(test *models.Test, format Format, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir %s: %w", dir, err)
	}

	switch format {
	case FormatMarkdown:
		path := filepath.Join(dir, test.ID+".md")
		if err := os.WriteFile(path, Markdown(test), 0o644); err != nil {
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
		return path, nil

	case FormatHTML:
		doc, err := HTML(test)
		if err != nil {
			return "", err
		}
		path := filepath.Join(dir, test.ID+".html")
		if err := os.WriteFile(path, doc, 0o644); err != nil {
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
		return path, nil

	case FormatPDF:
		path := filepath.Join(dir, test.ID+".pdf")
		renderer := mdtopdf.NewPdfRenderer("", "", path, "", nil, mdtopdf.LIGHT)
		if err := renderer.Process(Markdown(test)); err != nil {
			return "", fmt.Errorf("rendering pdf %s: %w", path, err)
		}
		return path, nil

	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
}
