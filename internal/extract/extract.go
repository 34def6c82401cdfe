package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Extractor pulls ordered text lines out of PDF files. Extraction order is
// trusted as-is; lines are never reordered across columns, so multi-column
// layouts can interleave. Wide gaps that column extraction inserts inside a
// line are collapsed to single spaces instead.
type Extractor struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Lines extracts normalized text lines from the PDF at path.
func (e *Extractor) Lines(path string) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %q: %w", path, err)
	}
	defer f.Close()

	return e.readPages(reader, path)
}

// LinesFromBytes extracts normalized text lines from an in-memory PDF,
// e.g. an upload that never touches disk.
func (e *Extractor) LinesFromBytes(data []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read pdf bytes: %w", err)
	}
	return e.readPages(reader, "<bytes>")
}

func (e *Extractor) readPages(reader *pdf.Reader, source string) ([]string, error) {
	var lines []string
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("failed to extract page text",
				zap.String("source", source),
				zap.Int("page", i),
				zap.Error(err))
			continue
		}
		lines = append(lines, NormalizeText(text)...)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("no text extracted from %q", source)
	}
	return lines, nil
}

// NormalizeText splits raw page text into trimmed, non-empty lines with
// interior whitespace runs collapsed to single spaces.
func NormalizeText(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
