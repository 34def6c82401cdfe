package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"pdfquiz/internal/models"
)

func sampleTest() *models.Test {
	return &models.Test{
		ID:   "history-101",
		Name: "History 101",
		Questions: []models.Question{
			{
				ID:            "history-101-q1",
				Number:        1,
				Prompt:        "What is the capital of France?",
				Options:       []string{"London", "Paris"},
				CorrectIndex:  1,
				CorrectLetter: "B",
				Explanation:   "Capital since the tenth century.",
			},
			{
				ID:            "history-101-q2",
				Number:        2,
				Prompt:        "Two plus two equals",
				Options:       []string{"three", "four"},
				CorrectIndex:  1,
				CorrectLetter: "B",
			},
		},
		Total: 2,
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want Format
	}{
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"HTML", FormatHTML},
		{" pdf ", FormatPDF},
	}
	for _, c := range cases {
		got, err := ParseFormat(c.in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	if _, err := ParseFormat("docx"); err == nil {
		t.Fatal("ParseFormat(docx) succeeded, want error")
	}
}

func TestMarkdownMarksCorrectOption(t *testing.T) {
	md := string(Markdown(sampleTest()))

	if !strings.Contains(md, "# History 101") {
		t.Fatalf("missing title heading:\n%s", md)
	}
	if !strings.Contains(md, "## Question 1") {
		t.Fatalf("missing question heading:\n%s", md)
	}
	if !strings.Contains(md, "- **B) Paris** ✓") {
		t.Fatalf("correct option not marked:\n%s", md)
	}
	if !strings.Contains(md, "- A) London") {
		t.Fatalf("wrong option not plain:\n%s", md)
	}
	if !strings.Contains(md, "> Capital since the tenth century.") {
		t.Fatalf("explanation missing:\n%s", md)
	}
}

func TestHTMLInjectsRenderedQuestions(t *testing.T) {
	htmlDoc, err := HTML(sampleTest())
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlDoc))
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}

	if got := doc.Find("title").Text(); got != "History 101" {
		t.Fatalf("title = %q, want %q", got, "History 101")
	}

	headings := doc.Find("main.study-sheet h2")
	if headings.Length() != 2 {
		t.Fatalf("question headings = %d, want 2", headings.Length())
	}
	if first := headings.First().Text(); first != "Question 1" {
		t.Fatalf("first heading = %q, want %q", first, "Question 1")
	}

	if strong := doc.Find("main.study-sheet strong").First().Text(); !strings.Contains(strong, "Paris") {
		t.Fatalf("correct option not emphasized, got %q", strong)
	}
}

func TestWriteMarkdownFile(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(sampleTest(), FormatMarkdown, dir)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != "history-101.md" {
		t.Fatalf("path = %q, want history-101.md", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "## Question 2") {
		t.Fatalf("written file incomplete:\n%s", data)
	}
}

func TestWriteRejectsUnknownFormat(t *testing.T) {
	if _, err := Write(sampleTest(), Format("docx"), t.TempDir()); err == nil {
		t.Fatal("Write with unknown format succeeded, want error")
	}
}
