package templates

import (
	"strings"
	"testing"
)

func TestStudySheetShellPresent(t *testing.T) {
	content := strings.TrimSpace(StudySheetShell)
	if content == "" {
		t.Fatal("embedded shell is empty")
	}

	if !strings.Contains(content, "<!DOCTYPE html>") {
		t.Fatal("embedded shell does not look like an HTML document")
	}
}

func TestStudySheetShellHasAnchors(t *testing.T) {
	if !strings.Contains(StudySheetShell, ContentAnchor) {
		t.Fatalf("shell missing content anchor %q", ContentAnchor)
	}
	if !strings.Contains(StudySheetShell, TitleAnchor) {
		t.Fatalf("shell missing title anchor %q", TitleAnchor)
	}
}
