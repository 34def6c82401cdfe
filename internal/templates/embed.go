package templates

import _ "embed"

// StudySheetShell is the built-in HTML page wrapping exported study
// sheets. Rendered markdown is injected at the content anchor.
//
//go:embed template.html
var StudySheetShell string

// ContentAnchor marks where rendered question HTML is injected.
const ContentAnchor = "<!-- STUDY_SHEET_CONTENT -->"

// TitleAnchor marks where the test name is injected.
const TitleAnchor = "{{TITLE}}"
