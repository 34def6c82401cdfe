package models

// Question is one normalized multiple-choice item after answer attachment.
// CorrectIndex is always a valid index into Options.
type Question struct {
	ID            string   `json:"id"`
	Number        int      `json:"number"`
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectIndex  int      `json:"correct_index"`
	CorrectLetter string   `json:"correct_letter"`
	Explanation   string   `json:"explanation"`
}

// Test is a fully parsed exam. Questions are sorted ascending by number.
type Test struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
	Total       int        `json:"total"`
}
