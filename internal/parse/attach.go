package parse

import (
	"fmt"
	"sort"

	"pdfquiz/internal/models"
)

// attach joins question blocks with their answer key entries. Blocks with
// too few options, no key entry, or a letter beyond the recovered options
// are skipped with a per-question diagnostic instead of failing the parse.
func attach(blocks []QuestionBlock, entries map[int]AnswerEntry, minOptions int) ([]models.Question, []Skip) {
	var questions []models.Question
	var skips []Skip

	for _, block := range blocks {
		if len(block.Options) < minOptions {
			skips = append(skips, Skip{
				Number: block.Number,
				Reason: fmt.Sprintf("only %d option(s) recovered", len(block.Options)),
			})
			continue
		}

		// an interior option with no text means the printed letters no
		// longer line up with option positions; dropping it would attach
		// the key letter to the wrong text, so the question goes instead
		if empty := firstEmptyOption(block.Options); empty >= 0 {
			skips = append(skips, Skip{
				Number: block.Number,
				Reason: fmt.Sprintf("option %c recovered with no text", 'A'+empty),
			})
			continue
		}

		entry, ok := entries[block.Number]
		if !ok {
			skips = append(skips, Skip{
				Number: block.Number,
				Reason: "no matching answer key entry",
			})
			continue
		}

		idx := int(entry.Letter[0] - 'A')
		if idx >= len(block.Options) {
			skips = append(skips, Skip{
				Number: block.Number,
				Reason: fmt.Sprintf("answer letter %s outside %d options", entry.Letter, len(block.Options)),
			})
			continue
		}

		questions = append(questions, models.Question{
			Number:        block.Number,
			Prompt:        block.Prompt,
			Options:       block.Options,
			CorrectIndex:  idx,
			CorrectLetter: entry.Letter,
			Explanation:   entry.Explanation,
		})
	}

	sort.Slice(questions, func(i, j int) bool {
		return questions[i].Number < questions[j].Number
	})

	return questions, skips
}

func firstEmptyOption(options []string) int {
	for i, opt := range options {
		if opt == "" {
			return i
		}
	}
	return -1
}

