package parse

import (
	"errors"
	"reflect"
	"testing"
)

var sampleExam = []string{
	"History Practice Exam",
	"1) What is the capital of France?",
	"A) London",
	"B) Paris",
	"C) Berlin",
	"2) In which year did the war end?",
	"A) 1945",
	"B) 1939",
	"Answer Key",
	"1. B it has been the capital for centuries",
	"2. A",
}

func TestBuildAssemblesTestFromSample(t *testing.T) {
	res, err := Build(sampleExam, "/exams/History Practice.pdf", DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if res.KeyLocation != LocateHeader {
		t.Fatalf("KeyLocation = %q, want %q", res.KeyLocation, LocateHeader)
	}
	if len(res.Skips) != 0 || len(res.DuplicateBlocks) != 0 {
		t.Fatalf("diagnostics = %+v, want clean parse", res)
	}

	test := res.Test
	if test.ID != "history-practice" {
		t.Fatalf("ID = %q, want %q", test.ID, "history-practice")
	}
	if test.Name != "History Practice" {
		t.Fatalf("Name = %q, want %q", test.Name, "History Practice")
	}
	if test.Total != 2 || len(test.Questions) != 2 {
		t.Fatalf("Total = %d, Questions = %d, want 2 each", test.Total, len(test.Questions))
	}

	q1 := test.Questions[0]
	if q1.ID != "history-practice-q1" {
		t.Fatalf("q1.ID = %q", q1.ID)
	}
	if q1.CorrectIndex != 1 || q1.CorrectLetter != "B" {
		t.Fatalf("q1 = %+v, want answer B at index 1", q1)
	}
	if q1.Explanation != "it has been the capital for centuries" {
		t.Fatalf("q1.Explanation = %q", q1.Explanation)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	first, err := Build(sampleExam, "/exams/sample.pdf", DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second, err := Build(sampleExam, "/exams/sample.pdf", DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(first.Test, second.Test) {
		t.Fatalf("repeated Build differs:\n%+v\n%+v", first.Test, second.Test)
	}
}

func TestBuildFailsWithoutAnswerKey(t *testing.T) {
	lines := []string{
		"1) a question",
		"A) x",
		"B) y",
	}

	_, err := Build(lines, "/exams/broken.pdf", DefaultOptions())
	if !errors.Is(err, ErrNoAnswerKey) {
		t.Fatalf("err = %v, want ErrNoAnswerKey", err)
	}
}

func TestBuildFailsWhenNoQuestionSurvives(t *testing.T) {
	lines := []string{
		"prose without any numbered questions",
		"Answer Key",
		"1. A",
	}

	_, err := Build(lines, "/exams/keyonly.pdf", DefaultOptions())
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
}

func TestBuildNeverEmitsEmptyOptions(t *testing.T) {
	lines := []string{
		"1) pick one",
		"A)",
		"B) real text",
		"2) intact question",
		"A) x",
		"B) y",
		"Answer Key",
		"1. B",
		"2. A",
	}

	res, err := Build(lines, "/exams/hollow-option.pdf", DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if res.Test.Total != 1 || res.Test.Questions[0].Number != 2 {
		t.Fatalf("Test = %+v, want only question 2 to survive", res.Test)
	}
	for _, q := range res.Test.Questions {
		for i, opt := range q.Options {
			if opt == "" {
				t.Fatalf("question %d option %d is empty", q.Number, i)
			}
		}
	}
	if len(res.Skips) != 1 || res.Skips[0].Number != 1 {
		t.Fatalf("Skips = %v, want one skip for question 1", res.Skips)
	}
}

func TestBuildRescansWhenKeyRegionUnderProduces(t *testing.T) {
	// no header; positional split lands past both packed key pairs, so the
	// whole-document rescan must recover them
	lines := []string{
		"1) q one",
		"A) x",
		"B) y",
		"2) q two",
		"A) x",
		"B) y",
		"1.B 2.A",
		"closing remark",
		"closing remark",
		"closing remark",
		"closing remark",
		"closing remark",
	}

	res, err := Build(lines, "/exams/nokey-header.pdf", DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.KeyLocation != LocatePositional {
		t.Fatalf("KeyLocation = %q, want %q", res.KeyLocation, LocatePositional)
	}
	if res.RescanFilled == 0 {
		t.Fatal("RescanFilled = 0, want rescan to fill entries")
	}
	if res.Test.Total != 2 {
		t.Fatalf("Total = %d, want 2", res.Test.Total)
	}
}
