package rag

import (
	"errors"
	"strings"
	"testing"

	"study-rag/internal/models"
)

const validQuizJSON = `[
	{
		"question": "What does the Pythagorean theorem state?",
		"options": ["A) a2+b2=c2", "B) E=mc2", "C) F=ma", "D) PV=nRT"],
		"correct_answer": "A) a2+b2=c2",
		"explanation": "Stated on page 3."
	}
]`

func TestParseQuiz_Valid(t *testing.T) {
	questions, err := parseQuiz("Here is your quiz:\n" + validQuizJSON + "\nGood luck!")
	if err != nil {
		t.Fatalf("parseQuiz: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	q := questions[0]
	if q.CorrectAnswer != q.Options[0] {
		t.Fatalf("correct answer %q does not match option %q", q.CorrectAnswer, q.Options[0])
	}
}

func TestParseQuiz_NoBrackets(t *testing.T) {
	_, err := parseQuiz("I cannot produce a quiz from this context.")
	if !errors.Is(err, models.ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
	if !strings.Contains(err.Error(), "I cannot produce a quiz") {
		t.Fatal("raw response not carried in the error")
	}
}

func TestParseQuiz_InvalidJSON(t *testing.T) {
	_, err := parseQuiz(`[{"question": "broken"`)
	if !errors.Is(err, models.ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
}

func TestParseQuiz_EmptyList(t *testing.T) {
	_, err := parseQuiz("[]")
	if !errors.Is(err, models.ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput for empty list, got %v", err)
	}
}

func TestParseQuiz_WrongOptionCount(t *testing.T) {
	raw := `[{"question": "Q", "options": ["A) yes", "B) no"], "correct_answer": "A) yes", "explanation": "E"}]`
	_, err := parseQuiz(raw)
	if !errors.Is(err, models.ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
}

func TestParseQuiz_AnswerNotAnOption(t *testing.T) {
	raw := `[{
		"question": "Q",
		"options": ["A) one", "B) two", "C) three", "D) four"],
		"correct_answer": "A) uno",
		"explanation": "E"
	}]`
	_, err := parseQuiz(raw)
	if !errors.Is(err, models.ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
}

func TestParseFlashcards_Valid(t *testing.T) {
	raw := `Sure!
[
	{"front": "Pythagorean theorem", "back": "a2+b2=c2", "source": "Page 3"},
	{"front": "Hypotenuse", "back": "Longest side of a right triangle", "source": "Page 4"}
]`
	cards, err := parseFlashcards(raw)
	if err != nil {
		t.Fatalf("parseFlashcards: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].Source != "Page 3" {
		t.Fatalf("source not preserved: %q", cards[0].Source)
	}
}

func TestParseFlashcards_EmptySide(t *testing.T) {
	raw := `[{"front": "concept", "back": "   ", "source": "Page 1"}]`
	_, err := parseFlashcards(raw)
	if !errors.Is(err, models.ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
}

func TestFormatContext(t *testing.T) {
	chunks := []models.RetrievedChunk{
		{Content: "first excerpt", Page: 3, Source: "doc.pdf"},
		{Content: "second excerpt", Page: 0, Source: "doc.pdf"},
	}
	got := FormatContext(chunks)
	if !strings.Contains(got, "Excerpt 1 (Page 3):\nfirst excerpt") {
		t.Fatalf("page reference missing:\n%s", got)
	}
	if !strings.Contains(got, "Excerpt 2 (Page unknown):") {
		t.Fatalf("unknown-page label missing:\n%s", got)
	}
}
