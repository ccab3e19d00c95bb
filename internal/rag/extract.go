package rag

import (
	"encoding/json"
	"fmt"
	"strings"

	"study-rag/internal/models"
)

const optionsPerQuestion = 4

// extractList cuts the substring between the first '[' and the last
// ']' of a raw model response. Responses without a bracket pair fail
// with ErrMalformedOutput.
func extractList(raw string) (string, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return "", fmt.Errorf("%w: no JSON list in response: %s", models.ErrMalformedOutput, raw)
	}
	return raw[start : end+1], nil
}

func parseQuiz(raw string) ([]models.QuizQuestion, error) {
	payload, err := extractList(raw)
	if err != nil {
		return nil, err
	}

	var questions []models.QuizQuestion
	if err := json.Unmarshal([]byte(payload), &questions); err != nil {
		return nil, fmt.Errorf("%w: %v; response: %s", models.ErrMalformedOutput, err, raw)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: empty question list; response: %s", models.ErrMalformedOutput, raw)
	}

	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, fmt.Errorf("%w: question %d has no text; response: %s", models.ErrMalformedOutput, i+1, raw)
		}
		if len(q.Options) != optionsPerQuestion {
			return nil, fmt.Errorf("%w: question %d has %d options, want %d; response: %s",
				models.ErrMalformedOutput, i+1, len(q.Options), optionsPerQuestion, raw)
		}
		if !containsString(q.Options, q.CorrectAnswer) {
			return nil, fmt.Errorf("%w: question %d correct answer does not match any option; response: %s",
				models.ErrMalformedOutput, i+1, raw)
		}
	}
	return questions, nil
}

func parseFlashcards(raw string) ([]models.Flashcard, error) {
	payload, err := extractList(raw)
	if err != nil {
		return nil, err
	}

	var cards []models.Flashcard
	if err := json.Unmarshal([]byte(payload), &cards); err != nil {
		return nil, fmt.Errorf("%w: %v; response: %s", models.ErrMalformedOutput, err, raw)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: empty flashcard list; response: %s", models.ErrMalformedOutput, raw)
	}

	for i, card := range cards {
		if strings.TrimSpace(card.Front) == "" || strings.TrimSpace(card.Back) == "" {
			return nil, fmt.Errorf("%w: flashcard %d has an empty side; response: %s", models.ErrMalformedOutput, i+1, raw)
		}
	}
	return cards, nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
