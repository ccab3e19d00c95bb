package rag

import (
	"context"
	"fmt"
	"strings"

	"study-rag/internal/models"
)

// SummaryDepth selects how thorough a generated summary is.
const (
	DepthBasic    = "basic"
	DepthDetailed = "detailed"
)

// Summarize generates a structured topic summary from the document.
func (p *Pipeline) Summarize(ctx context.Context, idx *Index, topic, depth string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", fmt.Errorf("%w: a topic is required for a summary", models.ErrEmptyTopic)
	}

	chunks, err := p.Retrieve(ctx, idx, topic, p.cfg.RAG.TopK)
	if err != nil {
		return "", err
	}

	depthWord := DepthDetailed
	if depth == DepthBasic {
		depthWord = DepthBasic
	}
	prompt := fmt.Sprintf(models.SummaryPromptTemplate, depthWord, topic, FormatContext(chunks))
	return p.completer.Complete(ctx, prompt, false)
}

// GenerateQuiz generates numQuestions multiple-choice questions about
// the topic. The model response must parse into a valid question list;
// a partial or schema-violating response fails as a whole.
func (p *Pipeline) GenerateQuiz(ctx context.Context, idx *Index, topic string, numQuestions int) ([]models.QuizQuestion, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: a topic is required for a quiz", models.ErrEmptyTopic)
	}

	chunks, err := p.Retrieve(ctx, idx, topic, p.cfg.RAG.TopK)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(models.QuizPromptTemplate, numQuestions, topic, FormatContext(chunks))
	raw, err := p.completer.Complete(ctx, prompt, true)
	if err != nil {
		return nil, err
	}
	return parseQuiz(raw)
}

// GenerateFlashcards generates numCards front/back study cards about
// the topic.
func (p *Pipeline) GenerateFlashcards(ctx context.Context, idx *Index, topic string, numCards int) ([]models.Flashcard, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: a topic is required for flashcards", models.ErrEmptyTopic)
	}

	chunks, err := p.Retrieve(ctx, idx, topic, p.cfg.RAG.FlashcardTopK)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(models.FlashcardPromptTemplate, numCards, topic, FormatContext(chunks))
	raw, err := p.completer.Complete(ctx, prompt, true)
	if err != nil {
		return nil, err
	}
	return parseFlashcards(raw)
}

// Answer answers a free-form question from the document, citing pages.
// Retrieval uses the session topic when set, otherwise the question
// itself. When no chunk reaches the similarity floor the fixed
// not-found reply is returned without calling the model.
func (p *Pipeline) Answer(ctx context.Context, idx *Index, question, topic string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: a question is required", models.ErrEmptyTopic)
	}

	query := strings.TrimSpace(topic)
	if query == "" {
		query = question
	}

	chunks, err := p.Retrieve(ctx, idx, query, p.cfg.RAG.TopK)
	if err != nil {
		return "", err
	}

	supported := chunks[:0:0]
	for _, chunk := range chunks {
		if chunk.Similarity >= p.cfg.RAG.MinSimilarity {
			supported = append(supported, chunk)
		}
	}
	if len(supported) == 0 {
		return models.NotFoundAnswer, nil
	}

	prompt := fmt.Sprintf(models.AnswerPromptTemplate, FormatContext(supported), question, models.NotFoundAnswer)
	return p.completer.Complete(ctx, prompt, false)
}
