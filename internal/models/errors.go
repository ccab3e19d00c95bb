package models

import "errors"

// Pipeline error taxonomy. Every stage failure wraps one of these so
// the caller can map it to a short user-facing message with errors.Is.
var (
	// ErrConfiguration indicates missing or invalid credentials/settings.
	ErrConfiguration = errors.New("configuration error")

	// ErrExtraction indicates an unreadable source document.
	ErrExtraction = errors.New("extraction error")

	// ErrEmptyDocument indicates the source has no extractable text,
	// e.g. an image-only PDF without a text layer.
	ErrEmptyDocument = errors.New("document has no extractable text")

	// ErrEmbeddingService indicates a failed or timed-out call to the
	// external embedding service.
	ErrEmbeddingService = errors.New("embedding service error")

	// ErrModelService indicates a failed or timed-out call to the
	// external language model.
	ErrModelService = errors.New("model service error")

	// ErrMalformedOutput indicates an unparseable or schema-violating
	// structured model response.
	ErrMalformedOutput = errors.New("malformed model output")

	// ErrEmptyTopic indicates a missing topic/question for a task that
	// requires one.
	ErrEmptyTopic = errors.New("no topic provided")
)
