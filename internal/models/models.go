package models

import "strconv"

// DefaultSource is used when a chunk has no source metadata.
const DefaultSource = "document"

// Page is one page of extracted text from the source file.
type Page struct {
	Number int
	Text   string
}

// Chunk represents a parsed chunk with metadata
type Chunk struct {
	Content    string
	PageNumber int
	ChunkID    int
	Source     string
}

// PageLabel returns the page number as text, or "unknown" when the
// chunk carries no page metadata.
func (c Chunk) PageLabel() string {
	if c.PageNumber <= 0 {
		return "unknown"
	}
	return strconv.Itoa(c.PageNumber)
}

// ChunkEmbedding pairs a chunk with its embedding vector.
type ChunkEmbedding struct {
	Content        string
	Embedding      []float32
	SourceFilename string
	PageNumber     int
	ChunkID        int
}

// RetrievedChunk is one similarity-search hit, annotated with its
// source metadata.
type RetrievedChunk struct {
	Content    string
	Page       int
	Source     string
	Similarity float32
}

// PageLabel returns the page number as text, or "unknown" when the
// chunk carries no page metadata.
func (r RetrievedChunk) PageLabel() string {
	if r.Page <= 0 {
		return "unknown"
	}
	return strconv.Itoa(r.Page)
}

// QuizQuestion is one multiple-choice question produced by the model.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// Flashcard is one front/back study card produced by the model.
type Flashcard struct {
	Front  string `json:"front"`
	Back   string `json:"back"`
	Source string `json:"source"`
}
