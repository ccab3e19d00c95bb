package chunker

import (
	"errors"
	"strings"
	"testing"

	"study-rag/internal/models"
)

func TestChunk_RespectsMaxSize(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("alpha beta gamma delta ", 200))
	pages := []models.Page{{Number: 1, Text: text}}

	chunks, err := New(100, 20).Chunk(pages, "doc.txt")
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for _, c := range chunks {
		if len(c.Content) == 0 {
			t.Fatal("empty chunk")
		}
		if len(c.Content) > 100 {
			t.Fatalf("chunk exceeds max size: %d chars", len(c.Content))
		}
		if !strings.Contains(text, c.Content) {
			t.Fatalf("chunk is not a span of the source text: %q", c.Content)
		}
	}
}

func TestChunk_PageMetadataInherited(t *testing.T) {
	pages := []models.Page{
		{Number: 1, Text: strings.Repeat("first page words ", 20)},
		{Number: 3, Text: strings.Repeat("third page words ", 20)},
	}

	chunks, err := New(80, 10).Chunk(pages, "doc.pdf")
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}

	seen := map[int]bool{}
	for i, c := range chunks {
		seen[c.PageNumber] = true
		if c.ChunkID != i+1 {
			t.Fatalf("chunk %d has ID %d", i, c.ChunkID)
		}
		if c.Source != "doc.pdf" {
			t.Fatalf("chunk source = %q", c.Source)
		}
		if strings.Contains(c.Content, "third") && c.PageNumber != 3 {
			t.Fatalf("page 3 content tagged with page %d", c.PageNumber)
		}
	}
	if !seen[1] || !seen[3] {
		t.Fatalf("expected chunks from pages 1 and 3, got %v", seen)
	}
}

func TestChunk_ShortPageIsSingleChunk(t *testing.T) {
	pages := []models.Page{{Number: 2, Text: "short text"}}
	chunks, err := New(1500, 300).Chunk(pages, "")
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Content != "short text" {
		t.Fatalf("chunk content = %q", chunks[0].Content)
	}
	if chunks[0].Source != models.DefaultSource {
		t.Fatalf("default source not applied: %q", chunks[0].Source)
	}
}

func TestChunk_EmptyDocument(t *testing.T) {
	_, err := New(100, 20).Chunk(nil, "empty.pdf")
	if !errors.Is(err, models.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}

	_, err = New(100, 20).Chunk([]models.Page{{Number: 1, Text: "   \n\n  "}}, "blank.pdf")
	if !errors.Is(err, models.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument for whitespace-only input, got %v", err)
	}
}
