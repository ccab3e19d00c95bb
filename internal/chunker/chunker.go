package chunker

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/textsplitter"

	"study-rag/internal/models"
)

// Chunker splits page-level text blocks into overlapping chunks sized
// for embedding and retrieval.
type Chunker struct {
	splitter textsplitter.RecursiveCharacter
}

// New returns a chunker that splits recursively on paragraph, line,
// word and character boundaries, in that order.
func New(chunkSize, chunkOverlap int) *Chunker {
	return &Chunker{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
			textsplitter.WithSeparators([]string{"\n\n", "\n", " ", ""}),
		),
	}
}

// Chunk splits the ordered pages into chunks. Every chunk inherits the
// page number of the page it was cut from; chunk IDs are sequential
// across the whole document. An input with no extractable text fails
// with ErrEmptyDocument.
func (c *Chunker) Chunk(pages []models.Page, source string) ([]models.Chunk, error) {
	if source == "" {
		source = models.DefaultSource
	}

	var chunks []models.Chunk
	noPage := 0
	for _, page := range pages {
		parts, err := c.splitter.SplitText(page.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: splitting page %d: %v", models.ErrExtraction, page.Number, err)
		}
		for _, part := range parts {
			if strings.TrimSpace(part) == "" {
				continue
			}
			if page.Number <= 0 {
				noPage++
			}
			chunks = append(chunks, models.Chunk{
				Content:    part,
				PageNumber: page.Number,
				ChunkID:    len(chunks) + 1,
				Source:     source,
			})
		}
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrEmptyDocument, source)
	}
	if noPage > 0 {
		log.Warn().Int("chunks", noPage).Str("source", source).Msg("Chunks missing page metadata")
	}
	return chunks, nil
}
