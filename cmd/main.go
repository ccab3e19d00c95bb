package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"study-rag/internal/config"
	"study-rag/internal/embedding"
	"study-rag/internal/helper"
	"study-rag/internal/llmservice"
	"study-rag/internal/models"
	"study-rag/internal/rag"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	filePath := flag.String("file", "", "Path to the document file to index")
	indexKey := flag.String("index", "", "Key of a previously built index")
	topic := flag.String("topic", "", "Study topic for retrieval")
	summary := flag.Bool("summary", false, "Generate a topic summary")
	depth := flag.String("depth", rag.DepthDetailed, "Summary depth: basic or detailed")
	quiz := flag.Int("quiz", 0, "Number of quiz questions to generate")
	cards := flag.Int("cards", 0, "Number of flashcards to generate")
	question := flag.String("ask", "", "Question to answer from the document")
	flag.Parse()

	if *filePath == "" && *indexKey == "" {
		log.Fatal().Msg("Please provide a document with -file or an existing index with -index")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	completer, err := llmservice.NewClient(&cfg.InferLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing LLM client")
	}

	pipeline := rag.NewPipeline(embedder, completer, cfg)
	ctx := context.Background()

	var idx *rag.Index
	if *filePath != "" {
		fileBytes, err := os.ReadFile(*filePath)
		if err != nil {
			log.Fatal().Err(err).Msgf("Failed to read file: %s", *filePath)
		}
		idx, err = pipeline.BuildIndex(ctx, fileBytes, *filePath)
		if err != nil {
			log.Fatal().Err(err).Msg(stageMessage(err))
		}
	} else {
		idx, err = pipeline.OpenIndex(*indexKey)
		if err != nil {
			log.Fatal().Err(err).Msg(stageMessage(err))
		}
	}
	defer idx.Store.Close()

	fmt.Printf("Index: %s\n\n", idx.Key)

	if *summary {
		text, err := pipeline.Summarize(ctx, idx, *topic, *depth)
		if err != nil {
			log.Fatal().Err(err).Msg(stageMessage(err))
		}
		fmt.Printf("%s\n\n", text)
	}

	if *quiz > 0 {
		questions, err := pipeline.GenerateQuiz(ctx, idx, *topic, *quiz)
		if err != nil {
			log.Fatal().Err(err).Msg(stageMessage(err))
		}
		helper.PrettyPrint(questions)
	}

	if *cards > 0 {
		flashcards, err := pipeline.GenerateFlashcards(ctx, idx, *topic, *cards)
		if err != nil {
			log.Fatal().Err(err).Msg(stageMessage(err))
		}
		helper.PrettyPrint(flashcards)
	}

	if *question != "" {
		answer, err := pipeline.Answer(ctx, idx, *question, *topic)
		if err != nil {
			log.Fatal().Err(err).Msg(stageMessage(err))
		}
		fmt.Printf("%s\n\n", answer)
	}
}

// stageMessage maps a pipeline error to a short message naming the
// failed stage.
func stageMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrConfiguration):
		return "Configuration is incomplete"
	case errors.Is(err, models.ErrEmptyDocument):
		return "The document has no extractable text"
	case errors.Is(err, models.ErrExtraction):
		return "Could not read the document"
	case errors.Is(err, models.ErrEmbeddingService):
		return "Embedding the document failed"
	case errors.Is(err, models.ErrEmptyTopic):
		return "A topic or question is required"
	case errors.Is(err, models.ErrMalformedOutput):
		return "The model returned an unusable response"
	case errors.Is(err, models.ErrModelService):
		return "Generation failed"
	default:
		return "Pipeline error"
	}
}
