package service

import (
	"context"
)

// LLMService turns one prompt into one text completion.
type LLMService interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// EmbeddingService maps text into the vector space of the index.
type EmbeddingService interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
