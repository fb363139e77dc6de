package service

import (
	"context"

	"github.com/nordgaard/saiborg-be/types"
	"go.uber.org/zap"
)

const DefaultRetrievalLimit = 5

// VectorSearcher is the similarity-search contract of the chunk store.
type VectorSearcher interface {
	SearchSimilar(ctx context.Context, vector []float32, limit int) ([]types.DocumentChunk, []float32, error)
}

// RetrieverService embeds a question and returns the nearest chunks. It is
// deliberately infallible from the caller's point of view: a missing index
// or a failed call yields an empty context set, never an error.
type RetrieverService struct {
	embedder EmbeddingService
	store    VectorSearcher
	limit    int
	logger   *zap.Logger
}

// NewRetrieverService accepts a nil store, which models "no index present";
// retrieval is then permanently disabled and returns empty context.
func NewRetrieverService(embedder EmbeddingService, store VectorSearcher, limit int, logger *zap.Logger) *RetrieverService {
	if limit <= 0 {
		limit = DefaultRetrievalLimit
	}
	return &RetrieverService{
		embedder: embedder,
		store:    store,
		limit:    limit,
		logger:   logger,
	}
}

// Retrieve returns the top-K most similar chunks for the query, K capped by
// the configured limit to bound prompt size.
func (s *RetrieverService) Retrieve(ctx context.Context, query string) []types.DocumentChunk {
	if s.store == nil {
		s.logger.Info("retrieval is not active (no index loaded)")
		return nil
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		s.logger.Error("failed to embed query", zap.Error(err))
		return nil
	}

	chunks, _, err := s.store.SearchSimilar(ctx, vector, s.limit)
	if err != nil {
		s.logger.Error("error during document search", zap.Error(err))
		return nil
	}
	if len(chunks) > s.limit {
		chunks = chunks[:s.limit]
	}

	s.logger.Info("found relevant document chunks", zap.Int("count", len(chunks)))
	return chunks
}
