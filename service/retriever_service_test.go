package service

import (
	"context"
	"errors"
	"testing"

	"github.com/nordgaard/saiborg-be/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRetrieveWithoutIndex(t *testing.T) {
	s := NewRetrieverService(&fakeEmbedder{vector: []float32{0.1}}, nil, 5, zap.NewNop())

	assert.Empty(t, s.Retrieve(context.Background(), "hvad koster en licens?"))
}

func TestRetrieveEmbedFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("quota exceeded")}
	store := &fakeSearcher{chunks: []types.DocumentChunk{{Content: "noget tekst"}}}
	s := NewRetrieverService(embedder, store, 5, zap.NewNop())

	assert.Empty(t, s.Retrieve(context.Background(), "hvad koster en licens?"))
}

func TestRetrieveSearchFailure(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1, 0.2}}
	store := &fakeSearcher{err: errors.New("connection refused")}
	s := NewRetrieverService(embedder, store, 5, zap.NewNop())

	assert.Empty(t, s.Retrieve(context.Background(), "hvad koster en licens?"))
}

func TestRetrieveCapsAtLimit(t *testing.T) {
	chunks := make([]types.DocumentChunk, 10)
	for i := range chunks {
		chunks[i] = types.DocumentChunk{Content: "chunk", ChunkIndex: i}
	}
	embedder := &fakeEmbedder{vector: []float32{0.1, 0.2}}
	store := &fakeSearcher{chunks: chunks}
	s := NewRetrieverService(embedder, store, 3, zap.NewNop())

	got := s.Retrieve(context.Background(), "hvad koster en licens?")
	require.Len(t, got, 3)
	assert.Equal(t, 0, got[0].ChunkIndex)
}

func TestRetrieveDefaultLimit(t *testing.T) {
	s := NewRetrieverService(&fakeEmbedder{}, nil, 0, zap.NewNop())

	assert.Equal(t, DefaultRetrievalLimit, s.limit)
}
