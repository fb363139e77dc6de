package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nordgaard/saiborg-be/types"
	"go.uber.org/zap"
)

// ChunkStore is the index side of the corpus build: wholesale reset plus
// batched insertion of embedded chunks.
type ChunkStore interface {
	ReInit() error
	BatchInsertChunks(ctx context.Context, chunks []types.DocumentChunk, vectors [][]float32) error
}

const embedBatchSize = 100

// IndexerService builds the similarity index from a directory of PDFs.
// Rebuilds replace the prior index in full; this is an offline, exclusive
// operation and must not run concurrently with query serving.
type IndexerService struct {
	pdf      *PDFService
	embedder EmbeddingService
	store    ChunkStore
	logger   *zap.Logger
}

func NewIndexerService(pdf *PDFService, embedder EmbeddingService, store ChunkStore, logger *zap.Logger) *IndexerService {
	return &IndexerService{
		pdf:      pdf,
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// BuildIndex returns the number of chunks indexed. A single unreadable file
// or page is logged and skipped; the run fails only when no usable chunks
// were produced at all, or when embedding or the index build itself fails.
func (s *IndexerService) BuildIndex(ctx context.Context, dataDir string) (int, error) {
	chunks, err := s.collectChunks(dataDir)
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("no PDF text found in %s", dataDir)
	}
	s.logger.Info("created chunks", zap.Int("count", len(chunks)))

	// Delete any prior index before inserting; rebuilds never merge.
	if err := s.store.ReInit(); err != nil {
		return 0, fmt.Errorf("failed to reset index: %w", err)
	}

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}
		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return 0, fmt.Errorf("failed to embed chunks %d-%d: %w", start, end, err)
		}
		if err := s.store.BatchInsertChunks(ctx, batch, vectors); err != nil {
			return 0, fmt.Errorf("failed to insert chunks %d-%d: %w", start, end, err)
		}
		s.logger.Info("indexed batch", zap.Int("from", start), zap.Int("to", end))
	}

	return len(chunks), nil
}

func (s *IndexerService) collectChunks(dataDir string) ([]types.DocumentChunk, error) {
	info, err := os.Stat(dataDir)
	if err != nil {
		return nil, fmt.Errorf("data folder %s not found: %w", dataDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dataDir)
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var chunks []types.DocumentChunk
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		path := filepath.Join(dataDir, entry.Name())
		s.logger.Info("loading PDF", zap.String("file", path))

		pages, err := s.pdf.ExtractPages(path)
		if err != nil {
			s.logger.Error("failed to read PDF", zap.String("file", path), zap.Error(err))
			continue
		}
		for _, page := range pages {
			chunks = append(chunks, s.pdf.CreateChunks(page.Text, entry.Name(), page.Page)...)
		}
	}
	return chunks, nil
}
