package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/nordgaard/saiborg-be/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPDFService(maxChunkSize, overlapSize int) *PDFService {
	return NewPDFService(types.DocumentServiceConfig{
		MaxChunkSize: maxChunkSize,
		OverlapSize:  overlapSize,
	}, zap.NewNop())
}

func TestCreateChunksSinglePageFits(t *testing.T) {
	s := newTestPDFService(1000, 200)

	chunks := s.CreateChunks("Kort side med lidt tekst.", "handbook.pdf", 3)

	require.Len(t, chunks, 1)
	assert.Equal(t, "Kort side med lidt tekst.", chunks[0].Content)
	assert.Equal(t, "handbook.pdf", chunks[0].Source)
	assert.Equal(t, 3, chunks[0].Page)
	assert.Equal(t, 0, chunks[0].ChunkIndex)
}

func TestCreateChunksEmptyPage(t *testing.T) {
	s := newTestPDFService(1000, 200)

	assert.Empty(t, s.CreateChunks("", "handbook.pdf", 1))
	assert.Empty(t, s.CreateChunks("   \n\t  ", "handbook.pdf", 1))
}

func TestCreateChunksPrefersParagraphBreaks(t *testing.T) {
	s := newTestPDFService(100, 0)

	para1 := "Første afsnit handler om produktet og dets vigtigste egenskaber."
	para2 := "Andet afsnit beskriver prissætning og levering i detaljer."
	chunks := s.CreateChunks(para1+"\n\n"+para2, "handbook.pdf", 1)

	require.Len(t, chunks, 2)
	assert.Equal(t, para1, chunks[0].Content)
	assert.Equal(t, para2, chunks[1].Content)
	assert.Equal(t, 0, chunks[0].ChunkIndex)
	assert.Equal(t, 1, chunks[1].ChunkIndex)
}

func TestCreateChunksPrefersSentenceEnds(t *testing.T) {
	s := newTestPDFService(100, 0)

	var sb strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&sb, "Dette er sætning nummer %d i dokumentet. ", i)
	}
	chunks := s.CreateChunks(sb.String(), "handbook.pdf", 1)

	require.Greater(t, len(chunks), 1)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Content), 100)
		assert.Equal(t, i, chunk.ChunkIndex)
		assert.True(t, strings.HasSuffix(chunk.Content, "."),
			"chunk %d should end at a sentence boundary: %q", i, chunk.Content)
	}
}

func TestCreateChunksOverlap(t *testing.T) {
	s := newTestPDFService(100, 30)

	// Unique tokens so containment checks cannot match by accident.
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&sb, "ord%04d. ", i)
	}
	chunks := s.CreateChunks(sb.String(), "handbook.pdf", 1)

	require.Greater(t, len(chunks), 2)
	for i := 1; i < len(chunks); i++ {
		firstToken := strings.Fields(chunks[i].Content)[0]
		assert.Contains(t, chunks[i-1].Content, firstToken,
			"chunk %d should overlap the tail of chunk %d", i, i-1)
	}
}

func TestCreateChunksWordBoundaryFallback(t *testing.T) {
	s := newTestPDFService(100, 0)

	// No paragraph breaks and no sentence ends, only spaces.
	tokens := make([]string, 40)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("ord%04d", i)
	}
	chunks := s.CreateChunks(strings.Join(tokens, " "), "handbook.pdf", 1)

	require.Greater(t, len(chunks), 1)
	tokenSet := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = true
	}
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Content), 100)
		for _, field := range strings.Fields(chunk.Content) {
			assert.True(t, tokenSet[field], "chunk split inside a word: %q", field)
		}
	}
}

func TestCreateChunksHardCut(t *testing.T) {
	s := newTestPDFService(100, 0)

	chunks := s.CreateChunks(strings.Repeat("a", 250), "handbook.pdf", 1)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0].Content, 100)
	assert.Len(t, chunks[1].Content, 100)
	assert.Len(t, chunks[2].Content, 50)
}

func TestCreateChunksDeterministic(t *testing.T) {
	s := newTestPDFService(80, 20)

	var sb strings.Builder
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&sb, "Sætning nummer %d slutter her. ", i)
	}
	first := s.CreateChunks(sb.String(), "handbook.pdf", 1)
	second := s.CreateChunks(sb.String(), "handbook.pdf", 1)

	assert.Equal(t, first, second)
}

func TestCreateChunksCleansArtifacts(t *testing.T) {
	s := newTestPDFService(1000, 200)

	chunks := s.CreateChunks("Pris\u0000liste:  2.500  kr\r\n\ufffd", "prices.pdf", 2)

	require.Len(t, chunks, 1)
	assert.Equal(t, "Prisliste: 2.500 kr", chunks[0].Content)
}
