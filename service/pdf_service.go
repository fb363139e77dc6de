package service

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nordgaard/saiborg-be/types"
	"go.uber.org/zap"
)

// PDFService handles PDF text extraction and chunking
type PDFService struct {
	maxChunkSize int // Maximum size of each text chunk
	overlapSize  int // Size of overlap between chunks
	logger       *zap.Logger
}

var DefaultDocumentServiceConfig = types.DocumentServiceConfig{
	MaxChunkSize: 1000,
	OverlapSize:  200,
}

// NewPDFService creates a new PDF service with configurable chunk sizes
func NewPDFService(config types.DocumentServiceConfig, logger *zap.Logger) *PDFService {
	return &PDFService{
		maxChunkSize: config.MaxChunkSize,
		overlapSize:  config.OverlapSize,
		logger:       logger,
	}
}

// ExtractPages reads a PDF and returns the text of every non-empty page.
// Pages that fail to parse or yield only whitespace are skipped; they emit
// no chunk and no metadata.
func (s *PDFService) ExtractPages(filePath string) ([]types.PageText, error) {
	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf %s: %w", filePath, err)
	}
	defer f.Close()

	var pages []types.PageText
	totalPages := reader.NumPage()
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		text, err := s.extractPageText(reader, pageNum)
		if err != nil {
			s.logger.Warn("failed to extract text from page",
				zap.String("file", filePath),
				zap.Int("page", pageNum),
				zap.Error(err))
			continue
		}
		text = strings.TrimSpace(s.cleanText(text))
		if text == "" {
			continue
		}
		pages = append(pages, types.PageText{Page: pageNum, Text: text})
	}
	return pages, nil
}

// extractPageText isolates the pdf library call; it panics on some malformed
// documents, which must count as a skipped page rather than a crashed run.
func (s *PDFService) extractPageText(reader *pdf.Reader, pageNum int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page parse panic: %v", r)
		}
	}()
	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d is null", pageNum)
	}
	return page.GetPlainText(nil)
}

// CreateChunks splits one page's text into overlapping chunks. Splitting
// prefers paragraph breaks, then sentence ends, then word boundaries, and
// hard-cuts only when none exist. Chunks never span a page break.
func (s *PDFService) CreateChunks(text, source string, page int) []types.DocumentChunk {
	text = strings.TrimSpace(s.cleanText(text))
	if text == "" {
		return nil
	}

	// Return early if text fits in one chunk
	if len(text) <= s.maxChunkSize {
		return []types.DocumentChunk{
			{
				Content:    text,
				Source:     source,
				Page:       page,
				ChunkIndex: 0,
			},
		}
	}

	var chunks []types.DocumentChunk
	textLen := len(text)
	currentPos := 0
	chunkIndex := 0
	for currentPos < textLen {
		chunkEnd := currentPos + s.maxChunkSize
		if chunkEnd >= textLen {
			// Handle last chunk
			if chunk := strings.TrimSpace(text[currentPos:]); chunk != "" {
				chunks = append(chunks, types.DocumentChunk{
					Content:    chunk,
					Source:     source,
					Page:       page,
					ChunkIndex: chunkIndex,
				})
			}
			break
		}

		splitEnd := s.findSplit(text, currentPos, chunkEnd)
		if chunk := strings.TrimSpace(text[currentPos:splitEnd]); chunk != "" {
			chunks = append(chunks, types.DocumentChunk{
				Content:    chunk,
				Source:     source,
				Page:       page,
				ChunkIndex: chunkIndex,
			})
			chunkIndex++
		}

		// Step back by the overlap, but always make progress.
		nextPos := splitEnd - s.overlapSize
		if nextPos <= currentPos {
			nextPos = splitEnd
		}
		currentPos = nextPos
	}

	return chunks
}

// findSplit picks the best split point in (start, end], preferring structural
// boundaries over arbitrary cuts.
func (s *PDFService) findSplit(text string, start, end int) int {
	// Paragraph break
	if i := strings.LastIndex(text[start:end], "\n\n"); i > 0 {
		return start + i
	}

	// Sentence end
	for i := end - 1; i > start; i-- {
		if text[i] == '.' || text[i] == '?' || text[i] == '!' {
			return i + 1
		}
	}

	// Word boundary
	for i := end - 1; i > start; i-- {
		if text[i] == ' ' || text[i] == '\n' {
			return i
		}
	}

	// Hard cut
	return end
}

func (s *PDFService) cleanText(text string) string {
	replacements := map[string]string{
		"\u0000": "",   // Null character
		"\ufffd": "",   // Unicode replacement character
		"\u001b": "",   // Escape character
		"\r":     "",   // Carriage return
		"\f":     "\n", // Form feed to newline
	}
	cleaned := text
	for old, new := range replacements {
		cleaned = strings.ReplaceAll(cleaned, old, new)
	}

	// Collapse runs of spaces left behind by extraction
	for strings.Contains(cleaned, "  ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}

	return strings.TrimSpace(cleaned)
}
