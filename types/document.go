package types

// DocumentChunk is the unit stored in and retrieved from the vector index.
// A chunk always belongs to exactly one source file and one page; chunking
// never crosses a page boundary.
type DocumentChunk struct {
	Content    string // The actual text content
	Source     string // Source file name
	Page       int    // Page number the chunk was extracted from (1-based)
	ChunkIndex int    // Position of the chunk within its page (0-based)
}

// PageText is the per-page extraction result fed into the chunker.
type PageText struct {
	Page int
	Text string
}

// DocumentServiceConfig contains configuration options for document processing
type DocumentServiceConfig struct {
	MaxChunkSize int // Maximum size for text chunks
	OverlapSize  int // Size of overlap between chunks
}
