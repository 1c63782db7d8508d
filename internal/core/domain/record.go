package domain

// Chunk represents a contiguous span of a document's normalised text.
// Offsets are byte offsets into the normalised text, half-open, so
// text[CharStart:CharEnd] == Snippet always holds.
type Chunk struct {
	// Index is the zero-based position within the owning document.
	Index int `json:"index"`

	// CharStart is the inclusive start offset in the normalised text.
	CharStart int `json:"char_start"`

	// CharEnd is the exclusive end offset in the normalised text.
	CharEnd int `json:"char_end"`

	// Snippet is the literal chunk text, retained for display and for
	// the concatenated fallback answer.
	Snippet string `json:"snippet"`

	// Embedding is the vector representation of the snippet.
	// All chunks in one corpus share the same length.
	Embedding []float32 `json:"embedding"`
}

// DocumentRecord is the persisted unit of ingestion: one document version,
// content-addressed by the checksum of its raw source bytes.
// Records are immutable once written.
type DocumentRecord struct {
	// RecordID is the unique identifier of this ingestion run.
	RecordID string `json:"record_id"`

	// Filename is the logical name of the source document (not a path).
	Filename string `json:"filename"`

	// Checksum is the SHA-256 hex digest of the raw source bytes.
	Checksum string `json:"checksum"`

	// IngestTimestamp is the Unix time the record was written.
	IngestTimestamp int64 `json:"ingest_timestamp"`

	// ChunkSize and Overlap are the chunking parameters used.
	ChunkSize int `json:"chunk_size"`
	Overlap   int `json:"overlap"`

	// EmbeddingModel identifies the model that produced the vectors.
	EmbeddingModel string `json:"embedding_model"`

	// EmbeddingDimension is the declared vector length for every chunk.
	EmbeddingDimension int `json:"embedding_dimension"`

	// Chunks are the document's chunks in document order.
	Chunks []Chunk `json:"chunks"`
}

// CorpusEntry is one chunk annotated with its owning record's identity.
// The in-memory corpus is a flat ordered slice of these, rebuilt from disk
// on every query.
type CorpusEntry struct {
	Filename string
	Checksum string
	Chunk    Chunk
}
