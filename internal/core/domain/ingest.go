package domain

// IngestStatus is the per-file outcome of a batch ingestion.
type IngestStatus string

const (
	// IngestOK means the file was chunked, embedded and persisted.
	IngestOK IngestStatus = "ok"

	// IngestMissing means the file does not exist in the knowledge directory.
	IngestMissing IngestStatus = "missing"

	// IngestEmpty means the file had no extractable text after normalisation.
	IngestEmpty IngestStatus = "empty"

	// IngestUnsupported means no normaliser handles the file's extension.
	IngestUnsupported IngestStatus = "unsupported"

	// IngestError means extraction, embedding or persistence failed.
	IngestError IngestStatus = "error"
)

// IngestResult reports the outcome for one input file.
// A failing file never prevents the rest of the batch from succeeding.
type IngestResult struct {
	// Filename is the input file's logical name.
	Filename string `json:"filename"`

	// Status is the outcome.
	Status IngestStatus `json:"status"`

	// Chunks is the number of chunks written (status ok only).
	Chunks int `json:"chunks,omitempty"`

	// OutputPath is the record file path (status ok only).
	OutputPath string `json:"out_path,omitempty"`

	// Error carries the failure detail for status error.
	Error string `json:"error,omitempty"`
}
