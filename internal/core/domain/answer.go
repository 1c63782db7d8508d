package domain

// AnswerSource tags how the answer text was produced, so callers can
// distinguish a summarised answer from the deterministic fallback.
type AnswerSource string

const (
	// AnswerSummarized means the configured summarizer produced the answer.
	AnswerSummarized AnswerSource = "summarized"

	// AnswerConcatenated means the answer is the deterministic snippet
	// concatenation fallback.
	AnswerConcatenated AnswerSource = "concatenated"
)

// Match is a single ranked search hit.
type Match struct {
	// Filename and Checksum identify the owning document record.
	Filename string `json:"filename"`
	Checksum string `json:"checksum"`

	// Index and the char offsets locate the chunk within its document.
	Index     int `json:"index"`
	CharStart int `json:"char_start"`
	CharEnd   int `json:"char_end"`

	// Snippet is the matched chunk text.
	Snippet string `json:"snippet"`

	// Score is the cosine similarity against the query vector.
	Score float64 `json:"score"`

	// Link is a resolved reference to the source location: a file:// URL
	// with a #chars fragment when the knowledge file exists on disk,
	// otherwise a relative reference.
	Link string `json:"link"`

	// RelevanceReason is an optional explanation of why the chunk matched.
	// Empty when no summarizer is available.
	RelevanceReason string `json:"relevance_reason"`
}

// Answer is the result payload for one question.
type Answer struct {
	// Question is the input question, echoed back.
	Question string `json:"question"`

	// Answer is the composed answer text. Empty when the corpus is empty.
	Answer string `json:"answer"`

	// Source tags whether Answer came from the summarizer or the fallback.
	Source AnswerSource `json:"source"`

	// Matches are the top-k chunks in descending score order.
	Matches []Match `json:"matches"`
}
