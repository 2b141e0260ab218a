package workers

import "github.com/shopmindai/shopmind/ingest"

// IndexFileState carries an indexing run through its activities. Filled
// fields are skipped on replay, so a retried workflow resumes where it
// stopped.
type IndexFileState struct {
	InputFile string         `json:"inputFile"`
	Markdown  string         `json:"markdown,omitempty"`
	Chunks    []ingest.Chunk `json:"chunks,omitempty"`
	Inserted  int            `json:"inserted"`
}

// SummarizeFileState carries a summarization run through its activities.
type SummarizeFileState struct {
	InputFile string         `json:"inputFile"`
	Markdown  string         `json:"markdown,omitempty"`
	Chunks    []ingest.Chunk `json:"chunks,omitempty"`
	Summary   string         `json:"summary,omitempty"`
}
