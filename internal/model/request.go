package model

// Request is the intermediate type produced by sources and consumed by the pipeline.
type Request struct {
	ID     string // caller-supplied or generated identifier
	Source string // source name (e.g. "lines", "jsonl", "glob")
	Origin string // file path or line reference, when known
	Input  string // free-form task description
}

// Record is the pipeline's output for one request. Exactly one of Draft or
// Error is meaningful.
type Record struct {
	ID       string    `json:"id"`
	Origin   string    `json:"origin,omitempty"`
	Input    string    `json:"input"`
	Title    string    `json:"title,omitempty"`
	Priority *Priority `json:"priority,omitempty"`
	Error    string    `json:"error,omitempty"`
	Kind     string    `json:"kind,omitempty"`
	Analysis *Analysis `json:"analysis,omitempty"`
}
