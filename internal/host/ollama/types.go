package ollama

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
	// Format constrains the reply, e.g. "json".
	Format  string   `json:"format,omitempty"`
	Options *Options `json:"options,omitempty"`
}

// Options are model parameters.
type Options struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumCtx      int     `json:"num_ctx,omitempty"`
}

// ChatResponse is the non-streaming reply of POST /api/chat.
type ChatResponse struct {
	Model      string  `json:"model"`
	Message    Message `json:"message"`
	Done       bool    `json:"done"`
	DoneReason string  `json:"done_reason,omitempty"`
}

// ModelInfo is one entry of GET /api/tags.
type ModelInfo struct {
	Name   string `json:"name"`
	Model  string `json:"model"`
	Size   int64  `json:"size"`
	Digest string `json:"digest"`
}

// ListModelsResponse is the reply of GET /api/tags.
type ListModelsResponse struct {
	Models []ModelInfo `json:"models"`
}

// PullRequest is the body of POST /api/pull.
type PullRequest struct {
	Model  string `json:"model"`
	Stream bool   `json:"stream"`
}

// PullStatus is one NDJSON line of a pull stream.
type PullStatus struct {
	Status    string `json:"status"`
	Digest    string `json:"digest,omitempty"`
	Total     int64  `json:"total,omitempty"`
	Completed int64  `json:"completed,omitempty"`
	Error     string `json:"error,omitempty"`
}

// apiError is the error body Ollama returns on failures.
type apiError struct {
	Error string `json:"error"`
}
