package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
)

// ClientError represents an error from the Ollama client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error { return e.Cause }

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotRunning
	ErrTypeTimeout
	ErrTypeModelNotFound
	ErrTypeConnection
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrNotRunning    = &ClientError{Type: ErrTypeNotRunning, Message: "Ollama is not running"}
	ErrTimeout       = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrModelNotFound = &ClientError{Type: ErrTypeModelNotFound, Message: "model not found"}
)

// IsType reports whether err is a ClientError of type t.
func IsType(err error, t ErrorType) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == t
}

// ClientConfig holds configuration options for the Ollama client.
type ClientConfig struct {
	// BaseURL is the Ollama API base URL (default: http://127.0.0.1:11434)
	BaseURL string
	// Timeout for non-streaming requests (default: 2m)
	Timeout time.Duration
}

const (
	defaultBaseURL = "http://127.0.0.1:11434"
	defaultTimeout = 2 * time.Minute
)

// Client handles communication with the Ollama API. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	// streamClient has no overall timeout; pulls are bounded by the context.
	streamClient *http.Client
}

// NewClient creates a client, filling in defaults for zero values.
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		streamClient: &http.Client{},
	}
}

// ListModels retrieves the locally installed models.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, "failed to list models")
	}
	var result ListModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return result.Models, nil
}

// HasModel reports whether model is installed. A bare name matches its
// ":latest" tag.
func (c *Client) HasModel(ctx context.Context, model string) (bool, error) {
	models, err := c.ListModels(ctx)
	if err != nil {
		return false, err
	}
	for _, m := range models {
		if sameModel(m.Name, model) || sameModel(m.Model, model) {
			return true, nil
		}
	}
	return false, nil
}

func sameModel(installed, want string) bool {
	if installed == "" {
		return false
	}
	if installed == want {
		return true
	}
	return !strings.Contains(want, ":") && installed == want+":latest"
}

// Pull downloads model, calling fn for each progress line.
func (c *Client) Pull(ctx context.Context, model string, fn func(PullStatus)) error {
	body, err := json.Marshal(PullRequest{Model: model, Stream: true})
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/pull", bytes.NewReader(body))
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.streamClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusError(resp, "pull request failed")
	}

	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var st PullStatus
		if err := json.Unmarshal(line, &st); err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode pull status", Cause: err}
		}
		if st.Error != "" {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: st.Error}
		}
		if fn != nil {
			fn(st)
		}
		if st.Status == "success" {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &ClientError{Type: ErrTypeConnection, Message: "pull stream interrupted", Cause: err}
	}
	return &ClientError{Type: ErrTypeInvalidResponse, Message: "pull stream ended without success"}
}

// Chat sends a non-streaming chat request.
func (c *Client) Chat(ctx context.Context, r ChatRequest) (*ChatResponse, error) {
	r.Stream = false
	body, err := json.Marshal(r)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrModelNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, "chat request failed")
	}
	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return &result, nil
}

func transportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &ClientError{Type: ErrTypeNotRunning, Message: ErrNotRunning.Message, Cause: err}
}

// statusError prefers Ollama's own error text over the HTTP status.
func statusError(resp *http.Response, msg string) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var e apiError
	if json.Unmarshal(b, &e) == nil && e.Error != "" {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: e.Error}
	}
	return &ClientError{Type: ErrTypeInvalidResponse, Message: msg + ": " + resp.Status}
}
