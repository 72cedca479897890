// Package openaicompat serves the summarizer and translator namespaces from
// any OpenAI-compatible chat completions server (llama.cpp server, vLLM,
// LM Studio, LocalAI). Such servers have no download step: a model is either
// served ("readily") or not ("no").
package openaicompat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	neturl "net/url"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"lingod/internal/host"
	"lingod/internal/host/prompt"
	"lingod/internal/langpair"
)

// Config configures the backend.
type Config struct {
	// BaseURL of the server; "/v1" is appended when missing.
	BaseURL string
	// APIKey is sent as a bearer token. Local servers usually ignore it.
	APIKey string
	Model  string
	// Languages the model is trusted to translate between. Empty means
	// langpair.DefaultCandidates.
	Languages []string
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

const (
	defaultBaseURL = "http://127.0.0.1:8080/v1"
	defaultModel   = "default"
	placeholderKey = "sk-no-key-required"
)

// Backend is one OpenAI-compatible server.
type Backend struct {
	client    openai.Client
	model     string
	languages map[string]bool
}

// New returns a backend for cfg.
func New(cfg Config) *Backend {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		key = placeholderKey
	}
	base := normalizeBaseURL(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	opts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithBaseURL(base),
		option.WithMaxRetries(0),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	langs := cfg.Languages
	if len(langs) == 0 {
		langs = langpair.DefaultCandidates
	}
	set := make(map[string]bool, len(langs))
	for _, l := range langs {
		set[strings.ToLower(strings.TrimSpace(l))] = true
	}
	return &Backend{client: openai.NewClient(opts...), model: model, languages: set}
}

func normalizeBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/")
	}
	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		path += "/v1"
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/") + "/"
}

// Summarizer returns the summarization namespace.
func (b *Backend) Summarizer() host.SummarizerAPI { return &summarizerAPI{b: b} }

// Translator returns the translation namespace.
func (b *Backend) Translator() host.TranslatorAPI { return &translatorAPI{b: b} }

// availability asks the server whether it serves the model.
func (b *Backend) availability(ctx context.Context) (host.Availability, error) {
	_, err := b.client.Models.Get(ctx, b.model)
	if err == nil {
		return host.Readily, nil
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return host.No, nil
	}
	return "", err
}

func (b *Backend) complete(ctx context.Context, system, text string) (string, error) {
	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai-compatible: empty response for model %s", b.model)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// session is shared by summarizer and translator sessions; nothing to load.
type session struct{}

func (session) Ready(ctx context.Context) error { return ctx.Err() }

type summarizerAPI struct{ b *Backend }

func (s *summarizerAPI) Capabilities(ctx context.Context) (host.Availability, error) {
	return s.b.availability(ctx)
}

func (s *summarizerAPI) Create(ctx context.Context, opts host.SummarizerOptions) (host.Summarizer, error) {
	a, err := s.b.availability(ctx)
	if err != nil {
		return nil, err
	}
	if a != host.Readily {
		return nil, fmt.Errorf("model %s is not served", s.b.model)
	}
	return &summarizer{b: s.b, json: opts.Format == "json", system: prompt.Summary(opts)}, nil
}

type summarizer struct {
	session
	b      *Backend
	json   bool
	system string
}

func (s *summarizer) Summarize(ctx context.Context, text string) (any, error) {
	out, err := s.b.complete(ctx, s.system, text)
	if err != nil {
		return nil, err
	}
	if s.json {
		var v map[string]any
		if json.Unmarshal([]byte(out), &v) == nil {
			return v, nil
		}
	}
	return out, nil
}

type translatorAPI struct{ b *Backend }

func (t *translatorAPI) Capabilities(ctx context.Context) (host.TranslatorCapabilities, error) {
	a, err := t.b.availability(ctx)
	if err != nil {
		return nil, err
	}
	return capabilities{b: t.b, available: a}, nil
}

func (t *translatorAPI) Create(ctx context.Context, opts host.TranslatorOptions) (host.Translator, error) {
	if opts.Source == "" || opts.Target == "" {
		return nil, fmt.Errorf("translator needs a source and target language")
	}
	return &translator{b: t.b, system: prompt.Translation(opts.Source, opts.Target)}, nil
}

type capabilities struct {
	b         *Backend
	available host.Availability
}

func (c capabilities) Available() host.Availability { return c.available }

func (c capabilities) LanguagePairAvailable(ctx context.Context, source, target string) (host.Availability, error) {
	if source == target || !c.b.languages[source] || !c.b.languages[target] {
		return host.No, nil
	}
	return c.available, nil
}

type translator struct {
	session
	b      *Backend
	system string
}

func (t *translator) Translate(ctx context.Context, text string) (string, error) {
	return t.b.complete(ctx, t.system, text)
}
