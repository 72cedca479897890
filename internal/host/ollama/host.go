package ollama

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"lingod/internal/host"
	"lingod/internal/host/prompt"
	"lingod/internal/langpair"
)

// DefaultModel is pulled when no model is configured.
const DefaultModel = "llama3.2"

// Config configures the Ollama-backed namespaces.
type Config struct {
	BaseURL string
	// Model serves both summarization and translation.
	Model   string
	Timeout time.Duration
	// Languages the model is trusted to translate between. Empty means
	// langpair.DefaultCandidates.
	Languages []string
}

// Backend is one Ollama daemon plus the model lingod uses on it.
type Backend struct {
	client    *Client
	model     string
	languages map[string]bool
	// pullMu serializes pulls of the shared model.
	pullMu sync.Mutex
}

// New returns a backend for cfg.
func New(cfg Config) *Backend {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	langs := cfg.Languages
	if len(langs) == 0 {
		langs = langpair.DefaultCandidates
	}
	set := make(map[string]bool, len(langs))
	for _, l := range langs {
		set[strings.ToLower(strings.TrimSpace(l))] = true
	}
	return &Backend{
		client:    NewClient(ClientConfig{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout}),
		model:     cfg.Model,
		languages: set,
	}
}

// Summarizer returns the summarization namespace.
func (b *Backend) Summarizer() host.SummarizerAPI { return &summarizerAPI{b: b} }

// Translator returns the translation namespace.
func (b *Backend) Translator() host.TranslatorAPI { return &translatorAPI{b: b} }

func (b *Backend) availability(ctx context.Context) (host.Availability, error) {
	ok, err := b.client.HasModel(ctx, b.model)
	if err != nil {
		return "", err
	}
	if ok {
		return host.Readily, nil
	}
	return host.AfterDownload, nil
}

// ensureModel pulls the model when it is missing.
func (b *Backend) ensureModel(ctx context.Context, mon host.Monitor) error {
	b.pullMu.Lock()
	defer b.pullMu.Unlock()
	ok, err := b.client.HasModel(ctx, b.model)
	if err != nil || ok {
		return err
	}
	return b.client.Pull(ctx, b.model, func(st PullStatus) {
		if mon != nil && st.Total > 0 {
			mon(host.DownloadProgress{Loaded: st.Completed, Total: st.Total})
		}
	})
}

func (b *Backend) chat(ctx context.Context, system, text, format string) (string, error) {
	resp, err := b.client.Chat(ctx, ChatRequest{
		Model: b.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: text},
		},
		Format: format,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Message.Content), nil
}

type summarizerAPI struct{ b *Backend }

func (s *summarizerAPI) Capabilities(ctx context.Context) (host.Availability, error) {
	return s.b.availability(ctx)
}

func (s *summarizerAPI) Create(ctx context.Context, opts host.SummarizerOptions) (host.Summarizer, error) {
	if err := s.b.ensureModel(ctx, opts.Monitor); err != nil {
		return nil, err
	}
	return &summarizer{b: s.b, format: opts.Format, system: prompt.Summary(opts)}, nil
}

type summarizer struct {
	b      *Backend
	format string
	system string
}

func (s *summarizer) Ready(ctx context.Context) error { return ctx.Err() }

// Summarize returns a map for the json format when the reply parses, and the
// reply text otherwise.
func (s *summarizer) Summarize(ctx context.Context, text string) (any, error) {
	format := ""
	if s.format == "json" {
		format = "json"
	}
	out, err := s.b.chat(ctx, s.system, text, format)
	if err != nil {
		return nil, err
	}
	if format == "json" {
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
	if err := t.b.ensureModel(ctx, opts.Monitor); err != nil {
		return nil, err
	}
	return &translator{b: t.b, system: prompt.Translation(opts.Source, opts.Target)}, nil
}

type capabilities struct {
	b         *Backend
	available host.Availability
}

func (c capabilities) Available() host.Availability { return c.available }

// LanguagePairAvailable reports the model tier for supported pairs.
func (c capabilities) LanguagePairAvailable(ctx context.Context, source, target string) (host.Availability, error) {
	if source == target || !c.b.languages[source] || !c.b.languages[target] {
		return host.No, nil
	}
	return c.available, nil
}

type translator struct {
	b      *Backend
	system string
}

func (t *translator) Ready(ctx context.Context) error { return ctx.Err() }

func (t *translator) Translate(ctx context.Context, text string) (string, error) {
	return t.b.chat(ctx, t.system, text, "")
}
