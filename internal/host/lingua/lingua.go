// Package lingua is the on-device language detector namespace, backed by
// github.com/pemistahl/lingua-go. Its language models ship inside the binary
// but are expensive to load, so the namespace reports "after-download" until
// the first session has loaded them (or they were preloaded at startup).
package lingua

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"

	"lingod/internal/host"
	"lingod/internal/langpair"
)

// Config configures the detector.
type Config struct {
	// Languages to tell apart, as ISO 639-1 codes. Empty means
	// langpair.DefaultCandidates.
	Languages []string
	// Preload loads every model at construction time.
	Preload bool
}

// API is the language detection namespace.
type API struct {
	languages []lingua.Language

	mu       sync.Mutex
	detector lingua.LanguageDetector
}

// New resolves cfg's languages and optionally preloads their models.
func New(cfg Config) (*API, error) {
	codes := cfg.Languages
	if len(codes) == 0 {
		codes = langpair.DefaultCandidates
	}
	langs, err := resolve(codes)
	if err != nil {
		return nil, err
	}
	a := &API{languages: langs}
	if cfg.Preload {
		a.detector = a.build()
	}
	return a, nil
}

func resolve(codes []string) ([]lingua.Language, error) {
	byCode := make(map[string]lingua.Language)
	for _, l := range lingua.AllLanguages() {
		byCode[strings.ToLower(l.IsoCode639_1().String())] = l
	}
	seen := make(map[lingua.Language]bool)
	var out []lingua.Language
	for _, c := range codes {
		l, ok := byCode[strings.ToLower(strings.TrimSpace(c))]
		if !ok {
			return nil, fmt.Errorf("lingua: unsupported language %q", c)
		}
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	if len(out) < 2 {
		return nil, fmt.Errorf("lingua: need at least two languages, got %d", len(out))
	}
	return out, nil
}

func (a *API) build() lingua.LanguageDetector {
	return lingua.NewLanguageDetectorBuilder().
		FromLanguages(a.languages...).
		WithPreloadedLanguageModels().
		Build()
}

// Capabilities is readily once models are loaded.
func (a *API) Capabilities(ctx context.Context) (host.Availability, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.detector != nil {
		return host.Readily, nil
	}
	return host.AfterDownload, nil
}

// Create loads the models on first use. Progress counts languages.
func (a *API) Create(ctx context.Context, opts host.DetectorOptions) (host.LanguageDetector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.detector == nil {
		n := int64(len(a.languages))
		if opts.Monitor != nil {
			opts.Monitor(host.DownloadProgress{Loaded: 0, Total: n})
		}
		a.detector = a.build()
		if opts.Monitor != nil {
			opts.Monitor(host.DownloadProgress{Loaded: n, Total: n})
		}
	}
	return &detector{d: a.detector}, nil
}

type detector struct{ d lingua.LanguageDetector }

func (d *detector) Ready(ctx context.Context) error { return ctx.Err() }

// Detect returns every language with a non-zero confidence, best first.
func (d *detector) Detect(ctx context.Context, text string) ([]host.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	values := d.d.ComputeLanguageConfidenceValues(text)
	out := make([]host.Detection, 0, len(values))
	for _, v := range values {
		if v.Value() <= 0 {
			continue
		}
		out = append(out, host.Detection{
			Language:   strings.ToLower(v.Language().IsoCode639_1().String()),
			Confidence: v.Value(),
		})
	}
	return out, nil
}
