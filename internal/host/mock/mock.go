// Package mock provides scripted host namespaces. Tests use them to drive
// every tier and failure path; `lingod --backend mock` uses Demo for a local
// walkthrough without any model runtime.
package mock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"lingod/internal/host"
)

// Behavior scripts one namespace's lifecycle.
type Behavior struct {
	// Tier reported by Capabilities.
	Availability host.Availability
	// CapabilitiesErr makes the capability query fail.
	CapabilitiesErr error
	// CreateErr makes session creation fail.
	CreateErr error
	// ReadyErr makes the readiness wait fail.
	ReadyErr error
	// Progress events delivered to the monitor during Create.
	Progress []host.DownloadProgress
	// Gate, when set, blocks Create until it is closed or receives.
	Gate chan struct{}
	// Delay is slept inside Create.
	Delay time.Duration
}

// counter tracks namespace calls.
type counter struct {
	creates atomic.Int32
	invokes atomic.Int32
}

// Creates reports how many sessions were created.
func (c *counter) Creates() int { return int(c.creates.Load()) }

// Invokes reports how many invocations ran.
func (c *counter) Invokes() int { return int(c.invokes.Load()) }

func (b *Behavior) create(ctx context.Context, mon host.Monitor, c *counter) error {
	if b.Gate != nil {
		select {
		case <-b.Gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if b.Delay > 0 {
		select {
		case <-time.After(b.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	for _, p := range b.Progress {
		if mon != nil {
			mon(p)
		}
	}
	if b.CreateErr != nil {
		return b.CreateErr
	}
	c.creates.Add(1)
	return nil
}

// ErrNotConfigured is returned by namespaces with no scripted function.
var ErrNotConfigured = errors.New("mock: not configured")

// DetectorAPI is a scripted language detection namespace.
type DetectorAPI struct {
	Behavior
	counter
	// DetectFunc produces detection results; defaults to Guess.
	DetectFunc func(text string) ([]host.Detection, error)
}

func (d *DetectorAPI) Capabilities(ctx context.Context) (host.Availability, error) {
	if d.CapabilitiesErr != nil {
		return "", d.CapabilitiesErr
	}
	return d.Availability, nil
}

func (d *DetectorAPI) Create(ctx context.Context, opts host.DetectorOptions) (host.LanguageDetector, error) {
	if err := d.create(ctx, opts.Monitor, &d.counter); err != nil {
		return nil, err
	}
	return &detector{api: d}, nil
}

type detector struct{ api *DetectorAPI }

func (s *detector) Ready(ctx context.Context) error { return s.api.ReadyErr }

func (s *detector) Detect(ctx context.Context, text string) ([]host.Detection, error) {
	s.api.invokes.Add(1)
	fn := s.api.DetectFunc
	if fn == nil {
		fn = Guess
	}
	return fn(text)
}

// SummarizerAPI is a scripted summarization namespace.
type SummarizerAPI struct {
	Behavior
	counter
	mu      sync.Mutex
	options []host.SummarizerOptions
	// SummarizeFunc produces the summary; defaults to Lead.
	SummarizeFunc func(text string) (any, error)
}

func (s *SummarizerAPI) Capabilities(ctx context.Context) (host.Availability, error) {
	if s.CapabilitiesErr != nil {
		return "", s.CapabilitiesErr
	}
	return s.Availability, nil
}

func (s *SummarizerAPI) Create(ctx context.Context, opts host.SummarizerOptions) (host.Summarizer, error) {
	s.mu.Lock()
	s.options = append(s.options, opts)
	s.mu.Unlock()
	if err := s.create(ctx, opts.Monitor, &s.counter); err != nil {
		return nil, err
	}
	return &summarizer{api: s}, nil
}

// Options returns the options passed to every Create call.
func (s *SummarizerAPI) Options() []host.SummarizerOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]host.SummarizerOptions(nil), s.options...)
}

type summarizer struct{ api *SummarizerAPI }

func (s *summarizer) Ready(ctx context.Context) error { return s.api.ReadyErr }

func (s *summarizer) Summarize(ctx context.Context, text string) (any, error) {
	s.api.invokes.Add(1)
	fn := s.api.SummarizeFunc
	if fn == nil {
		return Lead(text, 2), nil
	}
	return fn(text)
}

// TranslatorAPI is a scripted translation namespace.
type TranslatorAPI struct {
	Behavior
	counter
	// Pairs maps "source-target" to its tier. Unlisted pairs report DefaultPair.
	Pairs map[string]host.Availability
	// DefaultPair is the tier of unlisted pairs; empty means "no".
	DefaultPair host.Availability
	// PairErr fails every pair query.
	PairErr error
	// TranslateFunc produces translations; defaults to Tag.
	TranslateFunc func(source, target, text string) (string, error)

	mu      sync.Mutex
	created []string
}

func (t *TranslatorAPI) Capabilities(ctx context.Context) (host.TranslatorCapabilities, error) {
	if t.CapabilitiesErr != nil {
		return nil, t.CapabilitiesErr
	}
	return translatorCaps{api: t}, nil
}

func (t *TranslatorAPI) Create(ctx context.Context, opts host.TranslatorOptions) (host.Translator, error) {
	if err := t.create(ctx, opts.Monitor, &t.counter); err != nil {
		return nil, err
	}
	t.mu.Lock()
	t.created = append(t.created, opts.Source+"-"+opts.Target)
	t.mu.Unlock()
	return &translator{api: t, source: opts.Source, target: opts.Target}, nil
}

// Created lists the "source-target" keys of created sessions, in order.
func (t *TranslatorAPI) Created() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.created...)
}

type translatorCaps struct{ api *TranslatorAPI }

func (c translatorCaps) Available() host.Availability { return c.api.Availability }

func (c translatorCaps) LanguagePairAvailable(ctx context.Context, source, target string) (host.Availability, error) {
	if c.api.PairErr != nil {
		return "", c.api.PairErr
	}
	if a, ok := c.api.Pairs[source+"-"+target]; ok {
		return a, nil
	}
	if c.api.DefaultPair == "" {
		return host.No, nil
	}
	return c.api.DefaultPair, nil
}

type translator struct {
	api            *TranslatorAPI
	source, target string
}

func (s *translator) Ready(ctx context.Context) error { return s.api.ReadyErr }

func (s *translator) Translate(ctx context.Context, text string) (string, error) {
	s.api.invokes.Add(1)
	fn := s.api.TranslateFunc
	if fn == nil {
		return Tag(s.source, s.target, text), nil
	}
	return fn(s.source, s.target, text)
}

// Host bundles scripted namespaces. Nil fields are absent namespaces.
type Host struct {
	Detector   *DetectorAPI
	Summarizer *SummarizerAPI
	Translator *TranslatorAPI
}

// Host converts h to a host.Host, leaving absent namespaces nil.
func (h *Host) Host() host.Host {
	var out host.Host
	if h.Detector != nil {
		out.LanguageDetector = h.Detector
	}
	if h.Summarizer != nil {
		out.Summarizer = h.Summarizer
	}
	if h.Translator != nil {
		out.Translator = h.Translator
	}
	return out
}

// Ready returns a host where every namespace is immediately usable and every
// pair among the given codes is readily translatable.
func Ready(codes ...string) *Host {
	pairs := make(map[string]host.Availability)
	for _, s := range codes {
		for _, t := range codes {
			if s != t {
				pairs[s+"-"+t] = host.Readily
			}
		}
	}
	return &Host{
		Detector:   &DetectorAPI{Behavior: Behavior{Availability: host.Readily}},
		Summarizer: &SummarizerAPI{Behavior: Behavior{Availability: host.Readily}},
		Translator: &TranslatorAPI{Behavior: Behavior{Availability: host.Readily}, Pairs: pairs},
	}
}

// Demo returns a host for local walkthroughs: the detector is ready, the
// summarizer and translator need a simulated download.
func Demo() *Host {
	steps := []host.DownloadProgress{{Loaded: 25, Total: 100}, {Loaded: 50, Total: 100}, {Loaded: 75, Total: 100}, {Loaded: 100, Total: 100}}
	return &Host{
		Detector: &DetectorAPI{Behavior: Behavior{Availability: host.Readily}},
		Summarizer: &SummarizerAPI{Behavior: Behavior{
			Availability: host.AfterDownload,
			Progress:     steps,
			Delay:        200 * time.Millisecond,
		}},
		Translator: &TranslatorAPI{
			Behavior:    Behavior{Availability: host.AfterDownload, Progress: steps, Delay: 200 * time.Millisecond},
			DefaultPair: host.AfterDownload,
		},
	}
}
