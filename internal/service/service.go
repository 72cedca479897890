// Package service wires the status board, the event hub, the prober, the
// model manager and the conversation into the object the HTTP API and the
// CLI drive.
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"lingod/internal/conversation"
	"lingod/internal/events"
	"lingod/internal/host"
	"lingod/internal/langpair"
	"lingod/internal/manager"
	"lingod/internal/probe"
	"lingod/internal/status"
	"lingod/pkg/types"
)

// Config wires a Service.
type Config struct {
	Host host.Host
	// Preferred locales in rank order, e.g. ["fr-FR", "en"].
	Preferred []string
	// Candidates are the translation targets tried during discovery.
	// Empty means langpair.DefaultCandidates.
	Candidates    []string
	Summarizer    host.SummarizerOptions
	MaxQueueDepth int
	MaxWait       time.Duration
	InvokeTimeout time.Duration
	// Publisher, when set, receives every event in addition to the hub.
	Publisher events.Publisher
	Logger    *zerolog.Logger
}

// Service is the daemon's application layer.
type Service struct {
	hub    *events.Hub
	board  *status.Board
	mgr    *manager.Manager
	conv   *conversation.Conversation
	prober *probe.Prober
	log    zerolog.Logger

	mu     sync.RWMutex
	pairs  langpair.Pairs
	probed atomic.Bool

	ctx       context.Context
	cancel    context.CancelFunc
	downloads sync.WaitGroup
	start     time.Time
}

// New builds a service. Nothing talks to the host until Start.
func New(cfg Config) *Service {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	hub := events.NewHub(0)
	var pub events.Publisher = hub
	if cfg.Publisher != nil {
		pub = events.Multi{hub, cfg.Publisher}
	}
	board := status.NewBoard(pub)
	s := &Service{
		hub:   hub,
		board: board,
		log:   log.With().Str("component", "service").Logger(),
		start: time.Now(),
	}
	s.mgr = manager.New(manager.Config{
		Host:             cfg.Host,
		Board:            board,
		Publisher:        pub,
		Logger:           &log,
		Summarizer:       cfg.Summarizer,
		MaxQueueDepth:    cfg.MaxQueueDepth,
		MaxWait:          cfg.MaxWait,
		PairAvailability: s.pairAvailability,
	})
	s.conv = conversation.New(conversation.Config{
		Invoker:       s.mgr,
		Status:        board,
		Publisher:     pub,
		Logger:        &log,
		InvokeTimeout: cfg.InvokeTimeout,
	})
	s.prober = &probe.Prober{
		Host:       cfg.Host,
		Board:      board,
		Publisher:  pub,
		Preferred:  cfg.Preferred,
		Candidates: cfg.Candidates,
		Logger:     log,
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

// pairAvailability looks a pair up in the last discovery result.
func (s *Service) pairAvailability(source, target string) (host.Availability, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pairs.Find(source, target)
	return p.Availability, ok
}

// Start probes the host, records the discovered pairs and seeds the default
// translation source.
func (s *Service) Start(ctx context.Context) probe.Result {
	res := s.prober.Probe(ctx)
	s.mu.Lock()
	s.pairs = res.Pairs
	s.mu.Unlock()
	if res.DefaultSource != "" {
		s.seedSelection(res.DefaultSource, res.Pairs)
	}
	s.probed.Store(true)
	return res
}

// seedSelection sets the source to the first preferred language. When that
// collides with the default target, the first discovered target for the
// source takes its place.
func (s *Service) seedSelection(source string, pairs langpair.Pairs) {
	sel := types.Selection{Source: source}
	if cur := s.conv.Selection(); cur.Target == source {
		if ts := pairs.TargetsFor(source); len(ts) > 0 {
			sel.Target = ts[0].Target
		}
	}
	if _, err := s.conv.SetSelection(sel); err != nil {
		s.log.Warn().Err(err).Str("source", source).Msg("default selection not applied")
	}
}

// Ready reports whether startup probing finished.
func (s *Service) Ready() bool { return s.probed.Load() }

// Status returns a point-in-time view of the daemon.
func (s *Service) Status() types.StatusResponse {
	recs := s.board.Snapshot()
	feats := make([]types.FeatureStatus, 0, len(recs))
	for _, r := range recs {
		fs := types.FeatureStatus{
			Feature:   string(r.Feature),
			Status:    string(r.Status),
			Retryable: r.Retryable,
			LastError: r.LastError,
		}
		if r.Progress != nil {
			fs.Progress = &types.DownloadProgress{Loaded: r.Progress.Loaded, Total: r.Progress.Total}
		}
		feats = append(feats, fs)
	}
	s.mu.RLock()
	pairCount := len(s.pairs)
	s.mu.RUnlock()
	now := time.Now()
	return types.StatusResponse{
		Features:       feats,
		PairCount:      pairCount,
		Selection:      s.conv.Selection(),
		MessageCount:   s.conv.Len(),
		Sessions:       s.mgr.SessionCount(),
		Busy:           s.conv.Busy(),
		Probed:         s.Ready(),
		UptimeSeconds:  int64(now.Sub(s.start).Seconds()),
		ServerTimeUnix: now.Unix(),
	}
}

// Languages returns the discovered pairs with display names and the current
// selection.
func (s *Service) Languages() types.LanguagesResponse {
	s.mu.RLock()
	pairs := s.pairs
	s.mu.RUnlock()
	out := types.LanguagesResponse{Pairs: make([]types.LanguagePair, 0, len(pairs)), Selection: s.conv.Selection()}
	for _, p := range pairs {
		out.Pairs = append(out.Pairs, types.LanguagePair{
			Source:       p.Source,
			Target:       p.Target,
			Availability: string(p.Availability),
			SourceName:   langpair.Name(p.Source),
			TargetName:   langpair.Name(p.Target),
		})
	}
	return out
}

// SetSelection changes the default translation pair.
func (s *Service) SetSelection(sel types.Selection) (types.Selection, error) {
	return s.conv.SetSelection(sel)
}

// Download creates the session for the named feature and blocks until it is
// ready. The translator uses the current selection.
func (s *Service) Download(ctx context.Context, feature string) error {
	f, source, target, err := s.downloadTarget(feature)
	if err != nil {
		return err
	}
	return s.mgr.Download(ctx, f, source, target)
}

// StartDownload validates the request and runs Download in the background.
// Failures end up on the status board.
func (s *Service) StartDownload(feature string) error {
	f, source, target, err := s.downloadTarget(feature)
	if err != nil {
		return err
	}
	if st := s.board.Status(f); !st.Usable() {
		return manager.ErrFeatureUnavailable(f, st)
	}
	s.downloads.Add(1)
	go func() {
		defer s.downloads.Done()
		if err := s.mgr.Download(s.ctx, f, source, target); err != nil {
			s.log.Warn().Err(err).Str("feature", string(f)).Msg("background download failed")
		}
	}()
	return nil
}

func (s *Service) downloadTarget(name string) (host.Feature, string, string, error) {
	f, ok := host.ParseFeature(name)
	if !ok {
		return "", "", "", unknownFeature(name)
	}
	if f != host.TranslatorFeature {
		return f, "", "", nil
	}
	sel := s.conv.Selection()
	if sel.Source == "" || sel.Target == "" {
		return "", "", "", ErrNoSelection
	}
	return f, sel.Source, sel.Target, nil
}

// Submit appends a message and starts language detection.
func (s *Service) Submit(text string) (types.Message, error) { return s.conv.Submit(text) }

// Messages returns the conversation log.
func (s *Service) Messages() []types.Message { return s.conv.Messages() }

// Message returns one message.
func (s *Service) Message(id int64) (types.Message, error) { return s.conv.Message(id) }

// RequestSummary starts the summary flow for a message.
func (s *Service) RequestSummary(id int64) error { return s.conv.RequestSummary(id) }

// RequestTranslation starts the translation flow for a message. An empty
// target falls back to the selection's target.
func (s *Service) RequestTranslation(id int64, target string) error {
	if target == "" {
		target = s.conv.Selection().Target
	}
	return s.conv.RequestTranslation(id, target)
}

// ToggleSummary flips summary visibility and returns the updated message.
func (s *Service) ToggleSummary(id int64) (types.Message, error) {
	if err := s.conv.ToggleSummary(id); err != nil {
		return types.Message{}, err
	}
	return s.conv.Message(id)
}

// ToggleTranslation flips translation visibility and returns the updated message.
func (s *Service) ToggleTranslation(id int64) (types.Message, error) {
	if err := s.conv.ToggleTranslation(id); err != nil {
		return types.Message{}, err
	}
	return s.conv.Message(id)
}

// Subscribe streams events until cancel is called.
func (s *Service) Subscribe() (<-chan events.Event, func()) { return s.hub.Subscribe() }

// Wait blocks until every message flow and background download finished.
func (s *Service) Wait() {
	s.conv.Wait()
	s.downloads.Wait()
}

// Close cancels outstanding work and releases host sessions.
func (s *Service) Close() error {
	s.cancel()
	s.conv.Close()
	s.downloads.Wait()
	err := s.mgr.Close()
	s.hub.Close()
	return err
}
