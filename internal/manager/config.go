package manager

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"lingod/internal/events"
	"lingod/internal/host"
	"lingod/internal/status"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultMaxQueueDepth = 32

	DefaultSummaryType   = "key-points"
	DefaultSummaryFormat = "markdown"
	DefaultSummaryLength = "medium"
)

// Config encapsulates all tunables for Manager construction.
type Config struct {
	Host  host.Host
	Board *status.Board
	// Publisher receives lifecycle events. Nil disables publishing.
	Publisher events.Publisher
	// Logger is used for lifecycle logging. Nil means no logging.
	Logger *zerolog.Logger
	// Summarizer carries the options every summarizer session is created
	// with. Monitor is ignored; the manager installs its own.
	Summarizer host.SummarizerOptions
	// MaxQueueDepth bounds callers queued per session, the running one included.
	MaxQueueDepth int
	// MaxWait is how long a caller waits for room in a full queue before it
	// is rejected as too busy. Zero rejects a full queue at once. Waiting for
	// the in-flight slot itself is never bounded.
	MaxWait time.Duration
	// PairAvailability reports the discovered tier of a translation pair.
	// Translator sessions for after-download pairs start with seeded
	// progress even while the translator feature itself is readily.
	PairAvailability func(source, target string) (host.Availability, bool)
}

// New constructs a Manager from Config.
func New(cfg Config) *Manager {
	m := &Manager{
		host:      cfg.Host,
		board:     cfg.Board,
		publisher: events.OrNoop(cfg.Publisher),
		log:       zerolog.Nop(),
		sessions:  make(map[string]*session),
		summarize: cfg.Summarizer,
	}
	if cfg.Logger != nil {
		m.log = cfg.Logger.With().Str("component", "manager").Logger()
	}
	if m.board == nil {
		m.board = status.NewBoard(m.publisher)
	}
	if m.summarize.Type == "" {
		m.summarize.Type = DefaultSummaryType
	}
	if m.summarize.Format == "" {
		m.summarize.Format = DefaultSummaryFormat
	}
	if m.summarize.Length == "" {
		m.summarize.Length = DefaultSummaryLength
	}
	m.summarize.Monitor = nil
	if cfg.MaxQueueDepth <= 0 {
		m.maxQueueDepth = defaultMaxQueueDepth
	} else {
		m.maxQueueDepth = cfg.MaxQueueDepth
	}
	if cfg.MaxWait > 0 {
		m.maxWait = cfg.MaxWait
	}
	m.pairAvailability = cfg.PairAvailability
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.startTime = time.Now()
	return m
}
