package manager

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lingod/internal/events"
	"lingod/internal/host"
	"lingod/internal/host/mock"
	"lingod/internal/status"
)

// newTestManager wires a manager over h with every feature's board status
// taken from the mock's scripted tier.
func newTestManager(t *testing.T, h *mock.Host, cfg Config) (*Manager, *events.MemoryPublisher) {
	t.Helper()
	pub := events.NewMemoryPublisher()
	board := status.NewBoard(pub)
	if h.Detector != nil {
		board.Set(host.LanguageDetectorFeature, status.FromAvailability(h.Detector.Availability))
	} else {
		board.Set(host.LanguageDetectorFeature, status.Unavailable)
	}
	if h.Summarizer != nil {
		board.Set(host.SummarizerFeature, status.FromAvailability(h.Summarizer.Availability))
	} else {
		board.Set(host.SummarizerFeature, status.Unavailable)
	}
	if h.Translator != nil {
		board.Set(host.TranslatorFeature, status.FromAvailability(h.Translator.Availability))
	} else {
		board.Set(host.TranslatorFeature, status.Unavailable)
	}
	cfg.Host = h.Host()
	cfg.Board = board
	cfg.Publisher = pub
	return New(cfg), pub
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestNewDefaults(t *testing.T) {
	m := New(Config{})
	if m.maxQueueDepth != defaultMaxQueueDepth {
		t.Fatalf("expected default maxQueueDepth=%d got %d", defaultMaxQueueDepth, m.maxQueueDepth)
	}
	if m.maxWait != 0 {
		t.Fatalf("expected unbounded queue wait by default, got %v", m.maxWait)
	}
	if m.summarize.Type != DefaultSummaryType || m.summarize.Format != DefaultSummaryFormat || m.summarize.Length != DefaultSummaryLength {
		t.Fatalf("unexpected summarizer defaults: %+v", m.summarize)
	}
	if m.Board() == nil {
		t.Fatalf("expected a board to be created")
	}
}

func TestEnsureReadilyCachesSession(t *testing.T) {
	h := mock.Ready("en", "fr")
	m, pub := newTestManager(t, h, Config{})
	ctx := testCtx(t)
	for i := 0; i < 3; i++ {
		if err := m.EnsureDetector(ctx); err != nil {
			t.Fatalf("EnsureDetector: %v", err)
		}
	}
	if got := h.Detector.Creates(); got != 1 {
		t.Fatalf("expected 1 create, got %d", got)
	}
	if !m.Has(DetectorKey()) || m.SessionCount() != 1 {
		t.Fatalf("expected cached detector session")
	}
	if len(pub.Named(events.EnsureReady)) != 1 {
		t.Fatalf("expected one ensure_ready event")
	}
	if len(pub.Named(events.DownloadProgress)) != 0 {
		t.Fatalf("readily ensure must not report progress")
	}
}

func TestEnsureCoalescesConcurrentCalls(t *testing.T) {
	h := mock.Ready("en", "fr")
	gate := make(chan struct{})
	h.Summarizer.Gate = gate
	m, _ := newTestManager(t, h, Config{})
	ctx := testCtx(t)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- m.EnsureSummarizer(ctx)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("EnsureSummarizer: %v", err)
		}
	}
	if got := h.Summarizer.Creates(); got != 1 {
		t.Fatalf("expected a single create for concurrent ensures, got %d", got)
	}
}

func TestEnsureAfterDownloadReportsAndClearsProgress(t *testing.T) {
	h := mock.Ready("en", "fr")
	h.Summarizer.Availability = host.AfterDownload
	h.Summarizer.Progress = []host.DownloadProgress{{Loaded: 40, Total: 100}, {Loaded: 5, Total: 0}}
	m, pub := newTestManager(t, h, Config{})

	if err := m.EnsureSummarizer(testCtx(t)); err != nil {
		t.Fatalf("EnsureSummarizer: %v", err)
	}
	rec := m.Board().Get(host.SummarizerFeature)
	if rec.Status != status.Readily {
		t.Fatalf("expected readily after download, got %s", rec.Status)
	}
	if rec.Progress != nil {
		t.Fatalf("expected progress cleared, got %+v", rec.Progress)
	}

	evs := pub.Named(events.DownloadProgress)
	if len(evs) != 4 {
		t.Fatalf("expected 4 progress events (start, 2 updates, cleared), got %d", len(evs))
	}
	if evs[0].Fields["loaded"] != int64(0) || evs[0].Fields["total"] != int64(100) {
		t.Fatalf("expected initial {0,100}, got %v", evs[0].Fields)
	}
	if evs[2].Fields["loaded"] != int64(5) || evs[2].Fields["total"] != int64(100) {
		t.Fatalf("expected unknown total to default to 100, got %v", evs[2].Fields)
	}
	if evs[3].Fields["cleared"] != true {
		t.Fatalf("expected final cleared event, got %v", evs[3].Fields)
	}
}

func TestEnsureReadilyFailureLeavesStatus(t *testing.T) {
	h := mock.Ready("en", "fr")
	h.Summarizer.CreateErr = errors.New("boom")
	m, _ := newTestManager(t, h, Config{})

	err := m.EnsureSummarizer(testCtx(t))
	if err == nil {
		t.Fatalf("expected create error")
	}
	if !errors.Is(err, h.Summarizer.CreateErr) {
		t.Fatalf("expected wrapped create error, got %v", err)
	}
	rec := m.Board().Get(host.SummarizerFeature)
	if rec.Status != status.Readily || !rec.Retryable {
		t.Fatalf("expected readily/retryable after failure, got %+v", rec)
	}
	if rec.LastError == "" {
		t.Fatalf("expected last error recorded")
	}
	if m.Has(SummarizerKey()) {
		t.Fatalf("failed ensure must not cache a session")
	}

	// A later attempt succeeds once the host recovers.
	h.Summarizer.CreateErr = nil
	if err := m.EnsureSummarizer(testCtx(t)); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestEnsureAfterDownloadFailureIsRetryable(t *testing.T) {
	h := mock.Ready("en", "fr")
	h.Translator.Availability = host.AfterDownload
	h.Translator.Progress = []host.DownloadProgress{{Loaded: 10, Total: 100}}
	h.Translator.ReadyErr = errors.New("download interrupted")
	m, _ := newTestManager(t, h, Config{})

	if err := m.EnsureTranslator(testCtx(t), "fr", "en"); err == nil {
		t.Fatalf("expected ready error")
	}
	rec := m.Board().Get(host.TranslatorFeature)
	if rec.Status != status.AfterDownload || !rec.Retryable {
		t.Fatalf("expected after-download/retryable, got %+v", rec)
	}
	if rec.Progress != nil {
		t.Fatalf("expected progress cleared on failure")
	}
}

func TestEnsureUnavailableFeature(t *testing.T) {
	h := mock.Ready("en", "fr")
	h.Summarizer = nil
	m, _ := newTestManager(t, h, Config{})
	err := m.EnsureSummarizer(testCtx(t))
	if !IsFeatureUnavailable(err) {
		t.Fatalf("expected feature unavailable, got %v", err)
	}

	m.Board().Set(host.LanguageDetectorFeature, status.Checking)
	if err := m.EnsureDetector(testCtx(t)); !IsFeatureUnavailable(err) {
		t.Fatalf("expected checking detector to be unavailable, got %v", err)
	}
	if h.Detector.Creates() != 0 {
		t.Fatalf("no session should be created while checking")
	}
}

func TestTranslatorSessionsArePerPair(t *testing.T) {
	h := mock.Ready("en", "fr", "de")
	m, _ := newTestManager(t, h, Config{})
	ctx := testCtx(t)
	for _, p := range [][2]string{{"fr", "en"}, {"en", "fr"}, {"fr", "en"}} {
		if err := m.EnsureTranslator(ctx, p[0], p[1]); err != nil {
			t.Fatalf("EnsureTranslator %v: %v", p, err)
		}
	}
	got := h.Translator.Created()
	if len(got) != 2 || got[0] != "fr-en" || got[1] != "en-fr" {
		t.Fatalf("unexpected created pairs: %v", got)
	}
	keys := m.Sessions()
	if len(keys) != 2 || keys[0].Key != "translator:en-fr" || keys[1].Key != "translator:fr-en" {
		t.Fatalf("unexpected sessions: %+v", keys)
	}
}

func TestInvocations(t *testing.T) {
	h := mock.Ready("en", "fr")
	m, _ := newTestManager(t, h, Config{})
	ctx := testCtx(t)

	det, err := m.Detect(ctx, "Bonjour le monde")
	if err != nil || len(det) == 0 || det[0].Language != "fr" {
		t.Fatalf("Detect: %v %+v", err, det)
	}
	out, err := m.Translate(ctx, "fr", "en", "Bonjour le monde")
	if err != nil || out != mock.Tag("fr", "en", "Bonjour le monde") {
		t.Fatalf("Translate: %v %q", err, out)
	}
	sum, err := m.Summarize(ctx, "First sentence. Second sentence. Third sentence.")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if _, ok := sum.(string); !ok {
		t.Fatalf("expected string summary, got %T", sum)
	}
	if info := m.Sessions(); len(info) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(info))
	}
}

func TestSummarizerOptionsPassedToHost(t *testing.T) {
	h := mock.Ready("en")
	m, _ := newTestManager(t, h, Config{Summarizer: host.SummarizerOptions{Type: "tl;dr"}})
	if err := m.EnsureSummarizer(testCtx(t)); err != nil {
		t.Fatalf("EnsureSummarizer: %v", err)
	}
	opts := h.Summarizer.Options()
	if len(opts) != 1 {
		t.Fatalf("expected one create, got %d", len(opts))
	}
	if opts[0].Type != "tl;dr" || opts[0].Format != DefaultSummaryFormat || opts[0].Length != DefaultSummaryLength {
		t.Fatalf("unexpected options: %+v", opts[0])
	}
	if opts[0].Monitor == nil {
		t.Fatalf("expected a monitor to be installed")
	}
}

func TestDownloadTranslatorNeedsPair(t *testing.T) {
	h := mock.Ready("en", "fr")
	m, _ := newTestManager(t, h, Config{})
	if err := m.Download(testCtx(t), host.TranslatorFeature, "", "en"); err == nil {
		t.Fatalf("expected error without source")
	}
	if err := m.Download(testCtx(t), host.TranslatorFeature, "fr", "en"); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if !m.Has(TranslatorKey("fr", "en")) {
		t.Fatalf("expected translator session after download")
	}
	if err := m.Download(testCtx(t), host.Feature("bogus"), "", ""); err == nil {
		t.Fatalf("expected unknown feature error")
	}
}
