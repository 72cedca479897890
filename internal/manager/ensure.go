package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"lingod/internal/events"
	"lingod/internal/host"
	"lingod/internal/status"
)

// progressTotal is used when the host reports an unknown download size.
const progressTotal = 100

// EnsureDetector makes sure a language detector session is cached.
func (m *Manager) EnsureDetector(ctx context.Context) error {
	return m.Ensure(ctx, DetectorKey())
}

// EnsureSummarizer makes sure a summarizer session is cached.
func (m *Manager) EnsureSummarizer(ctx context.Context) error {
	return m.Ensure(ctx, SummarizerKey())
}

// EnsureTranslator makes sure a translator session for source→target is cached.
func (m *Manager) EnsureTranslator(ctx context.Context, source, target string) error {
	return m.Ensure(ctx, TranslatorKey(source, target))
}

// Ensure returns once a session for key is cached, creating it (and
// downloading its model) when needed.
func (m *Manager) Ensure(ctx context.Context, key Key) error {
	_, err := m.ensure(ctx, key)
	return err
}

// Download is the explicit "download model" action for a feature. The
// translator needs a concrete pair.
func (m *Manager) Download(ctx context.Context, f host.Feature, source, target string) error {
	switch f {
	case host.LanguageDetectorFeature:
		return m.EnsureDetector(ctx)
	case host.SummarizerFeature:
		return m.EnsureSummarizer(ctx)
	case host.TranslatorFeature:
		if source == "" || target == "" {
			return fmt.Errorf("translator download needs a language pair (source=%q target=%q)", source, target)
		}
		return m.EnsureTranslator(ctx, source, target)
	}
	return fmt.Errorf("unknown feature %q", f)
}

// ensure waits for key's session under the caller's ctx. The load itself
// runs under loadContext, so joining callers neither inherit the first
// caller's deadline nor abort the load for the others when theirs expires.
func (m *Manager) ensure(ctx context.Context, key Key) (*session, error) {
	if s := m.lookup(key); s != nil {
		m.log.Debug().Str("key", key.String()).Msg("ensure cached")
		return s, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ch := m.loads.DoChan(key.String(), func() (any, error) {
		if s := m.lookup(key); s != nil {
			return s, nil
		}
		lctx, cancel := m.loadContext(ctx)
		defer cancel()
		return m.load(lctx, key)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			m.publish(events.EnsureCached, key, map[string]any{"shared": true})
		}
		return res.Val.(*session), nil
	case <-ctx.Done():
		m.log.Debug().Str("key", key.String()).Msg("ensure wait abandoned; load continues")
		return nil, ctx.Err()
	}
}

// loadContext keeps ctx's values but only ends when the manager closes.
func (m *Manager) loadContext(ctx context.Context) (context.Context, context.CancelFunc) {
	lctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(m.ctx, cancel)
	return lctx, func() {
		stop()
		cancel()
	}
}

// load runs at most once per key at a time.
func (m *Manager) load(ctx context.Context, key Key) (*session, error) {
	m.mu.RLock()
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	f := key.Feature
	st := m.board.Status(f)
	if !st.Usable() {
		ensureFailuresTotal.WithLabelValues(string(f), "unavailable").Inc()
		return nil, ErrFeatureUnavailable(f, st)
	}

	start := time.Now()
	m.log.Info().Str("key", key.String()).Str("status", string(st)).Msg("ensure start")
	m.publish(events.EnsureStart, key, map[string]any{"status": string(st)})

	if m.needsDownload(key, st) {
		m.board.SetProgress(f, host.DownloadProgress{Loaded: 0, Total: progressTotal})
		downloadProgressRatio.WithLabelValues(string(f)).Set(0)
	}
	monitor := func(p host.DownloadProgress) {
		if p.Total <= 0 {
			p.Total = progressTotal
		}
		m.board.SetProgress(f, p)
		downloadProgressRatio.WithLabelValues(string(f)).Set(float64(p.Loaded) / float64(p.Total))
	}

	handle, err := m.create(ctx, key, monitor)
	if err == nil {
		err = handle.Ready(ctx)
	}
	m.board.ClearProgress(f)
	downloadProgressRatio.WithLabelValues(string(f)).Set(0)
	if err != nil {
		if c, ok := handle.(io.Closer); ok {
			_ = c.Close()
		}
		reason := "create"
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			reason = "canceled"
		}
		ensureFailuresTotal.WithLabelValues(string(f), reason).Inc()
		m.board.RecordError(f, err)
		m.log.Warn().Err(err).Str("key", key.String()).Dur("elapsed", time.Since(start)).Msg("ensure failed")
		m.publish(events.EnsureError, key, map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("create %s session: %w", key, err)
	}

	now := time.Now()
	s := &session{
		key:       key,
		handle:    handle,
		createdAt: now,
		lastUsed:  now,
		genCh:     make(chan struct{}, 1),
		queueCh:   make(chan struct{}, m.maxQueueDepth),
	}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		if c, ok := handle.(io.Closer); ok {
			_ = c.Close()
		}
		m.log.Debug().Str("key", key.String()).Msg("manager closed during load; session discarded")
		return nil, ErrClosed
	}
	m.sessions[key.String()] = s
	m.mu.Unlock()
	sessionsCreatedTotal.WithLabelValues(string(f)).Inc()
	if st != status.Readily {
		m.board.Set(f, status.Readily)
	}
	m.log.Info().Str("key", key.String()).Dur("elapsed", time.Since(start)).Msg("ensure ready")
	m.publish(events.EnsureReady, key, map[string]any{"ms": time.Since(start).Milliseconds()})
	return s, nil
}

// needsDownload reports whether creating key's session starts with a model
// download. Translator pairs carry their own tier, which can differ from the
// feature-wide one.
func (m *Manager) needsDownload(key Key, st status.Status) bool {
	if st == status.AfterDownload {
		return true
	}
	if key.Feature != host.TranslatorFeature || m.pairAvailability == nil {
		return false
	}
	a, ok := m.pairAvailability(key.Source, key.Target)
	return ok && a == host.AfterDownload
}

// create asks the host namespace for a session.
func (m *Manager) create(ctx context.Context, key Key, mon host.Monitor) (readier, error) {
	switch key.Feature {
	case host.LanguageDetectorFeature:
		if m.host.LanguageDetector == nil {
			return nil, ErrFeatureUnavailable(key.Feature, status.Unavailable)
		}
		d, err := m.host.LanguageDetector.Create(ctx, host.DetectorOptions{Monitor: mon})
		if err != nil {
			return nil, err
		}
		return d, nil
	case host.SummarizerFeature:
		if m.host.Summarizer == nil {
			return nil, ErrFeatureUnavailable(key.Feature, status.Unavailable)
		}
		opts := m.summarize
		opts.Monitor = mon
		s, err := m.host.Summarizer.Create(ctx, opts)
		if err != nil {
			return nil, err
		}
		return s, nil
	case host.TranslatorFeature:
		if m.host.Translator == nil {
			return nil, ErrFeatureUnavailable(key.Feature, status.Unavailable)
		}
		t, err := m.host.Translator.Create(ctx, host.TranslatorOptions{Source: key.Source, Target: key.Target, Monitor: mon})
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, fmt.Errorf("unknown feature %q", key.Feature)
}
