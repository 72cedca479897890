package manager

import (
	"context"
	"fmt"
	"time"

	"lingod/internal/host"
)

// Detect runs language detection, creating the detector session on first use.
func (m *Manager) Detect(ctx context.Context, text string) ([]host.Detection, error) {
	s, release, err := m.acquire(ctx, DetectorKey())
	if err != nil {
		return nil, err
	}
	defer release()
	d, ok := s.handle.(host.LanguageDetector)
	if !ok {
		return nil, fmt.Errorf("session %s is not a language detector", s.key)
	}
	start := time.Now()
	out, err := d.Detect(ctx, text)
	observeInvocation(s.key.Feature, start, err)
	return out, err
}

// Summarize summarizes text with the shared summarizer session.
func (m *Manager) Summarize(ctx context.Context, text string) (any, error) {
	s, release, err := m.acquire(ctx, SummarizerKey())
	if err != nil {
		return nil, err
	}
	defer release()
	sum, ok := s.handle.(host.Summarizer)
	if !ok {
		return nil, fmt.Errorf("session %s is not a summarizer", s.key)
	}
	start := time.Now()
	out, err := sum.Summarize(ctx, text)
	observeInvocation(s.key.Feature, start, err)
	return out, err
}

// Translate translates text with the session for source→target.
func (m *Manager) Translate(ctx context.Context, source, target, text string) (string, error) {
	s, release, err := m.acquire(ctx, TranslatorKey(source, target))
	if err != nil {
		return "", err
	}
	defer release()
	tr, ok := s.handle.(host.Translator)
	if !ok {
		return "", fmt.Errorf("session %s is not a translator", s.key)
	}
	start := time.Now()
	out, err := tr.Translate(ctx, text)
	observeInvocation(s.key.Feature, start, err)
	return out, err
}

func (m *Manager) acquire(ctx context.Context, key Key) (*session, func(), error) {
	s, err := m.ensure(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	release, err := m.admit(ctx, s)
	if err != nil {
		if IsTooBusy(err) {
			ensureFailuresTotal.WithLabelValues(string(key.Feature), "busy").Inc()
		}
		return nil, nil, err
	}
	return s, release, nil
}
