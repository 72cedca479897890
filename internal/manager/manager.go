package manager

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"lingod/internal/events"
	"lingod/internal/host"
	"lingod/internal/status"
)

// Manager creates, caches and invokes host sessions.
type Manager struct {
	mu        sync.RWMutex
	host      host.Host
	board     *status.Board
	publisher events.Publisher
	log       zerolog.Logger
	summarize host.SummarizerOptions

	sessions map[string]*session
	// loads coalesces concurrent ensures per Key.String().
	loads  singleflight.Group
	closed bool

	maxQueueDepth    int
	maxWait          time.Duration
	pairAvailability func(source, target string) (host.Availability, bool)
	startTime        time.Time

	// ctx scopes session loads; it is canceled by Close only.
	ctx    context.Context
	cancel context.CancelFunc
}

// Board returns the status board the manager reports into.
func (m *Manager) Board() *status.Board { return m.board }

// Has reports whether a session for key is cached.
func (m *Manager) Has(key Key) bool { return m.lookup(key) != nil }

// SessionCount returns the number of cached sessions.
func (m *Manager) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sessions returns a stable, key-ordered view of cached sessions.
func (m *Manager) Sessions() []SessionInfo {
	m.mu.RLock()
	out := make([]SessionInfo, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, SessionInfo{
			Key:           s.key.String(),
			Feature:       s.key.Feature,
			CreatedAt:     s.createdAt,
			LastUsed:      s.lastUsed,
			Uses:          s.uses,
			QueueLen:      len(s.queueCh),
			Inflight:      len(s.genCh),
			MaxQueueDepth: m.maxQueueDepth,
		})
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Uptime returns the time since construction.
func (m *Manager) Uptime() time.Duration { return time.Since(m.startTime) }

func (m *Manager) lookup(key Key) *session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[key.String()]
}

func (m *Manager) publish(name string, key Key, fields map[string]any) {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["key"] = key.String()
	m.publisher.Publish(events.Event{Name: name, Feature: string(key.Feature), Fields: fields, Time: time.Now()})
}
