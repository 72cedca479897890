package manager

import (
	"context"
	"time"

	"lingod/internal/host"
)

// Key identifies one cached session.
type Key struct {
	Feature host.Feature
	// Source and Target are set for translator sessions only.
	Source string
	Target string
}

// DetectorKey is the key of the language detector session.
func DetectorKey() Key { return Key{Feature: host.LanguageDetectorFeature} }

// SummarizerKey is the key of the summarizer session.
func SummarizerKey() Key { return Key{Feature: host.SummarizerFeature} }

// TranslatorKey is the key of the translator session for a pair.
func TranslatorKey(source, target string) Key {
	return Key{Feature: host.TranslatorFeature, Source: source, Target: target}
}

func (k Key) String() string {
	if k.Feature == host.TranslatorFeature {
		return string(k.Feature) + ":" + k.Source + "-" + k.Target
	}
	return string(k.Feature)
}

// readier is the part every host session shares.
type readier interface {
	Ready(ctx context.Context) error
}

// session is a live host session plus its admission slots.
type session struct {
	key       Key
	handle    any
	createdAt time.Time
	lastUsed  time.Time
	uses      uint64
	// Queueing primitives
	genCh   chan struct{} // size 1: single in-flight invocation
	queueCh chan struct{} // buffered: queue slots
}

// SessionInfo is a read-only view of a cached session.
type SessionInfo struct {
	Key           string
	Feature       host.Feature
	CreatedAt     time.Time
	LastUsed      time.Time
	Uses          uint64
	QueueLen      int
	Inflight      int
	MaxQueueDepth int
}
