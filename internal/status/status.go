// Package status keeps the per-feature availability board shared by the
// prober, the model manager and the conversation.
package status

import (
	"sync"
	"time"

	"lingod/internal/events"
	"lingod/internal/host"
)

// Status is the availability tier of a feature as seen by lingod.
type Status string

const (
	Checking      Status = "checking"
	Readily       Status = "readily"
	AfterDownload Status = "after-download"
	Unavailable   Status = "unavailable"
	No            Status = "no"
)

// FromAvailability maps a host tier 1:1. Anything unrecognised is unavailable.
func FromAvailability(a host.Availability) Status {
	switch a {
	case host.Readily:
		return Readily
	case host.AfterDownload:
		return AfterDownload
	case host.No:
		return No
	}
	return Unavailable
}

// Usable reports whether the feature can produce a session (possibly after a download).
func (s Status) Usable() bool { return s == Readily || s == AfterDownload }

// Retryable reports whether a failed model load for a feature in this tier
// may be retried by the user.
func (s Status) Retryable() bool { return s == Readily || s == AfterDownload }

// Record is a read-only projection of one feature's state.
type Record struct {
	Feature   host.Feature
	Status    Status
	Retryable bool
	Progress  *host.DownloadProgress
	LastError string
	UpdatedAt time.Time
}

// Board holds one record per feature.
type Board struct {
	mu        sync.RWMutex
	records   map[host.Feature]*Record
	publisher events.Publisher
}

// NewBoard returns a board with every feature in the checking state.
func NewBoard(pub events.Publisher) *Board {
	b := &Board{records: make(map[host.Feature]*Record), publisher: events.OrNoop(pub)}
	now := time.Now()
	for _, f := range host.Features {
		b.records[f] = &Record{Feature: f, Status: Checking, UpdatedAt: now}
	}
	return b
}

func (b *Board) record(f host.Feature) *Record {
	r, ok := b.records[f]
	if !ok {
		r = &Record{Feature: f, Status: Checking}
		b.records[f] = r
	}
	return r
}

// Status returns the current tier of f.
func (b *Board) Status(f host.Feature) Status {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if r, ok := b.records[f]; ok {
		return r.Status
	}
	return Checking
}

// Get returns a copy of f's record.
func (b *Board) Get(f host.Feature) Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	return copyRecord(b.record(f))
}

// Set moves f to s and clears the last error.
func (b *Board) Set(f host.Feature, s Status) {
	b.mu.Lock()
	r := b.record(f)
	prev := r.Status
	r.Status = s
	r.Retryable = s.Retryable()
	r.LastError = ""
	r.UpdatedAt = time.Now()
	b.mu.Unlock()
	if prev != s {
		b.publisher.Publish(events.Event{Name: events.StatusChanged, Feature: string(f), Fields: map[string]any{"from": string(prev), "to": string(s)}, Time: time.Now()})
	}
}

// Fail regresses f to unavailable and records err.
func (b *Board) Fail(f host.Feature, err error) {
	b.mu.Lock()
	r := b.record(f)
	prev := r.Status
	r.Status = Unavailable
	r.Retryable = false
	r.LastError = ""
	if err != nil {
		r.LastError = err.Error()
	}
	r.UpdatedAt = time.Now()
	b.mu.Unlock()
	if prev != Unavailable {
		b.publisher.Publish(events.Event{Name: events.StatusChanged, Feature: string(f), Fields: map[string]any{"from": string(prev), "to": string(Unavailable)}, Time: time.Now()})
	}
}

// RecordError notes a failed model load without touching the tier.
func (b *Board) RecordError(f host.Feature, err error) {
	if err == nil {
		return
	}
	b.mu.Lock()
	r := b.record(f)
	r.LastError = err.Error()
	r.UpdatedAt = time.Now()
	b.mu.Unlock()
}

// SetProgress replaces f's download progress.
func (b *Board) SetProgress(f host.Feature, p host.DownloadProgress) {
	b.mu.Lock()
	r := b.record(f)
	r.Progress = &host.DownloadProgress{Loaded: p.Loaded, Total: p.Total}
	r.UpdatedAt = time.Now()
	b.mu.Unlock()
	b.publisher.Publish(events.Event{Name: events.DownloadProgress, Feature: string(f), Fields: map[string]any{"loaded": p.Loaded, "total": p.Total}, Time: time.Now()})
}

// ClearProgress removes f's download progress.
func (b *Board) ClearProgress(f host.Feature) {
	b.mu.Lock()
	r := b.record(f)
	had := r.Progress != nil
	r.Progress = nil
	b.mu.Unlock()
	if had {
		b.publisher.Publish(events.Event{Name: events.DownloadProgress, Feature: string(f), Fields: map[string]any{"cleared": true}, Time: time.Now()})
	}
}

// Snapshot returns copies of every record in feature display order.
func (b *Board) Snapshot() []Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Record, 0, len(host.Features))
	for _, f := range host.Features {
		out = append(out, copyRecord(b.record(f)))
	}
	return out
}

func copyRecord(r *Record) Record {
	c := *r
	if r.Progress != nil {
		p := *r.Progress
		c.Progress = &p
	}
	return c
}
