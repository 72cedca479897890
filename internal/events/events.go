// Package events carries lifecycle notifications from the status board, the
// model manager and the conversation to whoever renders them.
package events

import "time"

// Event names published by lingod components.
const (
	StatusChanged    = "status_changed"
	DownloadProgress = "download_progress"
	EnsureStart      = "ensure_start"
	EnsureCached     = "ensure_cached"
	EnsureReady      = "ensure_ready"
	EnsureError      = "ensure_error"
	MessageCreated   = "message_created"
	MessageUpdated   = "message_updated"
	ProbeDone        = "probe_done"
)

// Event is a lifecycle notification. Minimal and stable: a name, the feature
// or message it concerns, and optional fields.
type Event struct {
	Name      string         `json:"name"`
	Feature   string         `json:"feature,omitempty"`
	MessageID int64          `json:"message_id,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
	Time      time.Time      `json:"time"`
}

// Publisher receives events. Implementations should be lightweight and
// non-blocking; Publish must not panic.
type Publisher interface {
	Publish(Event)
}

// Noop drops every event.
type Noop struct{}

func (Noop) Publish(Event) {}

// OrNoop returns p, or Noop when p is nil.
func OrNoop(p Publisher) Publisher {
	if p == nil {
		return Noop{}
	}
	return p
}
