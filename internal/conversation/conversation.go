// Package conversation keeps the in-memory message log and drives each
// message through language detection, summarization and translation.
//
// Every flow runs in its own goroutine and only touches its own message.
// Snapshots returned to callers are copies.
package conversation

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"lingod/internal/events"
	"lingod/internal/host"
	"lingod/internal/status"
	"lingod/pkg/types"
)

const (
	// summarizeMinWords is the word count a message must exceed to be summarizable.
	summarizeMinWords = 150
	// longTextChars marks a message as long text.
	longTextChars = 50
	// maxDetected caps the ranked alternatives kept per message.
	maxDetected = 3

	summarizeLanguage = "en"
	defaultTarget     = "en"
)

// Invoker runs features against host sessions, creating them on demand.
// *manager.Manager implements it.
type Invoker interface {
	Detect(ctx context.Context, text string) ([]host.Detection, error)
	Summarize(ctx context.Context, text string) (any, error)
	Translate(ctx context.Context, source, target, text string) (string, error)
}

// StatusSource reports feature tiers. *status.Board implements it.
type StatusSource interface {
	Status(f host.Feature) status.Status
}

// Config wires a Conversation.
type Config struct {
	Invoker   Invoker
	Status    StatusSource
	Publisher events.Publisher
	Logger    *zerolog.Logger
	// InvokeTimeout bounds each host call. Zero means no timeout.
	InvokeTimeout time.Duration
}

// Conversation is the message log plus its per-message flows.
type Conversation struct {
	mu        sync.RWMutex
	messages  []*types.Message
	index     map[int64]*types.Message
	nextID    int64
	detecting int
	selection types.Selection

	invoker       Invoker
	status        StatusSource
	publisher     events.Publisher
	log           zerolog.Logger
	invokeTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New returns an empty conversation.
func New(cfg Config) *Conversation {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Conversation{
		index:         make(map[int64]*types.Message),
		selection:     types.Selection{Target: defaultTarget},
		invoker:       cfg.Invoker,
		status:        cfg.Status,
		publisher:     events.OrNoop(cfg.Publisher),
		log:           zerolog.Nop(),
		invokeTimeout: cfg.InvokeTimeout,
		ctx:           ctx,
		cancel:        cancel,
	}
	if cfg.Logger != nil {
		c.log = cfg.Logger.With().Str("component", "conversation").Logger()
	}
	return c
}

// Submit appends a message and starts its language detection. It returns
// the message as created, still detecting.
func (c *Conversation) Submit(text string) (types.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return types.Message{}, ErrEmptyText
	}
	c.mu.Lock()
	c.nextID++
	m := &types.Message{
		ID:         c.nextID,
		Text:       text,
		Timestamp:  time.Now(),
		WordCount:  len(strings.Fields(trimmed)),
		IsLongText: utf8.RuneCountInString(text) > longTextChars,
		Language:   types.Language{Detecting: true},
	}
	c.messages = append(c.messages, m)
	c.index[m.ID] = m
	c.detecting++
	detectingGauge.Inc()
	snap := clone(m)
	c.wg.Add(1)
	c.mu.Unlock()

	messagesTotal.Inc()
	c.log.Debug().Int64("id", m.ID).Int("words", snap.WordCount).Msg("message submitted")
	c.publish(events.MessageCreated, m.ID, nil)
	go func() {
		defer c.wg.Done()
		c.detect(m.ID, text)
	}()
	return snap, nil
}

// Messages returns a copy of the log in submission order.
func (c *Conversation) Messages() []types.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.Message, 0, len(c.messages))
	for _, m := range c.messages {
		out = append(out, clone(m))
	}
	return out
}

// Message returns a copy of one message.
func (c *Conversation) Message(id int64) (types.Message, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.index[id]
	if !ok {
		return types.Message{}, ErrMessageNotFound
	}
	return clone(m), nil
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// Busy reports whether any message is still detecting its language.
func (c *Conversation) Busy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.detecting > 0
}

// ToggleSummary flips the summary visibility of a message.
func (c *Conversation) ToggleSummary(id int64) error {
	return c.update(id, "show_summary", func(m *types.Message) { m.ShowSummary = !m.ShowSummary })
}

// ToggleTranslation flips the translation visibility of a message.
func (c *Conversation) ToggleTranslation(id int64) error {
	return c.update(id, "show_translation", func(m *types.Message) { m.ShowTranslation = !m.ShowTranslation })
}

// Selection returns the default translation pair.
func (c *Conversation) Selection() types.Selection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selection
}

// SetSelection replaces the default translation pair. Empty fields keep
// their current value.
func (c *Conversation) SetSelection(sel types.Selection) (types.Selection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.selection
	if sel.Source != "" {
		next.Source = sel.Source
	}
	if sel.Target != "" {
		next.Target = sel.Target
	}
	if next.Source != "" && next.Source == next.Target {
		return c.selection, ErrInvalidTarget
	}
	c.selection = next
	return next, nil
}

// Wait blocks until every started flow has finished.
func (c *Conversation) Wait() { c.wg.Wait() }

// Close cancels outstanding host calls and waits for their flows.
func (c *Conversation) Close() {
	c.cancel()
	c.wg.Wait()
}

func (c *Conversation) update(id int64, change string, fn func(m *types.Message)) error {
	c.mu.Lock()
	m, ok := c.index[id]
	if !ok {
		c.mu.Unlock()
		return ErrMessageNotFound
	}
	fn(m)
	c.mu.Unlock()
	c.publish(events.MessageUpdated, id, map[string]any{"change": change})
	return nil
}

// invokeContext derives the context for one host call.
func (c *Conversation) invokeContext() (context.Context, context.CancelFunc) {
	if c.invokeTimeout > 0 {
		return context.WithTimeout(c.ctx, c.invokeTimeout)
	}
	return context.WithCancel(c.ctx)
}

func (c *Conversation) publish(name string, id int64, fields map[string]any) {
	c.publisher.Publish(events.Event{Name: name, MessageID: id, Fields: fields, Time: time.Now()})
}

func clone(m *types.Message) types.Message {
	out := *m
	if m.Language.AllDetected != nil {
		out.Language.AllDetected = append([]types.DetectedLanguage(nil), m.Language.AllDetected...)
	}
	if m.Translation != nil {
		t := *m.Translation
		out.Translation = &t
	}
	return out
}
