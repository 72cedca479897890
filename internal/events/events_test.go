package events

import (
	"sync"
	"testing"
	"time"
)

func TestHubFanOut(t *testing.T) {
	h := NewHub(4)
	a, cancelA := h.Subscribe()
	b, cancelB := h.Subscribe()
	defer cancelA()
	defer cancelB()
	if h.Subscribers() != 2 {
		t.Fatalf("expected 2 subscribers, got %d", h.Subscribers())
	}

	h.Publish(Event{Name: ProbeDone})
	for _, ch := range []<-chan Event{a, b} {
		select {
		case e := <-ch:
			if e.Name != ProbeDone || e.Time.IsZero() {
				t.Fatalf("unexpected event %+v", e)
			}
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}

func TestHubDropsForSlowSubscriber(t *testing.T) {
	h := NewHub(1)
	ch, cancel := h.Subscribe()
	defer cancel()
	h.Publish(Event{Name: "first"})
	h.Publish(Event{Name: "second"})
	if e := <-ch; e.Name != "first" {
		t.Fatalf("got %q", e.Name)
	}
	select {
	case e := <-ch:
		t.Fatalf("second event should have been dropped, got %q", e.Name)
	default:
	}
}

func TestHubCancelAndClose(t *testing.T) {
	h := NewHub(0)
	ch, cancel := h.Subscribe()
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatal("canceled subscriber channel should be closed")
	}

	live, _ := h.Subscribe()
	h.Close()
	h.Close()
	if _, ok := <-live; ok {
		t.Fatal("Close should close subscriber channels")
	}
	late, _ := h.Subscribe()
	if _, ok := <-late; ok {
		t.Fatal("subscribing after Close should yield a closed channel")
	}
	h.Publish(Event{Name: "ignored"})
}

func TestHubConcurrentPublish(t *testing.T) {
	h := NewHub(1000)
	ch, cancel := h.Subscribe()
	defer cancel()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				h.Publish(Event{Name: MessageUpdated})
			}
		}()
	}
	wg.Wait()
	if got := len(ch); got != 500 {
		t.Fatalf("expected 500 buffered events, got %d", got)
	}
}

func TestMultiAndMemory(t *testing.T) {
	a, b := NewMemoryPublisher(), NewMemoryPublisher()
	m := Multi{a, nil, b}
	m.Publish(Event{Name: StatusChanged, Feature: "summarizer"})
	m.Publish(Event{Name: ProbeDone})
	for _, p := range []*MemoryPublisher{a, b} {
		if len(p.Events()) != 2 {
			t.Fatalf("expected 2 events, got %d", len(p.Events()))
		}
		if got := p.Named(StatusChanged); len(got) != 1 || got[0].Feature != "summarizer" {
			t.Fatalf("unexpected named events %+v", got)
		}
	}
}

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(Noop); !ok {
		t.Fatal("nil publisher should become Noop")
	}
	p := NewMemoryPublisher()
	if OrNoop(p) != Publisher(p) {
		t.Fatal("non-nil publisher should pass through")
	}
	Noop{}.Publish(Event{Name: "x"})
}
