package manager

import (
	"context"
	"time"
)

// admit reserves a queue slot and then the single in-flight slot of s.
// Only a full queue is rejected as too busy: a caller holding a queue slot
// waits for its turn until ctx ends, however long the call ahead takes.
// Returns a release func to be deferred.
func (m *Manager) admit(ctx context.Context, s *session) (func(), error) {
	if err := ctx.Err(); err != nil {
		return func() {}, err
	}
	if err := m.reserveQueue(ctx, s); err != nil {
		return func() {}, err
	}
	select {
	case s.genCh <- struct{}{}:
		m.mu.Lock()
		s.lastUsed = time.Now()
		s.uses++
		m.mu.Unlock()
		return func() { <-s.genCh; <-s.queueCh }, nil
	case <-ctx.Done():
		<-s.queueCh
		return func() {}, ctx.Err()
	}
}

// reserveQueue takes a queue slot. A full queue is rejected as too busy at
// once, or after waiting up to maxWait for room when maxWait is set.
func (m *Manager) reserveQueue(ctx context.Context, s *session) error {
	select {
	case s.queueCh <- struct{}{}:
		return nil
	default:
	}
	if m.maxWait <= 0 {
		return tooBusyError{key: s.key.String()}
	}
	timer := time.NewTimer(m.maxWait)
	defer timer.Stop()
	select {
	case s.queueCh <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return tooBusyError{key: s.key.String()}
	}
}
