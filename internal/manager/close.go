package manager

import (
	"errors"
	"io"
)

// Close cancels in-flight loads and releases every cached session that
// holds resources. Later ensures fail with ErrClosed.
func (m *Manager) Close() error {
	m.cancel()
	m.mu.Lock()
	m.closed = true
	sessions := m.sessions
	m.sessions = make(map[string]*session)
	m.mu.Unlock()

	var errs []error
	for k, s := range sessions {
		if c, ok := s.handle.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
				m.log.Warn().Err(err).Str("key", k).Msg("close session")
			}
		}
	}
	return errors.Join(errs...)
}
