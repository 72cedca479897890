package manager

import (
	"errors"
	"fmt"

	"lingod/internal/host"
	"lingod/internal/status"
)

// ErrClosed is returned once the manager has released its sessions.
var ErrClosed = errors.New("manager closed")

// tooBusyError signals queue timeout/overflow for 429 mapping.
type tooBusyError struct{ key string }

func (e tooBusyError) Error() string { return "too busy: " + e.key }

// IsTooBusy reports whether err indicates backpressure (return 429).
func IsTooBusy(err error) bool {
	var e tooBusyError
	return errors.As(err, &e)
}

// featureUnavailableError is returned when a session is requested for a
// feature whose tier cannot produce one.
type featureUnavailableError struct {
	feature host.Feature
	status  status.Status
}

func (e featureUnavailableError) Error() string {
	return fmt.Sprintf("feature %s unavailable (status %s)", e.feature, e.status)
}

// ErrFeatureUnavailable constructs a featureUnavailableError.
func ErrFeatureUnavailable(f host.Feature, s status.Status) error {
	return featureUnavailableError{feature: f, status: s}
}

// IsFeatureUnavailable reports whether err indicates an unusable feature (return 503).
func IsFeatureUnavailable(err error) bool {
	var e featureUnavailableError
	return errors.As(err, &e)
}
