package conversation

import "errors"

var (
	// ErrEmptyText is returned by Submit for empty or whitespace-only text.
	ErrEmptyText = errors.New("message text is empty")
	// ErrMessageNotFound is returned for an unknown message id.
	ErrMessageNotFound = errors.New("message not found")
	// ErrInProgress is returned when the same flow is already running for a message.
	ErrInProgress = errors.New("operation already in progress")
	// ErrNotDetected is returned when a flow needs the message's language first.
	ErrNotDetected = errors.New("language not detected yet")
	// ErrInvalidTarget is returned for an empty target or one equal to the source.
	ErrInvalidTarget = errors.New("invalid target language")
)

// Fallback messages stored on a message when a flow fails without an error text.
const (
	summaryFailed     = "Failed to generate summary"
	translationFailed = "Failed to translate text"
)

func errorText(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
