package types

// SubmitRequest is the payload of POST /messages.
type SubmitRequest struct {
	// Message text. Empty or whitespace-only text is rejected.
	// example: Bonjour le monde
	Text string `json:"text" example:"Bonjour le monde"`
}

// TranslateRequest is the payload of POST /messages/{id}/translation.
type TranslateRequest struct {
	// Target language code.
	// example: en
	Target string `json:"target" example:"en"`
}

// MessagesResponse wraps the conversation log returned by GET /messages.
type MessagesResponse struct {
	Messages []Message `json:"messages"`
}

// LanguagesResponse is returned by GET /languages.
type LanguagesResponse struct {
	Pairs     []LanguagePair `json:"pairs"`
	Selection Selection      `json:"selection"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Per-feature availability records.
	Features []FeatureStatus `json:"features"`
	// Number of discovered translation pairs.
	// example: 4
	PairCount int       `json:"pair_count" example:"4"`
	Selection Selection `json:"selection"`
	// Number of messages in the log.
	// example: 2
	MessageCount int `json:"message_count" example:"2"`
	// Number of live host sessions.
	// example: 1
	Sessions int `json:"sessions" example:"1"`
	// True while any message is still detecting its language.
	Busy bool `json:"busy"`
	// Whether startup probing finished.
	Probed bool `json:"probed"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}

// AcceptedResponse acknowledges an asynchronous operation.
type AcceptedResponse struct {
	// example: accepted
	Status string `json:"status" example:"accepted"`
	// Message the operation applies to, when any.
	// example: 1
	MessageID int64 `json:"message_id,omitempty" example:"1"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
