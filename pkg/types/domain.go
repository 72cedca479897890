package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Language wire markers used while a message has no detection result.
const (
	LanguageDetecting = "detecting..."
	LanguageUnknown   = "unknown"
)

// DetectedLanguage is one ranked candidate returned by the language detector.
type DetectedLanguage struct {
	// ISO 639-1 code of the candidate.
	// example: fr
	Code string `json:"code" example:"fr"`
	// Confidence in [0,1].
	// example: 0.97
	Confidence float64 `json:"confidence" example:"0.97"`
}

// Language is the detection state of a message. On the wire it is either the
// string "detecting...", the string "unknown", or an object carrying the top
// candidate and up to three ranked alternatives.
type Language struct {
	Detecting   bool               `json:"-"`
	Code        string             `json:"code,omitempty"`
	Confidence  float64            `json:"confidence"`
	AllDetected []DetectedLanguage `json:"allDetected,omitempty"`
}

// Detected reports whether the language carries a detection result.
func (l Language) Detected() bool { return !l.Detecting && l.Code != "" }

func (l Language) MarshalJSON() ([]byte, error) {
	switch {
	case l.Detecting:
		return json.Marshal(LanguageDetecting)
	case l.Code == "":
		return json.Marshal(LanguageUnknown)
	}
	type plain Language
	return json.Marshal(plain(l))
}

func (l *Language) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		switch s {
		case LanguageDetecting:
			*l = Language{Detecting: true}
		case LanguageUnknown:
			*l = Language{}
		default:
			return fmt.Errorf("unexpected language marker %q", s)
		}
		return nil
	}
	type plain Language
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*l = Language(p)
	return nil
}

// Translation is the latest translation stored on a message.
type Translation struct {
	// example: Hello world
	Text string `json:"text" example:"Hello world"`
	// example: fr
	Source string `json:"source" example:"fr"`
	// example: en
	Target string `json:"target" example:"en"`
}

// Message is the wire view of one conversation entry.
type Message struct {
	// Monotonic message identifier (1-based).
	// example: 1
	ID        int64     `json:"id" example:"1"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	// example: 3
	WordCount  int      `json:"wordCount" example:"3"`
	IsLongText bool     `json:"isLongText"`
	Language   Language `json:"language"`
	// Decided once, right after language detection.
	CanSummarize bool `json:"canSummarize"`

	Summary             string `json:"summary,omitempty"`
	SummaryShape        string `json:"summaryShape,omitempty"`
	SummaryError        bool   `json:"summaryError,omitempty"`
	SummaryErrorMessage string `json:"summaryErrorMessage,omitempty"`
	IsSummarizing       bool   `json:"isSummarizing"`
	ShowSummary         bool   `json:"showSummary"`

	Translation             *Translation `json:"translation,omitempty"`
	TranslationError        bool         `json:"translationError,omitempty"`
	TranslationErrorMessage string       `json:"translationErrorMessage,omitempty"`
	IsTranslating           bool         `json:"isTranslating"`
	ShowTranslation         bool         `json:"showTranslation"`
}

// DownloadProgress reports model download progress for a feature.
type DownloadProgress struct {
	// example: 42
	Loaded int64 `json:"loaded" example:"42"`
	// example: 100
	Total int64 `json:"total" example:"100"`
}

// FeatureStatus is the availability record of one host feature.
type FeatureStatus struct {
	// Feature name: languageDetector, summarizer or translator.
	// example: summarizer
	Feature string `json:"feature" example:"summarizer"`
	// One of checking, readily, after-download, unavailable, no.
	// example: after-download
	Status string `json:"status" example:"after-download"`
	// Whether a failed model load may be retried.
	// example: true
	Retryable bool              `json:"retryable" example:"true"`
	Progress  *DownloadProgress `json:"progress,omitempty"`
	LastError string            `json:"lastError,omitempty"`
}

// LanguagePair is a discovered translation pair.
type LanguagePair struct {
	// example: fr
	Source string `json:"source" example:"fr"`
	// example: en
	Target string `json:"target" example:"en"`
	// example: readily
	Availability string `json:"availability" example:"readily"`
	SourceName   string `json:"sourceName,omitempty"`
	TargetName   string `json:"targetName,omitempty"`
}

// Selection is the default translation pair used by model downloads.
type Selection struct {
	// example: fr
	Source string `json:"source" example:"fr"`
	// example: en
	Target string `json:"target" example:"en"`
}
