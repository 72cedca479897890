// Package host defines the on-device AI capability surface that lingod
// orchestrates. A Host bundles up to three feature namespaces (language
// detection, summarization, translation); a nil namespace means the feature is
// absent on this machine.
//
// Backends live in subpackages:
//
//   - ollama: summarizer/translator on a local Ollama daemon, with model pulls.
//   - openaicompat: summarizer/translator on any OpenAI-compatible local server.
//   - lingua: embedded on-device language detector.
//   - mock: scripted namespaces for tests and demos.
package host

import (
	"context"
	"strings"
)

// Availability is the tier reported by a capability query.
type Availability string

const (
	Readily       Availability = "readily"
	AfterDownload Availability = "after-download"
	No            Availability = "no"
)

// ParseAvailability maps a host-reported tier string. Unknown strings are not ok.
func ParseAvailability(s string) (Availability, bool) {
	switch Availability(strings.ToLower(strings.TrimSpace(s))) {
	case Readily:
		return Readily, true
	case AfterDownload:
		return AfterDownload, true
	case No:
		return No, true
	}
	return "", false
}

// Feature names one of the three capability namespaces.
type Feature string

const (
	LanguageDetectorFeature Feature = "languageDetector"
	SummarizerFeature       Feature = "summarizer"
	TranslatorFeature       Feature = "translator"
)

// Features lists every feature in display order.
var Features = []Feature{LanguageDetectorFeature, SummarizerFeature, TranslatorFeature}

// ParseFeature accepts the canonical names and a few dashed aliases.
func ParseFeature(s string) (Feature, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "languagedetector", "language-detector", "detector":
		return LanguageDetectorFeature, true
	case "summarizer":
		return SummarizerFeature, true
	case "translator":
		return TranslatorFeature, true
	}
	return "", false
}

// DownloadProgress is one model download progress event.
type DownloadProgress struct {
	Loaded int64
	Total  int64
}

// Monitor receives download progress while a session is being created.
type Monitor func(DownloadProgress)

// Detection is one ranked language candidate.
type Detection struct {
	Language   string
	Confidence float64
}

// DetectorOptions configures a language detector session.
type DetectorOptions struct {
	Monitor Monitor
}

// LanguageDetectorAPI is the language detection namespace.
type LanguageDetectorAPI interface {
	Capabilities(ctx context.Context) (Availability, error)
	Create(ctx context.Context, opts DetectorOptions) (LanguageDetector, error)
}

// LanguageDetector is a created detection session.
type LanguageDetector interface {
	// Ready blocks until the session's model is usable.
	Ready(ctx context.Context) error
	// Detect returns candidates ordered by descending confidence.
	Detect(ctx context.Context, text string) ([]Detection, error)
}

// SummarizerOptions configures a summarizer session.
type SummarizerOptions struct {
	// Presentation type, e.g. key-points, tl;dr, teaser, headline.
	Type string
	// Output format, e.g. markdown or plain-text.
	Format string
	// Target length: short, medium or long.
	Length  string
	Monitor Monitor
}

// SummarizerAPI is the summarization namespace.
type SummarizerAPI interface {
	Capabilities(ctx context.Context) (Availability, error)
	Create(ctx context.Context, opts SummarizerOptions) (Summarizer, error)
}

// Summarizer is a created summarization session. Summarize may return a
// string, a structured value carrying a "summary" string, or anything else.
type Summarizer interface {
	Ready(ctx context.Context) error
	Summarize(ctx context.Context, text string) (any, error)
}

// TranslatorOptions configures a translator session for one language pair.
type TranslatorOptions struct {
	Source  string
	Target  string
	Monitor Monitor
}

// TranslatorCapabilities is the result of a translator capability query.
type TranslatorCapabilities interface {
	Available() Availability
	LanguagePairAvailable(ctx context.Context, source, target string) (Availability, error)
}

// TranslatorAPI is the translation namespace.
type TranslatorAPI interface {
	Capabilities(ctx context.Context) (TranslatorCapabilities, error)
	Create(ctx context.Context, opts TranslatorOptions) (Translator, error)
}

// Translator is a created translation session bound to one pair.
type Translator interface {
	Ready(ctx context.Context) error
	Translate(ctx context.Context, text string) (string, error)
}

// Host bundles the namespaces available on this machine.
type Host struct {
	LanguageDetector LanguageDetectorAPI
	Summarizer       SummarizerAPI
	Translator       TranslatorAPI
}
