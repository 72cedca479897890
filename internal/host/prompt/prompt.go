// Package prompt builds the instructions chat-model backends send along with
// summarization and translation requests.
package prompt

import (
	"fmt"
	"strings"

	"lingod/internal/host"
	"lingod/internal/langpair"
)

var typeInstructions = map[string]string{
	"key-points": "Summarize the text as a list of its key points.",
	"tl;dr":      "Give a short, to-the-point overview of the text.",
	"teaser":     "Write an intriguing teaser that makes the reader want to read the full text.",
	"headline":   "Write a single headline that captures the main point of the text.",
}

var lengthInstructions = map[string]string{
	"short":  "Keep it very brief: at most 3 bullet points or one sentence.",
	"medium": "Keep it moderately brief: at most 5 bullet points or a short paragraph.",
	"long":   "Be thorough: at most 7 bullet points or one paragraph.",
}

// Summary returns the system instructions for a summarizer session.
func Summary(opts host.SummarizerOptions) string {
	var b strings.Builder
	if s, ok := typeInstructions[opts.Type]; ok {
		b.WriteString(s)
	} else {
		b.WriteString(typeInstructions["key-points"])
	}
	b.WriteByte(' ')
	if s, ok := lengthInstructions[opts.Length]; ok {
		b.WriteString(s)
	} else {
		b.WriteString(lengthInstructions["medium"])
	}
	switch opts.Format {
	case "plain-text":
		b.WriteString(" Reply in plain text without any markup.")
	case "json":
		b.WriteString(` Reply with a JSON object of the form {"summary": "..."}.`)
	default:
		b.WriteString(" Format the reply as Markdown.")
	}
	b.WriteString(" Reply with the summary only.")
	return b.String()
}

// Translation returns the system instructions for a translator session.
func Translation(source, target string) string {
	return fmt.Sprintf(
		"Translate the user's text from %s (%s) to %s (%s). Preserve meaning, tone and formatting. Reply with the translation only.",
		langpair.Name(source), source, langpair.Name(target), target,
	)
}
