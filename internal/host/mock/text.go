package mock

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"lingod/internal/host"
)

var stopwords = map[string][]string{
	"en": {"the", "and", "is", "of", "to", "in", "it", "that", "hello", "world", "this", "with"},
	"fr": {"le", "la", "les", "et", "est", "de", "un", "une", "bonjour", "monde", "je", "pas"},
	"es": {"el", "los", "las", "y", "es", "de", "un", "una", "hola", "mundo", "que", "por"},
	"de": {"der", "die", "das", "und", "ist", "nicht", "ein", "eine", "hallo", "welt", "ich", "mit"},
}

// Guess ranks languages by stopword hits. It returns no candidates when
// nothing matches.
func Guess(text string) ([]host.Detection, error) {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) == 0 {
		return nil, nil
	}
	hits := make(map[string]int)
	total := 0
	for _, w := range words {
		for code, list := range stopwords {
			for _, sw := range list {
				if w == sw {
					hits[code]++
					total++
				}
			}
		}
	}
	if total == 0 {
		return nil, nil
	}
	out := make([]host.Detection, 0, len(hits))
	for code, n := range hits {
		out = append(out, host.Detection{Language: code, Confidence: float64(n) / float64(total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence == out[j].Confidence {
			return out[i].Language < out[j].Language
		}
		return out[i].Confidence > out[j].Confidence
	})
	return out, nil
}

// Lead returns the first n sentences of text as "- " bullet points.
func Lead(text string, n int) string {
	var b strings.Builder
	count := 0
	start := 0
	flush := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if count > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(s)
		count++
	}
	for i, r := range text {
		if count >= n {
			break
		}
		if r == '.' || r == '!' || r == '?' {
			flush(text[start : i+1])
			start = i + 1
		}
	}
	if count < n && start < len(text) {
		flush(text[start:])
	}
	return b.String()
}

// Tag marks text as translated from source to target.
func Tag(source, target, text string) string {
	return fmt.Sprintf("[%s→%s] %s", source, target, strings.TrimSpace(text))
}
