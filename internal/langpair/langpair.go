// Package langpair discovers which translation pairs the host can serve for
// the user's preferred locales.
package langpair

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"lingod/internal/host"
)

// DefaultCandidates is the fixed list of common target languages.
var DefaultCandidates = []string{"en", "es", "fr", "de", "zh", "ja", "ru", "pt", "tr", "hi", "vi", "bn"}

// maxConcurrentQueries bounds parallel pair availability queries.
const maxConcurrentQueries = 4

// Pair is one usable (source, target) combination.
type Pair struct {
	Source       string
	Target       string
	Availability host.Availability
}

// Key returns the "source-target" form used to key translator sessions.
func (p Pair) Key() string { return Key(p.Source, p.Target) }

// Key joins a source and target code.
func Key(source, target string) string { return source + "-" + target }

// Pairs is the ordered discovery result.
type Pairs []Pair

// TargetsFor returns the pairs whose source is source, in discovery order.
func (ps Pairs) TargetsFor(source string) Pairs {
	var out Pairs
	for _, p := range ps {
		if p.Source == source {
			out = append(out, p)
		}
	}
	return out
}

// Find looks up a pair.
func (ps Pairs) Find(source, target string) (Pair, bool) {
	for _, p := range ps {
		if p.Source == source && p.Target == target {
			return p, true
		}
	}
	return Pair{}, false
}

// Availability is the overall translator tier implied by the pairs: no when
// empty, readily when any pair is readily, else after-download.
func (ps Pairs) Availability() host.Availability {
	if len(ps) == 0 {
		return host.No
	}
	for _, p := range ps {
		if p.Availability == host.Readily {
			return host.Readily
		}
	}
	return host.AfterDownload
}

// BaseCode returns the lower-case base language of a locale such as "fr-CA"
// or "pt_BR.UTF-8".
func BaseCode(locale string) string {
	s := strings.TrimSpace(locale)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if s == "" {
		return ""
	}
	if tag, err := language.Parse(s); err == nil {
		if b, conf := tag.Base(); conf != language.No {
			return b.String()
		}
	}
	if i := strings.Index(s, "-"); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(s)
}

// Name returns the English display name of a language code, or the code.
func Name(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if n := display.Languages(language.English).Name(tag); n != "" {
		return n
	}
	return code
}

type query struct {
	source, target string
}

// Discover queries pair availability for every (preferred base, candidate)
// combination with base != candidate and keeps the pairs that are not "no".
// Order follows the nested iteration: preferred locale rank, then candidate
// order. Locales that share a base are only queried once. A failed query
// drops that pair; an unrecognised tier is kept as reported.
func Discover(ctx context.Context, caps host.TranslatorCapabilities, preferred, candidates []string) Pairs {
	if caps == nil {
		return nil
	}
	log := zerolog.Ctx(ctx)
	var qs []query
	seen := make(map[string]bool)
	for _, loc := range preferred {
		base := BaseCode(loc)
		if base == "" || seen[base] {
			continue
		}
		seen[base] = true
		for _, target := range candidates {
			if base == target {
				continue
			}
			qs = append(qs, query{source: base, target: target})
		}
	}

	results := make([]host.Availability, len(qs))
	var g errgroup.Group
	g.SetLimit(maxConcurrentQueries)
	for i, q := range qs {
		g.Go(func() error {
			a, err := caps.LanguagePairAvailable(ctx, q.source, q.target)
			if err != nil {
				log.Warn().Err(err).Str("source", q.source).Str("target", q.target).Msg("langpair event=query_error")
				results[i] = host.No
				return nil
			}
			parsed, ok := host.ParseAvailability(string(a))
			if !ok {
				log.Warn().Str("source", q.source).Str("target", q.target).Str("tier", string(a)).Msg("langpair event=unknown_tier")
				parsed = a
			}
			results[i] = parsed
			return nil
		})
	}
	_ = g.Wait()

	var out Pairs
	for i, q := range qs {
		if results[i] == host.No {
			continue
		}
		out = append(out, Pair{Source: q.source, Target: q.target, Availability: results[i]})
	}
	log.Debug().Int("queried", len(qs)).Int("found", len(out)).Msg("langpair event=discovered")
	return out
}
