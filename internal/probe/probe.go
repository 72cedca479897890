// Package probe queries the host's capability namespaces at startup and
// writes the resulting tiers to the status board.
package probe

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"lingod/internal/events"
	"lingod/internal/host"
	"lingod/internal/langpair"
	"lingod/internal/status"
)

// Result is the outcome of one probe.
type Result struct {
	Statuses map[host.Feature]status.Status
	Pairs    langpair.Pairs
	// DefaultSource is the base code of the first preferred locale when any
	// pair was discovered; empty otherwise.
	DefaultSource string
}

// Prober checks which features the host offers.
type Prober struct {
	Host       host.Host
	Board      *status.Board
	Publisher  events.Publisher
	Preferred  []string
	Candidates []string
	Logger     zerolog.Logger
}

// Probe checks the three namespaces concurrently. Errors are logged and
// mapped to unavailable; they are never returned.
func (p *Prober) Probe(ctx context.Context) Result {
	start := time.Now()
	log := p.Logger.With().Str("component", "probe").Logger()
	ctx = log.WithContext(ctx)

	var (
		detector, summarizer status.Status
		translator           status.Status
		pairs                langpair.Pairs
	)
	var g errgroup.Group
	g.Go(func() error {
		detector = p.tier(ctx, host.LanguageDetectorFeature, p.Host.LanguageDetector)
		return nil
	})
	g.Go(func() error {
		summarizer = p.tier(ctx, host.SummarizerFeature, p.Host.Summarizer)
		return nil
	})
	g.Go(func() error {
		translator, pairs = p.translator(ctx)
		p.set(host.TranslatorFeature, translator)
		return nil
	})
	_ = g.Wait()

	res := Result{
		Statuses: map[host.Feature]status.Status{
			host.LanguageDetectorFeature: detector,
			host.SummarizerFeature:       summarizer,
			host.TranslatorFeature:       translator,
		},
		Pairs: pairs,
	}
	if len(pairs) > 0 && len(p.Preferred) > 0 {
		res.DefaultSource = langpair.BaseCode(p.Preferred[0])
	}
	log.Info().
		Str("languageDetector", string(detector)).
		Str("summarizer", string(summarizer)).
		Str("translator", string(translator)).
		Int("pairs", len(pairs)).
		Dur("elapsed", time.Since(start)).
		Msg("probe done")
	events.OrNoop(p.Publisher).Publish(events.Event{
		Name: events.ProbeDone,
		Fields: map[string]any{
			"pairs":          len(pairs),
			"default_source": res.DefaultSource,
		},
		Time: time.Now(),
	})
	return res
}

// capabilityQuerier is what the detector and summarizer namespaces share.
type capabilityQuerier interface {
	Capabilities(ctx context.Context) (host.Availability, error)
}

func (p *Prober) tier(ctx context.Context, f host.Feature, api capabilityQuerier) status.Status {
	st := status.Unavailable
	if api != nil {
		a, err := api.Capabilities(ctx)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("feature", string(f)).Msg("capability query failed")
		} else if parsed, ok := host.ParseAvailability(string(a)); ok {
			st = status.FromAvailability(parsed)
		} else {
			zerolog.Ctx(ctx).Warn().Str("feature", string(f)).Str("tier", string(a)).Msg("unknown tier")
		}
	}
	p.set(f, st)
	return st
}

func (p *Prober) translator(ctx context.Context) (status.Status, langpair.Pairs) {
	if p.Host.Translator == nil {
		return status.Unavailable, nil
	}
	caps, err := p.Host.Translator.Capabilities(ctx)
	if err != nil || caps == nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("feature", string(host.TranslatorFeature)).Msg("capability query failed")
		return status.Unavailable, nil
	}
	candidates := p.Candidates
	if len(candidates) == 0 {
		candidates = langpair.DefaultCandidates
	}
	pairs := langpair.Discover(ctx, caps, p.Preferred, candidates)
	if len(pairs) == 0 {
		return status.Unavailable, nil
	}
	return status.FromAvailability(pairs.Availability()), pairs
}

func (p *Prober) set(f host.Feature, st status.Status) {
	if p.Board != nil {
		p.Board.Set(f, st)
	}
}
