// Package backend assembles the host capability surface selected by the
// configuration.
package backend

import (
	"fmt"

	"github.com/rs/zerolog"

	"lingod/internal/config"
	"lingod/internal/host"
	"lingod/internal/host/lingua"
	"lingod/internal/host/mock"
	"lingod/internal/host/ollama"
	"lingod/internal/host/openaicompat"
)

// Names of the supported backends.
const (
	Ollama = "ollama"
	OpenAI = "openai"
	Mock   = "mock"
)

// New builds the host for cfg.Backend. The ollama and openai backends pair
// their remote summarizer and translator with the embedded lingua detector.
func New(cfg config.Config, log zerolog.Logger) (host.Host, error) {
	switch cfg.Backend {
	case Mock:
		log.Info().Str("backend", Mock).Msg("using scripted demo host")
		return mock.Demo().Host(), nil
	case Ollama, "":
		det, err := detector(cfg)
		if err != nil {
			return host.Host{}, err
		}
		b := ollama.New(ollama.Config{
			BaseURL:   cfg.Ollama.BaseURL,
			Model:     cfg.Ollama.Model,
			Timeout:   cfg.Ollama.Timeout.Duration,
			Languages: cfg.CandidateLanguages,
		})
		log.Info().Str("backend", Ollama).Str("url", cfg.Ollama.BaseURL).Str("model", cfg.Ollama.Model).Msg("host assembled")
		return host.Host{LanguageDetector: det, Summarizer: b.Summarizer(), Translator: b.Translator()}, nil
	case OpenAI:
		det, err := detector(cfg)
		if err != nil {
			return host.Host{}, err
		}
		b := openaicompat.New(openaicompat.Config{
			BaseURL:   cfg.OpenAI.BaseURL,
			APIKey:    cfg.OpenAI.APIKey,
			Model:     cfg.OpenAI.Model,
			Languages: cfg.CandidateLanguages,
		})
		log.Info().Str("backend", OpenAI).Str("url", cfg.OpenAI.BaseURL).Str("model", cfg.OpenAI.Model).Msg("host assembled")
		return host.Host{LanguageDetector: det, Summarizer: b.Summarizer(), Translator: b.Translator()}, nil
	}
	return host.Host{}, fmt.Errorf("unknown backend %q", cfg.Backend)
}

func detector(cfg config.Config) (host.LanguageDetectorAPI, error) {
	d, err := lingua.New(lingua.Config{Languages: cfg.Detector.Languages, Preload: cfg.Detector.Preload})
	if err != nil {
		return nil, fmt.Errorf("language detector: %w", err)
	}
	return d, nil
}
