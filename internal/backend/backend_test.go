package backend

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingod/internal/config"
)

func TestNew_Mock(t *testing.T) {
	h, err := New(config.Config{Backend: Mock}, zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, h.LanguageDetector)
	assert.NotNil(t, h.Summarizer)
	assert.NotNil(t, h.Translator)
}

func TestNew_RemoteBackendsUseEmbeddedDetector(t *testing.T) {
	for _, name := range []string{Ollama, OpenAI} {
		t.Run(name, func(t *testing.T) {
			cfg := config.Config{Backend: name, Detector: config.DetectorConfig{Languages: []string{"en", "fr"}}}.WithDefaults()
			h, err := New(cfg, zerolog.Nop())
			require.NoError(t, err)
			assert.NotNil(t, h.LanguageDetector)
			assert.NotNil(t, h.Summarizer)
			assert.NotNil(t, h.Translator)
		})
	}
}

func TestNew_BadDetectorLanguages(t *testing.T) {
	cfg := config.Config{Backend: Ollama, Detector: config.DetectorConfig{Languages: []string{"xx"}}}
	_, err := New(cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(config.Config{Backend: "gpu"}, zerolog.Nop())
	assert.ErrorContains(t, err, "unknown backend")
}
