package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"lingod/internal/common/fsutil"
)

// Config holds runtime parameters for the daemon.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	Addr      string `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format"`
	// Backend selects the host: ollama, openai or mock.
	Backend            string   `json:"backend" yaml:"backend" toml:"backend"`
	PreferredLanguages []string `json:"preferred_languages" yaml:"preferred_languages" toml:"preferred_languages"`
	CandidateLanguages []string `json:"candidate_languages" yaml:"candidate_languages" toml:"candidate_languages"`

	Ollama     OllamaConfig     `json:"ollama" yaml:"ollama" toml:"ollama"`
	OpenAI     OpenAIConfig     `json:"openai" yaml:"openai" toml:"openai"`
	Detector   DetectorConfig   `json:"detector" yaml:"detector" toml:"detector"`
	Summarizer SummarizerConfig `json:"summarizer" yaml:"summarizer" toml:"summarizer"`

	MaxQueueDepth int        `json:"max_queue_depth" yaml:"max_queue_depth" toml:"max_queue_depth"`
	MaxWait       Duration   `json:"max_wait" yaml:"max_wait" toml:"max_wait"`
	InvokeTimeout Duration   `json:"invoke_timeout" yaml:"invoke_timeout" toml:"invoke_timeout"`
	CORS          CORSConfig `json:"cors" yaml:"cors" toml:"cors"`
	MaxBodyBytes  int64      `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
}

// OllamaConfig configures the ollama backend.
type OllamaConfig struct {
	BaseURL string   `json:"base_url" yaml:"base_url" toml:"base_url"`
	Model   string   `json:"model" yaml:"model" toml:"model"`
	Timeout Duration `json:"timeout" yaml:"timeout" toml:"timeout"`
}

// OpenAIConfig configures the OpenAI-compatible backend.
type OpenAIConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`
	APIKey  string `json:"api_key" yaml:"api_key" toml:"api_key"`
	Model   string `json:"model" yaml:"model" toml:"model"`
}

// DetectorConfig configures the embedded language detector.
type DetectorConfig struct {
	Preload   bool     `json:"preload" yaml:"preload" toml:"preload"`
	Languages []string `json:"languages" yaml:"languages" toml:"languages"`
}

// SummarizerConfig holds the options every summarizer session is created with.
type SummarizerConfig struct {
	Type   string `json:"type" yaml:"type" toml:"type"`
	Format string `json:"format" yaml:"format" toml:"format"`
	Length string `json:"length" yaml:"length" toml:"length"`
}

// CORSConfig enables cross-origin access for browser renderers.
type CORSConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
}

// Duration decodes "30s"-style strings in every supported format.
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" {
		d.Duration = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.Duration.String()), nil }

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml. A leading "~" is expanded.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// SearchPaths lists the working-directory files Find looks at, in order.
var SearchPaths = []string{
	"lingod.yaml",
	"lingod.yml",
	"lingod.toml",
	"lingod.json",
}

// userConfigNames are looked up in the per-user config directory.
var userConfigNames = []string{"config.yaml", "config.yml", "config.toml", "config.json"}

// Find returns the first existing file of SearchPaths, then of the user
// config directory, or "".
func Find() string {
	for _, p := range SearchPaths {
		if fsutil.IsFile(p) {
			return p
		}
	}
	dir, err := fsutil.ConfigDir("lingod")
	if err != nil {
		return ""
	}
	for _, name := range userConfigNames {
		if full := filepath.Join(dir, name); fsutil.IsFile(full) {
			return full
		}
	}
	return ""
}
