package config

import (
	"fmt"
	"strings"
	"time"
)

// Defaults applied by WithDefaults.
const (
	DefaultAddr          = ":8080"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultBackend       = "ollama"
	DefaultOllamaURL     = "http://127.0.0.1:11434"
	DefaultOllamaModel   = "llama3.2"
	DefaultOllamaTimeout = 2 * time.Minute
	DefaultMaxQueueDepth = 32
	DefaultMaxWait       = time.Duration(0) // reject a full queue at once
	DefaultMaxBodyBytes  = 1 << 20
)

var (
	backends       = []string{"ollama", "openai", "mock"}
	summaryTypes   = []string{"key-points", "tl;dr", "teaser", "headline"}
	summaryFormats = []string{"markdown", "plain-text", "json"}
	summaryLengths = []string{"short", "medium", "long"}
	logFormats     = []string{"console", "json"}
)

// WithDefaults returns a copy of c with unspecified fields filled in.
func (c Config) WithDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
	if c.Ollama.BaseURL == "" {
		c.Ollama.BaseURL = DefaultOllamaURL
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = DefaultOllamaModel
	}
	if c.Ollama.Timeout.Duration <= 0 {
		c.Ollama.Timeout.Duration = DefaultOllamaTimeout
	}
	if c.Summarizer.Type == "" {
		c.Summarizer.Type = "key-points"
	}
	if c.Summarizer.Format == "" {
		c.Summarizer.Format = "markdown"
	}
	if c.Summarizer.Length == "" {
		c.Summarizer.Length = "medium"
	}
	if c.MaxQueueDepth <= 0 {
		c.MaxQueueDepth = DefaultMaxQueueDepth
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return c
}

// Validate rejects values no component can work with.
func (c Config) Validate() error {
	if err := oneOf("backend", c.Backend, backends); err != nil {
		return err
	}
	if err := oneOf("log_format", c.LogFormat, logFormats); err != nil {
		return err
	}
	if err := oneOf("summarizer.type", c.Summarizer.Type, summaryTypes); err != nil {
		return err
	}
	if err := oneOf("summarizer.format", c.Summarizer.Format, summaryFormats); err != nil {
		return err
	}
	if err := oneOf("summarizer.length", c.Summarizer.Length, summaryLengths); err != nil {
		return err
	}
	if c.InvokeTimeout.Duration < 0 {
		return fmt.Errorf("invoke_timeout must not be negative")
	}
	if c.MaxWait.Duration < 0 {
		return fmt.Errorf("max_wait must not be negative")
	}
	return nil
}

func oneOf(field, v string, allowed []string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q (want one of %s)", field, v, strings.Join(allowed, ", "))
}
