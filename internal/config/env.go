package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides c with LINGOD_* variables. Unset or empty variables
// leave the field alone.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(k string) (string, bool) {
		v, ok := lookup(k)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	str := func(k string, dst *string) {
		if v, ok := get(k); ok {
			*dst = v
		}
	}
	str("LINGOD_ADDR", &c.Addr)
	str("LINGOD_LOG_LEVEL", &c.LogLevel)
	str("LINGOD_LOG_FORMAT", &c.LogFormat)
	str("LINGOD_BACKEND", &c.Backend)
	str("LINGOD_OLLAMA_URL", &c.Ollama.BaseURL)
	str("LINGOD_OLLAMA_MODEL", &c.Ollama.Model)
	str("LINGOD_OPENAI_BASE_URL", &c.OpenAI.BaseURL)
	str("LINGOD_OPENAI_API_KEY", &c.OpenAI.APIKey)
	str("LINGOD_OPENAI_MODEL", &c.OpenAI.Model)
	str("LINGOD_SUMMARY_TYPE", &c.Summarizer.Type)
	if v, ok := get("LINGOD_PREFERRED_LANGUAGES"); ok {
		c.PreferredLanguages = SplitCSV(v)
	}
	if v, ok := get("LINGOD_CANDIDATE_LANGUAGES"); ok {
		c.CandidateLanguages = SplitCSV(v)
	}
	if v, ok := get("LINGOD_DETECTOR_PRELOAD"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LINGOD_DETECTOR_PRELOAD: %w", err)
		}
		c.Detector.Preload = b
	}
	if v, ok := get("LINGOD_MAX_QUEUE_DEPTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LINGOD_MAX_QUEUE_DEPTH: %w", err)
		}
		c.MaxQueueDepth = n
	}
	for k, dst := range map[string]*Duration{
		"LINGOD_MAX_WAIT":       &c.MaxWait,
		"LINGOD_INVOKE_TIMEOUT": &c.InvokeTimeout,
		"LINGOD_OLLAMA_TIMEOUT": &c.Ollama.Timeout,
	} {
		if v, ok := get(k); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			dst.Duration = d
		}
	}
	return nil
}

// SplitCSV splits a comma-separated list, trimming blanks.
func SplitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// PreferredLocales returns the configured preferred languages, falling back
// to the POSIX locale variables (LANGUAGE, LC_ALL, LANG) and finally "en".
// Entries are normalised to BCP 47 where possible.
func (c Config) PreferredLocales(lookup LookupFunc) []string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	raw := c.PreferredLanguages
	if len(raw) == 0 {
		if v, ok := lookup("LANGUAGE"); ok && strings.TrimSpace(v) != "" {
			raw = strings.Split(v, ":")
		}
	}
	if len(raw) == 0 {
		for _, k := range []string{"LC_ALL", "LANG"} {
			if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
				raw = []string{v}
				break
			}
		}
	}
	var out []string
	seen := make(map[string]bool)
	for _, r := range raw {
		loc := normalizeLocale(r)
		if loc == "" || seen[loc] {
			continue
		}
		seen[loc] = true
		out = append(out, loc)
	}
	if len(out) == 0 {
		return []string{"en"}
	}
	return out
}

// normalizeLocale turns "pt_BR.UTF-8" into "pt-BR". POSIX C locales yield "".
func normalizeLocale(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == "C" || s == "POSIX" {
		return ""
	}
	s = strings.ReplaceAll(s, "_", "-")
	if tag, err := language.Parse(s); err == nil {
		return tag.String()
	}
	return s
}
