package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"lingod/internal/config"
	"lingod/internal/host"
	"lingod/internal/host/mock"
	"lingod/pkg/types"
)

// withHost swaps the host factory for the duration of the test.
func withHost(t *testing.T, h *mock.Host) {
	t.Helper()
	old := newHost
	newHost = func(config.Config, zerolog.Logger) (host.Host, error) { return h.Host(), nil }
	t.Cleanup(func() { newHost = old })
}

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"LINGOD_BACKEND", "LINGOD_LOG_LEVEL", "LC_ALL", "LANG", "XDG_CONFIG_HOME"} {
		t.Setenv(k, "")
	}
	t.Setenv("LANGUAGE", "fr:en")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Execute(append(args, "--log-level", "error"), &out, &errOut)
	return out.String(), err
}

func TestLoadConfig_Layering(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "lingod.yaml")
	if err := os.WriteFile(path, []byte("backend: openai\naddr: \":9000\"\nlog_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(&Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Backend != "openai" || cfg.Addr != ":9000" || cfg.LogLevel != "debug" {
		t.Fatalf("file values not applied: %+v", cfg)
	}

	t.Setenv("LINGOD_BACKEND", "mock")
	if cfg, err = loadConfig(&Options{ConfigPath: path}); err != nil || cfg.Backend != "mock" {
		t.Fatalf("env override: backend=%q err=%v", cfg.Backend, err)
	}

	if cfg, err = loadConfig(&Options{ConfigPath: path, Backend: "ollama", LogLevel: "warn"}); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Backend != "ollama" || cfg.LogLevel != "warn" {
		t.Fatalf("flag override: %+v", cfg)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	isolateEnv(t)
	if _, err := loadConfig(&Options{Backend: "gpu"}); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := loadConfig(&Options{ConfigPath: "missing.yaml"}); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestProbeCommand_Table(t *testing.T) {
	isolateEnv(t)
	withHost(t, mock.Ready("en", "fr"))
	out, err := run(t, "probe")
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	for _, want := range []string{"languageDetector", "readily", "2 translation pairs", "default fr -> en", "fr -> en  readily (French -> English)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("probe output missing %q:\n%s", want, out)
		}
	}
}

func TestProbeCommand_JSON(t *testing.T) {
	isolateEnv(t)
	h := mock.Ready("en", "fr")
	h.Summarizer = nil
	withHost(t, h)
	out, err := run(t, "probe", "--json")
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	var body struct {
		Status    types.StatusResponse    `json:"status"`
		Languages types.LanguagesResponse `json:"languages"`
	}
	if err := json.Unmarshal([]byte(out), &body); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if !body.Status.Probed || body.Status.Features[1].Status != "unavailable" {
		t.Fatalf("unexpected status %+v", body.Status)
	}
	if len(body.Languages.Pairs) != 2 {
		t.Fatalf("pairs=%v", body.Languages.Pairs)
	}
}

func TestSubmitCommand_Translate(t *testing.T) {
	isolateEnv(t)
	withHost(t, mock.Ready("en", "fr"))
	out, err := run(t, "submit", "bonjour", "le", "monde", "--translate-to", "en")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !strings.Contains(out, "language: fr") || !strings.Contains(out, "translation (fr -> en): [fr→en] bonjour le monde") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestSubmitCommand_SummarizeJSON(t *testing.T) {
	isolateEnv(t)
	withHost(t, mock.Ready("en", "fr"))
	text := strings.Repeat("the cat sat on the mat. ", 40)
	out, err := run(t, "submit", text, "--summarize", "--json")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	var m types.Message
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if !m.CanSummarize || m.Summary == "" || !m.ShowSummary {
		t.Fatalf("unexpected message %+v", m)
	}
}

func TestSubmitCommand_EmptyText(t *testing.T) {
	isolateEnv(t)
	withHost(t, mock.Ready("en", "fr"))
	if _, err := run(t, "submit", "   "); err == nil {
		t.Fatalf("expected error for empty text")
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := run(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, "lingod") {
		t.Fatalf("completion script does not mention lingod")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("warn", "json", &buf)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), `"message":"shown"`) {
		t.Fatalf("unexpected output %q", buf.String())
	}
	buf.Reset()
	NewLogger("nonsense", "console", &buf).Info().Msg("console line")
	if !strings.Contains(buf.String(), "console line") {
		t.Fatalf("console writer dropped line: %q", buf.String())
	}
}
