package openaicompat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingod/internal/host"
)

type fakeServer struct {
	mu       sync.Mutex
	model    string
	reply    string
	lastBody map[string]any
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v1/models/"):
		if strings.TrimPrefix(r.URL.Path, "/v1/models/") != f.model {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"message":"model not found","type":"invalid_request_error"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"` + f.model + `","object":"model","created":0,"owned_by":"local"}`))
	case r.Method == http.MethodPost && r.URL.Path == "/v1/chat/completions":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.lastBody = body
		reply := f.reply
		f.mu.Unlock()
		resp := map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 0,
			"model":   f.model,
			"choices": []any{map[string]any{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": reply},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	default:
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"unexpected request"}}`))
	}
}

func (f *fakeServer) body() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastBody
}

func newBackend(t *testing.T, model, reply string) (*fakeServer, *Backend) {
	t.Helper()
	f := &fakeServer{model: "served", reply: reply}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, New(Config{BaseURL: srv.URL, Model: model, Languages: []string{"en", "fr"}})
}

func TestCapabilities(t *testing.T) {
	_, b := newBackend(t, "served", "")
	a, err := b.Summarizer().Capabilities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, host.Readily, a)

	_, missing := newBackend(t, "absent", "")
	a, err = missing.Summarizer().Capabilities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, host.No, a)
}

func TestCapabilitiesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer srv.Close()
	b := New(Config{BaseURL: srv.URL, Model: "served"})
	_, err := b.Summarizer().Capabilities(context.Background())
	assert.Error(t, err)
	_, err = b.Translator().Capabilities(context.Background())
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	f, b := newBackend(t, "served", "- point")
	s, err := b.Summarizer().Create(context.Background(), host.SummarizerOptions{Type: "key-points", Format: "markdown", Length: "short"})
	require.NoError(t, err)
	require.NoError(t, s.Ready(context.Background()))
	out, err := s.Summarize(context.Background(), "long text")
	require.NoError(t, err)
	assert.Equal(t, "- point", out)

	body := f.body()
	assert.Equal(t, "served", body["model"])
	msgs, _ := body["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "long text", msgs[1].(map[string]any)["content"])
}

func TestSummarizeJSON(t *testing.T) {
	_, b := newBackend(t, "served", `{"summary":"short"}`)
	s, err := b.Summarizer().Create(context.Background(), host.SummarizerOptions{Format: "json"})
	require.NoError(t, err)
	out, err := s.Summarize(context.Background(), "long text")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"summary": "short"}, out)
}

func TestCreateRejectsUnservedModel(t *testing.T) {
	_, b := newBackend(t, "absent", "")
	_, err := b.Summarizer().Create(context.Background(), host.SummarizerOptions{})
	assert.Error(t, err)
}

func TestTranslator(t *testing.T) {
	_, b := newBackend(t, "served", "Hello world")
	caps, err := b.Translator().Capabilities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, host.Readily, caps.Available())

	a, err := caps.LanguagePairAvailable(context.Background(), "fr", "en")
	require.NoError(t, err)
	assert.Equal(t, host.Readily, a)
	a, err = caps.LanguagePairAvailable(context.Background(), "fr", "ja")
	require.NoError(t, err)
	assert.Equal(t, host.No, a)

	tr, err := b.Translator().Create(context.Background(), host.TranslatorOptions{Source: "fr", Target: "en"})
	require.NoError(t, err)
	out, err := tr.Translate(context.Background(), "Bonjour le monde")
	require.NoError(t, err)
	assert.Equal(t, "Hello world", out)
}

func TestNormalizeBaseURL(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:8080/v1/", normalizeBaseURL("http://127.0.0.1:8080"))
	assert.Equal(t, "http://127.0.0.1:8080/v1/", normalizeBaseURL("http://127.0.0.1:8080/v1/"))
	assert.Equal(t, "http://host/api/v1/", normalizeBaseURL("http://host/api"))
	assert.Equal(t, "", normalizeBaseURL("  "))
}
