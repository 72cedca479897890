package e2e

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"lingod/internal/events"
	"lingod/internal/host"
	"lingod/internal/host/mock"
	"lingod/internal/service"
	"lingod/pkg/types"
)

// detected reports that detection finished, with or without a result.
func detected(m types.Message) bool { return !m.Language.Detecting }

func TestE2E_StatusAndLanguages(t *testing.T) {
	srv, _ := newServer(t, mock.Ready("en", "fr"), service.Config{})

	var st types.StatusResponse
	if code := call(t, http.MethodGet, srv.URL+"/status", nil, &st); code != http.StatusOK {
		t.Fatalf("status code %d", code)
	}
	if !st.Probed || st.PairCount != 2 || st.Selection != (types.Selection{Source: "fr", Target: "en"}) {
		t.Fatalf("unexpected status %+v", st)
	}
	for _, f := range st.Features {
		if f.Status != "readily" {
			t.Fatalf("feature %s status %s", f.Feature, f.Status)
		}
	}

	var langs types.LanguagesResponse
	call(t, http.MethodGet, srv.URL+"/languages", nil, &langs)
	if len(langs.Pairs) != 2 || langs.Pairs[0].SourceName != "French" {
		t.Fatalf("unexpected pairs %+v", langs.Pairs)
	}

	resp, err := http.Get(srv.URL + "/readyz")
	if err != nil {
		t.Fatalf("readyz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("readyz status %d", resp.StatusCode)
	}
}

func TestE2E_DetectAndTranslate(t *testing.T) {
	h := mock.Ready("en", "fr")
	srv, _ := newServer(t, h, service.Config{})

	var created types.Message
	if code := call(t, http.MethodPost, srv.URL+"/messages", types.SubmitRequest{Text: "Bonjour le monde"}, &created); code != http.StatusAccepted {
		t.Fatalf("submit code %d", code)
	}
	if created.ID != 1 || created.WordCount != 3 {
		t.Fatalf("unexpected created message %+v", created)
	}
	m := waitMessage(t, srv.URL, created.ID, detected)
	if m.Language.Code != "fr" || m.CanSummarize {
		t.Fatalf("unexpected detection %+v", m)
	}

	var acc types.AcceptedResponse
	if code := call(t, http.MethodPost, srv.URL+"/messages/1/translation", types.TranslateRequest{Target: "en"}, &acc); code != http.StatusAccepted {
		t.Fatalf("translate code %d", code)
	}
	m = waitMessage(t, srv.URL, 1, func(m types.Message) bool { return m.Translation != nil })
	if m.Translation.Text != "[fr→en] Bonjour le monde" || !m.ShowTranslation || m.IsTranslating {
		t.Fatalf("unexpected translation %+v", m)
	}

	var toggled types.Message
	call(t, http.MethodPost, srv.URL+"/messages/1/translation/toggle", nil, &toggled)
	if toggled.ShowTranslation {
		t.Fatalf("toggle did not hide translation")
	}

	var errBody types.ErrorResponse
	if code := call(t, http.MethodPost, srv.URL+"/messages/1/translation", types.TranslateRequest{Target: "fr"}, &errBody); code != http.StatusBadRequest {
		t.Fatalf("same-language target: expected 400, got %d", code)
	}
	if code := call(t, http.MethodPost, srv.URL+"/messages/42/summary", nil, &errBody); code != http.StatusNotFound {
		t.Fatalf("unknown message: expected 404, got %d", code)
	}
}

func TestE2E_SummaryAfterDownloadStreamsProgress(t *testing.T) {
	h := mock.Ready("en", "fr")
	h.Summarizer.Availability = host.AfterDownload
	h.Summarizer.Progress = []host.DownloadProgress{{Loaded: 30, Total: 100}, {Loaded: 100, Total: 100}}
	srv, _ := newServer(t, h, service.Config{})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	stream, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	defer stream.Body.Close()

	text := strings.Repeat("the quick fox jumps over the lazy dog. ", 20)
	var created types.Message
	call(t, http.MethodPost, srv.URL+"/messages", types.SubmitRequest{Text: text}, &created)
	m := waitMessage(t, srv.URL, created.ID, detected)
	if m.Language.Code != "en" || !m.CanSummarize || !m.IsLongText {
		t.Fatalf("expected a summarizable english message, got %+v", m)
	}

	if code := call(t, http.MethodPost, srv.URL+"/messages/1/summary", nil, nil); code != http.StatusAccepted {
		t.Fatalf("summary code %d", code)
	}
	m = waitMessage(t, srv.URL, 1, func(m types.Message) bool { return m.ShowSummary })
	if m.Summary == "" || m.SummaryShape != "text" || m.SummaryError {
		t.Fatalf("unexpected summary state %+v", m)
	}

	var st types.StatusResponse
	call(t, http.MethodGet, srv.URL+"/status", nil, &st)
	if st.Features[1].Status != "readily" || st.Features[1].Progress != nil {
		t.Fatalf("summarizer should be readily with progress cleared: %+v", st.Features[1])
	}

	sc := bufio.NewScanner(stream.Body)
	var progress []map[string]any
	for sc.Scan() && len(progress) < 3 {
		line := sc.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var e events.Event
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &e); err != nil {
			t.Fatalf("event json: %v", err)
		}
		if e.Name == events.DownloadProgress && e.Feature == string(host.SummarizerFeature) {
			progress = append(progress, e.Fields)
		}
	}
	if len(progress) < 3 {
		t.Fatalf("expected progress events, got %v", progress)
	}
	if progress[0]["loaded"] != float64(0) || progress[1]["loaded"] != float64(30) {
		t.Fatalf("unexpected progress sequence %v", progress)
	}
}

func TestE2E_SummaryGuards(t *testing.T) {
	h := mock.Ready("en", "fr")
	gate := make(chan struct{})
	h.Summarizer.SummarizeFunc = func(text string) (any, error) {
		<-gate
		return map[string]any{"summary": "short"}, nil
	}
	srv, _ := newServer(t, h, service.Config{})

	var created types.Message
	call(t, http.MethodPost, srv.URL+"/messages", types.SubmitRequest{Text: "hello world"}, &created)
	waitMessage(t, srv.URL, created.ID, detected)

	if code := call(t, http.MethodPost, srv.URL+"/messages/1/summary", nil, nil); code != http.StatusAccepted {
		t.Fatalf("first summary code %d", code)
	}
	if code := call(t, http.MethodPost, srv.URL+"/messages/1/summary", nil, nil); code != http.StatusConflict {
		t.Fatalf("second summary: expected 409, got %d", code)
	}
	close(gate)
	m := waitMessage(t, srv.URL, 1, func(m types.Message) bool { return !m.IsSummarizing && m.Summary != "" })
	if m.Summary != "short" || m.SummaryShape != "structured" {
		t.Fatalf("unexpected summary %+v", m)
	}
}

func TestE2E_DownloadTranslatorForSelection(t *testing.T) {
	h := mock.Ready("en", "fr", "de")
	h.Translator.Availability = host.AfterDownload
	for k := range h.Translator.Pairs {
		h.Translator.Pairs[k] = host.AfterDownload
	}
	srv, svc := newServer(t, h, service.Config{})

	var sel types.Selection
	if code := call(t, http.MethodPut, srv.URL+"/selection", types.Selection{Target: "de"}, &sel); code != http.StatusOK {
		t.Fatalf("selection code %d", code)
	}
	if sel != (types.Selection{Source: "fr", Target: "de"}) {
		t.Fatalf("selection=%+v", sel)
	}
	if code := call(t, http.MethodPost, srv.URL+"/features/translator/download", nil, nil); code != http.StatusAccepted {
		t.Fatalf("download code %d", code)
	}
	svc.Wait()
	if got := h.Translator.Created(); len(got) != 1 || got[0] != "fr-de" {
		t.Fatalf("created=%v", got)
	}
	var st types.StatusResponse
	call(t, http.MethodGet, srv.URL+"/status", nil, &st)
	if st.Features[2].Status != "readily" || st.Sessions != 1 {
		t.Fatalf("unexpected status %+v", st)
	}
	if code := call(t, http.MethodPost, srv.URL+"/features/camera/download", nil, nil); code != http.StatusNotFound {
		t.Fatalf("unknown feature: expected 404, got %d", code)
	}
}

func TestE2E_UnavailableFeature(t *testing.T) {
	h := mock.Ready("en", "fr")
	h.Summarizer = nil
	srv, _ := newServer(t, h, service.Config{})
	if code := call(t, http.MethodPost, srv.URL+"/features/summarizer/download", nil, nil); code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
}

// TestE2E_Backpressure verifies that a translation finding the session queue
// full for longer than MaxWait fails with a too-busy error stored on its message.
func TestE2E_Backpressure(t *testing.T) {
	h := mock.Ready("en", "fr")
	gate := make(chan struct{})
	h.Translator.TranslateFunc = func(source, target, text string) (string, error) {
		<-gate
		return "ok", nil
	}
	srv, _ := newServer(t, h, service.Config{MaxQueueDepth: 1, MaxWait: 20 * time.Millisecond})

	for i := 0; i < 2; i++ {
		var m types.Message
		call(t, http.MethodPost, srv.URL+"/messages", types.SubmitRequest{Text: "bonjour le monde"}, &m)
		waitMessage(t, srv.URL, m.ID, detected)
	}
	call(t, http.MethodPost, srv.URL+"/messages/1/translation", types.TranslateRequest{Target: "en"}, nil)
	waitMessage(t, srv.URL, 1, func(m types.Message) bool { return m.IsTranslating })
	// Give the first flow time to take the session's slots.
	time.Sleep(20 * time.Millisecond)
	call(t, http.MethodPost, srv.URL+"/messages/2/translation", types.TranslateRequest{Target: "en"}, nil)

	m := waitMessage(t, srv.URL, 2, func(m types.Message) bool { return m.TranslationError })
	if !strings.Contains(m.TranslationErrorMessage, "too busy") {
		t.Fatalf("unexpected error message %q", m.TranslationErrorMessage)
	}
	close(gate)
	m = waitMessage(t, srv.URL, 1, func(m types.Message) bool { return m.Translation != nil })
	if m.Translation.Text != "ok" {
		t.Fatalf("unexpected translation %+v", m.Translation)
	}
}
