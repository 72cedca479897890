package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"lingod/internal/host/mock"
	"lingod/internal/httpapi"
	"lingod/internal/service"
	"lingod/pkg/types"
)

// newServer runs the full stack over a scripted host and probes it.
func newServer(t *testing.T, h *mock.Host, cfg service.Config) (*httptest.Server, *service.Service) {
	t.Helper()
	cfg.Host = h.Host()
	if cfg.Preferred == nil {
		cfg.Preferred = []string{"fr-FR", "en-US"}
	}
	svc := service.New(cfg)
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(func() {
		srv.Close()
		_ = svc.Close()
	})
	svc.Start(context.Background())
	return srv, svc
}

func call(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

// waitMessage polls GET /messages/{id} until cond holds.
func waitMessage(t *testing.T, base string, id int64, cond func(types.Message) bool) types.Message {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	var m types.Message
	for time.Now().Before(deadline) {
		if code := call(t, http.MethodGet, base+"/messages/"+strconv.FormatInt(id, 10), nil, &m); code != http.StatusOK {
			t.Fatalf("GET message %d: status %d", id, code)
		}
		if cond(m) {
			return m
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("message %d never reached the expected state: %+v", id, m)
	return m
}
