// Package httpapi exposes the conversation and the feature board over
// HTTP/JSON plus a server-sent-events stream.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lingod/internal/events"
	"lingod/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Status() types.StatusResponse
	Languages() types.LanguagesResponse
	SetSelection(sel types.Selection) (types.Selection, error)
	StartDownload(feature string) error
	Messages() []types.Message
	Message(id int64) (types.Message, error)
	Submit(text string) (types.Message, error)
	RequestSummary(id int64) error
	RequestTranslation(id int64, target string) error
	ToggleSummary(id int64) (types.Message, error)
	ToggleTranslation(id int64) (types.Message, error)
	Subscribe() (<-chan events.Event, func())
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(requestLogging)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if mw := corsPolicy.middleware(); mw != nil {
		r.Use(mw)
	}

	h := &handlers{svc: svc}
	r.Get("/status", h.status)
	r.Get("/languages", h.languages)
	r.Put("/selection", h.setSelection)
	r.Post("/features/{feature}/download", h.download)
	r.Route("/messages", func(r chi.Router) {
		r.Get("/", h.listMessages)
		r.Post("/", h.submit)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getMessage)
			r.Post("/summary", h.requestSummary)
			r.Post("/summary/toggle", h.toggleSummary)
			r.Post("/translation", h.requestTranslation)
			r.Post("/translation/toggle", h.toggleTranslation)
		})
	})
	r.Get("/events", h.events)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("probing"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}
