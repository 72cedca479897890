package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// sseKeepAlive is the interval between comment lines on an idle stream.
var sseKeepAlive = 15 * time.Second

// events godoc
// @Summary      Event stream
// @Description  Server-sent events for status changes, download progress and message updates.
// @Tags         events
// @Produce      text/event-stream
// @Success      200
// @Router       /events [get]
func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	fl, ok := w.(http.Flusher)
	if !ok {
		writeJSONError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	ch, cancel := h.svc.Subscribe()
	defer cancel()
	ctx, stop := streamContext(r)
	defer stop()

	sseClients.Inc()
	defer sseClients.Dec()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	fl.Flush()

	ticker := time.NewTicker(sseKeepAlive)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(e)
			if err != nil {
				logError("encode event", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Name, data); err != nil {
				return
			}
			fl.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			fl.Flush()
		}
	}
}
