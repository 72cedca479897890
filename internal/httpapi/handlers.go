package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"lingod/pkg/types"
)

type handlers struct {
	svc Service
}

// status godoc
// @Summary      Feature status
// @Description  Availability of every host feature, download progress and conversation counters.
// @Tags         status
// @Produce      json
// @Success      200  {object}  types.StatusResponse
// @Router       /status [get]
func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Status())
}

// languages godoc
// @Summary      Translation pairs
// @Tags         languages
// @Produce      json
// @Success      200  {object}  types.LanguagesResponse
// @Router       /languages [get]
func (h *handlers) languages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Languages())
}

// setSelection godoc
// @Summary      Set the default translation pair
// @Tags         languages
// @Accept       json
// @Produce      json
// @Param        selection  body      types.Selection  true  "Pair; empty fields keep their value"
// @Success      200        {object}  types.Selection
// @Failure      400        {object}  types.ErrorResponse
// @Router       /selection [put]
func (h *handlers) setSelection(w http.ResponseWriter, r *http.Request) {
	var sel types.Selection
	if !decodeJSON(w, r, &sel) {
		return
	}
	out, err := h.svc.SetSelection(sel)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// download godoc
// @Summary      Download a feature's model
// @Description  Creates the feature's session in the background. The translator uses the current selection.
// @Tags         status
// @Produce      json
// @Param        feature  path      string  true  "languageDetector, summarizer or translator"
// @Success      202      {object}  types.AcceptedResponse
// @Failure      404      {object}  types.ErrorResponse
// @Failure      422      {object}  types.ErrorResponse
// @Failure      503      {object}  types.ErrorResponse
// @Router       /features/{feature}/download [post]
func (h *handlers) download(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.StartDownload(chi.URLParam(r, "feature")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, types.AcceptedResponse{Status: "accepted"})
}

// listMessages godoc
// @Summary      Conversation log
// @Tags         messages
// @Produce      json
// @Success      200  {object}  types.MessagesResponse
// @Router       /messages [get]
func (h *handlers) listMessages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.MessagesResponse{Messages: h.svc.Messages()})
}

// submit godoc
// @Summary      Submit a message
// @Description  Appends the message and starts language detection. The returned message is still detecting.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        message  body      types.SubmitRequest  true  "Message text"
// @Success      202      {object}  types.Message
// @Failure      400      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Router       /messages [post]
func (h *handlers) submit(w http.ResponseWriter, r *http.Request) {
	var req types.SubmitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m, err := h.svc.Submit(req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, m)
}

// getMessage godoc
// @Summary      One message
// @Tags         messages
// @Produce      json
// @Param        id   path      int  true  "Message id"
// @Success      200  {object}  types.Message
// @Failure      404  {object}  types.ErrorResponse
// @Router       /messages/{id} [get]
func (h *handlers) getMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := messageID(w, r)
	if !ok {
		return
	}
	m, err := h.svc.Message(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// requestSummary godoc
// @Summary      Summarize a message
// @Tags         messages
// @Produce      json
// @Param        id   path      int  true  "Message id"
// @Success      202  {object}  types.AcceptedResponse
// @Failure      404  {object}  types.ErrorResponse
// @Failure      409  {object}  types.ErrorResponse
// @Failure      422  {object}  types.ErrorResponse
// @Router       /messages/{id}/summary [post]
func (h *handlers) requestSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := messageID(w, r)
	if !ok {
		return
	}
	if err := h.svc.RequestSummary(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, types.AcceptedResponse{Status: "accepted", MessageID: id})
}

// requestTranslation godoc
// @Summary      Translate a message
// @Description  An empty body or target uses the selection's target.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        id       path      int                     true   "Message id"
// @Param        request  body      types.TranslateRequest  false  "Target language"
// @Success      202      {object}  types.AcceptedResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      404      {object}  types.ErrorResponse
// @Failure      409      {object}  types.ErrorResponse
// @Failure      422      {object}  types.ErrorResponse
// @Router       /messages/{id}/translation [post]
func (h *handlers) requestTranslation(w http.ResponseWriter, r *http.Request) {
	id, ok := messageID(w, r)
	if !ok {
		return
	}
	var req types.TranslateRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.RequestTranslation(id, strings.TrimSpace(req.Target)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, types.AcceptedResponse{Status: "accepted", MessageID: id})
}

// toggleSummary godoc
// @Summary      Show or hide a summary
// @Tags         messages
// @Produce      json
// @Param        id   path      int  true  "Message id"
// @Success      200  {object}  types.Message
// @Failure      404  {object}  types.ErrorResponse
// @Router       /messages/{id}/summary/toggle [post]
func (h *handlers) toggleSummary(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.svc.ToggleSummary)
}

// toggleTranslation godoc
// @Summary      Show or hide a translation
// @Tags         messages
// @Produce      json
// @Param        id   path      int  true  "Message id"
// @Success      200  {object}  types.Message
// @Failure      404  {object}  types.ErrorResponse
// @Router       /messages/{id}/translation/toggle [post]
func (h *handlers) toggleTranslation(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.svc.ToggleTranslation)
}

func (h *handlers) toggle(w http.ResponseWriter, r *http.Request, fn func(int64) (types.Message, error)) {
	id, ok := messageID(w, r)
	if !ok {
		return
	}
	m, err := fn(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// decodeJSON enforces the content type and body limit, then decodes into v.
// It writes the error response and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Oversized bodies also land here; keep them 400 to avoid size leak details.
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func messageID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSONError(w, http.StatusBadRequest, "invalid message id")
		return 0, false
	}
	return id, true
}
