package api

import (
	"encoding/json"
	"net/http"

	"github.com/Jadebat79/tts-web/internal/catalog"
	"github.com/Jadebat79/tts-web/internal/models"
	"github.com/Jadebat79/tts-web/internal/services"
	"github.com/Jadebat79/tts-web/internal/session"
	"github.com/Jadebat79/tts-web/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	catalog      *catalog.Catalog
	store        *store.Store
	speech       services.SpeechService
	maxTextChars int
	historyLimit int
	log          *zap.SugaredLogger
}

func NewHandler(cat *catalog.Catalog, st *store.Store, speech services.SpeechService, maxTextChars, historyLimit int, log *zap.SugaredLogger) *Handler {
	return &Handler{
		catalog:      cat,
		store:        st,
		speech:       speech,
		maxTextChars: maxTextChars,
		historyLimit: historyLimit,
		log:          log,
	}
}

// GetCatalog handles GET /v1/catalog
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.CatalogResponse{
		Source:          h.catalog.Source,
		Voices:          h.catalog.Voices,
		Languages:       h.catalog.Languages,
		DefaultLanguage: h.catalog.DefaultLanguage,
		DefaultVoice:    h.catalog.DefaultVoice,
		Advisory:        h.catalog.Advisory,
	})
}

// ListVoices handles GET /v1/catalog/voices?language=<code>
// Without a language filter it returns the full voice list.
func (h *Handler) ListVoices(w http.ResponseWriter, r *http.Request) {
	voices := h.catalog.Voices
	if code := r.URL.Query().Get("language"); code != "" {
		voices = h.catalog.VoicesForLanguage(code)
	}
	respondJSON(w, http.StatusOK, models.VoiceListResponse{Voices: voices})
}

// CreateSession handles POST /v1/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess := session.New(h.catalog, h.speech, h.maxTextChars, h.historyLimit, h.log)
	h.store.Add(sess)
	respondJSON(w, http.StatusCreated, sess.View())
}

// GetSession handles GET /v1/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(sess *session.Session) models.SessionView {
		return sess.View()
	})
}

// SetLanguage handles PUT /v1/sessions/{id}/language
func (h *Handler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req models.SetLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Language == "" {
		respondError(w, http.StatusBadRequest, "Language is required")
		return
	}

	h.withSession(w, r, func(sess *session.Session) models.SessionView {
		sess.SetLanguage(req.Language)
		return sess.View()
	})
}

// SetVoice handles PUT /v1/sessions/{id}/voice
func (h *Handler) SetVoice(w http.ResponseWriter, r *http.Request) {
	var req models.SetVoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.withSession(w, r, func(sess *session.Session) models.SessionView {
		sess.SetVoice(req.Voice)
		return sess.View()
	})
}

// SetEngine handles PUT /v1/sessions/{id}/engine
func (h *Handler) SetEngine(w http.ResponseWriter, r *http.Request) {
	var req models.SetEngineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.withSession(w, r, func(sess *session.Session) models.SessionView {
		sess.SetEngine(req.Engine)
		return sess.View()
	})
}

// Synthesize handles POST /v1/sessions/{id}/synthesize
// The full lifecycle runs synchronously: one attempt, no retries. A
// submission that fails the gate is a no-op and returns the unchanged
// session view rather than an error.
func (h *Handler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req models.SynthesizeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.withSession(w, r, func(sess *session.Session) models.SessionView {
		sess.Synthesize(r.Context(), req.Text)
		return sess.View()
	})
}

// GetHistory handles GET /v1/sessions/{id}/history
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid session ID")
		return
	}

	var history []models.HistoryEntry
	if err := h.store.With(id, func(sess *session.Session) {
		history = sess.History()
	}); err != nil {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"history": history})
}

// DeleteSession handles DELETE /v1/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid session ID")
		return
	}
	h.store.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// withSession parses the session ID, runs fn with exclusive access, and
// writes the view fn returns.
func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, fn func(*session.Session) models.SessionView) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid session ID")
		return
	}

	var view models.SessionView
	if err := h.store.With(id, func(sess *session.Session) {
		view = fn(sess)
	}); err != nil {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}

	respondJSON(w, http.StatusOK, view)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Health check
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
