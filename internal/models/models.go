package models

import (
	"time"

	"github.com/google/uuid"
)

// Enums

// Engine is a synthesis quality tier offered by the remote service.
// The empty string means "standard" and doubles as "no explicit engine":
// request payloads carry the engine field only when it is non-empty.
type Engine string

const (
	EngineStandard Engine = ""
	EngineNeural   Engine = "neural"
)

// CatalogSource tags how the voice catalog was obtained.
type CatalogSource string

const (
	CatalogSourceLoaded   CatalogSource = "loaded"
	CatalogSourceFallback CatalogSource = "fallback"
)

// SessionPhase is the synthesis request lifecycle state.
type SessionPhase string

const (
	PhaseIdle    SessionPhase = "idle"
	PhaseBusy    SessionPhase = "busy"
	PhaseSuccess SessionPhase = "success"
	PhaseFailed  SessionPhase = "failed"
)

// Models

// Voice is one synthesis persona as reported by the remote catalog.
// Immutable once loaded; lives for the process session.
type Voice struct {
	ID               string   `json:"id"`
	LanguageCode     string   `json:"languageCode"`
	LanguageName     string   `json:"languageName"`
	Gender           string   `json:"gender,omitempty"`
	SupportedEngines []string `json:"supportedEngines"`
}

// SupportsEngine reports whether the voice can synthesize with the given engine.
// Every voice supports the standard (empty) engine.
func (v Voice) SupportsEngine(engine Engine) bool {
	if engine == EngineStandard {
		return true
	}
	for _, e := range v.SupportedEngines {
		if Engine(e) == engine {
			return true
		}
	}
	return false
}

// Language is a derived entity: one distinct language code across the
// voice set, mapped to a representative display name.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Selection is the mutable (language, voice, engine) triple a session edits.
type Selection struct {
	LanguageCode string `json:"languageCode"`
	VoiceID      string `json:"voiceId"`
	Engine       Engine `json:"engine"`
}

// SynthesisResult is the immutable outcome of one successful synthesis.
// The URL is pre-signed and expiring; it is treated as opaque here.
type SynthesisResult struct {
	URL          string    `json:"url"`
	VoiceID      string    `json:"voiceId"`
	LanguageCode string    `json:"languageCode"`
	Engine       Engine    `json:"engine"`
	CreatedAt    time.Time `json:"created_at"`
}

// HistoryEntry is a SynthesisResult snapshot held by the bounded ledger.
type HistoryEntry struct {
	ID uuid.UUID `json:"id"`
	SynthesisResult
}

// DTOs for API requests and responses

type CreateSessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
}

type SetLanguageRequest struct {
	Language string `json:"language"`
}

type SetVoiceRequest struct {
	Voice string `json:"voice"`
}

type SetEngineRequest struct {
	Engine Engine `json:"engine"`
}

type SynthesizeTextRequest struct {
	Text string `json:"text"`
}

// SessionView is the full render-ready state of one session.
type SessionView struct {
	SessionID    uuid.UUID        `json:"session_id"`
	Selection    Selection        `json:"selection"`
	Voices       []Voice          `json:"voices"` // filtered to the selected language
	Languages    []Language       `json:"languages"`
	Phase        SessionPhase     `json:"phase"`
	Busy         bool             `json:"busy"`
	ErrorMessage string           `json:"error_message,omitempty"`
	Advisory     string           `json:"advisory,omitempty"` // catalog degraded-mode notice
	Result       *SynthesisResult `json:"result,omitempty"`
	History      []HistoryEntry   `json:"history"`
	CanSubmit    bool             `json:"can_submit"` // false while busy or without a voice
	MaxTextChars int              `json:"max_text_chars"`
}

// CatalogResponse describes the loaded (or fallback) voice catalog.
type CatalogResponse struct {
	Source          CatalogSource `json:"source"`
	Voices          []Voice       `json:"voices"`
	Languages       []Language    `json:"languages"`
	DefaultLanguage string        `json:"default_language,omitempty"`
	DefaultVoice    string        `json:"default_voice,omitempty"`
	Advisory        string        `json:"advisory,omitempty"`
}

// VoiceListResponse is the wire shape of the remote voice-listing endpoint.
type VoiceListResponse struct {
	Voices []Voice `json:"voices"`
}
