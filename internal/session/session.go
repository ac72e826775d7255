package session

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Jadebat79/tts-web/internal/catalog"
	"github.com/Jadebat79/tts-web/internal/models"
	"github.com/Jadebat79/tts-web/internal/services"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// genericFailure is shown when the service failed without supplying its
// own error message (bad status with empty body, 2xx without a URL).
const genericFailure = "synthesis failed"

// Session holds one user's selection state, synthesis lifecycle, current
// result, and history. Methods are not safe for concurrent use; the
// store serializes access so each session behaves as single-owner state.
//
// The synthesis lifecycle is Idle → Busy → {Success, Failed} → Idle,
// where Success/Failed are sticky until the next submission begins.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	cat      *catalog.Catalog
	speech   services.SpeechService
	log      *zap.SugaredLogger
	maxChars int

	selection models.Selection
	phase     models.SessionPhase
	errMsg    string
	result    *models.SynthesisResult
	history   *Ledger
}

// New creates a session seeded with the catalog's default language and
// voice. The engine default follows the selected voice: neural when
// supported, standard otherwise.
func New(cat *catalog.Catalog, speech services.SpeechService, maxChars, historyLimit int, log *zap.SugaredLogger) *Session {
	s := &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		cat:       cat,
		speech:    speech,
		log:       log,
		maxChars:  maxChars,
		phase:     models.PhaseIdle,
		history:   NewLedger(historyLimit),
	}
	s.applyLanguage(cat.DefaultLanguage)
	return s
}

// SetLanguage switches the selected language and repairs the selection
// invariant: the selected voice must belong to the selected language. If
// the previous voice does not, the first matching voice is chosen and its
// engine default derived. An empty filtered set clears the selection.
func (s *Session) SetLanguage(code string) {
	s.applyLanguage(code)
}

func (s *Session) applyLanguage(code string) {
	s.selection.LanguageCode = code

	filtered := s.cat.VoicesForLanguage(code)
	if len(filtered) == 0 {
		s.selection.VoiceID = ""
		s.selection.Engine = models.EngineStandard
		return
	}

	for _, v := range filtered {
		if v.ID == s.selection.VoiceID {
			// Previous voice still valid for this language; just
			// re-validate the engine against it.
			if !v.SupportsEngine(s.selection.Engine) {
				s.selection.Engine = models.EngineStandard
			}
			return
		}
	}

	s.selection.VoiceID = filtered[0].ID
	s.selection.Engine = defaultEngine(filtered[0])
}

// SetVoice overrides the selected voice within the current language.
// Unknown voice IDs and voices of another language are ignored so the
// language→voice invariant cannot be broken from the outside. The engine
// is not re-derived, only re-validated against the new voice.
func (s *Session) SetVoice(id string) {
	for _, v := range s.cat.VoicesForLanguage(s.selection.LanguageCode) {
		if v.ID == id {
			s.selection.VoiceID = id
			if !v.SupportsEngine(s.selection.Engine) {
				s.selection.Engine = models.EngineStandard
			}
			return
		}
	}
}

// SetEngine overrides the engine. Values other than "" and "neural", and
// engines the selected voice does not support, are ignored rather than
// stored, so an invalid engine can never reach the wire.
func (s *Session) SetEngine(engine models.Engine) {
	if engine != models.EngineStandard && engine != models.EngineNeural {
		return
	}
	voice, ok := s.selectedVoice()
	if !ok || !voice.SupportsEngine(engine) {
		return
	}
	s.selection.Engine = engine
}

func (s *Session) selectedVoice() (models.Voice, bool) {
	for _, v := range s.cat.Voices {
		if v.ID == s.selection.VoiceID && s.selection.VoiceID != "" {
			return v, true
		}
	}
	return models.Voice{}, false
}

// CanSubmit reports whether a synthesis of the given text may start:
// not busy, a voice selected, text non-blank and within the length bound.
func (s *Session) CanSubmit(text string) bool {
	if s.phase == models.PhaseBusy {
		return false
	}
	if s.selection.VoiceID == "" {
		return false
	}
	if strings.TrimSpace(text) == "" {
		return false
	}
	return utf8.RuneCountInString(text) <= s.maxChars
}

// Synthesize runs one full request lifecycle: Busy, a single call to the
// remote service, then Success or Failed. Submissions that fail the
// CanSubmit gate are silent no-ops — the caller is responsible for
// disabling the trigger, and a race there is not a user-visible error.
func (s *Session) Synthesize(ctx context.Context, text string) {
	if !s.CanSubmit(text) {
		return
	}

	// Entering Busy clears the previous error and result so stale output
	// is never shown next to an in-flight request.
	s.phase = models.PhaseBusy
	s.errMsg = ""
	s.result = nil

	// The session must never stay Busy, whatever the call below does.
	defer func() {
		if s.phase == models.PhaseBusy {
			s.phase = models.PhaseFailed
			s.errMsg = genericFailure
		}
	}()

	url, err := s.speech.Synthesize(ctx, services.SynthesisRequest{
		Text:   text,
		Voice:  s.selection.VoiceID,
		Engine: s.selection.Engine,
	})
	if err != nil {
		s.phase = models.PhaseFailed
		s.errMsg = failureMessage(err)
		s.log.Warnw("synthesis failed", "session", s.ID, "error", err)
		return
	}

	result := models.SynthesisResult{
		URL:          url,
		VoiceID:      s.selection.VoiceID,
		LanguageCode: s.selection.LanguageCode,
		Engine:       s.selection.Engine,
		CreatedAt:    time.Now(),
	}
	s.result = &result
	s.phase = models.PhaseSuccess
	s.history.Push(models.HistoryEntry{ID: uuid.New(), SynthesisResult: result})
}

// failureMessage prefers the service-supplied error text, then the
// generic message for service failures without one, then the transport
// error's own message.
func failureMessage(err error) string {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		if svcErr.Message != "" {
			return svcErr.Message
		}
		return genericFailure
	}
	return err.Error()
}

// History returns the completed syntheses, newest first.
func (s *Session) History() []models.HistoryEntry {
	return s.history.Entries()
}

// View renders the session for the presentation layer. The CanSubmit
// field reflects the busy/voice gates only; text gating happens at
// submission time since the server does not track draft text.
func (s *Session) View() models.SessionView {
	return models.SessionView{
		SessionID:    s.ID,
		Selection:    s.selection,
		Voices:       s.cat.VoicesForLanguage(s.selection.LanguageCode),
		Languages:    s.cat.Languages,
		Phase:        s.phase,
		Busy:         s.phase == models.PhaseBusy,
		ErrorMessage: s.errMsg,
		Advisory:     s.cat.Advisory,
		Result:       s.result,
		History:      s.history.Entries(),
		CanSubmit:    s.phase != models.PhaseBusy && s.selection.VoiceID != "",
		MaxTextChars: s.maxChars,
	}
}

// defaultEngine derives the engine for a freshly selected voice.
func defaultEngine(v models.Voice) models.Engine {
	if v.SupportsEngine(models.EngineNeural) {
		return models.EngineNeural
	}
	return models.EngineStandard
}
