package services

import (
	"context"
	"fmt"

	"github.com/Jadebat79/tts-web/internal/models"
)

// ---------------------------------------------------------------------------
// SpeechService — interface over the remote synthesis collaborator.
// The catalog loader and session controller depend on this interface so
// tests can substitute a fake without a live service.
// ---------------------------------------------------------------------------

// SynthesisRequest is the payload for one synthesis call. Engine is
// omitted from the wire payload entirely when empty; the service treats
// a missing engine as "use my default", which is not the same as "".
type SynthesisRequest struct {
	Text   string        `json:"text"`
	Voice  string        `json:"voice"`
	Engine models.Engine `json:"engine,omitempty"`
}

// SpeechService is the client-side contract for the two remote endpoints.
type SpeechService interface {
	// ListVoices fetches the full voice catalog.
	ListVoices(ctx context.Context) ([]models.Voice, error)

	// Synthesize submits text and returns the pre-signed audio URL.
	// Any non-2xx status, transport failure, or success body without a
	// URL is an error; service-reported failures carry *ServiceError.
	Synthesize(ctx context.Context, req SynthesisRequest) (string, error)
}

// ServiceError is a failure reported by the remote service itself, as
// opposed to a transport-level error. Message holds the service-supplied
// error text when the response body included one.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("speech service returned status %d", e.StatusCode)
}
