package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Jadebat79/tts-web/internal/models"
	"go.uber.org/zap"
)

const (
	// Synthesis can take a while for long inputs; the service enforces
	// its own limits, we just keep the client from hanging forever.
	requestTimeout = 90 * time.Second
)

// RemoteSpeechService talks to the external voice-listing and synthesis
// endpoints over plain JSON HTTP.
type RemoteSpeechService struct {
	baseURL string
	client  *http.Client
	log     *zap.SugaredLogger
}

// Ensure RemoteSpeechService implements SpeechService at compile time.
var _ SpeechService = (*RemoteSpeechService)(nil)

func NewRemoteSpeechService(baseURL string, log *zap.SugaredLogger) *RemoteSpeechService {
	return &RemoteSpeechService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
		log:     log,
	}
}

// ListVoices calls GET {base}/voices and decodes the catalog.
func (s *RemoteSpeechService) ListVoices(ctx context.Context) ([]models.Voice, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("speech service URL is not configured")
	}

	url := s.baseURL + "/voices"
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create voices request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voices request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &ServiceError{StatusCode: resp.StatusCode, Message: extractErrorMessage(body)}
	}

	var listed models.VoiceListResponse
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		return nil, fmt.Errorf("failed to decode voices response: %w", err)
	}

	s.log.Infow("voice catalog fetched", "voices", len(listed.Voices))
	return listed.Voices, nil
}

// Synthesize calls POST {base}/synthesize with one attempt, no retries.
// Success means a 2xx status and a non-empty url in the body; everything
// else is a failure.
func (s *RemoteSpeechService) Synthesize(ctx context.Context, synthReq SynthesisRequest) (string, error) {
	if s.baseURL == "" {
		return "", fmt.Errorf("speech service URL is not configured")
	}

	jsonData, err := json.Marshal(synthReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal synthesis request: %w", err)
	}

	url := s.baseURL + "/synthesize"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	s.log.Infow("submitting synthesis request",
		"voice", synthReq.Voice, "engine", string(synthReq.Engine), "textLen", len(synthReq.Text))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read synthesis response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ServiceError{StatusCode: resp.StatusCode, Message: extractErrorMessage(body)}
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &result); err != nil || result.URL == "" {
		// 2xx without a usable URL is still a failure
		return "", &ServiceError{StatusCode: resp.StatusCode}
	}

	return result.URL, nil
}

// extractErrorMessage pulls the optional {"error": "..."} field out of a
// failure body. Malformed bodies yield an empty message.
func extractErrorMessage(body []byte) string {
	var failure struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &failure); err != nil {
		return ""
	}
	return failure.Error
}
