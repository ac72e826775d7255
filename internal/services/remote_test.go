package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jadebat79/tts-web/internal/models"
	"go.uber.org/zap"
)

func newTestService(url string) *RemoteSpeechService {
	return NewRemoteSpeechService(url, zap.NewNop().Sugar())
}

func TestListVoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/voices" || r.Method != "GET" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"voices":[{"id":"Joanna","languageCode":"en-US","languageName":"US English","supportedEngines":["standard","neural"]}]}`)
	}))
	defer srv.Close()

	voices, err := newTestService(srv.URL).ListVoices(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(voices) != 1 || voices[0].ID != "Joanna" {
		t.Fatalf("unexpected voices: %+v", voices)
	}
	if !voices[0].SupportsEngine(models.EngineNeural) {
		t.Error("expected Joanna to support neural")
	}
}

func TestListVoicesBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestService(srv.URL).ListVoices(context.Background())
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.StatusCode != 500 {
		t.Fatalf("expected ServiceError with status 500, got %v", err)
	}
}

func TestListVoicesMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `not json`)
	}))
	defer srv.Close()

	if _, err := newTestService(srv.URL).ListVoices(context.Background()); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestListVoicesNoBaseURL(t *testing.T) {
	if _, err := newTestService("").ListVoices(context.Background()); err == nil {
		t.Fatal("expected error without a configured base URL")
	}
}

func TestSynthesizeOmitsEmptyEngine(t *testing.T) {
	var rawBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/synthesize" || r.Method != "POST" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&rawBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		io.WriteString(w, `{"url":"https://x/a.mp3"}`)
	}))
	defer srv.Close()

	url, err := newTestService(srv.URL).Synthesize(context.Background(), SynthesisRequest{
		Text:  "Hello",
		Voice: "Joanna",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://x/a.mp3" {
		t.Errorf("unexpected url: %s", url)
	}

	if rawBody["text"] != "Hello" || rawBody["voice"] != "Joanna" {
		t.Errorf("unexpected payload: %v", rawBody)
	}
	// A missing engine field signals "use service default"; sending "" would not
	if _, present := rawBody["engine"]; present {
		t.Error("engine key must be omitted entirely when empty")
	}
}

func TestSynthesizeSendsNeuralEngine(t *testing.T) {
	var rawBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&rawBody)
		io.WriteString(w, `{"url":"https://x/a.mp3"}`)
	}))
	defer srv.Close()

	_, err := newTestService(srv.URL).Synthesize(context.Background(), SynthesisRequest{
		Text:   "Hello",
		Voice:  "Joanna",
		Engine: models.EngineNeural,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rawBody["engine"] != "neural" {
		t.Errorf("expected engine neural in payload, got %v", rawBody["engine"])
	}
}

func TestSynthesizeServiceErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":"quota exceeded"}`)
	}))
	defer srv.Close()

	_, err := newTestService(srv.URL).Synthesize(context.Background(), SynthesisRequest{Text: "x", Voice: "Joanna"})

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svcErr.Message != "quota exceeded" {
		t.Errorf("expected service message, got %q", svcErr.Message)
	}
}

func TestSynthesizeMissingURLIsFailure(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty url", `{"url":""}`},
		{"no url field", `{}`},
		{"malformed body", `garbage`},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, tc.body)
		}))

		_, err := newTestService(srv.URL).Synthesize(context.Background(), SynthesisRequest{Text: "x", Voice: "Joanna"})
		srv.Close()

		var svcErr *ServiceError
		if !errors.As(err, &svcErr) {
			t.Errorf("%s: expected ServiceError, got %v", tc.name, err)
			continue
		}
		if svcErr.Message != "" {
			t.Errorf("%s: expected no service message, got %q", tc.name, svcErr.Message)
		}
	}
}

func TestSynthesizeTransportError(t *testing.T) {
	// Point at a closed server to force a connection error
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestService(srv.URL).Synthesize(context.Background(), SynthesisRequest{Text: "x", Voice: "Joanna"})
	if err == nil {
		t.Fatal("expected transport error")
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		t.Error("transport failures must not be ServiceError")
	}
}
