package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jadebat79/tts-web/internal/api"
	"github.com/Jadebat79/tts-web/internal/catalog"
	"github.com/Jadebat79/tts-web/internal/config"
	"github.com/Jadebat79/tts-web/internal/services"
	"github.com/Jadebat79/tts-web/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	baseLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer baseLogger.Sync()
	logger := baseLogger.Sugar()

	logger.Infow("starting tts-web API", "port", cfg.APIPort)

	// Remote speech service client
	speech := services.NewRemoteSpeechService(cfg.SpeechServiceURL, logger)
	if cfg.SpeechServiceURL == "" {
		logger.Warn("TTS_SERVICE_URL not set — catalog will run in fallback mode")
	}

	// Load the voice catalog: exactly one fetch per process lifetime.
	// A failed load is non-fatal; the loader substitutes the built-in voice.
	loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	cat := catalog.NewLoader(speech, logger).Load(loadCtx)
	cancel()
	logger.Infow("catalog ready", "source", string(cat.Source), "languages", len(cat.Languages))

	// Session registry (in-memory, transient by design)
	sessions := store.New()

	// Create API handler
	handler := api.NewHandler(cat, sessions, speech, cfg.MaxTextChars, cfg.HistoryLimit, logger)
	router := api.NewRouter(handler, api.RouterConfig{
		BackendAPIKey:       cfg.BackendAPIKey,
		CorsAllowedOrigins:  cfg.CorsAllowedOrigins,
		SynthesizeRateLimit: cfg.SynthesizeRateLimit,
	})

	if cfg.BackendAPIKey != "" {
		logger.Info("API key authentication enabled")
	} else {
		logger.Warn("no BACKEND_API_KEY set — API is unprotected (dev mode)")
	}

	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: router,
	}

	// Run the server until interrupted, then shut down gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infof("API server listening on :%s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatalw("server error", "error", err)
	}

	logger.Info("server exited")
}
