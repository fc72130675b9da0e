// Package main is the entry point for the BrandForge studio server.
// It loads configuration, wires the AI provider registry and the in-memory
// session layer, sets up routing, and starts the HTTP server with graceful
// shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"brandforge/internal/ai"
	"brandforge/internal/campaign"
	"brandforge/internal/config"
	"brandforge/internal/handlers"
	"brandforge/internal/media"
	"brandforge/internal/middleware"
	"brandforge/internal/render"
	"brandforge/internal/router"
	"brandforge/internal/session"
)

func main() {
	// Local development convenience; a missing .env file is not an error.
	_ = godotenv.Load()

	// Structured logger. Text output reads better for a single service.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Initialize the HTML template renderer for studio pages.
	// In dev mode, templates load assets from CDN; in production they use
	// compiled local files embedded in the binary.
	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Initialize the AI provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai": {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
		"gemini": {
			APIKey:     cfg.GeminiKey,
			Model:      cfg.GeminiModel,
			ModelImage: cfg.GeminiModelImage,
			ModelVideo: cfg.GeminiModelVideo,
			BaseURL:    cfg.GeminiBaseURL,
		},
		"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
	})

	// If the configured provider has no key but another does, fall back to
	// the first one that was actually registered.
	if !aiRegistry.HasProvider(cfg.AIProvider) {
		if avail := aiRegistry.Available(); len(avail) > 0 {
			if err := aiRegistry.SetActive(avail[0]); err != nil {
				slog.Error("failed to activate fallback provider", "provider", avail[0], "error", err)
				os.Exit(1)
			}
			slog.Warn("configured AI provider has no API key, falling back",
				"configured", cfg.AIProvider, "using", avail[0])
		}
	}

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	// All generated blobs live in memory, scoped per session.
	blobs := media.NewStore()

	// The generation clients are shared; each session gets its own workspace.
	extractor := &campaign.Extractor{AI: aiRegistry}
	ideator := &campaign.Ideator{AI: aiRegistry}
	drafter := &campaign.Drafter{AI: aiRegistry, Media: blobs}
	animator := &campaign.Animator{
		AI:           aiRegistry,
		Media:        blobs,
		PollInterval: cfg.AnimationPollInterval,
		Timeout:      cfg.AnimationTimeout,
	}

	sessionStore := session.NewStore(func(id string) *campaign.Workspace {
		return campaign.NewWorkspace(id, extractor, ideator, drafter, animator, blobs)
	})

	// Reap expired sessions (and their media) in the background.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if n := sessionStore.Reap(); n > 0 {
				slog.Info("reaped expired sessions", "count", n)
			}
		}
	}()

	// Rate limit the endpoints that spend provider quota.
	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer limiter.Stop()

	studio := handlers.NewStudio(renderer, aiRegistry, blobs, sessionStore)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, studio, limiter)

	// Create the HTTP server. The write timeout must accommodate the
	// animation flow, which blocks while the video render polls.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.AnimationTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
