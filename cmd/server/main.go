package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mentora-backend/internal/config"
	"mentora-backend/internal/controllers"
	"mentora-backend/internal/handlers"
	"mentora-backend/internal/middleware"
	"mentora-backend/internal/router"
	"mentora-backend/internal/services"
	"mentora-backend/internal/session"
	"mentora-backend/internal/uploads"
	"mentora-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting Mentora Backend...")

	// ──── Step 1: Load Configuration ────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("✗ Configuration error: %v", err)
	}
	log.Printf("✓ Configuration loaded (env=%s, api key from %s)", cfg.Env, cfg.GeminiAPIKeySource)

	// ──── Step 2: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(
		cfg.GeminiAPIKey,
		cfg.GeminiTextModel,
		cfg.GeminiMultimodalModel,
		cfg.GeminiTemperature,
		cfg.GeminiConcurrentReqs,
	)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiService.Close()
	log.Printf("✓ Gemini client initialized (text=%s, multimodal=%s)", cfg.GeminiTextModel, cfg.GeminiMultimodalModel)

	// ──── Step 3: Session Store ────
	store := session.NewStore(cfg.SessionTTL)
	store.StartJanitor(time.Minute)
	log.Printf("✓ Session store started (idle TTL %s)", cfg.SessionTTL)

	// ──── Step 4: Feature Controllers ────
	if err := os.MkdirAll(cfg.TempDir, 0o700); err != nil {
		log.Fatalf("✗ Temp directory %s unavailable: %v", cfg.TempDir, err)
	}
	policy := uploads.DefaultPolicy(cfg.MaxUploadMB)
	dispatcher := controllers.NewDispatcher(&controllers.Deps{
		Generator:   geminiService,
		Policy:      policy,
		TempDir:     cfg.TempDir,
		Extractor:   services.NewFileExtractService(),
		Videos:      services.NewYouTubeService(),
		Analyzers:   services.DefaultAnalyzers(),
		Temperature: cfg.GeminiTemperature,
	})
	log.Printf("✓ Feature controllers ready (uploads up to %dMB)", cfg.MaxUploadMB)

	// ──── Step 5: Handlers & WebSocket Hub ────
	sessionAuth := middleware.NewSessionAuth(cfg.SessionSecret, cfg.SessionTTL)
	sessionHandler := handlers.NewSessionHandler(store, sessionAuth)
	featureHandler := handlers.NewFeatureHandler(store, dispatcher, policy)
	wsHub := websocket.NewHub(sessionAuth, store, dispatcher, cfg.FrontendURL)
	log.Println("✓ WebSocket hub started")

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		sessionAuth,
		sessionHandler,
		featureHandler,
		wsHub,
		cfg.RequestsPerMinute,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 60 * time.Second,
		// Multimodal generations can run for minutes.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		store.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Mentora Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws/tutor", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
