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

	"chatgate-backend/internal/config"
	"chatgate-backend/internal/handlers"
	"chatgate-backend/internal/middleware"
	"chatgate-backend/internal/router"
	"chatgate-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Chatgate Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")
	if cfg.Misconfigured() {
		log.Printf("⚠ Configuration incomplete: %v — affected features will fail closed", cfg.MissingKeys)
	}

	// ──── Step 2: Initialize Session Codec ────
	jwtAuth := middleware.NewJWTAuth(cfg.AuthSecret, time.Duration(cfg.SessionTTLMinutes)*time.Minute)
	log.Println("✓ Session token codec initialized")

	// ──── Step 3: Initialize Services ────
	openaiService := services.NewOpenAIService(
		cfg.OpenAIAPIKey,
		cfg.OpenAIModel,
		cfg.OpenAIMaxOutputTokens,
		time.Duration(cfg.OpenAITimeoutSeconds)*time.Second,
	)
	relayService := services.NewRelayService(openaiService)
	authService := services.NewAuthService(cfg, jwtAuth)
	log.Println("✓ Services initialized")

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	chatHandler := handlers.NewChatHandler(relayService)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(jwtAuth, authHandler, chatHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Chatgate Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
