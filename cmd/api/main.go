// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/earthyai/chat-backend/internal/chat"
	"github.com/earthyai/chat-backend/internal/config"
	"github.com/earthyai/chat-backend/internal/handler"
	"github.com/earthyai/chat-backend/internal/lead"
	"github.com/earthyai/chat-backend/internal/llm"
	mailer "github.com/earthyai/chat-backend/internal/mail"
	"github.com/earthyai/chat-backend/internal/middleware"
	"github.com/earthyai/chat-backend/pkg/logger"
	"github.com/earthyai/chat-backend/pkg/tracing"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting API server")

	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "earthy-chat-backend", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Completion provider: OpenAI preferred, Anthropic as the alternate.
	// The process keeps serving without either; /chat answers with the
	// apology until a credential is configured.
	var llmClient llm.Client
	switch {
	case cfg.OpenAIAPIKey != "":
		llmClient, err = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
		if err != nil {
			log.Warn("failed to create OpenAI client", zap.Error(err))
		}
	case cfg.AnthropicAPIKey != "":
		llmClient, err = llm.NewAnthropicClient(cfg.AnthropicAPIKey)
		if err != nil {
			log.Warn("failed to create Anthropic client", zap.Error(err))
		}
	default:
		log.Warn("no completion provider credential set")
	}

	policy := chat.Policy{
		Persona:           cfg.Persona,
		PricingDisclosure: cfg.PricingDisclosure,
		LeadGate: chat.LeadGate{
			MinUserTurns:   cfg.LeadMinUserTurns,
			IntentKeywords: chat.DefaultIntentKeywords,
		},
	}

	chatSvc := chat.NewService(policy, llmClient, chat.CompletionParams{
		Model:       cfg.CompletionModel,
		MaxTokens:   cfg.CompletionMaxTokens,
		Temperature: cfg.CompletionTemperature,
		Timeout:     cfg.CompletionTimeout,
	}, log)

	// Lead mail is optional; /api/lead answers 503 when unconfigured.
	var leadMailer mailer.Mailer
	if cfg.LeadMailConfigured() {
		m, err := mailer.NewResendMailer(cfg.ResendAPIKey, cfg.LeadFromEmail, cfg.LeadToEmail)
		if err != nil {
			log.Warn("failed to create mailer, lead capture disabled", zap.Error(err))
		} else {
			leadMailer = m
		}
	} else {
		log.Info("lead mail not configured, /api/lead disabled")
	}
	leadSvc := lead.NewService(leadMailer, cfg.LeadDispatchTimeout, log)

	healthHandler := handler.NewHealthHandler()
	chatHandler := handler.NewChatHandler(chatSvc, log)
	leadHandler := handler.NewLeadHandler(leadSvc, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		ExposedHeaders: []string{"X-Correlation-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

	r.Get("/", healthHandler.Live)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/chat", chatHandler.Chat)
	r.Post("/api/lead", leadHandler.Submit)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
