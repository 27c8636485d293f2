package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"isms-assistant/config"
	_ "isms-assistant/docs" // Swagger docs
	"isms-assistant/internal/assistant"
	assistantHTTP "isms-assistant/internal/assistant/delivery/http"
	llmRepo "isms-assistant/internal/assistant/repository/llm"
	"isms-assistant/internal/assistant/usecase"
	"isms-assistant/internal/httpserver"
	"isms-assistant/internal/intent"
	"isms-assistant/internal/middleware"
	"isms-assistant/internal/routing"
	"isms-assistant/internal/session"
	"isms-assistant/pkg/llmprovider"
	"isms-assistant/pkg/log"
	"isms-assistant/pkg/verinice"
)

// @title       ISMS Assistant API
// @description Conversational assistant for verinice ISMS object management, reporting, and knowledge questions.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting ISMS Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "verinice URL: %s", cfg.Verinice.URL)

	// 3. verinice object store
	veriniceClient, err := verinice.NewClient(verinice.Config{
		BaseURL:  cfg.Verinice.URL,
		TokenURL: cfg.Verinice.AuthURL,
		ClientID: cfg.Verinice.ClientID,
		Username: cfg.Verinice.Username,
		Password: cfg.Verinice.Password,
		Timeout:  parseDuration(cfg.Verinice.Timeout, 30*time.Second),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize verinice client: ", err)
		return
	}

	// 4. LLM provider chain (optional; the assistant degrades to
	// pattern routing and catalog answers without it)
	var manager *llmprovider.Manager
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil || len(providers) == 0 {
		logger.Warnf(ctx, "No LLM providers available: %v", err)
	} else {
		manager = llmprovider.NewManager(providers, &llmprovider.Config{
			FallbackEnabled: cfg.LLM.FallbackEnabled,
			RetryAttempts:   cfg.LLM.RetryAttempts,
			RetryDelay:      parseDuration(cfg.LLM.RetryDelay, time.Second),
			MaxTotalTimeout: parseDuration(cfg.LLM.MaxTotalTimeout, 60*time.Second),
		}, logger)
		logger.Infof(ctx, "LLM provider chain initialized with %d provider(s)", len(providers))
	}

	var reasoner assistant.Reasoner
	var intents routing.IntentClassifier
	if manager != nil {
		reasoner = llmRepo.New(manager, logger)
		intents = intent.New(manager, logger)
	}

	// 5. Sessions and routing
	sessions := session.NewManager(logger, session.Config{
		Capacity:     cfg.Session.Capacity,
		TTL:          parseDuration(cfg.Session.TTL, 30*time.Minute),
		HistoryLimit: cfg.Session.HistoryLimit,
	})

	followUps := routing.NewFollowUpStateMachine()
	candidate := routing.NewChain(logger, followUps, intents, cfg.Router.IntentThreshold)

	var router routing.Router = candidate
	var comparator *routing.Comparator
	if cfg.Router.ShadowEnabled {
		// The legacy router is the pattern-only chain; the comparator
		// logs every disagreement with the classifier-backed one.
		legacy := routing.NewChain(logger, followUps, nil, cfg.Router.IntentThreshold)
		comparator = routing.NewComparator(logger, legacy, candidate, cfg.Router.CandidateAuthoritative, cfg.Router.ShadowLogCapacity)
		router = comparator
		logger.Info(ctx, "Shadow routing comparison enabled")
	}

	// 6. Assistant domain
	assistantUC := usecase.New(logger, router, followUps, veriniceClient, reasoner, nil, sessions)
	assistantHandler := assistantHTTP.New(logger, assistantUC, comparator)

	// 7. HTTP Server
	mw := middleware.New(logger, middleware.RateLimitConfig{
		Enabled:        cfg.RateLimit.Enabled,
		RequestsPerMin: cfg.RateLimit.RequestsPerMin,
	})

	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:           logger,
		Port:             cfg.HTTPServer.Port,
		Mode:             cfg.HTTPServer.Mode,
		Environment:      cfg.Environment.Name,
		AssistantHandler: assistantHandler,
		Middleware:       mw,
		DebugRoutes:      cfg.Router.ShadowEnabled,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
