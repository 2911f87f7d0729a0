package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/cpusim/schedview/internal/config"
	"github.com/cpusim/schedview/internal/engine"
	"github.com/cpusim/schedview/internal/handler"
	"github.com/cpusim/schedview/internal/logger"
	"github.com/cpusim/schedview/internal/router"
	"github.com/cpusim/schedview/internal/service"
	"github.com/cpusim/schedview/internal/session"
	"github.com/cpusim/schedview/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("engine", cfg.EngineBaseURL).
		Msg("Starting SchedView Gateway")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Engine Client ─────────────────────────────────────────────────
	engineClient := engine.NewClient(cfg, log)

	// ─── Session Manager + Janitor ─────────────────────────────────────
	manager := session.NewManager(cfg.SessionTTL, log)

	janitorCtx, janitorCancel := context.WithCancel(context.Background())
	go manager.Start(janitorCtx)

	// ─── Initialize Services ──────────────────────────────────────────
	simulationService := service.NewSimulationService(engineClient, log)
	quizService := service.NewQuizService(engineClient, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Session:    handler.NewSessionHandler(manager),
		Process:    handler.NewProcessHandler(manager),
		Simulation: handler.NewSimulationHandler(manager, simulationService),
		Quiz:       handler.NewQuizHandler(manager, quizService),
		WS:         handler.NewWSHandler(manager, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	janitorCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
