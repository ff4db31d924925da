package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/alfurqan/prayertrack-backend/internal/config"
	"github.com/alfurqan/prayertrack-backend/internal/handler"
	"github.com/alfurqan/prayertrack-backend/internal/logger"
	"github.com/alfurqan/prayertrack-backend/internal/repository"
	"github.com/alfurqan/prayertrack-backend/internal/router"
	"github.com/alfurqan/prayertrack-backend/internal/service"
	"github.com/alfurqan/prayertrack-backend/internal/store"
	"github.com/alfurqan/prayertrack-backend/internal/validator"
	"github.com/alfurqan/prayertrack-backend/internal/ws"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("data_file", cfg.DataFile).
		Msg("Starting PrayerTrack Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Initialize Document Store ─────────────────────────────────────
	// Load once up front so a missing file is created before traffic
	// arrives and an unreadable one fails fast.
	st := store.New(cfg.DataFile, log)
	if _, err := st.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize document store")
	}

	// ─── Initialize Subscriber Hub ─────────────────────────────────────
	registry := ws.NewRegistry(log)
	broadcaster := ws.NewBroadcaster(registry, log)

	// ─── Initialize Repositories ───────────────────────────────────────
	classRepo := repository.NewClassRepository(st)
	studentRepo := repository.NewStudentRepository(st)
	attendanceRepo := repository.NewAttendanceRepository(st)

	// ─── Initialize Services ──────────────────────────────────────────
	classService := service.NewClassService(classRepo, broadcaster)
	studentService := service.NewStudentService(studentRepo, broadcaster)
	attendanceService := service.NewAttendanceService(attendanceRepo, broadcaster)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Class:      handler.NewClassHandler(classService),
		Student:    handler.NewStudentHandler(studentService),
		Attendance: handler.NewAttendanceHandler(attendanceService),
		WS:         handler.NewWSHandler(registry, log, cfg.AllowedOrigins),
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

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Drain and close all live subscribers.
	registry.Close()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
