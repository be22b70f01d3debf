package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"atelier/internal/app"
	"atelier/internal/config"
	"atelier/internal/lib/logger/handlers/slogpretty"
	"atelier/internal/lib/logger/sl"
	"atelier/internal/services/probe"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// @title Atelier API
// @version 1.0
// @description Bilingual portfolio content: paintings, pages and gallery settings.
// @BasePath /
func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting atelier",
		slog.String("env", cfg.Env),
		slog.String("store", cfg.Store.Backend),
		slog.String("images", cfg.ImageStorage.Backend),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	application, err := app.New(ctx, log, cfg)
	if err != nil {
		log.Error("failed to init app", sl.Err(err))
		os.Exit(1)
	}

	if !application.Probe.IsAvailable(ctx) {
		s := application.Probe.Check(ctx)
		log.Warn("store is not ready, admin routes answer setup_required",
			slog.String("status", string(s)),
			slog.String("hint", probe.Describe(s)),
		)
	}

	go func() {
		application.HTTPServer.BuildRouters()
		application.HTTPServer.MustRun()
	}()

	// Graceful shutdown
	<-ctx.Done()

	if err := application.HTTPServer.Stop(); err != nil {
		log.Error("http server stop", sl.Err(err))
	}
	application.Close()

	log.Info("Gracefully stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
