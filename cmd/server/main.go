package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"sleepsense/internal/api"
	"sleepsense/internal/config"
	"sleepsense/internal/logging"
	"sleepsense/internal/predictor"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	// Artifacts load exactly once; serving must not start without them.
	pred, err := predictor.Load(cfg.Model.Path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Model.Path).Msg("Failed to load artifact bundle")
	}

	meta := pred.Metadata()
	logging.Info().
		Str("algorithm", meta.Algorithm).
		Float64("accuracy", meta.Accuracy).
		Int("samples", meta.Samples).
		Msg("Artifact bundle loaded")

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewRouter(api.NewHandler(pred)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logging.Info().Msg("Shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logging.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}()

	logging.Info().Str("addr", cfg.Server.Addr).Msg("Server starting")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal().Err(err).Msg("Server failed")
	}

	<-done
}
