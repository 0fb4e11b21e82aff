package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"signage/internal/domain/signage"
	"signage/internal/fontmetrics"
	"signage/internal/http/handlers"
	httpapi "signage/internal/http/httpapi"
	"signage/internal/infra"
)

const version = "1.0.0"

func main() {
	// Optional .env
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.ServiceName)

	// Fails only when even the packaged fallback face cannot be parsed.
	provider, err := fontmetrics.NewProvider(logger, cfg.FontDirs)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise font metrics")
	}

	app := handlers.NewApp(signage.NewValidator(provider), provider, logger, cfg.ServiceName, version)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on %s", server.Addr())
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
