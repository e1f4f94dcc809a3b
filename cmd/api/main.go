package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Manavarya09/Synthia-Studio/internal/http/handlers"
	"github.com/Manavarya09/Synthia-Studio/internal/http/httpapi"
	"github.com/Manavarya09/Synthia-Studio/internal/infra"
	"github.com/Manavarya09/Synthia-Studio/internal/infra/geoip"
	"github.com/Manavarya09/Synthia-Studio/internal/middleware"
	"github.com/Manavarya09/Synthia-Studio/internal/providers/dashscope"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if cfg.DashScopeAPIKey == "" {
		logger.Warn().Msg("DASHSCOPE_API_KEY is not set; generation endpoints will answer 500 until it is configured")
	}

	client, err := dashscope.NewClient(dashscope.FromConfig(cfg, &logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build dashscope client")
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open geoip database")
	}
	var lookup middleware.CountryLookup
	if resolver != nil {
		defer resolver.Close()
		lookup = resolver.CountryCode
	}

	app := handlers.NewApp(cfg, logger, client)
	router := httpapi.NewRouter(app, lookup)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

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
