package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vit0-9/imagefetch_api/pkg/config"
	"github.com/vit0-9/imagefetch_api/pkg/logger"
	"github.com/vit0-9/imagefetch_api/pkg/safefetch"
	"github.com/vit0-9/imagefetch_api/pkg/storage"
	"github.com/vit0-9/imagefetch_api/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	store, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.PublicBaseURL, cfg.Upload.AllowedScopes)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Upload.Dir).Msg("Failed to prepare upload directory")
	}

	geo := utils.OpenGeoIP(cfg.GeoIP.CityDBPath, cfg.GeoIP.ASNDBPath, log)
	defer geo.Close()

	fetcher := safefetch.NewFetcher(fetchOptions(cfg, log))

	app, err := NewApp(cfg, log, fetcher, store, geo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
		geo.Close()
		os.Exit(1)
	}
	log.Info().Msg("Server stopped")
}

func fetchOptions(cfg *config.Config, log zerolog.Logger) safefetch.Options {
	maxRedirects := cfg.Fetch.MaxRedirects
	if maxRedirects == 0 {
		// zero in Options selects the default budget
		maxRedirects = -1
	}
	return safefetch.Options{
		Timeout:      cfg.Fetch.Timeout,
		MaxRedirects: maxRedirects,
		MaxBytes:     cfg.Upload.MaxBytes,
		UserAgent:    cfg.Fetch.UserAgent,
		Resolver:     net.DefaultResolver,
		Logger:       log,
	}
}
