package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogfront/internal/config"
	"blogfront/internal/dates"
	"blogfront/internal/fetcher"
	"blogfront/internal/images"
	"blogfront/internal/logger"
	"blogfront/internal/pages"
	"blogfront/internal/render"
	"blogfront/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", os.Getenv("BLOG_CONFIG"), "path to config file (json, yaml or toml)")
	flag.Parse()

	logger.Init("")

	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Log.Warnf("Failed to read .env: %v", err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Log.Fatalf("Config load error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Log.Fatalf("Invalid config: %v", err)
	}

	logger.SetLevel(cfg.LogLevel)
	defer logger.Log.Info("Application stopped")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loc, err := cfg.TimeLocation()
	if err != nil {
		logger.Log.Fatalf("Invalid location: %v", err)
	}

	filter, err := images.NewFilterFromConfig(cfg.PlaceholderImage, cfg.BlockedImageSubstrings, cfg.BlockedImagePatterns)
	if err != nil {
		logger.Log.Fatalf("Image filter error: %v", err)
	}

	builder := pages.NewBuilder(dates.NewParser(loc), filter, pages.Options{
		PageSize:      cfg.PageSize,
		SnippetLength: cfg.SnippetLength,
	})

	renderer, err := render.New(cfg.MinifyHTML)
	if err != nil {
		logger.Log.Fatalf("Template error: %v", err)
	}

	source, err := fetcher.NewSource(ctx, cfg.FeedURL, cfg.FetchTimeout.Std())
	if err != nil {
		logger.Log.Fatalf("Feed source error: %v", err)
	}
	if c, ok := source.(interface{ Close() }); ok {
		defer c.Close()
	}
	logger.Log.WithFields(logger.Fields{
		"source":    source.Name(),
		"page_size": cfg.PageSize,
	}).Info("Feed source ready")

	srv := server.NewServer(source, builder, renderer, server.NewMetrics(), cfg.SiteTitle)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Log.Infof("Starting HTTP server on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down...")
	ctxShutdown, cancelShutdown := context.WithTimeout(ctx, 5*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		logger.Log.Errorf("Forced shutdown: %v", err)
	}
}
