package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tavola-app/backend/config"
	"github.com/tavola-app/backend/internal/api"
	"github.com/tavola-app/backend/internal/database"
	"github.com/tavola-app/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	opts := api.Options{CacheTTL: cfg.SuggestionCacheTTL}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, continuing without caching and rate limiting: %v", err)
	} else {
		opts.Redis = redisClient
	}

	if config.IsProduction() || os.Getenv("S3_BUCKET_NAME") != "" {
		s3cfg, err := config.NewS3Config(context.Background())
		if err != nil {
			log.Printf("S3 unavailable, photo uploads disabled: %v", err)
		} else {
			opts.S3 = s3cfg
		}
	}

	srv := server.New(cfg, db, opts)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on port %s", cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	case sig := <-quit:
		log.Printf("Received signal %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
