package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recallboard/internal/config"
	"recallboard/internal/dataset"
	"recallboard/internal/metrics"
	"recallboard/internal/server"
)

func main() {
	cfg := config.Load()

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load yaml config: %v", err)
	}
	if yamlCfg != nil {
		log.Println("Loaded recalls.yaml")
	}

	// Dataset store over local shard files or an upstream static host
	var fetcher dataset.Fetcher
	if cfg.DatasetBaseURL != "" {
		fetcher = dataset.NewHTTPFetcher(cfg.DatasetBaseURL)
		log.Printf("Reading shards from %s", cfg.DatasetBaseURL)
	} else {
		fetcher = &dataset.DirFetcher{Dir: cfg.DatasetDir}
		log.Printf("Reading shards from %s/", cfg.DatasetDir)
	}

	mapper := config.NewFaultMapper(yamlCfg)
	store := dataset.New(fetcher, mapper.Map)
	store.OnLoad = metrics.ShardLoadHook
	metrics.Init(store)

	opts := dataset.StatsOptions{
		TimelineFrom: yamlCfg.TimelineFrom(),
		TimelineTo:   yamlCfg.TimelineTo(),
		TopModels:    yamlCfg.TopModelsLimit(),
	}

	// Warm the cache so the first dashboard request doesn't pay for ten
	// shard loads. Failure is not fatal: shards retry lazily per query.
	if cfg.PreloadShards {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if _, err := store.LoadAll(ctx); err != nil {
				log.Printf("Warning: shard preload failed: %v", err)
			}
		}()
	}

	srv := server.New(cfg)
	srv.RegisterRoutes(store, opts)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
