package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/quantronics/arxiv-digest/internal/config"
	"github.com/quantronics/arxiv-digest/internal/fetcher"
	"github.com/quantronics/arxiv-digest/internal/keywords"
	"github.com/quantronics/arxiv-digest/internal/publisher"
	"github.com/quantronics/arxiv-digest/internal/runner"
	"github.com/quantronics/arxiv-digest/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.Bool("once", false, "run the pipeline once and exit")
	flag.Parse()

	// A local .env may hold SLACK_BOT_TOKEN; missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.LoggingFile != "" {
		logFile, err := os.OpenFile(cfg.LoggingFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Build publishers
	var pubs []publisher.Publisher
	switch cfg.Publisher {
	case "slack":
		pubs = append(pubs, publisher.NewSlackPublisher(cfg.SlackToken, cfg.SlackChannel, cfg.IncludeAbstract))
	case "stdout":
		pubs = append(pubs, publisher.NewStdoutPublisher(cfg.IncludeAbstract))
	default:
		log.Fatalf("Unknown publisher type: %s", cfg.Publisher)
	}

	// Build runner
	r := runner.New(
		keywords.NewStore(cfg.KeywordsFile),
		fetcher.NewCatchupFetcher(cfg.Archive),
		storage.New(cfg.OutputDir),
		pubs,
		cfg.Threshold,
		cfg.IncludeAbstract,
		cfg.SkipWeekdays(),
	)

	// Single-run mode: run the pipeline once and exit
	if *once {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		log.Println("Running digest (once mode)...")
		res, err := r.Run(ctx, time.Now())
		if err != nil {
			log.Fatalf("Pipeline failed: %v", err)
		}
		log.Printf("Done: %s", res.Outcome)
		return
	}

	// Set up context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Run immediately on startup if configured
	if cfg.RunOnStart {
		log.Println("Running initial digest...")
		if _, err := r.Run(ctx, time.Now()); err != nil {
			log.Printf("Initial run failed: %v", err)
		}
	}

	// Set up cron scheduler
	c := cron.New()
	_, err = c.AddFunc(cfg.CronSpec(), func() {
		log.Println("Cron triggered, running digest...")
		if _, err := r.Run(ctx, time.Now()); err != nil {
			log.Printf("Scheduled run failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to set up cron schedule %q: %v", cfg.CronSpec(), err)
	}
	c.Start()
	log.Printf("Scheduled daily digest at %s (cron %q)", cfg.PostHour, cfg.CronSpec())

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("Received signal %v, shutting down...", sig)

	cancel()
	c.Stop()

	log.Println("Shutdown complete")
}
