package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"StockScout/internal/analyst"
	"StockScout/internal/collector"
	"StockScout/internal/config"
	"StockScout/internal/news"
	"StockScout/internal/notifier"
	"StockScout/internal/recorder"
	"StockScout/internal/scheduler"
	"StockScout/internal/universe"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockScout starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Load ticker universe; an empty universe aborts the whole run.
	tickers, err := universe.Load(cfg.Universe.File)
	if err != nil {
		log.Fatalf("[FATAL] load universe: %v", err)
	}
	log.Printf("[INFO] universe loaded: %d tickers", len(tickers))

	// Init fetcher
	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init collaborators
	newsClient := news.NewClient(cfg.Proxy)
	mail := notifier.NewSendGridNotifier(cfg.SendGrid.APIKey, cfg.SendGrid.From, cfg.SendGrid.To, cfg.Proxy)

	var an *analyst.GeminiAnalyst
	if cfg.Gemini.APIKey != "" {
		an, err = analyst.NewGeminiAnalyst(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Printf("[WARN] init gemini analyst failed, narratives disabled: %v", err)
		}
	} else {
		log.Println("[INFO] no gemini api key, narratives disabled")
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, cfg, fetcher, tickers, newsClient, an, mail, rec)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing daily scan now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] StockScout is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] StockScout stopped")
}
