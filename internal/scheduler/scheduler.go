package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"StockScout/internal/analyst"
	"StockScout/internal/collector"
	"StockScout/internal/config"
	"StockScout/internal/model"
	"StockScout/internal/news"
	"StockScout/internal/notifier"
	"StockScout/internal/recorder"
	"StockScout/internal/scanner"
)

// Scheduler owns the cron-registered daily scan and its orchestration:
// run the three strategies over the universe, enrich the merged symbols
// with headlines and an AI narrative, deliver, record.
type Scheduler struct {
	Cron     *cron.Cron
	Cfg      *config.Config
	Fetcher  collector.Fetcher
	Universe []string
	News     *news.Client
	Analyst  *analyst.GeminiAnalyst // nil when narrative generation is disabled
	Notifier *notifier.SendGridNotifier
	Recorder recorder.Recorder
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, cfg *config.Config, fetcher collector.Fetcher, tickers []string,
	newsClient *news.Client, an *analyst.GeminiAnalyst, nt *notifier.SendGridNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Cfg:      cfg,
		Fetcher:  fetcher,
		Universe: tickers,
		News:     newsClient,
		Analyst:  an,
		Notifier: nt,
		Recorder: rec,
		Ctx:      ctx,
	}
}

// RegisterAll registers the daily scan task.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyScan); err != nil {
		return fmt.Errorf("register daily scan: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the daily scan immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.dailyScan()
}

func (s *Scheduler) dailyScan() {
	start := time.Now()
	log.Printf("[INFO] scanning %d stocks...", len(s.Universe))

	report, skipped, failed := s.runScanners()

	rec := &recorder.RunRecord{
		StartedAt: start,
		Universe:  len(s.Universe),
		Skipped:   skipped,
		Failed:    failed,
	}

	if report.Empty() {
		log.Println("[INFO] no stocks matched any strategy")
		rec.Duration = time.Since(start)
		s.record(rec, report)
		return
	}

	symbols := report.Symbols()
	log.Printf("[INFO] found %d symbols of interest: drops=%d rsi=%d crosses=%d",
		len(symbols), len(report.Drops), len(report.Rsi), len(report.Crosses))

	newsMap := s.fetchNews(symbols)
	aiHTML := s.narrative(report, newsMap)

	html := notifier.FormatReport(report, newsMap, aiHTML)
	subject := notifier.FormatSubject(report)
	if err := s.Notifier.SendWithRetry(s.Ctx, subject, html, 3); err != nil {
		log.Printf("[ERROR] send report: %v", err)
	} else {
		rec.Delivered = true
		log.Println("[INFO] report email sent")
	}

	rec.Duration = time.Since(start)
	s.record(rec, report)
}

// runScanners executes the three strategies sequentially, each chunked
// and paced internally. Per-symbol failures are already swallowed by
// the batch runner; the totals come back for observability.
func (s *Scheduler) runScanners() (*model.ScanReport, int, int) {
	cfg := s.Cfg.Scan
	pacing := time.Duration(cfg.PacingMs) * time.Millisecond
	report := &model.ScanReport{RunAt: time.Now()}
	var skipped, failed int

	dropScanner := scanner.NewDropScanner(s.Fetcher, cfg.DropLookbackDays, cfg.DropBufferDays, cfg.DropThreshold)
	drops, stats := scanner.RunBatched(s.Ctx, s.Universe, cfg.ChunkSize, scanner.NewIntervalPacer(pacing), dropScanner.Scan)
	report.Drops = drops
	skipped += stats.Skipped
	failed += stats.Failed
	log.Printf("[INFO] drop scan: %d hits, %d skipped, %d failed", stats.Hits, stats.Skipped, stats.Failed)

	rsiScanner := scanner.NewRsiScanner(s.Fetcher, cfg.RsiPeriod, cfg.RsiHistoryDays, cfg.RsiOversold, cfg.RsiOverbought)
	rsi, stats := scanner.RunBatched(s.Ctx, s.Universe, cfg.ChunkSize, scanner.NewIntervalPacer(pacing), rsiScanner.Scan)
	report.Rsi = rsi
	skipped += stats.Skipped
	failed += stats.Failed
	log.Printf("[INFO] rsi scan: %d hits, %d skipped, %d failed", stats.Hits, stats.Skipped, stats.Failed)

	crossScanner := scanner.NewCrossScanner(s.Fetcher, cfg.CrossHistoryDays)
	crosses, stats := scanner.RunBatched(s.Ctx, s.Universe, cfg.ChunkSize, scanner.NewIntervalPacer(pacing), crossScanner.Scan)
	report.Crosses = crosses
	skipped += stats.Skipped
	failed += stats.Failed
	log.Printf("[INFO] cross scan: %d hits, %d skipped, %d failed", stats.Hits, stats.Skipped, stats.Failed)

	return report, skipped, failed
}

func (s *Scheduler) fetchNews(symbols []string) map[string][]model.StockNews {
	newsMap := make(map[string][]model.StockNews)
	if s.News == nil {
		return newsMap
	}
	for _, symbol := range symbols {
		items, err := s.News.FetchStockNews(s.Ctx, symbol)
		if err != nil {
			log.Printf("[WARN] news for %s: %v", symbol, err)
			continue
		}
		if len(items) > 0 {
			newsMap[symbol] = items
		}
	}
	return newsMap
}

func (s *Scheduler) narrative(report *model.ScanReport, newsMap map[string][]model.StockNews) string {
	if s.Analyst == nil {
		return ""
	}
	text, err := s.Analyst.Analyze(s.Ctx, report, newsMap)
	if err != nil {
		log.Printf("[WARN] AI analysis: %v", err)
		return "<p><i>AI analysis unavailable.</i></p>"
	}
	return text
}

func (s *Scheduler) record(rec *recorder.RunRecord, report *model.ScanReport) {
	if err := s.Recorder.RecordRun(rec, report); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}
