package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"csekit/internal/config"
	"csekit/internal/cse"
	"csekit/internal/logger"
	"csekit/internal/report"
	"csekit/internal/store"
)

func main() {
	var (
		configPath = flag.String("config", "configs/config.yaml", "config file path")
		daysBack   = flag.Int("days", 180, "look-back window for announcements in days")
		maxDetails = flag.Int("details", 20, "fetch detail payloads for at most N announcements (0 = all)")
		watch      = flag.String("watch", "", "cron schedule to re-run on (e.g. \"0 18 * * 1-5\"); empty runs once")
	)
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetDefault(logger.New(cfg.Logging))

	client := cse.NewClient(&cfg.API)
	st := store.New(cfg.Data.CompanyDir)
	defer st.Close()
	tracker := report.NewTracker(client, st)

	if *watch == "" {
		if err := run(context.Background(), tracker, cfg, *daysBack, *maxDetails); err != nil {
			log.Fatalf("Dividend run failed: %v", err)
		}
		return
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(*watch, func() {
		if err := run(context.Background(), tracker, cfg, *daysBack, *maxDetails); err != nil {
			logger.Error("scheduled dividend run failed", "error", err)
		}
	}); err != nil {
		log.Fatalf("Invalid cron schedule %q: %v", *watch, err)
	}
	scheduler.Start()
	logger.Info("dividend watcher started", "schedule", *watch)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down dividend watcher")
	<-scheduler.Stop().Done()
}

func run(ctx context.Context, tracker *report.Tracker, cfg *config.Config, daysBack, maxDetails int) error {
	announcements, err := tracker.FetchDividends(ctx, daysBack)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d dividend announcements in the last %d days\n", len(announcements), daysBack)

	details := tracker.FetchDetails(ctx, announcements, maxDetails)
	fmt.Printf("Enriched %d announcements with detail payloads\n", len(details))

	dir, err := store.EnsureDir(cfg.Data.ReportsDir)
	if err != nil {
		return err
	}

	events := report.BuildCalendar(details)
	calendarPath, err := report.SaveCalendarCSV(dir, events)
	if err != nil {
		return err
	}
	fmt.Printf("Calendar (%d events): %s\n", len(events), calendarPath)

	summary := report.AnalyzeTrends(details)
	fmt.Printf("Dividends analyzed: %d, average LKR %s/share\n",
		summary.Stats.TotalAnalyzed, summary.Stats.Average.StringFixed(2))
	for i, payer := range summary.TopPayers {
		if i >= 5 {
			break
		}
		fmt.Printf("%3d. %-12s LKR %s/share\n", i+1, payer.Symbol, payer.DividendPerShare.String())
	}

	excelPath, err := report.SaveDividendsExcel(dir, details)
	if err != nil {
		return err
	}
	fmt.Printf("Workbook: %s\n", excelPath)
	return nil
}
