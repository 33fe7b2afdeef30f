package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"csekit/internal/config"
	"csekit/internal/cse"
	"csekit/internal/logger"
	"csekit/internal/report"
	"csekit/internal/store"
)

func main() {
	var (
		configPath = flag.String("config", "configs/config.yaml", "config file path")
		limit      = flag.Int("limit", 0, "maximum number of files to download (0 = all)")
		company    = flag.String("company", "", "only download reports whose company name contains this text")
		symbols    = flag.String("symbols", "", "comma-separated symbols to download reports for")
		fromDate   = flag.String("from", "", "filter announcements from this date (YYYY-MM-DD)")
		toDate     = flag.String("to", "", "filter announcements up to this date (YYYY-MM-DD)")
		security   = flag.String("security", "", "resolve this symbol or name to a security ID and filter by it")
	)
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetDefault(logger.New(cfg.Logging))

	client := cse.NewClient(&cfg.API)
	ctx := context.Background()

	var companyIDs string
	if *security != "" {
		st := store.New(cfg.Data.CompanyDir)
		defer st.Close()
		if _, err := st.LoadCompanies(); err != nil {
			log.Fatalf("Failed to load company register (run the companies tool first): %v", err)
		}
		id, ok := st.FindSecurityID(*security)
		if !ok {
			log.Fatalf("No security matches %q", *security)
		}
		companyIDs = fmt.Sprintf("%d", id)
		fmt.Printf("Resolved %q to security ID %s\n", *security, companyIDs)
	}

	var resp *cse.Response
	if *fromDate != "" && *toDate != "" {
		resp = client.FinancialAnnouncementsFiltered(ctx, *fromDate, *toDate, companyIDs)
	} else {
		resp = client.FinancialAnnouncements(ctx)
	}
	if !resp.Success {
		log.Fatalf("Failed to fetch financial announcements: %s", resp.Error)
	}

	announcements, err := cse.DecodeFinancialAnnouncements(resp)
	if err != nil {
		log.Fatalf("Failed to decode announcements: %v", err)
	}
	fmt.Printf("Found %d financial announcements\n", len(announcements))

	opts := report.DownloadOptions{
		Limit:         *limit,
		CompanyFilter: *company,
	}
	if *symbols != "" {
		opts.Symbols = strings.Split(*symbols, ",")
		opts.Folder = "specific_companies_" + strings.ReplaceAll(*symbols, ",", "_")
	}
	if *company != "" {
		opts.Folder = "all_reports_filtered_" + *company
	}

	downloader := report.NewDownloader(&cfg.API, &cfg.Download, cfg.Data.ReportsDir)
	results, err := downloader.DownloadReports(ctx, announcements, opts)
	if err != nil {
		log.Fatalf("Download run aborted: %v", err)
	}

	var ok, failed int
	for _, result := range results {
		if result.Success {
			ok++
		} else {
			failed++
		}
	}
	fmt.Printf("Successful downloads: %d\n", ok)
	fmt.Printf("Failed downloads: %d\n", failed)
}
