package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"csekit/internal/config"
	"csekit/internal/cse"
	"csekit/internal/logger"
	"csekit/internal/report"
	"csekit/internal/store"
)

func main() {
	var (
		configPath = flag.String("config", "configs/config.yaml", "config file path")
		limit      = flag.Int("limit", 0, "analyze at most this many companies (0 = all)")
		top        = flag.Int("top", 10, "print the top N movers by daily change")
		excel      = flag.Bool("excel", true, "also write an Excel workbook")
	)
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetDefault(logger.New(cfg.Logging))

	st := store.New(cfg.Data.CompanyDir)
	defer st.Close()
	companies, err := st.LoadCompanies()
	if err != nil {
		log.Fatalf("Failed to load company register (run the companies tool first): %v", err)
	}
	fmt.Printf("Loaded %d companies from register\n", len(companies))

	client := cse.NewClient(&cfg.API)
	analysis := report.NewAnalyzer(client).Analyze(context.Background(), companies, *limit)

	fmt.Printf("Analyzed: %d, failed: %d\n", len(analysis.Results), len(analysis.Failed))

	if *top > 0 {
		fmt.Printf("\nTop %d movers by daily change:\n", *top)
		for i, result := range analysis.TopByChange(*top) {
			fmt.Printf("%3d. %-12s %+.2f%%  %s\n", i+1, result.Symbol, result.ChangePercentage, result.Metrics.RiskCategory)
		}
	}

	dir, err := store.EnsureDir(cfg.Data.ReportsDir)
	if err != nil {
		log.Fatalf("Failed to create reports dir: %v", err)
	}

	jsonPath, err := analysis.SaveJSON(dir)
	if err != nil {
		log.Fatalf("Failed to write JSON report: %v", err)
	}
	fmt.Printf("JSON report: %s\n", jsonPath)

	if *excel {
		excelPath, err := analysis.SaveExcel(dir)
		if err != nil {
			log.Fatalf("Failed to write Excel report: %v", err)
		}
		fmt.Printf("Excel report: %s\n", excelPath)
	}
}
