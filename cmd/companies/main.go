package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"csekit/internal/config"
	"csekit/internal/cse"
	"csekit/internal/logger"
	"csekit/internal/report"
	"csekit/internal/store"
)

func main() {
	var (
		configPath = flag.String("config", "configs/config.yaml", "config file path")
		letter     = flag.String("letter", "", "fetch a single letter instead of the full A-Z sweep")
		csvOut     = flag.Bool("csv", true, "also write a timestamped CSV snapshot")
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

	if *letter != "" {
		resp := client.CompaniesByLetter(ctx, *letter)
		if !resp.Success {
			log.Fatalf("Failed to fetch companies for %q: %s", *letter, resp.Error)
		}
		companies, err := cse.DecodeCompanies(resp)
		if err != nil {
			log.Fatalf("Failed to decode companies: %v", err)
		}
		for i, company := range companies {
			fmt.Printf("%3d. %s (%s) - %.2f\n", i+1, company.Name, company.Symbol, company.Price)
		}
		fmt.Printf("Found %d companies starting with %q\n", len(companies), *letter)
		return
	}

	logger.Info("fetching all companies A-Z")
	list := client.AllCompanies(ctx)

	st := store.New(cfg.Data.CompanyDir)
	defer st.Close()
	if err := st.SaveCompanies(list.Companies); err != nil {
		log.Fatalf("Failed to save companies: %v", err)
	}

	if *csvOut {
		csvPath := filepath.Join(cfg.Data.CompanyDir,
			fmt.Sprintf("cse_all_companies_%s.csv", time.Now().Format("20060102_150405")))
		if err := report.WriteCompaniesCSV(csvPath, list.Companies); err != nil {
			log.Fatalf("Failed to write CSV snapshot: %v", err)
		}
		fmt.Printf("CSV snapshot: %s\n", csvPath)
	}

	fmt.Printf("Total companies: %d\n", list.Total)
	fmt.Printf("Active companies: %d\n", len(list.Active))
	if len(list.FailedLetters) > 0 {
		fmt.Printf("Failed letters: ")
		for _, failed := range list.FailedLetters {
			fmt.Printf("%s ", failed.Letter)
		}
		fmt.Println()
	}
}
