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
	"csekit/internal/store"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "config file path")
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetDefault(logger.New(cfg.Logging))

	client := cse.NewClient(&cfg.API)

	resp := client.AnnouncementCategories(context.Background())
	if !resp.Success {
		log.Fatalf("Failed to fetch categories: %s", resp.Error)
	}

	categories, err := cse.DecodeAnnouncementCategories(resp)
	if err != nil {
		log.Fatalf("Failed to decode categories: %v", err)
	}

	st := store.New(cfg.Data.CompanyDir)
	defer st.Close()
	if err := st.SaveCategories(categories); err != nil {
		log.Fatalf("Failed to save categories: %v", err)
	}

	fmt.Printf("Fetched %d announcement categories\n", len(categories))

	var dividend, meeting, financial int
	for _, category := range categories {
		name := strings.ToUpper(category.CategoryName)
		switch {
		case strings.Contains(name, "DIVIDEND"):
			dividend++
		case strings.Contains(name, "MEETING"):
			meeting++
		case strings.Contains(name, "FINANCIAL") || strings.Contains(name, "INTERIM") || strings.Contains(name, "ANNUAL"):
			financial++
		}
	}
	fmt.Printf("Dividend-related: %d\n", dividend)
	fmt.Printf("Meeting-related: %d\n", meeting)
	fmt.Printf("Financial-related: %d\n", financial)
	fmt.Printf("Saved to: %s\n", st.CategoriesPath())
}
