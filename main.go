package main

import (
	"log"

	"github.com/joho/godotenv"

	"insightsuite/internal/config"
	insightsvc "insightsuite/internal/insights"
	"insightsuite/ui"
)

func main() {
	// .env is optional; environment variables win either way.
	if err := godotenv.Load(); err != nil {
		log.Printf("[Main] no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Main] configuration error: %v", err)
	}

	service := insightsvc.NewService(cfg.Insights.LeaderboardLimit)
	server := ui.NewServer(cfg, service)

	if err := server.Run(); err != nil {
		log.Fatalf("[Main] server exited: %v", err)
	}
}
