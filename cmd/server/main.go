package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/Mukul601/TacticalScout/internal/api"
	"github.com/Mukul601/TacticalScout/internal/chat"
	"github.com/Mukul601/TacticalScout/internal/config"
	"github.com/Mukul601/TacticalScout/internal/draft"
	"github.com/Mukul601/TacticalScout/internal/grid"
	"github.com/Mukul601/TacticalScout/internal/scout"
)

func main() {
	configPath := flag.String("config", "", "Path to TOML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var source api.MatchSource
	if client, err := grid.NewClient(cfg.GridAPIKey); err != nil {
		log.Printf("GRID client disabled: %v", err)
	} else {
		source = client
	}

	provider := chat.SelectProvider(cfg.ChatProvider, cfg.OpenAIKey, cfg.OpenAIModel, cfg.GeminiKey, cfg.GeminiModel)
	if provider == nil {
		log.Println("No chat API key set, coach chat will return configuration errors")
	}

	table := draft.LoadTable(cfg.ChampionsFile)
	fmt.Printf("Champion metadata loaded: %d champions\n", table.Len())

	server := api.NewServer(api.ServerConfig{
		Source:      source,
		Analyzer:    scout.New(scout.Config{}),
		Evaluator:   draft.NewEvaluator(table),
		Chat:        chat.NewEngine(provider),
		CORSOrigins: cfg.CORSOrigins,
	})

	fmt.Printf("Server starting on http://localhost:%s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, server.Handler()))
}
