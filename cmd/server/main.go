package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/tonnybx78/cz-name-checker/checker"
	"github.com/tonnybx78/cz-name-checker/generator"
	"github.com/tonnybx78/cz-name-checker/internal/config"
	"github.com/tonnybx78/cz-name-checker/registry"
	"github.com/tonnybx78/cz-name-checker/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Chyba konfigurace: %v", err)
	}

	logger := server.NewLogger(cfg.LogLevel)

	aresClient := registry.NewClient(cfg.ARESBaseURL, logger)
	aresClient.SetRateLimit(cfg.ARESRateLimit)

	// Bez klíče OpenAI běží server jen s /api/check; /api/generate vrací
	// chybu nedostupného generátoru.
	var gen generator.Generator
	if cfg.OpenAIAPIKey != "" {
		openaiGen, err := generator.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel, logger)
		if err != nil {
			log.Fatalf("Chyba inicializace generátoru: %v", err)
		}
		gen = openaiGen
	} else {
		logger.Warn("OPENAI_API_KEY není nastaven, generování názvů je vypnuté")
	}

	chk, err := checker.New(aresClient, gen, cfg.CheckerOptions(), logger)
	if err != nil {
		log.Fatalf("Chyba inicializace pipeline: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(chk, cfg.Port, logger)
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Chyba serveru: %v", err)
	}
}
