package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/app"
	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/config"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file, environment is used when empty")
	flag.Parse()

	// Load configuration
	var cfg config.Config
	if *configPath == "" {
		cfg = config.MustLoad()
	} else {
		var err error
		if cfg, err = config.LoadFromFile(*configPath); err != nil {
			log.Fatalf("failed to load config %s: %v", *configPath, err)
		}
	}

	// Create root context
	ctx := context.Background()

	// Initialize application
	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	// Run application (blocks until shutdown)
	if err := application.Run(ctx); err != nil {
		log.Printf("application error: %v", err)
		os.Exit(1)
	}
}
