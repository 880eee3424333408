// Package main is the entry point for BossRush.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/bossrush/internal/game"
	"github.com/samdwyer/bossrush/internal/telemetry"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_BOSSRUSH_API_KEY and the BOSSRUSH_* settings available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	if cfg.Telemetry {
		setupOTelEnv(cfg)

		shutdown, err := telemetry.Setup(ctx, "bossrush")
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Game will run without observability")
			// Continue without telemetry - game still works
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	// Create and run game
	g, err := game.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
	log.Printf("Thanks for playing! Replay this run with BOSSRUSH_SEED=%d", g.Seed())
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv(cfg game.Config) {
	// Respect an endpoint that is already configured, otherwise send to Honeycomb
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	if cfg.HoneycombAPIKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", cfg.HoneycombAPIKey, cfg.HoneycombDataset))
	}
}
