// Package main runs batches of auto-played battles and writes a JSON summary.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/joho/godotenv"

	"github.com/samdwyer/bossrush/internal/gamedata"
	"github.com/samdwyer/bossrush/internal/random"
	"github.com/samdwyer/bossrush/internal/sim"
	"github.com/samdwyer/bossrush/internal/telemetry"
)

func main() {
	defaults := sim.DefaultSetup()

	var stage, characters, items, out string
	var seed int64
	var n, workers, maxRounds, startSP, maxSP int
	var trace bool
	flag.StringVar(&stage, "stage", defaults.StageID, "stage id")
	flag.StringVar(&characters, "party", strings.Join(defaults.CharacterIDs, ","), "comma-separated character ids, roster order")
	flag.StringVar(&items, "items", strings.Join(defaults.ItemIDs, ","), "comma-separated item ids, one per character")
	flag.StringVar(&out, "out", "summary.json", "summary file (- for stdout)")
	flag.Int64Var(&seed, "seed", 0, "base seed (0 = random)")
	flag.IntVar(&n, "n", 1000, "number of simulations")
	flag.IntVar(&workers, "workers", runtime.NumCPU(), "worker goroutines")
	flag.IntVar(&maxRounds, "max-rounds", defaults.MaxRounds, "rounds before a run counts as a timeout")
	flag.IntVar(&startSP, "start-sp", defaults.StartSkillPoints, "starting skill points")
	flag.IntVar(&maxSP, "max-sp", defaults.MaxSkillPoints, "skill point cap")
	flag.BoolVar(&trace, "trace", false, "export spans over OTLP")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	ctx := context.Background()
	if trace {
		shutdown, err := telemetry.Setup(ctx, "bossrushsim")
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	if seed == 0 {
		s, err := random.NewSeed()
		if err != nil {
			log.Fatalf("Failed to seed: %v", err)
		}
		seed = s
	}

	catalog, err := gamedata.LoadCatalog()
	if err != nil {
		log.Fatalf("Failed to load game data: %v", err)
	}

	setup := sim.Setup{
		StageID:          stage,
		CharacterIDs:     splitIDs(characters),
		ItemIDs:          splitIDs(items),
		StartSkillPoints: startSP,
		MaxSkillPoints:   maxSP,
		MaxRounds:        maxRounds,
	}

	summary, err := sim.RunBatch(ctx, catalog, setup, seed, n, workers, sim.NewGreedy())
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode summary: %v", err)
	}
	if out == "-" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", out, err)
	}
	fmt.Printf("Batch %d done (seed %d, win rate %.1f%%) -> %s\n", n, seed, summary.WinRate*100, out)
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
