package sim

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/bossrush/internal/battle"
	"github.com/samdwyer/bossrush/internal/gamedata"
	"github.com/samdwyer/bossrush/internal/telemetry"
)

// MemberDamage is one member's share of the damage dealt across a batch.
type MemberDamage struct {
	Total int     `json:"total"`
	Ratio float64 `json:"ratio"`
}

// Summary aggregates a batch of runs.
type Summary struct {
	RunID          string                  `json:"run_id"`
	Setup          Setup                   `json:"setup"`
	Seed           int64                   `json:"seed"`
	Runs           int                     `json:"runs"`
	Wins           int                     `json:"wins"`
	Defeats        int                     `json:"defeats"`
	Timeouts       int                     `json:"timeouts"`
	WinRate        float64                 `json:"win_rate"`
	AvgRounds      float64                 `json:"avg_rounds"`
	AvgTurns       float64                 `json:"avg_turns"`
	TotalDamage    int                     `json:"total_damage"`
	DamageByMember map[string]MemberDamage `json:"damage_by_member"`
}

// RunBatch plays n battles across a pool of workers. Run i uses seed+i, so the
// summary depends only on the seed and not on how runs land on workers.
func RunBatch(ctx context.Context, catalog *gamedata.Catalog, setup Setup, seed int64, n, workers int, policy Policy) (Summary, error) {
	if n < 1 {
		return Summary{}, errors.New("batch needs at least one run")
	}
	if err := setup.Validate(catalog); err != nil {
		return Summary{}, err
	}
	workers = max(1, min(workers, n))

	tracer := telemetry.Tracer("sim")
	ctx, span := tracer.Start(ctx, "sim.batch")
	defer span.End()

	sum := Summary{
		RunID: uuid.NewString(),
		Setup: setup,
		Seed:  seed,
		Runs:  n,
	}
	damage := make(map[string]int)
	totalRounds, totalTurns := 0, 0
	var firstErr error

	var mu sync.Mutex
	var wg sync.WaitGroup
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := RunSingle(ctx, catalog, setup, seed+int64(i), policy)

				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				switch res.Outcome {
				case battle.ResultVictory.String():
					sum.Wins++
				case battle.ResultDefeat.String():
					sum.Defeats++
				default:
					sum.Timeouts++
				}
				totalRounds += res.Rounds
				totalTurns += res.Turns
				for name, dmg := range res.DamageByMember {
					damage[name] += dmg
				}
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		span.RecordError(firstErr)
		return Summary{}, firstErr
	}

	sum.WinRate = float64(sum.Wins) / float64(n)
	sum.AvgRounds = float64(totalRounds) / float64(n)
	sum.AvgTurns = float64(totalTurns) / float64(n)
	for _, dmg := range damage {
		sum.TotalDamage += dmg
	}
	sum.DamageByMember = make(map[string]MemberDamage, len(damage))
	for name, dmg := range damage {
		share := 0.0
		if sum.TotalDamage > 0 {
			share = float64(dmg) / float64(sum.TotalDamage)
		}
		sum.DamageByMember[name] = MemberDamage{Total: dmg, Ratio: share}
	}

	span.SetAttributes(
		attribute.String("run_id", sum.RunID),
		attribute.Int("runs", n),
		attribute.Int("workers", workers),
		attribute.Float64("win_rate", sum.WinRate),
	)
	return sum, nil
}
