package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/bossrush/internal/battle"
	"github.com/samdwyer/bossrush/internal/entity"
	"github.com/samdwyer/bossrush/internal/gamedata"
	"github.com/samdwyer/bossrush/internal/telemetry"
)

// OutcomeTimeout marks a run cut off by Setup.MaxRounds.
const OutcomeTimeout = "timeout"

// Setup describes the battle every run in a batch plays.
type Setup struct {
	StageID          string   `json:"stage"`
	CharacterIDs     []string `json:"characters"` // Roster order
	ItemIDs          []string `json:"items"`      // One per character, same order
	StartSkillPoints int      `json:"start_skill_points"`
	MaxSkillPoints   int      `json:"max_skill_points"`
	MaxRounds        int      `json:"max_rounds"`
}

// DefaultSetup returns a balanced party against the first stage.
func DefaultSetup() Setup {
	return Setup{
		StageID:          "infernal_dragon",
		CharacterIDs:     []string{"aether", "brunt", "mira", "hexa"},
		ItemIDs:          []string{"sword", "shield", "lance", "sword"},
		StartSkillPoints: battle.DefaultStartSkillPoints,
		MaxSkillPoints:   battle.DefaultMaxSkillPoints,
		MaxRounds:        100,
	}
}

// Validate checks the setup against the catalog.
func (s Setup) Validate(catalog *gamedata.Catalog) error {
	if catalog.StageByID(s.StageID) == nil {
		return fmt.Errorf("unknown stage %q", s.StageID)
	}
	if len(s.CharacterIDs) != entity.PartySize {
		return fmt.Errorf("setup needs %d characters, got %d", entity.PartySize, len(s.CharacterIDs))
	}
	if len(s.ItemIDs) != len(s.CharacterIDs) {
		return fmt.Errorf("setup needs one item per character, got %d items", len(s.ItemIDs))
	}
	for _, id := range s.CharacterIDs {
		if catalog.CharacterByID(id) == nil {
			return fmt.Errorf("unknown character %q", id)
		}
	}
	for _, id := range s.ItemIDs {
		if catalog.ItemByID(id) == nil {
			return fmt.Errorf("unknown item %q", id)
		}
	}
	if s.MaxRounds < 1 {
		return errors.New("max rounds must be at least 1")
	}
	return nil
}

// party builds fresh, equipped members for one run.
func (s Setup) party(catalog *gamedata.Catalog) ([]*entity.Member, error) {
	members := make([]*entity.Member, len(s.CharacterIDs))
	for i, id := range s.CharacterIDs {
		m, err := catalog.CharacterByID(id).NewMember()
		if err != nil {
			return nil, err
		}
		m.Equip(catalog.ItemByID(s.ItemIDs[i]).Item())
		members[i] = m
	}
	return members, nil
}

// Result summarizes one simulated battle.
type Result struct {
	Seed             int64          `json:"seed"`
	Outcome          string         `json:"outcome"` // victory, defeat or timeout
	Rounds           int            `json:"rounds"`
	Turns            int            `json:"turns"`
	BossHPRemaining  int            `json:"boss_hp_remaining"`
	PartyHPRemaining int            `json:"party_hp_remaining"`
	DamageByMember   map[string]int `json:"damage_by_member"`
	HealingByMember  map[string]int `json:"healing_by_member"`
}

// RunSingle plays one battle to the end with the given policy. The seed drives
// boss targeting, so equal seeds give equal results.
func RunSingle(ctx context.Context, catalog *gamedata.Catalog, setup Setup, seed int64, policy Policy) (Result, error) {
	if err := setup.Validate(catalog); err != nil {
		return Result{}, err
	}

	tracer := telemetry.Tracer("sim")
	ctx, span := tracer.Start(ctx, "sim.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("stage", setup.StageID),
		attribute.Int64("seed", seed),
	)

	members, err := setup.party(catalog)
	if err != nil {
		return Result{}, err
	}
	names := make(map[string]bool, len(members))
	for _, m := range members {
		names[m.Name] = true
	}

	res := Result{
		Seed:            seed,
		DamageByMember:  make(map[string]int, len(members)),
		HealingByMember: make(map[string]int),
	}
	tally := func(ev battle.Event) {
		if !names[ev.Source] {
			return
		}
		switch ev.Kind {
		case battle.EventDamageDealt, battle.EventSpecialUsed:
			res.DamageByMember[ev.Source] += ev.Amount
		case battle.EventHealApplied:
			res.HealingByMember[ev.Source] += ev.Amount
		}
	}

	session, err := battle.New(ctx, members, catalog.StageByID(setup.StageID).NewBoss(),
		battle.WithSkillPoints(setup.StartSkillPoints, setup.MaxSkillPoints),
		battle.WithRand(rand.New(rand.NewSource(seed))),
		battle.WithEventSink(tally),
	)
	if err != nil {
		span.RecordError(err)
		return Result{}, err
	}

	for session.CheckTerminal() == battle.ResultOngoing && session.Round() <= setup.MaxRounds {
		if session.Phase() == battle.PhaseBoss {
			session.AdvanceToBossTurnIfReady(ctx)
			continue
		}
		out := session.SubmitPlayerAction(ctx, policy.Choose(session))
		if out.Status == battle.StatusRejected {
			// A basic attack by the current actor is always accepted.
			session.SubmitPlayerAction(ctx, battle.BasicAttack(session.CurrentActor()))
		}
	}

	res.Outcome = session.CheckTerminal().String()
	if session.CheckTerminal() == battle.ResultOngoing {
		res.Outcome = OutcomeTimeout
	}
	res.Rounds = min(session.Round(), setup.MaxRounds)
	res.Turns = session.TurnCount()
	res.BossHPRemaining = session.Boss().HP
	res.PartyHPRemaining = session.Party().TotalHP()

	span.SetAttributes(
		attribute.String("outcome", res.Outcome),
		attribute.Int("rounds", res.Rounds),
	)
	return res, nil
}
