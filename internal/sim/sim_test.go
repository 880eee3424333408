package sim

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/samdwyer/bossrush/internal/battle"
	"github.com/samdwyer/bossrush/internal/entity"
	"github.com/samdwyer/bossrush/internal/gamedata"
)

// zeroRand always picks the first living member.
type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

func loadCatalog(t *testing.T) *gamedata.Catalog {
	t.Helper()
	catalog, err := gamedata.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog() error: %v", err)
	}
	return catalog
}

func newSession(t *testing.T, roles []entity.Role, opts ...battle.Option) *battle.Session {
	t.Helper()
	members := make([]*entity.Member, len(roles))
	for i, r := range roles {
		members[i] = entity.NewMember(string(rune('A'+i)), r)
	}
	opts = append([]battle.Option{battle.WithRand(zeroRand{})}, opts...)
	s, err := battle.New(context.Background(), members, entity.NewBoss("Boss", 1000, 18), opts...)
	if err != nil {
		t.Fatalf("battle.New() error: %v", err)
	}
	return s
}

func TestGreedyUsesSpecialWhenReady(t *testing.T) {
	s := newSession(t, []entity.Role{entity.RoleDPS, entity.RoleTank, entity.RoleHealer, entity.RoleSupport})
	s.Party().Members[0].ChargeEnergy(entity.MaxEnergy)

	if got := NewGreedy().Choose(s); got != battle.Special(0) {
		t.Errorf("Choose() = %+v, want special", got)
	}
}

func TestGreedyHealsLowestAlly(t *testing.T) {
	s := newSession(t, []entity.Role{entity.RoleHealer, entity.RoleTank, entity.RoleDPS, entity.RoleSupport})
	members := s.Party().Members
	members[1].HP = 70 // 54%
	members[2].HP = 20 // 25%

	if got := NewGreedy().Choose(s); got != battle.SkillOn(0, 2) {
		t.Errorf("Choose() = %+v, want heal on member 2", got)
	}
}

func TestGreedyHealerAttacksWhenPartyHealthy(t *testing.T) {
	s := newSession(t, []entity.Role{entity.RoleHealer, entity.RoleTank, entity.RoleDPS, entity.RoleSupport})

	if got := NewGreedy().Choose(s); got != battle.BasicAttack(0) {
		t.Errorf("Choose() = %+v, want basic attack", got)
	}
}

func TestGreedyDebufferStopsAtFloor(t *testing.T) {
	s := newSession(t, []entity.Role{entity.RoleDebuffer, entity.RoleTank, entity.RoleDPS, entity.RoleSupport})
	g := NewGreedy()

	if got := g.Choose(s); got != battle.Skill(0) {
		t.Errorf("Choose() = %+v, want weaken", got)
	}

	s.Boss().Weaken(100)
	if got := g.Choose(s); got != battle.BasicAttack(0) {
		t.Errorf("Choose() with floored boss = %+v, want basic attack", got)
	}
}

func TestGreedyKeepsReserve(t *testing.T) {
	g := NewGreedy()

	s := newSession(t, []entity.Role{entity.RoleDPS, entity.RoleTank, entity.RoleHealer, entity.RoleSupport}, battle.WithSkillPoints(1, 5))
	if got := g.Choose(s); got != battle.BasicAttack(0) {
		t.Errorf("Choose() with 1 point = %+v, want basic attack", got)
	}

	s = newSession(t, []entity.Role{entity.RoleDPS, entity.RoleTank, entity.RoleHealer, entity.RoleSupport}, battle.WithSkillPoints(2, 5))
	if got := g.Choose(s); got != battle.Skill(0) {
		t.Errorf("Choose() with 2 points = %+v, want skill", got)
	}
}

func TestRunSingleDeterministic(t *testing.T) {
	catalog := loadCatalog(t)
	ctx := context.Background()

	a, err := RunSingle(ctx, catalog, DefaultSetup(), 42, NewGreedy())
	if err != nil {
		t.Fatalf("RunSingle() error: %v", err)
	}
	b, err := RunSingle(ctx, catalog, DefaultSetup(), 42, NewGreedy())
	if err != nil {
		t.Fatalf("RunSingle() error: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed gave different results:\n%+v\n%+v", a, b)
	}
}

func TestRunSingleAccounting(t *testing.T) {
	catalog := loadCatalog(t)

	res, err := RunSingle(context.Background(), catalog, DefaultSetup(), 7, NewGreedy())
	if err != nil {
		t.Fatalf("RunSingle() error: %v", err)
	}

	switch res.Outcome {
	case "victory":
		if res.BossHPRemaining != 0 {
			t.Errorf("victory with boss HP %d", res.BossHPRemaining)
		}
	case "defeat":
		if res.PartyHPRemaining != 0 {
			t.Errorf("defeat with party HP %d", res.PartyHPRemaining)
		}
	default:
		t.Fatalf("Outcome = %q", res.Outcome)
	}

	dealt := 0
	for _, dmg := range res.DamageByMember {
		dealt += dmg
	}
	stage := catalog.StageByID(DefaultSetup().StageID)
	if dealt != stage.HP-res.BossHPRemaining {
		t.Errorf("damage by member sums to %d, boss lost %d", dealt, stage.HP-res.BossHPRemaining)
	}
	if res.Turns < res.Rounds {
		t.Errorf("Turns = %d fewer than Rounds = %d", res.Turns, res.Rounds)
	}
}

func TestRunSingleTimeout(t *testing.T) {
	setup := DefaultSetup()
	setup.StageID = "frozen_titan"
	setup.MaxRounds = 1

	res, err := RunSingle(context.Background(), loadCatalog(t), setup, 1, NewGreedy())
	if err != nil {
		t.Fatalf("RunSingle() error: %v", err)
	}
	if res.Outcome != OutcomeTimeout || res.Rounds != 1 {
		t.Errorf("Outcome = %q after %d rounds, want timeout after 1", res.Outcome, res.Rounds)
	}
}

func TestSetupValidation(t *testing.T) {
	catalog := loadCatalog(t)

	tests := []struct {
		name     string
		mutate   func(*Setup)
		contains string
	}{
		{"unknown stage", func(s *Setup) { s.StageID = "moon" }, "unknown stage"},
		{"short party", func(s *Setup) { s.CharacterIDs = s.CharacterIDs[:3]; s.ItemIDs = s.ItemIDs[:3] }, "needs 4 characters"},
		{"missing item", func(s *Setup) { s.ItemIDs = s.ItemIDs[:3] }, "one item per character"},
		{"unknown character", func(s *Setup) { s.CharacterIDs = []string{"aether", "brunt", "mira", "bob"} }, "unknown character"},
		{"unknown item", func(s *Setup) { s.ItemIDs = []string{"sword", "sword", "sword", "axe"} }, "unknown item"},
		{"no rounds", func(s *Setup) { s.MaxRounds = 0 }, "max rounds"},
	}

	for _, tt := range tests {
		setup := DefaultSetup()
		tt.mutate(&setup)
		_, err := RunSingle(context.Background(), catalog, setup, 1, NewGreedy())
		if err == nil || !strings.Contains(err.Error(), tt.contains) {
			t.Errorf("%s: error = %v, want mention of %q", tt.name, err, tt.contains)
		}
	}
}

func TestDuplicateCharacterIsConfigurationError(t *testing.T) {
	setup := DefaultSetup()
	setup.CharacterIDs = []string{"aether", "aether", "mira", "hexa"}

	_, err := RunSingle(context.Background(), loadCatalog(t), setup, 1, NewGreedy())
	if err == nil || !strings.Contains(err.Error(), "more than once") {
		t.Errorf("error = %v, want duplicate member error", err)
	}
}

func TestRunBatchIndependentOfWorkers(t *testing.T) {
	catalog := loadCatalog(t)
	ctx := context.Background()

	one, err := RunBatch(ctx, catalog, DefaultSetup(), 100, 20, 1, NewGreedy())
	if err != nil {
		t.Fatalf("RunBatch() error: %v", err)
	}
	many, err := RunBatch(ctx, catalog, DefaultSetup(), 100, 20, 8, NewGreedy())
	if err != nil {
		t.Fatalf("RunBatch() error: %v", err)
	}

	if one.RunID == many.RunID {
		t.Error("batches should get distinct run IDs")
	}
	one.RunID, many.RunID = "", ""
	if !reflect.DeepEqual(one, many) {
		t.Errorf("worker count changed the summary:\n%+v\n%+v", one, many)
	}

	if one.Wins+one.Defeats+one.Timeouts != 20 {
		t.Errorf("outcomes sum to %d, want 20", one.Wins+one.Defeats+one.Timeouts)
	}
	if one.WinRate != float64(one.Wins)/20 {
		t.Errorf("WinRate = %v, want %v", one.WinRate, float64(one.Wins)/20)
	}
	ratios := 0.0
	for _, d := range one.DamageByMember {
		ratios += d.Ratio
	}
	if one.TotalDamage > 0 && (ratios < 0.999 || ratios > 1.001) {
		t.Errorf("damage ratios sum to %v, want 1", ratios)
	}
}

func TestRunBatchErrors(t *testing.T) {
	catalog := loadCatalog(t)

	if _, err := RunBatch(context.Background(), catalog, DefaultSetup(), 1, 0, 4, NewGreedy()); err == nil {
		t.Error("zero runs should fail")
	}

	setup := DefaultSetup()
	setup.StageID = "moon"
	if _, err := RunBatch(context.Background(), catalog, setup, 1, 5, 4, NewGreedy()); err == nil {
		t.Error("invalid setup should fail")
	}
}
