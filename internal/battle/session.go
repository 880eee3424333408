// Package battle runs a party-versus-boss battle: the turn cycle, the shared
// skill-point pool, the boss counter-turn and the win check.
//
// A Session is not safe for concurrent use. One owner submits actions and
// advances the boss turn; every call is resolved to completion before it returns.
package battle

import (
	"context"
	"fmt"

	"github.com/enetx/fsm"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/bossrush/internal/combat"
	"github.com/samdwyer/bossrush/internal/entity"
	"github.com/samdwyer/bossrush/internal/random"
	"github.com/samdwyer/bossrush/internal/telemetry"
)

// Skill-point pool defaults.
const (
	DefaultStartSkillPoints = 3
	DefaultMaxSkillPoints   = 5
)

type options struct {
	startSkillPoints int
	maxSkillPoints   int
	rng              random.Source
	sink             func(Event)
}

// Option configures a Session.
type Option func(*options)

// WithSkillPoints sets the starting and maximum size of the skill-point pool.
func WithSkillPoints(start, maximum int) Option {
	return func(o *options) {
		o.startSkillPoints = start
		o.maxSkillPoints = maximum
	}
}

// WithRand sets the random source used for boss targeting.
func WithRand(rng random.Source) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithEventSink registers a callback invoked for every logged event.
func WithEventSink(sink func(Event)) Option {
	return func(o *options) {
		o.sink = sink
	}
}

// Session holds all state for one battle.
type Session struct {
	id       uuid.UUID
	party    *entity.Party
	boss     *entity.Boss
	resolver *combat.Resolver
	rng      random.Source
	phase    *fsm.FSM
	result   Result

	skillPoints    int
	maxSkillPoints int

	acted     []bool // Per roster index, reset every round
	round     int
	turnCount int

	events []Event
	sink   func(Event)
}

// New creates a session for a party of four distinct members and a boss.
// Invalid setups fail with a *ConfigurationError.
func New(ctx context.Context, members []*entity.Member, boss *entity.Boss, opts ...Option) (*Session, error) {
	o := options{
		startSkillPoints: DefaultStartSkillPoints,
		maxSkillPoints:   DefaultMaxSkillPoints,
	}
	for _, opt := range opts {
		opt(&o)
	}

	party := entity.NewParty(members...)
	if err := party.Validate(); err != nil {
		return nil, &ConfigurationError{Reason: err.Error()}
	}
	if party.IsDefeated() {
		return nil, &ConfigurationError{Reason: "every party member is already down"}
	}
	if boss == nil {
		return nil, &ConfigurationError{Reason: "no boss"}
	}
	if !boss.IsAlive() {
		return nil, &ConfigurationError{Reason: "boss " + boss.Name + " is already defeated"}
	}
	if o.maxSkillPoints < 1 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("max skill points must be at least 1, got %d", o.maxSkillPoints)}
	}
	if o.startSkillPoints < 0 || o.startSkillPoints > o.maxSkillPoints {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("starting skill points %d outside [0, %d]", o.startSkillPoints, o.maxSkillPoints)}
	}
	if o.rng == nil {
		rng, _, err := random.New(0)
		if err != nil {
			return nil, fmt.Errorf("seed boss targeting: %w", err)
		}
		o.rng = rng
	}

	s := &Session{
		id:             uuid.New(),
		party:          party,
		boss:           boss,
		resolver:       combat.NewResolver(),
		rng:            o.rng,
		phase:          newPhaseMachine(),
		skillPoints:    o.startSkillPoints,
		maxSkillPoints: o.maxSkillPoints,
		acted:          make([]bool, len(members)),
		round:          1,
		sink:           o.sink,
	}

	tracer := telemetry.Tracer("battle")
	_, span := tracer.Start(ctx, "battle.start")
	span.SetAttributes(
		attribute.String("session", s.id.String()),
		attribute.String("boss", boss.Name),
		attribute.Int("boss_hp", boss.HP),
		attribute.Int("party_size", party.AliveMemberCount()),
		attribute.Int("skill_points", s.skillPoints),
	)
	span.End()

	s.emit(Event{Kind: EventBattleStarted, Target: boss.Name, Message: "Battle start! " + boss.Name + " appears!"})
	s.emit(Event{Kind: EventRoundStarted, Message: "Round 1"})
	return s, nil
}

// =============================================================================
// Accessors
// =============================================================================

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Phase returns the current phase.
func (s *Session) Phase() fsm.State { return s.phase.Current() }

// Party returns the party in roster order.
func (s *Session) Party() *entity.Party { return s.party }

// Boss returns the boss.
func (s *Session) Boss() *entity.Boss { return s.boss }

// SkillPoints returns the shared pool.
func (s *Session) SkillPoints() int { return s.skillPoints }

// MaxSkillPoints returns the pool cap.
func (s *Session) MaxSkillPoints() int { return s.maxSkillPoints }

// Round returns the current round number, starting at 1.
func (s *Session) Round() int { return s.round }

// TurnCount returns the number of accepted player actions.
func (s *Session) TurnCount() int { return s.turnCount }

// Events returns the battle log.
func (s *Session) Events() []Event { return s.events }

// NeedsAllyTarget returns true if the member's skill must be aimed at an ally.
func (s *Session) NeedsAllyTarget(index int) bool {
	m := s.party.Member(index)
	return m != nil && s.resolver.NeedsAllyTarget(m.Role)
}

// CurrentActor returns the roster index of the member expected to act next,
// or -1 outside the player phase.
func (s *Session) CurrentActor() int {
	if s.Phase() != PhasePlayer {
		return -1
	}
	for i, m := range s.party.Members {
		if m.IsAlive() && !s.acted[i] {
			return i
		}
	}
	return -1
}

// CheckTerminal reports whether the battle is still going.
func (s *Session) CheckTerminal() Result {
	return s.result
}

// =============================================================================
// Player phase
// =============================================================================

// SubmitPlayerAction resolves one action for the current actor.
// Rejected actions change nothing and the same member stays up.
func (s *Session) SubmitPlayerAction(ctx context.Context, a Action) ActionOutcome {
	tracer := telemetry.Tracer("battle")
	ctx, span := tracer.Start(ctx, "battle.action")
	span.SetAttributes(
		attribute.String("session", s.id.String()),
		attribute.Int("actor", a.Actor),
		attribute.String("kind", a.Kind.String()),
		attribute.Int("round", s.round),
	)
	defer span.End()

	outcome := s.resolveAction(a)

	span.SetAttributes(
		attribute.String("status", outcome.Status.String()),
		attribute.Int("skill_points", outcome.SkillPoints),
	)
	if outcome.Reason != CodeNone {
		span.SetAttributes(attribute.String("reason", string(outcome.Reason)))
	}
	if outcome.Damage > 0 {
		span.SetAttributes(attribute.Int("damage", outcome.Damage))
	}
	if outcome.Healed > 0 {
		span.SetAttributes(attribute.Int("healing", outcome.Healed))
	}

	if s.result != ResultOngoing && outcome.Status != StatusRejected {
		s.traceEnd(ctx)
	}
	return outcome
}

func (s *Session) resolveAction(a Action) ActionOutcome {
	switch s.Phase() {
	case PhaseEnded:
		return s.reject(a, "The battle is over.")
	case PhaseBoss:
		return s.reject(a, s.boss.Name+" is about to act.")
	}

	actor := s.party.Member(a.Actor)
	if actor == nil {
		return s.reject(a, fmt.Sprintf("No party member at position %d.", a.Actor))
	}
	if !actor.IsAlive() {
		return s.reject(a, actor.Name+" is down!")
	}
	if current := s.CurrentActor(); a.Actor != current {
		return s.reject(a, fmt.Sprintf("It is %s's turn, not %s's.", s.party.Members[current].Name, actor.Name))
	}

	var result combat.EffectResult
	switch a.Kind {
	case KindBasicAttack:
		result = s.resolver.BasicAttack(actor, s.boss)
		if result.Success {
			s.skillPoints = min(s.maxSkillPoints, s.skillPoints+1)
		}

	case KindSkill:
		if s.skillPoints < 1 {
			return s.reject(a, "Invalid or not enough points.")
		}
		var ally *entity.Member
		if s.resolver.NeedsAllyTarget(actor.Role) {
			ally = s.party.Member(a.Target)
			if ally == nil {
				return s.reject(a, actor.Name+" needs an ally to target.")
			}
		}
		s.skillPoints--
		result = s.resolver.Skill(actor, s.boss, ally)

	case KindSpecial:
		if !actor.CanUseSpecial() {
			return s.reject(a, actor.Name+" doesn't have enough energy!")
		}
		result = s.resolver.Special(actor, s.boss)

	default:
		return s.reject(a, "Unknown action.")
	}

	outcome := ActionOutcome{
		Status:   StatusResolved,
		Action:   a,
		Damage:   result.Damage,
		Healed:   result.Healing,
		Weakened: result.Weakened,
		Defeated: result.Defeated,
		Message:  result.Message,
	}
	if !result.Success {
		outcome.Status = StatusNoOp
		outcome.Reason = CodeInvalidTarget
	}
	s.logAction(actor, a, result)

	s.acted[a.Actor] = true
	s.turnCount++
	s.afterPlayerAction()

	outcome.SkillPoints = s.skillPoints
	outcome.Energy = actor.Energy
	return outcome
}

func (s *Session) reject(a Action, msg string) ActionOutcome {
	outcome := ActionOutcome{
		Status:      StatusRejected,
		Reason:      CodeInvalidAction,
		Action:      a,
		SkillPoints: s.skillPoints,
		Message:     msg,
	}
	if m := s.party.Member(a.Actor); m != nil {
		outcome.Energy = m.Energy
	}
	return outcome
}

// afterPlayerAction ends the battle as soon as the boss falls, otherwise hands
// over to the boss once every living member has acted.
func (s *Session) afterPlayerAction() {
	if s.checkWin() {
		return
	}
	if s.CurrentActor() == -1 {
		s.trigger(eventPartyDone)
	}
}

// =============================================================================
// Boss phase
// =============================================================================

// AdvanceToBossTurnIfReady runs the boss's turn. It returns nil unless every
// living member has acted and the battle is still going.
func (s *Session) AdvanceToBossTurnIfReady(ctx context.Context) *BossTurnOutcome {
	if s.Phase() != PhaseBoss {
		return nil
	}

	tracer := telemetry.Tracer("battle")
	ctx, span := tracer.Start(ctx, "battle.boss_turn")
	defer span.End()

	// The win check runs before the boss phase is entered, so this is never empty.
	alive := s.party.AliveIndices()
	if len(alive) == 0 {
		s.checkWin()
		s.traceEnd(ctx)
		return nil
	}

	index := alive[s.rng.Intn(len(alive))]
	target := s.party.Members[index]
	result := s.resolver.BossAttack(s.boss, target)

	span.SetAttributes(
		attribute.String("session", s.id.String()),
		attribute.String("target", target.Name),
		attribute.Int("damage", result.Damage),
		attribute.Int("boss_attack", s.boss.Attack),
		attribute.Int("round", s.round),
	)

	s.emit(Event{
		Kind:    EventDamageDealt,
		Round:   s.round,
		Source:  s.boss.Name,
		Target:  target.Name,
		Amount:  result.Damage,
		Message: result.Message,
	})
	if result.Defeated {
		s.emit(Event{Kind: EventEntityDefeated, Round: s.round, Target: target.Name, Message: target.Name + " is down!"})
	}

	outcome := &BossTurnOutcome{
		Target:         index,
		Damage:         result.Damage,
		TargetDefeated: result.Defeated,
		Message:        result.Message,
	}

	if s.checkWin() {
		s.traceEnd(ctx)
		return outcome
	}

	s.trigger(eventBossDone)
	s.round++
	clear(s.acted)
	s.emit(Event{Kind: EventRoundStarted, Round: s.round, Message: fmt.Sprintf("Round %d", s.round)})
	return outcome
}

// =============================================================================
// Win check and bookkeeping
// =============================================================================

// checkWin ends the battle if the boss or the whole party has fallen.
func (s *Session) checkWin() bool {
	switch {
	case !s.boss.IsAlive():
		s.result = ResultVictory
		s.emit(Event{Kind: EventBattleEnded, Round: s.round, Message: "You defeated the boss!"})
	case s.party.IsDefeated():
		s.result = ResultDefeat
		s.emit(Event{Kind: EventBattleEnded, Round: s.round, Message: "All characters are down. Game Over!"})
	default:
		return false
	}
	s.trigger(eventBattleOver)
	return true
}

// trigger advances the phase machine. Transitions are only fired from states
// that define them, so a failure means the turn cycle itself is broken.
func (s *Session) trigger(ev fsm.Event) {
	if err := s.phase.Trigger(ev); err != nil {
		panic(fmt.Sprintf("battle: phase %s cannot handle %s: %v", s.phase.Current(), ev, err))
	}
}

func (s *Session) logAction(actor *entity.Member, a Action, result combat.EffectResult) {
	ev := Event{Round: s.round, Source: actor.Name, Message: result.Message}
	switch {
	case result.NoOp:
		ev.Kind = EventNoOp
		if ally := s.party.Member(a.Target); ally != nil {
			ev.Target = ally.Name
		}
	case result.Effect == combat.EffectHeal:
		ev.Kind = EventHealApplied
		ev.Target = s.party.Members[a.Target].Name
		ev.Amount = result.Healing
	case result.Effect == combat.EffectWeaken:
		ev.Kind = EventBossWeakened
		ev.Target = s.boss.Name
		ev.Amount = result.Weakened
	default:
		ev.Kind = EventDamageDealt
		if a.Kind == KindSpecial {
			ev.Kind = EventSpecialUsed
		}
		ev.Target = s.boss.Name
		ev.Amount = result.Damage
	}
	s.emit(ev)

	if result.Defeated {
		s.emit(Event{Kind: EventEntityDefeated, Round: s.round, Target: s.boss.Name, Message: s.boss.Name + " has fallen!"})
	}
}

func (s *Session) emit(ev Event) {
	s.events = append(s.events, ev)
	if s.sink != nil {
		s.sink(ev)
	}
}

// traceEnd records the battle outcome.
func (s *Session) traceEnd(ctx context.Context) {
	tracer := telemetry.Tracer("battle")
	_, span := tracer.Start(ctx, "battle.end")
	span.SetAttributes(
		attribute.String("session", s.id.String()),
		attribute.String("outcome", s.result.String()),
		attribute.Int("rounds", s.round),
		attribute.Int("turns_taken", s.turnCount),
		attribute.Int("party_hp_remaining", s.party.TotalHP()),
		attribute.Int("boss_hp_remaining", s.boss.HP),
	)
	span.End()
}
