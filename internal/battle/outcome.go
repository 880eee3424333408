package battle

import "github.com/samdwyer/bossrush/internal/combat"

// ActionKind is the category of a party action.
type ActionKind = combat.Kind

const (
	KindBasicAttack = combat.KindBasicAttack
	KindSkill       = combat.KindSkill
	KindSpecial     = combat.KindSpecial
)

// NoTarget marks an action without an ally target.
const NoTarget = -1

// Action is a single request from the presentation layer.
type Action struct {
	Actor  int        // Roster index of the acting member
	Kind   ActionKind // What to do
	Target int        // Ally roster index for targeted skills, NoTarget otherwise
}

// BasicAttack builds a basic attack request.
func BasicAttack(actor int) Action {
	return Action{Actor: actor, Kind: KindBasicAttack, Target: NoTarget}
}

// Skill builds a skill request that targets the boss.
func Skill(actor int) Action {
	return Action{Actor: actor, Kind: KindSkill, Target: NoTarget}
}

// SkillOn builds a skill request aimed at an ally.
func SkillOn(actor, target int) Action {
	return Action{Actor: actor, Kind: KindSkill, Target: target}
}

// Special builds a special request.
func Special(actor int) Action {
	return Action{Actor: actor, Kind: KindSpecial, Target: NoTarget}
}

// Status classifies an ActionOutcome.
type Status int

const (
	// StatusResolved - the action took effect
	StatusResolved Status = iota
	// StatusRejected - the action was refused and nothing changed
	StatusRejected
	// StatusNoOp - the action was accepted and paid for but had no effect
	StatusNoOp
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusResolved:
		return "resolved"
	case StatusRejected:
		return "rejected"
	case StatusNoOp:
		return "no_op"
	default:
		return "unknown"
	}
}

// ActionOutcome reports what a player action did.
type ActionOutcome struct {
	Status      Status
	Reason      Code
	Action      Action
	Damage      int  // Damage dealt to the boss
	Healed      int  // HP restored to the target ally
	Weakened    int  // Attack removed from the boss
	Defeated    bool // The boss fell to this action
	SkillPoints int  // Pool after the action
	Energy      int  // Actor energy after the action
	Message     string
}

// Success returns true if the action took effect.
func (o ActionOutcome) Success() bool {
	return o.Status == StatusResolved
}

// BossTurnOutcome reports the boss's retaliation.
type BossTurnOutcome struct {
	Target         int // Roster index of the member struck
	Damage         int // Damage dealt after the member's defense
	TargetDefeated bool
	Message        string
}

// EventKind categorises battle log entries.
type EventKind int

const (
	EventBattleStarted EventKind = iota
	EventRoundStarted
	EventDamageDealt
	EventHealApplied
	EventBossWeakened
	EventSpecialUsed
	EventNoOp
	EventEntityDefeated
	EventBattleEnded
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventBattleStarted:
		return "battle_started"
	case EventRoundStarted:
		return "round_started"
	case EventDamageDealt:
		return "damage_dealt"
	case EventHealApplied:
		return "heal_applied"
	case EventBossWeakened:
		return "boss_weakened"
	case EventSpecialUsed:
		return "special_used"
	case EventNoOp:
		return "no_op"
	case EventEntityDefeated:
		return "entity_defeated"
	case EventBattleEnded:
		return "battle_ended"
	default:
		return "unknown"
	}
}

// Event is one entry of the battle log.
type Event struct {
	Kind    EventKind
	Round   int
	Source  string // Name of the acting entity, if any
	Target  string // Name of the affected entity, if any
	Amount  int
	Message string
}
