// Package combat resolves party and boss actions against the entity model.
package combat

import (
	"fmt"

	"github.com/samdwyer/bossrush/internal/entity"
)

// Tuning constants shared by every role.
const (
	BasicAttackEnergy = 30
	SkillEnergy       = 15
	SkillBonusDamage  = 10
	SpecialMultiplier = 2
	HealAmount        = 30
	WeakenAmount      = 5
)

// Target is anything a damaging action can land on.
// Both party members and the boss implement this interface.
type Target interface {
	GetName() string
	IsAlive() bool
	TakeDamage(amount int) int // Returns damage dealt
}

// Kind is the category of a party action.
type Kind int

const (
	KindBasicAttack Kind = iota
	KindSkill
	KindSpecial
)

// String returns the action name.
func (k Kind) String() string {
	switch k {
	case KindBasicAttack:
		return "basic_attack"
	case KindSkill:
		return "skill"
	case KindSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// EffectType is what a resolved action did.
type EffectType int

const (
	EffectNone EffectType = iota
	EffectDamage
	EffectHeal
	EffectWeaken
)

// EffectResult contains the outcome of resolving an action.
type EffectResult struct {
	Success  bool
	NoOp     bool // The action had nothing to act on (fallen ally or boss)
	Effect   EffectType
	Damage   int // For damage actions
	Healing  int // For heals
	Weakened int // Attack removed from the boss
	Defeated bool
	Message  string // Human-readable description
}

// skillEffect is a role's skill payload. ally is only set for roles that target allies.
type skillEffect func(user *entity.Member, boss *entity.Boss, ally *entity.Member) EffectResult

type skillDef struct {
	apply    skillEffect
	allyOnly bool // Requires an ally target
	damaging bool // Deals attack + SkillBonusDamage to the boss
}

// Resolver applies actions using a per-role skill table.
type Resolver struct {
	skills map[entity.Role]skillDef
}

// NewResolver creates a resolver with the standard role table.
func NewResolver() *Resolver {
	strike := skillDef{apply: strikeSkill, damaging: true}
	return &Resolver{
		skills: map[entity.Role]skillDef{
			entity.RoleDPS:      strike,
			entity.RoleSubDPS:   strike,
			entity.RoleTank:     strike,
			entity.RoleSupport:  strike,
			entity.RoleHealer:   {apply: healSkill, allyOnly: true},
			entity.RoleDebuffer: {apply: weakenSkill},
		},
	}
}

// NeedsAllyTarget returns true if the role's skill requires choosing an ally.
func (r *Resolver) NeedsAllyTarget(role entity.Role) bool {
	return r.skills[role].allyOnly
}

// BasicAttack deals the user's attack to the boss and charges energy.
func (r *Resolver) BasicAttack(user *entity.Member, boss *entity.Boss) EffectResult {
	result := dealDamage(boss, user.Attack)
	if result.NoOp {
		return result
	}
	user.ChargeEnergy(BasicAttackEnergy)
	result.Message = fmt.Sprintf("%s uses Basic Attack on %s for %d damage!", user.Name, boss.Name, result.Damage)
	return result
}

// Skill applies the user's role skill and charges energy.
// Skill-point costs belong to the caller.
func (r *Resolver) Skill(user *entity.Member, boss *entity.Boss, ally *entity.Member) EffectResult {
	def, ok := r.skills[user.Role]
	if !ok {
		return EffectResult{Success: false, Message: user.Name + " has no skill"}
	}
	result := def.apply(user, boss, ally)
	// Energy is charged even when the effect found nothing to act on.
	user.ChargeEnergy(SkillEnergy)
	return result
}

// Special spends a full energy bar on a heavy strike.
func (r *Resolver) Special(user *entity.Member, boss *entity.Boss) EffectResult {
	if !user.CanUseSpecial() {
		return EffectResult{
			Success: false,
			Message: user.Name + " doesn't have enough energy!",
		}
	}
	result := dealDamage(boss, user.Attack*SpecialMultiplier)
	if result.NoOp {
		return result
	}
	user.ResetEnergy()
	result.Message = fmt.Sprintf("%s uses SPECIAL on %s for %d damage!", user.Name, boss.Name, result.Damage)
	return result
}

// BossAttack strikes a party member. The member's defense applies.
func (r *Resolver) BossAttack(boss *entity.Boss, target *entity.Member) EffectResult {
	result := dealDamage(target, boss.Attack)
	if result.NoOp {
		return result
	}
	result.Message = fmt.Sprintf("%s attacks %s for %d damage! (HP: %d)", boss.Name, target.Name, result.Damage, target.HP)
	return result
}

// CalculateDamage returns the damage an action would deal to the boss without applying it.
func (r *Resolver) CalculateDamage(kind Kind, user *entity.Member) int {
	switch kind {
	case KindBasicAttack:
		return user.Attack
	case KindSkill:
		if !r.skills[user.Role].damaging {
			return 0
		}
		return user.Attack + SkillBonusDamage
	case KindSpecial:
		return user.Attack * SpecialMultiplier
	default:
		return 0
	}
}

func dealDamage(target Target, amount int) EffectResult {
	if !target.IsAlive() {
		return EffectResult{
			NoOp:    true,
			Effect:  EffectDamage,
			Message: target.GetName() + " is already defeated!",
		}
	}
	dealt := target.TakeDamage(amount)
	return EffectResult{
		Success:  true,
		Effect:   EffectDamage,
		Damage:   dealt,
		Defeated: !target.IsAlive(),
	}
}

func strikeSkill(user *entity.Member, boss *entity.Boss, _ *entity.Member) EffectResult {
	result := dealDamage(boss, user.Attack+SkillBonusDamage)
	if result.NoOp {
		return result
	}
	result.Message = fmt.Sprintf("%s uses Skill on %s for %d damage!", user.Name, boss.Name, result.Damage)
	return result
}

func healSkill(user *entity.Member, _ *entity.Boss, ally *entity.Member) EffectResult {
	if ally == nil || !ally.IsAlive() {
		name := "target"
		if ally != nil {
			name = ally.Name
		}
		return EffectResult{
			NoOp:    true,
			Effect:  EffectHeal,
			Message: name + " cannot be healed. They are down!",
		}
	}
	healed := ally.Heal(HealAmount)
	return EffectResult{
		Success: true,
		Effect:  EffectHeal,
		Healing: healed,
		Message: fmt.Sprintf("%s heals %s for %d HP.", user.Name, ally.Name, healed),
	}
}

func weakenSkill(user *entity.Member, boss *entity.Boss, _ *entity.Member) EffectResult {
	if !boss.IsAlive() {
		return EffectResult{
			NoOp:    true,
			Effect:  EffectWeaken,
			Message: boss.Name + " is already defeated!",
		}
	}
	reduced := boss.Weaken(WeakenAmount)
	return EffectResult{
		Success:  true,
		Effect:   EffectWeaken,
		Weakened: reduced,
		Message:  fmt.Sprintf("%s weakens %s's ATK! (ATK: %d)", user.Name, boss.Name, boss.Attack),
	}
}
