// Package sim plays battles without a player: an auto-play policy picks each
// member's action, and batches of seeded runs are summarized for balancing.
package sim

import (
	"github.com/samdwyer/bossrush/internal/battle"
	"github.com/samdwyer/bossrush/internal/combat"
	"github.com/samdwyer/bossrush/internal/entity"
)

// Policy chooses the next action for the session's current actor.
// Implementations must be safe for concurrent use across sessions.
type Policy interface {
	Choose(s *battle.Session) battle.Action
}

// Greedy spends energy as soon as a special is ready, heals allies that drop
// below HealThreshold, weakens the boss while that still lowers its attack,
// and otherwise keeps Reserve skill points banked for support skills.
type Greedy struct {
	HealThreshold float64 // Fraction of MaxHP that triggers a heal
	Reserve       int     // Points damage dealers leave in the pool

	resolver *combat.Resolver
}

// NewGreedy returns the default auto-play policy.
func NewGreedy() *Greedy {
	return &Greedy{
		HealThreshold: 0.6,
		Reserve:       1,
		resolver:      combat.NewResolver(),
	}
}

// Choose implements Policy.
func (g *Greedy) Choose(s *battle.Session) battle.Action {
	actor := s.CurrentActor()
	m := s.Party().Member(actor)
	if m == nil {
		return battle.BasicAttack(actor)
	}
	if m.CanUseSpecial() {
		return battle.Special(actor)
	}
	if s.SkillPoints() < 1 {
		return battle.BasicAttack(actor)
	}

	switch {
	case g.resolver.NeedsAllyTarget(m.Role):
		if ally := g.woundedAlly(s.Party()); ally != nil {
			if idx, err := s.Party().IndexOf(ally); err == nil {
				return battle.SkillOn(actor, idx)
			}
		}
	case m.Role == entity.RoleDebuffer:
		if s.Boss().Attack > 1 {
			return battle.Skill(actor)
		}
	case g.resolver.CalculateDamage(combat.KindSkill, m) > 0:
		if s.SkillPoints() > g.Reserve {
			return battle.Skill(actor)
		}
	}
	return battle.BasicAttack(actor)
}

// woundedAlly returns the living member with the lowest HP fraction under the
// threshold, or nil.
func (g *Greedy) woundedAlly(p *entity.Party) *entity.Member {
	var lowest *entity.Member
	lowestFrac := g.HealThreshold
	for _, m := range p.Members {
		if !m.IsAlive() || m.MaxHP == 0 {
			continue
		}
		frac := float64(m.HP) / float64(m.MaxHP)
		if frac < lowestFrac {
			lowest = m
			lowestFrac = frac
		}
	}
	return lowest
}
