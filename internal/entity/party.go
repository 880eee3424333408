package entity

import (
	"errors"
	"fmt"
)

// PartySize is the number of members in a battle party.
const PartySize = 4

// Party represents the player's ordered band of four members.
type Party struct {
	Members []*Member
}

// NewParty creates a party from the given members in roster order.
func NewParty(members ...*Member) *Party {
	return &Party{Members: members}
}

// Validate checks the party has exactly PartySize distinct, non-nil members.
func (p *Party) Validate() error {
	if len(p.Members) != PartySize {
		return fmt.Errorf("party needs %d members, got %d", PartySize, len(p.Members))
	}
	seen := make(map[*Member]bool, len(p.Members))
	names := make(map[string]bool, len(p.Members))
	for i, m := range p.Members {
		if m == nil {
			return fmt.Errorf("party member %d is nil", i)
		}
		if seen[m] || names[m.Name] {
			return fmt.Errorf("party member %q appears more than once", m.Name)
		}
		if !m.Role.Valid() {
			return fmt.Errorf("party member %q has unknown role", m.Name)
		}
		seen[m] = true
		names[m.Name] = true
	}
	return nil
}

// AliveMemberCount returns the number of members still standing.
func (p *Party) AliveMemberCount() int {
	count := 0
	for _, m := range p.Members {
		if m.IsAlive() {
			count++
		}
	}
	return count
}

// IsDefeated returns true when every member has fallen.
func (p *Party) IsDefeated() bool {
	return p.AliveMemberCount() == 0
}

// AliveIndices returns the roster positions of living members.
func (p *Party) AliveIndices() []int {
	indices := make([]int, 0, len(p.Members))
	for i, m := range p.Members {
		if m.IsAlive() {
			indices = append(indices, i)
		}
	}
	return indices
}

// Member returns the member at index, or nil if out of range.
func (p *Party) Member(index int) *Member {
	if index < 0 || index >= len(p.Members) {
		return nil
	}
	return p.Members[index]
}

// TotalHP returns the sum of all members' current HP.
func (p *Party) TotalHP() int {
	total := 0
	for _, m := range p.Members {
		total += m.HP
	}
	return total
}

// ErrNotInParty is returned by IndexOf when the member is not part of the party.
var ErrNotInParty = errors.New("member not in party")

// IndexOf returns the roster position of m.
func (p *Party) IndexOf(m *Member) (int, error) {
	for i, pm := range p.Members {
		if pm == m {
			return i, nil
		}
	}
	return -1, ErrNotInParty
}
