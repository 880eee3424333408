package entity

import (
	"errors"
	"testing"
)

func newTestParty() *Party {
	return NewParty(
		NewMember("Aether", RoleDPS),
		NewMember("Brunt", RoleTank),
		NewMember("Mira", RoleHealer),
		NewMember("Hexa", RoleDebuffer),
	)
}

func TestPartyValidate(t *testing.T) {
	if err := newTestParty().Validate(); err != nil {
		t.Fatalf("Validate() on a good party: %v", err)
	}

	aether := NewMember("Aether", RoleDPS)
	tests := []struct {
		name  string
		party *Party
	}{
		{"too few", NewParty(aether, NewMember("Kael", RoleSubDPS))},
		{"too many", NewParty(aether, NewMember("A", RoleDPS), NewMember("B", RoleDPS), NewMember("C", RoleDPS), NewMember("D", RoleDPS))},
		{"nil member", NewParty(aether, nil, NewMember("B", RoleDPS), NewMember("C", RoleDPS))},
		{"same pointer", NewParty(aether, aether, NewMember("B", RoleDPS), NewMember("C", RoleDPS))},
		{"same name", NewParty(aether, NewMember("Aether", RoleTank), NewMember("B", RoleDPS), NewMember("C", RoleDPS))},
		{"bad role", NewParty(aether, NewMember("X", Role(42)), NewMember("B", RoleDPS), NewMember("C", RoleDPS))},
	}

	for _, tt := range tests {
		if err := tt.party.Validate(); err == nil {
			t.Errorf("%s: Validate() should fail", tt.name)
		}
	}
}

func TestPartyAliveTracking(t *testing.T) {
	p := newTestParty()

	if got := p.AliveMemberCount(); got != 4 {
		t.Errorf("AliveMemberCount() = %d, want 4", got)
	}

	p.Members[1].TakeDamage(1000)
	p.Members[3].TakeDamage(1000)

	indices := p.AliveIndices()
	if len(indices) != 2 || indices[0] != 0 || indices[1] != 2 {
		t.Errorf("AliveIndices() = %v, want [0 2]", indices)
	}
	if p.IsDefeated() {
		t.Error("IsDefeated() should be false with two members standing")
	}

	p.Members[0].TakeDamage(1000)
	p.Members[2].TakeDamage(1000)
	if !p.IsDefeated() {
		t.Error("IsDefeated() should be true once everyone is down")
	}
	if p.TotalHP() != 0 {
		t.Errorf("TotalHP() = %d, want 0", p.TotalHP())
	}
}

func TestPartyMemberLookup(t *testing.T) {
	p := newTestParty()

	if p.Member(-1) != nil || p.Member(4) != nil {
		t.Error("Member() out of range should return nil")
	}
	if idx, err := p.IndexOf(p.Members[2]); err != nil || idx != 2 {
		t.Errorf("IndexOf(member 2) = %d, %v", idx, err)
	}
	if _, err := p.IndexOf(NewMember("Stranger", RoleDPS)); !errors.Is(err, ErrNotInParty) {
		t.Errorf("IndexOf(stranger) error = %v, want ErrNotInParty", err)
	}
}
