// Package entity provides the combatants of a battle: party members, the boss and items.
package entity

// Role represents a party member's combat role.
type Role int

const (
	RoleDPS Role = iota
	RoleSubDPS
	RoleTank
	RoleSupport
	RoleHealer
	RoleDebuffer
)

// Stats holds the base attributes a role starts with.
type Stats struct {
	Attack  int
	HP      int
	Defense int
}

// baseStats is indexed by Role.
var baseStats = [...]Stats{
	RoleDPS:      {Attack: 25, HP: 80, Defense: 5},
	RoleSubDPS:   {Attack: 20, HP: 90, Defense: 8},
	RoleTank:     {Attack: 10, HP: 130, Defense: 20},
	RoleSupport:  {Attack: 8, HP: 100, Defense: 10},
	RoleHealer:   {Attack: 5, HP: 100, Defense: 10},
	RoleDebuffer: {Attack: 7, HP: 90, Defense: 10},
}

// Roles returns every role in declaration order.
func Roles() []Role {
	return []Role{RoleDPS, RoleSubDPS, RoleTank, RoleSupport, RoleHealer, RoleDebuffer}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r >= RoleDPS && r <= RoleDebuffer
}

// BaseStats returns the starting attributes for the role.
func (r Role) BaseStats() Stats {
	if !r.Valid() {
		return Stats{Attack: 1, HP: 1}
	}
	return baseStats[r]
}

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleDPS:
		return "DPS"
	case RoleSubDPS:
		return "Sub DPS"
	case RoleTank:
		return "Tank"
	case RoleSupport:
		return "Support"
	case RoleHealer:
		return "Healer"
	case RoleDebuffer:
		return "Debuffer"
	default:
		return "Unknown"
	}
}

// ID returns the role identifier used in data files.
func (r Role) ID() string {
	switch r {
	case RoleDPS:
		return "dps"
	case RoleSubDPS:
		return "sub_dps"
	case RoleTank:
		return "tank"
	case RoleSupport:
		return "support"
	case RoleHealer:
		return "healer"
	case RoleDebuffer:
		return "debuffer"
	default:
		return "unknown"
	}
}

// Symbol returns the default display symbol for a role.
func (r Role) Symbol() rune {
	switch r {
	case RoleDPS:
		return 'D'
	case RoleSubDPS:
		return 'd'
	case RoleTank:
		return 'T'
	case RoleSupport:
		return 'S'
	case RoleHealer:
		return 'H'
	case RoleDebuffer:
		return 'X'
	default:
		return '?'
	}
}

// ParseRole looks up a role by its data identifier.
func ParseRole(id string) (Role, bool) {
	for _, r := range Roles() {
		if r.ID() == id {
			return r, true
		}
	}
	return 0, false
}
