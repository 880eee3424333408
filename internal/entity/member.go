package entity

// MaxEnergy is the energy cap, and the amount a special costs.
const MaxEnergy = 100

// Member represents an individual party member.
type Member struct {
	Name   string // Character name
	Role   Role   // Combat role
	Symbol rune   // Display symbol (defaults to role symbol)

	HP, MaxHP int
	Attack    int
	Defense   int
	Energy    int
	Items     []Item // Equipped items, in equip order
}

// NewMember creates a new party member with the base stats of its role.
func NewMember(name string, role Role) *Member {
	stats := role.BaseStats()
	return &Member{
		Name:    name,
		Role:    role,
		Symbol:  role.Symbol(),
		HP:      stats.HP,
		MaxHP:   stats.HP,
		Attack:  stats.Attack,
		Defense: stats.Defense,
	}
}

// Equip applies an item's bonuses. Items stack; there is no slot limit and no unequip.
func (m *Member) Equip(item Item) {
	m.Attack += max(item.BonusAttack, 0)
	m.Defense += max(item.BonusDefense, 0)
	m.Items = append(m.Items, item)
}

// GetName returns the member's name.
func (m *Member) GetName() string { return m.Name }

// IsAlive returns true if the member has HP remaining.
func (m *Member) IsAlive() bool { return m.HP > 0 }

// TakeDamage applies defense mitigation and returns the damage dealt after mitigation.
// Health is floored at zero.
func (m *Member) TakeDamage(amount int) int {
	dealt := max(amount-m.Defense, 0)
	m.HP = max(m.HP-dealt, 0)
	return dealt
}

// Heal restores HP up to MaxHP and returns the amount actually restored.
// A fallen member cannot be healed.
func (m *Member) Heal(amount int) int {
	if !m.IsAlive() || amount <= 0 {
		return 0
	}
	actual := min(amount, m.MaxHP-m.HP)
	m.HP += actual
	return actual
}

// ChargeEnergy adds energy, capped at MaxEnergy.
func (m *Member) ChargeEnergy(amount int) {
	if amount <= 0 {
		return
	}
	m.Energy = min(MaxEnergy, m.Energy+amount)
}

// CanUseSpecial reports whether the member has a full energy bar.
func (m *Member) CanUseSpecial() bool {
	return m.Energy >= MaxEnergy
}

// ResetEnergy empties the energy bar.
func (m *Member) ResetEnergy() {
	m.Energy = 0
}
