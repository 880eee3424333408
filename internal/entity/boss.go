package entity

// Boss is the single enemy of a battle. It has no defense and no energy economy.
type Boss struct {
	Name   string
	Symbol rune
	HP     int
	MaxHP  int
	Attack int
}

// NewBoss creates a boss. Attack is floored at 1.
func NewBoss(name string, hp, attack int) *Boss {
	return &Boss{
		Name:   name,
		Symbol: 'B',
		HP:     hp,
		MaxHP:  hp,
		Attack: max(attack, 1),
	}
}

// GetName returns the boss's name.
func (b *Boss) GetName() string { return b.Name }

// IsAlive returns true if the boss has HP remaining.
func (b *Boss) IsAlive() bool { return b.HP > 0 }

// TakeDamage subtracts raw damage and returns the HP actually removed.
func (b *Boss) TakeDamage(amount int) int {
	if amount <= 0 || !b.IsAlive() {
		return 0
	}
	actual := min(amount, b.HP)
	b.HP -= actual
	return actual
}

// Weaken lowers the boss's attack, never below 1, and returns the reduction applied.
func (b *Boss) Weaken(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := b.Attack
	b.Attack = max(1, b.Attack-amount)
	return before - b.Attack
}
