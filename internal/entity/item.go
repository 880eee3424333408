package entity

// Item is a piece of equipment that permanently boosts its wearer.
type Item struct {
	Name         string
	BonusAttack  int
	BonusDefense int
}

// NewItem creates an item. Negative bonuses are clamped to zero.
func NewItem(name string, bonusAttack, bonusDefense int) Item {
	return Item{
		Name:         name,
		BonusAttack:  max(bonusAttack, 0),
		BonusDefense: max(bonusDefense, 0),
	}
}
