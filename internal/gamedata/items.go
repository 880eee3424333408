package gamedata

import (
	"fmt"

	"github.com/samdwyer/bossrush/internal/entity"
)

// ItemDef defines a piece of equipment loaded from YAML.
type ItemDef struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	BonusAttack  int    `yaml:"bonus_attack"`
	BonusDefense int    `yaml:"bonus_defense"`
}

// Item returns the equipment value.
func (d *ItemDef) Item() entity.Item {
	return entity.NewItem(d.Name, d.BonusAttack, d.BonusDefense)
}

// Describe returns a short bonus summary such as "+3 ATK +2 DEF".
func (d *ItemDef) Describe() string {
	switch {
	case d.BonusAttack > 0 && d.BonusDefense > 0:
		return fmt.Sprintf("+%d ATK +%d DEF", d.BonusAttack, d.BonusDefense)
	case d.BonusAttack > 0:
		return fmt.Sprintf("+%d ATK", d.BonusAttack)
	case d.BonusDefense > 0:
		return fmt.Sprintf("+%d DEF", d.BonusDefense)
	default:
		return "no bonus"
	}
}

func (d *ItemDef) validate() error {
	if d.ID == "" || d.Name == "" {
		return fmt.Errorf("item %q: id and name are required", d.Name)
	}
	if d.BonusAttack < 0 || d.BonusDefense < 0 {
		return fmt.Errorf("item %q: bonuses cannot be negative", d.ID)
	}
	return nil
}

// ItemsFile represents the structure of items.yaml.
type ItemsFile struct {
	Items []ItemDef `yaml:"items"`
}

// LoadItems loads item definitions from the embedded items.yaml file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.yaml")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
