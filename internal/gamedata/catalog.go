package gamedata

import (
	"errors"
	"fmt"
)

// Catalog holds the loaded roster, stages and items and provides lookups.
type Catalog struct {
	characters []CharacterDef
	stages     []StageDef
	items      []ItemDef
}

// NewCatalog validates the definitions and builds a catalog from them.
func NewCatalog(characters []CharacterDef, stages []StageDef, items []ItemDef) (*Catalog, error) {
	if len(characters) == 0 || len(stages) == 0 || len(items) == 0 {
		return nil, errors.New("catalog needs at least one character, stage and item")
	}

	ids := make(map[string]bool)
	for i := range characters {
		if err := characters[i].validate(); err != nil {
			return nil, err
		}
		if err := claim(ids, "character", characters[i].ID); err != nil {
			return nil, err
		}
	}
	for i := range stages {
		if err := stages[i].validate(); err != nil {
			return nil, err
		}
		if err := claim(ids, "stage", stages[i].ID); err != nil {
			return nil, err
		}
	}
	for i := range items {
		if err := items[i].validate(); err != nil {
			return nil, err
		}
		if err := claim(ids, "item", items[i].ID); err != nil {
			return nil, err
		}
	}

	return &Catalog{characters: characters, stages: stages, items: items}, nil
}

func claim(ids map[string]bool, kind, id string) error {
	key := kind + ":" + id
	if ids[key] {
		return fmt.Errorf("duplicate %s id %q", kind, id)
	}
	ids[key] = true
	return nil
}

// LoadCatalog loads and validates the embedded data files.
func LoadCatalog() (*Catalog, error) {
	characters, err := LoadCharacters()
	if err != nil {
		return nil, err
	}
	stages, err := LoadStages()
	if err != nil {
		return nil, err
	}
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	catalog, err := NewCatalog(characters, stages, items)
	if err != nil {
		return nil, fmt.Errorf("invalid game data: %w", err)
	}
	return catalog, nil
}

// MustLoadCatalog loads the catalog, panicking on error.
func MustLoadCatalog() *Catalog {
	catalog, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}

// Characters returns the roster in selection order.
func (c *Catalog) Characters() []CharacterDef { return c.characters }

// Stages returns the stages in selection order.
func (c *Catalog) Stages() []StageDef { return c.stages }

// Items returns the equipment in selection order.
func (c *Catalog) Items() []ItemDef { return c.items }

// CharacterByID returns the character with the given ID, or nil if not found.
func (c *Catalog) CharacterByID(id string) *CharacterDef {
	for i := range c.characters {
		if c.characters[i].ID == id {
			return &c.characters[i]
		}
	}
	return nil
}

// StageByID returns the stage with the given ID, or nil if not found.
func (c *Catalog) StageByID(id string) *StageDef {
	for i := range c.stages {
		if c.stages[i].ID == id {
			return &c.stages[i]
		}
	}
	return nil
}

// ItemByID returns the item with the given ID, or nil if not found.
func (c *Catalog) ItemByID(id string) *ItemDef {
	for i := range c.items {
		if c.items[i].ID == id {
			return &c.items[i]
		}
	}
	return nil
}
