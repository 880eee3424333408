package gamedata

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/bossrush/internal/entity"
)

// CharacterDef defines a selectable party member loaded from YAML.
type CharacterDef struct {
	ID     string `yaml:"id"`     // Unique identifier (e.g., "aether")
	Name   string `yaml:"name"`   // Display name (e.g., "Aether")
	Role   string `yaml:"role"`   // Role identifier matching entity.Role.ID (e.g., "dps")
	Symbol string `yaml:"symbol"` // Optional single character; defaults to the role symbol
	Color  string `yaml:"color"`  // Hex color code (e.g., "#FF5555")
}

// RoleValue returns the parsed role.
func (c *CharacterDef) RoleValue() (entity.Role, error) {
	role, ok := entity.ParseRole(c.Role)
	if !ok {
		return 0, fmt.Errorf("character %q: unknown role %q", c.ID, c.Role)
	}
	return role, nil
}

// SymbolRune returns the symbol as a rune for rendering.
func (c *CharacterDef) SymbolRune() rune {
	if len(c.Symbol) > 0 {
		return rune(c.Symbol[0])
	}
	if role, ok := entity.ParseRole(c.Role); ok {
		return role.Symbol()
	}
	return '?'
}

// TCellColor returns the color as a tcell.Color.
func (c *CharacterDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(c.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// NewMember builds a fresh party member from the definition.
func (c *CharacterDef) NewMember() (*entity.Member, error) {
	role, err := c.RoleValue()
	if err != nil {
		return nil, err
	}
	m := entity.NewMember(c.Name, role)
	m.Symbol = c.SymbolRune()
	return m, nil
}

func (c *CharacterDef) validate() error {
	if c.ID == "" || c.Name == "" {
		return fmt.Errorf("character %q: id and name are required", c.Name)
	}
	if _, err := c.RoleValue(); err != nil {
		return err
	}
	if _, err := ParseHexColor(c.Color); err != nil {
		return fmt.Errorf("character %q: %w", c.ID, err)
	}
	return nil
}

// CharactersFile represents the structure of characters.yaml.
type CharactersFile struct {
	Characters []CharacterDef `yaml:"characters"`
}

// LoadCharacters loads character definitions from the embedded characters.yaml file.
func LoadCharacters() ([]CharacterDef, error) {
	file, err := Load[CharactersFile]("characters.yaml")
	if err != nil {
		return nil, err
	}
	return file.Characters, nil
}
