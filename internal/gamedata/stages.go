package gamedata

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/bossrush/internal/entity"
)

// StageDef defines a boss stage loaded from YAML.
type StageDef struct {
	ID     string `yaml:"id"`     // Unique identifier (e.g., "infernal_dragon")
	Name   string `yaml:"name"`   // Boss display name
	HP     int    `yaml:"hp"`     // Boss hit points
	Attack int    `yaml:"attack"` // Boss attack power
	Color  string `yaml:"color"`  // Hex color code
}

// TCellColor returns the color as a tcell.Color.
func (s *StageDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(s.Color)
	if err != nil {
		return tcell.ColorRed
	}
	return color
}

// NewBoss builds a fresh boss for the stage.
func (s *StageDef) NewBoss() *entity.Boss {
	return entity.NewBoss(s.Name, s.HP, s.Attack)
}

func (s *StageDef) validate() error {
	if s.ID == "" || s.Name == "" {
		return fmt.Errorf("stage %q: id and name are required", s.Name)
	}
	if s.HP <= 0 || s.Attack <= 0 {
		return fmt.Errorf("stage %q: hp and attack must be positive", s.ID)
	}
	if _, err := ParseHexColor(s.Color); err != nil {
		return fmt.Errorf("stage %q: %w", s.ID, err)
	}
	return nil
}

// StagesFile represents the structure of stages.yaml.
type StagesFile struct {
	Stages []StageDef `yaml:"stages"`
}

// LoadStages loads stage definitions from the embedded stages.yaml file.
func LoadStages() ([]StageDef, error) {
	file, err := Load[StagesFile]("stages.yaml")
	if err != nil {
		return nil, err
	}
	return file.Stages, nil
}
