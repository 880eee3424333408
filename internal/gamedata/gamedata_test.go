package gamedata

import (
	"strings"
	"testing"

	"github.com/samdwyer/bossrush/internal/entity"
)

func TestLoadCatalog(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	if len(catalog.Characters()) != 10 {
		t.Errorf("Expected 10 characters, got %d", len(catalog.Characters()))
	}
	if len(catalog.Stages()) != 3 {
		t.Errorf("Expected 3 stages, got %d", len(catalog.Stages()))
	}
	if len(catalog.Items()) != 3 {
		t.Errorf("Expected 3 items, got %d", len(catalog.Items()))
	}
}

func TestStages(t *testing.T) {
	catalog := MustLoadCatalog()

	tests := []struct {
		id     string
		name   string
		hp     int
		attack int
	}{
		{"infernal_dragon", "Infernal Dragon", 250, 18},
		{"frozen_titan", "Frozen Titan", 300, 15},
		{"shadow_reaper", "Shadow Reaper", 200, 22},
	}

	for i, tt := range tests {
		stage := catalog.StageByID(tt.id)
		if stage == nil {
			t.Errorf("Stage %q not found", tt.id)
			continue
		}
		if catalog.Stages()[i].ID != tt.id {
			t.Errorf("Stage %d = %q, want %q", i, catalog.Stages()[i].ID, tt.id)
		}
		boss := stage.NewBoss()
		if boss.Name != tt.name || boss.HP != tt.hp || boss.MaxHP != tt.hp || boss.Attack != tt.attack {
			t.Errorf("NewBoss() = %+v, want %s %d/%d", boss, tt.name, tt.hp, tt.attack)
		}
	}
}

func TestCharacterRoles(t *testing.T) {
	catalog := MustLoadCatalog()

	want := map[string]entity.Role{
		"aether": entity.RoleDPS,
		"kael":   entity.RoleSubDPS,
		"brunt":  entity.RoleTank,
		"sera":   entity.RoleSupport,
		"mira":   entity.RoleHealer,
		"hexa":   entity.RoleDebuffer,
		"zion":   entity.RoleDPS,
		"wallie": entity.RoleTank,
		"nix":    entity.RoleSubDPS,
		"nova":   entity.RoleHealer,
	}

	for id, role := range want {
		def := catalog.CharacterByID(id)
		if def == nil {
			t.Errorf("Character %q not found", id)
			continue
		}
		m, err := def.NewMember()
		if err != nil {
			t.Errorf("%s.NewMember() error: %v", id, err)
			continue
		}
		if m.Role != role {
			t.Errorf("%s role = %v, want %v", id, m.Role, role)
		}
		if m.HP != role.BaseStats().HP {
			t.Errorf("%s HP = %d, want %d", id, m.HP, role.BaseStats().HP)
		}
	}
}

func TestNewMemberIsFresh(t *testing.T) {
	def := MustLoadCatalog().CharacterByID("aether")

	a, _ := def.NewMember()
	a.TakeDamage(50)
	b, _ := def.NewMember()

	if a == b {
		t.Fatal("NewMember() returned the same member twice")
	}
	if b.HP != b.MaxHP {
		t.Errorf("fresh member HP = %d, want %d", b.HP, b.MaxHP)
	}
}

func TestItems(t *testing.T) {
	catalog := MustLoadCatalog()

	tests := []struct {
		id       string
		atk, def int
		describe string
	}{
		{"sword", 5, 0, "+5 ATK"},
		{"shield", 0, 5, "+5 DEF"},
		{"lance", 3, 2, "+3 ATK +2 DEF"},
	}

	for _, tt := range tests {
		def := catalog.ItemByID(tt.id)
		if def == nil {
			t.Errorf("Item %q not found", tt.id)
			continue
		}
		item := def.Item()
		if item.BonusAttack != tt.atk || item.BonusDefense != tt.def {
			t.Errorf("%s bonuses = %d/%d, want %d/%d", tt.id, item.BonusAttack, item.BonusDefense, tt.atk, tt.def)
		}
		if def.Describe() != tt.describe {
			t.Errorf("%s.Describe() = %q, want %q", tt.id, def.Describe(), tt.describe)
		}
	}
}

func TestCatalogValidation(t *testing.T) {
	chars := []CharacterDef{{ID: "a", Name: "A", Role: "dps", Color: "#FF0000"}}
	stages := []StageDef{{ID: "s", Name: "S", HP: 10, Attack: 1, Color: "#00FF00"}}
	items := []ItemDef{{ID: "i", Name: "I", BonusAttack: 1}}

	if _, err := NewCatalog(chars, stages, items); err != nil {
		t.Fatalf("valid catalog rejected: %v", err)
	}

	tests := []struct {
		name     string
		chars    []CharacterDef
		stages   []StageDef
		items    []ItemDef
		contains string
	}{
		{"unknown role", []CharacterDef{{ID: "a", Name: "A", Role: "bard", Color: "#FF0000"}}, stages, items, "unknown role"},
		{"bad color", []CharacterDef{{ID: "a", Name: "A", Role: "dps", Color: "red"}}, stages, items, "invalid hex color"},
		{"duplicate character", append(chars, chars[0]), stages, items, "duplicate character"},
		{"zero hp stage", chars, []StageDef{{ID: "s", Name: "S", HP: 0, Attack: 1, Color: "#00FF00"}}, items, "must be positive"},
		{"negative item", chars, stages, []ItemDef{{ID: "i", Name: "I", BonusDefense: -1}}, "cannot be negative"},
		{"missing id", chars, stages, []ItemDef{{Name: "I"}}, "required"},
		{"empty roster", nil, stages, items, "at least one"},
	}

	for _, tt := range tests {
		_, err := NewCatalog(tt.chars, tt.stages, tt.items)
		if err == nil {
			t.Errorf("%s: NewCatalog() should fail", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.contains) {
			t.Errorf("%s: error %q should mention %q", tt.name, err, tt.contains)
		}
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	var file ItemsFile
	err := decode([]byte("items:\n  - id: x\n    name: X\n    bonus_speed: 4\n"), &file)
	if err == nil {
		t.Error("decode should reject unknown keys")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load[ItemsFile]("missing.yaml"); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#0000FF", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false}, // Too short
		{"#GG0000", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestCharacterDefMethods(t *testing.T) {
	def := CharacterDef{ID: "test", Name: "Test", Role: "healer", Color: "#FF0000"}

	if def.SymbolRune() != 'H' {
		t.Errorf("Expected role symbol 'H', got %c", def.SymbolRune())
	}
	def.Symbol = "Q"
	if def.SymbolRune() != 'Q' {
		t.Errorf("Expected symbol 'Q', got %c", def.SymbolRune())
	}
	if def.TCellColor() == 0 {
		t.Error("TCellColor returned zero color")
	}
}
