package entity

import "testing"

func TestRoleStrings(t *testing.T) {
	tests := []struct {
		role Role
		name string
		id   string
	}{
		{RoleDPS, "DPS", "dps"},
		{RoleSubDPS, "Sub DPS", "sub_dps"},
		{RoleTank, "Tank", "tank"},
		{RoleSupport, "Support", "support"},
		{RoleHealer, "Healer", "healer"},
		{RoleDebuffer, "Debuffer", "debuffer"},
		{Role(99), "Unknown", "unknown"},
	}

	for _, tt := range tests {
		if got := tt.role.String(); got != tt.name {
			t.Errorf("Role(%d).String() = %q, want %q", tt.role, got, tt.name)
		}
		if got := tt.role.ID(); got != tt.id {
			t.Errorf("Role(%d).ID() = %q, want %q", tt.role, got, tt.id)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range Roles() {
		got, ok := ParseRole(r.ID())
		if !ok || got != r {
			t.Errorf("ParseRole(%q) = %v, %v", r.ID(), got, ok)
		}
	}
	if _, ok := ParseRole("bard"); ok {
		t.Error("ParseRole(\"bard\") should fail")
	}
}
