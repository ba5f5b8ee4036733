package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 2 {
		t.Fatalf("ThemeNames() returned %d names, want 2", len(names))
	}
	if names[0] != "Dark" || names[1] != "Light" {
		t.Fatalf("ThemeNames() = %v, want [Dark Light]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Dark"); got != "Light" {
		t.Fatalf("NextTheme(Dark) = %q, want Light", got)
	}
	if got := NextTheme("Light"); got != "Dark" {
		t.Fatalf("NextTheme(Light) = %q, want Dark", got)
	}
	if got := NextTheme("Unknown"); got != "Dark" {
		t.Fatalf("NextTheme(Unknown) = %q, want Dark", got)
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("Light"); got.Name != "Light" {
		t.Fatalf("GetTheme(Light).Name = %q, want Light", got.Name)
	}
	if got := GetTheme("nope"); got.Name != "Dark" {
		t.Fatalf("GetTheme(nope).Name = %q, want the Dark default", got.Name)
	}
}
