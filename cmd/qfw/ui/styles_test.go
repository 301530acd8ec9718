package ui

import "testing"

func TestThemeByName(t *testing.T) {
	if ThemeByName("dark").IsDark != true {
		t.Error("dark theme should be dark")
	}
	if ThemeByName("light").IsDark != false {
		t.Error("light theme should not be dark")
	}
}

func TestDetectThemeEnvEscapeHatch(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("QFW_DARK_MODE", "1")
	if !DetectTheme().IsDark {
		t.Error("QFW_DARK_MODE=1 should select the dark theme")
	}
}

func TestDetectThemeColorFgBg(t *testing.T) {
	t.Setenv("QFW_DARK_MODE", "")
	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Error("black background should select the dark theme")
	}
	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme().IsDark {
		t.Error("white background should select the light theme")
	}
}

func TestRenderDividerNonEmpty(t *testing.T) {
	s := NewStyles(LightTheme())
	if s.RenderDivider(10) == "" {
		t.Error("divider should not be empty")
	}
	if s.RenderDivider(0) == "" {
		t.Error("divider should clamp width to at least 1")
	}
}
