package main

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "folio.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	result := loadConfigFromPath(filepath.Join(t.TempDir(), "missing.json"))

	if result.Status != "Default" || result.HasError {
		t.Errorf("missing config: status=%q hasError=%v", result.Status, result.HasError)
	}
	c := result.Config
	if c.WindowWidth != defaultWidth || c.WindowHeight != defaultHeight {
		t.Errorf("default window = %dx%d", c.WindowWidth, c.WindowHeight)
	}
	if c.CacheSize != 16 || c.VisibleRadius != 3 || c.PreloadRadius != 4 {
		t.Errorf("default radii/cache = %d/%d/%d", c.CacheSize, c.VisibleRadius, c.PreloadRadius)
	}
	if c.SnapFraction != 0.2 || c.VelocityThreshold != 500 || c.EdgeResistance != 20 {
		t.Errorf("default gesture tunables = %v/%v/%v", c.SnapFraction, c.VelocityThreshold, c.EdgeResistance)
	}
	if len(c.Keybindings) == 0 || len(c.Mousebindings) == 0 {
		t.Error("default bindings missing")
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := writeConfigFile(t, "{not json")
	result := loadConfigFromPath(path)

	if !result.HasError || result.Status != "Error" {
		t.Errorf("invalid JSON: status=%q hasError=%v", result.Status, result.HasError)
	}
	if result.Config.WindowWidth != defaultWidth {
		t.Error("invalid JSON must fall back to defaults")
	}
}

func TestLoadConfigClampsValues(t *testing.T) {
	path := writeConfigFile(t, `{
		"window_width": 10,
		"window_height": 10,
		"cache_size": 1000,
		"sort_method": 9,
		"visible_radius": 0,
		"preload_radius": 99,
		"snap_fraction": 0.9,
		"velocity_threshold": 10,
		"edge_resistance": -5
	}`)
	c := loadConfigFromPath(path).Config

	if c.WindowWidth != defaultWidth || c.WindowHeight != defaultHeight {
		t.Errorf("tiny window not reset: %dx%d", c.WindowWidth, c.WindowHeight)
	}
	if c.CacheSize != 64 {
		t.Errorf("cache size = %d, want clamped to 64", c.CacheSize)
	}
	if c.SortMethod != SortNatural {
		t.Errorf("sort method = %d, want default", c.SortMethod)
	}
	if c.VisibleRadius != 3 || c.PreloadRadius != 4 {
		t.Errorf("radii = %d/%d, want defaults", c.VisibleRadius, c.PreloadRadius)
	}
	if c.SnapFraction != 0.2 || c.VelocityThreshold != 500 || c.EdgeResistance != 20 {
		t.Errorf("gesture tunables = %v/%v/%v, want defaults", c.SnapFraction, c.VelocityThreshold, c.EdgeResistance)
	}
}

func TestLoadConfigBadKeybindingFallsBack(t *testing.T) {
	path := writeConfigFile(t, `{"keybindings": {"exit": ["NotAKey"]}}`)
	result := loadConfigFromPath(path)

	if result.Status != "Warning" {
		t.Errorf("status = %q, want Warning", result.Status)
	}
	defaults := GetDefaultKeybindings()
	if len(result.Config.Keybindings["exit"]) != len(defaults["exit"]) {
		t.Error("bad keybindings must fall back to the full default set")
	}
}

func TestLoadConfigKeybindingConflict(t *testing.T) {
	path := writeConfigFile(t, `{"keybindings": {"exit": ["KeyX"], "help": ["KeyX"]}}`)
	result := loadConfigFromPath(path)

	if result.Status != "Warning" {
		t.Errorf("status = %q, want Warning for a key conflict", result.Status)
	}
}

func TestLoadConfigBadThemeFallsBack(t *testing.T) {
	path := writeConfigFile(t, `{"theme": {"background": {"primary": "chartreuse"}}}`)
	result := loadConfigFromPath(path)

	if result.Status != "Warning" {
		t.Errorf("status = %q, want Warning", result.Status)
	}
	if result.Config.Theme != defaultTheme() {
		t.Error("undecodable theme must fall back to the default")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ff0000", color.RGBA{255, 0, 0, 255}, false},
		{"#00ff7f", color.RGBA{0, 255, 127, 255}, false},
		{"#000000a0", color.RGBA{0, 0, 0, 160}, false},
		{"101014", color.RGBA{16, 16, 20, 255}, false},
		{"#fff", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tt := range tests {
		got, err := parseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestThemeResolve(t *testing.T) {
	resolved, err := defaultTheme().Resolve()
	if err != nil {
		t.Fatalf("default theme must resolve: %v", err)
	}
	if resolved.BackgroundPrimary == (color.RGBA{}) {
		t.Error("resolved background is zero")
	}
	if resolved.BackgroundOverlay.A == 255 {
		t.Error("overlay color should carry its alpha")
	}
}

func TestConfigSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.json")
	config := loadConfigFromPath(path).Config
	config.WindowWidth = 1280
	config.SortMethod = SortYear

	saveConfigToPath(config, path)

	loaded := loadConfigFromPath(path).Config
	if loaded.WindowWidth != 1280 || loaded.SortMethod != SortYear {
		t.Errorf("round trip lost values: %dx? sort=%d", loaded.WindowWidth, loaded.SortMethod)
	}
}

func TestSaveConfigRejectsTinyWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.json")
	config := loadConfigFromPath(path).Config
	config.WindowWidth = 10

	saveConfigToPath(config, path)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("config with an invalid window size must not be written")
	}
}
