package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Window size constants
const (
	defaultWidth  = 1000
	defaultHeight = 700
	minWidth      = 400
	minHeight     = 300
)

// Sort method constants
const (
	SortNatural    = 0 // Featured first, then natural title order
	SortYear       = 1 // Featured first, then newest year
	SortEntryOrder = 2 // Maintain manifest order (no sort)
)

// Theme is the strongly-typed color scheme. Colors are hex strings in the
// config file, resolved once into color values at load; there is no runtime
// lookup by path and no fallback-on-miss.
type Theme struct {
	Background BackgroundTheme `json:"background"`
	Text       TextTheme       `json:"text"`
	Accent     AccentTheme     `json:"accent"`
}

type BackgroundTheme struct {
	Primary string `json:"primary"`
	Overlay string `json:"overlay"`
}

type TextTheme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Error     string `json:"error"`
}

type AccentTheme struct {
	Selection string `json:"selection"`
	Featured  string `json:"featured"`
	Warning   string `json:"warning"`
}

func defaultTheme() Theme {
	return Theme{
		Background: BackgroundTheme{Primary: "#101014", Overlay: "#000000a0"},
		Text:       TextTheme{Primary: "#f0f0f0", Secondary: "#b4b4b4", Error: "#ff9696"},
		Accent:     AccentTheme{Selection: "#2a6fd0", Featured: "#ffd764", Warning: "#d05050"},
	}
}

// ResolvedTheme is the decoded form the renderer works with.
type ResolvedTheme struct {
	BackgroundPrimary color.RGBA
	BackgroundOverlay color.RGBA
	TextPrimary       color.RGBA
	TextSecondary     color.RGBA
	TextError         color.RGBA
	AccentSelection   color.RGBA
	AccentFeatured    color.RGBA
	AccentWarning     color.RGBA
}

// Resolve decodes every hex color. Undecodable entries are reported as
// errors; the caller decides whether to fall back to the default theme.
func (t Theme) Resolve() (ResolvedTheme, error) {
	var r ResolvedTheme
	fields := []struct {
		dst *color.RGBA
		src string
	}{
		{&r.BackgroundPrimary, t.Background.Primary},
		{&r.BackgroundOverlay, t.Background.Overlay},
		{&r.TextPrimary, t.Text.Primary},
		{&r.TextSecondary, t.Text.Secondary},
		{&r.TextError, t.Text.Error},
		{&r.AccentSelection, t.Accent.Selection},
		{&r.AccentFeatured, t.Accent.Featured},
		{&r.AccentWarning, t.Accent.Warning},
	}
	for _, f := range fields {
		c, err := parseHexColor(f.src)
		if err != nil {
			return ResolvedTheme{}, err
		}
		*f.dst = c
	}
	return r, nil
}

// parseHexColor parses "#rrggbb" or "#rrggbbaa".
func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	var v [4]uint8
	v[3] = 0xff
	for i := 0; i*2 < len(s); i++ {
		var b uint8
		if _, err := fmt.Sscanf(s[i*2:i*2+2], "%02x", &b); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
		}
		v[i] = b
	}
	return color.RGBA{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

type Config struct {
	WindowWidth       int                 `json:"window_width"`
	WindowHeight      int                 `json:"window_height"`
	Fullscreen        bool                `json:"fullscreen"`
	CacheSize         int                 `json:"cache_size"`
	SortMethod        int                 `json:"sort_method"`
	VisibleRadius     int                 `json:"visible_radius"`
	PreloadRadius     int                 `json:"preload_radius"`
	SnapFraction      float64             `json:"snap_fraction"`
	VelocityThreshold float64             `json:"velocity_threshold"`
	EdgeResistance    float64             `json:"edge_resistance"`
	Keybindings       map[string][]string `json:"keybindings"`
	Mousebindings     map[string][]string `json:"mousebindings"`
	Mouse             MouseSettings       `json:"mouse"`
	Theme             Theme               `json:"theme"`
}

// GestureConfig derives the navigator tunables from the config.
func (c Config) GestureConfig() GestureConfig {
	cfg := defaultGestureConfig()
	cfg.SnapFraction = c.SnapFraction
	cfg.VelocityThreshold = c.VelocityThreshold
	cfg.EdgeResistance = c.EdgeResistance
	return cfg
}

// GalleryConfig derives the window radii from the config.
func (c Config) GalleryConfig() GalleryConfig {
	return GalleryConfig{VisibleRadius: c.VisibleRadius, PreloadRadius: c.PreloadRadius}
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "folio.json"
	}
	return filepath.Join(homeDir, ".folio.json")
}

func loadConfig() ConfigLoadResult {
	return loadConfigFromPath(getConfigPath())
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := Config{
		WindowWidth:       defaultWidth,
		WindowHeight:      defaultHeight,
		Fullscreen:        false,
		CacheSize:         16,  // Decoded-image LRU entries
		SortMethod:        SortNatural,
		VisibleRadius:     3,   // Mounted pages each side of current
		PreloadRadius:     4,   // Prefetched pictures each side of current
		SnapFraction:      0.2, // Drag distance that commits a page turn
		VelocityThreshold: 500,
		EdgeResistance:    20,
		Keybindings:       GetDefaultKeybindings(),
		Mousebindings:     GetDefaultMousebindings(),
		Mouse:             GetDefaultMouseSettings(),
		Theme:             defaultTheme(),
	}

	result := ConfigLoadResult{
		Config:   config,
		HasError: false,
		Warnings: []string{},
		Status:   "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	if err := json.Unmarshal(data, &config); err != nil {
		log.Printf("Warning: Invalid config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	// Validate minimum size
	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	// Validate cache size (minimum 1, maximum 64)
	if config.CacheSize < 1 {
		config.CacheSize = 16
	} else if config.CacheSize > 64 {
		config.CacheSize = 64
	}

	// Validate sort method
	if config.SortMethod < SortNatural || config.SortMethod > SortEntryOrder {
		config.SortMethod = SortNatural
	}

	// Validate window radii (minimum 1, maximum 8)
	if config.VisibleRadius < 1 || config.VisibleRadius > 8 {
		config.VisibleRadius = 3
	}
	if config.PreloadRadius < 1 || config.PreloadRadius > 8 {
		config.PreloadRadius = 4
	}

	// Validate gesture thresholds
	if config.SnapFraction <= 0 || config.SnapFraction >= 0.5 {
		config.SnapFraction = 0.2
	}
	if config.VelocityThreshold < 100 || config.VelocityThreshold > 5000 {
		config.VelocityThreshold = 500
	}
	if config.EdgeResistance < 0 || config.EdgeResistance > 100 {
		config.EdgeResistance = 20
	}

	// Validate keybindings - ensure defaults exist for missing actions
	if config.Keybindings == nil {
		config.Keybindings = GetDefaultKeybindings()
	} else {
		defaults := GetDefaultKeybindings()
		for action, defaultKeys := range defaults {
			if _, exists := config.Keybindings[action]; !exists {
				config.Keybindings[action] = defaultKeys
			}
		}
		if err := validateKeybindings(config.Keybindings); err != nil {
			log.Printf("Warning: Invalid keybindings detected, using defaults: %v", err)
			config.Keybindings = GetDefaultKeybindings()
			result.Status = "Warning"
			result.Warnings = append(result.Warnings, fmt.Sprintf("Keybinding errors: %v", err))
		}
	}
	if config.Mousebindings == nil {
		config.Mousebindings = GetDefaultMousebindings()
	} else {
		defaults := GetDefaultMousebindings()
		for action, defaultActions := range defaults {
			if _, exists := config.Mousebindings[action]; !exists {
				config.Mousebindings[action] = defaultActions
			}
		}
	}
	if config.Mouse == (MouseSettings{}) {
		config.Mouse = GetDefaultMouseSettings()
	}

	// Validate the theme by resolving it once
	if _, err := config.Theme.Resolve(); err != nil {
		log.Printf("Warning: Invalid theme, using defaults: %v", err)
		config.Theme = defaultTheme()
		result.Status = "Warning"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Theme errors: %v", err))
	}

	result.Config = config
	return result
}

// validateKeybindings checks key formats and detects conflicts.
func validateKeybindings(keybindings map[string][]string) error {
	keyToAction := make(map[string]string)
	validKeys := getValidKeyNames()

	for action, keys := range keybindings {
		for _, keyStr := range keys {
			if err := validateKeyString(keyStr, validKeys); err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %v", keyStr, action, err)
			}
			if existingAction, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existingAction, action)
			}
			keyToAction[keyStr] = action
		}
	}
	return nil
}

// validateKeyString validates a single key string format
func validateKeyString(keyStr string, validKeys map[string]bool) error {
	parts := strings.Split(keyStr, "+")
	if len(parts) == 0 {
		return fmt.Errorf("empty key string")
	}

	// Last part should be the actual key
	keyName := parts[len(parts)-1]
	if !validKeys[keyName] {
		return fmt.Errorf("unknown key: %s", keyName)
	}

	// Check modifiers
	for i := 0; i < len(parts)-1; i++ {
		modifier := strings.ToLower(parts[i])
		if modifier != "shift" && modifier != "ctrl" && modifier != "alt" {
			return fmt.Errorf("unknown modifier: %s", parts[i])
		}
	}
	return nil
}

// getValidKeyNames returns the set of key names the binding parser accepts.
func getValidKeyNames() map[string]bool {
	valid := make(map[string]bool, len(keyNames))
	for name := range keyNames {
		valid[name] = true
	}
	return valid
}

func saveConfig(config Config) {
	saveConfigToPath(config, getConfigPath())
}

func saveConfigToPath(config Config, configPath string) {
	// Don't save if size is too small
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		log.Printf("Warning: Not saving config with invalid window size: %dx%d",
			config.WindowWidth, config.WindowHeight)
		return
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		log.Printf("Error: Failed to marshal config: %v", err)
		return
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		log.Printf("Error: Failed to save config to %s: %v", configPath, err)
	}
}
