package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Window size constants
const (
	defaultWidth  = 800
	defaultHeight = 600
	minWidth      = 400
	minHeight     = 300
)

// Sort method constants
const (
	SortNatural    = 0 // Natural sort order (e.g., file1, file2, file10)
	SortSimple     = 1 // Simple string sort (lexicographical)
	SortEntryOrder = 2 // Maintain original order (no sort)
)

type Config struct {
	WindowX        int                 `json:"window_x"`
	WindowY        int                 `json:"window_y"`
	WindowWidth    int                 `json:"window_width"`
	WindowHeight   int                 `json:"window_height"`
	SortMethod     int                 `json:"sort_method"`
	Fullscreen     bool                `json:"fullscreen"`
	CacheSize      int                 `json:"cache_size"`
	ThumbnailSize  int                 `json:"thumbnail_size"`
	ThumbnailCache int                 `json:"thumbnail_cache"`
	PreloadCount   int                 `json:"preload_count"`
	AnimationSpeed float64             `json:"animation_speed"`
	HelpFontSize   float64             `json:"help_font_size"`
	Keybindings    map[string][]string `json:"keybindings"`
}

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

func defaultConfig() Config {
	return Config{
		WindowX:        -1, // -1 means "let the window manager place it"
		WindowY:        -1,
		WindowWidth:    defaultWidth,
		WindowHeight:   defaultHeight,
		SortMethod:     SortNatural,
		Fullscreen:     false,
		CacheSize:      16,
		ThumbnailSize:  128,
		ThumbnailCache: 100,
		PreloadCount:   2,
		AnimationSpeed: viewAnimationSpeed,
		HelpFontSize:   24.0,
		Keybindings:    GetDefaultKeybindings(),
	}
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "miru.json"
	}
	return filepath.Join(homeDir, ".miru.json")
}

func loadConfig() ConfigLoadResult {
	return loadConfigFromPath(getConfigPath())
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := defaultConfig()

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
		logger.Warn().Str("path", configPath).Err(err).Msg("invalid config file, using defaults")
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

	// Validate sort method
	if config.SortMethod < SortNatural || config.SortMethod > SortEntryOrder {
		config.SortMethod = SortNatural
	}

	// Validate cache size (minimum 4, maximum 64)
	if config.CacheSize < 4 {
		config.CacheSize = 16
	} else if config.CacheSize > 64 {
		config.CacheSize = 64
	}

	// Validate thumbnail edge size (minimum 32, maximum 512)
	if config.ThumbnailSize < 32 || config.ThumbnailSize > 512 {
		config.ThumbnailSize = 128
	}

	// Validate thumbnail cache entries (minimum 16, maximum 1000)
	if config.ThumbnailCache < 16 {
		config.ThumbnailCache = 100
	} else if config.ThumbnailCache > 1000 {
		config.ThumbnailCache = 1000
	}

	// Validate preload count (minimum 0, maximum 8)
	if config.PreloadCount < 0 {
		config.PreloadCount = 2
	} else if config.PreloadCount > 8 {
		config.PreloadCount = 8
	}

	// Validate animation speed (decay rate per second)
	if config.AnimationSpeed < 1.0 || config.AnimationSpeed > 60.0 {
		config.AnimationSpeed = viewAnimationSpeed
	}

	// Validate help font size (minimum 12px for readability)
	if config.HelpFontSize <= 12.0 {
		config.HelpFontSize = 24.0
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
			logger.Warn().Err(err).Msg("invalid keybindings, using defaults")
			config.Keybindings = GetDefaultKeybindings()
			result.Status = "Warning"
			result.Warnings = append(result.Warnings, fmt.Sprintf("Keybinding errors: %v", err))
		}
	}

	result.Config = config
	return result
}

func saveConfig(config Config) {
	saveConfigToPath(config, getConfigPath())
}

func saveConfigToPath(config Config, configPath string) {
	// Don't save if size is implausible (minimized or mid-teardown)
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		logger.Warn().
			Int("width", config.WindowWidth).
			Int("height", config.WindowHeight).
			Msg("not saving config with invalid window size")
		return
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal config")
		return
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		logger.Error().Str("path", configPath).Err(err).Msg("failed to save config")
	}
}

// validateKeybindings checks key formats and detects conflicting bindings.
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

// validateKeyString validates a single key string like "Ctrl+Shift+KeyX".
func validateKeyString(keyStr string, validKeys map[string]bool) error {
	parts := strings.Split(keyStr, "+")
	if len(parts) == 0 {
		return fmt.Errorf("empty key string")
	}

	keyName := parts[len(parts)-1]
	if !validKeys[keyName] {
		return fmt.Errorf("unknown key: %s", keyName)
	}

	for i := 0; i < len(parts)-1; i++ {
		modifier := strings.ToLower(parts[i])
		if modifier != "shift" && modifier != "ctrl" && modifier != "alt" {
			return fmt.Errorf("unknown modifier: %s", parts[i])
		}
	}

	return nil
}

// getValidKeyNames returns the set of key names accepted in bindings.
func getValidKeyNames() map[string]bool {
	valid := make(map[string]bool)
	for name := range getKeyMapping() {
		valid[name] = true
	}
	return valid
}

// getSortMethodName returns the human-readable name of a sort method
func getSortMethodName(sortMethod int) string {
	return GetSortStrategy(sortMethod).Name()
}
