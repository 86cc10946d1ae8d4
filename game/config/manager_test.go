package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/tilebot/tilebot/game/engine"
)

func createTestConfigDir(t *testing.T) string {
	dir, err := os.MkdirTemp("", "config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	return dir
}

func createValidConfig() *engine.BotConfig {
	return &engine.BotConfig{
		Name:                   "Test Profile",
		Description:            "Test bot profile",
		BoardX:                 100,
		BoardY:                 200,
		BoardW:                 800,
		BoardH:                 600,
		Rows:                   8,
		Cols:                   10,
		MatchThreshold:         0.85,
		MinMarginToSecondBest:  0.05,
		MinCellConfidence:      0.3,
		ClickPauseMs:           50,
		PostClickWaitMs:        250,
		FullRescanEveryNMoves:  5,
		MaxConsecutiveFailures: 4,
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.BotConfig) {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}

	path := filepath.Join(dir, filename)
	err = os.WriteFile(path, data, 0644)
	if err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := createTestConfigDir(t)
		defer os.RemoveAll(dir)

		defaultConfig := createValidConfig()
		defaultConfig.Name = "Default"
		writeConfigFile(t, dir, "default", defaultConfig)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager == nil {
			t.Error("Expected manager to be non-nil")
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager("/non/existent/path")
		if err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("missing default config", func(t *testing.T) {
		dir := createTestConfigDir(t)
		defer os.RemoveAll(dir)

		manager, err := NewManager(dir)
		if err != nil {
			t.Errorf("NewManager should succeed even without config files, got error: %v", err)
		}

		// Should have fallen back to the built-in profile
		if manager == nil {
			t.Fatal("Expected manager to be created")
		}

		defaultConfig := manager.GetDefault()
		if defaultConfig == nil {
			t.Error("Expected default config to be available")
		}
	})

	t.Run("default falls back to first available", func(t *testing.T) {
		dir := createTestConfigDir(t)
		defer os.RemoveAll(dir)

		only := createValidConfig()
		only.Name = "Only Profile"
		writeConfigFile(t, dir, "aurora", only)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}

		defaultConfig := manager.GetDefault()
		if defaultConfig == nil {
			t.Fatal("Expected default config to be non-nil")
		}
		if defaultConfig.Name != "Only Profile" {
			t.Errorf("Expected fallback to 'Only Profile', got '%s'", defaultConfig.Name)
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	defaultConfig := createValidConfig()
	defaultConfig.Name = "Default"
	writeConfigFile(t, dir, "default", defaultConfig)

	fastConfig := createValidConfig()
	fastConfig.Name = "Fast"
	fastConfig.PostClickWaitMs = 80
	writeConfigFile(t, dir, "fast", fastConfig)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("load existing config", func(t *testing.T) {
		config, err := manager.LoadConfig("fast")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Name != "Fast" {
			t.Errorf("Expected config name 'Fast', got '%s'", config.Name)
		}
		if config.PostClickWaitMs != 80 {
			t.Errorf("Expected post click wait 80, got %d", config.PostClickWaitMs)
		}
	})

	t.Run("load with .json extension", func(t *testing.T) {
		config, err := manager.LoadConfig("fast.json")
		if err != nil {
			t.Fatalf("Failed to load config with extension: %v", err)
		}
		if config.Name != "Fast" {
			t.Errorf("Expected config name 'Fast', got '%s'", config.Name)
		}
	})

	t.Run("load from cache", func(t *testing.T) {
		config1, _ := manager.LoadConfig("fast")

		config2, err := manager.LoadConfig("fast")
		if err != nil {
			t.Fatalf("Failed to load config from cache: %v", err)
		}

		// Same pointer means the cache served it
		if config1 != config2 {
			t.Error("Expected config to be loaded from cache")
		}
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := manager.LoadConfig("non-existent")
		if err != ErrConfigNotFound {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("load invalid config", func(t *testing.T) {
		invalidData := []byte(`{"name": ""}`) // Missing required fields
		err := os.WriteFile(filepath.Join(dir, "invalid.json"), invalidData, 0644)
		if err != nil {
			t.Fatalf("Failed to write invalid config: %v", err)
		}

		_, err = manager.LoadConfig("invalid")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("load malformed JSON", func(t *testing.T) {
		malformedData := []byte(`{"name": "Malformed", invalid json}`)
		err := os.WriteFile(filepath.Join(dir, "malformed.json"), malformedData, 0644)
		if err != nil {
			t.Fatalf("Failed to write malformed config: %v", err)
		}

		_, err = manager.LoadConfig("malformed")
		if err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})
}

func TestManager_GetDefault(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	defaultConfig := createValidConfig()
	defaultConfig.Name = "Default Profile"
	writeConfigFile(t, dir, "default", defaultConfig)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config := manager.GetDefault()
	if config == nil {
		t.Fatal("Expected default config to be non-nil")
	}
	if config.Name != "Default Profile" {
		t.Errorf("Expected default config name 'Default Profile', got '%s'", config.Name)
	}
}

func TestManager_SetDefault(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	defaultConfig := createValidConfig()
	defaultConfig.Name = "Default"
	writeConfigFile(t, dir, "default", defaultConfig)

	altConfig := createValidConfig()
	altConfig.Name = "Alternate"
	writeConfigFile(t, dir, "alternate", altConfig)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if err := manager.SetDefault("alternate"); err != nil {
		t.Fatalf("Failed to set default: %v", err)
	}
	if manager.GetDefault().Name != "Alternate" {
		t.Errorf("Expected default 'Alternate', got '%s'", manager.GetDefault().Name)
	}

	if err := manager.SetDefault("missing"); err != ErrConfigNotFound {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
}

func TestManager_ListConfigs(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	configs := []struct {
		filename string
		name     string
	}{
		{"default", "Default"},
		{"fast", "Fast"},
		{"careful", "Careful"},
		{"large-board", "Large Board"},
	}

	for _, cfg := range configs {
		config := createValidConfig()
		config.Name = cfg.name
		writeConfigFile(t, dir, cfg.filename, config)
	}

	// Non-JSON files should be ignored
	os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("readme"), 0644)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configList, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}
	if len(configList) != 4 {
		t.Errorf("Expected 4 configs, got %d", len(configList))
	}

	foundConfigs := make(map[string]bool)
	for _, info := range configList {
		foundConfigs[info.Name] = true
		if info.Rows != 8 || info.Cols != 10 {
			t.Errorf("Config '%s' has wrong grid size %dx%d", info.Name, info.Rows, info.Cols)
		}
	}

	for _, cfg := range configs {
		if !foundConfigs[cfg.name] {
			t.Errorf("Config '%s' not found in list", cfg.name)
		}
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	defaultConfig := createValidConfig()
	writeConfigFile(t, dir, "default", defaultConfig)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("save valid config", func(t *testing.T) {
		config := createValidConfig()
		config.Name = "Saved"
		config.FullRescanEveryNMoves = 3

		if err := manager.SaveConfig("saved", config); err != nil {
			t.Fatalf("Failed to save config: %v", err)
		}

		if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
			t.Errorf("Expected saved.json on disk: %v", err)
		}

		loaded, err := manager.LoadConfig("saved")
		if err != nil {
			t.Fatalf("Failed to load saved config: %v", err)
		}
		if loaded.FullRescanEveryNMoves != 3 {
			t.Errorf("Expected rescan cadence 3, got %d", loaded.FullRescanEveryNMoves)
		}
	})

	t.Run("save invalid config", func(t *testing.T) {
		config := createValidConfig()
		config.Rows = 0

		err := manager.SaveConfig("broken", config)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}

		if _, err := os.Stat(filepath.Join(dir, "broken.json")); !os.IsNotExist(err) {
			t.Error("Invalid config should not have been written to disk")
		}
	})
}

func TestManager_RefreshCache(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	config := createValidConfig()
	config.Name = "Changeable"
	config.MaxConsecutiveFailures = 4
	writeConfigFile(t, dir, "default", config)
	writeConfigFile(t, dir, "changeable", config)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	loaded, _ := manager.LoadConfig("changeable")
	if loaded.MaxConsecutiveFailures != 4 {
		t.Errorf("Expected initial failure limit 4, got %d", loaded.MaxConsecutiveFailures)
	}

	// Modify the file behind the cache
	config.MaxConsecutiveFailures = 9
	writeConfigFile(t, dir, "changeable", config)

	if err := manager.RefreshCache(); err != nil {
		t.Fatalf("Failed to refresh cache: %v", err)
	}

	reloaded, _ := manager.LoadConfig("changeable")
	if reloaded.MaxConsecutiveFailures != 9 {
		t.Errorf("Expected refreshed failure limit 9, got %d", reloaded.MaxConsecutiveFailures)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	defaultConfig := createValidConfig()
	writeConfigFile(t, dir, "default", defaultConfig)

	for i := 1; i <= 5; i++ {
		config := createValidConfig()
		config.Name = "Config" + string(rune('0'+i))
		writeConfigFile(t, dir, "config"+string(rune('0'+i)), config)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			configName := "config" + string(rune('0'+((id%5)+1)))
			_, err := manager.LoadConfig(configName)
			if err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}

	if manager.Count() < 5 {
		t.Errorf("Expected at least 5 configs in cache, got %d", manager.Count())
	}
}

func TestManager_CachingBehavior(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	defaultConfig := createValidConfig()
	writeConfigFile(t, dir, "default", defaultConfig)

	testConfig := createValidConfig()
	testConfig.Name = "Test"
	writeConfigFile(t, dir, "test", testConfig)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	for i := 0; i < 10; i++ {
		config, err := manager.LoadConfig("test")
		if err != nil {
			t.Fatalf("Failed to load config on iteration %d: %v", i, err)
		}
		if config.Name != "Test" {
			t.Errorf("Unexpected config name on iteration %d", i)
		}
	}

	// Both "default" and "test" are cached
	if manager.Count() != 2 {
		t.Errorf("Expected 2 configs in cache, got %d", manager.Count())
	}
}

// Test-only helper

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}
