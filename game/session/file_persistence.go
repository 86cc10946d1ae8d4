package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tilebot/tilebot/game/engine"
	"github.com/tilebot/tilebot/game/service"
)

// FilePersistence implements RunPersistence using file system storage
type FilePersistence struct {
	runsDir       string
	configManager service.ConfigManager
}

// NewFilePersistence creates a new file-based run persistence layer
func NewFilePersistence(runsDir string, configManager service.ConfigManager) (*FilePersistence, error) {
	// Create runs directory if it doesn't exist
	if err := os.MkdirAll(runsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runs directory: %w", err)
	}

	return &FilePersistence{
		runsDir:       runsDir,
		configManager: configManager,
	}, nil
}

// Save persists a run to a JSON file
func (fp *FilePersistence) Save(run *service.Run) error {
	if run == nil {
		return fmt.Errorf("run cannot be nil")
	}

	// Get config ID from display name
	configID, err := fp.getConfigIDFromName(run.Config.Name)
	if err != nil {
		return fmt.Errorf("failed to get config ID: %w", err)
	}

	// Create persisted data structure
	data := PersistedRunData{
		ID:             run.ID,
		ConfigName:     configID, // Store config ID, not display name
		CreatedAt:      run.CreatedAt,
		LastAccessedAt: run.LastAccessedAt,
		RunState:       run.Engine.GetState(),
		CycleHistory:   run.Engine.GetCycleHistory(),
	}

	// Marshal to JSON with indentation for readability
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run data: %w", err)
	}

	// Write to file
	filePath := fp.getFilePath(run.ID)
	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write run file: %w", err)
	}

	return nil
}

// Load retrieves a run from a JSON file. The restored engine holds the
// persisted state and history but no observation; the next cycle must submit
// a fresh one.
func (fp *FilePersistence) Load(id string) (*service.Run, error) {
	filePath := fp.getFilePath(id)

	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrRunNotFound
	}

	// Read file
	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}

	// Unmarshal JSON
	var data PersistedRunData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run data: %w", err)
	}

	// Load the bot configuration
	botConfig, err := fp.configManager.LoadConfig(data.ConfigName)
	if err != nil {
		return nil, fmt.Errorf("failed to load config '%s': %w", data.ConfigName, err)
	}

	// Create run engine with configuration
	runEngine, err := engine.NewEngine(botConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create run engine: %w", err)
	}

	// Restore run state and history
	if data.RunState != nil {
		if err := runEngine.SetState(data.RunState); err != nil {
			return nil, fmt.Errorf("failed to set run state: %w", err)
		}
	}
	runEngine.SetCycleHistory(data.CycleHistory)

	// Create run
	run := &service.Run{
		ID:             data.ID,
		Engine:         runEngine,
		Config:         botConfig,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}

	return run, nil
}

// Delete removes a run file
func (fp *FilePersistence) Delete(id string) error {
	filePath := fp.getFilePath(id)

	// Check if file exists
	if !fp.Exists(id) {
		return ErrRunNotFound
	}

	// Remove file
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to remove run file: %w", err)
	}

	return nil
}

// ListAll returns all persisted run IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.runsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read runs directory: %w", err)
	}

	var runIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			// Remove .json extension to get run ID
			runID := strings.TrimSuffix(name, ".json")
			runIDs = append(runIDs, runID)
		}
	}

	return runIDs, nil
}

// Exists checks if a run file exists
func (fp *FilePersistence) Exists(id string) bool {
	filePath := fp.getFilePath(id)
	_, err := os.Stat(filePath)
	return err == nil
}

// getFilePath returns the full file path for a run ID
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.runsDir, fmt.Sprintf("%s.json", id))
}

// getConfigIDFromName returns the config ID (filename without extension) from display name
func (fp *FilePersistence) getConfigIDFromName(displayName string) (string, error) {
	configs, err := fp.configManager.ListConfigs()
	if err != nil {
		return "", fmt.Errorf("failed to list configs: %w", err)
	}

	for _, config := range configs {
		if config.Name == displayName {
			return config.ConfigID, nil
		}
	}

	// If not found, assume the displayName is already the config ID
	return displayName, nil
}
