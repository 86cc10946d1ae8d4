package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// BotConfig holds one bot profile loaded from JSON: where the board sits on
// screen, its logical grid size, classifier thresholds, and the run policy
// knobs consumed by the state machine.
type BotConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Board region of interest in absolute screen coordinates. The engine
	// itself never touches these; they exist for executor collaborators.
	BoardX int `json:"board_x"`
	BoardY int `json:"board_y"`
	BoardW int `json:"board_w"`
	BoardH int `json:"board_h"`

	Rows int `json:"rows"`
	Cols int `json:"cols"`

	MatchThreshold        float64 `json:"match_threshold"`
	MinMarginToSecondBest float64 `json:"min_margin_to_second_best"`
	MinCellConfidence     float64 `json:"min_cell_confidence"`

	ClickPauseMs    int `json:"click_pause_ms"`
	PostClickWaitMs int `json:"post_click_wait_ms"`

	FullRescanEveryNMoves  int `json:"full_rescan_every_n_moves"`
	MaxConsecutiveFailures int `json:"max_consecutive_failures"`

	DebugEnabled bool   `json:"debug_enabled"`
	DebugDir     string `json:"debug_dir"`
}

// ValidateBotConfig validates a bot profile for correctness
func ValidateBotConfig(cfg *BotConfig) error {
	if cfg.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	if cfg.BoardX < 0 || cfg.BoardY < 0 {
		return fmt.Errorf("config validation: board_x and board_y must be >= 0")
	}
	if cfg.BoardW <= 0 || cfg.BoardH <= 0 {
		return fmt.Errorf("config validation: board_w and board_h must be > 0")
	}

	if cfg.Rows < MinGridSize || cfg.Rows > MaxGridSize {
		return fmt.Errorf("config validation: rows must be between %d and %d, got %d", MinGridSize, MaxGridSize, cfg.Rows)
	}
	if cfg.Cols < MinGridSize || cfg.Cols > MaxGridSize {
		return fmt.Errorf("config validation: cols must be between %d and %d, got %d", MinGridSize, MaxGridSize, cfg.Cols)
	}

	if cfg.MatchThreshold < 0 || cfg.MatchThreshold > 1 {
		return fmt.Errorf("config validation: match_threshold must be between 0.0 and 1.0, got %v", cfg.MatchThreshold)
	}
	if cfg.MinMarginToSecondBest < 0 || cfg.MinMarginToSecondBest > 1 {
		return fmt.Errorf("config validation: min_margin_to_second_best must be between 0.0 and 1.0, got %v", cfg.MinMarginToSecondBest)
	}
	if cfg.MinCellConfidence < 0 || cfg.MinCellConfidence > 1 {
		return fmt.Errorf("config validation: min_cell_confidence must be between 0.0 and 1.0, got %v", cfg.MinCellConfidence)
	}

	if cfg.ClickPauseMs < 0 || cfg.PostClickWaitMs < 0 {
		return fmt.Errorf("config validation: click_pause_ms and post_click_wait_ms must be >= 0")
	}

	if cfg.FullRescanEveryNMoves <= 0 {
		return fmt.Errorf("config validation: full_rescan_every_n_moves must be > 0, got %d", cfg.FullRescanEveryNMoves)
	}
	if cfg.MaxConsecutiveFailures <= 0 {
		return fmt.Errorf("config validation: max_consecutive_failures must be > 0, got %d", cfg.MaxConsecutiveFailures)
	}

	if cfg.DebugEnabled && cfg.DebugDir == "" {
		return fmt.Errorf("config validation: debug_dir is required when debug_enabled is true")
	}

	return nil
}

// LoadBotConfig loads and validates a bot profile from a JSON file
func LoadBotConfig(path string) (*BotConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg BotConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}

	if err := ValidateBotConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", path, err)
	}

	return &cfg, nil
}

// DefaultBotConfig returns a minimal valid profile used when no config
// directory is available.
func DefaultBotConfig() *BotConfig {
	return &BotConfig{
		Name:                   "default",
		Description:            "Default minimal bot profile",
		BoardX:                 0,
		BoardY:                 0,
		BoardW:                 640,
		BoardH:                 480,
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
