package service

import (
	"time"

	"github.com/tilebot/tilebot/game/engine"
)

// RunInfo provides information about a bot run
type RunInfo struct {
	ID             string            `json:"id"`
	ConfigName     string            `json:"config_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	RunState       *engine.RunState  `json:"run_state"`
	BotConfig      *engine.BotConfig `json:"bot_config"`
}

// ObserveResult contains the result of submitting a board observation
type ObserveResult struct {
	Accepted bool             `json:"accepted"`
	Rescan   bool             `json:"rescan"`
	Reason   string           `json:"reason,omitempty"` // periodic|low_confidence|failure_or_mismatch
	Cleared  bool             `json:"cleared"`
	RunState *engine.RunState `json:"run_state"`
	Message  string           `json:"message,omitempty"`
}

// SolveResult contains the result of a solve operation
type SolveResult struct {
	Pair     *engine.Pair     `json:"pair,omitempty"`
	NoPair   bool             `json:"no_pair"`
	Cleared  bool             `json:"cleared"`
	RunState *engine.RunState `json:"run_state"`
	Message  string           `json:"message,omitempty"`
}

// OutcomeResult contains the run state after a reported cycle outcome
type OutcomeResult struct {
	RunState        *engine.RunState `json:"run_state"`
	Stopped         bool             `json:"stopped"`
	RescanRequested bool             `json:"rescan_requested"`
	Message         string           `json:"message,omitempty"`
}

// HistoryOptions configures cycle history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated cycle history
type HistoryResponse struct {
	Cycles      []engine.CycleRecord `json:"cycles"`
	TotalCycles int                  `json:"total_cycles"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
	TotalPages  int                  `json:"total_pages"`
	HasNext     bool                 `json:"has_next"`
	HasPrevious bool                 `json:"has_previous"`
}

// ConfigInfo provides information about a bot configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for run creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
}
