package service

import (
	"context"
	"time"

	"github.com/tilebot/tilebot/game/engine"
)

// BotService defines all bot run operations
type BotService interface {
	// Run Management
	CreateRun(ctx context.Context, configName string) (*RunInfo, error)
	GetRun(ctx context.Context, runID string) (*RunInfo, error)
	ListRuns(ctx context.Context) ([]*RunInfo, error)
	DeleteRun(ctx context.Context, runID string) error

	// Cycle Operations
	Observe(ctx context.Context, runID string, board engine.Board, conf engine.ConfidenceMap) (*ObserveResult, error)
	Solve(ctx context.Context, runID string) (*SolveResult, error)
	ReportOutcome(ctx context.Context, runID string, success bool, pair *engine.Pair) (*OutcomeResult, error)
	MarkRescanned(ctx context.Context, runID, reason string) (*engine.RunState, error)
	Reset(ctx context.Context, runID string) (*engine.RunSnapshot, error)

	// Run State
	GetRunSnapshot(ctx context.Context, runID string) (*engine.RunSnapshot, error)
	GetCycleHistory(ctx context.Context, runID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.BotConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.BotConfig) error
}

// RunManager defines run storage operations
type RunManager interface {
	Create(id string, config *engine.BotConfig) (*Run, error)
	Get(id string) (*Run, error)
	GetOrCreate(id string, config *engine.BotConfig) (*Run, error)
	List() []*Run
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles bot configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.BotConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.BotConfig
	SaveConfig(name string, config *engine.BotConfig) error
}

// Run represents an active bot run
type Run struct {
	ID             string
	Engine         *engine.RunEngine
	Config         *engine.BotConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
