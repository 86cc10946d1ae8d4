package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tilebot/tilebot/game/engine"
)

// botServiceImpl implements the BotService interface
type botServiceImpl struct {
	runs    RunManager
	configs ConfigManager
	mu      sync.RWMutex
}

// NewBotService creates a new bot service instance
func NewBotService(runs RunManager, configs ConfigManager) BotService {
	return &botServiceImpl{
		runs:    runs,
		configs: configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *botServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateRun creates a new bot run
func (s *botServiceImpl) CreateRun(ctx context.Context, configName string) (*RunInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.BotConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let the run manager generate a proper 4-character ID
	run, err := s.runs.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	// Determine the config identifier to return - prefer the input configName if provided,
	// otherwise look up the config_id by display name
	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &RunInfo{
		ID:             run.ID,
		ConfigName:     configID,
		CreatedAt:      run.CreatedAt,
		LastAccessedAt: run.LastAccessedAt,
		RunState:       run.Engine.GetState(),
		BotConfig:      run.Config,
	}, nil
}

// GetRun retrieves run information
func (s *botServiceImpl) GetRun(ctx context.Context, runID string) (*RunInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, err := s.runs.Get(runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	s.runs.UpdateLastAccessed(runID)

	return &RunInfo{
		ID:             run.ID,
		ConfigName:     s.getConfigID(run.Config.Name),
		CreatedAt:      run.CreatedAt,
		LastAccessedAt: run.LastAccessedAt,
		RunState:       run.Engine.GetState(),
		BotConfig:      run.Config,
	}, nil
}

// ListRuns returns all active runs
func (s *botServiceImpl) ListRuns(ctx context.Context) ([]*RunInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := s.runs.List()
	result := make([]*RunInfo, 0, len(runs))

	for _, run := range runs {
		result = append(result, &RunInfo{
			ID:             run.ID,
			ConfigName:     s.getConfigID(run.Config.Name),
			CreatedAt:      run.CreatedAt,
			LastAccessedAt: run.LastAccessedAt,
			RunState:       run.Engine.GetState(),
			BotConfig:      run.Config,
		})
	}

	return result, nil
}

// DeleteRun removes a run
func (s *botServiceImpl) DeleteRun(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.runs.Delete(runID)
}

// Observe submits one cycle's board observation for a run. A shape mismatch
// is recorded as a failed cycle and leaves the run holding no observation.
func (s *botServiceImpl) Observe(ctx context.Context, runID string, board engine.Board, conf engine.ConfidenceMap) (*ObserveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, err := s.runs.Get(runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	s.runs.UpdateLastAccessed(runID)

	// An omitted confidence map means the caller vouches for every cell.
	if conf == nil {
		conf = engine.FullConfidence(board)
	}

	if obsErr := run.Engine.Observe(board, conf); obsErr != nil {
		run.Engine.ReportFailure()
		rescan, reason := run.Engine.Decide()

		s.save(runID)
		return &ObserveResult{
			Accepted: false,
			Rescan:   rescan,
			Reason:   reason,
			RunState: run.Engine.GetState(),
			Message:  obsErr.Error(),
		}, nil
	}

	rescan, reason := run.Engine.Decide()
	result := &ObserveResult{
		Accepted: true,
		Rescan:   rescan,
		Reason:   reason,
		Cleared:  run.Engine.Cleared(),
		RunState: run.Engine.GetState(),
	}
	if result.Cleared {
		result.Message = "board cleared"
	}

	s.save(runID)
	return result, nil
}

// Solve returns the first connectable pair in the run's current observation
func (s *botServiceImpl) Solve(ctx context.Context, runID string) (*SolveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, err := s.runs.Get(runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	s.runs.UpdateLastAccessed(runID)

	if _, _, has := run.Engine.LastObservation(); !has {
		return nil, fmt.Errorf("run %s holds no observation; submit one via observe first", runID)
	}

	result := &SolveResult{
		RunState: run.Engine.GetState(),
	}

	pair := run.Engine.Solve()
	if pair == nil {
		result.NoPair = true
		result.Cleared = run.Engine.Cleared()
		if result.Cleared {
			result.Message = "board cleared"
		} else {
			result.Message = "no connectable pair found"
		}
		return result, nil
	}

	result.Pair = pair
	return result, nil
}

// ReportOutcome records the outcome of an executed cycle. A successful
// outcome requires the pair that was executed.
func (s *botServiceImpl) ReportOutcome(ctx context.Context, runID string, success bool, pair *engine.Pair) (*OutcomeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, err := s.runs.Get(runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	s.runs.UpdateLastAccessed(runID)

	if success {
		if pair == nil {
			return nil, fmt.Errorf("successful outcome requires the executed pair")
		}
		run.Engine.ReportSuccess(*pair)
	} else {
		run.Engine.ReportFailure()
	}

	state := run.Engine.GetState()
	result := &OutcomeResult{
		RunState:        state,
		Stopped:         run.Engine.Stopped(),
		RescanRequested: state.RescanRequested,
	}
	if result.Stopped {
		result.Message = fmt.Sprintf("run stopped after %d consecutive failures", state.ConsecutiveFailures)
	}

	s.save(runID)
	return result, nil
}

// MarkRescanned acknowledges that a full rescan was performed for a run
func (s *botServiceImpl) MarkRescanned(ctx context.Context, runID, reason string) (*engine.RunState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch reason {
	case engine.RescanReasonPeriodic, engine.RescanReasonLowConfidence, engine.RescanReasonFailure, engine.RescanReasonNoPair:
	default:
		return nil, fmt.Errorf("unknown rescan reason '%s'", reason)
	}

	run, err := s.runs.Get(runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	s.runs.UpdateLastAccessed(runID)
	run.Engine.MarkRescanned(reason)

	s.save(runID)
	return run.Engine.GetState(), nil
}

// Reset resets a run to its initial state
func (s *botServiceImpl) Reset(ctx context.Context, runID string) (*engine.RunSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, err := s.runs.Get(runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	s.runs.UpdateLastAccessed(runID)
	run.Engine.Reset()

	s.save(runID)
	return run.Engine.Snapshot(), nil
}

// GetRunSnapshot retrieves the externally visible view of a run
func (s *botServiceImpl) GetRunSnapshot(ctx context.Context, runID string) (*engine.RunSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, err := s.runs.Get(runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	s.runs.UpdateLastAccessed(runID)
	return run.Engine.Snapshot(), nil
}

// GetCycleHistory returns paginated cycle history
func (s *botServiceImpl) GetCycleHistory(ctx context.Context, runID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, err := s.runs.Get(runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	history := run.Engine.GetCycleHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	// Get the slice of cycles
	var cycles []engine.CycleRecord
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			cycles = append(cycles, history[i])
		}
	} else {
		// Normal chronological order
		if start < total {
			cycles = history[start:end]
		}
	}

	// Ensure cycles is not nil
	if cycles == nil {
		cycles = []engine.CycleRecord{}
	}

	return &HistoryResponse{
		Cycles:      cycles,
		TotalCycles: total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available bot configurations
func (s *botServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific bot configuration
func (s *botServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.BotConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a bot configuration to disk
func (s *botServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.BotConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// save persists a run, logging instead of failing the operation
func (s *botServiceImpl) save(runID string) {
	if err := s.runs.Save(runID); err != nil {
		fmt.Printf("Warning: Failed to persist run %s: %v\n", runID, err)
	}
}
