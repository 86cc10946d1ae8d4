package engine

import (
	"fmt"
	"time"
)

// Engine provides the main interface for one bot run's cycle operations
type Engine interface {
	// Observation
	Observe(board Board, conf ConfidenceMap) error
	LastObservation() (Board, ConfidenceMap, bool)

	// Decisions (pure with respect to run state)
	Decide() (bool, string)
	Stopped() bool
	Cleared() bool

	// Solving
	Solve() *Pair

	// Transitions
	ReportSuccess(pair Pair)
	ReportFailure()
	MarkRescanned(reason string)
	Reset()

	// State access
	GetState() *RunState
	SetState(state *RunState) error
	SetCycleHistory(history []CycleRecord)
	GetCycleHistory() []CycleRecord
	GetConfig() *BotConfig
	Snapshot() *RunSnapshot
}

// RunEngine implements the Engine interface. It owns the run state and the
// current cycle's observation; each observation is replaced wholesale by the
// next call to Observe and nothing of it survives the cycle.
type RunEngine struct {
	config  *BotConfig
	state   *RunState
	board   Board
	conf    ConfidenceMap
	hasObs  bool
	history []CycleRecord
	cycles  int
}

// NewEngine creates a run engine with the provided bot profile
func NewEngine(config *BotConfig) (*RunEngine, error) {
	if err := ValidateBotConfig(config); err != nil {
		return nil, err
	}

	return &RunEngine{
		config:  config,
		state:   NewRunState(),
		history: []CycleRecord{},
	}, nil
}

// Observe validates and stores this cycle's board observation. A shape
// mismatch is fatal to the cycle: the previous observation is discarded and
// the caller is expected to record a failure.
func (e *RunEngine) Observe(board Board, conf ConfidenceMap) error {
	e.board = nil
	e.conf = nil
	e.hasObs = false

	if err := ValidateBoard(board, e.config.Rows, e.config.Cols); err != nil {
		return err
	}
	if err := ValidateConfidence(conf, e.config.Rows, e.config.Cols); err != nil {
		return err
	}

	e.board = CloneBoard(board)
	e.conf = make(ConfidenceMap, len(conf))
	for r, row := range conf {
		e.conf[r] = make([]float64, len(row))
		copy(e.conf[r], row)
	}
	e.hasObs = true
	return nil
}

// LastObservation returns the current cycle's observation, if any
func (e *RunEngine) LastObservation() (Board, ConfidenceMap, bool) {
	return e.board, e.conf, e.hasObs
}

// Decide reports whether a full rescan is due before solving, with the
// reason code for diagnostics.
func (e *RunEngine) Decide() (bool, string) {
	return ShouldFullRescan(e.state, e.conf, e.config)
}

// Stopped reports whether the run has hit the consecutive-failure limit
func (e *RunEngine) Stopped() bool {
	return ShouldStop(e.state, e.config)
}

// Cleared reports whether the last observation shows no matchable tiles
func (e *RunEngine) Cleared() bool {
	return e.hasObs && IsCleared(e.board)
}

// Solve returns the first connectable pair in the current observation, or
// nil when no observation is held or no pair connects. A nil result with a
// held observation is the defined terminal signal for a cleared or
// deadlocked board, not an error.
func (e *RunEngine) Solve() *Pair {
	if !e.hasObs {
		return nil
	}
	return FindPair(e.board)
}

// ReportSuccess records an executed match on the run state
func (e *RunEngine) ReportSuccess(pair Pair) {
	ApplySuccessfulMove(e.state, pair)
	e.addCycleRecord(CycleRecord{Event: EventMoveSuccess, Pair: &pair})
}

// ReportFailure records a failed cycle on the run state
func (e *RunEngine) ReportFailure() {
	RecordFailure(e.state)
	e.addCycleRecord(CycleRecord{Event: EventFailure})
}

// MarkRescanned acknowledges a performed full rescan
func (e *RunEngine) MarkRescanned(reason string) {
	MarkRescanned(e.state, reason)
	e.addCycleRecord(CycleRecord{Event: EventFullRescan, Rescan: true, Reason: reason})
}

// Reset clears the run state and drops the current observation. The cycle
// history is preserved so diagnostics survive a restart of the same run.
func (e *RunEngine) Reset() {
	e.state = NewRunState()
	e.board = nil
	e.conf = nil
	e.hasObs = false
}

// GetState returns the current run state
func (e *RunEngine) GetState() *RunState {
	return e.state
}

// SetState sets the run state (used for persistence loading)
func (e *RunEngine) SetState(state *RunState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	e.state = state
	return nil
}

// SetCycleHistory restores a persisted cycle history
func (e *RunEngine) SetCycleHistory(history []CycleRecord) {
	if history == nil {
		history = []CycleRecord{}
	}
	e.history = history
	e.cycles = len(history)
}

// GetCycleHistory returns the complete cycle history
func (e *RunEngine) GetCycleHistory() []CycleRecord {
	return e.history
}

// GetConfig returns the bot profile for this run
func (e *RunEngine) GetConfig() *BotConfig {
	return e.config
}

// Snapshot returns the externally visible view of the run
func (e *RunEngine) Snapshot() *RunSnapshot {
	return &RunSnapshot{
		State:        *e.state,
		Stopped:      e.Stopped(),
		BoardCleared: e.Cleared(),
		HasBoard:     e.hasObs,
		Rows:         e.config.Rows,
		Cols:         e.config.Cols,
		ConfigName:   e.config.Name,
		CycleHistory: e.history,
		TotalCycles:  e.cycles,
	}
}

// addCycleRecord appends a history entry stamped with the current counters
func (e *RunEngine) addCycleRecord(rec CycleRecord) {
	e.cycles++
	rec.CycleNumber = e.cycles
	rec.MoveCount = e.state.MoveCount
	rec.Failures = e.state.ConsecutiveFailures
	rec.Timestamp = time.Now().Unix()
	e.history = append(e.history, rec)
}
