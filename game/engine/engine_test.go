package engine

import (
	"errors"
	"testing"
)

// engineTestConfig returns a small profile matched to the test boards
func engineTestConfig() *BotConfig {
	cfg := DefaultBotConfig()
	cfg.Name = "Engine Test Profile"
	cfg.Rows = 3
	cfg.Cols = 3
	cfg.FullRescanEveryNMoves = 2
	cfg.MaxConsecutiveFailures = 2
	cfg.MinCellConfidence = 0.3
	return cfg
}

func observableBoard() (Board, ConfidenceMap) {
	board := Board{
		{1, 0, 1},
		{0, 0, 0},
		{0, 0, 0},
	}
	return board, uniformConfidence(3, 3, 0.95)
}

func TestNewEngine(t *testing.T) {
	run, err := NewEngine(engineTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if run.Stopped() {
		t.Error("Expected fresh run not to be stopped")
	}
	if _, _, ok := run.LastObservation(); ok {
		t.Error("Expected fresh run to hold no observation")
	}
	if run.GetState().MoveCount != 0 {
		t.Errorf("Expected move_count 0, got %d", run.GetState().MoveCount)
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	cfg := engineTestConfig()
	cfg.FullRescanEveryNMoves = 0

	if _, err := NewEngine(cfg); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestEngine_ObserveAndSolve(t *testing.T) {
	run, err := NewEngine(engineTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	board, conf := observableBoard()
	if err := run.Observe(board, conf); err != nil {
		t.Fatalf("Failed to observe: %v", err)
	}

	pair := run.Solve()
	if pair == nil {
		t.Fatal("Expected a pair from the observed board")
	}
	want := Pair{A: Cell{0, 0}, B: Cell{0, 2}}
	if *pair != want {
		t.Errorf("Expected pair %v, got %v", want, *pair)
	}

	run.ReportSuccess(*pair)
	state := run.GetState()
	if state.MoveCount != 1 {
		t.Errorf("Expected move_count 1, got %d", state.MoveCount)
	}
	if state.LastPair == nil || *state.LastPair != want {
		t.Errorf("Expected last pair %v, got %v", want, state.LastPair)
	}

	history := run.GetCycleHistory()
	if len(history) != 1 {
		t.Fatalf("Expected 1 history entry, got %d", len(history))
	}
	if history[0].Event != EventMoveSuccess {
		t.Errorf("Expected event %q, got %q", EventMoveSuccess, history[0].Event)
	}
}

func TestEngine_ObserveShapeError(t *testing.T) {
	run, err := NewEngine(engineTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	// Seed a valid observation first, then submit a bad one: the stale
	// observation must not survive.
	board, conf := observableBoard()
	if err := run.Observe(board, conf); err != nil {
		t.Fatalf("Failed to observe: %v", err)
	}

	wrong := Board{{1, 0}, {0, 1}}
	err = run.Observe(wrong, uniformConfidence(2, 2, 1))
	if !errors.Is(err, ErrBadShape) {
		t.Errorf("Expected ErrBadShape, got %v", err)
	}
	if _, _, ok := run.LastObservation(); ok {
		t.Error("Expected observation to be discarded after a shape error")
	}
	if run.Solve() != nil {
		t.Error("Expected Solve to return nil without an observation")
	}
}

func TestEngine_DecideAndMarkRescanned(t *testing.T) {
	run, err := NewEngine(engineTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	board, conf := observableBoard()
	run.Observe(board, conf)

	// Two successes reach the rescan cadence of 2.
	run.ReportSuccess(Pair{A: Cell{0, 0}, B: Cell{0, 2}})
	run.ReportSuccess(Pair{A: Cell{1, 0}, B: Cell{1, 2}})

	due, reason := run.Decide()
	if !due || reason != RescanReasonPeriodic {
		t.Errorf("Expected periodic rescan, got due=%v reason=%q", due, reason)
	}

	run.MarkRescanned(reason)
	if due, _ := run.Decide(); due {
		t.Error("Expected no rescan immediately after acknowledging one")
	}
	if run.GetState().LastFullRescanMove != 2 {
		t.Errorf("Expected rescan anchored at move 2, got %d", run.GetState().LastFullRescanMove)
	}
}

func TestEngine_FailureStop(t *testing.T) {
	run, err := NewEngine(engineTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	run.ReportFailure()
	if run.Stopped() {
		t.Error("Expected run to continue after one failure")
	}

	run.ReportFailure()
	if !run.Stopped() {
		t.Error("Expected run to stop at max_consecutive_failures")
	}

	snap := run.Snapshot()
	if !snap.Stopped {
		t.Error("Expected snapshot to report the stop")
	}
	if snap.State.ConsecutiveFailures != 2 {
		t.Errorf("Expected 2 failures in snapshot, got %d", snap.State.ConsecutiveFailures)
	}
}

func TestEngine_Cleared(t *testing.T) {
	run, err := NewEngine(engineTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if run.Cleared() {
		t.Error("Expected no cleared signal without an observation")
	}

	empty := Board{
		{0, 0, 0},
		{0, -1, 0},
		{0, 0, 0},
	}
	run.Observe(empty, uniformConfidence(3, 3, 1))

	if !run.Cleared() {
		t.Error("Expected cleared board to be reported")
	}
	if run.Solve() != nil {
		t.Error("Expected nil pair on a cleared board")
	}
}

func TestEngine_ResetPreservesHistory(t *testing.T) {
	run, err := NewEngine(engineTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	run.ReportFailure()
	run.ReportFailure()
	if !run.Stopped() {
		t.Fatal("Expected stopped run before reset")
	}

	run.Reset()
	if run.Stopped() {
		t.Error("Expected reset to clear the stop condition")
	}
	if run.GetState().ConsecutiveFailures != 0 {
		t.Errorf("Expected failures reset, got %d", run.GetState().ConsecutiveFailures)
	}
	if len(run.GetCycleHistory()) != 2 {
		t.Errorf("Expected history preserved across reset, got %d entries", len(run.GetCycleHistory()))
	}
}

func TestEngine_SetStateAndHistory(t *testing.T) {
	run, err := NewEngine(engineTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if err := run.SetState(nil); err == nil {
		t.Error("Expected error setting nil state")
	}

	restored := &RunState{MoveCount: 9, ConsecutiveFailures: 1, LastEvent: EventFailure}
	if err := run.SetState(restored); err != nil {
		t.Fatalf("Failed to set state: %v", err)
	}
	if run.GetState().MoveCount != 9 {
		t.Errorf("Expected restored move_count 9, got %d", run.GetState().MoveCount)
	}

	run.SetCycleHistory([]CycleRecord{{CycleNumber: 1, Event: EventMoveSuccess}})
	if run.Snapshot().TotalCycles != 1 {
		t.Errorf("Expected total cycles 1 after restore, got %d", run.Snapshot().TotalCycles)
	}
}
