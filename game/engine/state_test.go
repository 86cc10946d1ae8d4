package engine

import "testing"

// stateTestConfig returns a profile with small policy thresholds
func stateTestConfig() *BotConfig {
	cfg := DefaultBotConfig()
	cfg.Rows = 3
	cfg.Cols = 3
	cfg.FullRescanEveryNMoves = 5
	cfg.MaxConsecutiveFailures = 4
	cfg.MinCellConfidence = 0.3
	return cfg
}

// uniformConfidence builds a rows x cols map filled with one score
func uniformConfidence(rows, cols int, v float64) ConfidenceMap {
	conf := make(ConfidenceMap, rows)
	for r := range conf {
		conf[r] = make([]float64, cols)
		for c := range conf[r] {
			conf[r][c] = v
		}
	}
	return conf
}

func TestNewRunState_Defaults(t *testing.T) {
	state := NewRunState()

	if state.MoveCount != 0 {
		t.Errorf("Expected move_count 0, got %d", state.MoveCount)
	}
	if state.ConsecutiveFailures != 0 {
		t.Errorf("Expected consecutive_failures 0, got %d", state.ConsecutiveFailures)
	}
	if state.LastFullRescanMove != 0 {
		t.Errorf("Expected last_full_rescan_move 0, got %d", state.LastFullRescanMove)
	}
	if state.RescanRequested {
		t.Error("Expected no pending rescan request")
	}
	if state.LastEvent != EventInit {
		t.Errorf("Expected last event %q, got %q", EventInit, state.LastEvent)
	}
	if state.LastPair != nil {
		t.Errorf("Expected no last pair, got %v", state.LastPair)
	}
}

func TestShouldFullRescan_PeriodicTrigger(t *testing.T) {
	cfg := stateTestConfig()
	state := NewRunState()
	conf := uniformConfidence(3, 3, 0.95)

	state.MoveCount = 4
	if due, _ := ShouldFullRescan(state, conf, cfg); due {
		t.Error("Expected no rescan before the cadence is reached")
	}

	state.MoveCount = 5
	due, reason := ShouldFullRescan(state, conf, cfg)
	if !due {
		t.Error("Expected periodic rescan at the cadence boundary")
	}
	if reason != RescanReasonPeriodic {
		t.Errorf("Expected reason %q, got %q", RescanReasonPeriodic, reason)
	}

	// The predicate is pure: it must not advance the cadence anchor.
	if state.LastFullRescanMove != 0 {
		t.Errorf("Expected predicate to leave last_full_rescan_move at 0, got %d", state.LastFullRescanMove)
	}

	// Cadence is relative to the last acknowledged rescan.
	MarkRescanned(state, reason)
	if due, _ := ShouldFullRescan(state, conf, cfg); due {
		t.Error("Expected no rescan right after acknowledging one")
	}
	state.MoveCount = 10
	if due, _ := ShouldFullRescan(state, conf, cfg); !due {
		t.Error("Expected periodic rescan five moves after the last one")
	}
}

func TestShouldFullRescan_LowConfidenceTrigger(t *testing.T) {
	cfg := stateTestConfig()
	state := NewRunState()
	conf := uniformConfidence(3, 3, 0.9)
	conf[1][1] = 0.1

	due, reason := ShouldFullRescan(state, conf, cfg)
	if !due {
		t.Error("Expected rescan when any cell is below the confidence floor")
	}
	if reason != RescanReasonLowConfidence {
		t.Errorf("Expected reason %q, got %q", RescanReasonLowConfidence, reason)
	}
}

func TestShouldFullRescan_FailureRequestTrigger(t *testing.T) {
	cfg := stateTestConfig()
	state := NewRunState()
	RecordFailure(state)

	if state.ConsecutiveFailures != 1 {
		t.Errorf("Expected 1 failure, got %d", state.ConsecutiveFailures)
	}
	if !state.RescanRequested {
		t.Error("Expected failure to request a rescan")
	}
	if state.LastEvent != EventFailure {
		t.Errorf("Expected last event %q, got %q", EventFailure, state.LastEvent)
	}

	conf := uniformConfidence(3, 3, 0.95)
	due, reason := ShouldFullRescan(state, conf, cfg)
	if !due {
		t.Error("Expected rescan after a recorded failure")
	}
	if reason != RescanReasonFailure {
		t.Errorf("Expected reason %q, got %q", RescanReasonFailure, reason)
	}

	MarkRescanned(state, reason)
	if state.RescanRequested {
		t.Error("Expected MarkRescanned to clear the request flag")
	}
	if due, _ := ShouldFullRescan(state, conf, cfg); due {
		t.Error("Expected no rescan after the request was honored")
	}
}

func TestShouldFullRescan_NoTrigger(t *testing.T) {
	cfg := stateTestConfig()
	state := NewRunState()
	state.MoveCount = 1
	conf := uniformConfidence(3, 3, 0.95)

	if due, reason := ShouldFullRescan(state, conf, cfg); due {
		t.Errorf("Expected no rescan, got reason %q", reason)
	}
}

func TestApplySuccessfulMove(t *testing.T) {
	state := NewRunState()
	state.ConsecutiveFailures = 3
	state.RescanRequested = true
	pair := Pair{A: Cell{0, 1}, B: Cell{2, 2}}

	ApplySuccessfulMove(state, pair)

	if state.MoveCount != 1 {
		t.Errorf("Expected move_count 1, got %d", state.MoveCount)
	}
	if state.ConsecutiveFailures != 0 {
		t.Errorf("Expected failures reset to 0, got %d", state.ConsecutiveFailures)
	}
	if state.LastPair == nil || *state.LastPair != pair {
		t.Errorf("Expected last pair %v, got %v", pair, state.LastPair)
	}
	if state.LastEvent != EventMoveSuccess {
		t.Errorf("Expected last event %q, got %q", EventMoveSuccess, state.LastEvent)
	}
	if state.RescanRequested {
		t.Error("Expected success to clear a pending rescan request")
	}
}

func TestRecordFailure_LeavesMoveCount(t *testing.T) {
	state := NewRunState()
	state.MoveCount = 7

	RecordFailure(state)
	RecordFailure(state)

	if state.MoveCount != 7 {
		t.Errorf("Expected move_count unchanged at 7, got %d", state.MoveCount)
	}
	if state.ConsecutiveFailures != 2 {
		t.Errorf("Expected 2 consecutive failures, got %d", state.ConsecutiveFailures)
	}
}

func TestShouldStop_ThresholdIsTerminal(t *testing.T) {
	cfg := stateTestConfig()
	state := NewRunState()

	for i := 0; i < cfg.MaxConsecutiveFailures; i++ {
		if ShouldStop(state, cfg) {
			t.Fatalf("Stop predicate fired early at %d failures", state.ConsecutiveFailures)
		}
		RecordFailure(state)
	}

	if !ShouldStop(state, cfg) {
		t.Error("Expected stop at max_consecutive_failures")
	}

	// Absent an external reset, further failures keep the run stopped.
	RecordFailure(state)
	if !ShouldStop(state, cfg) {
		t.Error("Expected stop predicate to stay true past the threshold")
	}
}
