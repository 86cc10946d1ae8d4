package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tilebot/tilebot/game/engine"
	"github.com/tilebot/tilebot/game/sim"
	"github.com/tilebot/tilebot/game/vision"
)

func runnerTestConfig() *engine.BotConfig {
	cfg := engine.DefaultBotConfig()
	cfg.Rows = 2
	cfg.Cols = 3
	cfg.PostClickWaitMs = 0
	cfg.FullRescanEveryNMoves = 10
	cfg.MaxConsecutiveFailures = 2
	return cfg
}

func newTestEngine(t *testing.T, cfg *engine.BotConfig) *engine.RunEngine {
	t.Helper()
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return eng
}

func newTestGame(t *testing.T) *sim.Game {
	t.Helper()
	game, err := sim.NewGame(&sim.Level{
		Name: "runner_test",
		Rows: 2,
		Cols: 3,
		Board: [][]int{
			{1, 0, 1},
			{2, 0, 2},
		},
	})
	if err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}
	return game
}

// staticClassifier always returns the same board
type staticClassifier struct {
	board engine.Board
	conf  engine.ConfidenceMap
	err   error
}

func (s *staticClassifier) Observe(ctx context.Context) (*vision.Observation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &vision.Observation{
		Board:      engine.CloneBoard(s.board),
		Confidence: s.conf,
		CapturedAt: time.Now(),
	}, nil
}

// scriptedExecutor fails or succeeds on demand without touching a board
type scriptedExecutor struct {
	err   error
	calls int
}

func (s *scriptedExecutor) ExecutePair(ctx context.Context, pair engine.Pair) error {
	s.calls++
	return s.err
}

func uniformConf(rows, cols int) engine.ConfidenceMap {
	conf := make(engine.ConfidenceMap, rows)
	for r := range conf {
		conf[r] = make([]float64, cols)
		for c := range conf[r] {
			conf[r][c] = 1.0
		}
	}
	return conf
}

func TestRun_ClearsBoard(t *testing.T) {
	game := newTestGame(t)
	eng := newTestEngine(t, runnerTestConfig())

	var events []Event
	r := New(eng, game, game, WithEventCallback(func(ev Event) {
		events = append(events, ev)
	}))

	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !sum.Cleared || sum.StopReason != StopCleared {
		t.Errorf("Expected cleared run, got %+v", sum)
	}
	if sum.Moves != 2 {
		t.Errorf("Expected 2 moves to clear, got %d", sum.Moves)
	}
	if !game.Cleared() {
		t.Error("Expected simulated board cleared")
	}

	last := events[len(events)-1]
	if last.Type != EventCleared {
		t.Errorf("Expected final event '%s', got '%s'", EventCleared, last.Type)
	}
}

func TestRun_PeriodicRescan(t *testing.T) {
	game := newTestGame(t)
	cfg := runnerTestConfig()
	cfg.FullRescanEveryNMoves = 1
	eng := newTestEngine(t, cfg)

	r := New(eng, game, game)
	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !sum.Cleared {
		t.Errorf("Expected cleared run, got %+v", sum)
	}
	// Every post-move cycle is due for a periodic rescan.
	if sum.Rescans == 0 {
		t.Error("Expected periodic rescans during run")
	}
}

func TestRun_LowConfidenceRescan(t *testing.T) {
	game := newTestGame(t)
	eng := newTestEngine(t, runnerTestConfig())

	game.DipConfidence(engine.Cell{Row: 0, Col: 0}, 0.1)

	var rescans []Event
	r := New(eng, game, game, WithEventCallback(func(ev Event) {
		if ev.Type == EventRescan {
			rescans = append(rescans, ev)
		}
	}))

	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !sum.Cleared {
		t.Errorf("Expected cleared run, got %+v", sum)
	}
	if len(rescans) == 0 || rescans[0].Reason != engine.RescanReasonLowConfidence {
		t.Errorf("Expected low-confidence rescan first, got %+v", rescans)
	}
}

func TestRun_FailureLimit(t *testing.T) {
	eng := newTestEngine(t, runnerTestConfig())
	classifier := &staticClassifier{
		board: engine.Board{{1, 0, 1}, {2, 0, 2}},
		conf:  uniformConf(2, 3),
	}
	executor := &scriptedExecutor{err: errors.New("click failed")}

	r := New(eng, classifier, executor)
	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !sum.Stopped || sum.StopReason != StopFailureLimit {
		t.Errorf("Expected failure-limit stop, got %+v", sum)
	}
	if sum.Failures != 2 {
		t.Errorf("Expected 2 failures at limit, got %d", sum.Failures)
	}
	if sum.Moves != 0 {
		t.Errorf("Expected no moves, got %d", sum.Moves)
	}
}

func TestRun_ObserveFailureCountsTowardStop(t *testing.T) {
	eng := newTestEngine(t, runnerTestConfig())
	classifier := &staticClassifier{err: errors.New("capture failed")}
	executor := &scriptedExecutor{}

	r := New(eng, classifier, executor)
	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !sum.Stopped {
		t.Errorf("Expected stop from repeated observation failures, got %+v", sum)
	}
	if executor.calls != 0 {
		t.Error("Expected no executions when observation never succeeds")
	}
}

func TestRun_Deadlock(t *testing.T) {
	// Same-class tiles sit on opposite corners with both direct routes
	// occupied and no two-turn route around the border.
	game, err := sim.NewGame(&sim.Level{
		Name: "deadlock",
		Rows: 2,
		Cols: 2,
		Board: [][]int{
			{1, 2},
			{2, 1},
		},
	})
	if err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}

	cfg := runnerTestConfig()
	cfg.Rows = 2
	cfg.Cols = 2
	eng := newTestEngine(t, cfg)

	var rescans []Event
	r := New(eng, game, game, WithEventCallback(func(ev Event) {
		if ev.Type == EventRescan {
			rescans = append(rescans, ev)
		}
	}))
	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sum.StopReason != StopDeadlock {
		t.Errorf("Expected deadlock stop, got %+v", sum)
	}
	if sum.Cleared || sum.Stopped {
		t.Errorf("Deadlock is neither cleared nor failure-stopped: %+v", sum)
	}
	// The corroborating rescan happened before giving up, and is labeled as
	// corroboration rather than a failure.
	if sum.Rescans != 1 {
		t.Errorf("Expected 1 corroborating rescan, got %d", sum.Rescans)
	}
	if len(rescans) != 1 || rescans[0].Reason != engine.RescanReasonNoPair {
		t.Errorf("Expected no-pair rescan reason, got %+v", rescans)
	}
	if eng.GetState().LastRescanReason != engine.RescanReasonNoPair {
		t.Errorf("Expected no-pair reason on run state, got '%s'", eng.GetState().LastRescanReason)
	}
}

func TestRun_MaxCycles(t *testing.T) {
	eng := newTestEngine(t, runnerTestConfig())
	classifier := &staticClassifier{
		board: engine.Board{{1, 0, 1}, {2, 0, 2}},
		conf:  uniformConf(2, 3),
	}
	executor := &scriptedExecutor{}

	r := New(eng, classifier, executor, WithMaxCycles(3))
	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sum.StopReason != StopMaxCycles {
		t.Errorf("Expected max-cycles stop, got %+v", sum)
	}
	if sum.Cycles != 3 || sum.Moves != 3 {
		t.Errorf("Expected 3 cycles and 3 moves, got %+v", sum)
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	game := newTestGame(t)
	eng := newTestEngine(t, runnerTestConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(eng, game, game)
	sum, err := r.Run(ctx)
	if err == nil {
		t.Fatal("Expected context error")
	}
	if sum.StopReason != StopCancelled {
		t.Errorf("Expected cancelled stop reason, got '%s'", sum.StopReason)
	}
}
