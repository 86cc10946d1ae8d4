package runner

import (
	"context"
	"log"
	"time"

	"github.com/tilebot/tilebot/game/engine"
	"github.com/tilebot/tilebot/game/vision"
)

// Event types emitted by the runner during a run
const (
	EventObserveFailed = "observe_failed"
	EventRescan        = "rescan"
	EventMove          = "move"
	EventMoveFailed    = "move_failed"
	EventNoPair        = "no_pair"
	EventCleared       = "cleared"
	EventStopped       = "stopped"
)

// Stop reasons reported in the run summary
const (
	StopCleared      = "cleared"
	StopFailureLimit = "failure_limit"
	StopDeadlock     = "deadlock"
	StopCancelled    = "cancelled"
	StopMaxCycles    = "max_cycles"
)

// Event describes one noteworthy moment in a run
type Event struct {
	Cycle   int          `json:"cycle"`
	Type    string       `json:"type"`
	Pair    *engine.Pair `json:"pair,omitempty"`
	Reason  string       `json:"reason,omitempty"`
	Message string       `json:"message,omitempty"`
}

// Summary describes the outcome of a completed run
type Summary struct {
	Cycles     int    `json:"cycles"`
	Moves      int    `json:"moves"`
	Failures   int    `json:"failures"`
	Rescans    int    `json:"rescans"`
	Cleared    bool   `json:"cleared"`
	Stopped    bool   `json:"stopped"`
	StopReason string `json:"stop_reason"`
}

// Runner drives a run engine through repeated observe-solve-execute cycles
// against a classifier and an executor until the board clears, the failure
// limit trips, or the context is cancelled.
type Runner struct {
	eng        engine.Engine
	classifier vision.Classifier
	executor   vision.Executor
	logger     *log.Logger
	onEvent    func(Event)
	maxCycles  int
}

// Option configures a Runner
type Option func(*Runner)

// WithLogger sets the logger for cycle diagnostics
func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithEventCallback registers a callback invoked for every runner event
func WithEventCallback(fn func(Event)) Option {
	return func(r *Runner) { r.onEvent = fn }
}

// WithMaxCycles bounds the number of cycles; zero means unbounded
func WithMaxCycles(n int) Option {
	return func(r *Runner) { r.maxCycles = n }
}

// New creates a runner around an engine and its collaborators
func New(eng engine.Engine, classifier vision.Classifier, executor vision.Executor, opts ...Option) *Runner {
	r := &Runner{
		eng:        eng,
		classifier: classifier,
		executor:   executor,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes cycles until a terminal condition is reached. The returned
// summary is valid even when the context is cancelled mid-run.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{}

	for cycle := 1; r.maxCycles == 0 || cycle <= r.maxCycles; cycle++ {
		if err := ctx.Err(); err != nil {
			sum.StopReason = StopCancelled
			return sum, err
		}
		sum.Cycles = cycle

		// Observe and validate this cycle's board.
		if ok := r.observe(ctx, cycle, sum); !ok {
			if r.eng.Stopped() {
				return r.stop(cycle, sum), nil
			}
			r.pause(ctx)
			continue
		}

		// Honor a due full rescan before solving.
		if rescan, reason := r.eng.Decide(); rescan {
			if ok := r.rescan(ctx, cycle, reason, sum); !ok {
				if r.eng.Stopped() {
					return r.stop(cycle, sum), nil
				}
				r.pause(ctx)
				continue
			}
		}

		if r.eng.Cleared() {
			return r.cleared(cycle, sum), nil
		}

		pair := r.eng.Solve()
		if pair == nil {
			// Corroborate with a fresh scan before accepting the
			// terminal no-pair signal.
			if ok := r.rescan(ctx, cycle, engine.RescanReasonNoPair, sum); !ok {
				if r.eng.Stopped() {
					return r.stop(cycle, sum), nil
				}
				r.pause(ctx)
				continue
			}
			if r.eng.Cleared() {
				return r.cleared(cycle, sum), nil
			}
			if pair = r.eng.Solve(); pair == nil {
				r.logf("cycle %d: no connectable pair after rescan, stopping", cycle)
				r.emit(Event{Cycle: cycle, Type: EventNoPair, Message: "no connectable pair after corroborating rescan"})
				sum.StopReason = StopDeadlock
				return sum, nil
			}
		}

		// Execute the pair and record the outcome.
		if err := r.executor.ExecutePair(ctx, *pair); err != nil {
			r.eng.ReportFailure()
			sum.Failures++
			r.logf("cycle %d: execution failed: %v", cycle, err)
			r.emit(Event{Cycle: cycle, Type: EventMoveFailed, Pair: pair, Message: err.Error()})
		} else {
			r.eng.ReportSuccess(*pair)
			sum.Moves++
			r.logf("cycle %d: removed pair (%d,%d)-(%d,%d)", cycle, pair.A.Row, pair.A.Col, pair.B.Row, pair.B.Col)
			r.emit(Event{Cycle: cycle, Type: EventMove, Pair: pair})
		}

		if r.eng.Stopped() {
			return r.stop(cycle, sum), nil
		}

		r.pause(ctx)
	}

	sum.StopReason = StopMaxCycles
	return sum, nil
}

// observe takes a fresh observation and submits it to the engine, recording
// a failed cycle when either step goes wrong.
func (r *Runner) observe(ctx context.Context, cycle int, sum *Summary) bool {
	obs, err := r.classifier.Observe(ctx)
	if err == nil {
		err = r.eng.Observe(obs.Board, obs.Confidence)
	}
	if err != nil {
		r.eng.ReportFailure()
		sum.Failures++
		r.logf("cycle %d: observation failed: %v", cycle, err)
		r.emit(Event{Cycle: cycle, Type: EventObserveFailed, Message: err.Error()})
		return false
	}
	return true
}

// rescan performs a full rescan: a fresh observation replaces the current
// one and the state machine is told the rescan happened.
func (r *Runner) rescan(ctx context.Context, cycle int, reason string, sum *Summary) bool {
	if ok := r.observe(ctx, cycle, sum); !ok {
		return false
	}
	r.eng.MarkRescanned(reason)
	sum.Rescans++
	r.logf("cycle %d: full rescan (%s)", cycle, reason)
	r.emit(Event{Cycle: cycle, Type: EventRescan, Reason: reason})
	return true
}

func (r *Runner) cleared(cycle int, sum *Summary) *Summary {
	sum.Cleared = true
	sum.StopReason = StopCleared
	r.logf("cycle %d: board cleared after %d moves", cycle, sum.Moves)
	r.emit(Event{Cycle: cycle, Type: EventCleared})
	return sum
}

func (r *Runner) stop(cycle int, sum *Summary) *Summary {
	sum.Stopped = true
	sum.StopReason = StopFailureLimit
	r.logf("cycle %d: consecutive failure limit reached, stopping", cycle)
	r.emit(Event{Cycle: cycle, Type: EventStopped, Message: "consecutive failure limit reached"})
	return sum
}

// pause waits the configured settle time between cycles, returning early on
// cancellation.
func (r *Runner) pause(ctx context.Context) {
	wait := time.Duration(r.eng.GetConfig().PostClickWaitMs) * time.Millisecond
	if wait <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(wait):
	}
}

func (r *Runner) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}

func (r *Runner) emit(ev Event) {
	if r.onEvent != nil {
		r.onEvent(ev)
	}
}
