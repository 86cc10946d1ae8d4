// Package engine provides the core move-solving and run-state logic for the
// tile match bot.
//
// The engine package implements:
//   - Board modeling with a zero-padded border for edge routing
//   - Two-turn connectivity search between same-class tiles
//   - Deterministic pair selection over a board observation
//   - The per-run state machine deciding rescans and the stop condition
//   - Bot profile loading and validation
//
// Core Types:
//
// The Engine interface defines the contract for one run's cycle operations,
// implemented by RunEngine. Board and ConfidenceMap carry a single cycle's
// observation from the classifier collaborator; RunState holds the counters
// and flags that persist across cycles within a run.
//
// Matching Rule:
//
// Two cells holding the same positive tile class are connectable when an
// orthogonal path of empty cells joins them with at most two heading
// changes. The search runs on the padded board, so paths may route around
// the outside edge of the visible grid. CanConnect performs the search as a
// breadth-first expansion over (position, heading, turns-used) states.
//
// Usage:
//
//	cfg, err := engine.LoadBotConfig("configs/default.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	run, err := engine.NewEngine(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := run.Observe(board, confidence); err != nil {
//		run.ReportFailure()
//	} else if pair := run.Solve(); pair != nil {
//		// click the pair, then:
//		run.ReportSuccess(*pair)
//	}
//
// Determinism:
//
// For a fixed board, FindPair always returns the same pair: cells are
// scanned in row-major order and the first connectable partner wins. The
// state machine relies on this repeatability when it re-submits an
// unchanged observation after a failed execution.
package engine
