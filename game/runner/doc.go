// Package runner drives autonomous play: it loops a run engine through
// observe, rescan, solve, execute, and outcome steps against a classifier
// and executor until the board clears or the run must stop.
//
// Each cycle takes a fresh observation; nothing from a previous cycle's
// board survives. When the engine asks for a full rescan the runner takes
// another observation before solving, and when the solver reports no pair
// the runner corroborates with one more scan before declaring the board
// deadlocked. Failed observations and failed executions both count toward
// the consecutive-failure stop limit.
//
// The runner itself holds no game knowledge: boards come from the
// vision.Classifier and pair execution goes through the vision.Executor,
// which may be a live screen driver or the in-process sim package.
package runner
