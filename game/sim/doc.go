// Package sim provides an in-process simulated tile match game.
//
// The sim package implements:
//   - Level definitions loaded from JSON, with playability validation
//   - Seeded random level generation with guaranteed even tile counts
//   - A Game that stands in for the real screen, implementing both the
//     vision.Classifier and vision.Executor interfaces
//
// The simulated game enforces the same two-turn connectivity rule as the
// solver, so an illegal pair submitted to ExecutePair fails exactly the way
// a real game would reject it. Observations are perfect by default; tests
// and demos can script one-shot confidence dips and execution failures to
// exercise the rescan and failure paths of the run state machine.
package sim
