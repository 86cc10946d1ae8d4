package vision

import (
	"context"
	"time"

	"github.com/tilebot/tilebot/game/engine"
)

// Observation is one cycle's classified view of the board. It is produced
// fresh each cycle and discarded after use; the core keeps no reference to
// it beyond the cycle that consumed it.
type Observation struct {
	Board      engine.Board         `json:"board"`
	Confidence engine.ConfidenceMap `json:"confidence"`
	CapturedAt time.Time            `json:"captured_at"`
}

// Classifier produces board observations from the live game. Implementations
// own all blocking work (screen capture, settle delays); Observe must return
// a fully materialized snapshot.
type Classifier interface {
	Observe(ctx context.Context) (*Observation, error)
}

// Executor plays a solved pair on the live game. Implementations own the
// mapping from logical cells to screen coordinates and any post-click wait.
type Executor interface {
	ExecutePair(ctx context.Context, pair engine.Pair) error
}

// MinConfidence returns the lowest score in the map, or 1 for an empty map
func MinConfidence(conf engine.ConfidenceMap) float64 {
	min := 1.0
	for _, row := range conf {
		for _, v := range row {
			if v < min {
				min = v
			}
		}
	}
	return min
}

// LowConfidenceCells returns every cell whose score is below the floor, in
// row-major order.
func LowConfidenceCells(conf engine.ConfidenceMap, floor float64) []engine.Cell {
	var cells []engine.Cell
	for r, row := range conf {
		for c, v := range row {
			if v < floor {
				cells = append(cells, engine.Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}
