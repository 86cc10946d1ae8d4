package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tilebot/tilebot/game/engine"
	"github.com/tilebot/tilebot/game/vision"
)

// Game is an in-process tile match game used in place of a real screen. It
// implements both vision.Classifier and vision.Executor: observations are
// perfect snapshots of the simulated board, and executing a pair removes it
// after the same legality check the real game would apply.
type Game struct {
	mu    sync.Mutex
	board engine.Board
	moves int

	// Scripted imperfections for tests and demos.
	dips     map[engine.Cell]float64
	failNext bool
}

// NewGame creates a simulated game from a level
func NewGame(level *Level) (*Game, error) {
	if err := ValidateLevel(level); err != nil {
		return nil, err
	}
	return &Game{
		board: engine.CloneBoard(level.Board),
		dips:  make(map[engine.Cell]float64),
	}, nil
}

// Observe returns a snapshot observation of the simulated board. Scripted
// confidence dips apply to exactly one observation and are then cleared.
func (g *Game) Observe(ctx context.Context) (*vision.Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	rows := len(g.board)
	cols := len(g.board[0])
	conf := make(engine.ConfidenceMap, rows)
	for r := range conf {
		conf[r] = make([]float64, cols)
		for c := range conf[r] {
			conf[r][c] = 1.0
		}
	}
	for cell, v := range g.dips {
		if cell.Row >= 0 && cell.Row < rows && cell.Col >= 0 && cell.Col < cols {
			conf[cell.Row][cell.Col] = v
		}
	}
	g.dips = make(map[engine.Cell]float64)

	return &vision.Observation{
		Board:      engine.CloneBoard(g.board),
		Confidence: conf,
		CapturedAt: time.Now(),
	}, nil
}

// ExecutePair removes a pair from the simulated board after verifying it is
// a legal match under the two-turn rule.
func (g *Game) ExecutePair(ctx context.Context, pair engine.Pair) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.failNext {
		g.failNext = false
		return fmt.Errorf("simulated execution failure")
	}

	rows := len(g.board)
	cols := len(g.board[0])
	for _, cell := range []engine.Cell{pair.A, pair.B} {
		if cell.Row < 0 || cell.Row >= rows || cell.Col < 0 || cell.Col >= cols {
			return fmt.Errorf("cell %v out of range for %dx%d board", cell, rows, cols)
		}
	}

	tileA := g.board[pair.A.Row][pair.A.Col]
	tileB := g.board[pair.B.Row][pair.B.Col]
	if tileA <= 0 || tileA != tileB {
		return fmt.Errorf("cells %v and %v do not hold a matching pair", pair.A, pair.B)
	}

	padded, err := engine.Pad(g.board)
	if err != nil {
		return err
	}
	a := engine.Cell{Row: pair.A.Row + 1, Col: pair.A.Col + 1}
	b := engine.Cell{Row: pair.B.Row + 1, Col: pair.B.Col + 1}
	if !engine.CanConnect(padded, a, b) {
		return fmt.Errorf("cells %v and %v are not connectable", pair.A, pair.B)
	}

	g.board[pair.A.Row][pair.A.Col] = engine.EmptyCell
	g.board[pair.B.Row][pair.B.Col] = engine.EmptyCell
	g.moves++
	return nil
}

// DipConfidence scripts a low confidence score for one cell on the next
// observation only.
func (g *Game) DipConfidence(cell engine.Cell, value float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dips[cell] = value
}

// FailNextExecute makes the next ExecutePair call fail once
func (g *Game) FailNextExecute() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failNext = true
}

// Remaining returns the number of tiles still on the board
func (g *Game) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	count := 0
	for _, row := range g.board {
		for _, v := range row {
			if v > 0 {
				count++
			}
		}
	}
	return count
}

// Moves returns the number of pairs removed so far
func (g *Game) Moves() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.moves
}

// Cleared reports whether every tile has been removed
func (g *Game) Cleared() bool {
	return g.Remaining() == 0
}
