package engine

import (
	"errors"
	"fmt"
)

// ErrBadShape marks board or confidence-map shape failures. Shape errors
// are fatal to the current cycle and are never retried inside the engine.
var ErrBadShape = errors.New("bad board shape")

// ShapeError reports a board or confidence map whose dimensions do not
// match what the configuration expects.
type ShapeError struct {
	What     string
	WantRows int
	WantCols int
	GotRows  int
	GotCols  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s shape mismatch: expected %dx%d, got %dx%d",
		e.What, e.WantRows, e.WantCols, e.GotRows, e.GotCols)
}

func (e *ShapeError) Unwrap() error { return ErrBadShape }

// Pad returns a copy of the board surrounded by a one-cell ring of empty
// cells. The interior satisfies padded[r+1][c+1] == board[r][c].
func Pad(board Board) (PaddedBoard, error) {
	if len(board) == 0 || len(board[0]) == 0 {
		return nil, fmt.Errorf("%w: board is empty", ErrBadShape)
	}

	rows := len(board)
	cols := len(board[0])
	for _, row := range board {
		if len(row) != cols {
			return nil, &ShapeError{What: "board", WantRows: rows, WantCols: cols, GotRows: len(board), GotCols: len(row)}
		}
	}

	padded := make(PaddedBoard, rows+2)
	for r := range padded {
		padded[r] = make([]int, cols+2)
	}
	for r := 0; r < rows; r++ {
		copy(padded[r+1][1:cols+1], board[r])
	}
	return padded, nil
}

// ValidateBoard checks that the board is rectangular with the expected
// dimensions and that every cell value is -1, 0, or a positive tile class.
func ValidateBoard(board Board, rows, cols int) error {
	if len(board) != rows {
		return &ShapeError{What: "board", WantRows: rows, WantCols: cols, GotRows: len(board), GotCols: 0}
	}
	for r, row := range board {
		if len(row) != cols {
			return &ShapeError{What: "board", WantRows: rows, WantCols: cols, GotRows: len(board), GotCols: len(row)}
		}
		for c, v := range row {
			if v < BlockedCell {
				return fmt.Errorf("board cell (%d,%d) has invalid value %d", r, c, v)
			}
		}
	}
	return nil
}

// ValidateConfidence checks that the confidence map matches the board
// dimensions and that every score lies in [0,1].
func ValidateConfidence(conf ConfidenceMap, rows, cols int) error {
	if len(conf) != rows {
		return &ShapeError{What: "confidence map", WantRows: rows, WantCols: cols, GotRows: len(conf), GotCols: 0}
	}
	for r, row := range conf {
		if len(row) != cols {
			return &ShapeError{What: "confidence map", WantRows: rows, WantCols: cols, GotRows: len(conf), GotCols: len(row)}
		}
		for c, v := range row {
			if v < 0 || v > 1 {
				return fmt.Errorf("confidence at (%d,%d) out of range [0,1]: %v", r, c, v)
			}
		}
	}
	return nil
}

// FullConfidence returns a confidence map matching the board's shape with
// every cell at 1.0, for callers that vouch for their observation.
func FullConfidence(board Board) ConfidenceMap {
	conf := make(ConfidenceMap, len(board))
	for r, row := range board {
		conf[r] = make([]float64, len(row))
		for c := range conf[r] {
			conf[r][c] = 1.0
		}
	}
	return conf
}

// CloneBoard returns a deep copy of the board
func CloneBoard(board Board) Board {
	out := make(Board, len(board))
	for r, row := range board {
		out[r] = make([]int, len(row))
		copy(out[r], row)
	}
	return out
}
