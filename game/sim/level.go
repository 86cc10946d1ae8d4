package sim

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
)

// Level describes one simulated board layout loaded from JSON
type Level struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rows        int     `json:"rows"`
	Cols        int     `json:"cols"`
	Board       [][]int `json:"board"`
}

// ValidateLevel checks a level for structural correctness and playability
func ValidateLevel(level *Level) error {
	if level.Name == "" {
		return fmt.Errorf("level validation: name is required")
	}
	if level.Rows <= 0 || level.Cols <= 0 {
		return fmt.Errorf("level validation: rows and cols must be > 0")
	}
	if len(level.Board) != level.Rows {
		return fmt.Errorf("level validation: board must have %d rows, got %d", level.Rows, len(level.Board))
	}

	counts := make(map[int]int)
	for r, row := range level.Board {
		if len(row) != level.Cols {
			return fmt.Errorf("level validation: row %d must have %d cells, got %d", r+1, level.Cols, len(row))
		}
		for c, v := range row {
			if v < -1 {
				return fmt.Errorf("level validation: invalid value %d at row %d, col %d", v, r+1, c+1)
			}
			if v > 0 {
				counts[v]++
			}
		}
	}

	if len(counts) == 0 {
		return fmt.Errorf("level validation: board must contain at least one tile pair")
	}
	for class, count := range counts {
		if count%2 != 0 {
			return fmt.Errorf("level validation: tile class %d has odd count %d, board can never clear", class, count)
		}
	}

	return nil
}

// LoadLevel loads and validates a level from a JSON file
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file '%s': %w", path, err)
	}

	var level Level
	if err := json.Unmarshal(data, &level); err != nil {
		return nil, fmt.Errorf("failed to parse level file '%s': %w", path, err)
	}

	if err := ValidateLevel(&level); err != nil {
		return nil, fmt.Errorf("invalid level '%s': %w", path, err)
	}

	return &level, nil
}

// Generate builds a seeded random level: every tile class appears an even
// number of times, so the board is always clearable in principle. The same
// seed always produces the same layout.
func Generate(rows, cols, classes int, seed int64) (*Level, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("generate: rows and cols must be > 0")
	}
	if classes <= 0 {
		return nil, fmt.Errorf("generate: classes must be > 0")
	}

	cells := rows * cols
	pairCount := cells / 2
	if pairCount == 0 {
		return nil, fmt.Errorf("generate: board too small for a single pair")
	}

	// Lay out pairs class by class, then shuffle positions. An odd cell
	// count leaves one empty cell.
	values := make([]int, 0, cells)
	for i := 0; i < pairCount; i++ {
		class := (i % classes) + 1
		values = append(values, class, class)
	}
	for len(values) < cells {
		values = append(values, 0)
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	board := make([][]int, rows)
	for r := 0; r < rows; r++ {
		board[r] = values[r*cols : (r+1)*cols]
	}

	return &Level{
		Name:        fmt.Sprintf("generated_%d", seed),
		Description: fmt.Sprintf("Seeded random %dx%d level with %d classes", rows, cols, classes),
		Rows:        rows,
		Cols:        cols,
		Board:       board,
	}, nil
}
