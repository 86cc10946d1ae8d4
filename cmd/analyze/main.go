// Command analyze prints quick, human-readable heuristics about level files
// in the project's levels directory. It summarizes dimensions, tile class
// counts, immediately removable pairs, and highlights layouts that can never
// clear (odd class counts) or start out deadlocked.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tilebot/tilebot/game/engine"
)

// AnalysisLevel is a light struct for reading level files used by analysis.
type AnalysisLevel struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rows        int     `json:"rows"`
	Cols        int     `json:"cols"`
	Board       [][]int `json:"board"`
}

func main() {
	paths := os.Args[1:]
	if len(paths) == 0 {
		entries, err := os.ReadDir("levels")
		if err != nil {
			fmt.Printf("Error reading levels directory: %v\n", err)
			os.Exit(1)
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
				continue
			}
			paths = append(paths, filepath.Join("levels", entry.Name()))
		}
	}

	for _, path := range paths {
		fmt.Printf("\n=== Analyzing %s ===\n", path)
		analyzeLevel(path)
	}
}

func analyzeLevel(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var level AnalysisLevel
	if err := json.Unmarshal(data, &level); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", level.Name)
	fmt.Printf("Grid Size: %d x %d\n", level.Rows, level.Cols)

	if len(level.Board) != level.Rows {
		fmt.Printf("⚠️  WARNING: board has %d rows but declares %d\n", len(level.Board), level.Rows)
		return
	}
	for r, row := range level.Board {
		if len(row) != level.Cols {
			fmt.Printf("⚠️  WARNING: row %d has %d cells but level declares %d\n", r, len(row), level.Cols)
			return
		}
	}

	board := engine.Board(level.Board)
	counts := engine.CountTiles(board)

	tiles := 0
	blocked := 0
	for _, row := range board {
		for _, v := range row {
			if v > 0 {
				tiles++
			} else if v == engine.BlockedCell {
				blocked++
			}
		}
	}

	fmt.Printf("Tiles: %d, Blocked cells: %d, Classes: %d\n", tiles, blocked, len(counts))

	// Class breakdown in stable order
	classes := make([]int, 0, len(counts))
	for class := range counts {
		classes = append(classes, class)
	}
	sort.Ints(classes)

	oddClasses := []int{}
	for _, class := range classes {
		if counts[class]%2 != 0 {
			oddClasses = append(oddClasses, class)
		}
	}

	if len(oddClasses) > 0 {
		fmt.Printf("⚠️  CRITICAL: %d classes have odd counts, board can never clear!\n", len(oddClasses))
		for _, class := range oddClasses {
			fmt.Printf("   Class %d: %d tiles\n", class, counts[class])
		}
	} else {
		fmt.Printf("✅ All tile classes have even counts\n")
	}

	// How much of the board is immediately removable
	pairs := engine.FindAllPairs(board)
	fmt.Printf("Immediately removable pairs: %d\n", len(pairs))

	if tiles > 0 && len(pairs) == 0 {
		fmt.Printf("⚠️  WARNING: level starts out deadlocked, no pair connects within two turns\n")
	} else if len(pairs) > 0 {
		shown := len(pairs)
		if shown > 5 {
			shown = 5
		}
		for i := 0; i < shown; i++ {
			p := pairs[i]
			fmt.Printf("   Pair: (%d,%d)-(%d,%d) class %d\n",
				p.A.Row, p.A.Col, p.B.Row, p.B.Col, board[p.A.Row][p.A.Col])
		}
		if len(pairs) > shown {
			fmt.Printf("   ... and %d more\n", len(pairs)-shown)
		}
	}
}
