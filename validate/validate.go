// Command validate provides a small CLI that validates bot profile JSON
// files in the ../configs directory and level JSON files in the ../levels
// directory. It checks:
//   - JSON structure and required fields
//   - Profile constraints (grid bounds, thresholds, policy knobs)
//   - Level grid consistency and allowed cell values (-1, 0, positive classes)
//   - Clearability: every tile class appears an even number of times
//   - Openability: at least one pair is removable on the starting board
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tilebot/tilebot/game/engine"
)

// LevelFile mirrors the JSON schema for a level.
type LevelFile struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rows        int     `json:"rows"`
	Cols        int     `json:"cols"`
	Board       [][]int `json:"board"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateProfile loads and validates a single bot profile JSON file.
func validateProfile(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.BotConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateBotConfig(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// Add informational data
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", config.Rows, config.Cols))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Region: %dx%d at (%d,%d)", config.BoardW, config.BoardH, config.BoardX, config.BoardY))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Match threshold: %.2f", config.MatchThreshold))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Rescan cadence: every %d moves", config.FullRescanEveryNMoves))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Failure limit: %d", config.MaxConsecutiveFailures))

	return result
}

// validateLevel loads and validates a single level JSON file.
// It performs structural checks, cell value validation, class parity, and
// an openability check on the starting board.
func validateLevel(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var level LevelFile
	if err := json.Unmarshal(data, &level); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if level.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Level name is required")
	}

	// Validate grid
	if len(level.Board) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Board is empty")
		return result
	}

	if len(level.Board) != level.Rows {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Board has %d rows but declares %d", len(level.Board), level.Rows))
	}

	tiles := 0
	blocked := 0
	counts := make(map[int]int)
	for i, row := range level.Board {
		if len(row) != level.Cols {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Inconsistent grid width at row %d: expected %d, got %d", i+1, level.Cols, len(row)))
			continue
		}
		for j, v := range row {
			switch {
			case v < engine.BlockedCell:
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Invalid value %d at position [%d,%d]", v, i+1, j+1))
			case v == engine.BlockedCell:
				blocked++
			case v > 0:
				tiles++
				counts[v]++
			}
		}
	}

	if tiles == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Board must contain at least one tile pair")
	}

	// Clearability: odd class counts can never clear
	for class, count := range counts {
		if count%2 != 0 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Tile class %d has odd count %d, board can never clear", class, count))
		}
	}

	// Openability check on the starting board
	if result.Valid {
		pairs := engine.FindAllPairs(engine.Board(level.Board))
		if len(pairs) == 0 {
			result.Valid = false
			result.Errors = append(result.Errors, "Level starts out deadlocked: no pair connects within two turns")
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Openability: %d pairs removable on the starting board", len(pairs)))
		}
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", level.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", level.Rows, level.Cols))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Tiles: %d in %d classes", tiles, len(counts)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Blocked cells: %d", blocked))
	}

	return result
}

// report prints a concise validation report for one file and returns whether
// it was valid.
func report(result ValidationResult) bool {
	fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

	if result.Valid {
		fmt.Println("✅ VALID")
		for _, info := range result.Errors {
			fmt.Println("  " + info)
		}
		return true
	}

	fmt.Println("❌ INVALID")
	for _, err := range result.Errors {
		if !strings.HasPrefix(err, "✓") {
			fmt.Println("  ❌ " + err)
		}
	}
	return false
}

// main scans ../configs and ../levels for *.json files and validates each
// one, printing a concise report and exiting with non-zero status if any
// are invalid.
func main() {
	allValid := true

	profiles, err := filepath.Glob(filepath.Join("../configs", "*.json"))
	if err != nil {
		fmt.Printf("Error finding profile files: %v\n", err)
		os.Exit(1)
	}
	for _, file := range profiles {
		if !report(validateProfile(file)) {
			allValid = false
		}
	}

	levels, err := filepath.Glob(filepath.Join("../levels", "*.json"))
	if err != nil {
		fmt.Printf("Error finding level files: %v\n", err)
		os.Exit(1)
	}
	for _, file := range levels {
		if !report(validateLevel(file)) {
			allValid = false
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All profiles and levels are valid!")
	} else {
		fmt.Println("❌ Some files have errors")
		os.Exit(1)
	}
}
