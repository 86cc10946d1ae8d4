package engine

// headings for path expansion: up, down, left, right
var headings = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// pathState is one node in the connectivity search: a padded-board
// position plus the heading used to enter it and the turns spent so far.
// The turn budget is part of state identity, so the same cell reached via
// a different heading is tracked independently.
type pathState struct {
	row     int
	col     int
	heading int
	turns   int
}

// CanConnect reports whether two padded-board cells hold the same tile
// class and are joined by an orthogonal path through empty cells that
// changes heading at most twice. Coordinates are padded coordinates, so
// interior cell (r,c) of the original board is (r+1,c+1) here. Paths may
// legally route through the empty border ring.
func CanConnect(padded PaddedBoard, a, b Cell) bool {
	if a == b {
		return false
	}

	rows := len(padded)
	if rows == 0 {
		return false
	}
	cols := len(padded[0])
	inBounds := func(r, c int) bool {
		return r >= 0 && r < rows && c >= 0 && c < cols
	}
	if !inBounds(a.Row, a.Col) || !inBounds(b.Row, b.Col) {
		return false
	}

	tileA := padded[a.Row][a.Col]
	tileB := padded[b.Row][b.Col]
	if tileA <= 0 || tileA != tileB {
		return false
	}

	// BFS over (position, heading, turns). The origin has no heading yet,
	// so the first step in any direction is free of a turn charge. From
	// each dequeued state we ray-expand along every heading, enqueueing
	// each empty cell on the ray; stepping onto the ray costs a turn
	// unless it continues the current heading.
	const noHeading = -1
	queue := []pathState{{row: a.Row, col: a.Col, heading: noHeading, turns: 0}}
	bestTurns := make(map[[3]int]int)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for h, d := range headings {
			turns := cur.turns
			if cur.heading != noHeading && cur.heading != h {
				turns++
			}
			if turns > MaxPathTurns {
				continue
			}

			r, c := cur.row+d[0], cur.col+d[1]
			for inBounds(r, c) {
				if r == b.Row && c == b.Col {
					return true
				}
				if padded[r][c] != EmptyCell {
					break
				}

				key := [3]int{r, c, h}
				if prev, seen := bestTurns[key]; !seen || turns < prev {
					bestTurns[key] = turns
					queue = append(queue, pathState{row: r, col: c, heading: h, turns: turns})
				}

				r += d[0]
				c += d[1]
			}
		}
	}

	return false
}

// FindPair returns the first connectable pair of same-class tiles in
// row-major scan order, or nil if no pair on the board can be matched.
// The fixed scan order makes the result deterministic for a given board,
// which the run state machine relies on for repeatable behavior.
func FindPair(board Board) *Pair {
	padded, err := Pad(board)
	if err != nil {
		return nil
	}

	rows := len(board)
	cols := len(board[0])

	for r1 := 0; r1 < rows; r1++ {
		for c1 := 0; c1 < cols; c1++ {
			tile := board[r1][c1]
			if tile <= 0 {
				continue
			}
			for r2 := r1; r2 < rows; r2++ {
				c2 := 0
				if r2 == r1 {
					c2 = c1 + 1
				}
				for ; c2 < cols; c2++ {
					if board[r2][c2] != tile {
						continue
					}
					a := Cell{Row: r1 + 1, Col: c1 + 1}
					b := Cell{Row: r2 + 1, Col: c2 + 1}
					if CanConnect(padded, a, b) {
						return &Pair{
							A: Cell{Row: r1, Col: c1},
							B: Cell{Row: r2, Col: c2},
						}
					}
				}
			}
		}
	}
	return nil
}

// FindAllPairs returns every currently connectable pair in row-major
// order. Used by analysis tooling; the live loop only ever needs FindPair.
func FindAllPairs(board Board) []Pair {
	padded, err := Pad(board)
	if err != nil {
		return nil
	}

	rows := len(board)
	cols := len(board[0])
	var pairs []Pair

	for r1 := 0; r1 < rows; r1++ {
		for c1 := 0; c1 < cols; c1++ {
			tile := board[r1][c1]
			if tile <= 0 {
				continue
			}
			for r2 := r1; r2 < rows; r2++ {
				c2 := 0
				if r2 == r1 {
					c2 = c1 + 1
				}
				for ; c2 < cols; c2++ {
					if board[r2][c2] != tile {
						continue
					}
					a := Cell{Row: r1 + 1, Col: c1 + 1}
					b := Cell{Row: r2 + 1, Col: c2 + 1}
					if CanConnect(padded, a, b) {
						pairs = append(pairs, Pair{
							A: Cell{Row: r1, Col: c1},
							B: Cell{Row: r2, Col: c2},
						})
					}
				}
			}
		}
	}
	return pairs
}

// CountTiles returns the number of occurrences of each positive tile class
func CountTiles(board Board) map[int]int {
	counts := make(map[int]int)
	for _, row := range board {
		for _, v := range row {
			if v > 0 {
				counts[v]++
			}
		}
	}
	return counts
}

// IsCleared reports whether the board holds no matchable tiles
func IsCleared(board Board) bool {
	for _, row := range board {
		for _, v := range row {
			if v > 0 {
				return false
			}
		}
	}
	return true
}
