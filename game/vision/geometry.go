package vision

import (
	"fmt"

	"github.com/tilebot/tilebot/game/engine"
)

// Rect is a screen-space rectangle in absolute coordinates
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Point is an absolute screen coordinate
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CellRect returns the absolute screen rectangle covering one logical cell
// of the configured board region. Cell edges are computed by rounding the
// proportional split of the region so that rows and columns tile it exactly
// even when the region size is not a multiple of the grid size.
func CellRect(cell engine.Cell, cfg *engine.BotConfig) (Rect, error) {
	if cell.Row < 0 || cell.Row >= cfg.Rows {
		return Rect{}, fmt.Errorf("row %d out of range [0, %d]", cell.Row, cfg.Rows-1)
	}
	if cell.Col < 0 || cell.Col >= cfg.Cols {
		return Rect{}, fmt.Errorf("col %d out of range [0, %d]", cell.Col, cfg.Cols-1)
	}

	x0 := roundDiv(cell.Col*cfg.BoardW, cfg.Cols)
	x1 := roundDiv((cell.Col+1)*cfg.BoardW, cfg.Cols)
	y0 := roundDiv(cell.Row*cfg.BoardH, cfg.Rows)
	y1 := roundDiv((cell.Row+1)*cfg.BoardH, cfg.Rows)

	return Rect{
		X: cfg.BoardX + x0,
		Y: cfg.BoardY + y0,
		W: x1 - x0,
		H: y1 - y0,
	}, nil
}

// CellCenter returns the absolute screen center of one logical cell
func CellCenter(cell engine.Cell, cfg *engine.BotConfig) (Point, error) {
	rect, err := CellRect(cell, cfg)
	if err != nil {
		return Point{}, err
	}
	return Point{X: rect.X + rect.W/2, Y: rect.Y + rect.H/2}, nil
}

// RegionFromCorners computes a board region from two calibration corner
// points, in either order.
func RegionFromCorners(a, b Point) (Rect, error) {
	x := a.X
	if b.X < x {
		x = b.X
	}
	y := a.Y
	if b.Y < y {
		y = b.Y
	}
	w := a.X - b.X
	if w < 0 {
		w = -w
	}
	h := a.Y - b.Y
	if h < 0 {
		h = -h
	}

	if w <= 0 || h <= 0 {
		return Rect{}, fmt.Errorf("invalid region: width and height must be > 0")
	}
	return Rect{X: x, Y: y, W: w, H: h}, nil
}

// roundDiv divides a by b rounding to nearest
func roundDiv(a, b int) int {
	return (a + b/2) / b
}
