package obj

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/platformer/common"
)

var (
	ErrEmptyGrid    = errors.New("level: grid has no cells")
	ErrRaggedGrid   = errors.New("level: grid rows differ in length")
	ErrNegativeTile = errors.New("level: negative tile code")
)

// Level is a static tile world. Every non-zero cell is a solid square of
// TileSize pixels; the cell value only selects the draw colour.
type Level struct {
	grid     [][]int
	tileSize int

	// solids holds one rect per non-zero cell in row-major order.
	solids []common.Rect

	pixelW int
	pixelH int
}

// NewLevel validates grid and derives its collision rectangles. The grid is
// copied so later edits by the caller do not leak into the world.
func NewLevel(grid [][]int, tileSize int) (*Level, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("level: invalid tile size %d", tileSize)
	}
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, ErrEmptyGrid
	}

	cols := len(grid[0])
	l := &Level{
		grid:     make([][]int, len(grid)),
		tileSize: tileSize,
		pixelW:   cols * tileSize,
		pixelH:   len(grid) * tileSize,
	}
	for y, row := range grid {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedGrid, y, len(row), cols)
		}
		l.grid[y] = append([]int(nil), row...)
		for x, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("%w: %d at (%d,%d)", ErrNegativeTile, v, x, y)
			}
			if v == 0 {
				continue
			}
			l.solids = append(l.solids, common.Rect{
				X:      float64(x * tileSize),
				Y:      float64(y * tileSize),
				Width:  float64(tileSize),
				Height: float64(tileSize),
			})
		}
	}
	return l, nil
}

// FallbackLevel builds a flat floor cols tiles wide along the bottom row. A
// height that is not a tile multiple is rounded up to one so the floor row is
// both drawn and solid. It keeps the game playable when no level can be loaded.
func FallbackLevel(tileSize, cols, height int) *Level {
	if tileSize <= 0 {
		tileSize = common.TileSize
	}
	if cols <= 0 {
		cols = 1
	}
	rows := max((height+tileSize-1)/tileSize, 1)

	grid := make([][]int, rows)
	for y := range grid {
		grid[y] = make([]int, cols)
	}
	for x := range grid[rows-1] {
		grid[rows-1][x] = 1
	}

	lvl, err := NewLevel(grid, tileSize)
	if err != nil {
		// unreachable: the grid is rectangular and non-empty
		panic(err)
	}
	return lvl
}

// GridSource yields a parsed tile grid for a level name.
type GridSource interface {
	Load(name string) ([][]int, error)
}

// LoadLevelOrFallback never fails: any load or validation error is logged and
// the flat fallback floor is returned instead.
func LoadLevelOrFallback(src GridSource, name string, tileSize, fallbackCols, fallbackHeight int) *Level {
	if src == nil {
		log.Printf("level: no source for %q, using fallback floor", name)
		return FallbackLevel(tileSize, fallbackCols, fallbackHeight)
	}
	grid, err := src.Load(name)
	if err != nil {
		log.Printf("level: could not load %q: %v; using fallback floor", name, err)
		return FallbackLevel(tileSize, fallbackCols, fallbackHeight)
	}
	lvl, err := NewLevel(grid, tileSize)
	if err != nil {
		log.Printf("level: %q is invalid: %v; using fallback floor", name, err)
		return FallbackLevel(tileSize, fallbackCols, fallbackHeight)
	}
	return lvl
}

// SolidRects returns the collision rectangles in row-major order. Callers
// must not modify the slice.
func (l *Level) SolidRects() []common.Rect {
	return l.solids
}

// Candidates returns every solid; a Level does no spatial filtering.
func (l *Level) Candidates(common.Rect) []common.Rect {
	return l.solids
}

func (l *Level) PixelWidth() int  { return l.pixelW }
func (l *Level) PixelHeight() int { return l.pixelH }
func (l *Level) TileSize() int    { return l.tileSize }
func (l *Level) Rows() int        { return len(l.grid) }

func (l *Level) Cols() int {
	if len(l.grid) == 0 {
		return 0
	}
	return len(l.grid[0])
}

// TileAt returns the tile code at the given cell, or 0 outside the grid.
func (l *Level) TileAt(col, row int) int {
	if row < 0 || row >= len(l.grid) || col < 0 || col >= len(l.grid[row]) {
		return 0
	}
	return l.grid[row][col]
}

// VisibleCells returns the inclusive cell range overlapping view, clamped to
// the grid. ok is false when nothing is visible.
func (l *Level) VisibleCells(view common.Rect) (c0, r0, c1, r1 int, ok bool) {
	ts := float64(l.tileSize)
	c0 = max(int(view.X/ts), 0)
	r0 = max(int(view.Y/ts), 0)
	c1 = min(int(view.Right()/ts), l.Cols()-1)
	r1 = min(int(view.Bottom()/ts), l.Rows()-1)
	return c0, r0, c1, r1, c0 <= c1 && r0 <= r1
}
