package obj

import (
	"errors"
	"testing"

	"github.com/milk9111/platformer/common"
)

func TestNewLevelDerivesSolids(t *testing.T) {
	grid := [][]int{
		{0, 0, 3},
		{1, 0, 0},
		{2, 2, 0},
	}
	lvl, err := NewLevel(grid, 40)
	if err != nil {
		t.Fatalf("NewLevel: %v", err)
	}
	if lvl.PixelWidth() != 120 || lvl.PixelHeight() != 120 {
		t.Fatalf("pixel size = %dx%d, want 120x120", lvl.PixelWidth(), lvl.PixelHeight())
	}
	want := []common.Rect{
		{X: 80, Y: 0, Width: 40, Height: 40},
		{X: 0, Y: 40, Width: 40, Height: 40},
		{X: 0, Y: 80, Width: 40, Height: 40},
		{X: 40, Y: 80, Width: 40, Height: 40},
	}
	got := lvl.SolidRects()
	if len(got) != len(want) {
		t.Fatalf("got %d solids, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("solid %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	// the level keeps its own copy of the grid
	grid[0][0] = 5
	if lvl.TileAt(0, 0) != 0 {
		t.Fatalf("level grid aliased caller slice")
	}
	if lvl.TileAt(2, 0) != 3 || lvl.TileAt(-1, 0) != 0 || lvl.TileAt(0, 9) != 0 {
		t.Fatalf("TileAt returned unexpected values")
	}
}

func TestNewLevelRejectsBadGrids(t *testing.T) {
	cases := []struct {
		name string
		grid [][]int
		want error
	}{
		{"nil", nil, ErrEmptyGrid},
		{"empty_row", [][]int{{}}, ErrEmptyGrid},
		{"ragged", [][]int{{0, 0}, {0}}, ErrRaggedGrid},
		{"negative", [][]int{{0, -1}}, ErrNegativeTile},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := NewLevel(c.grid, 40); !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
		})
	}

	if _, err := NewLevel([][]int{{1}}, 0); err == nil {
		t.Fatalf("expected error for zero tile size")
	}
}

func TestFallbackLevel(t *testing.T) {
	lvl := FallbackLevel(40, 50, 720)
	if lvl.PixelWidth() != 2000 || lvl.PixelHeight() != 720 {
		t.Fatalf("pixel size = %dx%d, want 2000x720", lvl.PixelWidth(), lvl.PixelHeight())
	}
	solids := lvl.SolidRects()
	if len(solids) != 50 {
		t.Fatalf("got %d floor tiles, want 50", len(solids))
	}
	for i, r := range solids {
		if r.X != float64(i*40) || r.Y != 680 {
			t.Fatalf("floor tile %d at (%v,%v)", i, r.X, r.Y)
		}
	}
	if lvl.TileAt(0, 17) != 1 {
		t.Fatalf("floor row not drawn into grid")
	}
}

func TestFallbackLevelRoundsHeightToTiles(t *testing.T) {
	cases := []struct {
		name      string
		height    int
		wantH     int
		wantFloor float64
	}{
		{"exact", 120, 120, 80},
		{"rounded_up", 700, 720, 680},
		{"below_one_tile", 10, 40, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lvl := FallbackLevel(40, 3, c.height)
			if lvl.PixelHeight() != c.wantH {
				t.Fatalf("pixel height = %d, want %d", lvl.PixelHeight(), c.wantH)
			}
			last := lvl.Rows() - 1
			for i, r := range lvl.SolidRects() {
				if r.Y != c.wantFloor {
					t.Fatalf("floor tile %d at y=%v, want %v", i, r.Y, c.wantFloor)
				}
				if lvl.TileAt(i, last) != 1 {
					t.Fatalf("solid floor tile %d is not drawn", i)
				}
			}
			if len(lvl.SolidRects()) != 3 {
				t.Fatalf("got %d floor tiles, want 3", len(lvl.SolidRects()))
			}
		})
	}
}

type stubSource struct {
	grid [][]int
	err  error
}

func (s stubSource) Load(string) ([][]int, error) { return s.grid, s.err }

func TestLoadLevelOrFallback(t *testing.T) {
	cases := []struct {
		name      string
		src       GridSource
		wantWidth int
	}{
		{"ok", stubSource{grid: [][]int{{0, 0, 0}, {1, 1, 1}}}, 120},
		{"source_error", stubSource{err: errors.New("missing")}, 2000},
		{"invalid_grid", stubSource{grid: [][]int{{0, 0}, {1}}}, 2000},
		{"nil_source", nil, 2000},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lvl := LoadLevelOrFallback(c.src, "level_1", 40, 50, 720)
			if lvl == nil {
				t.Fatalf("LoadLevelOrFallback returned nil")
			}
			if lvl.PixelWidth() != c.wantWidth {
				t.Fatalf("width = %d, want %d", lvl.PixelWidth(), c.wantWidth)
			}
			if len(lvl.SolidRects()) == 0 {
				t.Fatalf("world has no floor")
			}
		})
	}
}

func TestVisibleCells(t *testing.T) {
	lvl, err := NewLevel(make2DGrid(10, 20), 40)
	if err != nil {
		t.Fatalf("NewLevel: %v", err)
	}
	c0, r0, c1, r1, ok := lvl.VisibleCells(common.Rect{X: 50, Y: -10, Width: 100, Height: 100})
	if !ok || c0 != 1 || r0 != 0 || c1 != 3 || r1 != 2 {
		t.Fatalf("VisibleCells = %d,%d..%d,%d ok=%v", c0, r0, c1, r1, ok)
	}
	if _, _, _, _, ok := lvl.VisibleCells(common.Rect{X: 5000, Y: 0, Width: 100, Height: 100}); ok {
		t.Fatalf("view outside the world should see nothing")
	}
}

func make2DGrid(rows, cols int) [][]int {
	grid := make([][]int, rows)
	for y := range grid {
		grid[y] = make([]int, cols)
	}
	return grid
}
