package levels

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"
)

//go:embed *.json *.tmx
var LevelsFS embed.FS

var ErrUnknownFormat = errors.New("levels: unknown level format")

// Source yields a parsed, row-major tile grid for a level name.
type Source interface {
	Load(name string) ([][]int, error)
}

// FSSource loads level files from a file system. A name may be a level
// number ("2"), a base name ("level_2") or a file name ("level_2.tmx").
type FSSource struct {
	FS fs.FS
}

// Embedded serves the levels bundled with the binary.
func Embedded() FSSource {
	return FSSource{FS: LevelsFS}
}

// Dir serves levels from a directory on disk.
func Dir(dir string) FSSource {
	return FSSource{FS: os.DirFS(dir)}
}

func (s FSSource) Load(name string) ([][]int, error) {
	for _, file := range fileNames(name) {
		grid, err := s.loadFile(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("levels: %s: %w", file, err)
		}
		return grid, nil
	}
	return nil, fmt.Errorf("levels: %s: %w", name, fs.ErrNotExist)
}

func (s FSSource) loadFile(file string) ([][]int, error) {
	switch strings.ToLower(path.Ext(file)) {
	case ".json":
		b, err := fs.ReadFile(s.FS, file)
		if err != nil {
			return nil, err
		}
		return ParseJSON(b)
	case ".tmx":
		if _, err := fs.Stat(s.FS, file); err != nil {
			return nil, err
		}
		return LoadTMX(s.FS, file)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, file)
	}
}

// fileNames lists the files tried for a level name, in order.
func fileNames(name string) []string {
	base := strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(name, "\\", "/")), "/")
	base = strings.TrimPrefix(base, "levels/")
	if _, err := strconv.Atoi(base); err == nil {
		base = "level_" + base
	}
	if path.Ext(base) != "" {
		return []string{base}
	}
	return []string{base + ".json", base + ".tmx"}
}

// Chain tries each source in order and returns the first grid found. Errors
// other than a missing level stop the search.
type Chain []Source

func (c Chain) Load(name string) ([][]int, error) {
	for _, src := range c {
		grid, err := src.Load(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return grid, err
	}
	return nil, fmt.Errorf("levels: %s: %w", name, fs.ErrNotExist)
}

// layered is the editor's multi-layer format: flat row-major layers plus
// per-layer physics flags.
type layered struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
}

type LayerMeta struct {
	HasPhysics bool `json:"has_physics"`
}

// ParseJSON decodes either a plain array of rows or the layered object
// format. For layered levels a cell takes the first non-zero value found on a
// physics layer; when no layer is flagged every layer counts.
func ParseJSON(b []byte) ([][]int, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrUnknownFormat)
	}

	switch trimmed[0] {
	case '[':
		var grid [][]int
		if err := json.Unmarshal(trimmed, &grid); err != nil {
			return nil, fmt.Errorf("unmarshal grid: %w", err)
		}
		return grid, nil
	case '{':
		var lvl layered
		if err := json.Unmarshal(trimmed, &lvl); err != nil {
			return nil, fmt.Errorf("unmarshal level: %w", err)
		}
		return lvl.grid()
	default:
		return nil, fmt.Errorf("%w: unexpected %q", ErrUnknownFormat, trimmed[0])
	}
}

func (l layered) grid() ([][]int, error) {
	if l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("invalid level dimensions: %dx%d", l.Width, l.Height)
	}

	anyPhysics := false
	for _, m := range l.LayerMeta {
		anyPhysics = anyPhysics || m.HasPhysics
	}

	grid := make([][]int, l.Height)
	for y := range grid {
		grid[y] = make([]int, l.Width)
	}
	for i, layer := range l.Layers {
		if anyPhysics && (i >= len(l.LayerMeta) || !l.LayerMeta[i].HasPhysics) {
			continue
		}
		if len(layer) != l.Width*l.Height {
			return nil, fmt.Errorf("layer %d has %d cells, want %d", i, len(layer), l.Width*l.Height)
		}
		for idx, v := range layer {
			y, x := idx/l.Width, idx%l.Width
			if grid[y][x] == 0 {
				grid[y][x] = v
			}
		}
	}
	return grid, nil
}

// Adjacent returns the numbered level delta steps away from name, so "2" and
// "level_2.json" both step to "3" with delta 1. Level numbers start at 1.
func Adjacent(name string, delta int) (string, bool) {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.TrimPrefix(base, "level_")
	n, err := strconv.Atoi(base)
	if err != nil || n+delta < 1 {
		return "", false
	}
	return strconv.Itoa(n + delta), true
}
