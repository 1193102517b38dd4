package levels

import (
	"fmt"
	"io/fs"

	"github.com/lafriks/go-tiled"
)

// SolidLayerName is the Tiled layer read for collision. Maps without it use
// their first tile layer.
const SolidLayerName = "solid"

// LoadTMX parses a Tiled map from fsys. A cell's code is its local tile id
// plus one, so the first tile of the tileset maps to code 1.
func LoadTMX(fsys fs.FS, tmxPath string) ([][]int, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if len(levelMap.Layers) == 0 {
		return nil, fmt.Errorf("TMX %s has no tile layers", tmxPath)
	}

	layer := levelMap.Layers[0]
	for _, l := range levelMap.Layers {
		if l.Name == SolidLayerName {
			layer = l
			break
		}
	}
	if len(layer.Tiles) != levelMap.Width*levelMap.Height {
		return nil, fmt.Errorf("TMX %s layer %q has %d tiles, want %d", tmxPath, layer.Name, len(layer.Tiles), levelMap.Width*levelMap.Height)
	}

	grid := make([][]int, levelMap.Height)
	for y := 0; y < levelMap.Height; y++ {
		grid[y] = make([]int, levelMap.Width)
		for x := 0; x < levelMap.Width; x++ {
			tile := layer.Tiles[y*levelMap.Width+x]
			if tile == nil || tile.IsNil() {
				continue
			}
			grid[y][x] = int(tile.ID) + 1
		}
	}
	return grid, nil
}
