package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// LoadImage decodes an image file from disk.
func LoadImage(path string) (*ebiten.Image, error) {
	b, err := os.ReadFile(cleanAssetPath(path))
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadPlayerSprite loads the player sprite at path. When the file is missing
// or cannot be decoded it logs and returns a w x h block of the fallback
// colour instead, so the game always has something to draw.
func LoadPlayerSprite(path string, w, h int, fallback color.Color) *ebiten.Image {
	if path != "" {
		img, err := LoadImage(path)
		if err == nil {
			return img
		}
		log.Printf("assets: could not load player sprite %s: %v, using placeholder", path, err)
	}
	return Placeholder(w, h, fallback)
}

// Placeholder returns a solid w x h image.
func Placeholder(w, h int, c color.Color) *ebiten.Image {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	img := ebiten.NewImage(w, h)
	img.Fill(c)
	return img
}

// cleanAssetPath accepts either a path on disk or an assets-relative one.
func cleanAssetPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	s := filepath.ToSlash(path)
	if !strings.HasPrefix(s, "assets/") {
		return filepath.Join("assets", path)
	}
	return path
}
