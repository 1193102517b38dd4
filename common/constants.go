package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TileSize is the edge length of one grid cell in pixels.
	TileSize = 40

	TPS = 60
)
