package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/obj"
	"github.com/milk9111/platformer/persist"
	"github.com/milk9111/platformer/prefabs"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/colornames"
)

const (
	flashSeconds    = 0.5
	transitionTicks = 20
)

type GameOptions struct {
	LevelName  string
	Source     levels.Source
	SpritePath string
	Debug      bool
	Watch      bool
	Stats      *persist.Store
}

type Game struct {
	frames int
	debug  bool

	levelName string
	source    levels.Source

	worldSpec  prefabs.WorldSpec
	playerSpec prefabs.PlayerSpec

	level      *obj.Level
	collision  *obj.CollisionWorld
	player     *obj.Player
	camera     *obj.Camera
	input      *Input
	transition *obj.Transition

	sprite     *ebiten.Image
	tileImages map[int]*ebiten.Image

	stats   *persist.Store
	watcher *prefabs.Watcher

	flash      *gween.Tween
	flashAlpha float32

	paused    bool
	quit      bool
	pauseUI   *ebitenui.UI
	statsText *widget.Text
}

func NewGame(opts GameOptions) *Game {
	worldSpec, err := prefabs.LoadWorldSpec()
	if err != nil {
		log.Printf("game: %v, using default world settings", err)
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Printf("game: %v, using default player tuning", err)
	}
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		log.Printf("game: %v, using default dead zone", err)
	}

	levelName := opts.LevelName
	if levelName == "" {
		levelName = worldSpec.StartLevel
	}
	spritePath := opts.SpritePath
	if spritePath == "" {
		spritePath = playerSpec.Sprite
	}
	stats := opts.Stats
	if stats == nil {
		stats = persist.NewStore(nil)
	}

	g := &Game{
		debug:      opts.Debug,
		source:     opts.Source,
		worldSpec:  worldSpec,
		playerSpec: playerSpec,
		input:      NewInput(),
		transition: obj.NewTransition(transitionTicks),
		tileImages: make(map[int]*ebiten.Image),
		stats:      stats,
	}

	g.player = obj.NewPlayer(playerSpec.StartX, playerSpec.StartY, playerSpec.Width, playerSpec.Height, playerSpec.Tuning())
	g.player.OnDeath = g.onPlayerDeath

	g.camera = obj.NewCamera(common.BaseWidth, common.BaseHeight)
	g.camera.DeadZone = cameraSpec.Zone()

	g.loadLevel(levelName)
	g.transition.OnLoad = g.loadLevel

	g.sprite = assets.LoadPlayerSprite(spritePath, int(playerSpec.Width), int(playerSpec.Height), playerSpec.Color.Color)

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Printf("game: prefab watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.pauseUI = NewPauseUI(g)

	return g
}

func (g *Game) Update() error {
	g.frames++

	g.input.Update()
	if g.input.QuitPressed || g.quit {
		return ebiten.Termination
	}
	if g.input.DebugPressed {
		g.debug = !g.debug
	}
	if g.input.PausePressed {
		g.paused = !g.paused
		if g.paused {
			g.statsText.Label = g.statsLine()
		}
	}

	g.applyPrefabChanges()

	if g.paused {
		g.pauseUI.Update()
		if g.quit {
			return ebiten.Termination
		}
		return nil
	}

	if g.transition.Update() {
		return nil
	}
	if g.input.NextLevel {
		g.requestLevel(1)
	} else if g.input.PrevLevel {
		g.requestLevel(-1)
	}

	g.player.Update(g.input.Controls, g.collision)
	g.camera.Update(g.player.Rect)

	if g.flash != nil {
		alpha, done := g.flash.Update(1 / float32(common.TPS))
		g.flashAlpha = alpha
		if done {
			g.flash = nil
			g.flashAlpha = 0
		}
	}

	return nil
}

// loadLevel swaps in the named level and puts the player back at the start.
func (g *Game) loadLevel(name string) {
	lvl := obj.LoadLevelOrFallback(g.source, name, g.worldSpec.TileSize, g.worldSpec.FallbackColumns, g.worldSpec.FallbackHeight)
	g.level = lvl
	g.collision = obj.NewCollisionWorld(lvl)
	g.levelName = name
	clear(g.tileImages)

	g.player.Reset()
	g.camera.SetWorldBounds(lvl.PixelWidth(), lvl.PixelHeight())
	g.camera.SnapTo(g.player.Rect)
	g.stats.StartRun(name)
	log.Printf("game: loaded level %s (%dx%d)", name, lvl.Cols(), lvl.Rows())
}

// requestLevel fades to the numbered level delta steps from the current one,
// if it exists.
func (g *Game) requestLevel(delta int) {
	next, ok := levels.Adjacent(g.levelName, delta)
	if !ok || g.source == nil {
		return
	}
	if _, err := g.source.Load(next); err != nil {
		log.Printf("game: no level %s: %v", next, err)
		return
	}
	g.transition.Enter(next)
}

func (g *Game) onPlayerDeath() {
	g.stats.RecordDeath()
	g.flash = gween.New(0.6, 0, flashSeconds, ease.OutQuad)
	g.flashAlpha = 0.6
	g.camera.SnapTo(g.player.Rect)
}

// applyPrefabChanges reloads tuning files reported by the watcher.
func (g *Game) applyPrefabChanges() {
	for _, name := range g.watcher.Poll() {
		switch name {
		case prefabs.PlayerSpecFile:
			spec, err := prefabs.LoadPlayerSpec()
			if err != nil {
				log.Printf("game: reload %s: %v", name, err)
				continue
			}
			g.playerSpec = spec
			g.player.Tuning = spec.Tuning()
			log.Printf("game: reloaded %s", name)
		case prefabs.CameraSpecFile:
			spec, err := prefabs.LoadCameraSpec()
			if err != nil {
				log.Printf("game: reload %s: %v", name, err)
				continue
			}
			g.camera.DeadZone = spec.Zone()
			log.Printf("game: reloaded %s", name)
		case prefabs.WorldSpecFile:
			spec, err := prefabs.LoadWorldSpec()
			if err != nil {
				log.Printf("game: reload %s: %v", name, err)
				continue
			}
			if spec.TileSize != g.worldSpec.TileSize {
				log.Printf("game: tile_size change needs a restart, keeping %d", g.worldSpec.TileSize)
				spec.TileSize = g.worldSpec.TileSize
			}
			g.worldSpec = spec
			clear(g.tileImages)
			log.Printf("game: reloaded %s", name)
		}
	}
}

func (g *Game) statsLine() string {
	s := g.stats.Stats()
	return fmt.Sprintf("Level %s   Deaths %d   Runs %d", g.levelName, s.Deaths, s.Runs)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.worldSpec.Background.Color)

	g.drawTiles(screen)
	g.drawPlayer(screen)

	if g.flashAlpha > 0 {
		vector.FillRect(screen, 0, 0, common.BaseWidth, common.BaseHeight, color.NRGBA{R: 0xff, A: uint8(g.flashAlpha * 255)}, false)
	}

	if a := g.transition.Alpha(); a > 0 {
		vector.FillRect(screen, 0, 0, common.BaseWidth, common.BaseHeight, color.NRGBA{A: uint8(a * 255)}, false)
	}

	if g.debug {
		g.drawDebug(screen)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawTiles(screen *ebiten.Image) {
	c0, r0, c1, r1, ok := g.level.VisibleCells(g.camera.Rect)
	if !ok {
		return
	}
	ts := float64(g.level.TileSize())
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			code := g.level.TileAt(col, row)
			if code == 0 {
				continue
			}
			sx, sy := g.camera.WorldToScreen(float64(col)*ts, float64(row)*ts)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(sx, sy)
			screen.DrawImage(g.tileImage(code), op)
		}
	}
}

func (g *Game) tileImage(code int) *ebiten.Image {
	if img, ok := g.tileImages[code]; ok {
		return img
	}
	img := assets.Placeholder(g.level.TileSize(), g.level.TileSize(), g.worldSpec.TileColor(code))
	g.tileImages[code] = img
	return img
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	p := g.player
	sx, sy := g.camera.WorldToScreen(p.X, p.Y)
	b := g.sprite.Bounds()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(p.Width/float64(b.Dx()), p.Height/float64(b.Dy()))
	op.GeoM.Translate(sx, sy)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(g.sprite, op)
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	drawCollisionShapes(screen, g.collision, g.camera)

	dz := g.camera.DeadZone
	w, h := g.camera.Width, g.camera.Height
	vector.StrokeRect(screen,
		float32(w*dz.Left), float32(h*dz.Top),
		float32(w*(dz.Right-dz.Left)), float32(h*(dz.Bottom-dz.Top)),
		1, colornames.Yellow, false)

	p := g.player
	sx, sy := g.camera.WorldToScreen(p.X, p.Y)
	vector.StrokeRect(screen, float32(sx), float32(sy), float32(p.Width), float32(p.Height), 1, colornames.Lime, false)

	vx, vy := g.camera.ViewTopLeft()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f  TPS: %.1f  frame: %d\nplayer: (%.1f, %.1f) vy=%.2f %s\ncamera: (%.1f, %.1f)  level: %s %dx%d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.frames,
		p.X, p.Y, p.VelocityY, p.State(),
		vx, vy, g.levelName, g.level.Cols(), g.level.Rows(),
	))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

// Close stops the prefab watcher and writes the final stats. Save logs its
// own failures.
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("game: close prefab watcher: %v", err)
		}
	}
	_ = g.stats.Save()
}
