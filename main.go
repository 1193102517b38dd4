package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/persist"
	"github.com/milk9111/platformer/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level to load: a number, base name or file name (default from prefabs/world.yaml)")
	levelsDir := flag.String("levels", "", "directory searched for levels before the embedded ones")
	spritePath := flag.String("sprite", "", "player sprite PNG (default from prefabs/player.yaml)")
	prefabsDir := flag.String("prefabs", prefabs.Dir, "directory searched for tuning files before the embedded ones")
	watch := flag.Bool("watch", false, "reload tuning files when they change on disk")
	flag.Parse()

	prefabs.Dir = *prefabsDir

	var src levels.Source = levels.Embedded()
	if *levelsDir != "" {
		src = levels.Chain{levels.Dir(*levelsDir), levels.Embedded()}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetTPS(common.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("platformer")

	game := NewGame(GameOptions{
		LevelName:  *levelName,
		Source:     src,
		SpritePath: *spritePath,
		Debug:      *debug,
		Watch:      *watch,
		Stats:      persist.Open("platformer"),
	})

	err := ebiten.RunGame(game)
	game.Close()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
