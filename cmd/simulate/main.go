// Command simulate runs the player physics over a level without opening a
// window and prints where the player ends up.
//
//	go run ./cmd/simulate -level 2 -moves "right:90,right+jump:1,right:40"
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/obj"
	"github.com/milk9111/platformer/prefabs"
)

// step holds one set of controls for a number of ticks.
type step struct {
	controls obj.Controls
	ticks    int
}

// parseMoves reads a comma separated list of "keys:ticks" entries, where keys
// is "idle" or any of left, right and jump joined with '+'.
func parseMoves(s string) ([]step, error) {
	var steps []step
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		keys, count, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("move %q: want keys:ticks", part)
		}
		n, err := strconv.Atoi(count)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("move %q: invalid tick count", part)
		}

		var c obj.Controls
		for _, key := range strings.Split(keys, "+") {
			switch strings.ToLower(strings.TrimSpace(key)) {
			case "left", "l":
				c.Left = true
			case "right", "r":
				c.Right = true
			case "jump", "j":
				c.Jump = true
			case "idle", "":
			default:
				return nil, fmt.Errorf("move %q: unknown key %q", part, key)
			}
		}
		steps = append(steps, step{controls: c, ticks: n})
	}
	return steps, nil
}

type result struct {
	Ticks  int
	Deaths int
	Player obj.Player
	Camera obj.Camera
}

// simulate runs steps against world, calling trace every `every` ticks when
// every is positive.
func simulate(world *obj.CollisionWorld, player *obj.Player, camera *obj.Camera, steps []step, every int, trace func(tick int)) result {
	res := result{}
	player.OnDeath = func() { res.Deaths++ }
	for _, s := range steps {
		for range s.ticks {
			player.Update(s.controls, world)
			camera.Update(player.Rect)
			res.Ticks++
			if every > 0 && res.Ticks%every == 0 && trace != nil {
				trace(res.Ticks)
			}
		}
	}
	res.Player = *player
	res.Camera = *camera
	return res
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	levelName := fs.String("level", "", "level to load (default from prefabs/world.yaml)")
	levelsDir := fs.String("levels", "", "directory searched for levels before the embedded ones")
	moves := fs.String("moves", "idle:60", "comma separated keys:ticks steps, keys from left, right, jump, idle")
	every := fs.Int("trace", 0, "print the player every N ticks")
	if err := fs.Parse(args); err != nil {
		return err
	}

	steps, err := parseMoves(*moves)
	if err != nil {
		return err
	}

	worldSpec, err := prefabs.LoadWorldSpec()
	if err != nil {
		log.Printf("simulate: %v, using defaults", err)
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Printf("simulate: %v, using defaults", err)
	}
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		log.Printf("simulate: %v, using defaults", err)
	}

	var src levels.Source = levels.Embedded()
	if *levelsDir != "" {
		src = levels.Chain{levels.Dir(*levelsDir), levels.Embedded()}
	}
	name := *levelName
	if name == "" {
		name = worldSpec.StartLevel
	}
	lvl := obj.LoadLevelOrFallback(src, name, worldSpec.TileSize, worldSpec.FallbackColumns, worldSpec.FallbackHeight)

	player := obj.NewPlayer(playerSpec.StartX, playerSpec.StartY, playerSpec.Width, playerSpec.Height, playerSpec.Tuning())
	camera := obj.NewCamera(common.BaseWidth, common.BaseHeight)
	camera.DeadZone = cameraSpec.Zone()
	camera.SetWorldBounds(lvl.PixelWidth(), lvl.PixelHeight())
	camera.SnapTo(player.Rect)

	fmt.Fprintf(out, "level %s: %dx%d tiles, %dx%d px\n", name, lvl.Cols(), lvl.Rows(), lvl.PixelWidth(), lvl.PixelHeight())
	res := simulate(obj.NewCollisionWorld(lvl), player, camera, steps, *every, func(tick int) {
		fmt.Fprintf(out, "tick %5d: player (%.2f, %.2f) vy=%.2f %s\n", tick, player.X, player.Y, player.VelocityY, player.State())
	})
	fmt.Fprintf(out, "after %d ticks: player (%.2f, %.2f) vy=%.2f %s, camera (%.2f, %.2f), deaths %d\n",
		res.Ticks, res.Player.X, res.Player.Y, res.Player.VelocityY, res.Player.State(),
		res.Camera.X, res.Camera.Y, res.Deaths)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}
