package obj

import (
	"math/rand/v2"
	"testing"

	"github.com/milk9111/platformer/common"
)

func TestFollowDeadZone(t *testing.T) {
	view := common.Rect{X: 400, Y: 400, Width: 1000, Height: 500}
	dz := DefaultDeadZone()
	const worldW, worldH = 5000.0, 2000.0

	cases := []struct {
		name   string
		target common.Rect
		view   common.Rect
		wantX  float64
		wantY  float64
	}{
		{"inside_zone", common.Rect{X: 1000, Y: 600, Width: 40, Height: 40}, view, 400, 400},
		// zone is [700,1100] x [550,750] in world space
		{"past_right_edge", common.Rect{X: 1080, Y: 600, Width: 40, Height: 40}, view, 420, 400},
		{"past_left_edge", common.Rect{X: 650, Y: 600, Width: 40, Height: 40}, view, 350, 400},
		{"below_bottom_edge", common.Rect{X: 1000, Y: 730, Width: 40, Height: 40}, view, 400, 420},
		{"above_top_edge", common.Rect{X: 1000, Y: 500, Width: 40, Height: 40}, view, 400, 350},
		{"clamped_left", common.Rect{X: 10, Y: 600, Width: 40, Height: 40}, view, 0, 400},
		{"clamped_top", common.Rect{X: 1000, Y: 0, Width: 40, Height: 40}, view, 400, 0},
		{"clamped_right", common.Rect{X: 4990, Y: 600, Width: 10, Height: 40}, view, 4000, 400},
		{"clamped_bottom", common.Rect{X: 1000, Y: 1990, Width: 40, Height: 10}, view, 400, 1500},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := FollowDeadZone(c.target, c.view, worldW, worldH, dz)
			if got.X != c.wantX || got.Y != c.wantY {
				t.Fatalf("view = (%v,%v), want (%v,%v)", got.X, got.Y, c.wantX, c.wantY)
			}
			if got.Width != c.view.Width || got.Height != c.view.Height {
				t.Fatalf("view size changed to %vx%v", got.Width, got.Height)
			}
		})
	}
}

func TestFollowDeadZoneWorldSmallerThanView(t *testing.T) {
	view := common.Rect{Width: 1280, Height: 720}
	got := FollowDeadZone(common.Rect{X: 300, Y: 200, Width: 40, Height: 40}, view, 400, 240, DefaultDeadZone())
	if got.X != 0 || got.Y != 0 {
		t.Fatalf("view = (%v,%v), want pinned to origin", got.X, got.Y)
	}
}

func TestCameraStaysInsideWorld(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	cam := NewCamera(common.BaseWidth, common.BaseHeight)
	cam.SetWorldBounds(4000, 1600)

	for i := 0; i < 5000; i++ {
		target := common.Rect{
			X:      rng.Float64()*4400 - 200,
			Y:      rng.Float64()*2000 - 200,
			Width:  40,
			Height: 40,
		}
		cam.Update(target)
		if cam.X < 0 || cam.X > 4000-cam.Width || cam.Y < 0 || cam.Y > 1600-cam.Height {
			t.Fatalf("step %d: camera at (%v,%v) left the world", i, cam.X, cam.Y)
		}
	}
}

func TestCameraSnapTo(t *testing.T) {
	cam := NewCamera(1000, 500)
	cam.SetWorldBounds(3000, 1000)

	cam.SnapTo(common.Rect{X: 1480, Y: 480, Width: 40, Height: 40})
	if cam.X != 1000 || cam.Y != 250 {
		t.Fatalf("SnapTo centred at (%v,%v), want (1000,250)", cam.X, cam.Y)
	}
	if sx, sy := cam.WorldToScreen(1480, 480); sx != 480 || sy != 230 {
		t.Fatalf("WorldToScreen = (%v,%v)", sx, sy)
	}

	cam.SnapTo(common.Rect{X: 2990, Y: 990, Width: 10, Height: 10})
	if x, y := cam.ViewTopLeft(); x != 2000 || y != 500 {
		t.Fatalf("SnapTo near corner = (%v,%v), want (2000,500)", x, y)
	}
}
