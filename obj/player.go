package obj

import (
	"log"

	"github.com/milk9111/platformer/common"
)

// Solids is the static geometry the player collides against.
type Solids interface {
	// Candidates returns a row-major superset of the solids that may overlap area.
	Candidates(area common.Rect) []common.Rect
	PixelWidth() int
	PixelHeight() int
}

// Controls is the held-key snapshot for one tick.
type Controls struct {
	Left  bool
	Right bool
	Jump  bool
}

// MoveX returns -1, 0 or +1.
func (c Controls) MoveX() float64 {
	var x float64
	if c.Left {
		x--
	}
	if c.Right {
		x++
	}
	return x
}

// groundState is re-derived from collisions every tick.
type groundState int

const (
	Airborne groundState = iota
	Grounded
)

func (s groundState) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Airborne:
		return "airborne"
	default:
		return "unknown"
	}
}

// PlayerTuning holds the movement constants, in pixels and pixels per tick.
type PlayerTuning struct {
	Speed            float64
	JumpPower        float64
	Gravity          float64
	TerminalVelocity float64
}

func DefaultPlayerTuning() PlayerTuning {
	return PlayerTuning{
		Speed:            7,
		JumpPower:        -18,
		Gravity:          0.8,
		TerminalVelocity: 15,
	}
}

type Player struct {
	common.Rect
	StartX, StartY float64
	VelocityY      float64
	Tuning         PlayerTuning

	// OnDeath, when set, runs after the player has been reset for falling
	// out of the world.
	OnDeath func()

	state groundState
}

func NewPlayer(x, y, w, h float64, tuning PlayerTuning) *Player {
	return &Player{
		Rect:   common.Rect{X: x, Y: y, Width: w, Height: h},
		StartX: x,
		StartY: y,
		Tuning: tuning,
		state:  Airborne,
	}
}

func (p *Player) Grounded() bool { return p.state == Grounded }

// State names the current ground state for debug output.
func (p *Player) State() string { return p.state.String() }

// Reset returns the player to its start position at rest.
func (p *Player) Reset() {
	p.X = p.StartX
	p.Y = p.StartY
	p.VelocityY = 0
	p.state = Airborne
}

// Update advances the player one tick against world.
//
// Collision is resolved one axis at a time: every candidate tile is tested
// against the box moved by the full dx, then every tile against the box moved
// by the full dy. Tests within a pass use the unadjusted delta, so when several
// tiles match the last one in row-major order decides the snap. This is not
// swept collision; a body moving further than a tile per tick can pass
// through thin geometry.
//
// The vertical snap direction is fixed by the sign of dy for the whole pass,
// not read from the velocity an earlier hit already zeroed, so a rising body
// that hits several ceiling tiles always ends up below them.
func (p *Player) Update(in Controls, world Solids) {
	dx := in.MoveX() * p.Tuning.Speed

	if in.Jump && p.state == Grounded {
		p.VelocityY = p.Tuning.JumpPower
		p.state = Airborne
	}

	p.VelocityY += p.Tuning.Gravity
	if p.VelocityY > p.Tuning.TerminalVelocity {
		p.VelocityY = p.Tuning.TerminalVelocity
	}
	dy := p.VelocityY

	p.state = Airborne
	movedX := p.Rect.Offset(dx, 0)
	movedY := p.Rect.Offset(0, dy)
	tiles := world.Candidates(movedX.Union(movedY))

	for _, tile := range tiles {
		if tile.Intersects(movedX) {
			dx = 0
		}
	}

	// A vertical hit snaps the body flush to the tile edge. The snap is kept
	// as an absolute Y rather than a delta so the edges match exactly. The
	// direction comes from dy, not from the velocity zeroed by an earlier hit.
	rising := dy < 0
	snapped := false
	var snapY float64
	for _, tile := range tiles {
		if !tile.Intersects(movedY) {
			continue
		}
		snapped = true
		if rising {
			snapY = tile.Bottom()
		} else {
			snapY = tile.Top() - p.Height
			p.state = Grounded
		}
		p.VelocityY = 0
	}

	p.X += dx
	if snapped {
		p.Y = snapY
	} else {
		p.Y += dy
	}

	p.clampToWorld(world)
}

func (p *Player) clampToWorld(world Solids) {
	worldW := float64(world.PixelWidth())
	worldH := float64(world.PixelHeight())

	if p.X < 0 {
		p.X = 0
	}
	if p.Right() > worldW {
		p.X = worldW - p.Width
	}
	if p.Y < 0 {
		p.Y = 0
		p.VelocityY = 0
	}

	if p.Bottom() > worldH {
		p.Reset()
		log.Printf("player: fell out of the world, reset to (%.0f, %.0f)", p.StartX, p.StartY)
		if p.OnDeath != nil {
			p.OnDeath()
		}
	}
}
