package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/obj"
)

// Input polls the keyboard and the first standard gamepad once per tick.
type Input struct {
	Controls obj.Controls
	// PausePressed is true on the tick Esc or the gamepad start button is pressed.
	PausePressed bool
	// DebugPressed toggles the debug overlay (F3).
	DebugPressed bool
	// QuitPressed is true on the tick F12 is pressed.
	QuitPressed bool
	// NextLevel and PrevLevel step through numbered levels (right/left shift).
	NextLevel bool
	PrevLevel bool
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Update() {
	i.QuitPressed = inpututil.IsKeyJustPressed(ebiten.KeyF12)
	i.DebugPressed = inpututil.IsKeyJustPressed(ebiten.KeyF3)
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	i.NextLevel = inpututil.IsKeyJustPressed(ebiten.KeyShiftRight) || inpututil.IsKeyJustPressed(ebiten.KeyPageDown)
	i.PrevLevel = inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyPageUp)

	c := obj.Controls{
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight),
		Jump: ebiten.IsKeyPressed(ebiten.KeySpace) ||
			ebiten.IsKeyPressed(ebiten.KeyUp) ||
			ebiten.IsKeyPressed(ebiten.KeyW),
	}

	// Gamepad: left stick or d-pad to move, primary button to jump.
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		if ebiten.IsStandardGamepadLayoutAvailable(gid) {
			leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
			c.Left = c.Left || leftX < -0.3 ||
				ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft)
			c.Right = c.Right || leftX > 0.3 ||
				ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight)
			c.Jump = c.Jump || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
			i.PausePressed = i.PausePressed ||
				inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
		}
	}

	i.Controls = c
}
