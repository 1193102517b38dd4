package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/obj"
	"gopkg.in/yaml.v3"
)

const (
	PlayerSpecFile = "player.yaml"
	CameraSpecFile = "camera.yaml"
	WorldSpecFile  = "world.yaml"
)

// LoadSpec decodes filename over a copy of defaults, so keys missing from the
// file keep their default values.
func LoadSpec[T any](filename string, defaults T) (T, error) {
	data, err := Load(filename)
	if err != nil {
		return defaults, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec := defaults
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return defaults, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	Name             string    `yaml:"name"`
	MoveSpeed        float64   `yaml:"move_speed"`
	JumpPower        float64   `yaml:"jump_power"`
	Gravity          float64   `yaml:"gravity"`
	TerminalVelocity float64   `yaml:"terminal_velocity"`
	Width            float64   `yaml:"width"`
	Height           float64   `yaml:"height"`
	StartX           float64   `yaml:"start_x"`
	StartY           float64   `yaml:"start_y"`
	Sprite           string    `yaml:"sprite"`
	Color            YAMLColor `yaml:"color"`
}

func DefaultPlayerSpec() PlayerSpec {
	t := obj.DefaultPlayerTuning()
	return PlayerSpec{
		Name:             "player",
		MoveSpeed:        t.Speed,
		JumpPower:        t.JumpPower,
		Gravity:          t.Gravity,
		TerminalVelocity: t.TerminalVelocity,
		Width:            common.TileSize,
		Height:           common.TileSize,
		StartX:           100,
		StartY:           common.BaseHeight - 200,
		Sprite:           "character_sprite.png",
		Color:            YAMLColor{color.NRGBA{R: 0xff, G: 0x84, B: 0x7c, A: 0xff}},
	}
}

func (s PlayerSpec) Validate() error {
	var errs []error
	if s.MoveSpeed < 0 {
		errs = append(errs, fmt.Errorf("move_speed must not be negative, got %v", s.MoveSpeed))
	}
	if s.TerminalVelocity <= 0 {
		errs = append(errs, fmt.Errorf("terminal_velocity must be positive, got %v", s.TerminalVelocity))
	}
	if s.Width <= 0 || s.Height <= 0 {
		errs = append(errs, fmt.Errorf("player size must be positive, got %vx%v", s.Width, s.Height))
	}
	return errors.Join(errs...)
}

// Tuning returns the movement constants for obj.Player.
func (s PlayerSpec) Tuning() obj.PlayerTuning {
	return obj.PlayerTuning{
		Speed:            s.MoveSpeed,
		JumpPower:        s.JumpPower,
		Gravity:          s.Gravity,
		TerminalVelocity: s.TerminalVelocity,
	}
}

func LoadPlayerSpec() (PlayerSpec, error) {
	spec, err := LoadSpec(PlayerSpecFile, DefaultPlayerSpec())
	if err != nil {
		return DefaultPlayerSpec(), err
	}
	if err := spec.Validate(); err != nil {
		return DefaultPlayerSpec(), fmt.Errorf("prefabs: %s: %w", PlayerSpecFile, err)
	}
	return spec, nil
}

type DeadZoneSpec struct {
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
}

type CameraSpec struct {
	Name     string       `yaml:"name"`
	DeadZone DeadZoneSpec `yaml:"dead_zone"`
}

func DefaultCameraSpec() CameraSpec {
	dz := obj.DefaultDeadZone()
	return CameraSpec{
		Name:     "camera",
		DeadZone: DeadZoneSpec{Left: dz.Left, Right: dz.Right, Top: dz.Top, Bottom: dz.Bottom},
	}
}

func (s CameraSpec) Validate() error {
	dz := s.DeadZone
	if dz.Left < 0 || dz.Right > 1 || dz.Left > dz.Right {
		return fmt.Errorf("dead_zone left/right must satisfy 0 <= left <= right <= 1, got %v/%v", dz.Left, dz.Right)
	}
	if dz.Top < 0 || dz.Bottom > 1 || dz.Top > dz.Bottom {
		return fmt.Errorf("dead_zone top/bottom must satisfy 0 <= top <= bottom <= 1, got %v/%v", dz.Top, dz.Bottom)
	}
	return nil
}

func (s CameraSpec) Zone() obj.DeadZone {
	return obj.DeadZone{Left: s.DeadZone.Left, Right: s.DeadZone.Right, Top: s.DeadZone.Top, Bottom: s.DeadZone.Bottom}
}

func LoadCameraSpec() (CameraSpec, error) {
	spec, err := LoadSpec(CameraSpecFile, DefaultCameraSpec())
	if err != nil {
		return DefaultCameraSpec(), err
	}
	if err := spec.Validate(); err != nil {
		return DefaultCameraSpec(), fmt.Errorf("prefabs: %s: %w", CameraSpecFile, err)
	}
	return spec, nil
}

type WorldSpec struct {
	Name            string            `yaml:"name"`
	TileSize        int               `yaml:"tile_size"`
	StartLevel      string            `yaml:"start_level"`
	FallbackColumns int               `yaml:"fallback_columns"`
	FallbackHeight  int               `yaml:"fallback_height"`
	Background      YAMLColor         `yaml:"background"`
	TileColors      map[int]YAMLColor `yaml:"tile_colors"`
}

func DefaultWorldSpec() WorldSpec {
	return WorldSpec{
		Name:            "world",
		TileSize:        common.TileSize,
		StartLevel:      "1",
		FallbackColumns: 50,
		FallbackHeight:  common.BaseHeight,
		Background:      YAMLColor{color.NRGBA{R: 0x6a, G: 0x67, B: 0x9f, A: 0xff}},
	}
}

// TileColor returns the draw colour for a tile code, falling back to the
// colour of code 1 and then to grey.
func (s WorldSpec) TileColor(code int) color.Color {
	if c, ok := s.TileColors[code]; ok && c.Color != nil {
		return c.Color
	}
	if c, ok := s.TileColors[1]; ok && c.Color != nil {
		return c.Color
	}
	return color.Gray{Y: 0xc0}
}

func LoadWorldSpec() (WorldSpec, error) {
	spec, err := LoadSpec(WorldSpecFile, DefaultWorldSpec())
	if err != nil {
		return DefaultWorldSpec(), err
	}
	if spec.TileSize <= 0 {
		return DefaultWorldSpec(), fmt.Errorf("prefabs: %s: tile_size must be positive, got %d", WorldSpecFile, spec.TileSize)
	}
	return spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
