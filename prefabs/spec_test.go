package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func useDiskDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
	return dir
}

func TestEmbeddedSpecsMatchDefaults(t *testing.T) {
	useDiskDir(t)

	player, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	if player.Tuning() != DefaultPlayerSpec().Tuning() {
		t.Fatalf("embedded tuning %+v differs from defaults", player.Tuning())
	}
	if player.StartX != 100 || player.StartY != 520 {
		t.Fatalf("start = (%v,%v)", player.StartX, player.StartY)
	}

	cam, err := LoadCameraSpec()
	if err != nil {
		t.Fatalf("LoadCameraSpec: %v", err)
	}
	if cam.Zone() != DefaultCameraSpec().Zone() {
		t.Fatalf("dead zone = %+v", cam.Zone())
	}

	world, err := LoadWorldSpec()
	if err != nil {
		t.Fatalf("LoadWorldSpec: %v", err)
	}
	if world.TileSize != 40 || world.FallbackColumns != 50 || len(world.TileColors) != 7 {
		t.Fatalf("world spec = %+v", world)
	}
	want := color.NRGBA{R: 0xff, G: 0xdc, B: 0x7b, A: 0xff}
	if got := world.TileColor(4); got != want {
		t.Fatalf("TileColor(4) = %v, want %v", got, want)
	}
	if world.TileColor(42) != world.TileColor(1) {
		t.Fatalf("unknown tile code should use the code 1 colour")
	}
}

func TestDiskSpecOverridesAndKeepsDefaults(t *testing.T) {
	dir := useDiskDir(t)
	if err := os.WriteFile(filepath.Join(dir, PlayerSpecFile), []byte("move_speed: 9\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	spec, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	if spec.MoveSpeed != 9 {
		t.Fatalf("move_speed = %v, want 9", spec.MoveSpeed)
	}
	if spec.Gravity != 0.8 || spec.TerminalVelocity != 15 || spec.Width != 40 {
		t.Fatalf("missing keys lost their defaults: %+v", spec)
	}
}

func TestInvalidSpecsFallBackToDefaults(t *testing.T) {
	cases := []struct {
		name string
		file string
		data string
		load func() error
	}{
		{"negative_speed", PlayerSpecFile, "move_speed: -1\n", func() error { _, err := LoadPlayerSpec(); return err }},
		{"zero_size", PlayerSpecFile, "width: 0\n", func() error { _, err := LoadPlayerSpec(); return err }},
		{"bad_yaml", PlayerSpecFile, "move_speed: [\n", func() error { _, err := LoadPlayerSpec(); return err }},
		{"inverted_zone", CameraSpecFile, "dead_zone: {left: 0.8, right: 0.2}\n", func() error { _, err := LoadCameraSpec(); return err }},
		{"zero_tiles", WorldSpecFile, "tile_size: 0\n", func() error { _, err := LoadWorldSpec(); return err }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dir := useDiskDir(t)
			if err := os.WriteFile(filepath.Join(dir, c.file), []byte(c.data), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if err := c.load(); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}

	dir := useDiskDir(t)
	if err := os.WriteFile(filepath.Join(dir, PlayerSpecFile), []byte("move_speed: -1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	spec, _ := LoadPlayerSpec()
	if spec.Tuning() != DefaultPlayerSpec().Tuning() {
		t.Fatalf("invalid spec returned %+v, want defaults", spec.Tuning())
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: `"#ff847c"`, want: color.NRGBA{R: 0xff, G: 0x84, B: 0x7c, A: 0xff}},
		{in: `"10203040"`, want: color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
		{in: `"#fff"`, wantErr: true},
		{in: `"#gg0000"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got.Color)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Color != c.want {
				t.Fatalf("color = %v, want %v", got.Color, c.want)
			}
		})
	}
}

func TestWatcherReportsChangedSpec(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, PlayerSpecFile), []byte("move_speed: 8\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, name := range w.Poll() {
			if name == "notes.txt" {
				t.Fatalf("non-spec file reported")
			}
			if name == PlayerSpecFile {
				return
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("no event for %s", PlayerSpecFile)
}

func TestWatcherClose(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if got := w.Poll(); len(got) != 0 {
		t.Fatalf("Poll after Close = %v, want nothing", got)
	}
}
