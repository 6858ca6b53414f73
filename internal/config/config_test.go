package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/maze-arena/pkg/math"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Physics.Gravity != (math.Vec3{Y: -9.82}) {
		t.Errorf("expected gravity (0,-9.82,0), got %v", cfg.Physics.Gravity)
	}
	if cfg.Physics.FixedStep != time.Second/60 {
		t.Errorf("expected fixed step 1/60s, got %v", cfg.Physics.FixedStep)
	}
	if cfg.Physics.Accumulate {
		t.Error("expected one physics step per frame by default")
	}

	if cfg.Player.HalfExtent != 0.5 || cfg.Player.Mass != 1 {
		t.Errorf("unexpected player defaults %+v", cfg.Player)
	}

	if !cfg.Controller.WallCollision {
		t.Error("expected wall collision to be enabled by default")
	}
	if cfg.Controller.WallThreshold != 1.0 {
		t.Errorf("expected wall threshold 1.0, got %f", cfg.Controller.WallThreshold)
	}
	if cfg.Controller.MoveEvent != "setPlayer" {
		t.Errorf("expected move event setPlayer, got %s", cfg.Controller.MoveEvent)
	}

	if cfg.Network.ServerURL != "ws://localhost:8080/ws" {
		t.Errorf("expected default server URL, got %s", cfg.Network.ServerURL)
	}
	if cfg.Network.Codec != "json" {
		t.Errorf("expected json codec, got %s", cfg.Network.Codec)
	}

	if cfg.Game.FPSLimit != 60 {
		t.Errorf("expected fps limit 60, got %d", cfg.Game.FPSLimit)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
physics:
  gravity: {x: 0, y: -5, z: 0}
  fixed_step: 10ms
  accumulate: true
  max_substeps: 3

controller:
  wall_collision: false
  keys:
    i: {x: 1}
    k: {x: -1}
  move_event: setPlayerPosition

level:
  walls:
    - {x: 1, y: 1, z: 0}
    - {x: 3, y: 1, z: 2}
  layout:
    - "#.#"
    - "S.F"

network:
  server_url: "ws://arena.example.com/ws"
  codec: msgpack
  connect_timeout: 5s
  client_id: alice

game:
  fps_limit: 30
  banner_duration: 3s

logging:
  level: "debug"
  log_file: "arena.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Physics.Gravity.Y != -5 {
		t.Errorf("expected gravity y -5, got %f", cfg.Physics.Gravity.Y)
	}
	if cfg.Physics.FixedStep != 10*time.Millisecond {
		t.Errorf("expected fixed step 10ms, got %v", cfg.Physics.FixedStep)
	}
	if !cfg.Physics.Accumulate || cfg.Physics.MaxSubsteps != 3 {
		t.Errorf("unexpected accumulator settings %+v", cfg.Physics)
	}
	// Untouched keys keep their defaults.
	if cfg.Physics.LinearDamping != 0.01 {
		t.Errorf("expected default damping, got %f", cfg.Physics.LinearDamping)
	}

	if cfg.Controller.WallCollision {
		t.Error("expected wall collision to be disabled")
	}
	if cfg.Controller.Keys["i"] != (math.Vec3{X: 1}) {
		t.Errorf("unexpected key map %v", cfg.Controller.Keys)
	}
	if cfg.Controller.MoveEvent != "setPlayerPosition" {
		t.Errorf("expected setPlayerPosition, got %s", cfg.Controller.MoveEvent)
	}

	if len(cfg.Level.Walls) != 2 || cfg.Level.Walls[1] != (math.Vec3{X: 3, Y: 1, Z: 2}) {
		t.Errorf("unexpected walls %v", cfg.Level.Walls)
	}
	if len(cfg.Level.Layout) != 2 || cfg.Level.Layout[1] != "S.F" {
		t.Errorf("unexpected layout %v", cfg.Level.Layout)
	}

	if cfg.Network.ServerURL != "ws://arena.example.com/ws" {
		t.Errorf("unexpected server URL %s", cfg.Network.ServerURL)
	}
	if cfg.Network.Codec != "msgpack" {
		t.Errorf("expected msgpack codec, got %s", cfg.Network.Codec)
	}
	if cfg.Network.ConnectTimeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.Network.ConnectTimeout)
	}
	if cfg.Network.ClientID != "alice" {
		t.Errorf("expected client id alice, got %s", cfg.Network.ClientID)
	}

	if cfg.Game.FPSLimit != 30 || cfg.Game.BannerDuration != 3*time.Second {
		t.Errorf("unexpected game settings %+v", cfg.Game)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "arena.log" {
		t.Errorf("unexpected logging settings %+v", cfg.Logging)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate: %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
game:
  fps_limit: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero step", func(c *Config) { c.Physics.FixedStep = 0 }, "fixed_step"},
		{"damping", func(c *Config) { c.Physics.LinearDamping = 1 }, "linear_damping"},
		{"substeps", func(c *Config) { c.Physics.Accumulate = true; c.Physics.MaxSubsteps = 0 }, "max_substeps"},
		{"player mass", func(c *Config) { c.Player.Mass = 0 }, "player.mass"},
		{"player size", func(c *Config) { c.Player.HalfExtent = 0 }, "half_extent"},
		{"cell size", func(c *Config) { c.Level.CellSize = 0 }, "cell_size"},
		{"threshold", func(c *Config) { c.Controller.WallThreshold = -1 }, "wall_threshold"},
		{"long key", func(c *Config) { c.Controller.Keys = map[string]math.Vec3{"up": {X: 1}} }, "single character"},
		{"codec", func(c *Config) { c.Network.Codec = "xml" }, "xml"},
		{"fps", func(c *Config) { c.Game.FPSLimit = 0 }, "fps_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "arena.yaml")
	if err := os.WriteFile(configPath, []byte("game:\n  fps_limit: 30\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find arena.yaml in current directory")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Level.Walls = []math.Vec3{{X: 2, Y: 1}}
	cfg.Network.ClientID = "bob"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Network.ClientID != "bob" || len(loaded.Level.Walls) != 1 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
	if loaded.Physics.FixedStep != cfg.Physics.FixedStep {
		t.Errorf("fixed step = %v, want %v", loaded.Physics.FixedStep, cfg.Physics.FixedStep)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Game.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "server flag",
			setup: func() { *flagServer = "ws://other:9000/ws" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Network.ServerURL != "ws://other:9000/ws" {
					t.Errorf("unexpected server %s", cfg.Network.ServerURL)
				}
			},
			teardown: func() { *flagServer = "" },
		},
		{
			name:  "codec and id flags",
			setup: func() { *flagCodec = "msgpack"; *flagID = "carol" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Network.Codec != "msgpack" || cfg.Network.ClientID != "carol" {
					t.Errorf("unexpected network %+v", cfg.Network)
				}
			},
			teardown: func() { *flagCodec = ""; *flagID = "" },
		},
		{
			name:  "offline flag",
			setup: func() { *flagOffline = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Network.Offline {
					t.Error("expected offline mode")
				}
			},
			teardown: func() { *flagOffline = false },
		},
		{
			name:  "no-walls flag",
			setup: func() { *flagNoWalls = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Controller.WallCollision {
					t.Error("expected wall collision to be disabled")
				}
			},
			teardown: func() { *flagNoWalls = false },
		},
		{
			name:  "fps flag",
			setup: func() { *flagFPS = 144 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Game.FPSLimit != 144 {
					t.Errorf("expected fps 144, got %d", cfg.Game.FPSLimit)
				}
			},
			teardown: func() { *flagFPS = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
network:
  codec: msgpack
game:
  fps_limit: 30
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagFPS = 120
	defer func() {
		*flagConfig = ""
		*flagFPS = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Flag beats file.
	if cfg.Game.FPSLimit != 120 {
		t.Errorf("expected fps 120 from flag, got %d", cfg.Game.FPSLimit)
	}
	// File beats default.
	if cfg.Network.Codec != "msgpack" {
		t.Errorf("expected msgpack from file, got %s", cfg.Network.Codec)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("network:\n  codec: xml\n"), 0644); err != nil {
		t.Fatal(err)
	}
	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected validation error")
	}
}
