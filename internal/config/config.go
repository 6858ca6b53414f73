// Package config handles client configuration loading and management.
package config

import (
	"time"

	"github.com/Faultbox/maze-arena/pkg/math"
)

// Config holds all client settings.
type Config struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Controller ControllerConfig `yaml:"controller"`
	Level      LevelConfig      `yaml:"level"`
	Network    NetworkConfig    `yaml:"network"`
	Game       GameConfig       `yaml:"game"`
	Debug      DebugConfig      `yaml:"debug"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// PhysicsConfig holds rigid body world settings.
type PhysicsConfig struct {
	Gravity       math.Vec3     `yaml:"gravity"`
	FixedStep     time.Duration `yaml:"fixed_step"`
	LinearDamping float32       `yaml:"linear_damping"`
	// Accumulate steps by elapsed time instead of once per frame.
	Accumulate  bool `yaml:"accumulate"`
	MaxSubsteps int  `yaml:"max_substeps"`
}

// PlayerConfig holds the player body settings shared by local and remote
// players.
type PlayerConfig struct {
	Mass       float32 `yaml:"mass"`
	HalfExtent float32 `yaml:"half_extent"`
	Group      int32   `yaml:"group"`
	Mask       int32   `yaml:"mask"`
}

// ControllerConfig holds local movement settings.
type ControllerConfig struct {
	WallCollision bool                 `yaml:"wall_collision"`
	WallThreshold float32              `yaml:"wall_threshold"`
	Keys          map[string]math.Vec3 `yaml:"keys"`
	MoveEvent     string               `yaml:"move_event"`
}

// LevelConfig holds the static arena layout.
type LevelConfig struct {
	GroundSize      float32     `yaml:"ground_size"`
	GroundColor     string      `yaml:"ground_color"`
	Walls           []math.Vec3 `yaml:"walls"`
	WallHalfExtents math.Vec3   `yaml:"wall_half_extents"`
	WallColor       string      `yaml:"wall_color"`
	FinishColor     string      `yaml:"finish_color"`
	// Layout rows add a wall for every '#' cell. LayoutFile is read when
	// Layout is empty.
	Layout     []string `yaml:"layout"`
	LayoutFile string   `yaml:"layout_file"`
	CellSize   float32  `yaml:"cell_size"`
}

// NetworkConfig holds server connection settings.
type NetworkConfig struct {
	ServerURL      string        `yaml:"server_url"`
	Codec          string        `yaml:"codec"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	Retries        int           `yaml:"retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
	// ClientID is sent with join. Empty means a random id per session.
	ClientID string `yaml:"client_id"`
	Offline  bool   `yaml:"offline"`
}

// GameConfig holds frame loop settings.
type GameConfig struct {
	FPSLimit       int           `yaml:"fps_limit"`
	BannerDuration time.Duration `yaml:"banner_duration"`
	ShowFPS        bool          `yaml:"show_fps"`
	LightPosition  math.Vec3     `yaml:"light_position"`
}

// DebugConfig holds diagnostics settings.
type DebugConfig struct {
	PhysicsWireframe bool `yaml:"physics_wireframe"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Physics: PhysicsConfig{
			Gravity:       math.Vec3{Y: -9.82},
			FixedStep:     time.Second / 60,
			LinearDamping: 0.01,
			MaxSubsteps:   5,
		},
		Player: PlayerConfig{
			Mass:       1,
			HalfExtent: 0.5,
			Group:      2,
			Mask:       1,
		},
		Controller: ControllerConfig{
			WallCollision: true,
			WallThreshold: 1.0,
			MoveEvent:     "setPlayer",
		},
		Level: LevelConfig{
			GroundSize:      10,
			GroundColor:     "#777777",
			WallHalfExtents: math.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
			WallColor:       "#8b4513",
			FinishColor:     "#ffd700",
			CellSize:        1,
		},
		Network: NetworkConfig{
			ServerURL:      "ws://localhost:8080/ws",
			Codec:          "json",
			ConnectTimeout: 10 * time.Second,
			Retries:        3,
			RetryDelay:     time.Second,
		},
		Game: GameConfig{
			FPSLimit:       60,
			BannerDuration: 0,
			LightPosition:  math.Vec3{X: -10, Y: 10},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
