package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the standard locations.
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./arena.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "MazeArena")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "MazeArena")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "maze-arena")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "maze-arena")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Physics.FixedStep <= 0 {
		errs = append(errs, errors.New("physics.fixed_step must be positive"))
	}
	if c.Physics.LinearDamping < 0 || c.Physics.LinearDamping >= 1 {
		errs = append(errs, errors.New("physics.linear_damping must be in [0, 1)"))
	}
	if c.Physics.Accumulate && c.Physics.MaxSubsteps < 1 {
		errs = append(errs, errors.New("physics.max_substeps must be at least 1"))
	}
	if c.Player.Mass <= 0 {
		errs = append(errs, errors.New("player.mass must be positive"))
	}
	if c.Player.HalfExtent <= 0 {
		errs = append(errs, errors.New("player.half_extent must be positive"))
	}
	if c.Level.CellSize <= 0 {
		errs = append(errs, errors.New("level.cell_size must be positive"))
	}
	if c.Controller.WallThreshold < 0 {
		errs = append(errs, errors.New("controller.wall_threshold must not be negative"))
	}
	for k := range c.Controller.Keys {
		if len([]rune(k)) != 1 {
			errs = append(errs, fmt.Errorf("controller.keys: %q is not a single character", k))
		}
	}
	switch c.Network.Codec {
	case "json", "msgpack":
	default:
		errs = append(errs, fmt.Errorf("network.codec: unknown codec %q", c.Network.Codec))
	}
	if c.Game.FPSLimit <= 0 {
		errs = append(errs, errors.New("game.fps_limit must be positive"))
	}
	return errors.Join(errs...)
}
