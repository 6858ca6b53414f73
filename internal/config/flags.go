package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagServer  = flag.String("server", "", "Arena server websocket URL")
	flagCodec   = flag.String("codec", "", "Wire codec (json or msgpack)")
	flagID      = flag.String("id", "", "Client id sent with join")
	flagOffline = flag.Bool("offline", false, "Run without a server")
	flagNoWalls = flag.Bool("no-walls", false, "Disable wall collision checks")
	flagFPS     = flag.Int("fps", 0, "Frame rate limit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Game.ShowFPS = true
	}
	if *flagServer != "" {
		cfg.Network.ServerURL = *flagServer
	}
	if *flagCodec != "" {
		cfg.Network.Codec = *flagCodec
	}
	if *flagID != "" {
		cfg.Network.ClientID = *flagID
	}
	if *flagOffline {
		cfg.Network.Offline = true
	}
	if *flagNoWalls {
		cfg.Controller.WallCollision = false
	}
	if *flagFPS > 0 {
		cfg.Game.FPSLimit = *flagFPS
	}
}
