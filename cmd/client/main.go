// Package main is the entry point for the maze arena client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/maze-arena/internal/config"
	"github.com/Faultbox/maze-arena/internal/engine/input"
	"github.com/Faultbox/maze-arena/internal/game"
	"github.com/Faultbox/maze-arena/internal/logger"
	"github.com/Faultbox/maze-arena/internal/network"
	"github.com/Faultbox/maze-arena/internal/network/packets"
	"github.com/Faultbox/maze-arena/pkg/math"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Maze Arena Client ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("game error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("game closed normally")
}

func run(ctx context.Context, cfg *config.Config) error {
	id := cfg.Network.ClientID
	if id == "" {
		id = uuid.NewString()
	}

	opts, err := game.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}

	ch, err := connect(ctx, cfg, id)
	if err != nil {
		return err
	}

	m := game.NewSceneManager(opts, ch)
	if err := m.Init(); err != nil {
		ch.Close()
		return err
	}

	keys := input.NewQueue()
	go input.ReadKeys(ctx, os.Stdin, keys)

	g := game.New(game.Config{
		FPSLimit: cfg.Game.FPSLimit,
		ShowFPS:  cfg.Game.ShowFPS,
	}, m, ch, keys)
	defer g.Close()

	return g.Run(ctx)
}

// connect dials the arena server, or in offline mode returns an in-process
// channel that plays the server's opening events for a lone player.
func connect(ctx context.Context, cfg *config.Config, id string) (network.Channel, error) {
	codec, err := network.CodecByName(cfg.Network.Codec)
	if err != nil {
		return nil, err
	}

	if cfg.Network.Offline {
		logger.Info("running offline", zap.String("id", id))
		return offline(cfg, id, codec)
	}

	dialCtx, cancel := context.WithTimeout(ctx, cfg.Network.ConnectTimeout)
	defer cancel()

	ch, err := network.Dial(dialCtx, network.DialConfig{
		URL:        cfg.Network.ServerURL,
		ID:         id,
		Codec:      codec,
		Retries:    cfg.Network.Retries,
		RetryDelay: cfg.Network.RetryDelay,
	})
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// offline returns an in-process channel preloaded with the events a server
// sends a lone player: the finish marker and the local player.
func offline(cfg *config.Config, id string, codec network.Codec) (network.Channel, error) {
	arena, err := game.LoadArena(cfg.Level)
	if err != nil {
		return nil, err
	}
	spawn := math.Vec3{Y: 1}
	if arena.Spawn != nil {
		spawn = *arena.Spawn
	}
	finish := math.Vec3{X: 4, Y: 0.01, Z: 4}
	if arena.Finish != nil {
		finish = *arena.Finish
	}

	ch := network.NewMemoryChannel(id, codec)
	opening := []struct {
		event   string
		payload any
	}{
		{packets.GetFinish, packets.FinishInfo{
			Position: packets.FromVec(finish),
			Color:    cfg.Level.FinishColor,
		}},
		{packets.GetPlayer, packets.PlayerInfo{
			ID:       id,
			Position: packets.FromVec(spawn),
			Color:    "#00ff00",
		}},
	}
	for _, o := range opening {
		if err := ch.Deliver(o.event, o.payload); err != nil {
			return nil, fmt.Errorf("offline %s: %w", o.event, err)
		}
	}
	return ch, nil
}
