// Package game implements the arena frame loop and the scene manager that
// reconciles local simulation with server events.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/maze-arena/internal/engine/input"
	"github.com/Faultbox/maze-arena/internal/logger"
	"github.com/Faultbox/maze-arena/internal/network"
)

// Config holds frame loop settings.
type Config struct {
	FPSLimit int
	ShowFPS  bool
}

// Game drives the scene manager once per frame.
type Game struct {
	config  Config
	manager *SceneManager
	channel network.Channel
	input   input.Source

	frames   uint64
	fpsCount int
	fpsTimer time.Time
}

// New creates a game over an initialized scene manager.
func New(cfg Config, m *SceneManager, ch network.Channel, src input.Source) *Game {
	if cfg.FPSLimit <= 0 {
		cfg.FPSLimit = 60
	}
	return &Game{
		config:  cfg,
		manager: m,
		channel: ch,
		input:   src,
	}
}

// Run runs frames at the configured rate until ctx is done, a quit event
// arrives or the connection fails.
func (g *Game) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(g.config.FPSLimit))
	defer ticker.Stop()

	lastTime := time.Now()
	g.fpsTimer = lastTime

	logger.Info("starting game loop", zap.Int("fps_limit", g.config.FPSLimit))

	for {
		select {
		case <-ctx.Done():
			logger.Info("game loop stopped", zap.Uint64("frames", g.frames))
			return nil
		case now := <-ticker.C:
			dt := now.Sub(lastTime)
			lastTime = now

			running, err := g.Frame(dt)
			if err != nil {
				return err
			}
			if !running {
				logger.Info("game loop finished", zap.Uint64("frames", g.frames))
				return nil
			}
		}
	}
}

// Frame processes queued input and network events, then updates the scene.
// It returns false once a quit event was seen or the server ended the
// session, and an error if the connection failed.
func (g *Game) Frame(dt time.Duration) (bool, error) {
	// 1. Input
	if g.input != nil {
		for _, e := range g.input.Poll() {
			if e.Type == input.EventQuit {
				return false, nil
			}
			g.manager.HandleInput(e)
		}
	}

	// 2. Network
	g.channel.Poll()
	connErr := g.connErr()
	if connErr != nil {
		// Events read before the connection ended are still queued.
		g.channel.Poll()
	}

	// 3. Simulation
	g.manager.UpdateDelta(dt)
	g.frames++

	g.fpsCount++
	if g.config.ShowFPS && time.Since(g.fpsTimer) >= time.Second {
		logger.Debug("fps",
			zap.Int("count", g.fpsCount),
			zap.String("dt", fmt.Sprintf("%.2fms", float64(dt.Microseconds())/1000)),
			zap.Int("remote_players", g.manager.Registry().Len()))
		g.fpsCount = 0
		g.fpsTimer = time.Now()
	}

	if connErr != nil {
		if errors.Is(connErr, network.ErrServerClosed) {
			logger.Info("server ended the session", zap.Uint64("frames", g.frames))
			return false, nil
		}
		return false, fmt.Errorf("connection lost: %w", connErr)
	}
	return true, nil
}

// connErr returns the error that ended the connection, for channels that
// report one.
func (g *Game) connErr() error {
	if ec, ok := g.channel.(interface{ Err() error }); ok {
		return ec.Err()
	}
	return nil
}

// Frames returns how many frames have run.
func (g *Game) Frames() uint64 {
	return g.frames
}

// Close closes the channel.
func (g *Game) Close() error {
	logger.Info("closing game")
	return g.channel.Close()
}
