package world

import (
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/Faultbox/maze-arena/internal/game/entity"
	"github.com/Faultbox/maze-arena/internal/logger"
	"github.com/Faultbox/maze-arena/internal/network"
	"github.com/Faultbox/maze-arena/internal/network/packets"
	"github.com/Faultbox/maze-arena/pkg/math"
)

// State is the local controller's lifecycle state.
type State uint8

const (
	StateUninitialized State = iota // no player assigned yet
	StateActive                     // accepting movement
	StateLocked                     // a winner was announced
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// DefaultKeys maps w/s to ±X and a/d to ∓Z.
func DefaultKeys() map[string]math.Vec3 {
	return map[string]math.Vec3{
		"w": {X: 1},
		"s": {X: -1},
		"a": {Z: -1},
		"d": {Z: 1},
	}
}

// ControllerConfig configures the local controller.
type ControllerConfig struct {
	Keys      map[string]math.Vec3
	MoveEvent string
	// WallCheck enables rejecting moves that land near a wall.
	WallCheck bool
}

// LocalPlayerController moves the local player one unit per key press and
// reports every accepted move to the server.
type LocalPlayerController struct {
	keys      map[string]math.Vec3
	moveEvent string
	walls     *WallSet
	emitter   network.Emitter
	fold      cases.Caser

	state  State
	player *entity.PlayerEntry
	winner string
}

// NewLocalPlayerController creates a controller in StateUninitialized.
// walls may be nil when cfg.WallCheck is false.
func NewLocalPlayerController(cfg ControllerConfig, walls *WallSet, emitter network.Emitter) *LocalPlayerController {
	c := &LocalPlayerController{
		keys:      make(map[string]math.Vec3, len(cfg.Keys)),
		moveEvent: cfg.MoveEvent,
		emitter:   emitter,
		fold:      cases.Fold(),
	}
	if cfg.WallCheck {
		c.walls = walls
	}
	if c.moveEvent == "" {
		c.moveEvent = packets.SetPlayer
	}
	keys := cfg.Keys
	if len(keys) == 0 {
		keys = DefaultKeys()
	}
	for k, v := range keys {
		c.keys[c.fold.String(k)] = v
	}
	return c
}

// Assign gives the controller its player. The first assignment activates
// the controller; a controller locked before assignment stays locked.
func (c *LocalPlayerController) Assign(p *entity.PlayerEntry) {
	c.player = p
	if c.state == StateUninitialized {
		c.state = StateActive
	}
	logger.Info("local player assigned",
		zap.String("id", p.ID),
		zap.Stringer("state", c.state))
}

// Player returns the local player, or nil before assignment.
func (c *LocalPlayerController) Player() *entity.PlayerEntry {
	return c.player
}

// State returns the current state.
func (c *LocalPlayerController) State() State {
	return c.state
}

// Winner returns the label passed to OnWin.
func (c *LocalPlayerController) Winner() string {
	return c.winner
}

// OnKeyDown applies the move mapped to key. It returns true when the player
// moved and the new position was emitted.
func (c *LocalPlayerController) OnKeyDown(key string) bool {
	if c.state != StateActive || c.player == nil {
		return false
	}

	key = c.fold.String(key)
	if utf8.RuneCountInString(key) != 1 {
		return false
	}
	offset, ok := c.keys[key]
	if !ok {
		return false
	}

	candidate := c.player.Body.Position.Add(offset)
	if c.walls.Blocked(candidate) {
		logger.Debug("move rejected near wall",
			zap.String("key", key),
			zap.Float32("x", candidate.X),
			zap.Float32("y", candidate.Y),
			zap.Float32("z", candidate.Z))
		return false
	}

	c.player.Body.Position = candidate
	if c.emitter != nil {
		if err := c.emitter.Emit(c.moveEvent, packets.FromVec(candidate)); err != nil {
			logger.Warn("failed to send position", zap.Error(err))
		}
	}
	return true
}

// OnWin locks the controller for the rest of the session.
func (c *LocalPlayerController) OnWin(label string) {
	if c.state == StateLocked {
		return
	}
	c.state = StateLocked
	c.winner = label
	logger.Info("winner announced, input locked", zap.String("winner", label))
}
