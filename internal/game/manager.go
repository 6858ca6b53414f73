package game

import (
	"errors"
	"fmt"
	stdmath "math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/maze-arena/internal/config"
	"github.com/Faultbox/maze-arena/internal/engine/debug"
	"github.com/Faultbox/maze-arena/internal/engine/input"
	"github.com/Faultbox/maze-arena/internal/engine/scene"
	"github.com/Faultbox/maze-arena/internal/game/entity"
	"github.com/Faultbox/maze-arena/internal/game/world"
	"github.com/Faultbox/maze-arena/internal/logger"
	"github.com/Faultbox/maze-arena/internal/network"
	"github.com/Faultbox/maze-arena/internal/network/packets"
	"github.com/Faultbox/maze-arena/internal/physics"
	"github.com/Faultbox/maze-arena/pkg/math"
)

// ErrAlreadyInitialized is returned by a second Init.
var ErrAlreadyInitialized = errors.New("scene manager already initialized")

// Options configures a SceneManager.
type Options struct {
	Physics     physics.Config
	FixedStep   time.Duration
	Accumulate  bool
	MaxSubsteps int

	Player        entity.BodyConfig
	Level         world.Level
	Controller    world.ControllerConfig
	WallThreshold float32

	LightPosition  math.Vec3
	BannerDuration time.Duration
	Wireframe      bool

	// Now is the banner clock. Defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns options equivalent to config.Default.
func DefaultOptions() Options {
	opts, _ := OptionsFromConfig(config.Default())
	return opts
}

// OptionsFromConfig maps the client configuration onto scene manager
// options. It fails only if the level layout cannot be read.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	arena, err := LoadArena(cfg.Level)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Physics: physics.Config{
			Gravity:       cfg.Physics.Gravity,
			LinearDamping: cfg.Physics.LinearDamping,
		},
		FixedStep:   cfg.Physics.FixedStep,
		Accumulate:  cfg.Physics.Accumulate,
		MaxSubsteps: cfg.Physics.MaxSubsteps,
		Player: entity.BodyConfig{
			Mass:       cfg.Player.Mass,
			HalfExtent: cfg.Player.HalfExtent,
			Group:      cfg.Player.Group,
			Mask:       cfg.Player.Mask,
		},
		Level: world.Level{
			GroundSize:      cfg.Level.GroundSize,
			GroundColor:     cfg.Level.GroundColor,
			Walls:           arena.Walls,
			WallHalfExtents: cfg.Level.WallHalfExtents,
			WallColor:       cfg.Level.WallColor,
		},
		Controller: world.ControllerConfig{
			Keys:      cfg.Controller.Keys,
			MoveEvent: cfg.Controller.MoveEvent,
			WallCheck: cfg.Controller.WallCollision,
		},
		WallThreshold:  cfg.Controller.WallThreshold,
		LightPosition:  cfg.Game.LightPosition,
		BannerDuration: cfg.Game.BannerDuration,
		Wireframe:      cfg.Debug.PhysicsWireframe,
	}, nil
}

// SceneManager keeps the physics world, the scene and the player set
// consistent. All methods must be called from the frame goroutine.
type SceneManager struct {
	opts    Options
	channel network.Channel
	now     func() time.Time

	world      *physics.World
	scene      *scene.Scene
	spawner    *entity.Spawner
	registry   *entity.Registry
	controller *world.LocalPlayerController
	walls      *world.WallSet
	wireframe  *debug.Wireframe
	finish     *scene.Mesh

	accumulator time.Duration
	initialized bool
}

// NewSceneManager creates a manager bound to ch. Nothing is built until Init.
func NewSceneManager(opts Options, ch network.Channel) *SceneManager {
	if opts.FixedStep <= 0 {
		opts.FixedStep = time.Second / 60
	}
	if opts.MaxSubsteps <= 0 {
		opts.MaxSubsteps = 1
	}
	if opts.Player.HalfExtent <= 0 {
		opts.Player = entity.DefaultBodyConfig()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	w := physics.NewWorld(opts.Physics)
	s := scene.New()
	spawner := &entity.Spawner{World: w, Scene: s, Body: opts.Player}

	return &SceneManager{
		opts:     opts,
		channel:  ch,
		now:      now,
		world:    w,
		scene:    s,
		spawner:  spawner,
		registry: entity.NewRegistry(spawner),
	}
}

// Init builds the level, registers the network handlers and announces the
// client with a join event.
func (m *SceneManager) Init() error {
	if m.initialized {
		return ErrAlreadyInitialized
	}
	m.initialized = true

	wallBodies := m.opts.Level.Build(m.world, m.scene)
	m.walls = world.NewWallSet(wallBodies, m.opts.WallThreshold)
	m.controller = world.NewLocalPlayerController(m.opts.Controller, m.walls, m.channel)

	m.scene.AddLight(scene.Light{
		Color:      "#ffffff",
		Position:   m.opts.LightPosition,
		CastShadow: true,
	})

	if m.opts.Wireframe {
		m.wireframe = debug.NewWireframe(0)
		m.world.Attach(m.wireframe)
	}

	m.registerHandlers()

	if err := m.channel.Emit(packets.Join, m.channel.ID()); err != nil {
		logger.Warn("failed to send join", zap.Error(err))
	}

	logger.Info("scene initialized",
		zap.String("id", m.channel.ID()),
		zap.Int("walls", m.walls.Len()),
		zap.Bool("wall_check", m.opts.Controller.WallCheck),
		zap.Duration("fixed_step", m.opts.FixedStep))
	return nil
}

func (m *SceneManager) registerHandlers() {
	m.channel.On(packets.GetFinish, m.onGetFinish)
	m.channel.On(packets.GetPlayer, m.onGetPlayer)
	m.channel.On(packets.JoinPlayer, m.onJoinPlayer)
	m.channel.On(packets.GetActivePlayers, m.onGetActivePlayers)
	m.channel.On(packets.GetPlayers, m.onGetPlayers)
	m.channel.On(packets.GetWinner, m.onGetWinner)
	m.channel.On(packets.DisconnectPlayer, m.onDisconnectPlayer)
}

// HandleInput forwards key presses to the local controller. It reports
// whether the local player moved.
func (m *SceneManager) HandleInput(e input.Event) bool {
	if e.Type != input.EventKeyDown || m.controller == nil {
		return false
	}
	return m.controller.OnKeyDown(e.Key)
}

// Update advances physics by one fixed step and syncs every mesh to its
// body.
func (m *SceneManager) Update() {
	m.world.Step(float32(m.opts.FixedStep.Seconds()))
	m.sync()
}

// UpdateDelta is Update for a frame that took dt. Unless accumulation is
// enabled it runs exactly one fixed step. With accumulation it runs as many
// steps as dt covers, at most MaxSubsteps, and returns the step count.
func (m *SceneManager) UpdateDelta(dt time.Duration) int {
	if !m.opts.Accumulate {
		m.Update()
		return 1
	}

	m.accumulator += dt
	step := m.opts.FixedStep
	steps := 0
	for m.accumulator >= step && steps < m.opts.MaxSubsteps {
		m.world.Step(float32(step.Seconds()))
		m.accumulator -= step
		steps++
	}
	if m.accumulator >= step {
		logger.Debug("physics falling behind, dropping time",
			zap.Duration("dropped", m.accumulator))
		m.accumulator %= step
	}
	m.sync()
	return steps
}

func (m *SceneManager) sync() {
	for _, p := range m.registry.All() {
		p.Sync(m.scene)
	}
	if p := m.LocalPlayer(); p != nil {
		p.Sync(m.scene)
	}
}

// World returns the physics world.
func (m *SceneManager) World() *physics.World { return m.world }

// Scene returns the render scene.
func (m *SceneManager) Scene() *scene.Scene { return m.scene }

// Registry returns the remote players.
func (m *SceneManager) Registry() *entity.Registry { return m.registry }

// Controller returns the local controller, or nil before Init.
func (m *SceneManager) Controller() *world.LocalPlayerController { return m.controller }

// Wireframe returns the physics debug observer, or nil when disabled.
func (m *SceneManager) Wireframe() *debug.Wireframe { return m.wireframe }

// Finish returns the finish marker, or nil before the first getFinish.
func (m *SceneManager) Finish() *scene.Mesh { return m.finish }

// LocalPlayer returns the local player, or nil before getPlayer.
func (m *SceneManager) LocalPlayer() *entity.PlayerEntry {
	if m.controller == nil {
		return nil
	}
	return m.controller.Player()
}

// Banner returns the winner banner if it is still showing.
func (m *SceneManager) Banner() (scene.Banner, bool) {
	return m.scene.Banner(m.now())
}

func (m *SceneManager) onGetFinish(msg network.Message) error {
	var info packets.FinishInfo
	if err := msg.Decode(&info); err != nil {
		return err
	}

	if m.finish != nil {
		m.scene.Remove(m.finish)
	}
	mesh := scene.NewMesh("finish",
		scene.PlaneGeometry(1, 1),
		scene.Material{Color: info.Color, DoubleSided: true})
	mesh.Transform = math.Transform{
		Position: info.Position.Vec(),
		Rotation: math.QuatFromEuler(-stdmath.Pi/2, 0, 0),
	}
	m.scene.Add(mesh)
	m.finish = mesh

	logger.Debug("finish placed", zap.Any("position", info.Position))
	return nil
}

func (m *SceneManager) onGetPlayer(msg network.Message) error {
	var info packets.PlayerInfo
	if err := msg.Decode(&info); err != nil {
		return err
	}
	if p := m.LocalPlayer(); p != nil {
		logger.Warn("local player already assigned, ignoring getPlayer",
			zap.String("current", p.ID),
			zap.String("id", info.ID))
		return nil
	}

	p := m.spawner.Spawn(info.ID, math.At(info.Position.Vec()), info.Color)
	m.controller.Assign(p)
	return nil
}

func (m *SceneManager) onJoinPlayer(msg network.Message) error {
	var info packets.PlayerInfo
	if err := msg.Decode(&info); err != nil {
		return err
	}
	m.registry.Upsert(info.ID, math.At(info.Position.Vec()), info.Color)
	return nil
}

func (m *SceneManager) onGetActivePlayers(msg network.Message) error {
	var players []packets.PlayerInfo
	if err := msg.Decode(&players); err != nil {
		return err
	}
	for _, info := range players {
		if m.isSelf(info.ID) {
			continue
		}
		m.registry.Upsert(info.ID, math.At(info.Position.Vec()), info.Color)
	}
	return nil
}

func (m *SceneManager) isSelf(id string) bool {
	if id == m.channel.ID() {
		return true
	}
	p := m.LocalPlayer()
	return p != nil && p.ID == id
}

func (m *SceneManager) onGetPlayers(msg network.Message) error {
	var positions []packets.PlayerPosition
	if err := msg.Decode(&positions); err != nil {
		return err
	}
	updates := make([]entity.PositionUpdate, len(positions))
	for i, pp := range positions {
		updates[i] = entity.PositionUpdate{ID: pp.ID, Position: pp.Position.Vec()}
	}
	m.registry.ApplyPositions(updates)
	return nil
}

func (m *SceneManager) onGetWinner(msg network.Message) error {
	var winner string
	if err := msg.Decode(&winner); err != nil {
		return err
	}
	m.controller.OnWin(winner)
	text := fmt.Sprintf("Player %s win!", winner)
	m.scene.ShowBanner(text, m.now(), m.opts.BannerDuration)
	logger.Info(text)
	return nil
}

func (m *SceneManager) onDisconnectPlayer(msg network.Message) error {
	var id string
	if err := msg.Decode(&id); err != nil {
		return err
	}
	if !m.registry.Remove(id) {
		logger.Debug("disconnect for unknown player", zap.String("id", id))
	}
	return nil
}
