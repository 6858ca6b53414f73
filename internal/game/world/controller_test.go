package world

import (
	"testing"

	"github.com/Faultbox/maze-arena/internal/engine/scene"
	"github.com/Faultbox/maze-arena/internal/game/entity"
	"github.com/Faultbox/maze-arena/internal/network"
	"github.com/Faultbox/maze-arena/internal/network/packets"
	"github.com/Faultbox/maze-arena/internal/physics"
	"github.com/Faultbox/maze-arena/pkg/math"
)

type fixture struct {
	ch     *network.MemoryChannel
	ctrl   *LocalPlayerController
	player *entity.PlayerEntry
}

// newFixture spawns a local player at start with walls at the given
// positions and wall rejection enabled.
func newFixture(start math.Vec3, walls ...math.Vec3) *fixture {
	w := physics.NewWorld(physics.DefaultConfig())
	s := scene.New()
	level := Level{GroundSize: 10, Walls: walls, WallHalfExtents: math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}}
	wallBodies := level.Build(w, s)

	ch := network.NewMemoryChannel("me", nil)
	ctrl := NewLocalPlayerController(ControllerConfig{WallCheck: true}, NewWallSet(wallBodies, 1.0), ch)

	spawner := &entity.Spawner{World: w, Scene: s, Body: entity.DefaultBodyConfig()}
	p := spawner.Spawn("me", math.At(start), "green")
	ctrl.Assign(p)
	return &fixture{ch: ch, ctrl: ctrl, player: p}
}

func TestKeyMoves(t *testing.T) {
	tests := []struct {
		key  string
		want math.Vec3
	}{
		{"w", math.Vec3{X: 1, Y: 1}},
		{"W", math.Vec3{X: 1, Y: 1}},
		{"s", math.Vec3{X: -1, Y: 1}},
		{"a", math.Vec3{Y: 1, Z: -1}},
		{"D", math.Vec3{Y: 1, Z: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			f := newFixture(math.Vec3{Y: 1})
			if !f.ctrl.OnKeyDown(tt.key) {
				t.Fatal("move rejected")
			}
			if f.player.Body.Position != tt.want {
				t.Errorf("position = %v, want %v", f.player.Body.Position, tt.want)
			}
			emitted := f.ch.Emitted()
			if len(emitted) != 1 || emitted[0].Event != packets.SetPlayer {
				t.Fatalf("expected one setPlayer event, got %+v", emitted)
			}
			if emitted[0].Payload != packets.FromVec(tt.want) {
				t.Errorf("payload = %+v, want %+v", emitted[0].Payload, tt.want)
			}
		})
	}
}

func TestUnmappedKeysIgnored(t *testing.T) {
	f := newFixture(math.Vec3{Y: 1})
	for _, key := range []string{"x", "", "Shift", "ww", " "} {
		if f.ctrl.OnKeyDown(key) {
			t.Errorf("key %q should not move", key)
		}
	}
	if f.player.Body.Position != (math.Vec3{Y: 1}) || len(f.ch.Emitted()) != 0 {
		t.Error("ignored keys changed state")
	}
}

func TestWallRejectsMove(t *testing.T) {
	f := newFixture(math.Vec3{Y: 1}, math.Vec3{X: 1, Y: 1})

	if f.ctrl.OnKeyDown("w") {
		t.Error("move into wall accepted")
	}
	if f.player.Body.Position != (math.Vec3{Y: 1}) {
		t.Errorf("position changed to %v", f.player.Body.Position)
	}
	if n := len(f.ch.Emitted()); n != 0 {
		t.Errorf("expected no emission, got %d", n)
	}

	// Moving away from the wall still works.
	if !f.ctrl.OnKeyDown("s") {
		t.Error("move away from wall rejected")
	}
}

func TestWallThresholdIsStrict(t *testing.T) {
	// Candidate (1,1,0) is exactly 1.0 from the wall at (2,1,0): allowed.
	f := newFixture(math.Vec3{Y: 1}, math.Vec3{X: 2, Y: 1})
	if !f.ctrl.OnKeyDown("w") {
		t.Error("move at exactly the threshold should be accepted")
	}
}

func TestWallCheckDisabled(t *testing.T) {
	w := physics.NewWorld(physics.DefaultConfig())
	s := scene.New()
	walls := Level{Walls: []math.Vec3{{X: 1, Y: 1}}}.Build(w, s)
	ch := network.NewMemoryChannel("me", nil)
	ctrl := NewLocalPlayerController(ControllerConfig{MoveEvent: packets.SetPlayerPosition}, NewWallSet(walls, 1.0), ch)

	p := (&entity.Spawner{World: w, Scene: s, Body: entity.DefaultBodyConfig()}).Spawn("me", math.At(math.Vec3{Y: 1}), "green")
	ctrl.Assign(p)

	if !ctrl.OnKeyDown("w") {
		t.Fatal("minimal controller should not check walls")
	}
	if ch.EmittedCount(packets.SetPlayerPosition) != 1 {
		t.Error("expected setPlayerPosition emission")
	}
}

func TestUninitializedIgnoresInput(t *testing.T) {
	ch := network.NewMemoryChannel("me", nil)
	ctrl := NewLocalPlayerController(ControllerConfig{}, nil, ch)

	if ctrl.State() != StateUninitialized {
		t.Fatalf("initial state = %v", ctrl.State())
	}
	if ctrl.OnKeyDown("w") {
		t.Error("uninitialized controller moved")
	}
	if len(ch.Emitted()) != 0 {
		t.Error("uninitialized controller emitted")
	}
}

func TestWinLocksInput(t *testing.T) {
	f := newFixture(math.Vec3{Y: 1})
	f.ctrl.OnKeyDown("w")

	f.ctrl.OnWin("p2")
	if f.ctrl.State() != StateLocked || f.ctrl.Winner() != "p2" {
		t.Fatalf("state=%v winner=%q", f.ctrl.State(), f.ctrl.Winner())
	}

	before := f.player.Body.Position
	for _, key := range []string{"w", "a", "s", "d"} {
		if f.ctrl.OnKeyDown(key) {
			t.Errorf("locked controller accepted %q", key)
		}
	}
	if f.player.Body.Position != before {
		t.Error("locked controller moved the player")
	}
	if n := len(f.ch.Emitted()); n != 1 {
		t.Errorf("expected 1 emission from before the win, got %d", n)
	}

	// A second announcement keeps the first winner.
	f.ctrl.OnWin("p3")
	if f.ctrl.Winner() != "p2" {
		t.Errorf("winner changed to %q", f.ctrl.Winner())
	}
}

func TestLockedBeforeAssignStaysLocked(t *testing.T) {
	ctrl := NewLocalPlayerController(ControllerConfig{}, nil, nil)
	ctrl.OnWin("p9")

	w := physics.NewWorld(physics.DefaultConfig())
	p := (&entity.Spawner{World: w, Scene: scene.New(), Body: entity.DefaultBodyConfig()}).Spawn("me", math.At(math.Vec3{}), "green")
	ctrl.Assign(p)

	if ctrl.State() != StateLocked {
		t.Errorf("state = %v, want locked", ctrl.State())
	}
	if ctrl.OnKeyDown("w") {
		t.Error("locked controller moved")
	}
}

func TestCustomKeyMap(t *testing.T) {
	w := physics.NewWorld(physics.DefaultConfig())
	ch := network.NewMemoryChannel("me", nil)
	ctrl := NewLocalPlayerController(ControllerConfig{
		Keys: map[string]math.Vec3{"I": {X: 1}, "K": {X: -1}},
	}, nil, ch)
	p := (&entity.Spawner{World: w, Scene: scene.New(), Body: entity.DefaultBodyConfig()}).Spawn("me", math.At(math.Vec3{}), "green")
	ctrl.Assign(p)

	if ctrl.OnKeyDown("w") {
		t.Error("default key should be unmapped")
	}
	if !ctrl.OnKeyDown("i") || p.Body.Position.X != 1 {
		t.Error("custom key did not move")
	}
}

func TestStateString(t *testing.T) {
	if StateActive.String() != "active" || State(42).String() != "unknown" {
		t.Error("unexpected state names")
	}
}
