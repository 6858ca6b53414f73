// Package world builds the arena level and moves the local player through it.
package world

import (
	stdmath "math"

	"github.com/Faultbox/maze-arena/internal/engine/scene"
	"github.com/Faultbox/maze-arena/internal/physics"
	"github.com/Faultbox/maze-arena/pkg/math"
)

// Level describes the static arena geometry.
type Level struct {
	GroundSize      float32
	GroundColor     string
	Walls           []math.Vec3
	WallHalfExtents math.Vec3
	WallColor       string
}

// GroundRotation turns a plane's local +Z normal to face +Y.
func GroundRotation() math.Quat {
	return math.QuatFromEuler(-stdmath.Pi/2, 0, 0)
}

// Build adds the ground plane and every wall to the world and scene, and
// returns the wall bodies.
func (l Level) Build(w *physics.World, s *scene.Scene) []*physics.Body {
	w.AddBody(physics.NewBody(physics.BodyConfig{
		Kind:     physics.Static,
		Shape:    physics.Plane(),
		Rotation: GroundRotation(),
		Tag:      "ground",
	}))

	ground := scene.NewMesh("ground",
		scene.PlaneGeometry(l.GroundSize, l.GroundSize),
		scene.Material{Color: l.GroundColor, DoubleSided: true})
	ground.Transform.Rotation = GroundRotation()
	ground.ReceiveShadow = true
	s.Add(ground)

	he := l.WallHalfExtents
	walls := make([]*physics.Body, 0, len(l.Walls))
	for _, pos := range l.Walls {
		body := physics.NewBody(physics.BodyConfig{
			Kind:     physics.Static,
			Shape:    physics.Box(he),
			Position: pos,
			Tag:      "wall",
		})
		w.AddBody(body)
		walls = append(walls, body)

		mesh := scene.NewMesh("wall",
			scene.BoxGeometry(2*he.X, 2*he.Y, 2*he.Z),
			scene.Material{Color: l.WallColor})
		mesh.Transform = body.Transform()
		mesh.CastShadow = true
		mesh.ReceiveShadow = true
		s.Add(mesh)
	}
	return walls
}

// WallSet answers the controller's proximity test.
type WallSet struct {
	positions []math.Vec3
	threshold float32
}

// NewWallSet records the positions of the given wall bodies.
func NewWallSet(walls []*physics.Body, threshold float32) *WallSet {
	ws := &WallSet{threshold: threshold}
	for _, b := range walls {
		ws.positions = append(ws.positions, b.Position)
	}
	return ws
}

// Blocked reports whether p lies closer than the threshold to any wall
// position. This is a point-to-point test: wall size is not considered.
func (ws *WallSet) Blocked(p math.Vec3) bool {
	if ws == nil {
		return false
	}
	for _, w := range ws.positions {
		if p.Distance(w) < ws.threshold {
			return true
		}
	}
	return false
}

// Len returns the number of walls.
func (ws *WallSet) Len() int {
	if ws == nil {
		return 0
	}
	return len(ws.positions)
}
