// Package entity implements players: the bound pair of a physics body and
// the mesh that shows it.
package entity

import (
	"github.com/Faultbox/maze-arena/internal/engine/scene"
	"github.com/Faultbox/maze-arena/internal/physics"
	"github.com/Faultbox/maze-arena/pkg/math"
)

// PlayerEntry is one player's body and mesh. Both are owned by their worlds
// while the entry is spawned.
type PlayerEntry struct {
	ID   string
	Body *physics.Body
	Mesh *scene.Mesh
}

// Position returns the body position.
func (p *PlayerEntry) Position() math.Vec3 {
	return p.Body.Position
}

// Sync copies the body transform onto the mesh.
func (p *PlayerEntry) Sync(s *scene.Scene) {
	s.SyncTransform(p.Mesh, p.Body.Transform())
}

// BodyConfig describes the physical player body.
type BodyConfig struct {
	Mass       float32
	HalfExtent float32
	Group      int32
	Mask       int32
}

// DefaultBodyConfig returns a unit cube that collides with level geometry
// only.
func DefaultBodyConfig() BodyConfig {
	return BodyConfig{
		Mass:       1,
		HalfExtent: 0.5,
		Group:      physics.GroupPlayer,
		Mask:       physics.GroupLevel,
	}
}

// Spawner creates and destroys player entries in a world/scene pair.
type Spawner struct {
	World *physics.World
	Scene *scene.Scene
	Body  BodyConfig
}

// Spawn creates an entry and adds its body and mesh to their worlds.
func (s *Spawner) Spawn(id string, t math.Transform, color string) *PlayerEntry {
	h := s.Body.HalfExtent
	body := physics.NewBody(physics.BodyConfig{
		Kind:     physics.Dynamic,
		Mass:     s.Body.Mass,
		Shape:    physics.Box(math.Vec3{X: h, Y: h, Z: h}),
		Position: t.Position,
		Rotation: t.Rotation,
		Group:    s.Body.Group,
		Mask:     s.Body.Mask,
		Tag:      id,
	})
	s.World.AddBody(body)

	mesh := scene.NewMesh(id, scene.BoxGeometry(2*h, 2*h, 2*h), scene.Material{Color: color})
	mesh.CastShadow = true
	mesh.Transform = body.Transform()
	s.Scene.Add(mesh)

	return &PlayerEntry{ID: id, Body: body, Mesh: mesh}
}

// Despawn removes the entry's body and mesh together.
func (s *Spawner) Despawn(p *PlayerEntry) {
	s.World.RemoveBody(p.Body.ID)
	s.Scene.Remove(p.Mesh)
}
