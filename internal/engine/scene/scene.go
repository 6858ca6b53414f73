// Package scene holds the logical scene graph: the meshes and lights a
// renderer would draw, kept in step with the physics world.
package scene

import (
	"time"

	"github.com/Faultbox/maze-arena/pkg/math"
)

// Light is a directional light.
type Light struct {
	Color      string
	Position   math.Vec3
	CastShadow bool
}

// Banner is a transient text overlay.
type Banner struct {
	Text    string
	Expires time.Time
}

// Scene owns meshes and lights. It is not safe for concurrent use.
type Scene struct {
	meshes []*Mesh
	index  map[*Mesh]int
	lights []Light
	banner *Banner
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		index: make(map[*Mesh]int),
	}
}

// Add adds a mesh. Adding a mesh twice has no effect.
func (s *Scene) Add(m *Mesh) {
	if _, ok := s.index[m]; ok {
		return
	}
	s.index[m] = len(s.meshes)
	s.meshes = append(s.meshes, m)
}

// Remove removes a mesh. Meshes not in the scene are ignored.
func (s *Scene) Remove(m *Mesh) {
	i, ok := s.index[m]
	if !ok {
		return
	}
	delete(s.index, m)
	s.meshes = append(s.meshes[:i], s.meshes[i+1:]...)
	for j := i; j < len(s.meshes); j++ {
		s.index[s.meshes[j]] = j
	}
}

// Contains reports whether m is in the scene.
func (s *Scene) Contains(m *Mesh) bool {
	_, ok := s.index[m]
	return ok
}

// SyncTransform copies t onto the mesh verbatim.
func (s *Scene) SyncTransform(m *Mesh, t math.Transform) {
	if m == nil {
		return
	}
	m.Transform = t
}

// Meshes returns the meshes in insertion order.
func (s *Scene) Meshes() []*Mesh {
	out := make([]*Mesh, len(s.meshes))
	copy(out, s.meshes)
	return out
}

// MeshesNamed returns every mesh with the given name.
func (s *Scene) MeshesNamed(name string) []*Mesh {
	var out []*Mesh
	for _, m := range s.meshes {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// Count returns the number of meshes.
func (s *Scene) Count() int {
	return len(s.meshes)
}

// AddLight adds a light.
func (s *Scene) AddLight(l Light) {
	s.lights = append(s.lights, l)
}

// Lights returns the scene lights.
func (s *Scene) Lights() []Light {
	return s.lights
}

// ShowBanner displays text until ttl has elapsed from now. A ttl of zero
// keeps the banner up for the rest of the session.
func (s *Scene) ShowBanner(text string, now time.Time, ttl time.Duration) {
	b := &Banner{Text: text}
	if ttl > 0 {
		b.Expires = now.Add(ttl)
	}
	s.banner = b
}

// Banner returns the active banner, if any.
func (s *Scene) Banner(now time.Time) (Banner, bool) {
	if s.banner == nil {
		return Banner{}, false
	}
	if !s.banner.Expires.IsZero() && !now.Before(s.banner.Expires) {
		s.banner = nil
		return Banner{}, false
	}
	return *s.banner, true
}
