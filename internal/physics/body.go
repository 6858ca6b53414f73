// Package physics implements the rigid-body world the client simulates
// players and level geometry in.
package physics

import "github.com/Faultbox/maze-arena/pkg/math"

// BodyID identifies a body inside a World. Zero is never assigned.
type BodyID uint32

// Kind is the simulation kind of a body.
type Kind uint8

const (
	// Dynamic bodies move under gravity and contact response.
	Dynamic Kind = iota
	// Static bodies never move during Step.
	Static
)

// Filter groups. A pair collides when each body's group is in the other's mask.
const (
	GroupLevel  int32 = 1
	GroupPlayer int32 = 2
	MaskAll     int32 = -1
)

// Body is a rigid body.
type Body struct {
	ID       BodyID
	Kind     Kind
	Mass     float32
	Shape    Shape
	Position math.Vec3
	Rotation math.Quat
	Velocity math.Vec3

	// Collision filter
	Group int32
	Mask  int32

	// Tag carries the player id for player bodies.
	Tag string
}

// BodyConfig describes a body to create.
type BodyConfig struct {
	Kind     Kind
	Mass     float32
	Shape    Shape
	Position math.Vec3
	Rotation math.Quat
	Group    int32
	Mask     int32
	Tag      string
}

// NewBody creates a body from cfg. Static bodies always get zero mass and a
// body without positive mass is static. A zero filter defaults to the level
// group colliding with everything.
func NewBody(cfg BodyConfig) *Body {
	b := &Body{
		Kind:     cfg.Kind,
		Mass:     cfg.Mass,
		Shape:    cfg.Shape,
		Position: cfg.Position,
		Rotation: cfg.Rotation,
		Group:    cfg.Group,
		Mask:     cfg.Mask,
		Tag:      cfg.Tag,
	}
	if b.Mass <= 0 {
		b.Kind = Static
	}
	if b.Kind == Static {
		b.Mass = 0
	}
	if b.Rotation == (math.Quat{}) {
		b.Rotation = math.QuatIdentity()
	}
	if b.Group == 0 {
		b.Group = GroupLevel
	}
	if b.Mask == 0 {
		b.Mask = MaskAll
	}
	return b
}

// Transform returns the body's current position and rotation.
func (b *Body) Transform() math.Transform {
	return math.Transform{Position: b.Position, Rotation: b.Rotation}
}

func (b *Body) invMass() float32 {
	if b.Kind == Static || b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

// collides reports whether the filters of a and b intersect.
func collides(a, b *Body) bool {
	return a.Group&b.Mask != 0 && b.Group&a.Mask != 0
}
