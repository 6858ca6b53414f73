package physics

import "github.com/Faultbox/maze-arena/pkg/math"

// ShapeType identifies a collision shape.
type ShapeType int

const (
	ShapePlane ShapeType = iota
	ShapeBox
	ShapeSphere
)

// String returns the shape name.
func (s ShapeType) String() string {
	switch s {
	case ShapePlane:
		return "plane"
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// Shape describes a body's collision geometry.
// A plane is infinite, passes through the body position and faces the body's
// local +Z axis. Boxes are treated as axis aligned for contact purposes.
type Shape struct {
	Type        ShapeType
	HalfExtents math.Vec3 // ShapeBox
	Radius      float32   // ShapeSphere
}

// Plane returns an infinite plane shape.
func Plane() Shape {
	return Shape{Type: ShapePlane}
}

// Box returns a box shape with the given half extents.
func Box(halfExtents math.Vec3) Shape {
	return Shape{Type: ShapeBox, HalfExtents: halfExtents}
}

// Sphere returns a sphere shape.
func Sphere(radius float32) Shape {
	return Shape{Type: ShapeSphere, Radius: radius}
}

// Extent returns the half size of the shape along each world axis.
func (s Shape) Extent() math.Vec3 {
	switch s.Type {
	case ShapeBox:
		return s.HalfExtents
	case ShapeSphere:
		return math.Vec3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	}
	return math.Vec3{}
}

// supportDistance is the distance from the shape centre to its furthest
// point along unit direction n.
func (s Shape) supportDistance(n math.Vec3) float32 {
	switch s.Type {
	case ShapeBox:
		return s.HalfExtents.Dot(n.Abs())
	case ShapeSphere:
		return s.Radius
	}
	return 0
}
