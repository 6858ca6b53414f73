package physics

import "github.com/Faultbox/maze-arena/pkg/math"

// contact is a penetration between a and b. normal points from a to b.
type contact struct {
	a, b   *Body
	normal math.Vec3
	depth  float32
}

var planeNormal = math.Vec3{X: 0, Y: 0, Z: 1}

func findContact(a, b *Body) (contact, bool) {
	switch {
	case a.Shape.Type == ShapePlane && b.Shape.Type == ShapePlane:
		return contact{}, false
	case a.Shape.Type == ShapePlane:
		return planeContact(a, b)
	case b.Shape.Type == ShapePlane:
		c, ok := planeContact(b, a)
		return c.flip(), ok
	case a.Shape.Type == ShapeSphere && b.Shape.Type == ShapeSphere:
		return sphereContact(a, b)
	default:
		// Box-box and sphere-box are resolved on axis-aligned extents.
		return aabbContact(a, b)
	}
}

func planeContact(plane, other *Body) (contact, bool) {
	n := plane.Rotation.Rotate(planeNormal).Normalize()
	dist := other.Position.Sub(plane.Position).Dot(n)
	depth := other.Shape.supportDistance(n) - dist
	if depth <= 0 {
		return contact{}, false
	}
	return contact{a: plane, b: other, normal: n, depth: depth}, true
}

func sphereContact(a, b *Body) (contact, bool) {
	delta := b.Position.Sub(a.Position)
	dist := delta.Length()
	depth := a.Shape.Radius + b.Shape.Radius - dist
	if depth <= 0 {
		return contact{}, false
	}
	n := math.Vec3{X: 0, Y: 1, Z: 0}
	if dist > 0 {
		n = delta.Scale(1 / dist)
	}
	return contact{a: a, b: b, normal: n, depth: depth}, true
}

func aabbContact(a, b *Body) (contact, bool) {
	d := b.Position.Sub(a.Position)
	ea, eb := a.Shape.Extent(), b.Shape.Extent()

	overlap := math.Vec3{
		X: ea.X + eb.X - abs(d.X),
		Y: ea.Y + eb.Y - abs(d.Y),
		Z: ea.Z + eb.Z - abs(d.Z),
	}
	if overlap.X <= 0 || overlap.Y <= 0 || overlap.Z <= 0 {
		return contact{}, false
	}

	c := contact{a: a, b: b}
	switch {
	case overlap.X <= overlap.Y && overlap.X <= overlap.Z:
		c.depth = overlap.X
		c.normal = math.Vec3{X: sign(d.X)}
	case overlap.Y <= overlap.Z:
		c.depth = overlap.Y
		c.normal = math.Vec3{Y: sign(d.Y)}
	default:
		c.depth = overlap.Z
		c.normal = math.Vec3{Z: sign(d.Z)}
	}
	return c, true
}

func (c contact) flip() contact {
	c.a, c.b = c.b, c.a
	c.normal = c.normal.Scale(-1)
	return c
}

// resolve separates the bodies by inverse mass and removes the approaching
// component of their relative velocity. Contacts are perfectly inelastic.
func (c contact) resolve() {
	invA, invB := c.a.invMass(), c.b.invMass()
	total := invA + invB
	if total == 0 {
		return
	}

	c.a.Position = c.a.Position.Sub(c.normal.Scale(c.depth * invA / total))
	c.b.Position = c.b.Position.Add(c.normal.Scale(c.depth * invB / total))

	vn := c.b.Velocity.Sub(c.a.Velocity).Dot(c.normal)
	if vn >= 0 {
		return
	}
	j := -vn / total
	c.a.Velocity = c.a.Velocity.Sub(c.normal.Scale(j * invA))
	c.b.Velocity = c.b.Velocity.Add(c.normal.Scale(j * invB))
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func sign(f float32) float32 {
	if f < 0 {
		return -1
	}
	return 1
}
