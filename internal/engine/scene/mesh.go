package scene

import "github.com/Faultbox/maze-arena/pkg/math"

// GeometryType identifies the primitive a mesh is built from.
type GeometryType int

const (
	GeometryBox GeometryType = iota
	GeometryPlane
)

// Geometry describes mesh geometry. Size holds width/height/depth for boxes
// and width/height for planes.
type Geometry struct {
	Type GeometryType
	Size math.Vec3
}

// BoxGeometry returns a box of the given dimensions.
func BoxGeometry(width, height, depth float32) Geometry {
	return Geometry{Type: GeometryBox, Size: math.Vec3{X: width, Y: height, Z: depth}}
}

// PlaneGeometry returns a flat width x height plane.
func PlaneGeometry(width, height float32) Geometry {
	return Geometry{Type: GeometryPlane, Size: math.Vec3{X: width, Y: height}}
}

// Material holds surface appearance.
type Material struct {
	Color       string
	DoubleSided bool
}

// Mesh is a renderable object. A mesh is identified by its pointer.
type Mesh struct {
	Name          string
	Geometry      Geometry
	Material      Material
	Transform     math.Transform
	CastShadow    bool
	ReceiveShadow bool
}

// NewMesh creates a mesh at the origin with no rotation.
func NewMesh(name string, geometry Geometry, material Material) *Mesh {
	return &Mesh{
		Name:      name,
		Geometry:  geometry,
		Material:  material,
		Transform: math.At(math.Vec3{}),
	}
}
