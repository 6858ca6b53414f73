package debug

import (
	"testing"

	"github.com/Faultbox/maze-arena/internal/physics"
	"github.com/Faultbox/maze-arena/pkg/math"
)

func TestGenerateBBoxWireframeVertices(t *testing.T) {
	v := GenerateBBoxWireframeVertices(0, 0, 0, 1, 2, 3)
	if len(v) != BBoxWireframeVertexCount*3 {
		t.Fatalf("expected %d floats, got %d", BBoxWireframeVertexCount*3, len(v))
	}
	for i := 0; i < len(v); i += 3 {
		if (v[i] != 0 && v[i] != 1) || (v[i+1] != 0 && v[i+1] != 2) || (v[i+2] != 0 && v[i+2] != 3) {
			t.Fatalf("vertex %d = %v is not a box corner", i/3, v[i:i+3])
		}
	}
}

func TestWireframeObserver(t *testing.T) {
	w := physics.NewWorld(physics.Config{})
	w.AddBody(physics.NewBody(physics.BodyConfig{Kind: physics.Static, Shape: physics.Plane()}))
	w.AddBody(physics.NewBody(physics.BodyConfig{
		Kind:     physics.Static,
		Shape:    physics.Box(math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}),
		Position: math.Vec3{X: 1, Y: 1},
	}))
	w.AddBody(physics.NewBody(physics.BodyConfig{
		Kind:     physics.Dynamic,
		Mass:     1,
		Shape:    physics.Sphere(1),
		Position: math.Vec3{Z: 5},
	}))

	wf := NewWireframe(0)
	w.Attach(wf)
	w.Step(1.0 / 60)

	if wf.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", wf.Frames())
	}
	if wf.Boxes() != 2 {
		t.Fatalf("expected 2 boxes (plane skipped), got %d", wf.Boxes())
	}
	v := wf.Vertices()
	if len(v) != 2*BBoxWireframeVertexCount*3 {
		t.Fatalf("unexpected vertex count %d", len(v))
	}
	// First vertex of the wall box is its min corner.
	if v[0] != 0.5 || v[1] != 0.5 || v[2] != -0.5 {
		t.Errorf("unexpected min corner %v", v[:3])
	}

	w.Step(1.0 / 60)
	if len(wf.Vertices()) != len(v) {
		t.Error("vertices should be rebuilt, not appended")
	}
}
