package debug

import (
	"github.com/Faultbox/maze-arena/internal/physics"
)

// Wireframe rebuilds line vertices for every finite body after each physics
// step. Attach it with World.Attach.
type Wireframe struct {
	// Padding grows every box on all sides.
	Padding  float32
	vertices []float32
	boxes    int
	frames   uint64
}

// NewWireframe creates an empty wireframe.
func NewWireframe(padding float32) *Wireframe {
	return &Wireframe{Padding: padding}
}

// AfterStep implements physics.Observer.
func (wf *Wireframe) AfterStep(w *physics.World) {
	wf.vertices = wf.vertices[:0]
	wf.boxes = 0
	for _, b := range w.Bodies() {
		if b.Shape.Type == physics.ShapePlane {
			continue
		}
		e := b.Shape.Extent()
		p := b.Position
		pad := wf.Padding
		wf.vertices = appendBBox(wf.vertices,
			p.X-e.X-pad, p.Y-e.Y-pad, p.Z-e.Z-pad,
			p.X+e.X+pad, p.Y+e.Y+pad, p.Z+e.Z+pad)
		wf.boxes++
	}
	wf.frames++
}

// Vertices returns the line list from the last step, three floats per
// vertex. The slice is reused by the next step.
func (wf *Wireframe) Vertices() []float32 {
	return wf.vertices
}

// Boxes returns how many boxes the last step produced.
func (wf *Wireframe) Boxes() int {
	return wf.boxes
}

// Frames returns how many steps have been observed.
func (wf *Wireframe) Frames() uint64 {
	return wf.frames
}
