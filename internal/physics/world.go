package physics

import (
	stdmath "math"

	"github.com/Faultbox/maze-arena/pkg/math"
)

// Config holds world-wide simulation parameters.
type Config struct {
	Gravity       math.Vec3
	LinearDamping float32 // fraction of velocity lost per second
}

// DefaultConfig returns Earth-like gravity with light damping.
func DefaultConfig() Config {
	return Config{
		Gravity:       math.Vec3{X: 0, Y: -9.82, Z: 0},
		LinearDamping: 0.01,
	}
}

// Observer is notified after every Step. Used for debug visualisation.
type Observer interface {
	AfterStep(w *World)
}

// World owns a set of rigid bodies and advances them in fixed steps.
// It is not safe for concurrent use.
type World struct {
	config    Config
	bodies    []*Body
	index     map[BodyID]int
	nextID    BodyID
	observers []Observer
	steps     uint64
}

// NewWorld creates an empty world.
func NewWorld(cfg Config) *World {
	return &World{
		config: cfg,
		index:  make(map[BodyID]int),
	}
}

// Gravity returns the configured gravity vector.
func (w *World) Gravity() math.Vec3 {
	return w.config.Gravity
}

// AddBody takes ownership of b and returns its handle.
func (w *World) AddBody(b *Body) BodyID {
	w.nextID++
	b.ID = w.nextID
	w.index[b.ID] = len(w.bodies)
	w.bodies = append(w.bodies, b)
	return b.ID
}

// RemoveBody removes the body with the given handle. Unknown handles are ignored.
func (w *World) RemoveBody(id BodyID) {
	i, ok := w.index[id]
	if !ok {
		return
	}
	delete(w.index, id)
	w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
	for j := i; j < len(w.bodies); j++ {
		w.index[w.bodies[j].ID] = j
	}
}

// Bodies returns the bodies in insertion order.
func (w *World) Bodies() []*Body {
	out := make([]*Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// BodiesTagged returns every body carrying tag.
func (w *World) BodiesTagged(tag string) []*Body {
	var out []*Body
	for _, b := range w.bodies {
		if b.Tag == tag {
			out = append(out, b)
		}
	}
	return out
}

// Count returns the number of bodies.
func (w *World) Count() int {
	return len(w.bodies)
}

// Steps returns how many times Step has run.
func (w *World) Steps() uint64 {
	return w.steps
}

// Attach registers an observer.
func (w *World) Attach(o Observer) {
	w.observers = append(w.observers, o)
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}

	damping := float32(stdmath.Pow(float64(1-w.config.LinearDamping), float64(dt)))
	for _, b := range w.bodies {
		if b.Kind != Dynamic {
			continue
		}
		b.Velocity = b.Velocity.Add(w.config.Gravity.Scale(dt)).Scale(damping)
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
	}

	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			a, b := w.bodies[i], w.bodies[j]
			if a.Kind == Static && b.Kind == Static {
				continue
			}
			if !collides(a, b) {
				continue
			}
			if c, ok := findContact(a, b); ok {
				c.resolve()
			}
		}
	}

	w.steps++
	for _, o := range w.observers {
		o.AfterStep(w)
	}
}
