package entity

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/maze-arena/internal/logger"
	"github.com/Faultbox/maze-arena/pkg/math"
)

// PositionUpdate is a teleport for one player.
type PositionUpdate struct {
	ID       string
	Position math.Vec3
}

// Registry tracks remote players by id. An id maps to at most one entry.
type Registry struct {
	spawner *Spawner
	entries map[string]*PlayerEntry
}

// NewRegistry creates an empty registry spawning through s.
func NewRegistry(s *Spawner) *Registry {
	return &Registry{
		spawner: s,
		entries: make(map[string]*PlayerEntry),
	}
}

// Upsert inserts a player or, for a known id, teleports the existing body
// and recolors its mesh. Reports whether a new entry was created.
func (r *Registry) Upsert(id string, t math.Transform, color string) (*PlayerEntry, bool) {
	if p, ok := r.entries[id]; ok {
		logger.Debug("duplicate join, updating existing player", zap.String("id", id))
		p.Body.Position = t.Position
		p.Mesh.Material.Color = color
		return p, false
	}

	p := r.spawner.Spawn(id, t, color)
	r.entries[id] = p
	logger.Debug("remote player added", zap.String("id", id), zap.Int("count", len(r.entries)))
	return p, true
}

// ApplyPositions overwrites body positions for known ids. Orientation and
// velocity are left alone. Returns how many entries were updated.
func (r *Registry) ApplyPositions(updates []PositionUpdate) int {
	applied := 0
	for _, u := range updates {
		p, ok := r.entries[u.ID]
		if !ok {
			continue
		}
		p.Body.Position = u.Position
		applied++
	}
	return applied
}

// Remove despawns the player with the given id. Unknown ids are ignored.
func (r *Registry) Remove(id string) bool {
	p, ok := r.entries[id]
	if !ok {
		return false
	}
	r.spawner.Despawn(p)
	delete(r.entries, id)
	logger.Debug("remote player removed", zap.String("id", id), zap.Int("count", len(r.entries)))
	return true
}

// Get returns the entry for id.
func (r *Registry) Get(id string) (*PlayerEntry, bool) {
	p, ok := r.entries[id]
	return p, ok
}

// Len returns the number of remote players.
func (r *Registry) Len() int {
	return len(r.entries)
}

// All returns the entries sorted by id.
func (r *Registry) All() []*PlayerEntry {
	out := make([]*PlayerEntry, 0, len(r.entries))
	for _, p := range r.entries {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
