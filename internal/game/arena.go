package game

import (
	"fmt"

	"github.com/Faultbox/maze-arena/internal/config"
	"github.com/Faultbox/maze-arena/pkg/formats"
	"github.com/Faultbox/maze-arena/pkg/math"
)

// Arena is the resolved static level: configured walls plus the walls of
// the layout grid, and the layout's spawn and finish cells if present.
type Arena struct {
	Walls  []math.Vec3
	Spawn  *math.Vec3
	Finish *math.Vec3
}

// LoadArena resolves the level section, reading the layout file if one is
// configured.
func LoadArena(cfg config.LevelConfig) (Arena, error) {
	arena := Arena{Walls: append([]math.Vec3(nil), cfg.Walls...)}

	var layout *formats.Layout
	var err error
	switch {
	case len(cfg.Layout) > 0:
		layout, err = formats.ParseLayout(cfg.Layout)
	case cfg.LayoutFile != "":
		layout, err = formats.ParseLayoutFile(cfg.LayoutFile)
	default:
		return arena, nil
	}
	if err != nil {
		return Arena{}, fmt.Errorf("level layout: %w", err)
	}

	size := cfg.CellSize
	if size <= 0 {
		size = 1
	}
	arena.Walls = append(arena.Walls, layout.Positions(formats.CellWall, size, cfg.WallHalfExtents.Y)...)
	if p := layout.Positions(formats.CellSpawn, size, 1); len(p) > 0 {
		arena.Spawn = &p[0]
	}
	if p := layout.Positions(formats.CellFinish, size, 0.01); len(p) > 0 {
		arena.Finish = &p[0]
	}
	return arena, nil
}
