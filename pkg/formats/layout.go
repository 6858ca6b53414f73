package formats

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Faultbox/maze-arena/pkg/math"
)

// Layout format errors.
var (
	ErrEmptyLayout     = errors.New("empty layout")
	ErrUnknownCellRune = errors.New("unknown layout cell")
	ErrMultipleFinish  = errors.New("layout has more than one finish")
)

// CellType is the content of one layout cell.
type CellType uint8

const (
	CellFloor  CellType = iota // '.' or ' '
	CellWall                   // '#'
	CellFinish                 // 'F', walkable
	CellSpawn                  // 'S', walkable
)

// String returns a human-readable cell type name.
func (t CellType) String() string {
	switch t {
	case CellFloor:
		return "Floor"
	case CellWall:
		return "Wall"
	case CellFinish:
		return "Finish"
	case CellSpawn:
		return "Spawn"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// IsWalkable returns true if a player may stand on the cell.
func (t CellType) IsWalkable() bool {
	return t != CellWall
}

// Layout is a parsed maze grid. Row 0 is the first line of text and maps to
// the most negative Z; column 0 maps to the most negative X.
type Layout struct {
	Width  int
	Height int
	Cells  []CellType
}

// GetCell returns the cell at column x, row y.
// Out of bounds coordinates report a wall.
func (l *Layout) GetCell(x, y int) CellType {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return CellWall
	}
	return l.Cells[y*l.Width+x]
}

// IsWalkable checks if the cell at (x, y) is walkable.
func (l *Layout) IsWalkable(x, y int) bool {
	return l.GetCell(x, y).IsWalkable()
}

// ParseLayout parses text rows. Shorter rows are padded with floor.
func ParseLayout(rows []string) (*Layout, error) {
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return nil, ErrEmptyLayout
	}

	width := 0
	for _, row := range rows {
		if n := len([]rune(row)); n > width {
			width = n
		}
	}

	l := &Layout{
		Width:  width,
		Height: len(rows),
		Cells:  make([]CellType, width*len(rows)),
	}
	finishes := 0
	for y, row := range rows {
		for x, r := range []rune(row) {
			cell, err := parseCell(r)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", y, x, err)
			}
			if cell == CellFinish {
				finishes++
				if finishes > 1 {
					return nil, fmt.Errorf("row %d col %d: %w", y, x, ErrMultipleFinish)
				}
			}
			l.Cells[y*width+x] = cell
		}
	}
	return l, nil
}

func parseCell(r rune) (CellType, error) {
	switch r {
	case '.', ' ':
		return CellFloor, nil
	case '#':
		return CellWall, nil
	case 'F', 'f':
		return CellFinish, nil
	case 'S', 's':
		return CellSpawn, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCellRune, r)
}

// ParseLayoutFile parses a layout file from disk.
func ParseLayoutFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout file: %w", err)
	}
	return ParseLayout(strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"))
}

// CountByType returns the count of cells for each type.
func (l *Layout) CountByType() map[CellType]int {
	counts := make(map[CellType]int)
	for _, c := range l.Cells {
		counts[c]++
	}
	return counts
}

// CellCenter returns the world position of a cell centre at height y, with
// the grid centred on the origin.
func (l *Layout) CellCenter(x, row int, cellSize, y float32) math.Vec3 {
	return math.Vec3{
		X: (float32(x) - float32(l.Width-1)/2) * cellSize,
		Y: y,
		Z: (float32(row) - float32(l.Height-1)/2) * cellSize,
	}
}

// Positions returns the centres of every cell of type t in row-major order.
func (l *Layout) Positions(t CellType, cellSize, y float32) []math.Vec3 {
	var out []math.Vec3
	for row := 0; row < l.Height; row++ {
		for x := 0; x < l.Width; x++ {
			if l.Cells[row*l.Width+x] == t {
				out = append(out, l.CellCenter(x, row, cellSize, y))
			}
		}
	}
	return out
}
