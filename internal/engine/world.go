package engine

import (
	"fmt"

	"github.com/harbdog/raycaster-go/geom"
)

// -- world map

// cell code 0 is passable, any other code selects a wall texture variant
const cellEmpty = 0

type SpawnPose struct {
	X, Y  float64
	Angle float64
}

type EnemyDef struct {
	Base    geom.Vector2
	Patrol  geom.Vector2
	Speed   float64
	Phase   float64
	Variant int
}

// WorldDef is the static world configuration: rows of fixed-width digit
// cell codes, the player spawn pose and the enemy definitions.
type WorldDef struct {
	Rows    []string
	Spawn   SpawnPose
	Enemies []EnemyDef
}

type World struct {
	cells   [][]int
	width   int
	height  int
	spawn   SpawnPose
	enemies []EnemyDef
}

// NewWorld validates def and builds an immutable grid. Malformed maps are
// rejected here rather than discovered mid-traversal.
func NewWorld(def WorldDef) (*World, error) {
	if len(def.Rows) < 3 {
		return nil, fmt.Errorf("world: need at least 3 rows, got %d", len(def.Rows))
	}

	height := len(def.Rows)
	width := len(def.Rows[0])
	if width < 3 {
		return nil, fmt.Errorf("world: need at least 3 columns, got %d", width)
	}

	cells := make([][]int, height)
	for y, row := range def.Rows {
		if len(row) != width {
			return nil, fmt.Errorf("world: row %d has width %d, want %d", y, len(row), width)
		}
		cells[y] = make([]int, width)
		for x, r := range row {
			if r < '0' || r > '9' {
				return nil, fmt.Errorf("world: row %d col %d: invalid cell code %q", y, x, r)
			}
			cells[y][x] = int(r - '0')
		}
	}

	// border cells must be walls so rays and movers cannot escape the grid
	for x := 0; x < width; x++ {
		if cells[0][x] == cellEmpty || cells[height-1][x] == cellEmpty {
			return nil, fmt.Errorf("world: border cell at column %d is not a wall", x)
		}
	}
	for y := 0; y < height; y++ {
		if cells[y][0] == cellEmpty || cells[y][width-1] == cellEmpty {
			return nil, fmt.Errorf("world: border cell at row %d is not a wall", y)
		}
	}

	w := &World{
		cells:   cells,
		width:   width,
		height:  height,
		spawn:   def.Spawn,
		enemies: append([]EnemyDef(nil), def.Enemies...),
	}

	if w.IsWall(int(def.Spawn.X), int(def.Spawn.Y)) {
		return nil, fmt.Errorf("world: spawn pose (%.1f, %.1f) is inside a wall", def.Spawn.X, def.Spawn.Y)
	}

	for i, e := range def.Enemies {
		if w.IsWall(int(e.Base.X), int(e.Base.Y)) {
			return nil, fmt.Errorf("world: enemy %d base (%.1f, %.1f) is inside a wall", i, e.Base.X, e.Base.Y)
		}
		endX, endY := e.Base.X+e.Patrol.X, e.Base.Y+e.Patrol.Y
		if endX < 0 || endY < 0 || int(endX) >= width || int(endY) >= height {
			return nil, fmt.Errorf("world: enemy %d patrol endpoint (%.1f, %.1f) out of bounds", i, endX, endY)
		}
	}

	return w, nil
}

func (w *World) Width() int  { return w.width }
func (w *World) Height() int { return w.height }

func (w *World) Spawn() SpawnPose { return w.spawn }

func (w *World) EnemyDefs() []EnemyDef { return w.enemies }

// CellAt returns the cell code at the given grid coordinates.
// Out-of-bounds coordinates read as a plain wall.
func (w *World) CellAt(x, y int) int {
	if x < 0 || y < 0 || x >= w.width || y >= w.height {
		return 1
	}
	return w.cells[y][x]
}

func (w *World) IsWall(x, y int) bool {
	return w.CellAt(x, y) != cellEmpty
}
