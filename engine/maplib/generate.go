package maplib

import (
	"math"

	"github.com/1siamBot/tankarena/engine/rng"
)

// CellPos is an integer cell coordinate
type CellPos struct {
	X, Y int
}

// GenParams controls level terrain generation
type GenParams struct {
	Density     float64                 // target fraction of interior cells holding terrain
	Weights     map[TerrainType]float64 // relative weight per placeable type
	PlayerSpawn CellPos
	EnemySpawns []CellPos
	Base        CellPos
}

// maxAttemptsPerCell bounds the scatter loop when exclusion zones leave
// fewer free cells than the density asks for.
const maxAttemptsPerCell = 20

// Generate fills tm with a fresh level: steel border, weighted random
// scatter up to the target density outside the exclusion zones, then a
// brick ring around the base clipped to the inside of the border.
func Generate(tm *TileMap, p GenParams, src rng.Source) {
	for i := range tm.Tiles {
		tm.Tiles[i] = Tile{}
	}
	cols, rows := tm.Grid.Cols, tm.Grid.Rows

	for x := 0; x < cols; x++ {
		tm.setBorder(x, 0)
		tm.setBorder(x, rows-1)
	}
	for y := 1; y < rows-1; y++ {
		tm.setBorder(0, y)
		tm.setBorder(cols-1, y)
	}

	interior := (cols - 2) * (rows - 2)
	target := int(math.Round(p.Density * float64(interior)))
	weights := make([]float64, len(Placeable))
	for i, tt := range Placeable {
		weights[i] = p.Weights[tt]
	}

	placed := 0
	for attempts := 0; placed < target && attempts < target*maxAttemptsPerCell; attempts++ {
		x := 1 + src.Intn(cols-2)
		y := 1 + src.Intn(rows-2)
		if p.Excluded(x, y) || tm.Terrain(x, y) != TerrainNone {
			continue
		}
		idx := rng.Pick(src, weights)
		if idx < 0 {
			break
		}
		tm.At(x, y).Terrain = Placeable[idx]
		placed++
	}

	for _, c := range p.BaseRing() {
		if c.X <= 0 || c.Y <= 0 || c.X >= cols-1 || c.Y >= rows-1 {
			continue
		}
		tm.At(c.X, c.Y).Terrain = TerrainBrick
	}
}

func (tm *TileMap) setBorder(x, y int) {
	if t := tm.At(x, y); t != nil {
		t.Terrain = TerrainSteel
		t.Border = true
	}
}

// Excluded reports whether random terrain may not be placed at (x, y):
// the player spawn column and neighborhood, every enemy spawn neighborhood,
// and the base with its perimeter.
func (p GenParams) Excluded(x, y int) bool {
	if x == p.PlayerSpawn.X || near(x, y, p.PlayerSpawn) {
		return true
	}
	for _, s := range p.EnemySpawns {
		if near(x, y, s) {
			return true
		}
	}
	return near(x, y, p.Base)
}

// BaseRing returns the eight cells around the base, unclipped.
func (p GenParams) BaseRing() []CellPos {
	ring := make([]CellPos, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			ring = append(ring, CellPos{X: p.Base.X + dx, Y: p.Base.Y + dy})
		}
	}
	return ring
}

func near(x, y int, c CellPos) bool {
	return abs(x-c.X) <= 1 && abs(y-c.Y) <= 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
