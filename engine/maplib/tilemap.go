package maplib

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/1siamBot/tankarena/engine/rng"
)

// TerrainType defines the terrain of a tile
type TerrainType uint8

const (
	TerrainNone TerrainType = iota
	TerrainSteel
	TerrainBrick
	TerrainConcrete
	TerrainWater
	TerrainForest
	terrainCount
)

// Placeable lists every terrain type the generator may scatter, in weight order.
var Placeable = []TerrainType{TerrainSteel, TerrainBrick, TerrainConcrete, TerrainWater, TerrainForest}

// ShotReaction is what a terrain cell does when a projectile hits it
type ShotReaction uint8

const (
	ReactNone             ShotReaction = iota // empty cell
	ReactAbsorbRemove                         // projectile consumed, cell destroyed
	ReactAbsorbKeep                           // projectile consumed, cell kept
	ReactPassThrough                          // projectile continues, cell kept
	ReactChanceRemovePass                     // projectile continues, cell maybe destroyed
)

// TerrainProps is one row of the terrain behaviour table
type TerrainProps struct {
	Name          string
	Passable      bool         // actors may occupy the cell
	StopsShot     bool         // projectile consumed on hit
	Reaction      ShotReaction // what happens to the cell
	DestroyChance float64      // only for ReactChanceRemovePass
}

// terrainTable is indexed by TerrainType. A new type fails to compile until
// its row is added here.
var terrainTable = [terrainCount]TerrainProps{
	TerrainNone:     {Name: "Empty", Passable: true, Reaction: ReactNone},
	TerrainSteel:    {Name: "Steel", StopsShot: true, Reaction: ReactAbsorbKeep},
	TerrainBrick:    {Name: "Brick", StopsShot: true, Reaction: ReactAbsorbRemove},
	TerrainConcrete: {Name: "Concrete", StopsShot: true, Reaction: ReactAbsorbKeep},
	TerrainWater:    {Name: "Water", StopsShot: true, Reaction: ReactAbsorbKeep},
	TerrainForest:   {Name: "Forest", Passable: true, Reaction: ReactChanceRemovePass, DestroyChance: 0.3},
}

// Props returns the behaviour row for a terrain type
func Props(t TerrainType) TerrainProps {
	if int(t) >= len(terrainTable) {
		return terrainTable[TerrainNone]
	}
	return terrainTable[t]
}

func (t TerrainType) String() string { return Props(t).Name }

// Tile represents a single map tile
type Tile struct {
	Terrain TerrainType `json:"terrain"`
	Border  bool        `json:"border,omitempty"`
}

// TileMap represents the per-cell terrain state
type TileMap struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	Grid  Grid   `json:"grid"`
	Tiles []Tile `json:"tiles"`
}

// Cell is a non-empty terrain cell, as exposed to renderers
type Cell struct {
	X, Y    int
	Terrain TerrainType
}

// NewTileMap creates a new empty map
func NewTileMap(name string, g Grid) *TileMap {
	return &TileMap{
		Name:  name,
		Grid:  g,
		Tiles: make([]Tile, g.Cols*g.Rows),
	}
}

// At returns a pointer to the tile at (x, y)
func (tm *TileMap) At(x, y int) *Tile {
	if !tm.InBounds(x, y) {
		return nil
	}
	return &tm.Tiles[y*tm.Grid.Cols+x]
}

// InBounds checks if coordinates are within map bounds
func (tm *TileMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < tm.Grid.Cols && y < tm.Grid.Rows
}

// Terrain returns the terrain at (x, y); out of bounds reads as empty.
func (tm *TileMap) Terrain(x, y int) TerrainType {
	if t := tm.At(x, y); t != nil {
		return t.Terrain
	}
	return TerrainNone
}

// SetTerrain sets terrain for a rectangular region
func (tm *TileMap) SetTerrain(x1, y1, x2, y2 int, terrain TerrainType) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if t := tm.At(x, y); t != nil {
				t.Terrain = terrain
			}
		}
	}
}

// Clear removes the terrain at (x, y). Border cells are indestructible.
func (tm *TileMap) Clear(x, y int) bool {
	t := tm.At(x, y)
	if t == nil || t.Border || t.Terrain == TerrainNone {
		return false
	}
	t.Terrain = TerrainNone
	return true
}

// Blocked reports whether b overlaps any cell that actors cannot enter.
func (tm *TileMap) Blocked(b Box) bool {
	x0, y0, x1, y1 := tm.Grid.CellSpan(b)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			tt := tm.Terrain(x, y)
			if tt == TerrainNone || Props(tt).Passable {
				continue
			}
			if tm.Grid.Overlaps(b, tm.Grid.CellBox(x, y)) {
				return true
			}
		}
	}
	return false
}

// FirstHit returns the first non-empty cell overlapped by b in row-major
// order, ignoring the cells listed in skip.
func (tm *TileMap) FirstHit(b Box, skip ...CellPos) (x, y int, ok bool) {
	x0, y0, x1, y1 := tm.Grid.CellSpan(b)
	for cy := y0; cy <= y1; cy++ {
	cells:
		for cx := x0; cx <= x1; cx++ {
			if tm.Terrain(cx, cy) == TerrainNone {
				continue
			}
			for _, c := range skip {
				if c.X == cx && c.Y == cy {
					continue cells
				}
			}
			if tm.Grid.Overlaps(b, tm.Grid.CellBox(cx, cy)) {
				return cx, cy, true
			}
		}
	}
	return 0, 0, false
}

// Shot applies a projectile hit to cell (x, y). It returns the reaction
// that fired and whether the projectile is consumed. src is only drawn
// from for probabilistic reactions.
func (tm *TileMap) Shot(x, y int, src rng.Source) (ShotReaction, bool) {
	t := tm.At(x, y)
	if t == nil || t.Terrain == TerrainNone {
		return ReactNone, false
	}
	p := Props(t.Terrain)
	switch p.Reaction {
	case ReactAbsorbRemove:
		tm.Clear(x, y)
	case ReactChanceRemovePass:
		if src.Float64() < p.DestroyChance {
			tm.Clear(x, y)
		}
	}
	return p.Reaction, p.StopsShot
}

// Cells lists every non-empty cell in row-major order
func (tm *TileMap) Cells() []Cell {
	var out []Cell
	for y := 0; y < tm.Grid.Rows; y++ {
		for x := 0; x < tm.Grid.Cols; x++ {
			if tt := tm.Terrain(x, y); tt != TerrainNone {
				out = append(out, Cell{X: x, Y: y, Terrain: tt})
			}
		}
	}
	return out
}

// Count returns how many cells hold the given terrain
func (tm *TileMap) Count(tt TerrainType) int {
	n := 0
	for _, t := range tm.Tiles {
		if t.Terrain == tt {
			n++
		}
	}
	return n
}

// SaveJSON saves the map to a JSON file
func (tm *TileMap) SaveJSON(path string) error {
	data, err := json.MarshalIndent(tm, "", "  ")
	if err != nil {
		return fmt.Errorf("encode map: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJSON loads a map from a JSON file
func LoadJSON(path string) (*TileMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tm TileMap
	if err := json.Unmarshal(data, &tm); err != nil {
		return nil, fmt.Errorf("decode map %s: %w", path, err)
	}
	if len(tm.Tiles) != tm.Grid.Cols*tm.Grid.Rows {
		return nil, fmt.Errorf("decode map %s: %d tiles for %dx%d grid", path, len(tm.Tiles), tm.Grid.Cols, tm.Grid.Rows)
	}
	return &tm, nil
}
