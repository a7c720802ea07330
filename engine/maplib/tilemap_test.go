package maplib

import (
	"path/filepath"
	"testing"

	"github.com/1siamBot/tankarena/engine/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGrid = Grid{Cols: 16, Rows: 16, Tile: 40}

func TestOverlapsUsesTileSizedOccupant(t *testing.T) {
	g := testGrid
	bullet := Box{X: 36, Y: 10, W: 8, H: 8}
	assert.True(t, g.Overlaps(bullet, Box{X: 0, Y: 0, W: 1, H: 1}), "occupant counts as a full tile")
	assert.False(t, g.Overlaps(Box{X: 40, Y: 0, W: 8, H: 8}, g.CellBox(0, 0)), "touching edges do not overlap")
	assert.True(t, g.Overlaps(Box{X: 39.5, Y: 0, W: 8, H: 8}, g.CellBox(0, 0)))
}

func TestContainsFailsClosed(t *testing.T) {
	g := testGrid
	assert.True(t, g.Contains(g.TileBox(0, 0)))
	assert.True(t, g.Contains(g.TileBox(600, 600)))
	assert.False(t, g.Contains(g.TileBox(-0.5, 10)))
	assert.False(t, g.Contains(g.TileBox(600.5, 10)))
}

func TestTerrainTable(t *testing.T) {
	cases := []struct {
		tt        TerrainType
		passable  bool
		stopsShot bool
		reaction  ShotReaction
	}{
		{TerrainSteel, false, true, ReactAbsorbKeep},
		{TerrainBrick, false, true, ReactAbsorbRemove},
		{TerrainConcrete, false, true, ReactAbsorbKeep},
		{TerrainWater, false, true, ReactAbsorbKeep},
		{TerrainForest, true, false, ReactChanceRemovePass},
	}
	for _, c := range cases {
		t.Run(c.tt.String(), func(t *testing.T) {
			p := Props(c.tt)
			assert.Equal(t, c.passable, p.Passable)
			assert.Equal(t, c.stopsShot, p.StopsShot)
			assert.Equal(t, c.reaction, p.Reaction)
		})
	}
}

func TestShotReactions(t *testing.T) {
	tm := NewTileMap("t", testGrid)
	tm.At(2, 2).Terrain = TerrainBrick
	tm.At(3, 2).Terrain = TerrainSteel
	tm.At(4, 2).Terrain = TerrainWater
	tm.At(5, 2).Terrain = TerrainForest
	tm.At(6, 2).Terrain = TerrainForest

	r, consumed := tm.Shot(2, 2, rng.NewScripted())
	assert.Equal(t, ReactAbsorbRemove, r)
	assert.True(t, consumed)
	assert.Equal(t, TerrainNone, tm.Terrain(2, 2))

	r, consumed = tm.Shot(3, 2, rng.NewScripted())
	assert.Equal(t, ReactAbsorbKeep, r)
	assert.True(t, consumed)
	assert.Equal(t, TerrainSteel, tm.Terrain(3, 2))

	_, consumed = tm.Shot(4, 2, rng.NewScripted())
	assert.True(t, consumed)
	assert.Equal(t, TerrainWater, tm.Terrain(4, 2))

	_, consumed = tm.Shot(5, 2, rng.NewScripted(0.29))
	assert.False(t, consumed)
	assert.Equal(t, TerrainNone, tm.Terrain(5, 2), "roll below 0.3 destroys forest")

	_, consumed = tm.Shot(6, 2, rng.NewScripted(0.3))
	assert.False(t, consumed)
	assert.Equal(t, TerrainForest, tm.Terrain(6, 2))
}

func TestBlockedIgnoresForest(t *testing.T) {
	tm := NewTileMap("t", testGrid)
	tm.At(3, 3).Terrain = TerrainForest
	tm.At(5, 3).Terrain = TerrainWater
	assert.False(t, tm.Blocked(testGrid.CellBox(3, 3)))
	assert.True(t, tm.Blocked(testGrid.CellBox(5, 3)))
	assert.True(t, tm.Blocked(testGrid.TileBox(4*40+1, 3*40)), "partial overlap blocks")
	assert.False(t, tm.Blocked(testGrid.TileBox(4*40, 3*40)))
}

func TestFirstHitRowMajor(t *testing.T) {
	tm := NewTileMap("t", testGrid)
	tm.At(3, 3).Terrain = TerrainBrick
	tm.At(4, 3).Terrain = TerrainSteel
	x, y, ok := tm.FirstHit(Box{X: 4*40 - 4, Y: 3*40 + 10, W: 8, H: 8})
	require.True(t, ok)
	assert.Equal(t, 3, x)
	assert.Equal(t, 3, y)

	x, _, ok = tm.FirstHit(Box{X: 4*40 - 4, Y: 3*40 + 10, W: 8, H: 8}, CellPos{X: 3, Y: 3})
	require.True(t, ok)
	assert.Equal(t, 4, x, "skipped cells are ignored")
}

func testParams(density float64) GenParams {
	return GenParams{
		Density: density,
		Weights: map[TerrainType]float64{
			TerrainBrick: 5, TerrainSteel: 1, TerrainConcrete: 1, TerrainWater: 1, TerrainForest: 2,
		},
		PlayerSpawn: CellPos{X: 4, Y: 14},
		EnemySpawns: []CellPos{{1, 1}, {7, 1}, {14, 1}},
		Base:        CellPos{X: 7, Y: 14},
	}
}

func TestGenerateBorderAndExclusions(t *testing.T) {
	tm := NewTileMap("t", testGrid)
	p := testParams(0.25)
	Generate(tm, p, rng.New(42))

	for x := 0; x < 16; x++ {
		for _, y := range []int{0, 15} {
			tile := tm.At(x, y)
			assert.Equal(t, TerrainSteel, tile.Terrain)
			assert.True(t, tile.Border)
		}
	}
	for y := 0; y < 16; y++ {
		assert.Equal(t, TerrainSteel, tm.Terrain(0, y))
		assert.Equal(t, TerrainSteel, tm.Terrain(15, y))
	}

	ring := map[CellPos]bool{}
	for _, c := range p.BaseRing() {
		ring[c] = true
	}
	for y := 1; y < 15; y++ {
		for x := 1; x < 15; x++ {
			if ring[CellPos{x, y}] {
				assert.Equal(t, TerrainBrick, tm.Terrain(x, y), "base ring at %d,%d", x, y)
				continue
			}
			if p.Excluded(x, y) {
				assert.Equal(t, TerrainNone, tm.Terrain(x, y), "excluded cell %d,%d", x, y)
			}
		}
	}
	assert.Equal(t, TerrainNone, tm.Terrain(7, 14), "base cell stays empty")
}

func TestGenerateReachesDensity(t *testing.T) {
	tm := NewTileMap("t", testGrid)
	p := testParams(0.2)
	Generate(tm, p, rng.New(1))

	interior := 0
	for y := 1; y < 15; y++ {
		for x := 1; x < 15; x++ {
			if tm.Terrain(x, y) == TerrainNone {
				continue
			}
			isRing := false
			for _, c := range p.BaseRing() {
				if c.X == x && c.Y == y {
					isRing = true
				}
			}
			if !isRing {
				interior++
			}
		}
	}
	assert.Equal(t, 39, interior, "round(0.2 * 196)")
}

func TestGenerateRingClippedInsideBorder(t *testing.T) {
	tm := NewTileMap("t", testGrid)
	p := testParams(0)
	p.Base = CellPos{X: 7, Y: 14}
	Generate(tm, p, rng.New(3))
	assert.True(t, tm.At(7, 15).Border, "row below base stays border steel")
	assert.Equal(t, TerrainBrick, tm.Terrain(6, 13))
	assert.Equal(t, TerrainBrick, tm.Terrain(8, 14))
}

func TestSaveLoadJSON(t *testing.T) {
	tm := NewTileMap("lvl", testGrid)
	Generate(tm, testParams(0.1), rng.New(9))
	path := filepath.Join(t.TempDir(), "map.json")
	require.NoError(t, tm.SaveJSON(path))

	got, err := LoadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, tm.Cells(), got.Cells())
	assert.Equal(t, tm.Grid, got.Grid)
}
