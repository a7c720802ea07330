package wave

import (
	"fmt"
	"math"
	"time"

	"github.com/1siamBot/tankarena/engine/core"
	"github.com/1siamBot/tankarena/engine/maplib"
)

// LevelConfig is derived once on level entry and left alone until the next
// transition.
type LevelConfig struct {
	Level         int
	Quota         int // enemies to spawn over the level
	FieldCap      int // max enemies alive at once
	SpawnInterval time.Duration
	Density       float64
	DropChance    float64

	// ArchetypeWeights is indexed by core.Archetype
	ArchetypeWeights [4]float64
	TerrainWeights   map[maplib.TerrainType]float64
}

// Goal is the one-line objective shown on the HUD
func (c LevelConfig) Goal() string {
	return fmt.Sprintf("Destroy %d tanks and keep the base standing", c.Quota)
}

func terrainWeights(steel, brick, concrete, water, forest float64) map[maplib.TerrainType]float64 {
	return map[maplib.TerrainType]float64{
		maplib.TerrainSteel:    steel,
		maplib.TerrainBrick:    brick,
		maplib.TerrainConcrete: concrete,
		maplib.TerrainWater:    water,
		maplib.TerrainForest:   forest,
	}
}

// levels are the authored entries; everything past the last is extrapolated.
var levels = []LevelConfig{
	{
		Level: 1, Quota: 5, FieldCap: 3, SpawnInterval: 2000 * time.Millisecond,
		Density: 0.12, DropChance: 0.2,
		ArchetypeWeights: [4]float64{1, 0, 0, 0},
		TerrainWeights:   terrainWeights(0.1, 0.6, 0.1, 0.1, 0.1),
	},
	{
		Level: 2, Quota: 7, FieldCap: 3, SpawnInterval: 1900 * time.Millisecond,
		Density: 0.14, DropChance: 0.22,
		ArchetypeWeights: [4]float64{0.7, 0.3, 0, 0},
		TerrainWeights:   terrainWeights(0.15, 0.5, 0.1, 0.1, 0.15),
	},
	{
		Level: 3, Quota: 9, FieldCap: 4, SpawnInterval: 1800 * time.Millisecond,
		Density: 0.16, DropChance: 0.25,
		ArchetypeWeights: [4]float64{0.5, 0.3, 0.2, 0},
		TerrainWeights:   terrainWeights(0.15, 0.45, 0.15, 0.1, 0.15),
	},
	{
		Level: 4, Quota: 11, FieldCap: 4, SpawnInterval: 1600 * time.Millisecond,
		Density: 0.18, DropChance: 0.25,
		ArchetypeWeights: [4]float64{0.4, 0.3, 0.2, 0.1},
		TerrainWeights:   terrainWeights(0.2, 0.4, 0.15, 0.1, 0.15),
	},
	{
		Level: 5, Quota: 14, FieldCap: 5, SpawnInterval: 1500 * time.Millisecond,
		Density: 0.20, DropChance: 0.3,
		ArchetypeWeights: [4]float64{0.25, 0.3, 0.25, 0.2},
		TerrainWeights:   terrainWeights(0.2, 0.35, 0.15, 0.15, 0.15),
	},
}

// Limits on the extrapolated levels
const (
	maxFieldCap       = 6
	minSpawnInterval  = 600 * time.Millisecond
	maxDensity        = 0.30
	maxDropChance     = 0.5
	quotaPerLevel     = 3
	intervalPerLevel  = 100 * time.Millisecond
	densityPerLevel   = 0.01
	dropPerLevel      = 0.02
	armorWeightPerLvl = 0.05
	powerWeightPerLvl = 0.03
)

// AuthoredLevels returns how many levels come from the table
func AuthoredLevels() int { return len(levels) }

// ConfigFor returns the configuration of the given 1-based level. Levels
// below 1 are treated as level 1.
func ConfigFor(level int) LevelConfig {
	if level < 1 {
		level = 1
	}
	if level <= len(levels) {
		return clone(levels[level-1])
	}

	last := levels[len(levels)-1]
	n := level - last.Level
	c := clone(last)
	c.Level = level
	c.Quota = last.Quota + quotaPerLevel*n
	c.FieldCap = min(last.FieldCap+n/2, maxFieldCap)
	c.SpawnInterval = max(last.SpawnInterval-intervalPerLevel*time.Duration(n), minSpawnInterval)
	c.Density = math.Min(last.Density+densityPerLevel*float64(n), maxDensity)
	c.DropChance = math.Min(last.DropChance+dropPerLevel*float64(n), maxDropChance)
	c.ArchetypeWeights[core.ArchArmor] += armorWeightPerLvl * float64(n)
	c.ArchetypeWeights[core.ArchPower] += powerWeightPerLvl * float64(n)
	return c
}

func clone(c LevelConfig) LevelConfig {
	tw := make(map[maplib.TerrainType]float64, len(c.TerrainWeights))
	for k, v := range c.TerrainWeights {
		tw[k] = v
	}
	c.TerrainWeights = tw
	return c
}
