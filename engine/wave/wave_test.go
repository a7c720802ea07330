package wave

import (
	"testing"
	"time"

	"github.com/1siamBot/tankarena/engine/core"
	"github.com/1siamBot/tankarena/engine/maplib"
	"github.com/1siamBot/tankarena/engine/rng"
	"github.com/1siamBot/tankarena/engine/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthoredLevels(t *testing.T) {
	c := ConfigFor(1)
	assert.Equal(t, 5, c.Quota)
	assert.Equal(t, 3, c.FieldCap)
	assert.Equal(t, 2*time.Second, c.SpawnInterval)
	assert.Equal(t, [4]float64{1, 0, 0, 0}, c.ArchetypeWeights)

	assert.Equal(t, 1, ConfigFor(0).Level)
	assert.Equal(t, 14, ConfigFor(AuthoredLevels()).Quota)
}

func TestExtrapolatedLevels(t *testing.T) {
	c := ConfigFor(6)
	assert.Equal(t, 6, c.Level)
	assert.Equal(t, 17, c.Quota)
	assert.Equal(t, 5, c.FieldCap)
	assert.Equal(t, 1400*time.Millisecond, c.SpawnInterval)
	assert.InDelta(t, 0.21, c.Density, 1e-9)
	assert.InDelta(t, 0.32, c.DropChance, 1e-9)
	assert.InDelta(t, 0.25, c.ArchetypeWeights[core.ArchArmor], 1e-9)
	assert.InDelta(t, 0.28, c.ArchetypeWeights[core.ArchPower], 1e-9)

	c = ConfigFor(10)
	assert.Equal(t, 29, c.Quota)
	assert.Equal(t, 6, c.FieldCap)
	assert.Equal(t, time.Second, c.SpawnInterval)

	c = ConfigFor(25)
	assert.Equal(t, 6, c.FieldCap)
	assert.Equal(t, 600*time.Millisecond, c.SpawnInterval)
	assert.InDelta(t, 0.30, c.Density, 1e-9)
	assert.InDelta(t, 0.5, c.DropChance, 1e-9)
}

func TestConfigForCopiesWeights(t *testing.T) {
	c := ConfigFor(2)
	c.TerrainWeights[maplib.TerrainBrick] = 99
	assert.NotEqual(t, 99.0, ConfigFor(2).TerrainWeights[maplib.TerrainBrick])
}

func newDirector(src rng.Source) (*core.World, *Director) {
	w := core.NewWorld(core.DefaultRules(), src, nil)
	d := NewDirector(w)
	w.AddSystem(d)
	return w, d
}

func TestEnterLevelBuildsField(t *testing.T) {
	w, d := newDirector(rng.New(7))
	d.EnterLevel(1)

	assert.Equal(t, StateActive, d.State)
	assert.True(t, w.Base.Alive)
	require.NotNil(t, w.Player)
	assert.True(t, w.Player.Alive)
	assert.True(t, w.Terrain.At(0, 0).Border)
	assert.Equal(t, 0.2, w.DropChance)

	require.Len(t, w.Enemies, 3, "initial burst fills the field cap")
	assert.Equal(t, 2, d.Remaining)
	assert.Equal(t, 40.0, w.Enemies[0].X)
	assert.Equal(t, 280.0, w.Enemies[1].X)
	assert.Equal(t, 560.0, w.Enemies[2].X)
	for _, e := range w.Enemies {
		assert.Equal(t, core.ArchBasic, e.Enemy.Archetype)
	}
}

func TestSpawnWaitsForInterval(t *testing.T) {
	w, d := newDirector(rng.New(7))
	d.EnterLevel(1)
	w.Enemies[0].Alive = false

	w.Tick(time.Second)
	assert.Equal(t, 2, w.LiveEnemies())
	assert.Equal(t, 2, d.Remaining)

	w.Tick(time.Second)
	assert.Equal(t, 3, w.LiveEnemies())
	assert.Equal(t, 1, d.Remaining)
}

func TestSpawnAdmission(t *testing.T) {
	w, d := newDirector(rng.NewScripted())
	d.Config = ConfigFor(1)
	d.Remaining = 5
	w.Player = w.NewPlayer()
	w.Player.X, w.Player.Y = w.Grid.CellOrigin(1, 3)

	x, y, ok := d.SpawnPoint()
	require.True(t, ok)
	assert.Equal(t, 280.0, x, "first point is too close to the player")
	assert.Equal(t, 40.0, y)

	w.Enemies = append(w.Enemies, w.NewEnemy(core.ArchBasic, 320, 80, core.DirDown))
	x, _, ok = d.SpawnPoint()
	require.True(t, ok)
	assert.Equal(t, 560.0, x, "second point is too close to a live enemy")

	w.Terrain.SetTerrain(14, 1, 14, 1, maplib.TerrainSteel)
	assert.False(t, d.TrySpawn())
	assert.Equal(t, 5, d.Remaining, "dropped attempt keeps the quota")
}

func TestSpawnStaggersFirstDecision(t *testing.T) {
	w, d := newDirector(rng.NewScripted(0, 0.5, 0, 0.25))
	d.Config = ConfigFor(1)
	d.Remaining = 5
	w.Player = w.NewPlayer()

	require.True(t, d.TrySpawn())
	require.True(t, d.TrySpawn())
	require.Len(t, w.Enemies, 2)
	base := core.ArchBasic.Def().DecideEvery
	assert.Equal(t, base+time.Second, w.Enemies[0].Enemy.DecideAfter)
	assert.Equal(t, base+500*time.Millisecond, w.Enemies[1].Enemy.DecideAfter)
}

func TestEmptyQuotaCompletesLevel(t *testing.T) {
	w, d := newDirector(rng.NewScripted())
	w.PlaceBase()
	w.Player = w.NewPlayer()
	d.Config = LevelConfig{Level: 1, FieldCap: 3, SpawnInterval: time.Second}
	d.Level = 1

	w.Tick(time.Second / 60)
	d.Evaluate()
	assert.Equal(t, StateLevelComplete, d.State)
	assert.True(t, w.Halted())
}

func TestFallenBaseEndsGameSameTick(t *testing.T) {
	w, d := newDirector(rng.New(1))
	d.EnterLevel(1)
	w.Base.Alive = false
	require.Equal(t, 3, w.Stats.Lives)

	w.Tick(time.Second / 60)
	d.Evaluate()
	assert.Equal(t, StateGameOver, d.State)
	assert.True(t, w.Halted())
}

func TestDeathRespawnsThenGameOver(t *testing.T) {
	w, d := newDirector(rng.New(3))
	d.EnterLevel(1)
	w.Stats.Lives = 2
	systems.ApplyBuff(w, core.PowerSpeed)
	old := w.Player
	old.Alive = false

	d.Evaluate()
	assert.Equal(t, StateActive, d.State)
	assert.Equal(t, 1, w.Stats.Lives)
	assert.NotSame(t, old, w.Player)
	assert.True(t, w.Player.Alive)
	assert.Equal(t, w.Rules.PlayerSpeed, w.Player.Speed)
	assert.False(t, w.Player.HasFired)
	assert.Nil(t, w.Buff)

	w.Player.Alive = false
	d.Evaluate()
	assert.Equal(t, StateGameOver, d.State)
	assert.Zero(t, w.Stats.Lives)
}

func TestAdvanceEntersNextLevel(t *testing.T) {
	w, d := newDirector(rng.New(5))
	d.EnterLevel(1)
	assert.False(t, d.Advance(), "only from level complete")

	w.Enemies = nil
	d.Remaining = 0
	d.Evaluate()
	require.Equal(t, StateLevelComplete, d.State)

	require.True(t, d.Advance())
	assert.Equal(t, 2, d.Level)
	assert.Equal(t, StateActive, d.State)
	assert.False(t, w.Halted())
	assert.Equal(t, 7-len(w.Enemies), d.Remaining)
	assert.Equal(t, 2, w.Terrain.Level)
}
