package wave

import (
	"time"

	"github.com/1siamBot/tankarena/engine/core"
	"github.com/1siamBot/tankarena/engine/maplib"
	"github.com/1siamBot/tankarena/engine/rng"
	"github.com/1siamBot/tankarena/engine/systems"
)

// State is the director's progression state
type State uint8

const (
	StateActive State = iota
	StateLevelComplete
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateLevelComplete:
		return "level-complete"
	case StateGameOver:
		return "game-over"
	}
	return "unknown"
}

// Director owns level progression: it admits spawns during the tick and
// decides win/loss once the tick is over.
type Director struct {
	World     *core.World
	Config    LevelConfig
	Level     int
	State     State
	Remaining int // quota not yet spawned

	lastAttempt time.Duration
}

// NewDirector creates a director bound to w. Call EnterLevel to start.
func NewDirector(w *core.World) *Director {
	return &Director{World: w}
}

// Priority runs spawn admission ahead of every other system
func (d *Director) Priority() int { return 5 }

// Update makes at most one spawn attempt per spawn interval while the
// field has room and quota is left. A failed attempt waits for the next
// interval.
func (d *Director) Update(w *core.World) {
	if d.State != StateActive {
		return
	}
	if w.LiveEnemies() >= d.Config.FieldCap || d.Remaining <= 0 {
		return
	}
	if w.Now-d.lastAttempt < d.Config.SpawnInterval {
		return
	}
	d.lastAttempt = w.Now
	d.TrySpawn()
}

// EnterLevel rebuilds the field for level: fresh configuration, terrain,
// base and player position, then an initial burst up to the field cap.
func (d *Director) EnterLevel(level int) {
	w := d.World
	d.Level = level
	d.Config = ConfigFor(level)
	d.State = StateActive
	d.Remaining = d.Config.Quota
	d.lastAttempt = w.Now

	w.ResetLevel()
	w.DropChance = d.Config.DropChance
	maplib.Generate(w.Terrain, d.genParams(), w.Rand)
	w.Terrain.Level = level
	w.PlaceBase()
	d.placePlayer()

	for w.LiveEnemies() < d.Config.FieldCap && d.Remaining > 0 {
		if !d.TrySpawn() {
			break
		}
	}
	w.Emit(core.EvtLevelStarted, level)
}

func (d *Director) genParams() maplib.GenParams {
	r := d.World.Rules
	return maplib.GenParams{
		Density:     d.Config.Density,
		Weights:     d.Config.TerrainWeights,
		PlayerSpawn: r.PlayerSpawn,
		EnemySpawns: r.EnemySpawns,
		Base:        r.BaseCell,
	}
}

// placePlayer returns the player to the spawn cell. A surviving player
// keeps its buff; a missing one is created.
func (d *Director) placePlayer() {
	w := d.World
	if w.Player == nil || !w.Player.Alive {
		systems.RevertBuff(w)
		w.Player = w.NewPlayer()
		return
	}
	x, y := w.Grid.CellOrigin(w.Rules.PlayerSpawn.X, w.Rules.PlayerSpawn.Y)
	w.Player.X, w.Player.Y = x, y
	w.Player.Facing = core.DirUp
}

// SpawnPoint returns the first admissible spawn point in fixed order.
func (d *Director) SpawnPoint() (float64, float64, bool) {
	w := d.World
	probe := &core.Actor{Faction: core.FactionEnemy}
	minPlayer := w.Rules.SpawnFromPlayer * w.Grid.Tile
	minEnemy := w.Rules.SpawnFromEnemy * w.Grid.Tile

	for _, sp := range w.Rules.EnemySpawns {
		x, y := w.Grid.CellOrigin(sp.X, sp.Y)
		if !systems.CanMoveTo(w, probe, x, y) {
			continue
		}
		cx, cy := x+w.Grid.Tile/2, y+w.Grid.Tile/2
		if w.PlayerAlive() {
			px, py := w.Player.Center(w.Grid)
			if maplib.Distance(cx, cy, px, py) < minPlayer {
				continue
			}
		}
		ok := true
		for _, e := range w.Enemies {
			if !e.Alive {
				continue
			}
			ex, ey := e.Center(w.Grid)
			if maplib.Distance(cx, cy, ex, ey) < minEnemy {
				ok = false
				break
			}
		}
		if ok {
			return x, y, true
		}
	}
	return 0, 0, false
}

// TrySpawn admits one enemy if a spawn point is free. The archetype is
// drawn from the level's weights.
func (d *Director) TrySpawn() bool {
	if d.Remaining <= 0 {
		return false
	}
	x, y, ok := d.SpawnPoint()
	if !ok {
		return false
	}
	w := d.World
	idx := rng.Pick(w.Rand, d.Config.ArchetypeWeights[:])
	if idx < 0 {
		idx = int(core.ArchBasic)
	}
	e := w.NewEnemy(core.Archetypes[idx], x, y, core.DirDown)
	e.Enemy.DecideAfter += w.DecideJitter()
	w.Enemies = append(w.Enemies, e)
	d.Remaining--
	w.Emit(core.EvtEnemySpawned, core.ActorEvent{Actor: e})
	return true
}

// Evaluate runs after each tick. The base check comes first so a fallen
// base ends the game no matter how many lives are left.
func (d *Director) Evaluate() {
	if d.State != StateActive {
		return
	}
	w := d.World

	if !w.Base.Alive {
		d.gameOver()
		return
	}

	if w.Player != nil && !w.Player.Alive {
		if w.Stats.LoseLife() <= 0 {
			d.gameOver()
			return
		}
		d.respawn()
	}

	if w.LiveEnemies() == 0 && d.Remaining == 0 {
		d.State = StateLevelComplete
		w.Halt()
		w.Emit(core.EvtLevelComplete, d.Level)
	}
}

// respawn puts a fresh player at the spawn cell with base stats and no buff
func (d *Director) respawn() {
	w := d.World
	systems.RevertBuff(w)
	w.Player = w.NewPlayer()
	w.Emit(core.EvtPlayerRespawned, core.ActorEvent{Actor: w.Player})
}

func (d *Director) gameOver() {
	d.State = StateGameOver
	d.World.Halt()
	d.World.Emit(core.EvtGameOver, d.Level)
}

// Advance moves from LevelComplete to the next level
func (d *Director) Advance() bool {
	if d.State != StateLevelComplete {
		return false
	}
	d.EnterLevel(d.Level + 1)
	return true
}
