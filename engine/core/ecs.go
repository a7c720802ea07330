package core

import (
	"time"

	"github.com/1siamBot/tankarena/engine/maplib"
	"github.com/1siamBot/tankarena/engine/rng"
)

// EntityID is a unique identifier for game entities
type EntityID uint64

// Command is the player's logical input for one tick
type Command struct {
	Move    Direction // DirNone when idle
	Fire    bool      // edge-detected: true on the tick the key went down
	Restart bool      // edge-detected; handled by the session, not by systems
}

// Idle is the command of a tick with no keys down
var Idle = Command{Move: DirNone}

// System processes the world each tick
type System interface {
	Update(w *World)
	Priority() int
}

// World holds all entities of one level and the simulation clock
type World struct {
	Rules   Rules
	Grid    maplib.Grid
	Terrain *maplib.TileMap
	Base    Base

	Player      *Actor
	Enemies     []*Actor
	Projectiles []*Projectile
	PowerUps    []*PowerUp
	Effects     []*Effect
	Buff        *Buff
	Stats       *PlayerStats

	DropChance float64 // current level's power-up drop probability
	Command    Command

	Rand rng.Source
	Bus  *EventBus

	Now       time.Duration // simulation clock, sampled once per tick
	TickCount uint64

	systems []System
	nextID  EntityID
	halted  bool
}

// NewWorld creates an empty world
func NewWorld(rules Rules, src rng.Source, bus *EventBus) *World {
	if bus == nil {
		bus = NewEventBus()
	}
	return &World{
		Rules:   rules,
		Grid:    rules.Grid,
		Terrain: maplib.NewTileMap("arena", rules.Grid),
		Stats:   NewPlayerStats(rules.StartLives),
		Command: Idle,
		Rand:    src,
		Bus:     bus,
	}
}

// NewID generates a unique entity ID within this world
func (w *World) NewID() EntityID {
	w.nextID++
	return w.nextID
}

// AddSystem registers a system
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	// Sort by priority (simple insertion)
	for i := len(w.systems) - 1; i > 0; i-- {
		if w.systems[i].Priority() < w.systems[i-1].Priority() {
			w.systems[i], w.systems[i-1] = w.systems[i-1], w.systems[i]
		}
	}
}

// Halt stops the remaining systems of the current tick and every later
// tick. Used when the base falls.
func (w *World) Halt() { w.halted = true }

// Halted reports whether gameplay ticking has stopped
func (w *World) Halted() bool { return w.halted }

// Tick advances the clock by dt then runs all systems once
func (w *World) Tick(dt time.Duration) {
	if w.halted {
		return
	}
	w.Now += dt
	for _, s := range w.systems {
		s.Update(w)
		if w.halted {
			break
		}
	}
	w.sweep()
	w.TickCount++
}

// sweep drops dead enemies, consumed shells and claimed pickups
func (w *World) sweep() {
	enemies := w.Enemies[:0]
	for _, e := range w.Enemies {
		if e.Alive {
			enemies = append(enemies, e)
		}
	}
	clearTail(w.Enemies, len(enemies))
	w.Enemies = enemies

	shells := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if !p.Consumed {
			shells = append(shells, p)
		}
	}
	clearTail(w.Projectiles, len(shells))
	w.Projectiles = shells

	pickups := w.PowerUps[:0]
	for _, p := range w.PowerUps {
		if !p.Claimed {
			pickups = append(pickups, p)
		}
	}
	clearTail(w.PowerUps, len(pickups))
	w.PowerUps = pickups
}

func clearTail[T any](s []*T, keep int) {
	for i := keep; i < len(s); i++ {
		s[i] = nil
	}
}

// LiveEnemies counts living enemies
func (w *World) LiveEnemies() int {
	n := 0
	for _, e := range w.Enemies {
		if e.Alive {
			n++
		}
	}
	return n
}

// PlayerAlive reports whether the player exists and is alive
func (w *World) PlayerAlive() bool {
	return w.Player != nil && w.Player.Alive
}

// Emit queues an event stamped with the current tick
func (w *World) Emit(t EventType, payload interface{}) {
	w.Bus.Emit(Event{Type: t, Tick: w.TickCount, Payload: payload})
}

// NewPlayer creates the player at the spawn cell
func (w *World) NewPlayer() *Actor {
	x, y := w.Grid.CellOrigin(w.Rules.PlayerSpawn.X, w.Rules.PlayerSpawn.Y)
	return &Actor{
		ID:        w.NewID(),
		Faction:   FactionPlayer,
		X:         x,
		Y:         y,
		Facing:    DirUp,
		Speed:     w.Rules.PlayerSpeed,
		Health:    w.Rules.PlayerHealth,
		MaxHealth: w.Rules.PlayerHealth,
		Alive:     true,
		Cooldown:  w.Rules.PlayerCooldown,
	}
}

// DecideJitter draws the random part of an enemy's decision interval
func (w *World) DecideJitter() time.Duration {
	return time.Duration(w.Rand.Float64() * float64(w.Rules.DecideJitter))
}

// NewEnemy creates an enemy of the given archetype at pixel (x, y)
func (w *World) NewEnemy(arch Archetype, x, y float64, facing Direction) *Actor {
	def := arch.Def()
	return &Actor{
		ID:        w.NewID(),
		Faction:   FactionEnemy,
		X:         x,
		Y:         y,
		Facing:    facing,
		Speed:     def.Speed,
		Health:    def.Health,
		MaxHealth: def.Health,
		Alive:     true,
		Cooldown:  def.Cooldown,
		Enemy: &EnemyState{
			Archetype:      arch,
			Aggressiveness: def.Aggressiveness,
			LastDirChange:  w.Now,
			DecideAfter:    def.DecideEvery,
			LastX:          x,
			LastY:          y,
		},
	}
}

// PlaceBase positions the base at its rules cell and revives it
func (w *World) PlaceBase() {
	x, y := w.Grid.CellOrigin(w.Rules.BaseCell.X, w.Rules.BaseCell.Y)
	w.Base = Base{Cell: w.Rules.BaseCell, X: x, Y: y, Alive: true}
}

// BaseBox returns the base footprint
func (w *World) BaseBox() maplib.Box {
	return w.Grid.TileBox(w.Base.X, w.Base.Y)
}

// ResetLevel clears the per-level populations and resumes ticking
func (w *World) ResetLevel() {
	w.Enemies = nil
	w.Projectiles = nil
	w.PowerUps = nil
	w.Effects = nil
	w.halted = false
}
