package core

import (
	"time"

	"github.com/1siamBot/tankarena/engine/maplib"
)

// ---- Direction ----

// Direction is an actor's facing
type Direction int8

const (
	DirNone Direction = iota - 1
	DirUp
	DirRight
	DirDown
	DirLeft
)

// Directions lists the four facings in probe order
var Directions = [4]Direction{DirUp, DirRight, DirDown, DirLeft}

// Delta returns the unit displacement for the direction
func (d Direction) Delta() (dx, dy float64) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	}
	return "none"
}

// ---- Ownership ----

// Faction tells which actor population an entity belongs to
type Faction uint8

const (
	FactionPlayer Faction = iota
	FactionEnemy
)

func (f Faction) String() string {
	if f == FactionPlayer {
		return "player"
	}
	return "enemy"
}

// ---- Enemy archetypes ----

// Archetype is an enemy's fixed combat profile
type Archetype uint8

const (
	ArchBasic Archetype = iota
	ArchFast
	ArchPower
	ArchArmor
	archetypeCount
)

// Archetypes lists every archetype in weight order
var Archetypes = []Archetype{ArchBasic, ArchFast, ArchPower, ArchArmor}

// ArchetypeDef defines an enemy tier
type ArchetypeDef struct {
	Name           string
	Health         int
	Speed          float64 // pixels per tick
	Cooldown       time.Duration
	Aggressiveness float64 // probability of biasing toward the player
	Score          int
	DecideEvery    time.Duration // base interval between direction changes
}

var archetypeTable = [archetypeCount]ArchetypeDef{
	ArchBasic: {Name: "basic", Health: 1, Speed: 1.0, Cooldown: 1500 * time.Millisecond, Aggressiveness: 0.5, Score: 100, DecideEvery: time.Second},
	ArchFast:  {Name: "fast", Health: 1, Speed: 2.0, Cooldown: 1200 * time.Millisecond, Aggressiveness: 0.4, Score: 200, DecideEvery: 800 * time.Millisecond},
	ArchPower: {Name: "power", Health: 2, Speed: 1.2, Cooldown: 700 * time.Millisecond, Aggressiveness: 0.6, Score: 300, DecideEvery: time.Second},
	ArchArmor: {Name: "armor", Health: 4, Speed: 0.8, Cooldown: 1500 * time.Millisecond, Aggressiveness: 0.8, Score: 400, DecideEvery: 1500 * time.Millisecond},
}

// Def returns the archetype's profile
func (a Archetype) Def() ArchetypeDef {
	if int(a) >= len(archetypeTable) {
		return archetypeTable[ArchBasic]
	}
	return archetypeTable[a]
}

func (a Archetype) String() string { return a.Def().Name }

// ---- Actors ----

// Actor is a tank: the player or one enemy
type Actor struct {
	ID        EntityID
	Faction   Faction
	X, Y      float64 // top-left pixel position
	Facing    Direction
	Speed     float64 // pixels per tick
	Health    int
	MaxHealth int
	Alive     bool

	Cooldown  time.Duration
	LastShot  time.Duration
	HasFired  bool
	WantsFire bool // set by input or AI, consumed by the firing system

	Enemy *EnemyState // nil for the player
}

// EnemyState holds the controller's per-enemy timers
type EnemyState struct {
	Archetype      Archetype
	Aggressiveness float64
	LastDirChange  time.Duration
	DecideAfter    time.Duration // base interval plus the jitter drawn at the last decision
	Stuck          int
	LastX, LastY   float64
	Blocked        bool // last attempted move was rejected
}

// Box returns the actor's one-tile footprint
func (a *Actor) Box(g maplib.Grid) maplib.Box {
	return g.TileBox(a.X, a.Y)
}

// Center returns the actor's footprint center
func (a *Actor) Center(g maplib.Grid) (float64, float64) {
	return a.X + g.Tile/2, a.Y + g.Tile/2
}

// IsPlayer reports whether the actor is the player
func (a *Actor) IsPlayer() bool { return a.Faction == FactionPlayer }

// CanFire reports whether the actor's own cooldown has elapsed at now.
func (a *Actor) CanFire(now time.Duration) bool {
	return !a.HasFired || now-a.LastShot > a.Cooldown
}

// ---- Projectile ----

// Projectile represents a moving shell
type Projectile struct {
	ID        EntityID
	X, Y      float64
	W, H      float64
	Direction Direction
	Speed     float64
	Owner     Faction
	Consumed  bool
	// Passed holds pass-through cells this shell already reacted with
	Passed []maplib.CellPos
}

// Box returns the projectile's bounding box
func (p *Projectile) Box() maplib.Box {
	return maplib.Box{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// ---- Base ----

// Base is the fixed objective the player protects
type Base struct {
	Cell  maplib.CellPos
	X, Y  float64
	Alive bool
}

// ---- Power-ups and buffs ----

// PowerUpType identifies a pickup
type PowerUpType uint8

const (
	PowerSpeed PowerUpType = iota
	PowerRapidFire
	PowerShield
	PowerExtraLife
	powerUpCount
)

// PowerUpTypes lists every pickup type
var PowerUpTypes = []PowerUpType{PowerSpeed, PowerRapidFire, PowerShield, PowerExtraLife}

var powerUpNames = [powerUpCount]string{
	PowerSpeed:     "speed",
	PowerRapidFire: "rapid-fire",
	PowerShield:    "shield",
	PowerExtraLife: "extra-life",
}

func (p PowerUpType) String() string {
	if int(p) >= len(powerUpNames) {
		return "unknown"
	}
	return powerUpNames[p]
}

// PowerUp is an unclaimed pickup on the field
type PowerUp struct {
	ID      EntityID
	Type    PowerUpType
	X, Y    float64
	Created time.Duration
	Claimed bool
}

// Box returns the pickup's collision footprint, the tile at its origin.
// The drawn sprite is smaller, see PowerUpScale.
func (p *PowerUp) Box(g maplib.Grid) maplib.Box {
	return g.TileBox(p.X, p.Y)
}

// PowerUpScale is a pickup's drawn edge length relative to a tile
const PowerUpScale = 0.75

// Buff is the player's single active modifier
type Buff struct {
	Type     PowerUpType
	Start    time.Duration
	Duration time.Duration // 0 = until death or replacement

	OrigSpeed    float64       // speed to restore
	OrigCooldown time.Duration // cooldown to restore
	Charges      int           // shield hits left
}

// Unbounded reports whether the buff only ends on death or replacement
func (b *Buff) Unbounded() bool { return b.Duration <= 0 }

// Remaining returns time left on a finite buff
func (b *Buff) Remaining(now time.Duration) time.Duration {
	if b.Unbounded() {
		return 0
	}
	left := b.Duration - (now - b.Start)
	if left < 0 {
		return 0
	}
	return left
}

// ---- Effects ----

// EffectKind identifies a visual effect
type EffectKind uint8

const (
	EffectSpark     EffectKind = iota // shell stopped by terrain
	EffectExplosion                   // tank destroyed
	EffectBlast                       // base destroyed
)

// Effect is a short-lived animation anchored at a field position. It has no
// influence on the simulation.
type Effect struct {
	Kind    EffectKind
	X, Y    float64 // center
	Created time.Duration
	Life    time.Duration
	Frames  int
}

// Frame returns the animation frame at now, clamped to the last frame
func (e *Effect) Frame(now time.Duration) int {
	if e.Life <= 0 || e.Frames <= 1 {
		return 0
	}
	f := int(int64(now-e.Created) * int64(e.Frames) / int64(e.Life))
	if f >= e.Frames {
		f = e.Frames - 1
	}
	if f < 0 {
		f = 0
	}
	return f
}
