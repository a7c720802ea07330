package arena

import (
	"math"
	"time"

	"github.com/1siamBot/tankarena/engine/core"
	"github.com/1siamBot/tankarena/engine/maplib"
	"github.com/1siamBot/tankarena/engine/wave"
)

// bobRate converts a pickup's age in milliseconds into its bob phase
const bobRate = 0.005

// ActorView is a tank as a renderer sees it
type ActorView struct {
	ID        core.EntityID
	X, Y      float64
	Facing    core.Direction
	Health    int
	MaxHealth int
	Alive     bool
	Player    bool
	Archetype string
}

// ShellView is a projectile as a renderer sees it
type ShellView struct {
	X, Y, W, H float64
	Direction  core.Direction
	Owner      core.Faction
}

// PowerUpView is a pickup with its bob phase in [-1, 1]
type PowerUpView struct {
	Type core.PowerUpType
	X, Y float64
	Bob  float64
}

// EffectView is one running animation
type EffectView struct {
	Kind   core.EffectKind
	X, Y   float64 // center
	Frame  int
	Frames int
}

// BuffView is the active buff
type BuffView struct {
	Type      core.PowerUpType
	Remaining time.Duration // zero when unbounded
	Unbounded bool
	Charges   int
}

// Snapshot holds everything needed to draw one frame
type Snapshot struct {
	Step      uint64
	Now       time.Duration
	State     wave.State
	Grid      maplib.Grid
	Player    *ActorView
	Enemies   []ActorView
	Terrain   []maplib.Cell
	Shells    []ShellView
	PowerUps  []PowerUpView
	Effects   []EffectView
	BaseX     float64
	BaseY     float64
	BaseAlive bool
	Buff      *BuffView
}

func actorView(a *core.Actor) ActorView {
	v := ActorView{
		ID:        a.ID,
		X:         a.X,
		Y:         a.Y,
		Facing:    a.Facing,
		Health:    a.Health,
		MaxHealth: a.MaxHealth,
		Alive:     a.Alive,
		Player:    a.IsPlayer(),
	}
	if a.Enemy != nil {
		v.Archetype = a.Enemy.Archetype.String()
	}
	return v
}

// Snapshot captures the current frame
func (s *Session) Snapshot() Snapshot {
	w := s.World
	snap := Snapshot{
		Step:      s.steps,
		Now:       w.Now,
		State:     s.Director.State,
		Grid:      w.Grid,
		Terrain:   w.Terrain.Cells(),
		BaseX:     w.Base.X,
		BaseY:     w.Base.Y,
		BaseAlive: w.Base.Alive,
	}
	if w.Player != nil {
		pv := actorView(w.Player)
		snap.Player = &pv
	}
	for _, e := range w.Enemies {
		if e.Alive {
			snap.Enemies = append(snap.Enemies, actorView(e))
		}
	}
	for _, p := range w.Projectiles {
		if p.Consumed {
			continue
		}
		snap.Shells = append(snap.Shells, ShellView{
			X: p.X, Y: p.Y, W: p.W, H: p.H,
			Direction: p.Direction,
			Owner:     p.Owner,
		})
	}
	for _, pu := range w.PowerUps {
		if pu.Claimed {
			continue
		}
		snap.PowerUps = append(snap.PowerUps, PowerUpView{
			Type: pu.Type,
			X:    pu.X,
			Y:    pu.Y,
			Bob:  BobPhase(w.Now - pu.Created),
		})
	}
	for _, e := range w.Effects {
		snap.Effects = append(snap.Effects, EffectView{
			Kind:   e.Kind,
			X:      e.X,
			Y:      e.Y,
			Frame:  e.Frame(w.Now),
			Frames: e.Frames,
		})
	}
	if b := w.Buff; b != nil {
		snap.Buff = &BuffView{
			Type:      b.Type,
			Remaining: b.Remaining(w.Now),
			Unbounded: b.Unbounded(),
			Charges:   b.Charges,
		}
	}
	return snap
}

// BobPhase returns the vertical bob of a pickup of the given age
func BobPhase(age time.Duration) float64 {
	return math.Sin(float64(age.Milliseconds()) * bobRate)
}
