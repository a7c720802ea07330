package systems

import (
	"github.com/1siamBot/tankarena/engine/core"
)

// Fire spawns a shell at a's facing edge if a's own cooldown has elapsed.
// The shell starts outside the owner's footprint so it cannot hit it.
func Fire(w *core.World, a *core.Actor) bool {
	if !a.Alive || !a.CanFire(w.Now) {
		return false
	}
	size := w.Rules.ProjectileSize
	off := w.Rules.ProjectileOffset
	t := w.Grid.Tile

	x := a.X + t/2 - size/2
	y := a.Y + t/2 - size/2
	switch a.Facing {
	case core.DirUp:
		y = a.Y - off
	case core.DirRight:
		x = a.X + t
	case core.DirDown:
		y = a.Y + t
	case core.DirLeft:
		x = a.X - off
	}

	p := &core.Projectile{
		ID:        w.NewID(),
		X:         x,
		Y:         y,
		W:         size,
		H:         size,
		Direction: a.Facing,
		Speed:     w.Rules.ProjectileSpeed,
		Owner:     a.Faction,
	}
	w.Projectiles = append(w.Projectiles, p)
	a.LastShot = w.Now
	a.HasFired = true
	w.Emit(core.EvtShotFired, core.ActorEvent{Actor: a})
	return true
}

// ApplyDamage takes one hit point from target. A shield on the player soaks
// the hit instead and is dropped once its charges run out. Returns true if
// the hit destroyed the target.
func ApplyDamage(w *core.World, target *core.Actor, dmg int) bool {
	if !target.Alive {
		return false
	}
	if target.IsPlayer() && w.Buff != nil && w.Buff.Type == core.PowerShield {
		w.Buff.Charges--
		w.Emit(core.EvtShieldAbsorbed, core.ActorEvent{Actor: target})
		if w.Buff.Charges <= 0 {
			w.Buff = nil
		}
		return false
	}

	target.Health -= dmg
	w.Emit(core.EvtActorHit, core.ActorEvent{Actor: target})
	if target.Health > 0 {
		return false
	}
	target.Health = 0
	target.Alive = false
	cx, cy := target.Center(w.Grid)
	SpawnEffect(w, core.EffectExplosion, cx, cy)

	ev := core.ActorEvent{Actor: target}
	if target.Enemy != nil {
		ev.Score = target.Enemy.Archetype.Def().Score
		w.Stats.Credit(ev.Score)
		w.Stats.Kills++
		DropPowerUp(w, target)
	}
	w.Emit(core.EvtActorDestroyed, ev)
	return true
}

// CombatSystem turns fire intents into shells. The player's intent comes
// from the tick's command; enemies set WantsFire through the controller.
type CombatSystem struct{}

func (s *CombatSystem) Priority() int { return 25 }

func (s *CombatSystem) Update(w *core.World) {
	if p := w.Player; p != nil && p.Alive && w.Command.Fire {
		Fire(w, p)
	}
	for _, e := range w.Enemies {
		if e.Alive && e.WantsFire {
			Fire(w, e)
		}
		e.WantsFire = false
	}
}
