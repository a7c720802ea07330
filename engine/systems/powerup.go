package systems

import (
	"time"

	"github.com/1siamBot/tankarena/engine/core"
)

// DropPowerUp rolls the level's drop chance for a destroyed enemy and, on
// success, leaves a pickup of random type where it died.
func DropPowerUp(w *core.World, dead *core.Actor) *core.PowerUp {
	if w.DropChance <= 0 || w.Rand.Float64() >= w.DropChance {
		return nil
	}
	pu := &core.PowerUp{
		ID:      w.NewID(),
		Type:    core.PowerUpTypes[w.Rand.Intn(len(core.PowerUpTypes))],
		X:       dead.X,
		Y:       dead.Y,
		Created: w.Now,
	}
	w.PowerUps = append(w.PowerUps, pu)
	w.Emit(core.EvtPowerUpSpawned, pu)
	return pu
}

// ApplyBuff gives the player the effect of a collected pickup.
//
// Speed and rapid-fire share the buff slot and never compound: taking the
// active type again is a no-op, taking the other one reverts the first.
// Shield always replaces the slot. Extra-life bypasses the slot entirely.
func ApplyBuff(w *core.World, t core.PowerUpType) {
	p := w.Player
	switch t {
	case core.PowerExtraLife:
		w.Stats.Lives++
		return
	case core.PowerShield:
		RevertBuff(w)
		w.Buff = &core.Buff{
			Type:     core.PowerShield,
			Start:    w.Now,
			Duration: w.Rules.ShieldDuration,
			Charges:  w.Rules.ShieldCharges,
		}
		return
	}
	if p == nil {
		return
	}
	if w.Buff != nil && w.Buff.Type == t {
		return
	}
	RevertBuff(w)

	b := &core.Buff{
		Type:         t,
		Start:        w.Now,
		OrigSpeed:    p.Speed,
		OrigCooldown: p.Cooldown,
	}
	switch t {
	case core.PowerSpeed:
		p.Speed = b.OrigSpeed * w.Rules.SpeedFactor
	case core.PowerRapidFire:
		p.Cooldown = time.Duration(float64(b.OrigCooldown) * w.Rules.RapidFireFactor)
	}
	w.Buff = b
}

// RevertBuff restores whatever the active buff replaced and empties the slot.
func RevertBuff(w *core.World) {
	b := w.Buff
	if b == nil {
		return
	}
	w.Buff = nil
	p := w.Player
	if p == nil {
		return
	}
	switch b.Type {
	case core.PowerSpeed:
		p.Speed = b.OrigSpeed
	case core.PowerRapidFire:
		p.Cooldown = b.OrigCooldown
	}
}

// PowerUpSystem expires stale pickups, hands out claimed ones and ends
// finite buffs.
type PowerUpSystem struct{}

func (s *PowerUpSystem) Priority() int { return 30 }

func (s *PowerUpSystem) Update(w *core.World) {
	p := w.Player
	alive := w.PlayerAlive()

	for _, pu := range w.PowerUps {
		if pu.Claimed {
			continue
		}
		if w.Now-pu.Created > w.Rules.PowerUpLifetime {
			pu.Claimed = true
			w.Emit(core.EvtPowerUpExpired, pu)
			continue
		}
		if alive && w.Grid.Overlaps(p.Box(w.Grid), pu.Box(w.Grid)) {
			pu.Claimed = true
			ApplyBuff(w, pu.Type)
			w.Emit(core.EvtPowerUpCollected, pu)
		}
	}

	if b := w.Buff; b != nil && !b.Unbounded() && w.Now-b.Start > b.Duration {
		RevertBuff(w)
		w.Emit(core.EvtBuffExpired, b)
	}
}
