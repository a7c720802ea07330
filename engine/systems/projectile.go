package systems

import (
	"github.com/1siamBot/tankarena/engine/core"
	"github.com/1siamBot/tankarena/engine/maplib"
)

// ProjectileSystem moves shells and resolves their hits in fixed order:
// terrain, then the opposing actors, then the base.
type ProjectileSystem struct{}

func (s *ProjectileSystem) Priority() int { return 20 }

func (s *ProjectileSystem) Update(w *core.World) {
	for _, p := range w.Projectiles {
		if p.Consumed {
			continue
		}
		dx, dy := p.Direction.Delta()
		p.X += dx * p.Speed
		p.Y += dy * p.Speed

		resolveShell(w, p)
		if w.Halted() {
			return
		}
		if w.Grid.Outside(p.X, p.Y) {
			p.Consumed = true
		}
	}
}

func resolveShell(w *core.World, p *core.Projectile) {
	box := p.Box()

	if cx, cy, ok := w.Terrain.FirstHit(box, p.Passed...); ok {
		reaction, stop := w.Terrain.Shot(cx, cy, w.Rand)
		if !stop {
			p.Passed = append(p.Passed, maplib.CellPos{X: cx, Y: cy})
		}
		destroyed := reaction == maplib.ReactAbsorbRemove ||
			(reaction == maplib.ReactChanceRemovePass && w.Terrain.Terrain(cx, cy) == maplib.TerrainNone)
		if stop || destroyed {
			w.Emit(core.EvtTerrainHit, core.TerrainEvent{X: cx, Y: cy, Destroyed: destroyed, Stopped: stop})
		}
		if stop {
			p.Consumed = true
			bx, by := box.Center()
			SpawnEffect(w, core.EffectSpark, bx, by)
			return
		}
	}

	if p.Owner == core.FactionPlayer {
		for _, e := range w.Enemies {
			if e.Alive && w.Grid.Overlaps(box, e.Box(w.Grid)) {
				ApplyDamage(w, e, 1)
				p.Consumed = true
				return
			}
		}
	} else if pl := w.Player; pl != nil && pl.Alive && w.Grid.Overlaps(box, pl.Box(w.Grid)) {
		ApplyDamage(w, pl, 1)
		p.Consumed = true
		return
	}

	if p.Owner != core.FactionPlayer && w.Base.Alive && w.Grid.Overlaps(box, w.BaseBox()) {
		w.Base.Alive = false
		p.Consumed = true
		bx, by := w.BaseBox().Center()
		SpawnEffect(w, core.EffectBlast, bx, by)
		w.Emit(core.EvtBaseDestroyed, nil)
		w.Halt()
	}
}
