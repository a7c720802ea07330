package systems

import (
	"time"

	"github.com/1siamBot/tankarena/engine/core"
)

type effectDef struct {
	life   time.Duration
	frames int
}

var effectDefs = map[core.EffectKind]effectDef{
	core.EffectSpark:     {150 * time.Millisecond, 3},
	core.EffectExplosion: {400 * time.Millisecond, 8},
	core.EffectBlast:     {900 * time.Millisecond, 8},
}

// SpawnEffect starts an animation centered on (x, y)
func SpawnEffect(w *core.World, kind core.EffectKind, x, y float64) *core.Effect {
	def := effectDefs[kind]
	e := &core.Effect{
		Kind:    kind,
		X:       x,
		Y:       y,
		Created: w.Now,
		Life:    def.life,
		Frames:  def.frames,
	}
	w.Effects = append(w.Effects, e)
	return e
}

// EffectSystem drops finished animations
type EffectSystem struct{}

func (s *EffectSystem) Priority() int { return 40 }

func (s *EffectSystem) Update(w *core.World) {
	live := w.Effects[:0]
	for _, e := range w.Effects {
		if w.Now-e.Created <= e.Life {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(w.Effects); i++ {
		w.Effects[i] = nil
	}
	w.Effects = live
}
