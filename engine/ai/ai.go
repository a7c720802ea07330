package ai

import (
	"math"

	"github.com/1siamBot/tankarena/engine/core"
	"github.com/1siamBot/tankarena/engine/maplib"
	"github.com/1siamBot/tankarena/engine/systems"
)

// EnemyController picks a facing and a fire intent for every enemy each
// tick. It runs after movement so a rejected move is answered in the same
// tick.
type EnemyController struct{}

func (c *EnemyController) Priority() int { return 15 }

func (c *EnemyController) Update(w *core.World) {
	for _, e := range w.Enemies {
		if !e.Alive || e.Enemy == nil {
			continue
		}
		c.think(w, e)
	}
}

func (c *EnemyController) think(w *core.World, e *core.Actor) {
	st := e.Enemy
	r := w.Rules

	// Stuck detection
	if math.Abs(e.X-st.LastX) < r.StuckEpsilon && math.Abs(e.Y-st.LastY) < r.StuckEpsilon {
		st.Stuck++
	} else {
		st.Stuck = 0
		st.LastX, st.LastY = e.X, e.Y
	}

	if st.Stuck > r.StuckThreshold || w.Now-st.LastDirChange > st.DecideAfter || st.Blocked {
		e.Facing = FindDirection(w, e)
		st.LastDirChange = w.Now
		st.DecideAfter = st.Archetype.Def().DecideEvery + w.DecideJitter()
		st.Stuck = 0
		st.Blocked = false
	}

	if e.CanFire(w.Now) && c.wantsToFire(w, e) {
		e.WantsFire = true
	}
}

// wantsToFire is deliberately permissive: close enough to the player, or
// a flat random chance. There is no line-of-sight test.
func (c *EnemyController) wantsToFire(w *core.World, e *core.Actor) bool {
	if p := w.Player; p != nil && p.Alive {
		ex, ey := e.Center(w.Grid)
		px, py := p.Center(w.Grid)
		if maplib.Distance(ex, ey, px, py) <= w.Rules.FireProximity*w.Grid.Tile {
			return true
		}
	}
	return w.Rand.Float64() < w.Rules.RandomFire
}

// LegalDirections probes all four directions at the given step and returns
// those the movement validator accepts, in probe order.
func LegalDirections(w *core.World, e *core.Actor, step float64) []core.Direction {
	var out []core.Direction
	for _, d := range core.Directions {
		dx, dy := d.Delta()
		if systems.CanMoveTo(w, e, e.X+dx*step, e.Y+dy*step) {
			out = append(out, d)
		}
	}
	return out
}

// FindDirection chooses a new facing for e. Probes at double speed first,
// then a single pixel to squeeze out of tight spots. With nothing legal it
// returns any of the four directions at random and may stay blocked.
func FindDirection(w *core.World, e *core.Actor) core.Direction {
	legal := LegalDirections(w, e, e.Speed*2)
	if len(legal) == 0 {
		legal = LegalDirections(w, e, 1)
	}
	if len(legal) == 0 {
		return core.Directions[w.Rand.Intn(len(core.Directions))]
	}

	if p := w.Player; p != nil && p.Alive && w.Rand.Float64() < e.Enemy.Aggressiveness {
		return towardPlayer(w, e, legal)
	}
	return legal[w.Rand.Intn(len(legal))]
}

// towardPlayer scores each legal direction by whether it closes the gap to
// the player's center on its axis, plus a random tie-breaker in [0, 1).
func towardPlayer(w *core.World, e *core.Actor, legal []core.Direction) core.Direction {
	ex, ey := e.Center(w.Grid)
	px, py := w.Player.Center(w.Grid)

	best := legal[0]
	bestScore := -1.0
	for _, d := range legal {
		score := 0.0
		switch {
		case d == core.DirUp && py < ey,
			d == core.DirRight && px > ex,
			d == core.DirDown && py > ey,
			d == core.DirLeft && px < ex:
			score += w.Rules.TowardBonus
		}
		score += w.Rand.Float64()
		if score > bestScore {
			best, bestScore = d, score
		}
	}
	return best
}
