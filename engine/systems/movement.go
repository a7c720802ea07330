package systems

import (
	"github.com/1siamBot/tankarena/engine/core"
)

// CanMoveTo reports whether actor a may occupy pixel position (x, y). It
// never mutates state, so the AI can call it speculatively.
func CanMoveTo(w *core.World, a *core.Actor, x, y float64) bool {
	box := w.Grid.TileBox(x, y)
	if !w.Grid.Contains(box) {
		return false
	}
	if w.Terrain.Blocked(box) {
		return false
	}
	if w.Base.Alive && w.Grid.Overlaps(box, w.BaseBox()) {
		return false
	}
	if p := w.Player; p != nil && p != a && p.Alive && w.Grid.Overlaps(box, p.Box(w.Grid)) {
		return false
	}
	for _, e := range w.Enemies {
		if e == a || !e.Alive {
			continue
		}
		if w.Grid.Overlaps(box, e.Box(w.Grid)) {
			return false
		}
	}
	return true
}

// TryMove moves a by step pixels along dir if the destination is legal.
// Movement is all-or-nothing: a rejected move leaves a untouched.
func TryMove(w *core.World, a *core.Actor, dir core.Direction, step float64) bool {
	dx, dy := dir.Delta()
	nx, ny := a.X+dx*step, a.Y+dy*step
	if !CanMoveTo(w, a, nx, ny) {
		return false
	}
	a.X, a.Y = nx, ny
	return true
}

// MovementSystem applies the player's move command and advances every
// enemy along its facing
type MovementSystem struct{}

func (s *MovementSystem) Priority() int { return 10 }

func (s *MovementSystem) Update(w *core.World) {
	if p := w.Player; p != nil && p.Alive && w.Command.Move != core.DirNone {
		p.Facing = w.Command.Move
		TryMove(w, p, p.Facing, p.Speed)
	}

	for _, e := range w.Enemies {
		if !e.Alive || e.Enemy == nil {
			continue
		}
		e.Enemy.Blocked = !TryMove(w, e, e.Facing, e.Speed)
	}
}
