package ai

import (
	"testing"
	"time"

	"github.com/1siamBot/tankarena/engine/core"
	"github.com/1siamBot/tankarena/engine/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorld(src rng.Source) *core.World {
	w := core.NewWorld(core.DefaultRules(), src, nil)
	w.Player = w.NewPlayer()
	return w
}

// boxIn surrounds an enemy at (200,200) with blockers that leave up, right
// and left open for exactly one pixel and close down completely.
func boxIn(w *core.World) *core.Actor {
	e := w.NewEnemy(core.ArchBasic, 200, 200, core.DirDown)
	w.Enemies = []*core.Actor{
		e,
		w.NewEnemy(core.ArchBasic, 200, 158.5, core.DirUp),
		w.NewEnemy(core.ArchBasic, 241.5, 200, core.DirUp),
		w.NewEnemy(core.ArchBasic, 200, 240, core.DirUp),
		w.NewEnemy(core.ArchBasic, 158.5, 200, core.DirUp),
	}
	return e
}

func TestUnitStepProbeUsedWhenDoubleStepFails(t *testing.T) {
	src := rng.NewScripted(0.9, 0.5)
	w := newWorld(src)
	e := boxIn(w)

	assert.Empty(t, LegalDirections(w, e, 2))
	assert.Equal(t, []core.Direction{core.DirUp, core.DirRight, core.DirLeft}, LegalDirections(w, e, 1))

	// A random fallback would map 0.9 onto left; the unit set maps 0.5 onto right.
	assert.Equal(t, core.DirRight, FindDirection(w, e))
	assert.Equal(t, 2, src.Consumed())
}

func TestNoLegalDirectionFallsBackToRandom(t *testing.T) {
	w := newWorld(rng.NewScripted(0.6))
	e := w.NewEnemy(core.ArchBasic, 200, 200, core.DirUp)
	w.Enemies = []*core.Actor{
		e,
		w.NewEnemy(core.ArchBasic, 200, 160, core.DirUp),
		w.NewEnemy(core.ArchBasic, 240, 200, core.DirUp),
		w.NewEnemy(core.ArchBasic, 200, 240, core.DirUp),
		w.NewEnemy(core.ArchBasic, 160, 200, core.DirUp),
	}
	assert.Empty(t, LegalDirections(w, e, 1))
	assert.Equal(t, core.DirDown, FindDirection(w, e))
}

func TestAggressiveBiasTowardPlayer(t *testing.T) {
	w := newWorld(rng.NewScripted(0.1, 0.9, 0.9, 0.0, 0.9))
	w.Player.X, w.Player.Y = 200, 560
	e := w.NewEnemy(core.ArchBasic, 200, 200, core.DirUp)
	w.Enemies = []*core.Actor{e}

	assert.Equal(t, core.DirDown, FindDirection(w, e))
}

func TestUnbiasedPickIsUniform(t *testing.T) {
	w := newWorld(rng.NewScripted(0.9, 0.3))
	e := w.NewEnemy(core.ArchBasic, 200, 200, core.DirUp)
	w.Enemies = []*core.Actor{e}

	assert.Equal(t, core.DirRight, FindDirection(w, e))
}

func TestNoBiasWhenPlayerDead(t *testing.T) {
	src := rng.NewScripted(0.3)
	w := newWorld(src)
	w.Player.Alive = false
	e := w.NewEnemy(core.ArchBasic, 200, 200, core.DirUp)
	w.Enemies = []*core.Actor{e}

	assert.Equal(t, core.DirRight, FindDirection(w, e))
	assert.Equal(t, 1, src.Consumed(), "no aggressiveness roll")
}

func TestBlockedMoveTriggersDecision(t *testing.T) {
	w := newWorld(rng.NewScripted(0.9, 0.0, 0.5, 0.01))
	e := w.NewEnemy(core.ArchBasic, 200, 200, core.DirDown)
	w.Enemies = []*core.Actor{e}
	e.Enemy.Blocked = true

	(&EnemyController{}).Update(w)
	assert.Equal(t, core.DirUp, e.Facing)
	assert.False(t, e.Enemy.Blocked)
	assert.Equal(t, 2*time.Second, e.Enemy.DecideAfter, "base interval plus jitter")
	assert.True(t, e.WantsFire, "random suppressing fire")
}

func TestStuckCounterTriggersDecision(t *testing.T) {
	w := newWorld(&rng.Scripted{Fallback: 0.99})
	e := w.NewEnemy(core.ArchBasic, 200, 200, core.DirDown)
	w.Enemies = []*core.Actor{e}
	c := &EnemyController{}

	for i := 0; i < 30; i++ {
		c.Update(w)
	}
	assert.Equal(t, core.DirDown, e.Facing)
	assert.Equal(t, 30, e.Enemy.Stuck)

	c.Update(w)
	assert.Equal(t, core.DirLeft, e.Facing)
	assert.Zero(t, e.Enemy.Stuck)
}

func TestMovementResetsStuckCounter(t *testing.T) {
	w := newWorld(&rng.Scripted{Fallback: 0.99})
	e := w.NewEnemy(core.ArchBasic, 200, 200, core.DirDown)
	w.Enemies = []*core.Actor{e}
	c := &EnemyController{}

	c.Update(w)
	c.Update(w)
	require.Equal(t, 2, e.Enemy.Stuck)
	e.Y += 1
	c.Update(w)
	assert.Zero(t, e.Enemy.Stuck)
	assert.Equal(t, 201.0, e.Enemy.LastY)
}

func TestTimedDecision(t *testing.T) {
	w := newWorld(&rng.Scripted{Fallback: 0.99})
	e := w.NewEnemy(core.ArchBasic, 200, 200, core.DirDown)
	w.Enemies = []*core.Actor{e}
	c := &EnemyController{}

	w.Now = time.Second
	c.Update(w)
	assert.Equal(t, core.DirDown, e.Facing, "interval must be exceeded")

	w.Now = time.Second + time.Millisecond
	c.Update(w)
	assert.Equal(t, core.DirLeft, e.Facing)
	assert.Equal(t, w.Now, e.Enemy.LastDirChange)
}

func TestProximityFireNeedsNoRoll(t *testing.T) {
	src := rng.NewScripted()
	w := newWorld(src)
	e := w.NewEnemy(core.ArchBasic, w.Player.X, w.Player.Y-200, core.DirDown)
	w.Enemies = []*core.Actor{e}

	(&EnemyController{}).Update(w)
	assert.True(t, e.WantsFire)
	assert.Zero(t, src.Consumed())

	e.WantsFire = false
	e.HasFired = true
	e.LastShot = w.Now
	(&EnemyController{}).Update(w)
	assert.False(t, e.WantsFire, "cooldown gates the intent")
}

func TestRandomFireBeyondProximity(t *testing.T) {
	for _, c := range []struct {
		roll float64
		want bool
	}{
		{0.04, true},
		{0.05, false},
	} {
		src := rng.NewScripted(c.roll)
		w := newWorld(src)
		e := w.NewEnemy(core.ArchBasic, 560, 40, core.DirDown)
		w.Enemies = []*core.Actor{e}

		(&EnemyController{}).Update(w)
		assert.Equal(t, c.want, e.WantsFire, "roll %v", c.roll)
		assert.Equal(t, 1, src.Consumed())
	}
}

func TestDeadPlayerFallsBackToRoll(t *testing.T) {
	src := rng.NewScripted(0.5)
	w := newWorld(src)
	w.Player.Alive = false
	e := w.NewEnemy(core.ArchBasic, w.Player.X, w.Player.Y-80, core.DirDown)
	w.Enemies = []*core.Actor{e}
	c := &EnemyController{}

	c.Update(w)
	assert.False(t, e.WantsFire, "proximity ignores a dead player")
	assert.Equal(t, 1, src.Consumed())

	src.Values = append(src.Values, 0.01)
	c.Update(w)
	assert.True(t, e.WantsFire)
}
