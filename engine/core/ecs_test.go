package core

import (
	"testing"
	"time"

	"github.com/1siamBot/tankarena/engine/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordSystem struct {
	name  string
	prio  int
	log   *[]string
	onRun func(w *World)
}

func (s *recordSystem) Priority() int { return s.prio }

func (s *recordSystem) Update(w *World) {
	*s.log = append(*s.log, s.name)
	if s.onRun != nil {
		s.onRun(w)
	}
}

func TestWorldRunsSystemsByPriority(t *testing.T) {
	var log []string
	w := NewWorld(DefaultRules(), rng.NewScripted(), nil)
	w.AddSystem(&recordSystem{name: "combat", prio: 20, log: &log})
	w.AddSystem(&recordSystem{name: "spawn", prio: 5, log: &log})
	w.AddSystem(&recordSystem{name: "move", prio: 10, log: &log})

	w.Tick(time.Second / 60)
	assert.Equal(t, []string{"spawn", "move", "combat"}, log)
	assert.Equal(t, uint64(1), w.TickCount)
	assert.Equal(t, time.Second/60, w.Now)
}

func TestHaltStopsRemainingSystems(t *testing.T) {
	var log []string
	w := NewWorld(DefaultRules(), rng.NewScripted(), nil)
	w.AddSystem(&recordSystem{name: "a", prio: 1, log: &log, onRun: func(w *World) { w.Halt() }})
	w.AddSystem(&recordSystem{name: "b", prio: 2, log: &log})

	w.Tick(time.Millisecond)
	w.Tick(time.Millisecond)
	assert.Equal(t, []string{"a"}, log)
	assert.True(t, w.Halted())
	assert.Equal(t, time.Millisecond, w.Now, "halted world does not advance")

	w.ResetLevel()
	assert.False(t, w.Halted())
}

func TestSweepRemovesDeadAndConsumed(t *testing.T) {
	w := NewWorld(DefaultRules(), rng.NewScripted(), nil)
	alive := w.NewEnemy(ArchBasic, 40, 40, DirDown)
	dead := w.NewEnemy(ArchBasic, 80, 40, DirDown)
	dead.Alive = false
	w.Enemies = []*Actor{dead, alive}
	w.Projectiles = []*Projectile{{Consumed: true}, {}}
	w.PowerUps = []*PowerUp{{Claimed: true}}

	w.Tick(time.Millisecond)
	require.Len(t, w.Enemies, 1)
	assert.Same(t, alive, w.Enemies[0])
	assert.Len(t, w.Projectiles, 1)
	assert.Empty(t, w.PowerUps)
}

func TestCanFireTracksOwnCooldown(t *testing.T) {
	a := &Actor{Cooldown: 250 * time.Millisecond}
	assert.True(t, a.CanFire(0), "never fired")
	a.HasFired = true
	a.LastShot = time.Second
	assert.False(t, a.CanFire(time.Second+250*time.Millisecond), "must exceed cooldown")
	assert.True(t, a.CanFire(time.Second+251*time.Millisecond))
}

func TestNewEnemyUsesArchetype(t *testing.T) {
	w := NewWorld(DefaultRules(), rng.NewScripted(), nil)
	e := w.NewEnemy(ArchArmor, 40, 40, DirLeft)
	require.NotNil(t, e.Enemy)
	assert.Equal(t, 4, e.Health)
	assert.Equal(t, 0.8, e.Enemy.Aggressiveness)
	assert.NotEqual(t, w.NewEnemy(ArchBasic, 0, 0, DirUp).ID, e.ID)
}

func TestBuffRemaining(t *testing.T) {
	b := &Buff{Type: PowerShield, Start: time.Second, Duration: 10 * time.Second}
	assert.Equal(t, 7*time.Second, b.Remaining(4*time.Second))
	assert.Equal(t, time.Duration(0), b.Remaining(20*time.Second))
	assert.True(t, (&Buff{Type: PowerSpeed}).Unbounded())
}

func TestGameLoopAdvance(t *testing.T) {
	ticks := 0
	gl := NewGameLoop(60, func(dt time.Duration) { ticks++ })
	gl.Advance(time.Second)
	assert.Zero(t, ticks, "paused loop does not tick")

	gl.Play()
	gl.Advance(50 * time.Millisecond)
	assert.Equal(t, 3, ticks)
	gl.Advance(time.Second)
	assert.Equal(t, 3+15, ticks, "frame capped at 250ms")
}

func TestStatsCreditLiftsHighScore(t *testing.T) {
	s := NewPlayerStats(3)
	s.HighScore = 150
	s.Credit(100)
	assert.Equal(t, 150, s.HighScore)
	s.Credit(100)
	assert.Equal(t, 200, s.HighScore)
	assert.Equal(t, 2, s.LoseLife())
}
