// Package headless runs sessions without a display: a scripted pilot
// plays each run and the results are collected into a text report.
package headless

import (
	"fmt"
	"strings"

	"github.com/1siamBot/tankarena/engine/arena"
	"github.com/1siamBot/tankarena/engine/core"
	"github.com/1siamBot/tankarena/engine/maplib"
	"github.com/1siamBot/tankarena/engine/replay"
	"github.com/1siamBot/tankarena/engine/rng"
	"github.com/1siamBot/tankarena/engine/wave"
)

// Pilot is a scripted player: a random walk with occasional fire. It
// always fires out of a completed level so runs keep progressing.
type Pilot struct {
	Src        rng.Source
	TurnEvery  int     // ticks between direction picks
	FireChance float64 // per tick
	IdleChance float64 // chance a pick is "stand still"

	dir  core.Direction
	left int
}

func NewPilot(seed int64) *Pilot {
	return &Pilot{
		Src:        rng.New(seed),
		TurnEvery:  45,
		FireChance: 0.08,
		IdleChance: 0.15,
		dir:        core.DirNone,
	}
}

// Next returns the command for the coming tick
func (p *Pilot) Next(state wave.State) core.Command {
	if state == wave.StateLevelComplete {
		return core.Command{Move: core.DirNone, Fire: true}
	}
	if p.left <= 0 {
		p.left = p.TurnEvery
		if p.Src.Float64() < p.IdleChance {
			p.dir = core.DirNone
		} else {
			p.dir = core.Directions[p.Src.Intn(len(core.Directions))]
		}
	}
	p.left--
	return core.Command{Move: p.dir, Fire: p.Src.Float64() < p.FireChance}
}

// Options configures a batch
type Options struct {
	Runs     int
	Ticks    int
	Seed     int64 // run i uses Seed+i
	Lives    int
	TickRate float64
}

// RunResult is the outcome of one run
type RunResult struct {
	Seed    int64
	Steps   uint64
	Summary arena.Summary
}

// Play runs one session with the pilot for at most ticks steps, stopping
// early at game over. rec may be nil.
func Play(seed int64, o Options, rec *replay.Recorder) RunResult {
	s := arena.New(arena.Options{
		Seed:     seed,
		Lives:    o.Lives,
		TickRate: o.TickRate,
		Recorder: rec,
	})
	pilot := NewPilot(seed)
	for i := 0; i < o.Ticks; i++ {
		state := s.Director.State
		if state == wave.StateGameOver {
			break
		}
		s.Step(pilot.Next(state))
	}
	return RunResult{Seed: seed, Steps: s.Steps(), Summary: s.Summary()}
}

// Report is a whole batch
type Report struct {
	Options Options
	Runs    []RunResult
}

// Run plays every run of the batch
func Run(o Options) Report {
	r := Report{Options: o}
	for i := 0; i < o.Runs; i++ {
		r.Runs = append(r.Runs, Play(o.Seed+int64(i), o, nil))
	}
	return r
}

// String renders one line per run plus a totals line
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tank arena: %d runs x %d ticks, seed %d\n", r.Options.Runs, r.Options.Ticks, r.Options.Seed)

	var score, kills, best int
	for i, run := range r.Runs {
		sm := run.Summary
		fmt.Fprintf(&b, "run %3d seed=%d level=%d score=%d kills=%d deaths=%d ticks=%d end=%s\n",
			i+1, run.Seed, sm.Level, sm.Score, sm.Kills, sm.Deaths, sm.Ticks, sm.State)
		score += sm.Score
		kills += sm.Kills
		if sm.Level > best {
			best = sm.Level
		}
	}
	if n := len(r.Runs); n > 0 {
		fmt.Fprintf(&b, "mean score %.1f, mean kills %.1f, best level %d\n",
			float64(score)/float64(n), float64(kills)/float64(n), best)
	}
	return b.String()
}

// Verify plays rp back for steps steps and reports whether it ends in want
func Verify(rp *replay.Replay, steps uint64, want arena.Summary) (arena.Summary, error) {
	got := arena.PlayBack(rp, steps).Summary()
	if got.String() != want.String() {
		return got, fmt.Errorf("replay diverged:\n  recorded %s\n  replayed %s", want, got)
	}
	return got, nil
}

// GenerateMap builds the terrain a session with seed would play on level
func GenerateMap(seed int64, level int) *maplib.TileMap {
	w := core.NewWorld(core.DefaultRules(), rng.New(seed), nil)
	d := wave.NewDirector(w)
	d.EnterLevel(level)
	return w.Terrain
}
