package arena

import (
	"errors"
	"log"
	"time"

	"github.com/1siamBot/tankarena/engine/ai"
	"github.com/1siamBot/tankarena/engine/audio"
	"github.com/1siamBot/tankarena/engine/core"
	"github.com/1siamBot/tankarena/engine/persistence"
	"github.com/1siamBot/tankarena/engine/replay"
	"github.com/1siamBot/tankarena/engine/rng"
	"github.com/1siamBot/tankarena/engine/systems"
	"github.com/1siamBot/tankarena/engine/wave"
)

// Options configures a session
type Options struct {
	Seed     int64
	Lives    int     // 0 = rules default
	TickRate float64 // 0 = 60
	Rules    *core.Rules

	Store    persistence.Storage // optional high-score backend
	Audio    audio.Player        // optional, defaults to audio.Nop
	Recorder *replay.Recorder    // optional, records every Step
}

// Session is one game from level 1 until the player gives up. Restart
// throws the world away and builds a new one.
type Session struct {
	World    *core.World
	Director *wave.Director

	opts      Options
	dt        time.Duration
	steps     uint64
	restarts  int
	highScore int
	saved     int
	owned     bool // store and audio were opened by Open
}

// New builds a session and enters level 1
func New(opts Options) *Session {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	s := &Session{
		opts: opts,
		dt:   time.Duration(float64(time.Second) / opts.TickRate),
	}
	s.highScore = s.loadHighScore()
	s.saved = s.highScore
	s.build()
	return s
}

func (s *Session) build() {
	rules := core.DefaultRules()
	if s.opts.Rules != nil {
		rules = *s.opts.Rules
	}
	if s.opts.Lives > 0 {
		rules.StartLives = s.opts.Lives
	}

	bus := core.NewEventBus()
	w := core.NewWorld(rules, rng.New(s.opts.Seed+int64(s.restarts)), bus)
	w.Stats.HighScore = s.highScore

	d := wave.NewDirector(w)
	w.AddSystem(d)
	w.AddSystem(&systems.MovementSystem{})
	w.AddSystem(&ai.EnemyController{})
	w.AddSystem(&systems.ProjectileSystem{})
	w.AddSystem(&systems.CombatSystem{})
	w.AddSystem(&systems.PowerUpSystem{})
	w.AddSystem(&systems.EffectSystem{})

	s.World = w
	s.Director = d
	s.wireAudio(bus)

	d.EnterLevel(1)
	bus.Dispatch()
}

// wireAudio maps simulation events onto sound cues
func (s *Session) wireAudio(bus *core.EventBus) {
	play := func(c audio.Cue) core.EventHandler {
		return func(core.Event) { s.opts.Audio.Play(c) }
	}
	bus.On(core.EvtShotFired, play(audio.CueShoot))
	bus.On(core.EvtActorHit, play(audio.CueHit))
	bus.On(core.EvtShieldAbsorbed, play(audio.CueHit))
	bus.On(core.EvtTerrainHit, func(e core.Event) {
		if te, ok := e.Payload.(core.TerrainEvent); ok && te.Stopped {
			s.opts.Audio.Play(audio.CueHit)
		}
	})
	bus.On(core.EvtActorDestroyed, play(audio.CueExplode))
	bus.On(core.EvtBaseDestroyed, play(audio.CueExplode))
	bus.On(core.EvtGameOver, play(audio.CueGameOver))
	bus.On(core.EvtPowerUpCollected, play(audio.CuePowerUp))
}

// TickDuration returns the simulated time one Step covers
func (s *Session) TickDuration() time.Duration { return s.dt }

// Steps returns how many commands the session has consumed
func (s *Session) Steps() uint64 { return s.steps }

// HighScore returns the best score known to this session
func (s *Session) HighScore() int { return s.highScore }

// Step consumes one tick's command. Restart rebuilds everything; fire
// advances out of LevelComplete; otherwise the world ticks once and the
// director evaluates the result.
func (s *Session) Step(cmd core.Command) {
	if rec := s.opts.Recorder; rec != nil {
		if err := rec.Record(cmd); err != nil {
			log.Printf("replay recording stopped: %v", err)
			s.opts.Recorder = nil
		}
	}
	s.steps++

	if cmd.Restart {
		s.Restart()
		return
	}

	w, d := s.World, s.Director
	switch d.State {
	case wave.StateLevelComplete:
		if cmd.Fire {
			d.Advance()
		}
	case wave.StateActive:
		w.Command = core.Command{Move: cmd.Move, Fire: cmd.Fire}
		w.Tick(s.dt)
		d.Evaluate()
		if w.Stats.HighScore > s.highScore {
			s.highScore = w.Stats.HighScore
		}
		if d.State == wave.StateGameOver {
			s.saveHighScore()
		}
	}
	w.Bus.Dispatch()
}

// Restart persists the high score and starts over from level 1
func (s *Session) Restart() {
	s.saveHighScore()
	s.restarts++
	s.build()
}

// Close persists the high score. A session built by Open also releases
// its store and audio device.
func (s *Session) Close() error {
	s.saveHighScore()
	if !s.owned {
		return nil
	}
	if am, ok := s.opts.Audio.(*audio.AudioManager); ok {
		am.Cleanup()
	}
	if s.opts.Store != nil {
		return s.opts.Store.Close()
	}
	return nil
}

// Header returns the replay header that reproduces this session
func (s *Session) Header() replay.Header {
	return replay.Header{
		Seed:     s.opts.Seed,
		Lives:    int32(s.World.Rules.StartLives),
		TickRate: s.opts.TickRate,
	}
}

// Record starts recording every following Step into rec. Only a
// recording started before the first step can be played back.
func (s *Session) Record(rec *replay.Recorder) {
	s.opts.Recorder = rec
}

func (s *Session) loadHighScore() int {
	if s.opts.Store == nil {
		return 0
	}
	score, err := s.opts.Store.LoadHighScore()
	if errors.Is(err, persistence.ErrNoScore) {
		return 0
	}
	if err != nil {
		log.Printf("high score unavailable: %v", err)
		return 0
	}
	return score
}

func (s *Session) saveHighScore() {
	if s.opts.Store == nil || s.highScore <= s.saved {
		return
	}
	if err := s.opts.Store.SaveHighScore(s.highScore); err != nil {
		log.Printf("high score not saved: %v", err)
		return
	}
	s.saved = s.highScore
}

// PlayBack rebuilds the session a replay was recorded from and feeds it
// the recorded commands for the given number of steps.
func PlayBack(rp *replay.Replay, steps uint64) *Session {
	s := New(Options{
		Seed:     rp.Header.Seed,
		Lives:    int(rp.Header.Lives),
		TickRate: rp.Header.TickRate,
	})
	for i := uint64(0); i < steps; i++ {
		s.Step(rp.CommandFor(i))
	}
	return s
}
