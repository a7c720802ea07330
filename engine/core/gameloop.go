package core

import "time"

// GameLoop manages the fixed-timestep loop that turns frame callbacks into
// simulation ticks
type GameLoop struct {
	TickRate    float64 // fixed ticks per second
	Step        func(dt time.Duration)
	accumulator time.Duration
	lastTime    time.Time
	running     bool
}

// maxFrame caps a single frame to avoid a spiral of death after a stall
const maxFrame = 250 * time.Millisecond

// NewGameLoop creates a game loop with fixed tick rate
func NewGameLoop(tickRate float64, step func(dt time.Duration)) *GameLoop {
	return &GameLoop{
		TickRate: tickRate,
		Step:     step,
		lastTime: time.Now(),
	}
}

// TickDuration returns the simulated time covered by one tick
func (gl *GameLoop) TickDuration() time.Duration {
	return time.Duration(float64(time.Second) / gl.TickRate)
}

// Update should be called every render frame. It runs Step as many times
// as the wall time since the previous frame allows and returns the
// interpolation alpha for smooth rendering.
func (gl *GameLoop) Update() float64 {
	now := time.Now()
	frame := now.Sub(gl.lastTime)
	gl.lastTime = now
	return gl.Advance(frame)
}

// Advance runs the ticks owed for frame. Split from Update so callers can
// drive the loop with synthetic frame times.
func (gl *GameLoop) Advance(frame time.Duration) float64 {
	if frame > maxFrame {
		frame = maxFrame
	}
	dt := gl.TickDuration()
	if !gl.running {
		return 0
	}
	gl.accumulator += frame
	for gl.accumulator >= dt {
		gl.Step(dt)
		gl.accumulator -= dt
	}
	return float64(gl.accumulator) / float64(dt)
}

// Play starts or resumes the loop
func (gl *GameLoop) Play() {
	gl.running = true
	gl.lastTime = time.Now()
}

// Pause pauses the loop
func (gl *GameLoop) Pause() {
	gl.running = false
}

// Running reports whether the loop is ticking
func (gl *GameLoop) Running() bool { return gl.running }
