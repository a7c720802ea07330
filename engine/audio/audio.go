package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue names a sound effect
type Cue string

const (
	CueShoot    Cue = "shoot"
	CueHit      Cue = "hit"
	CueExplode  Cue = "explode"
	CueGameOver Cue = "game-over"
	CuePowerUp  Cue = "power-up"
)

// Cues lists every cue
var Cues = []Cue{CueShoot, CueHit, CueExplode, CueGameOver, CuePowerUp}

// Player triggers cues fire-and-forget. Implementations must never block
// the caller or report failure.
type Player interface {
	Play(c Cue)
}

// Nop discards every cue
type Nop struct{}

func (Nop) Play(Cue) {}

// Log records cues in order. Used by headless runs and tests.
type Log struct {
	Cues []Cue
}

func (l *Log) Play(c Cue) { l.Cues = append(l.Cues, c) }

// Count returns how many times c was played
func (l *Log) Count(c Cue) int {
	n := 0
	for _, x := range l.Cues {
		if x == c {
			n++
		}
	}
	return n
}

// AudioManager synthesizes cues through the system speaker
type AudioManager struct {
	mu           sync.Mutex
	MasterVolume float64
	mixer        *beep.Mixer
	initialized  bool
}

func NewAudioManager(volume float64) *AudioManager {
	am := &AudioManager{mixer: &beep.Mixer{}}
	am.SetVolume(volume)
	return am
}

// Initialize opens the speaker. Calling it twice is a no-op.
func (am *AudioManager) Initialize() error {
	am.mu.Lock()
	defer am.mu.Unlock()

	if am.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(am.mixer)
	am.initialized = true
	return nil
}

// Play queues the cue on the mixer. Before Initialize it does nothing.
func (am *AudioManager) Play(c Cue) {
	am.mu.Lock()
	defer am.mu.Unlock()

	if !am.initialized {
		return
	}
	s := withVolume(Streamer(c), am.MasterVolume)
	speaker.Lock()
	am.mixer.Add(s)
	speaker.Unlock()
}

// Cleanup silences everything still playing
func (am *AudioManager) Cleanup() {
	am.mu.Lock()
	defer am.mu.Unlock()

	if !am.initialized {
		return
	}
	speaker.Lock()
	am.mixer.Clear()
	speaker.Unlock()
	am.initialized = false
}

// SetVolume sets master volume (0-1)
func (am *AudioManager) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	am.MasterVolume = v
}

// Open returns a speaker-backed player, or Nop when audio is disabled or
// the device cannot be opened. The error is only informational.
func Open(enabled bool, volume float64) (Player, error) {
	if !enabled {
		return Nop{}, nil
	}
	am := NewAudioManager(volume)
	if err := am.Initialize(); err != nil {
		return Nop{}, err
	}
	return am, nil
}

// withVolume wraps s in a gain stage. math.Log2(0) is -Inf, so zero volume
// is expressed as silent instead.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Streamer returns the finite synthesized sound for c
func Streamer(c Cue) beep.Streamer {
	switch c {
	case CueShoot:
		return beep.Take(sampleRate.N(80*time.Millisecond), NewSweepGenerator(sampleRate, 880, 440, 0.25))
	case CueHit:
		return beep.Take(sampleRate.N(60*time.Millisecond), NewSweepGenerator(sampleRate, 220, 180, 0.3))
	case CueExplode:
		return beep.Take(sampleRate.N(300*time.Millisecond), NewNoiseGenerator(sampleRate, 1))
	case CueGameOver:
		return beep.Take(sampleRate.N(600*time.Millisecond), NewSweepGenerator(sampleRate, 440, 110, 0.3))
	case CuePowerUp:
		return beep.Take(sampleRate.N(200*time.Millisecond), NewSweepGenerator(sampleRate, 440, 990, 0.25))
	}
	return beep.Silence(0)
}

// SweepGenerator is a sine whose pitch glides linearly from one frequency
// to another over a fixed window, with an exponential fade.
type SweepGenerator struct {
	sr        beep.SampleRate
	from, to  float64
	amplitude float64
	window    int
	pos       int
	phase     float64
}

func NewSweepGenerator(sr beep.SampleRate, from, to, amplitude float64) *SweepGenerator {
	return &SweepGenerator{
		sr:        sr,
		from:      from,
		to:        to,
		amplitude: amplitude,
		window:    sr.N(500 * time.Millisecond),
	}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		f := math.Min(float64(g.pos)/float64(g.window), 1)
		freq := g.from + (g.to-g.from)*f
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		t := float64(g.pos) / float64(g.sr)
		s := g.amplitude * math.Exp(-t*6) * math.Sin(g.phase)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error { return nil }

// NoiseGenerator is decaying noise over a low rumble
type NoiseGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

func NewNoiseGenerator(sr beep.SampleRate, seed int64) *NoiseGenerator {
	return &NoiseGenerator{sr: sr, seed: seed}
}

func (g *NoiseGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		rumble := 0.3 * math.Sin(2*math.Pi*60*t)
		s := math.Exp(-t*8) * (0.3*noise + rumble)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *NoiseGenerator) Err() error { return nil }
