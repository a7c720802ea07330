package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Prefix namespaces every environment variable the arena reads
const Prefix = "TANKARENA_"

// Config is the runtime configuration shared by every front end
type Config struct {
	Seed          int64
	Lives         int
	TickRate      float64
	AudioEnabled  bool
	MasterVolume  int // 0-100
	HighScoreFile string
	DatabaseURL   string
	Scale         float64 // window scale for the ebiten front end
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Seed:          1,
		Lives:         3,
		TickRate:      60,
		AudioEnabled:  true,
		MasterVolume:  70,
		HighScoreFile: "highscore.json",
		Scale:         1,
	}
}

// Volume returns MasterVolume as a 0-1 gain
func (c Config) Volume() float64 {
	return float64(c.MasterVolume) / 100
}

// Load reads an optional .env file, then applies environment overrides on
// top of Default. A missing .env file is not an error.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Default(), err
	}
	return FromEnv(os.LookupEnv), nil
}

// FromEnv builds a Config from lookup. Values that fail to parse or fall
// outside their range keep the default.
func FromEnv(lookup func(string) (string, bool)) Config {
	c := Default()
	get := func(name string) (string, bool) {
		v, ok := lookup(Prefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("SEED"); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = n
		}
	}
	if v, ok := get("LIVES"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Lives = n
		}
	}
	if v, ok := get("TICK_RATE"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.TickRate = f
		}
	}
	if v, ok := get("AUDIO_ENABLED"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AudioEnabled = b
		}
	}
	if v, ok := get("MASTER_VOLUME"); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 100 {
			c.MasterVolume = n
		}
	}
	if v, ok := get("HIGHSCORE_FILE"); ok {
		c.HighScoreFile = v
	}
	if v, ok := get("DATABASE_URL"); ok {
		c.DatabaseURL = v
	}
	if v, ok := get("SCALE"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.Scale = f
		}
	}
	return c
}
