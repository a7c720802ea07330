package arena

import (
	"log"

	"github.com/1siamBot/tankarena/engine/audio"
	"github.com/1siamBot/tankarena/engine/config"
	"github.com/1siamBot/tankarena/engine/persistence"
)

// Open builds a session from c, opening the high-score store and, when
// withAudio is set, the speaker. Either failing only degrades the session.
func Open(c config.Config, withAudio bool) *Session {
	opts := Options{
		Seed:     c.Seed,
		Lives:    c.Lives,
		TickRate: c.TickRate,
	}

	store, err := persistence.Open(c.DatabaseURL, c.HighScoreFile)
	if err != nil {
		log.Printf("high score store unavailable, using memory: %v", err)
		store = persistence.NewMemoryStore()
	}
	opts.Store = store

	if withAudio {
		p, err := audio.Open(c.AudioEnabled, c.Volume())
		if err != nil {
			log.Printf("audio disabled: %v", err)
		}
		opts.Audio = p
	}

	s := New(opts)
	s.owned = true
	return s
}
