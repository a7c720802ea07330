package arena

import (
	"fmt"
	"strings"

	"github.com/1siamBot/tankarena/engine/maplib"
	"github.com/1siamBot/tankarena/engine/wave"
)

// LegendEntry describes one terrain type for the HUD
type LegendEntry struct {
	Terrain maplib.TerrainType
	Name    string
	Note    string
}

// Summary is the UI-facing state of the session
type Summary struct {
	Score            int
	Lives            int
	Level            int
	EnemiesRemaining int // not yet spawned plus alive
	HighScore        int
	Kills            int
	Deaths           int
	Goal             string
	Legend           []LegendEntry
	State            wave.State
	Ticks            uint64
}

// Summary captures the HUD values
func (s *Session) Summary() Summary {
	w, d := s.World, s.Director
	return Summary{
		Score:            w.Stats.Score,
		Lives:            w.Stats.Lives,
		Level:            d.Level,
		EnemiesRemaining: d.Remaining + w.LiveEnemies(),
		HighScore:        s.highScore,
		Kills:            w.Stats.Kills,
		Deaths:           w.Stats.Deaths,
		Goal:             d.Config.Goal(),
		Legend:           Legend(),
		State:            d.State,
		Ticks:            w.TickCount,
	}
}

// Legend lists the placeable terrain types with their behaviour
func Legend() []LegendEntry {
	out := make([]LegendEntry, 0, len(maplib.Placeable))
	for _, tt := range maplib.Placeable {
		p := maplib.Props(tt)
		var notes []string
		if p.Passable {
			notes = append(notes, "tanks pass")
		} else {
			notes = append(notes, "blocks tanks")
		}
		switch p.Reaction {
		case maplib.ReactAbsorbRemove:
			notes = append(notes, "destroyed by shells")
		case maplib.ReactAbsorbKeep:
			notes = append(notes, "stops shells")
		case maplib.ReactChanceRemovePass:
			notes = append(notes, fmt.Sprintf("shells pass, %d%% burn chance", int(p.DestroyChance*100+0.5)))
		case maplib.ReactPassThrough:
			notes = append(notes, "shells pass")
		}
		out = append(out, LegendEntry{Terrain: tt, Name: p.Name, Note: strings.Join(notes, ", ")})
	}
	return out
}

// String renders the summary as one report line
func (sm Summary) String() string {
	return fmt.Sprintf("level=%d score=%d high=%d lives=%d kills=%d deaths=%d left=%d state=%s ticks=%d",
		sm.Level, sm.Score, sm.HighScore, sm.Lives, sm.Kills, sm.Deaths, sm.EnemiesRemaining, sm.State, sm.Ticks)
}
