// Package terminal plays the arena in a text terminal through tcell. Each
// field cell is drawn two columns wide so the field keeps its square shape.
package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/1siamBot/tankarena/engine/arena"
	"github.com/1siamBot/tankarena/engine/core"
	"github.com/1siamBot/tankarena/engine/input"
	"github.com/1siamBot/tankarena/engine/maplib"
	"github.com/1siamBot/tankarena/engine/wave"
	"github.com/gdamore/tcell/v2"
)

// CellWidth is the number of columns one field cell takes
const CellWidth = 2

// TapTicks is how long a key press counts as held. Terminals report
// presses and auto-repeat but never releases.
const TapTicks = 8

type glyph struct {
	r     rune
	style tcell.Style
}

var terrainGlyphs = map[maplib.TerrainType]glyph{
	maplib.TerrainSteel:    {'▓', tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorGray)},
	maplib.TerrainBrick:    {'▒', tcell.StyleDefault.Foreground(tcell.ColorMaroon).Background(tcell.ColorRed)},
	maplib.TerrainConcrete: {'█', tcell.StyleDefault.Foreground(tcell.ColorDarkGray)},
	maplib.TerrainWater:    {'≈', tcell.StyleDefault.Foreground(tcell.ColorAqua).Background(tcell.ColorNavy)},
	maplib.TerrainForest:   {'♣', tcell.StyleDefault.Foreground(tcell.ColorLime).Background(tcell.ColorGreen)},
}

var facingGlyphs = map[core.Direction]rune{
	core.DirUp:    '▲',
	core.DirRight: '▶',
	core.DirDown:  '▼',
	core.DirLeft:  '◀',
}

var archetypeColors = map[string]tcell.Color{
	"basic": tcell.ColorSilver,
	"fast":  tcell.ColorAqua,
	"power": tcell.ColorRed,
	"armor": tcell.ColorGreen,
}

var powerUpGlyphs = map[core.PowerUpType]rune{
	core.PowerSpeed:     'S',
	core.PowerRapidFire: 'R',
	core.PowerShield:    'O',
	core.PowerExtraLife: '+',
}

var (
	plain       = tcell.StyleDefault
	dim         = tcell.StyleDefault.Foreground(tcell.ColorGray)
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	baseStyle   = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	shellStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	pickupStyle = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	alertStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	okStyle     = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
)

// Renderer draws snapshots onto a tcell screen
type Renderer struct {
	Screen tcell.Screen
}

func NewRenderer(s tcell.Screen) *Renderer {
	return &Renderer{Screen: s}
}

// CellOf returns the field cell under a pixel position's tile center
func CellOf(g maplib.Grid, x, y float64) (int, int) {
	return int((x + g.Tile/2) / g.Tile), int((y + g.Tile/2) / g.Tile)
}

func (r *Renderer) put(cx, cy int, g glyph) {
	for i := 0; i < CellWidth; i++ {
		r.Screen.SetContent(cx*CellWidth+i, cy+1, g.r, nil, g.style)
	}
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.Screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

// Draw renders one frame and shows it
func (r *Renderer) Draw(snap arena.Snapshot, sm arena.Summary) {
	r.Screen.Clear()
	g := snap.Grid

	r.text(0, 0, fmt.Sprintf("LVL %d  SCORE %d  HIGH %d  LIVES %d  LEFT %d",
		sm.Level, sm.Score, sm.HighScore, sm.Lives, sm.EnemiesRemaining), plain)

	var forest []maplib.Cell
	for _, c := range snap.Terrain {
		if c.Terrain == maplib.TerrainForest {
			forest = append(forest, c)
			continue
		}
		r.put(c.X, c.Y, terrainGlyphs[c.Terrain])
	}

	bx, by := CellOf(g, snap.BaseX, snap.BaseY)
	if snap.BaseAlive {
		r.put(bx, by, glyph{'⌂', baseStyle})
	} else {
		r.put(bx, by, glyph{'x', alertStyle})
	}

	for _, pu := range snap.PowerUps {
		cx, cy := CellOf(g, pu.X, pu.Y)
		r.put(cx, cy, glyph{powerUpGlyphs[pu.Type], pickupStyle})
	}
	for _, e := range snap.Enemies {
		cx, cy := CellOf(g, e.X, e.Y)
		style := tcell.StyleDefault.Foreground(archetypeColors[e.Archetype])
		r.put(cx, cy, glyph{facingGlyphs[e.Facing], style})
	}
	if p := snap.Player; p != nil && p.Alive {
		cx, cy := CellOf(g, p.X, p.Y)
		r.put(cx, cy, glyph{facingGlyphs[p.Facing], playerStyle})
	}
	for _, s := range snap.Shells {
		cx, cy := int((s.X+s.W/2)/g.Tile), int((s.Y+s.H/2)/g.Tile)
		r.Screen.SetContent(cx*CellWidth, cy+1, '•', nil, shellStyle)
	}
	for _, c := range forest {
		r.put(c.X, c.Y, terrainGlyphs[c.Terrain])
	}
	for _, e := range snap.Effects {
		ch := '*'
		if e.Frame*2 >= e.Frames {
			ch = '+'
		}
		r.Screen.SetContent(int(e.X/g.Tile)*CellWidth, int(e.Y/g.Tile)+1, ch, nil, alertStyle)
	}

	r.drawSidebar(g.Cols*CellWidth+2, snap, sm)
	r.drawBanner(g, sm)
	r.Screen.Show()
}

func (r *Renderer) drawSidebar(x int, snap arena.Snapshot, sm arena.Summary) {
	y := 1
	r.text(x, y, sm.Goal, plain)
	y += 2
	buff := "none"
	if b := snap.Buff; b != nil {
		buff = b.Type.String()
		if !b.Unbounded {
			buff += fmt.Sprintf(" %.1fs", b.Remaining.Seconds())
		}
		if b.Type == core.PowerShield {
			buff += fmt.Sprintf(" (%d hits)", b.Charges)
		}
	}
	r.text(x, y, "buff: "+buff, plain)
	y += 2
	for _, e := range sm.Legend {
		gl := terrainGlyphs[e.Terrain]
		r.Screen.SetContent(x, y, gl.r, nil, gl.style)
		r.Screen.SetContent(x+1, y, gl.r, nil, gl.style)
		r.text(x+3, y, e.Name+": "+e.Note, dim)
		y++
	}
	y++
	r.text(x, y, "arrows/wasd move  space fire  r restart  esc quit", dim)
}

func (r *Renderer) drawBanner(g maplib.Grid, sm arena.Summary) {
	var msg string
	style := okStyle
	switch sm.State {
	case wave.StateLevelComplete:
		msg = fmt.Sprintf(" LEVEL %d CLEAR - fire to continue ", sm.Level)
	case wave.StateGameOver:
		msg, style = " GAME OVER - r to restart ", alertStyle
	default:
		return
	}
	x := (g.Cols*CellWidth - len([]rune(msg))) / 2
	if x < 0 {
		x = 0
	}
	r.text(x, g.Rows/2+1, msg, style.Reverse(true))
}

// Binding is what one terminal key does to the key table
type Binding struct {
	key   input.Key
	ticks int
	quit  bool
	ok    bool
}

// Bind maps a terminal key (and its rune for KeyRune) to a logical key
func Bind(k tcell.Key, ch rune) Binding {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Binding{quit: true, ok: true}
	case tcell.KeyUp:
		return Binding{input.KeyUp, TapTicks, false, true}
	case tcell.KeyRight:
		return Binding{input.KeyRight, TapTicks, false, true}
	case tcell.KeyDown:
		return Binding{input.KeyDown, TapTicks, false, true}
	case tcell.KeyLeft:
		return Binding{input.KeyLeft, TapTicks, false, true}
	case tcell.KeyRune:
		switch ch {
		case 'q':
			return Binding{quit: true, ok: true}
		case 'w':
			return Binding{input.KeyUp, TapTicks, false, true}
		case 'd':
			return Binding{input.KeyRight, TapTicks, false, true}
		case 's':
			return Binding{input.KeyDown, TapTicks, false, true}
		case 'a':
			return Binding{input.KeyLeft, TapTicks, false, true}
		case ' ':
			return Binding{input.KeyFire, 1, false, true}
		case 'r':
			return Binding{input.KeyRestart, 1, false, true}
		}
	}
	return Binding{}
}

// Apply taps the bound key. It reports false when the Binding quits.
func (b Binding) Apply(kt *input.KeyTable) bool {
	if b.quit {
		return false
	}
	if b.ok {
		kt.Tap(b.key, b.ticks)
	}
	return true
}

// HandleKey toggles the key table for one terminal key event. It reports
// false when the player asked to quit.
func HandleKey(ev *tcell.EventKey, kt *input.KeyTable) bool {
	return Bind(ev.Key(), ev.Rune()).Apply(kt)
}

// Run drives the session until ctx is done or the player quits. Events are
// read on their own goroutine; only the loop below touches the session.
func Run(ctx context.Context, screen tcell.Screen, s *arena.Session) error {
	kt := input.NewKeyTable()
	r := NewRenderer(screen)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(s.TickDuration())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !HandleKey(ev, kt) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			s.Step(kt.Poll())
			r.Draw(s.Snapshot(), s.Summary())
		}
	}
}
