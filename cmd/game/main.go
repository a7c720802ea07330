package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/1siamBot/tankarena/engine/arena"
	"github.com/1siamBot/tankarena/engine/config"
	"github.com/1siamBot/tankarena/engine/core"
	"github.com/1siamBot/tankarena/engine/input/keyboard"
	"github.com/1siamBot/tankarena/engine/render"
	"github.com/1siamBot/tankarena/engine/replay"
	"github.com/1siamBot/tankarena/engine/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/urfave/cli/v3"
)

// errQuit ends RunGame without reporting a failure
var errQuit = errors.New("quit")

// Game implements ebiten.Game interface
type Game struct {
	session  *arena.Session
	gameLoop *core.GameLoop
	input    *keyboard.InputState
	renderer *render.FieldRenderer
	hud      *ui.HUD
}

func NewGame(s *arena.Session, scale float64) *Game {
	g := &Game{
		session: s,
		input:   keyboard.NewInputState(),
	}
	cam := render.NewCamera(s.World.Grid, scale, ui.TopBarHeight)
	fw, fh := cam.FieldSize()
	g.hud = ui.NewHUD(fw, fh)
	g.renderer = render.NewFieldRenderer(cam)

	// one session step per fixed tick; dt is implied by the session
	g.gameLoop = core.NewGameLoop(1/s.TickDuration().Seconds(), func(time.Duration) {
		g.session.Step(g.input.Table.Poll())
	})
	g.gameLoop.Play()
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.renderer.ShowGrid = !g.renderer.ShowGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.gameLoop.Running() {
			g.gameLoop.Pause()
		} else {
			g.gameLoop.Play()
		}
	}
	g.input.Update()
	g.gameLoop.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.session.Snapshot()
	g.renderer.Draw(screen, snap)
	g.hud.Draw(screen, g.session.Summary(), snap)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.hud.ScreenW, g.hud.ScreenH
}

func run(ctx context.Context, cmd *cli.Command) error {
	c, err := config.Load()
	if err != nil {
		log.Printf("config: %v", err)
	}
	config.Apply(cmd, &c)

	s := arena.Open(c, true)
	defer s.Close()

	if path := cmd.String("record"); path != "" {
		rec, err := replay.CreateRecorder(path, s.Header())
		if err != nil {
			return err
		}
		defer rec.Close()
		s.Record(rec)
	}

	game := NewGame(s, c.Scale)
	ebiten.SetWindowSize(game.hud.ScreenW, game.hud.ScreenH)
	ebiten.SetWindowTitle("Tank Arena")
	ebiten.SetTPS(int(c.TickRate + 0.5))
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "tankarena",
		Usage: "defend the base against waves of enemy tanks",
		Flags: append(config.Flags(),
			&cli.StringFlag{Name: "record", Usage: "write every tick's input to this replay file"},
		),
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
