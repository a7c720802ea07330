package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/1siamBot/tankarena/engine/arena"
	"github.com/1siamBot/tankarena/engine/config"
	"github.com/1siamBot/tankarena/engine/terminal"
	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v3"
)

func run(ctx context.Context, cmd *cli.Command) error {
	c, err := config.Load()
	if err != nil {
		log.Printf("config: %v", err)
	}
	config.Apply(cmd, &c)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	s := arena.Open(c, c.AudioEnabled)
	defer s.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	err = terminal.Run(ctx, screen, s)
	screen.Fini()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	fmt.Println(s.Summary())
	return err
}

func main() {
	cmd := &cli.Command{
		Name:   "tankarena-term",
		Usage:  "play the tank arena in a terminal",
		Flags:  config.Flags(),
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
