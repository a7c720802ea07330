package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/1siamBot/tankarena/engine/arena"
	"github.com/1siamBot/tankarena/engine/config"
	"github.com/1siamBot/tankarena/engine/headless"
	"github.com/1siamBot/tankarena/engine/replay"
	"github.com/atotto/clipboard"
	"github.com/urfave/cli/v3"
)

func run(ctx context.Context, cmd *cli.Command) error {
	c, err := config.Load()
	if err != nil {
		log.Printf("config: %v", err)
	}
	config.Apply(cmd, &c)

	o := headless.Options{
		Runs:     cmd.Int("runs"),
		Ticks:    cmd.Int("ticks"),
		Seed:     c.Seed,
		Lives:    c.Lives,
		TickRate: c.TickRate,
	}

	if path := cmd.String("dump-map"); path != "" {
		tm := headless.GenerateMap(c.Seed, cmd.Int("level"))
		if err := tm.SaveJSON(path); err != nil {
			return err
		}
		fmt.Printf("level %d terrain for seed %d written to %s\n", tm.Level, c.Seed, path)
		return nil
	}

	if path := cmd.String("verify"); path != "" {
		return verify(path, uint64(o.Ticks))
	}

	var out string
	if path := cmd.String("record"); path != "" {
		out, err = record(path, o)
		if err != nil {
			return err
		}
	} else {
		out = headless.Run(o).String()
	}

	fmt.Print(out)
	if cmd.Bool("copy") {
		if err := clipboard.WriteAll(out); err != nil {
			log.Printf("clipboard: %v", err)
		}
	}
	return nil
}

// record plays a single run into a replay file, then checks that the file
// reproduces it
func record(path string, o headless.Options) (string, error) {
	s := arena.New(arena.Options{Seed: o.Seed, Lives: o.Lives, TickRate: o.TickRate})
	rec, err := replay.CreateRecorder(path, s.Header())
	if err != nil {
		return "", err
	}
	res := headless.Play(o.Seed, o, rec)
	if err := rec.Close(); err != nil {
		return "", err
	}

	rp, err := replay.Load(path)
	if err != nil {
		return "", err
	}
	if _, err := headless.Verify(rp, res.Steps, res.Summary); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s\nrecorded %d steps to %s, replay verified\n", res.Summary, res.Steps, path), nil
}

// verify plays a replay file back and prints where it ends
func verify(path string, steps uint64) error {
	rp, err := replay.Load(path)
	if err != nil {
		return err
	}
	if last := rp.LastStep() + 1; steps < last {
		steps = last
	}
	fmt.Printf("seed=%d %s\n", rp.Header.Seed, arena.PlayBack(rp, steps).Summary())
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "tankarena-headless",
		Usage: "play scripted tank arena runs without a display and report the results",
		Flags: append(config.Flags(),
			&cli.IntFlag{Name: "runs", Value: 10, Usage: "number of runs; run i uses seed+i"},
			&cli.IntFlag{Name: "ticks", Value: 3600, Usage: "maximum ticks per run"},
			&cli.BoolFlag{Name: "copy", Usage: "also copy the report to the clipboard"},
			&cli.StringFlag{Name: "record", Usage: "record a single run to this replay file and verify it"},
			&cli.StringFlag{Name: "verify", Usage: "play back a replay file and print its final summary"},
			&cli.StringFlag{Name: "dump-map", Usage: "write the generated terrain of --level as JSON and exit"},
			&cli.IntFlag{Name: "level", Value: 1, Usage: "level for --dump-map"},
		),
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
