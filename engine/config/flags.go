package config

import "github.com/urfave/cli/v3"

// Flags returns the command-line flags shared by every front end. They
// carry no defaults; an unset flag leaves the loaded value alone.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{Name: "seed", Usage: "random seed for terrain, spawns and enemy decisions"},
		&cli.IntFlag{Name: "lives", Usage: "starting lives"},
		&cli.Float64Flag{Name: "tick-rate", Usage: "simulation ticks per second"},
		&cli.BoolFlag{Name: "mute", Usage: "disable audio"},
		&cli.IntFlag{Name: "volume", Usage: "master volume 0-100"},
		&cli.StringFlag{Name: "highscore-file", Usage: "JSON file holding the high score"},
		&cli.StringFlag{Name: "database-url", Usage: "PostgreSQL URL for the high score (overrides the file)"},
		&cli.Float64Flag{Name: "scale", Usage: "window scale"},
	}
}

// Apply overrides c with every flag set on cmd
func Apply(cmd *cli.Command, c *Config) {
	if cmd.IsSet("seed") {
		c.Seed = cmd.Int64("seed")
	}
	if cmd.IsSet("lives") && cmd.Int("lives") > 0 {
		c.Lives = cmd.Int("lives")
	}
	if cmd.IsSet("tick-rate") && cmd.Float64("tick-rate") > 0 {
		c.TickRate = cmd.Float64("tick-rate")
	}
	if cmd.Bool("mute") {
		c.AudioEnabled = false
	}
	if cmd.IsSet("volume") {
		if v := cmd.Int("volume"); v >= 0 && v <= 100 {
			c.MasterVolume = v
		}
	}
	if cmd.IsSet("highscore-file") {
		c.HighScoreFile = cmd.String("highscore-file")
	}
	if cmd.IsSet("database-url") {
		c.DatabaseURL = cmd.String("database-url")
	}
	if cmd.IsSet("scale") && cmd.Float64("scale") > 0 {
		c.Scale = cmd.Float64("scale")
	}
}
