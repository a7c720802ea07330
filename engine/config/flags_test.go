package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func runFlags(t *testing.T, base Config, args ...string) Config {
	t.Helper()
	got := base
	cmd := &cli.Command{
		Name:  "arena",
		Flags: Flags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			Apply(cmd, &got)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"arena"}, args...)))
	return got
}

func TestFlagsOverrideLoaded(t *testing.T) {
	base := Default()
	base.HighScoreFile = "from-env.json"

	c := runFlags(t, base, "--seed", "99", "--lives", "7", "--mute", "--volume", "10", "--tick-rate", "30")
	assert.Equal(t, int64(99), c.Seed)
	assert.Equal(t, 7, c.Lives)
	assert.False(t, c.AudioEnabled)
	assert.Equal(t, 10, c.MasterVolume)
	assert.Equal(t, 30.0, c.TickRate)
	assert.Equal(t, "from-env.json", c.HighScoreFile, "unset flags keep the loaded value")
}

func TestFlagsRejectOutOfRange(t *testing.T) {
	c := runFlags(t, Default(), "--lives", "0", "--volume", "150", "--scale", "-2")
	assert.Equal(t, Default(), c)
}
