package input

import (
	"testing"

	"github.com/1siamBot/tankarena/engine/core"
	"github.com/stretchr/testify/assert"
)

func TestFireIsEdgeDetected(t *testing.T) {
	kt := NewKeyTable()
	kt.Press(KeyFire)

	assert.True(t, kt.Poll().Fire)
	assert.False(t, kt.Poll().Fire, "held key fires once")
	assert.False(t, kt.Poll().Fire)

	kt.Release(KeyFire)
	assert.False(t, kt.Poll().Fire)
	kt.Press(KeyFire)
	assert.True(t, kt.Poll().Fire)
}

func TestMovePriority(t *testing.T) {
	kt := NewKeyTable()
	assert.Equal(t, core.DirNone, kt.Poll().Move)

	kt.Press(KeyLeft)
	assert.Equal(t, core.DirLeft, kt.Poll().Move)
	kt.Press(KeyUp)
	assert.Equal(t, core.DirUp, kt.Poll().Move, "up wins over left")
	kt.Release(KeyUp)
	kt.Press(KeyDown)
	assert.Equal(t, core.DirDown, kt.Poll().Move)
}

func TestTapHoldsForTicks(t *testing.T) {
	kt := NewKeyTable()
	kt.Tap(KeyRight, 3)

	for i := 0; i < 3; i++ {
		assert.Equal(t, core.DirRight, kt.Poll().Move, "poll %d", i)
	}
	assert.Equal(t, core.DirNone, kt.Poll().Move)
}

func TestTappedRestartTriggersOnce(t *testing.T) {
	kt := NewKeyTable()
	kt.Tap(KeyRestart, 5)
	assert.True(t, kt.Poll().Restart)
	assert.False(t, kt.Poll().Restart)
}

func TestSetReplacesTable(t *testing.T) {
	kt := NewKeyTable()
	kt.Press(KeyUp)
	kt.Set(map[Key]bool{KeyFire: true})
	assert.False(t, kt.Held(KeyUp))
	assert.True(t, kt.Held(KeyFire))
	assert.Equal(t, "fire", KeyFire.String())
}
