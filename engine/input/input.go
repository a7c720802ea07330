package input

import (
	"github.com/1siamBot/tankarena/engine/core"
)

// Key is a logical game key
type Key uint8

const (
	KeyUp Key = iota
	KeyRight
	KeyDown
	KeyLeft
	KeyFire
	KeyRestart
	keyCount
)

var keyNames = [keyCount]string{"up", "right", "down", "left", "fire", "restart"}

func (k Key) String() string {
	if k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// moveKeys are checked in this order; the first held key wins
var moveKeys = [4]struct {
	key Key
	dir core.Direction
}{
	{KeyUp, core.DirUp},
	{KeyRight, core.DirRight},
	{KeyDown, core.DirDown},
	{KeyLeft, core.DirLeft},
}

// KeyTable is the logical key-pressed table. Device handlers only toggle
// entries; the simulation reads it once per tick through Poll.
type KeyTable struct {
	down [keyCount]bool
	hold [keyCount]int // ticks left on a Tap
	prev [keyCount]bool
}

func NewKeyTable() *KeyTable {
	return &KeyTable{}
}

// Press marks k as held until Release
func (t *KeyTable) Press(k Key) {
	if k < keyCount {
		t.down[k] = true
	}
}

// Release marks k as up
func (t *KeyTable) Release(k Key) {
	if k < keyCount {
		t.down[k] = false
		t.hold[k] = 0
	}
}

// Tap holds k for the next ticks polls. For devices that report presses
// but no releases, such as a terminal.
func (t *KeyTable) Tap(k Key, ticks int) {
	if k < keyCount && ticks > t.hold[k] {
		t.hold[k] = ticks
	}
}

// Set replaces the whole table with the given held keys
func (t *KeyTable) Set(held map[Key]bool) {
	for k := Key(0); k < keyCount; k++ {
		t.down[k] = held[k]
	}
}

// Held reports whether k counts as down right now
func (t *KeyTable) Held(k Key) bool {
	return k < keyCount && (t.down[k] || t.hold[k] > 0)
}

// Poll samples the table into one tick's command. Fire and restart are
// edge-detected: they are true only on the poll where the key went down.
func (t *KeyTable) Poll() core.Command {
	var now [keyCount]bool
	for k := Key(0); k < keyCount; k++ {
		now[k] = t.Held(k)
		if t.hold[k] > 0 {
			t.hold[k]--
		}
	}

	cmd := core.Idle
	for _, m := range moveKeys {
		if now[m.key] {
			cmd.Move = m.dir
			break
		}
	}
	cmd.Fire = now[KeyFire] && !t.prev[KeyFire]
	cmd.Restart = now[KeyRestart] && !t.prev[KeyRestart]
	t.prev = now
	return cmd
}
