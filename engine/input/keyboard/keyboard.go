// Package keyboard feeds the ebiten keyboard into the logical key table.
package keyboard

import (
	"github.com/1siamBot/tankarena/engine/input"
	"github.com/hajimehoshi/ebiten/v2"
)

// Bindings maps each logical key to the physical keys that drive it
var Bindings = map[input.Key][]ebiten.Key{
	input.KeyUp:      {ebiten.KeyArrowUp, ebiten.KeyW},
	input.KeyRight:   {ebiten.KeyArrowRight, ebiten.KeyD},
	input.KeyDown:    {ebiten.KeyArrowDown, ebiten.KeyS},
	input.KeyLeft:    {ebiten.KeyArrowLeft, ebiten.KeyA},
	input.KeyFire:    {ebiten.KeySpace},
	input.KeyRestart: {ebiten.KeyR},
}

// InputState mirrors the keyboard into a KeyTable once per frame
type InputState struct {
	Table *input.KeyTable
}

func NewInputState() *InputState {
	return &InputState{Table: input.NewKeyTable()}
}

// Update should be called every frame before the simulation tick
func (s *InputState) Update() {
	held := make(map[input.Key]bool, len(Bindings))
	for k, keys := range Bindings {
		for _, pk := range keys {
			if ebiten.IsKeyPressed(pk) {
				held[k] = true
				break
			}
		}
	}
	s.Table.Set(held)
}
