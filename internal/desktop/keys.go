package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/qwerfighter/internal/input"
)

// keyFunc reports the state of one key, e.g. ebiten.IsKeyPressed.
type keyFunc func(ebiten.Key) bool

func anyKey(f keyFunc, keys ...ebiten.Key) bool {
	for _, k := range keys {
		if f(k) {
			return true
		}
	}
	return false
}

// readKeys maps the keyboard onto the same input the terminal produces.
// Movement follows held keys; everything else fires once per press.
func readKeys(held, pressed keyFunc) input.Input {
	return input.Input{
		Left:  anyKey(held, ebiten.KeyArrowLeft, ebiten.KeyH),
		Right: anyKey(held, ebiten.KeyArrowRight, ebiten.KeyL),
		Up:    anyKey(held, ebiten.KeyArrowUp, ebiten.KeyK),
		Down:  anyKey(held, ebiten.KeyArrowDown, ebiten.KeyJ),

		Charged: pressed(ebiten.KeyQ),
		Barrage: pressed(ebiten.KeyW),
		Shield:  pressed(ebiten.KeyE),
		Homing:  pressed(ebiten.KeyR),

		Pause:   anyKey(pressed, ebiten.KeyTab, ebiten.KeyP),
		Restart: anyKey(pressed, ebiten.KeyEnter, ebiten.KeySpace),
		Quit:    anyKey(pressed, ebiten.KeyEscape, ebiten.KeyX),
	}
}
