package ui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/input"
)

// keymap translates host keys into matrix keys. Some host keys press two ZX
// keys at once (Backspace is CAPS SHIFT + 0 on the real machine).
var keymap = map[ebiten.Key][]input.Key{
	ebiten.KeyA: {input.KeyA}, ebiten.KeyB: {input.KeyB},
	ebiten.KeyC: {input.KeyC}, ebiten.KeyD: {input.KeyD},
	ebiten.KeyE: {input.KeyE}, ebiten.KeyF: {input.KeyF},
	ebiten.KeyG: {input.KeyG}, ebiten.KeyH: {input.KeyH},
	ebiten.KeyI: {input.KeyI}, ebiten.KeyJ: {input.KeyJ},
	ebiten.KeyK: {input.KeyK}, ebiten.KeyL: {input.KeyL},
	ebiten.KeyM: {input.KeyM}, ebiten.KeyN: {input.KeyN},
	ebiten.KeyO: {input.KeyO}, ebiten.KeyP: {input.KeyP},
	ebiten.KeyQ: {input.KeyQ}, ebiten.KeyR: {input.KeyR},
	ebiten.KeyS: {input.KeyS}, ebiten.KeyT: {input.KeyT},
	ebiten.KeyU: {input.KeyU}, ebiten.KeyV: {input.KeyV},
	ebiten.KeyW: {input.KeyW}, ebiten.KeyX: {input.KeyX},
	ebiten.KeyY: {input.KeyY}, ebiten.KeyZ: {input.KeyZ},

	ebiten.Key0: {input.Key0}, ebiten.Key1: {input.Key1},
	ebiten.Key2: {input.Key2}, ebiten.Key3: {input.Key3},
	ebiten.Key4: {input.Key4}, ebiten.Key5: {input.Key5},
	ebiten.Key6: {input.Key6}, ebiten.Key7: {input.Key7},
	ebiten.Key8: {input.Key8}, ebiten.Key9: {input.Key9},

	ebiten.KeyEnter:      {input.KeyEnter},
	ebiten.KeySpace:      {input.KeySpace},
	ebiten.KeyShiftLeft:  {input.KeyCapsShift},
	ebiten.KeyShiftRight: {input.KeySymShift},

	ebiten.KeyBackspace: {input.KeyCapsShift, input.Key0},
	ebiten.KeyComma:     {input.KeySymShift, input.KeyN},
	ebiten.KeyPeriod:    {input.KeySymShift, input.KeyM},
}

// kempstonMap drives the joystick from the cursor block.
var kempstonMap = map[ebiten.Key]byte{
	ebiten.KeyArrowUp:      input.KempstonUp,
	ebiten.KeyArrowDown:    input.KempstonDown,
	ebiten.KeyArrowLeft:    input.KempstonLeft,
	ebiten.KeyArrowRight:   input.KempstonRight,
	ebiten.KeyControlRight: input.KempstonFire,
}
