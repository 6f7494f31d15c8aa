package ui

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/bus"
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/machine"
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/video"
)

// zxFrameRate is the machine's frame rate; ebiten ticks at 60, so frames are
// paced with an accumulator.
const zxFrameRate = 50.0

type App struct {
	cfg Config
	m   *emu.Emulator

	tex    *ebiten.Image
	paused bool

	// timing
	lastTime time.Time
	frameAcc float64

	// audio
	audioCtx    *audio.Context
	audioPlayer *audio.Player
}

func NewApp(cfg Config, m *emu.Emulator) *App {
	cfg = loadSettings(cfg)
	cfg.Defaults()
	a := &App{cfg: cfg, m: m}
	a.tex = ebiten.NewImage(machine.CanvasWidth, machine.CanvasHeight)
	a.lastTime = time.Now()

	ebiten.SetWindowTitle(cfg.Title)
	w, h := a.viewSize()
	ebiten.SetWindowSize(w*cfg.Scale, h*cfg.Scale)

	if rate := m.SampleRate(); rate > 0 {
		a.audioCtx = audio.NewContext(rate)
		player, err := a.audioCtx.NewPlayer(&beeperStream{m: m})
		if err == nil {
			player.SetBufferSize(time.Duration(cfg.AudioBufferMs) * time.Millisecond)
			player.Play()
			a.audioPlayer = player
		}
	}
	return a
}

func (a *App) viewSize() (int, int) {
	return machine.CanvasWidth + 2*a.cfg.BorderSize,
		machine.CanvasHeight + 2*a.cfg.BorderSize
}

func (a *App) Update() error {
	a.pollInput()
	if a.paused {
		a.lastTime = time.Now()
		return nil
	}

	now := time.Now()
	a.frameAcc += now.Sub(a.lastTime).Seconds() * zxFrameRate
	a.lastTime = now
	// cap the backlog so a stall does not fast-forward the machine
	if a.frameAcc > 3 {
		a.frameAcc = 3
	}
	for a.frameAcc >= 1 {
		ev := a.m.EmulateFrame()
		if ev.Has(bus.EventTapeFastLoad) {
			// no tape deck attached in this frontend; acknowledge and move on
			a.m.ClearEvents()
		}
		a.frameAcc--
	}
	return nil
}

func (a *App) pollInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.paused = !a.paused
	}
	for hostKey, zxKeys := range keymap {
		if inpututil.IsKeyJustPressed(hostKey) {
			for _, k := range zxKeys {
				a.m.SendKey(k, true)
			}
		}
		if inpututil.IsKeyJustReleased(hostKey) {
			for _, k := range zxKeys {
				a.m.SendKey(k, false)
			}
		}
	}
	if joy := a.m.Joystick(); joy != nil {
		for hostKey, mask := range kempstonMap {
			if inpututil.IsKeyJustPressed(hostKey) {
				joy.SetButton(mask, true)
			}
			if inpututil.IsKeyJustReleased(hostKey) {
				joy.SetButton(mask, false)
			}
		}
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	border := video.PaletteRGBA(a.m.BorderColor())
	screen.Fill(color.RGBA{border[0], border[1], border[2], border[3]})

	a.tex.WritePixels(a.m.Canvas())
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(a.cfg.BorderSize), float64(a.cfg.BorderSize))
	screen.DrawImage(a.tex, &op)
}

func (a *App) Layout(_, _ int) (int, int) {
	return a.viewSize()
}

// Run opens the window and blocks until it closes.
func (a *App) Run() error {
	return ebiten.RunGame(a)
}
