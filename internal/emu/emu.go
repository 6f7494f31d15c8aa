package emu

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/bus"
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/input"
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/machine"
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/memory"
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/sound"
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/video"
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/z80"
)

// CPU is the instruction decoder driving the bus. The core ships without
// one; frontends plug in a Z80 implementation through this.
type CPU interface {
	// Step executes one instruction against the bus.
	Step(b z80.Bus)
}

// freeRunClocks is how far a frame advances per step when no CPU is
// attached: the length of the shortest Z80 instruction.
const freeRunClocks = 4

// Emulator bundles the controller with its renderers and gives the frontend
// one object to drive.
type Emulator struct {
	settings   Settings
	controller *bus.Controller
	screen     *video.Renderer
	border     *video.BorderRecorder
	mixer      *sound.Mixer
	cpu        CPU
}

// New builds an emulator from settings.
func New(settings Settings) *Emulator {
	settings.Defaults()

	screen := video.NewRenderer(settings.Machine)
	border := video.NewBorderRecorder(settings.Machine)
	var mixer *sound.Mixer
	if settings.BeeperEnabled || settings.AYEnabled {
		mixer = sound.NewMixer(settings.BeeperEnabled, settings.AYEnabled, settings.SampleRate)
		mixer.Volume(float64(settings.Volume) / 200.0)
	}

	controller := bus.New(bus.Config{
		Machine:        settings.Machine,
		Screen:         screen,
		Border:         border,
		Mixer:          mixer,
		EnableKempston: settings.EnableKempston,
	})
	return &Emulator{
		settings:   settings,
		controller: controller,
		screen:     screen,
		border:     border,
		mixer:      mixer,
	}
}

// SetCPU attaches the instruction decoder.
func (e *Emulator) SetCPU(c CPU) { e.cpu = c }

// Controller exposes the bus for tools and tests.
func (e *Emulator) Controller() *bus.Controller { return e.controller }

// LoadROMFile loads a ROM image: one 16K page on the 48K, two on the 128K.
func (e *Emulator) LoadROMFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read rom: %w", err)
	}
	mem := e.controller.Memory()
	switch e.settings.Machine {
	case machine.Sinclair128K:
		if len(data) != 2*memory.PageSize {
			return fmt.Errorf("rom %s: got %d bytes, want %d", path, len(data), 2*memory.PageSize)
		}
		if err := mem.LoadRom(0, data[:memory.PageSize]); err != nil {
			return err
		}
		return mem.LoadRom(1, data[memory.PageSize:])
	default:
		if len(data) > memory.PageSize {
			return fmt.Errorf("rom %s: got %d bytes, want at most %d", path, len(data), memory.PageSize)
		}
		return mem.LoadRom(0, data)
	}
}

// EmulateFrame runs until the next frame boundary or until an event needs
// the frontend's attention, whichever comes first. Returns the pending
// events.
func (e *Emulator) EmulateFrame() bus.Events {
	start := e.controller.FramesCount()
	for e.controller.FramesCount() == start {
		if e.cpu != nil {
			e.cpu.Step(e.controller)
		} else {
			e.controller.WaitInternal(freeRunClocks)
		}
		if ev := e.controller.Events(); ev != 0 {
			return ev
		}
	}
	return e.controller.Events()
}

// SendKey forwards a key transition to the matrix.
func (e *Emulator) SendKey(key input.Key, pressed bool) {
	e.controller.SendKey(key, pressed)
}

// Joystick returns the Kempston interface, nil when disabled.
func (e *Emulator) Joystick() *input.Joystick { return e.controller.Joystick() }

// ClearEvents acknowledges all pending events.
func (e *Emulator) ClearEvents() { e.controller.ClearEvents() }

// Canvas returns the RGBA pixels of the frame rendered so far.
func (e *Emulator) Canvas() []byte { return e.screen.Canvas() }

// BorderColor returns the current border color.
func (e *Emulator) BorderColor() video.Color { return e.controller.BorderColor() }

// BorderLineColor returns the border color recorded for a scanline.
func (e *Emulator) BorderLineColor(line int) video.Color { return e.border.LineColor(line) }

// FramesCount returns how many frames have completed.
func (e *Emulator) FramesCount() int { return e.controller.FramesCount() }

// DrainAudio moves pending mixer samples into p, returning the count. Zero
// when sound is disabled.
func (e *Emulator) DrainAudio(p []float32) int {
	if e.mixer == nil {
		return 0
	}
	return e.mixer.Drain(p)
}

// SampleRate returns the mixer output rate, 0 when sound is disabled.
func (e *Emulator) SampleRate() int {
	if e.mixer == nil {
		return 0
	}
	return e.mixer.SampleRate()
}

// SaveState returns an in-memory snapshot of the whole machine.
func (e *Emulator) SaveState() []byte { return e.controller.SaveState() }

// LoadState restores a snapshot taken with the same settings.
func (e *Emulator) LoadState(data []byte) error { return e.controller.LoadState(data) }

// DebugDump writes a readable dump of the machine state for bug reports.
func (e *Emulator) DebugDump(w io.Writer) {
	type state struct {
		Machine    string
		Frames     int
		Clocks     int
		Border     video.Color
		ScreenBank byte
		Events     bus.Events
		Mapping    [4]memory.Page
	}
	s := state{
		Machine:    e.settings.Machine.String(),
		Frames:     e.controller.FramesCount(),
		Clocks:     e.controller.Clocks(),
		Border:     e.controller.BorderColor(),
		ScreenBank: e.controller.ScreenBank(),
		Events:     e.controller.Events(),
	}
	for slot := 0; slot < 4; slot++ {
		s.Mapping[slot] = e.controller.Memory().PageAt(uint16(slot) << 14)
	}
	spew.Fdump(w, s)
}
