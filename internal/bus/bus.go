package bus

import (
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/input"
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/machine"
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/memory"
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/sound"
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/tape"
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/video"
)

// Config wires the controller to its machine variant and peripherals. Screen
// is required; Border, Mixer, and the joystick are optional.
type Config struct {
	Machine        machine.Machine
	Screen         video.Screen
	Border         video.Border
	Tape           tape.Player
	Mixer          *sound.Mixer
	EnableKempston bool
}

// Controller is the system bus the CPU talks to. It owns the banked memory,
// routes IO to the ULA, AY, Kempston, and pager, accounts every T-state of
// the frame, and inserts the ULA's contention stalls.
type Controller struct {
	mach   machine.Machine
	specs  machine.Specs
	memory *memory.Memory
	screen video.Screen
	border video.Border
	tape   tape.Player
	mixer  *sound.Mixer
	joy    *input.Joystick

	keyboard    [8]byte // one byte per half-row, bit=1 means key up
	borderColor video.Color

	frameClocks  int
	passedFrames int
	events       Events

	mic bool // audio in (tape)
	ear bool // audio out (speaker)

	pagingEnabled bool
	screenBank    byte
}

// New builds a controller for the configured machine with the power-on
// memory map.
func New(cfg Config) *Controller {
	c := &Controller{
		mach:   cfg.Machine,
		specs:  cfg.Machine.Specs(),
		screen: cfg.Screen,
		border: cfg.Border,
		tape:   cfg.Tape,
		mixer:  cfg.Mixer,
	}
	switch cfg.Machine {
	case machine.Sinclair128K:
		c.memory = memory.New(memory.Rom32K, memory.Ram128K)
		c.pagingEnabled = true
		c.screenBank = 5
	default:
		c.memory = memory.New(memory.Rom16K, memory.Ram48K)
		c.pagingEnabled = false
		c.screenBank = 0
	}
	if c.tape == nil {
		c.tape = tape.Null{}
	}
	if cfg.EnableKempston {
		c.joy = &input.Joystick{}
	}
	for i := range c.keyboard {
		c.keyboard[i] = 0xFF
	}
	return c
}

// Memory exposes the banked memory for ROM loading and snapshots.
func (c *Controller) Memory() *memory.Memory { return c.memory }

// Joystick returns the Kempston interface, nil when not fitted.
func (c *Controller) Joystick() *input.Joystick { return c.joy }

// Machine returns the emulated variant.
func (c *Controller) Machine() machine.Machine { return c.mach }

// BorderColor returns the current 3-bit border color.
func (c *Controller) BorderColor() video.Color { return c.borderColor }

// ScreenBank returns the RAM bank currently feeding the display.
func (c *Controller) ScreenBank() byte { return c.screenBank }

// SendKey presses or releases one key of the matrix.
func (c *Controller) SendKey(key input.Key, pressed bool) {
	c.keyboard[key.Row] &^= key.Mask
	if !pressed {
		c.keyboard[key.Row] |= key.Mask
	}
}

// Events returns the accumulated event set.
func (c *Controller) Events() Events { return c.events }

// ClearEvents empties the event set.
func (c *Controller) ClearEvents() { c.events = 0 }

// FramesCount returns how many frame boundaries have been crossed.
func (c *Controller) FramesCount() int { return c.passedFrames }

// ResetFrameCounter zeroes the frame counter.
func (c *Controller) ResetFrameCounter() { c.passedFrames = 0 }

// Clocks returns the T-state count from frame start.
func (c *Controller) Clocks() int { return c.frameClocks }

// framePos returns the frame progress as 0..1 for the audio mixer.
func (c *Controller) framePos() float64 {
	pos := float64(c.frameClocks) / float64(c.specs.ClocksFrame)
	if pos > 1 {
		return 1
	}
	return pos
}

// newFrame rolls the clock back by one frame, keeping the residue the last
// instruction ran past the boundary, and tells the renderers.
func (c *Controller) newFrame() {
	c.frameClocks -= c.specs.ClocksFrame
	c.screen.NewFrame()
	if c.border != nil {
		c.border.NewFrame()
	}
	if c.mixer != nil {
		c.mixer.NewFrame()
	}
}

func (c *Controller) setBorderColor(clocks int, color video.Color) {
	c.borderColor = color
	if c.border != nil {
		c.border.SetBorder(clocks, color)
	}
}

// addrIsContended reports whether the slot holding addr maps a contended RAM
// bank. ROM is never contended.
func (c *Controller) addrIsContended(addr uint16) bool {
	page := c.memory.PageAt(addr)
	return page.InRAM && c.mach.BankIsContended(int(page.Num))
}

// doContention stalls for whatever the ULA demands at the current clock.
func (c *Controller) doContention() {
	c.WaitInternal(c.mach.ContentionClocks(c.frameClocks))
}

func (c *Controller) doContentionAndWait(clk int) {
	c.WaitInternal(c.mach.ContentionClocks(c.frameClocks) + clk)
}

// ioContentionFirst covers the first half of an IO machine cycle.
func (c *Controller) ioContentionFirst(port uint16) {
	if c.addrIsContended(port) {
		c.doContention()
	}
	c.WaitInternal(1)
}

// ioContentionLast covers the second half of an IO machine cycle. The four
// cases follow the classic ULA pattern.
func (c *Controller) ioContentionLast(port uint16) {
	if c.mach.PortIsContended(port) {
		c.doContentionAndWait(2)
	} else if c.addrIsContended(port) {
		c.doContentionAndWait(1)
		c.doContentionAndWait(1)
		c.doContention()
	} else {
		c.WaitInternal(2)
	}
}

// floatingBusValue is what an unmapped port read picks up: whatever byte the
// ULA is fetching from screen memory at this very T-state, 0xFF when the
// beam is in border or the ULA is idle.
func (c *Controller) floatingBusValue() byte {
	t := c.frameClocks - (c.specs.ClocksFirstPixel + 2)
	if t < 0 {
		return 0xFF
	}
	row := t / c.specs.ClocksLine
	lineClk := t % c.specs.ClocksLine
	if row >= machine.CanvasHeight ||
		lineClk >= c.specs.ClocksScreenRow-machine.ClocksPerCol ||
		lineClk&0x04 != 0 {
		return 0xFF
	}
	col := (lineClk/8)*2 + (lineClk%8)/2
	if lineClk%2 == 0 {
		return c.memory.Read(video.BitmapLineAddr(row) + uint16(col))
	}
	attr := (row/8)*32 + col
	return c.memory.Read(0x5800 + uint16(attr))
}

// write7FFD handles the 128K pager. A set lock bit latches the port shut
// until reset.
func (c *Controller) write7FFD(val byte) {
	if !c.pagingEnabled {
		return
	}
	// top slot takes any of the eight banks
	c.memory.Remap(3, memory.Ram(val&0x07))
	// the displayed bank switches between 5 and 7 without remapping
	newBank := byte(5)
	if val&0x08 != 0 {
		newBank = 7
	}
	c.screen.SwitchBank(int(newBank))
	c.screenBank = newBank
	c.memory.Remap(0, memory.Rom((val>>4)&0x01))
	if val&0x20 != 0 {
		c.pagingEnabled = false
	}
}

func (c *Controller) readAYPort() byte {
	if c.mixer != nil && c.mixer.AY != nil {
		return c.mixer.AY.Read()
	}
	return c.floatingBusValue()
}

func (c *Controller) writeAYPort(val byte) {
	if c.mixer != nil && c.mixer.AY != nil {
		c.mixer.AY.Write(val)
	}
}

func (c *Controller) selectAYReg(val byte) {
	if c.mixer != nil && c.mixer.AY != nil {
		c.mixer.AY.SelectReg(val)
	}
}

// PCCallback watches instruction fetches for the tape loader break point.
func (c *Controller) PCCallback(addr uint16) {
	var romPaged bool
	switch c.mach {
	case machine.Sinclair48K:
		romPaged = c.memory.PageAt(0) == memory.Rom(0)
	case machine.Sinclair128K:
		romPaged = c.memory.PageAt(0) == memory.Rom(1)
	}
	if romPaged && addr == machine.AddrLDBreak {
		c.events |= EventTapeFastLoad
	}
}

// ReadInternal reads memory without contention or clocks.
func (c *Controller) ReadInternal(addr uint16) byte {
	return c.memory.Read(addr)
}

// WriteInternal writes memory without contention or clocks and mirrors RAM
// writes into the screen renderer, which keeps shadows of the displayable
// banks.
func (c *Controller) WriteInternal(addr uint16, data byte) {
	c.memory.Write(addr, data)
	if page := c.memory.PageAt(addr); page.InRAM {
		c.screen.Update(addr&(memory.PageSize-1), int(page.Num), data)
	}
}

// WaitInternal advances the frame clock and drags tape, audio, and screen
// along. Crossing the frame boundary keeps the overshoot as the next
// frame's starting clock.
func (c *Controller) WaitInternal(clk int) {
	c.frameClocks += clk
	c.tape.ProcessClocks(clk)
	c.mic = c.tape.CurrentBit()
	if c.mixer != nil {
		c.mixer.Beeper.ChangeBit(c.mic || c.ear)
		c.mixer.Process(c.framePos())
	}
	c.screen.ProcessClocks(c.frameClocks)
	if c.frameClocks >= c.specs.ClocksFrame {
		c.newFrame()
		c.passedFrames++
	}
}

// WaitMreq is a wait with the memory request pin active: a contended
// address stalls before the clocks are spent.
func (c *Controller) WaitMreq(addr uint16, clk int) {
	if c.addrIsContended(addr) {
		c.doContention()
	}
	c.WaitInternal(clk)
}

// WaitNoMreq behaves like WaitMreq on both supported machines.
func (c *Controller) WaitNoMreq(addr uint16, clk int) {
	c.WaitMreq(addr, clk)
}

// ReadIO performs a full IO read cycle: contention, port decode, one
// trailing T-state.
func (c *Controller) ReadIO(port uint16) byte {
	c.ioContentionFirst(port)
	c.ioContentionLast(port)
	high := byte(port >> 8)
	var output byte
	switch {
	case port&0x0001 == 0:
		// ULA: AND together every half-row whose select bit is low
		output = 0xFF
		for n := 0; n < 8; n++ {
			if high>>n&0x01 == 0 {
				output &= c.keyboard[n]
			}
		}
		if c.mic {
			output ^= 0x40
		}
	case port&0xC002 == 0xC000:
		output = c.readAYPort()
	case c.joy != nil && port&0x0020 == 0:
		output = c.joy.Read()
	default:
		output = c.floatingBusValue()
	}
	c.WaitInternal(1)
	return output
}

// WriteIO performs a full IO write cycle.
func (c *Controller) WriteIO(port uint16, data byte) {
	c.ioContentionFirst(port)
	switch {
	case port&0xC002 == 0xC000:
		c.selectAYReg(data)
	case port&0xC002 == 0x8000:
		c.writeAYPort(data)
	case port&0x0001 == 0:
		c.setBorderColor(c.frameClocks, video.Color(data&0x07))
		c.mic = data&0x08 != 0
		c.ear = data&0x10 != 0
		if c.mixer != nil {
			c.mixer.Beeper.ChangeBit(c.mic || c.ear)
		}
	case port&0x8002 == 0 && c.mach == machine.Sinclair128K:
		c.write7FFD(data)
	}
	c.ioContentionLast(port)
	c.WaitInternal(1)
}

// ReadInterrupt returns the open bus during interrupt acknowledge.
func (c *Controller) ReadInterrupt() byte { return 0xFF }

// IntActive reports whether the INT line is low: the first T-states of each
// frame.
func (c *Controller) IntActive() bool {
	return c.frameClocks%c.specs.ClocksFrame < c.specs.InterruptLength
}

// NmiActive is never true on these machines.
func (c *Controller) NmiActive() bool { return false }

// Reti is a hook for peripherals that watch interrupt returns; none here.
func (c *Controller) Reti() {}

// Halt is a hook for the HALT line; nothing observes it.
func (c *Controller) Halt(bool) {}
