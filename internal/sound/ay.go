package sound

// AYMode selects how the PSG's three channels are placed in the stereo field.
type AYMode int

const (
	AYModeMono AYMode = iota
	AYModeABC
	AYModeACB
)

const ayNumRegs = 16

// AY is the register file of the AY-3-8912. Synthesis lives outside the
// core; the bus only needs select/read/write to answer port traffic.
type AY struct {
	regs     [ayNumRegs]byte
	selected byte
	mode     AYMode
}

// SelectReg latches the register later reads and writes go to. Values past
// the register file are latched anyway and read as an unmapped register.
func (a *AY) SelectReg(reg byte) {
	a.selected = reg
}

// Write stores data into the selected register.
func (a *AY) Write(data byte) {
	if a.selected < ayNumRegs {
		a.regs[a.selected] = data
	}
}

// Read returns the selected register, 0xFF for out-of-range selections.
func (a *AY) Read() byte {
	if a.selected < ayNumRegs {
		return a.regs[a.selected]
	}
	return 0xFF
}

// Mode sets the stereo placement used by the synthesis backend.
func (a *AY) Mode(mode AYMode) { a.mode = mode }
