package z80

// Bus is everything the CPU needs from the machine. The system controller
// implements it; every memory access, IO access, and wait of every opcode
// goes through here so the controller can account T-states and contention.
type Bus interface {
	// PCCallback fires on every instruction fetch, before the fetch itself.
	PCCallback(addr uint16)

	// ReadInternal and WriteInternal move bytes without contention or clocks.
	ReadInternal(addr uint16) byte
	WriteInternal(addr uint16, data byte)

	// WaitInternal burns clk T-states and lets the machine catch up.
	WaitInternal(clk int)
	// WaitMreq is a wait with the memory request pin active: contended
	// addresses stall first.
	WaitMreq(addr uint16, clk int)
	// WaitNoMreq is the refresh-style wait; same contention on the
	// supported machines.
	WaitNoMreq(addr uint16, clk int)

	ReadIO(port uint16) byte
	WriteIO(port uint16, data byte)

	// ReadInterrupt returns the byte on the bus during interrupt acknowledge.
	ReadInterrupt() byte
	IntActive() bool
	NmiActive() bool

	Reti()
	Halt(halted bool)
}

// readCycle is the standard 3 T-state memory read machine cycle.
func readCycle(b Bus, addr uint16) byte {
	b.WaitMreq(addr, 3)
	return b.ReadInternal(addr)
}

// writeCycle is the standard 3 T-state memory write machine cycle.
func writeCycle(b Bus, addr uint16, data byte) {
	b.WaitMreq(addr, 3)
	b.WriteInternal(addr, data)
}
