package z80

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// testBus is a flat 64K memory with clock counting and none of the machine
// behind it.
type testBus struct {
	mem    [0x10000]byte
	clocks int
}

func (b *testBus) PCCallback(uint16)                {}
func (b *testBus) ReadInternal(addr uint16) byte    { return b.mem[addr] }
func (b *testBus) WriteInternal(addr uint16, d byte) { b.mem[addr] = d }
func (b *testBus) WaitInternal(clk int)             { b.clocks += clk }
func (b *testBus) WaitMreq(_ uint16, clk int)       { b.clocks += clk }
func (b *testBus) WaitNoMreq(_ uint16, clk int)     { b.clocks += clk }
func (b *testBus) ReadIO(uint16) byte               { return 0xFF }
func (b *testBus) WriteIO(uint16, byte)             {}
func (b *testBus) ReadInterrupt() byte              { return 0xFF }
func (b *testBus) IntActive() bool                  { return false }
func (b *testBus) NmiActive() bool                  { return false }
func (b *testBus) Reti()                            {}
func (b *testBus) Halt(bool)                        {}

func TestExecuteRot_Table(t *testing.T) {
	cases := []struct {
		name    string
		code    RotCode
		in      byte
		carryIn bool
		want    byte
		carry   bool
	}{
		{"RLC msb set", RLC, 0x85, false, 0x0B, true},
		{"RLC msb clear", RLC, 0x01, true, 0x02, false},
		{"RRC lsb set", RRC, 0x01, false, 0x80, true},
		{"RRC lsb clear", RRC, 0x80, true, 0x40, false},
		{"RL carry in", RL, 0x80, true, 0x01, true},
		{"RL no carry in", RL, 0x40, false, 0x80, false},
		{"RR carry in", RR, 0x01, true, 0x80, true},
		{"RR no carry in", RR, 0x02, false, 0x01, false},
		{"SLA", SLA, 0xFF, false, 0xFE, true},
		{"SLA carry in ignored", SLA, 0x01, true, 0x02, false},
		{"SRA keeps sign", SRA, 0x81, false, 0xC0, true},
		{"SRA positive", SRA, 0x40, false, 0x20, false},
		{"SLL sets bit 0", SLL, 0x80, false, 0x01, true},
		{"SRL clears sign", SRL, 0x81, false, 0x40, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			regs := &Registers{}
			regs.SetReg(RegE, c.in)
			regs.SetFlag(FlagC, c.carryIn)

			got := ExecuteRot(regs, &testBus{}, c.code, RegOperand(RegE))

			assert.Equal(t, c.want, got)
			assert.Equal(t, c.want, regs.Reg(RegE))
			assert.Equal(t, c.carry, regs.Flag(FlagC), "carry")
			assert.Equal(t, c.want&0x80 != 0, regs.Flag(FlagS), "sign")
			assert.Equal(t, c.want == 0, regs.Flag(FlagZ), "zero")
			assert.Equal(t, parity(c.want), regs.Flag(FlagPV), "parity")
			assert.True(t, regs.Flag(FlagH), "H is set for the whole family")
			assert.False(t, regs.Flag(FlagN), "N")
			assert.Equal(t, c.want&0x20 != 0, regs.Flag(FlagF5), "F5")
			assert.Equal(t, c.want&0x08 != 0, regs.Flag(FlagF3), "F3")
		})
	}
}

func TestExecuteRot_Scenario(t *testing.T) {
	regs := &Registers{A: 0x85}
	res := ExecuteRot(regs, &testBus{}, RLC, RegOperand(RegA))

	assert.Equal(t, byte(0x0B), res)
	assert.True(t, regs.Flag(FlagC))
	assert.False(t, regs.Flag(FlagS))
	assert.False(t, regs.Flag(FlagZ))
	// 0x0B has three set bits; even-parity P/V reads clear
	assert.False(t, regs.Flag(FlagPV))
}

func TestExecuteRot_PureRotationsRoundTrip(t *testing.T) {
	for _, code := range []RotCode{RLC, RRC} {
		regs := &Registers{}
		start := byte(0xB6)
		regs.SetReg(RegD, start)

		var carries byte
		for i := 0; i < 8; i++ {
			ExecuteRot(regs, &testBus{}, code, RegOperand(RegD))
			carries <<= 1
			if regs.Flag(FlagC) {
				carries |= 1
			}
		}
		assert.Equal(t, start, regs.Reg(RegD), "8 rotations restore the byte")

		// every bit of the operand crosses the carry exactly once
		if code == RLC {
			assert.Equal(t, start, carries)
		} else {
			// RRC emits bits LSB-first
			var reversed byte
			for i := 0; i < 8; i++ {
				reversed <<= 1
				reversed |= (start >> i) & 1
			}
			assert.Equal(t, reversed, carries)
		}
	}
}

func TestExecuteRot_Indirect(t *testing.T) {
	bus := &testBus{}
	bus.mem[0x4123] = 0x81
	regs := &Registers{}

	res := ExecuteRot(regs, bus, SRA, IndirectOperand(0x4123))

	assert.Equal(t, byte(0xC0), res)
	assert.Equal(t, byte(0xC0), bus.mem[0x4123])
	// one read and one write machine cycle
	assert.Equal(t, 6, bus.clocks)
}

func TestExecuteRot_ZeroResult(t *testing.T) {
	regs := &Registers{}
	regs.SetReg(RegB, 0x01)
	ExecuteRot(regs, &testBus{}, SRL, RegOperand(RegB))

	assert.Equal(t, byte(0), regs.Reg(RegB))
	assert.True(t, regs.Flag(FlagZ))
	assert.True(t, regs.Flag(FlagC))
	assert.True(t, regs.Flag(FlagPV), "zero has even parity")
}
