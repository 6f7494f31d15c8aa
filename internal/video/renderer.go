package video

import (
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/machine"
)

const (
	bitmapSize = 6144
	attrSize   = 768
	screenSize = bitmapSize + attrSize

	cellsPerLine = machine.CanvasWidth / 8
	totalCells   = machine.CanvasHeight * cellsPerLine

	// FLASH attribute toggles every 32 frames (~1.6 Hz at 50 fps)
	flashPeriod = 32
)

// palette maps the 16 ink/paper levels (8 normal + 8 bright) to RGBA.
var palette = [16][4]byte{
	{0x00, 0x00, 0x00, 0xFF}, {0x00, 0x00, 0xC0, 0xFF},
	{0xC0, 0x00, 0x00, 0xFF}, {0xC0, 0x00, 0xC0, 0xFF},
	{0x00, 0xC0, 0x00, 0xFF}, {0x00, 0xC0, 0xC0, 0xFF},
	{0xC0, 0xC0, 0x00, 0xFF}, {0xC0, 0xC0, 0xC0, 0xFF},
	{0x00, 0x00, 0x00, 0xFF}, {0x00, 0x00, 0xFF, 0xFF},
	{0xFF, 0x00, 0x00, 0xFF}, {0xFF, 0x00, 0xFF, 0xFF},
	{0x00, 0xFF, 0x00, 0xFF}, {0x00, 0xFF, 0xFF, 0xFF},
	{0xFF, 0xFF, 0x00, 0xFF}, {0xFF, 0xFF, 0xFF, 0xFF},
}

// PaletteRGBA returns the RGBA value of a border color.
func PaletteRGBA(c Color) [4]byte { return palette[c&0x07] }

// Renderer is the default Screen implementation. It shadows the displayable
// RAM banks and turns them into an RGBA canvas cell by cell, following the
// beam position, so that mid-frame writes show up where the beam actually
// was.
type Renderer struct {
	mach  machine.Machine
	specs machine.Specs

	// shadow copies of the displayable banks: slot 0 holds bank 5 (bank 0 on
	// the 48K), slot 1 holds bank 7
	shadow [2][screenSize]byte
	front  int // which shadow slot feeds the display

	canvas    []byte // RGBA, CanvasWidth x CanvasHeight
	doneCells int    // cells already rendered this frame

	frames     int
	flashPhase bool
}

// NewRenderer returns a renderer for the given machine.
func NewRenderer(m machine.Machine) *Renderer {
	return &Renderer{
		mach:   m,
		specs:  m.Specs(),
		canvas: make([]byte, machine.CanvasWidth*machine.CanvasHeight*4),
	}
}

// Canvas returns the RGBA canvas of the frame rendered so far.
func (r *Renderer) Canvas() []byte { return r.canvas }

// bankSlot maps a RAM bank onto a shadow slot. Bank 0 holds the screen on
// the 48K only; the 128K displays bank 5 or 7.
func (r *Renderer) bankSlot(bank int) int {
	if r.mach == machine.Sinclair48K {
		if bank == 0 {
			return 0
		}
		return -1
	}
	switch bank {
	case 5:
		return 0
	case 7:
		return 1
	}
	return -1
}

func (r *Renderer) Update(intraPageAddr uint16, bank int, data byte) {
	slot := r.bankSlot(bank)
	if slot < 0 || int(intraPageAddr) >= screenSize {
		return
	}
	r.shadow[slot][intraPageAddr] = data
}

func (r *Renderer) SwitchBank(bank int) {
	if slot := r.bankSlot(bank); slot >= 0 {
		r.front = slot
	}
}

// cellIndex converts an intra-frame clock to the number of 8-pixel cells the
// beam has fully passed.
func (r *Renderer) cellIndex(frameClock int) int {
	t := frameClock - r.specs.ClocksFirstPixel
	if t < 0 {
		return 0
	}
	row := t / r.specs.ClocksLine
	if row >= machine.CanvasHeight {
		return totalCells
	}
	col := (t % r.specs.ClocksLine) / machine.ClocksPerCol
	if col > cellsPerLine {
		col = cellsPerLine
	}
	return row*cellsPerLine + col
}

func (r *Renderer) ProcessClocks(frameClock int) {
	target := r.cellIndex(frameClock)
	for ; r.doneCells < target; r.doneCells++ {
		r.renderCell(r.doneCells)
	}
}

func (r *Renderer) renderCell(cell int) {
	row := cell / cellsPerLine
	col := cell % cellsPerLine

	mem := &r.shadow[r.front]
	bits := mem[int(BitmapLineAddr(row)-0x4000)+col]
	attr := mem[bitmapSize+(row/8)*cellsPerLine+col]

	ink := int(attr & 0x07)
	paper := int(attr>>3) & 0x07
	if attr&0x40 != 0 { // BRIGHT
		ink += 8
		paper += 8
	}
	if attr&0x80 != 0 && r.flashPhase { // FLASH
		ink, paper = paper, ink
	}

	base := (row*machine.CanvasWidth + col*8) * 4
	for px := 0; px < 8; px++ {
		c := palette[paper]
		if bits&(0x80>>px) != 0 {
			c = palette[ink]
		}
		copy(r.canvas[base+px*4:], c[:])
	}
}

func (r *Renderer) NewFrame() {
	// flush whatever the beam had not reached when the frame ended
	r.ProcessClocks(r.specs.ClocksFrame + r.specs.ClocksFirstPixel)
	r.doneCells = 0
	r.frames++
	if r.frames%flashPeriod == 0 {
		r.flashPhase = !r.flashPhase
	}
}
