package video

import (
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/machine"
)

// BorderRecorder implements Border with scanline granularity: it records
// which color the border had on each line of the frame. Enough for stripe
// effects; sub-line timing stays with the out-of-tree precise renderer.
type BorderRecorder struct {
	specs machine.Specs
	lines []Color
}

// NewBorderRecorder returns a recorder sized for the machine's frame.
func NewBorderRecorder(m machine.Machine) *BorderRecorder {
	s := m.Specs()
	return &BorderRecorder{
		specs: s,
		lines: make([]Color, s.ClocksFrame/s.ClocksLine+1),
	}
}

func (b *BorderRecorder) SetBorder(frameClock int, color Color) {
	line := frameClock / b.specs.ClocksLine
	if line < 0 {
		line = 0
	}
	if line >= len(b.lines) {
		line = len(b.lines) - 1
	}
	for ; line < len(b.lines); line++ {
		b.lines[line] = color
	}
}

func (b *BorderRecorder) NewFrame() {
	// the last color of this frame is the whole of the next one until changed
	last := b.lines[len(b.lines)-1]
	for i := range b.lines {
		b.lines[i] = last
	}
}

// LineColor returns the border color recorded for a scanline.
func (b *BorderRecorder) LineColor(line int) Color {
	if line < 0 || line >= len(b.lines) {
		return Black
	}
	return b.lines[line]
}
