package machine

// Machine selects which Sinclair model is emulated.
type Machine int

const (
	Sinclair48K Machine = iota
	Sinclair128K
)

// Display geometry shared by both machines.
const (
	CanvasWidth  = 256
	CanvasHeight = 192
	// T-states the ULA spends fetching one 8-pixel column.
	ClocksPerCol = 4
)

// AddrLDBreak is the LD-BYTES break point inside the tape loader routine of
// the original Spectrum ROM. Hitting it with the ROM paged in means the
// program is about to load from tape.
const AddrLDBreak = 0x056B

// Specs holds the fixed timing parameters of one machine variant.
type Specs struct {
	ClocksFrame      int // T-states per full frame
	ClocksLine       int // T-states per scanline
	ClocksFirstPixel int // T-state at which the first screen pixel is fetched
	ClocksScreenRow  int // T-states the ULA spends on the 256-pixel part of a line
	InterruptLength  int // T-states the INT line stays low after frame start
}

var specs48K = Specs{
	ClocksFrame:      69888,
	ClocksLine:       224,
	ClocksFirstPixel: 14336,
	ClocksScreenRow:  128,
	InterruptLength:  32,
}

var specs128K = Specs{
	ClocksFrame:      70908,
	ClocksLine:       228,
	ClocksFirstPixel: 14361,
	ClocksScreenRow:  128,
	InterruptLength:  36,
}

// Specs returns the timing parameters of the machine.
func (m Machine) Specs() Specs {
	if m == Sinclair128K {
		return specs128K
	}
	return specs48K
}

func (m Machine) String() string {
	if m == Sinclair128K {
		return "Sinclair 128K"
	}
	return "Sinclair 48K"
}

// BankIsContended reports whether the ULA steals cycles from accesses to the
// given RAM bank. On the 48K only the lower 16K of RAM (bank 0 at 0x4000) is
// contended; on the 128K every odd bank is.
func (m Machine) BankIsContended(bank int) bool {
	if m == Sinclair128K {
		return bank%2 == 1
	}
	return bank == 0
}

// PortIsContended reports whether the ULA itself responds to the port. Every
// even port address belongs to the ULA on both machines.
func (m Machine) PortIsContended(port uint16) bool {
	return port&0x0001 == 0
}

// contentionPattern is the per-T-state stall the ULA inserts while it owns
// the bus, repeating every 8 T-states of the screen row.
var contentionPattern = [8]int{6, 5, 4, 3, 2, 1, 0, 0}

// ContentionClocks returns the stall the ULA inserts at the given intra-frame
// clock. Zero outside the pixel area of the frame.
func (m Machine) ContentionClocks(frameClock int) int {
	s := m.Specs()
	start := s.ClocksFirstPixel - 1
	if frameClock < start || frameClock >= start+CanvasHeight*s.ClocksLine {
		return 0
	}
	lineClock := (frameClock - start) % s.ClocksLine
	if lineClock >= s.ClocksScreenRow {
		return 0
	}
	return contentionPattern[lineClock%8]
}
