package memory

import "errors"

// PageSize is the size of one memory page and of one CPU address-space slot.
const PageSize = 16 * 1024

const numSlots = 4

// RomSize selects how much ROM the machine carries.
type RomSize int

const (
	Rom16K RomSize = PageSize
	Rom32K RomSize = 2 * PageSize
	Rom64K RomSize = 4 * PageSize
)

// RamSize selects how much RAM the machine carries.
type RamSize int

const (
	Ram16K  RamSize = PageSize
	Ram48K  RamSize = 3 * PageSize
	Ram128K RamSize = 8 * PageSize
)

// Page selects one 16K page out of the ROM or RAM pool.
type Page struct {
	InRAM bool
	Num   byte
}

// Rom returns a selector for ROM page n.
func Rom(n byte) Page { return Page{InRAM: false, Num: n} }

// Ram returns a selector for RAM bank n.
func Ram(n byte) Page { return Page{InRAM: true, Num: n} }

var (
	ErrSlotOutOfRange = errors.New("memory: slot out of range")
	ErrPageOutOfRange = errors.New("memory: page out of range")
	ErrRomDataTooBig  = errors.New("memory: rom data exceeds page size")
)

// Memory is the banked 64K address space: four 16K slots, each mapped onto a
// page of the ROM or RAM pool. Writes that land in ROM are dropped.
type Memory struct {
	rom []byte
	ram []byte
	// one page selector per 16K slot of the CPU address space
	mapping [numSlots]Page
}

// New returns memory with the power-on mapping for the given pool sizes.
func New(romSize RomSize, ramSize RamSize) *Memory {
	var mapping [numSlots]Page
	switch ramSize {
	case Ram16K:
		mapping = [numSlots]Page{Rom(0), Ram(0), Ram(0), Ram(0)}
	case Ram128K:
		mapping = [numSlots]Page{Rom(0), Ram(5), Ram(2), Ram(0)}
	default:
		mapping = [numSlots]Page{Rom(0), Ram(0), Ram(1), Ram(2)}
	}
	return &Memory{
		rom:     make([]byte, int(romSize)),
		ram:     make([]byte, int(ramSize)),
		mapping: mapping,
	}
}

// Read returns the byte at addr through the current mapping.
func (m *Memory) Read(addr uint16) byte {
	page := m.mapping[addr>>14]
	rel := int(addr & (PageSize - 1))
	if page.InRAM {
		return m.ram[int(page.Num)*PageSize+rel]
	}
	return m.rom[int(page.Num)*PageSize+rel]
}

// Write stores value at addr. Writes to a slot mapped to ROM are ignored.
func (m *Memory) Write(addr uint16, value byte) {
	page := m.mapping[addr>>14]
	if !page.InRAM {
		return
	}
	m.ram[int(page.Num)*PageSize+int(addr&(PageSize-1))] = value
}

// Remap points a slot at a different page. The mapping is left untouched on
// error.
func (m *Memory) Remap(slot int, page Page) error {
	if slot < 0 || slot >= numSlots {
		return ErrSlotOutOfRange
	}
	if !m.pageInRange(page) {
		return ErrPageOutOfRange
	}
	m.mapping[slot] = page
	return nil
}

func (m *Memory) pageInRange(page Page) bool {
	pool := m.rom
	if page.InRAM {
		pool = m.ram
	}
	return (int(page.Num)+1)*PageSize <= len(pool)
}

// PageAt reports which page the slot containing addr is mapped to.
func (m *Memory) PageAt(addr uint16) Page {
	return m.mapping[addr>>14]
}

// LoadRom copies data into ROM page. Data longer than a page is rejected.
func (m *Memory) LoadRom(page byte, data []byte) error {
	if (int(page)+1)*PageSize > len(m.rom) {
		return ErrPageOutOfRange
	}
	if len(data) > PageSize {
		return ErrRomDataTooBig
	}
	copy(m.rom[int(page)*PageSize:], data)
	return nil
}

// RomPageData returns a writable window over ROM page n. Used by loaders
// that fill pages in place.
func (m *Memory) RomPageData(page byte) []byte {
	start := int(page) * PageSize
	return m.rom[start : start+PageSize]
}

// Dump returns the ROM pool followed by the RAM pool.
func (m *Memory) Dump() []byte {
	out := make([]byte, 0, len(m.rom)+len(m.ram))
	out = append(out, m.rom...)
	out = append(out, m.ram...)
	return out
}

// RestoreDump loads pools previously produced by Dump. The length must match
// the configured pool sizes exactly.
func (m *Memory) RestoreDump(data []byte) error {
	if len(data) != len(m.rom)+len(m.ram) {
		return ErrPageOutOfRange
	}
	copy(m.rom, data[:len(m.rom)])
	copy(m.ram, data[len(m.rom):])
	return nil
}
