package memory

import "testing"

func TestMemory_ROMWritesIgnored(t *testing.T) {
	m := New(Rom16K, Ram48K)
	if err := m.LoadRom(0, []byte{0xAA, 0xBB}); err != nil {
		t.Fatalf("LoadRom: %v", err)
	}
	before := m.Read(0x0000)
	m.Write(0x0000, 0x12)
	if got := m.Read(0x0000); got != before {
		t.Fatalf("ROM write leaked through: got %02x, want %02x", got, before)
	}

	// RAM write+read
	m.Write(0x4000, 0x99)
	if got := m.Read(0x4000); got != 0x99 {
		t.Fatalf("RAM read got %02x, want 99", got)
	}
	m.Write(0xFFFF, 0x55)
	if got := m.Read(0xFFFF); got != 0x55 {
		t.Fatalf("top of RAM got %02x, want 55", got)
	}
}

func TestMemory_Remap(t *testing.T) {
	m := New(Rom32K, Ram128K)

	if err := m.Remap(3, Ram(7)); err != nil {
		t.Fatalf("remap slot 3 to bank 7: %v", err)
	}
	if got := m.PageAt(0xC000); got != Ram(7) {
		t.Fatalf("PageAt(0xC000) got %+v, want Ram(7)", got)
	}

	// writes land in the newly mapped bank and survive remapping away and back
	m.Write(0xC000, 0x42)
	if err := m.Remap(3, Ram(0)); err != nil {
		t.Fatalf("remap back: %v", err)
	}
	if got := m.Read(0xC000); got == 0x42 {
		t.Fatalf("bank 0 unexpectedly holds bank 7 data")
	}
	if err := m.Remap(3, Ram(7)); err != nil {
		t.Fatalf("remap to bank 7 again: %v", err)
	}
	if got := m.Read(0xC000); got != 0x42 {
		t.Fatalf("bank 7 data lost across remaps: got %02x", got)
	}
}

func TestMemory_RemapErrors(t *testing.T) {
	m := New(Rom16K, Ram48K)
	before := m.PageAt(0xC000)

	if err := m.Remap(4, Ram(0)); err != ErrSlotOutOfRange {
		t.Fatalf("slot 4: got %v, want ErrSlotOutOfRange", err)
	}
	if err := m.Remap(3, Ram(3)); err != ErrPageOutOfRange {
		t.Fatalf("bank 3 of 48K RAM: got %v, want ErrPageOutOfRange", err)
	}
	if err := m.Remap(3, Rom(1)); err != ErrPageOutOfRange {
		t.Fatalf("ROM page 1 of 16K ROM: got %v, want ErrPageOutOfRange", err)
	}
	if got := m.PageAt(0xC000); got != before {
		t.Fatalf("failed remap changed the mapping: %+v", got)
	}
}

func TestMemory_LoadRomBounds(t *testing.T) {
	m := New(Rom16K, Ram48K)
	if err := m.LoadRom(1, []byte{1}); err != ErrPageOutOfRange {
		t.Fatalf("page 1 of 16K ROM: got %v, want ErrPageOutOfRange", err)
	}
	if err := m.LoadRom(0, make([]byte, PageSize+1)); err != ErrRomDataTooBig {
		t.Fatalf("overlong data: got %v, want ErrRomDataTooBig", err)
	}
	if err := m.LoadRom(0, make([]byte, PageSize)); err != nil {
		t.Fatalf("exact page: %v", err)
	}
}

func TestMemory_DumpLayout(t *testing.T) {
	m := New(Rom16K, Ram48K)
	dump := m.Dump()
	if len(dump) != int(Rom16K)+int(Ram48K) {
		t.Fatalf("dump length got %d, want %d", len(dump), int(Rom16K)+int(Ram48K))
	}
	for i, b := range dump {
		if b != 0 {
			t.Fatalf("fresh dump not zero at %d: %02x", i, b)
		}
	}

	// ROM first, RAM after
	if err := m.LoadRom(0, []byte{0xA5}); err != nil {
		t.Fatalf("LoadRom: %v", err)
	}
	m.Write(0x4000, 0x5A)
	dump = m.Dump()
	if dump[0] != 0xA5 {
		t.Fatalf("ROM byte not first in dump: %02x", dump[0])
	}
	if dump[int(Rom16K)] != 0x5A {
		t.Fatalf("RAM byte not at rom_size offset: %02x", dump[int(Rom16K)])
	}
}

func TestMemory_RestoreDump(t *testing.T) {
	m := New(Rom16K, Ram48K)
	m.Write(0x8000, 0x77)
	dump := m.Dump()

	fresh := New(Rom16K, Ram48K)
	if err := fresh.RestoreDump(dump); err != nil {
		t.Fatalf("RestoreDump: %v", err)
	}
	if got := fresh.Read(0x8000); got != 0x77 {
		t.Fatalf("restored read got %02x, want 77", got)
	}
	if err := fresh.RestoreDump(dump[:10]); err == nil {
		t.Fatalf("short dump accepted")
	}
}
