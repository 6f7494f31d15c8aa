package emu

import "github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/machine"

// Settings selects the machine variant and its optional peripherals.
type Settings struct {
	Machine        machine.Machine
	EnableKempston bool

	// sound
	BeeperEnabled bool
	AYEnabled     bool
	SampleRate    int
	Volume        int // percent, 0..200 (100 = nominal)
}

// Defaults fills missing fields with reasonable defaults.
func (s *Settings) Defaults() {
	if s.SampleRate <= 0 {
		s.SampleRate = 44100
	}
	if s.Volume <= 0 {
		s.Volume = 100
	}
}
