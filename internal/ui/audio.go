package ui

import (
	"encoding/binary"

	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/emu"
)

// beeperStream implements io.Reader by pulling mono float samples from the
// emulator mixer and converting them to 16-bit little-endian stereo frames.
// When the machine has produced nothing yet it fills with silence so the
// player never starves.
type beeperStream struct {
	m   *emu.Emulator
	buf []float32
}

func (s *beeperStream) Read(p []byte) (int, error) {
	frames := len(p) / 4
	if frames == 0 {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}
	if cap(s.buf) < frames {
		s.buf = make([]float32, frames)
	}
	n := s.m.DrainAudio(s.buf[:frames])

	for i := 0; i < frames; i++ {
		var sample int16
		if i < n {
			sample = int16(s.buf[i] * 0x7FFF)
		}
		binary.LittleEndian.PutUint16(p[i*4:], uint16(sample))
		binary.LittleEndian.PutUint16(p[i*4+2:], uint16(sample))
	}
	return frames * 4, nil
}
