package bus

import (
	"bytes"
	"encoding/gob"

	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/memory"
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/video"
)

// controllerState is the gob image of everything the controller owns. The
// memory pools go in as one dump (ROM then RAM), the mapping as four page
// selectors.
type controllerState struct {
	Memory  []byte
	Mapping [4]memory.Page

	Keyboard    [8]byte
	BorderColor byte

	FrameClocks  int
	PassedFrames int
	Events       Events

	Mic, Ear bool

	PagingEnabled bool
	ScreenBank    byte
}

// SaveState serializes the controller into an in-memory snapshot.
func (c *Controller) SaveState() []byte {
	s := controllerState{
		Memory:        c.memory.Dump(),
		Keyboard:      c.keyboard,
		BorderColor:   byte(c.borderColor),
		FrameClocks:   c.frameClocks,
		PassedFrames:  c.passedFrames,
		Events:        c.events,
		Mic:           c.mic,
		Ear:           c.ear,
		PagingEnabled: c.pagingEnabled,
		ScreenBank:    c.screenBank,
	}
	for slot := 0; slot < 4; slot++ {
		s.Mapping[slot] = c.memory.PageAt(uint16(slot) << 14)
	}
	var buf bytes.Buffer
	_ = gob.NewEncoder(&buf).Encode(s)
	return buf.Bytes()
}

// LoadState restores a snapshot taken on the same machine variant.
func (c *Controller) LoadState(data []byte) error {
	var s controllerState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return err
	}
	if err := c.memory.RestoreDump(s.Memory); err != nil {
		return err
	}
	for slot, page := range s.Mapping {
		if err := c.memory.Remap(slot, page); err != nil {
			return err
		}
	}
	c.keyboard = s.Keyboard
	c.borderColor = video.Color(s.BorderColor)
	c.frameClocks = s.FrameClocks
	c.passedFrames = s.PassedFrames
	c.events = s.Events
	c.mic = s.Mic
	c.ear = s.Ear
	c.pagingEnabled = s.PagingEnabled
	c.screenBank = s.ScreenBank
	c.screen.SwitchBank(int(s.ScreenBank))
	return nil
}
