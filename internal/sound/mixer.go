package sound

// Beeper turns the EAR/MIC line into a sample level.
type Beeper struct {
	enabled bool
	level   float32
}

// ChangeBit sets the current line level.
func (b *Beeper) ChangeBit(bit bool) {
	if !b.enabled {
		return
	}
	if bit {
		b.level = 1
	} else {
		b.level = 0
	}
}

// Mixer produces one frame worth of mono samples from the beeper level,
// paced by the fractional frame position the bus reports on every wait. The
// frontend drains the ring as it feeds the audio device.
type Mixer struct {
	Beeper *Beeper
	AY     *AY

	sampleRate      int
	samplesPerFrame int
	volume          float32

	filled int       // samples produced for the current frame
	ring   []float32 // pending samples, oldest first
}

// frameRate is the nominal PAL frame rate used to size a frame of audio.
const frameRate = 50

// NewMixer builds a mixer. ayEnabled only controls whether an AY register
// file is attached; disabled machines still answer AY port reads through the
// floating bus.
func NewMixer(beeperEnabled, ayEnabled bool, sampleRate int) *Mixer {
	m := &Mixer{
		Beeper:          &Beeper{enabled: beeperEnabled},
		sampleRate:      sampleRate,
		samplesPerFrame: sampleRate / frameRate,
		volume:          1,
	}
	if ayEnabled {
		m.AY = &AY{}
	}
	return m
}

// SampleRate returns the configured output rate.
func (m *Mixer) SampleRate() int { return m.sampleRate }

// Volume scales the output, 0..1.
func (m *Mixer) Volume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	m.volume = float32(v)
}

// Process generates samples up to the given frame position (0..1).
func (m *Mixer) Process(framePos float64) {
	if framePos > 1 {
		framePos = 1
	}
	target := int(framePos * float64(m.samplesPerFrame))
	for m.filled < target {
		m.ring = append(m.ring, m.Beeper.level*m.volume)
		m.filled++
	}
	// keep at most two frames buffered so a stalled frontend cannot grow it
	if max := 2 * m.samplesPerFrame; len(m.ring) > max {
		m.ring = m.ring[len(m.ring)-max:]
	}
}

// NewFrame completes the current frame of audio.
func (m *Mixer) NewFrame() {
	m.Process(1)
	m.filled = 0
}

// Buffered returns how many samples are waiting to be drained.
func (m *Mixer) Buffered() int { return len(m.ring) }

// Drain copies up to len(p) pending samples into p and returns the count.
func (m *Mixer) Drain(p []float32) int {
	n := copy(p, m.ring)
	m.ring = m.ring[n:]
	return n
}
