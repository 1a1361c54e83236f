package monitor

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/tmc-evolve/parameter"
)

const chimeSampleRate = beep.SampleRate(parameter.MonitorSampleRate)

// Chime plays a short tone through the system speaker
type Chime struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewChime creates an idle chime; call Initialize before Play
func NewChime() *Chime {
	return &Chime{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker
// Failure leaves the chime silent and is safe to ignore
func (c *Chime) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	if err := speaker.Init(chimeSampleRate, chimeSampleRate.N(time.Second/10)); err != nil {
		return err
	}

	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Play queues one tone, a no-op when the speaker is not open
func (c *Chime) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	tone := beep.Take(chimeSampleRate.N(parameter.MonitorChimeDuration),
		NewToneGenerator(chimeSampleRate, parameter.MonitorChimeFrequency, parameter.MonitorChimeDuration))
	speaker.Lock()
	c.mixer.Add(tone)
	speaker.Unlock()
}

// Close stops playback and releases the speaker
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	c.initialized = false
}

// ToneGenerator produces a sine tone with a linear fade out
type ToneGenerator struct {
	sr      beep.SampleRate
	freq    float64
	pos     int
	samples int
}

// NewToneGenerator creates a tone fading to silence over length
func NewToneGenerator(sr beep.SampleRate, freq float64, length time.Duration) *ToneGenerator {
	return &ToneGenerator{
		sr:      sr,
		freq:    freq,
		samples: max(sr.N(length), 1),
	}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := 1 - float64(g.pos)/float64(g.samples)
		if envelope < 0 {
			envelope = 0
		}
		sample := 0.25 * envelope * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}
