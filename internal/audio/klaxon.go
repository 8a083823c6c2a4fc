// Package audio plays the meltdown klaxon.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Klaxon is a looping two-tone siren. Until Init succeeds every method is a
// no-op, so a machine without audio simply stays quiet.
type Klaxon struct {
	mu          sync.Mutex
	ctrl        *beep.Ctrl
	initialized bool
}

// NewKlaxon creates a silent klaxon.
func NewKlaxon() *Klaxon {
	return &Klaxon{}
}

// Init opens the speaker and queues the siren, paused.
func (k *Klaxon) Init() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	k.ctrl = &beep.Ctrl{Streamer: NewSiren(sampleRate), Paused: true}
	speaker.Play(&effects.Volume{Streamer: k.ctrl, Base: 2, Volume: -2})
	k.initialized = true
	return nil
}

// Sound starts (or keeps) the siren wailing.
func (k *Klaxon) Sound() {
	k.setPaused(false)
}

// Silence pauses the siren.
func (k *Klaxon) Silence() {
	k.setPaused(true)
}

func (k *Klaxon) setPaused(paused bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.initialized || k.ctrl.Paused == paused {
		return
	}
	speaker.Lock()
	k.ctrl.Paused = paused
	speaker.Unlock()
}

// Close stops playback and releases the speaker.
func (k *Klaxon) Close() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	k.initialized = false
}

// Siren is an endless square wave alternating between a low and a high tone.
type Siren struct {
	rate      beep.SampleRate
	low, high float64
	period    int // samples per tone
	pos       int
	phase     float64
}

// NewSiren returns a 660/880 Hz siren switching tone every 400ms.
func NewSiren(rate beep.SampleRate) *Siren {
	return &Siren{
		rate:   rate,
		low:    660,
		high:   880,
		period: rate.N(400 * time.Millisecond),
	}
}

func (s *Siren) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		freq := s.low
		if (s.pos/s.period)%2 == 1 {
			freq = s.high
		}

		val := 0.3
		if s.phase >= 0.5 {
			val = -0.3
		}
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= float64(int(s.phase))
		s.pos++
	}
	return len(samples), true
}

func (s *Siren) Err() error { return nil }
