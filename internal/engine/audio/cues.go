package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
)

// Cue identifies a collision sound.
type Cue uint8

const (
	CueLanding Cue = iota
	CueLethal
)

func (c Cue) String() string {
	switch c {
	case CueLanding:
		return "landing"
	case CueLethal:
		return "lethal"
	default:
		return "unknown"
	}
}

const (
	landingDuration = 90 * time.Millisecond
	landingAttack   = 5 * time.Millisecond
	landingRelease  = 60 * time.Millisecond

	lethalDuration = 300 * time.Millisecond
	lethalAttack   = 10 * time.Millisecond
	lethalRelease  = 150 * time.Millisecond
)

// Streamer builds a fresh, finite stream for the cue.
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueLethal:
		// Low detuned buzz.
		a := newEnvelope(newOscillator(110, lethalDuration, waveSaw, rate), lethalDuration, lethalAttack, lethalRelease, rate)
		b := newEnvelope(newOscillator(116, lethalDuration, waveSquare, rate), lethalDuration, lethalAttack, lethalRelease, rate)
		return beep.Mix(scaled(a, 0.6), scaled(b, 0.3))
	default:
		// Short rising blip.
		return newEnvelope(newOscillator(660, landingDuration, waveSine, rate), landingDuration, landingAttack, landingRelease, rate)
	}
}

type wave uint8

const (
	waveSine wave = iota
	waveSquare
	waveSaw
)

// oscillator generates a fixed-length periodic wave.
type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     wave
	rate     beep.SampleRate
}

func newOscillator(freq float64, d time.Duration, w wave, rate beep.SampleRate) *oscillator {
	return &oscillator{freq: freq, length: rate.N(d), wave: w, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case waveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case waveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case waveSaw:
			val = 2 * (o.phase - 0.5)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{streamer: s, attack: rate.N(attack), release: rate.N(release), total: rate.N(d)}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		e.position++
		samples[i][0] *= e.gain()
		samples[i][1] *= e.gain()
	}
	return n, ok
}

func (e *envelope) gain() float64 {
	pos := e.position - 1
	if e.attack > 0 && pos < e.attack {
		return float64(pos) / float64(e.attack)
	}
	if remaining := e.total - pos; e.release > 0 && remaining <= e.release {
		return float64(remaining) / float64(e.release)
	}
	return 1
}

func (e *envelope) Err() error { return e.streamer.Err() }

func scaled(s beep.Streamer, gain float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			samples[i][0] *= gain
			samples[i][1] *= gain
		}
		return n, ok
	})
}
