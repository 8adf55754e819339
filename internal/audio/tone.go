package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate every cue is synthesised at.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// Attack and release ramps applied to every tone to avoid clicks.
const (
	attack  = 5 * time.Millisecond
	release = 30 * time.Millisecond
)

// tone is a fixed-length oscillator whose pitch slides linearly from
// from to to, with a short attack/release envelope.
type tone struct {
	from, to float64
	gain     float64
	wave     Wave

	phase   float64
	pos     int
	total   int
	attack  int
	release int
}

// NewTone returns a streamer playing freq for dur at a linear gain.
func NewTone(freq float64, dur time.Duration, gain float64, wave Wave) beep.Streamer {
	return NewSweep(freq, freq, dur, gain, wave)
}

// NewSweep is NewTone with the pitch gliding from one frequency to another.
func NewSweep(from, to float64, dur time.Duration, gain float64, wave Wave) beep.Streamer {
	total := SampleRate.N(dur)
	return &tone{
		from:    from,
		to:      to,
		gain:    gain,
		wave:    wave,
		total:   total,
		attack:  min(SampleRate.N(attack), total/2),
		release: min(SampleRate.N(release), total/2),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}
		var v float64
		switch t.wave {
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveTriangle:
			v = 4*math.Abs(t.phase-0.5) - 1
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		v *= t.gain * t.envelope()
		samples[i][0] = v
		samples[i][1] = v

		progress := float64(t.pos) / float64(t.total)
		freq := t.from + (t.to-t.from)*progress
		t.phase += freq / float64(SampleRate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func (t *tone) envelope() float64 {
	if t.attack > 0 && t.pos < t.attack {
		return float64(t.pos) / float64(t.attack)
	}
	if left := t.total - t.pos; t.release > 0 && left < t.release {
		return float64(left) / float64(t.release)
	}
	return 1
}

// withVolume scales s by a linear factor. Zero and below is silence.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
