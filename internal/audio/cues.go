// Package audio turns session events into short synthesised sounds.
package audio

import (
	"math"
	"sync"
	"time"

	"emoji-merge/internal/session"
	"emoji-merge/internal/vmath"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// Cues plays a sound for each audible session event. It is silent until
// Init succeeds, so a machine without an audio device still plays.
type Cues struct {
	session.NopListener

	mu     sync.Mutex
	play   func(beep.Streamer)
	volume float64
}

// NewCues returns silent cues at the given master volume in [0, 1].
func NewCues(volume float64) *Cues {
	return &Cues{volume: math.Max(0, math.Min(1, volume))}
}

// Init opens the speaker. On failure the cues stay silent.
func (c *Cues) Init() error {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	c.mu.Lock()
	c.play = func(s beep.Streamer) { speaker.Play(s) }
	c.mu.Unlock()
	return nil
}

// Close silences the cues and releases the speaker if Init opened it.
func (c *Cues) Close() {
	c.mu.Lock()
	opened := c.play != nil
	c.play = nil
	c.mu.Unlock()
	if opened {
		speaker.Clear()
		speaker.Close()
	}
}

func (c *Cues) emit(s beep.Streamer) {
	c.mu.Lock()
	play := c.play
	c.mu.Unlock()
	if play != nil {
		play(withVolume(s, c.volume))
	}
}

// Pitch grows by a whole tone per level, from A3 for a cherry.
func levelFreq(level int) float64 {
	return 220 * math.Pow(2, float64(2*(level-1))/12)
}

// OnDropAudioCue plays a soft knock, louder for harder landings.
func (c *Cues) OnDropAudioCue(level int, intensity float64) {
	c.emit(NewTone(levelFreq(level)/2, 45*time.Millisecond, 0.15+0.35*intensity, WaveTriangle))
}

// OnMergeAudioCue plays a rising blip pitched to the new level.
func (c *Cues) OnMergeAudioCue(level int) {
	f := levelFreq(level)
	c.emit(NewSweep(f, f*1.5, 120*time.Millisecond, 0.35, WaveSine))
}

// OnMegaMergeEffect plays a long low chord.
func (c *Cues) OnMegaMergeEffect(vmath.Vec2) {
	root, err := generators.SineTone(SampleRate, 110)
	if err != nil {
		return
	}
	fifth, err := generators.SineTone(SampleRate, 165)
	if err != nil {
		return
	}
	n := SampleRate.N(900 * time.Millisecond)
	chord := beep.Mix(
		withVolume(beep.Take(n, root), 0.3),
		withVolume(beep.Take(n, fifth), 0.2),
		NewSweep(660, 1320, 400*time.Millisecond, 0.15, WaveTriangle),
	)
	c.emit(chord)
}

// OnGameOver plays a falling buzz.
func (c *Cues) OnGameOver() {
	c.emit(NewSweep(440, 110, 800*time.Millisecond, 0.3, WaveSquare))
}
