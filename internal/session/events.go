package session

import "emoji-merge/internal/vmath"

// Listener is the presentation layer's view of a session. Calls are fire
// and forget and arrive on the goroutine driving the session.
type Listener interface {
	OnScoreChanged(score, hi int)
	OnDiscovery(level int)
	OnMergeEffect(pos vmath.Vec2, score int)
	OnMegaMergeEffect(pos vmath.Vec2)
	OnDropAudioCue(level int, intensity float64)
	OnMergeAudioCue(level int)
	OnGameOver()
	OnReset()
}

// NopListener ignores every notification. Embed it to implement only the
// methods you need.
type NopListener struct{}

func (NopListener) OnScoreChanged(int, int)       {}
func (NopListener) OnDiscovery(int)               {}
func (NopListener) OnMergeEffect(vmath.Vec2, int) {}
func (NopListener) OnMegaMergeEffect(vmath.Vec2)  {}
func (NopListener) OnDropAudioCue(int, float64)   {}
func (NopListener) OnMergeAudioCue(int)           {}
func (NopListener) OnGameOver()                   {}
func (NopListener) OnReset()                      {}

// Listeners fans every notification out to each member in order.
type Listeners []Listener

func (ls Listeners) OnScoreChanged(score, hi int) {
	for _, l := range ls {
		l.OnScoreChanged(score, hi)
	}
}

func (ls Listeners) OnDiscovery(level int) {
	for _, l := range ls {
		l.OnDiscovery(level)
	}
}

func (ls Listeners) OnMergeEffect(pos vmath.Vec2, score int) {
	for _, l := range ls {
		l.OnMergeEffect(pos, score)
	}
}

func (ls Listeners) OnMegaMergeEffect(pos vmath.Vec2) {
	for _, l := range ls {
		l.OnMegaMergeEffect(pos)
	}
}

func (ls Listeners) OnDropAudioCue(level int, intensity float64) {
	for _, l := range ls {
		l.OnDropAudioCue(level, intensity)
	}
}

func (ls Listeners) OnMergeAudioCue(level int) {
	for _, l := range ls {
		l.OnMergeAudioCue(level)
	}
}

func (ls Listeners) OnGameOver() {
	for _, l := range ls {
		l.OnGameOver()
	}
}

func (ls Listeners) OnReset() {
	for _, l := range ls {
		l.OnReset()
	}
}
