package system

import "emoji-merge/internal/vmath"

// EffectKind describes what a transient visual effect looks like.
type EffectKind uint8

const (
	EffectFlash     EffectKind = iota // ring around a merge point
	EffectPopup                       // rising "+N" score label
	EffectMegaBurst                   // board-wide dissipating burst
)

// Lifetimes in steps.
const (
	FlashSteps = 12
	PopupSteps = 45
	BurstSteps = 90
)

// Effect is one queued visual effect.
type Effect struct {
	Kind           EffectKind
	Pos            vmath.Vec2
	Radius         float64
	Score          int
	StepsRemaining int
	Duration       int
}

// Progress returns how far through its life the effect is, in [0, 1).
func (e Effect) Progress() float64 {
	if e.Duration <= 0 {
		return 0
	}
	return 1 - float64(e.StepsRemaining)/float64(e.Duration)
}

// Effects is the queue of transient visual effects waiting to be drawn.
type Effects struct {
	active []Effect
}

// Add queues an effect for its full lifetime.
func (q *Effects) Add(kind EffectKind, pos vmath.Vec2, radius float64, score int) {
	steps := FlashSteps
	switch kind {
	case EffectPopup:
		steps = PopupSteps
	case EffectMegaBurst:
		steps = BurstSteps
	}
	q.active = append(q.active, Effect{
		Kind:           kind,
		Pos:            pos,
		Radius:         radius,
		Score:          score,
		StepsRemaining: steps,
		Duration:       steps,
	})
}

// Tick ages every effect by one step and drops expired ones.
func (q *Effects) Tick() {
	active := q.active[:0]
	for _, e := range q.active {
		e.StepsRemaining--
		if e.StepsRemaining > 0 {
			active = append(active, e)
		}
	}
	q.active = active
}

// Active returns the queued effects, oldest first.
func (q *Effects) Active() []Effect { return q.active }

// Clear drops every queued effect.
func (q *Effects) Clear() { q.active = q.active[:0] }
