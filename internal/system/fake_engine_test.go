package system

import (
	"emoji-merge/internal/physics"
	"emoji-merge/internal/vmath"
)

// fakeEngine is a physics engine with no simulation: tests place bodies
// and hand-write the contact pairs.
type fakeEngine struct {
	next   physics.BodyID
	bodies map[physics.BodyID]physics.Body
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{bodies: make(map[physics.BodyID]physics.Body)}
}

func (f *fakeEngine) CreateBoundary(r vmath.Rect) physics.BodyID {
	f.next++
	f.bodies[f.next] = physics.Body{ID: f.next, Position: r.Center(), Static: true}
	return f.next
}

func (f *fakeEngine) CreateCircle(pos vmath.Vec2, radius float64, _ physics.Material) physics.BodyID {
	f.next++
	f.bodies[f.next] = physics.Body{ID: f.next, Position: pos, Radius: radius}
	return f.next
}

func (f *fakeEngine) RemoveBodies(ids ...physics.BodyID) {
	for _, id := range ids {
		delete(f.bodies, id)
	}
}

func (f *fakeEngine) OnStep(func([]physics.Pair)) {}

func (f *fakeEngine) Body(id physics.BodyID) (physics.Body, bool) {
	b, ok := f.bodies[id]
	return b, ok
}

type mergeEvent struct {
	level int
	pos   vmath.Vec2
	score int
}

type dropEvent struct {
	level     int
	intensity float64
}

type recordingSink struct {
	merges []mergeEvent
	megas  []vmath.Vec2
	drops  []dropEvent
}

func (s *recordingSink) Merged(level int, pos vmath.Vec2, score int) {
	s.merges = append(s.merges, mergeEvent{level, pos, score})
}

func (s *recordingSink) MegaMerged(pos vmath.Vec2) { s.megas = append(s.megas, pos) }

func (s *recordingSink) DropCue(level int, intensity float64) {
	s.drops = append(s.drops, dropEvent{level, intensity})
}

func pair(a, b physics.BodyID, speed float64) physics.Pair {
	if a > b {
		a, b = b, a
	}
	return physics.Pair{A: a, B: b, Speed: speed}
}
