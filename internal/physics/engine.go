// Package physics defines the rigid-body capabilities the game core relies
// on and provides World, a small circle-and-wall engine that implements
// them for the terminal front-ends.
package physics

import (
	"emoji-merge/internal/component"
	"emoji-merge/internal/vmath"
)

// BodyID is an opaque handle owned by the engine. A handle is never reused,
// so a removed body stays unknown forever.
type BodyID uint64

// Pair is one contact reported for a simulation step. A < B always holds.
// Speed is the closing speed along the contact normal before the engine
// resolved the contact, in world units per second.
type Pair struct {
	A, B  BodyID
	Speed float64
}

// Body is a read-only snapshot of a body's state.
type Body struct {
	ID       BodyID
	Position vmath.Vec2
	Velocity vmath.Vec2
	Radius   float64 // zero for boundaries
	Static   bool
}

// Material is the mass and surface profile of a dynamic body.
type Material = component.Material

// Engine is everything the game core needs from a physics engine. Step
// callbacks run synchronously once per simulation step, after the engine
// has resolved that step's contacts; bodies created or removed inside a
// callback take effect immediately.
type Engine interface {
	CreateBoundary(r vmath.Rect) BodyID
	CreateCircle(pos vmath.Vec2, radius float64, m Material) BodyID
	RemoveBodies(ids ...BodyID)
	OnStep(fn func(pairs []Pair))
	Body(id BodyID) (Body, bool)
}
