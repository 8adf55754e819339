package physics

import (
	"math"
	"slices"

	"emoji-merge/internal/component"
	"emoji-merge/internal/ecs"
	"emoji-merge/internal/vmath"

	"github.com/solarlune/resolv"
)

const (
	// maxStep caps one Step so a stalled frame cannot tunnel bodies through
	// walls.
	maxStep = 1.0 / 20
	// maxSpeed caps body speed for the same reason.
	maxSpeed = 60.0
	// solverIterations is the number of contact passes per substep.
	solverIterations = 3
)

// World is a circle-and-wall rigid body engine backed by an ECS world.
// It is not safe for concurrent use; the owning game loop drives it.
type World struct {
	bodies   *ecs.World
	gravity  vmath.Vec2
	substeps int
	subs     []func([]Pair)
	steps    int64
}

// NewWorld creates an empty world with the given gravity (units/s²) and
// number of substeps per Step.
func NewWorld(gravity vmath.Vec2, substeps int) *World {
	if substeps < 1 {
		substeps = 1
	}
	return &World{
		bodies:   ecs.NewWorld(),
		gravity:  gravity,
		substeps: substeps,
	}
}

// CreateBoundary adds a static wall.
func (w *World) CreateBoundary(r vmath.Rect) BodyID {
	id := w.bodies.CreateEntity()
	w.bodies.Add(id, component.Boundary{Rect: r})
	return BodyID(id)
}

// CreateCircle adds a dynamic circle at rest.
func (w *World) CreateCircle(pos vmath.Vec2, radius float64, m Material) BodyID {
	id := w.bodies.CreateEntity()
	w.bodies.Add(id, component.Kinematics{Pos: pos})
	w.bodies.Add(id, component.Circle{Radius: radius})
	w.bodies.Add(id, m)
	return BodyID(id)
}

// RemoveBodies destroys the given bodies. Unknown IDs are ignored.
func (w *World) RemoveBodies(ids ...BodyID) {
	for _, id := range ids {
		w.bodies.DestroyEntity(ecs.EntityID(id))
	}
}

// OnStep registers fn to receive every step's contact pairs.
func (w *World) OnStep(fn func(pairs []Pair)) {
	w.subs = append(w.subs, fn)
}

// Body returns a snapshot of the body, or false if it does not exist.
func (w *World) Body(id BodyID) (Body, bool) {
	eid := ecs.EntityID(id)
	if !w.bodies.Alive(eid) {
		return Body{}, false
	}
	if c := w.bodies.Get(eid, component.CBoundary); c != nil {
		r := c.(component.Boundary).Rect
		return Body{ID: id, Position: r.Center(), Static: true}, true
	}
	kin, ok := w.bodies.Get(eid, component.CKinematics).(component.Kinematics)
	if !ok {
		return Body{}, false
	}
	circle, _ := w.bodies.Get(eid, component.CCircle).(component.Circle)
	return Body{ID: id, Position: kin.Pos, Velocity: kin.Vel, Radius: circle.Radius}, true
}

// Circles returns snapshots of every dynamic body in ascending ID order.
func (w *World) Circles() []Body {
	ids := w.bodies.Query(component.CKinematics, component.CCircle)
	out := make([]Body, 0, len(ids))
	for _, id := range ids {
		if b, ok := w.Body(BodyID(id)); ok {
			out = append(out, b)
		}
	}
	return out
}

// Steps returns the number of completed steps.
func (w *World) Steps() int64 { return w.steps }

// Step advances the simulation by dt seconds and then notifies every
// subscriber with the pairs that touched during the step.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	dt = math.Min(dt, maxStep)
	h := dt / float64(w.substeps)

	dyn, walls := w.load()
	touched := make(map[[2]BodyID]float64)
	for range w.substeps {
		for _, b := range dyn {
			integrate(b, w.gravity, h)
		}
		for iter := range solverIterations {
			for _, m := range contacts(dyn, walls) {
				key := [2]BodyID{m.a.id, m.b.id}
				if key[0] > key[1] {
					key[0], key[1] = key[1], key[0]
				}
				// Only the first pass sees the unresolved approach speed.
				if iter == 0 {
					touched[key] = math.Max(touched[key], m.closingSpeed())
				} else if _, seen := touched[key]; !seen {
					touched[key] = 0
				}
				m.resolve()
			}
		}
	}
	w.store(dyn)
	w.steps++

	pairs := make([]Pair, 0, len(touched))
	for k, speed := range touched {
		pairs = append(pairs, Pair{A: k[0], B: k[1], Speed: math.Max(speed, 0)})
	}
	slices.SortFunc(pairs, func(x, y Pair) int {
		if x.A != y.A {
			return cmpID(x.A, y.A)
		}
		return cmpID(x.B, y.B)
	})
	for _, fn := range w.subs {
		fn(pairs)
	}
}

func cmpID(a, b BodyID) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// load copies component state into mutable working bodies.
func (w *World) load() (dyn, walls []*dynBody) {
	for _, id := range w.bodies.Query(component.CKinematics, component.CCircle) {
		b := &dynBody{id: BodyID(id)}
		b.kin = w.bodies.Get(id, component.CKinematics).(component.Kinematics)
		b.radius = w.bodies.Get(id, component.CCircle).(component.Circle).Radius
		if m, ok := w.bodies.Get(id, component.CMaterial).(component.Material); ok {
			b.mat = m
		}
		dyn = append(dyn, b)
	}
	for _, id := range w.bodies.Query(component.CBoundary) {
		r := w.bodies.Get(id, component.CBoundary).(component.Boundary).Rect
		walls = append(walls, &dynBody{
			id:     BodyID(id),
			rect:   r,
			shape:  resolv.NewRectangle(r.Min.X, r.Min.Y, r.Width(), r.Height()),
			static: true,
		})
	}
	return dyn, walls
}

// store writes working bodies back into the ECS world.
func (w *World) store(dyn []*dynBody) {
	for _, b := range dyn {
		w.bodies.Add(ecs.EntityID(b.id), b.kin)
	}
}

func integrate(b *dynBody, gravity vmath.Vec2, h float64) {
	b.kin.Vel = b.kin.Vel.Add(gravity.Scale(h))
	if b.mat.AirFriction > 0 {
		b.kin.Vel = b.kin.Vel.Scale(math.Max(0, 1-b.mat.AirFriction*h))
	}
	if speed := b.kin.Vel.Len(); speed > maxSpeed {
		b.kin.Vel = b.kin.Vel.Scale(maxSpeed / speed)
	}
	b.kin.Pos = b.kin.Pos.Add(b.kin.Vel.Scale(h))
}

// contacts runs the narrow phase over every pair. Body counts on a board
// stay small enough that a broad phase is not worth it.
func contacts(dyn, walls []*dynBody) []manifold {
	var out []manifold
	for i, a := range dyn {
		for _, b := range dyn[i+1:] {
			if m, ok := detectCircleCircle(a, b); ok {
				out = append(out, m)
			}
		}
		for _, wall := range walls {
			if m, ok := detectCircleRect(a, wall); ok {
				out = append(out, m)
			}
		}
	}
	return out
}
