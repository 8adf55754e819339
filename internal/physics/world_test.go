package physics

import (
	"testing"

	"emoji-merge/internal/vmath"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMaterial = Material{Mass: 1, Restitution: 0.1, Friction: 0.9, StaticFriction: 1, AirFriction: 0.01}

// boxWorld builds a 20x20 box with walls one unit thick.
func boxWorld(t *testing.T) (*World, BodyID) {
	t.Helper()
	w := NewWorld(vmath.V(0, 40), 4)
	floor := w.CreateBoundary(vmath.R(-1, 20, 21, 21))
	w.CreateBoundary(vmath.R(-1, -10, 0, 21))
	w.CreateBoundary(vmath.R(20, -10, 21, 21))
	return w, floor
}

func run(w *World, seconds float64) {
	const dt = 1.0 / 60
	for range int(seconds * 60) {
		w.Step(dt)
	}
}

func TestCircleSettlesOnFloor(t *testing.T) {
	w, _ := boxWorld(t)
	id := w.CreateCircle(vmath.V(10, 2), 1, testMaterial)

	run(w, 3)

	b, ok := w.Body(id)
	require.True(t, ok)
	assert.InDelta(t, 19, b.Position.Y, 0.1, "circle should rest on the floor")
	assert.InDelta(t, 0, b.Velocity.Len(), 0.5)
	assert.False(t, b.Static)
	assert.Equal(t, 1.0, b.Radius)
}

func TestFloorContactReportedWithImpactSpeed(t *testing.T) {
	w, floor := boxWorld(t)
	id := w.CreateCircle(vmath.V(10, 2), 1, testMaterial)

	var maxSpeed float64
	var contacts int
	w.OnStep(func(pairs []Pair) {
		for _, p := range pairs {
			if p.A == id && p.B == floor || p.A == floor && p.B == id {
				contacts++
				if p.Speed > maxSpeed {
					maxSpeed = p.Speed
				}
			}
		}
	})
	run(w, 3)

	assert.Greater(t, contacts, 10, "resting contact should keep being reported")
	assert.Greater(t, maxSpeed, 10.0, "first impact should carry the fall speed")
}

func TestPairsAreOrderedAndUnique(t *testing.T) {
	w, _ := boxWorld(t)
	w.CreateCircle(vmath.V(5, 18), 1, testMaterial)
	w.CreateCircle(vmath.V(7, 18), 1, testMaterial)
	w.CreateCircle(vmath.V(9, 18), 1, testMaterial)

	var got []Pair
	w.OnStep(func(pairs []Pair) { got = pairs })
	w.Step(1.0 / 60)

	seen := make(map[[2]BodyID]bool)
	for i, p := range got {
		assert.Less(t, p.A, p.B)
		key := [2]BodyID{p.A, p.B}
		assert.False(t, seen[key], "duplicate pair %v", key)
		seen[key] = true
		if i > 0 {
			prev := got[i-1]
			assert.True(t, prev.A < p.A || prev.A == p.A && prev.B < p.B)
		}
	}
	assert.NotEmpty(t, got)
}

func TestRemoveInsideCallback(t *testing.T) {
	w, _ := boxWorld(t)
	a := w.CreateCircle(vmath.V(9, 19), 1, testMaterial)
	b := w.CreateCircle(vmath.V(11, 19), 1, testMaterial)

	var created BodyID
	w.OnStep(func(pairs []Pair) {
		for _, p := range pairs {
			if p.A == a && p.B == b {
				w.RemoveBodies(a, b)
				created = w.CreateCircle(vmath.V(10, 18), 1.5, testMaterial)
			}
		}
	})
	w.Step(1.0 / 60)

	_, okA := w.Body(a)
	_, okB := w.Body(b)
	assert.False(t, okA)
	assert.False(t, okB)
	require.NotZero(t, created)
	_, ok := w.Body(created)
	assert.True(t, ok)
	assert.Len(t, w.Circles(), 1)
}

func TestBoundaryBody(t *testing.T) {
	w, floor := boxWorld(t)
	b, ok := w.Body(floor)
	require.True(t, ok)
	assert.True(t, b.Static)
	assert.Equal(t, vmath.V(10, 20.5), b.Position)

	_, ok = w.Body(BodyID(999))
	assert.False(t, ok)
}

func TestStackDoesNotSinkThroughFloor(t *testing.T) {
	w, _ := boxWorld(t)
	var ids []BodyID
	for i := range 6 {
		ids = append(ids, w.CreateCircle(vmath.V(10+float64(i%2)*0.3, 2+float64(i)*2.2), 1, testMaterial))
	}
	run(w, 5)
	for _, id := range ids {
		b, ok := w.Body(id)
		require.True(t, ok)
		assert.LessOrEqual(t, b.Position.Y, 19.1)
		assert.GreaterOrEqual(t, b.Position.X, 0.9)
		assert.LessOrEqual(t, b.Position.X, 19.1)
	}
	assert.EqualValues(t, 300, w.Steps())
}

func TestZeroStepIsNoop(t *testing.T) {
	w, _ := boxWorld(t)
	called := false
	w.OnStep(func([]Pair) { called = true })
	w.Step(0)
	assert.False(t, called)
	assert.Zero(t, w.Steps())
}
