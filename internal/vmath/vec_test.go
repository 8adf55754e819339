package vmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMidpoint(t *testing.T) {
	m := V(2, 4).Midpoint(V(6, 10))
	assert.Equal(t, V(4, 7), m)
}

func TestNormalizeZero(t *testing.T) {
	assert.Equal(t, Vec2{}, Vec2{}.Normalize())
	assert.InDelta(t, 1.0, V(3, 4).Normalize().Len(), 1e-9)
}

func TestRectClosest(t *testing.T) {
	r := R(0, 0, 10, 2)
	assert.Equal(t, V(10, 2), r.Closest(V(15, 7)))
	assert.Equal(t, V(3, 1), r.Closest(V(3, 1)))
	assert.True(t, r.Contains(V(10, 2)))
	assert.False(t, r.Contains(V(10.1, 2)))
}

func TestClamp(t *testing.T) {
	cases := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -1, 0, 10, 0},
		{"above", 11, 0, 10, 10},
		{"inverted range", 3, 6, 4, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Clamp(tc.v, tc.lo, tc.hi))
		})
	}
}
