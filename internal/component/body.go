// Package component holds the data stored on physics bodies in the ECS
// world. Pieces carry Kinematics, Circle and Material; walls carry Boundary.
package component

import (
	"emoji-merge/internal/ecs"
	"emoji-merge/internal/vmath"
)

const (
	CKinematics ecs.ComponentType = 1
	CCircle     ecs.ComponentType = 2
	CBoundary   ecs.ComponentType = 3
	CMaterial   ecs.ComponentType = 4
)

// Kinematics is the integrated state of a dynamic body.
type Kinematics struct {
	Pos vmath.Vec2
	Vel vmath.Vec2
}

func (Kinematics) Type() ecs.ComponentType { return CKinematics }

// Circle is the collision shape of every dynamic body.
type Circle struct {
	Radius float64
}

func (Circle) Type() ecs.ComponentType { return CCircle }

// Boundary marks a static axis-aligned wall. Boundaries never move and
// never carry Kinematics.
type Boundary struct {
	Rect vmath.Rect
}

func (Boundary) Type() ecs.ComponentType { return CBoundary }

// Material is the mass and surface profile used during contact resolution.
type Material struct {
	Mass           float64
	Restitution    float64
	Friction       float64 // dynamic friction coefficient
	StaticFriction float64 // tangential impulse ratio below which contact sticks
	AirFriction    float64 // fraction of velocity lost per second
}

func (Material) Type() ecs.ComponentType { return CMaterial }

// InvMass returns 1/Mass, or 0 for an immovable body.
func (m Material) InvMass() float64 {
	if m.Mass <= 0 {
		return 0
	}
	return 1 / m.Mass
}
