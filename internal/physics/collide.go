package physics

import (
	"math"

	"emoji-merge/internal/component"
	"emoji-merge/internal/vmath"

	"github.com/solarlune/resolv"
)

const (
	// contactSlop is how far apart two surfaces may be and still count as
	// touching, so resting bodies keep reporting their contact every step.
	contactSlop = 0.02
	// correctionPercent and penetrationSlop control positional correction.
	correctionPercent = 0.8
	penetrationSlop   = 0.005
)

// manifold describes one contact between a dynamic body and another body.
// Normal points from A towards B.
type manifold struct {
	a, b        *dynBody
	normal      vmath.Vec2
	penetration float64
}

// dynBody is the mutable view of a body used during one substep.
type dynBody struct {
	id     BodyID
	kin    component.Kinematics
	radius float64
	mat    component.Material
	rect   vmath.Rect
	shape  *resolv.ConvexPolygon // walls only
	static bool
}

func (b *dynBody) invMass() float64 {
	if b.static {
		return 0
	}
	return b.mat.InvMass()
}

// detectCircleCircle returns the contact between two circles, if touching.
func detectCircleCircle(a, b *dynBody) (manifold, bool) {
	delta := b.kin.Pos.Sub(a.kin.Pos)
	other := resolv.NewCircle(b.kin.Pos.X, b.kin.Pos.Y, b.radius)
	if m, ok := fromContactSet(a, b, probe(a).Intersection(0, 0, other), delta); ok {
		return m, true
	}
	// resolv finds contacts where the outlines cross, so a circle wholly
	// inside another reports none.
	total := a.radius + b.radius
	distSq := delta.LenSq()
	if distSq >= total*total {
		return manifold{}, false
	}
	dist := math.Sqrt(distSq)
	normal := vmath.V(0, 1)
	if dist > 0 {
		normal = delta.Scale(1 / dist)
	}
	return manifold{a: a, b: b, normal: normal, penetration: total - dist}, true
}

// detectCircleRect returns the contact between circle c and static rect r.
func detectCircleRect(c, r *dynBody) (manifold, bool) {
	p := c.kin.Pos
	if !r.rect.Contains(p) {
		towardRect := r.rect.Closest(p).Sub(p)
		return fromContactSet(c, r, probe(c).Intersection(0, 0, r.shape), towardRect)
	}
	// Center inside the rect: push out along the shallowest axis.
	left := p.X - r.rect.Min.X
	right := r.rect.Max.X - p.X
	top := p.Y - r.rect.Min.Y
	bottom := r.rect.Max.Y - p.Y
	m := manifold{a: c, b: r}
	switch math.Min(math.Min(left, right), math.Min(top, bottom)) {
	case left:
		m.normal, m.penetration = vmath.V(1, 0), left+c.radius
	case right:
		m.normal, m.penetration = vmath.V(-1, 0), right+c.radius
	case top:
		m.normal, m.penetration = vmath.V(0, 1), top+c.radius
	default:
		m.normal, m.penetration = vmath.V(0, -1), bottom+c.radius
	}
	return m, true
}

// probe is the collision shape of circle b grown by contactSlop, so that
// resting neighbours still intersect it.
func probe(b *dynBody) *resolv.Circle {
	return resolv.NewCircle(b.kin.Pos.X, b.kin.Pos.Y, b.radius+contactSlop)
}

// fromContactSet turns a contact set reported for a's probe into a
// manifold. The minimum translation vector gives the axis and depth; the
// normal is oriented along towardB.
func fromContactSet(a, b *dynBody, cs *resolv.ContactSet, towardB vmath.Vec2) (manifold, bool) {
	if cs == nil || len(cs.MTV) < 2 {
		return manifold{}, false
	}
	mtv := vmath.V(cs.MTV[0], cs.MTV[1])
	depth := mtv.Len()
	if depth == 0 || math.IsNaN(depth) {
		return manifold{}, false
	}
	normal := mtv.Scale(1 / depth)
	if normal.Dot(towardB) < 0 {
		normal = normal.Scale(-1)
	}
	return manifold{a: a, b: b, normal: normal, penetration: depth - contactSlop}, true
}

// closingSpeed is the speed at which the two bodies approach along the
// normal; positive means approaching.
func (m manifold) closingSpeed() float64 {
	rel := m.b.kin.Vel.Sub(m.a.kin.Vel)
	return -rel.Dot(m.normal)
}

// resolve applies the normal and friction impulses and corrects overlap.
func (m manifold) resolve() {
	a, b := m.a, m.b
	invA, invB := a.invMass(), b.invMass()
	invSum := invA + invB
	if invSum == 0 {
		return
	}

	rel := b.kin.Vel.Sub(a.kin.Vel)
	velAlongNormal := rel.Dot(m.normal)
	if velAlongNormal < 0 {
		e := math.Min(a.mat.Restitution, b.mat.Restitution)
		j := -(1 + e) * velAlongNormal / invSum
		impulse := m.normal.Scale(j)
		a.kin.Vel = a.kin.Vel.Sub(impulse.Scale(invA))
		b.kin.Vel = b.kin.Vel.Add(impulse.Scale(invB))
		m.applyFriction(j, invA, invB)
	}

	if m.penetration > penetrationSlop {
		correction := m.normal.Scale((m.penetration - penetrationSlop) / invSum * correctionPercent)
		a.kin.Pos = a.kin.Pos.Sub(correction.Scale(invA))
		b.kin.Pos = b.kin.Pos.Add(correction.Scale(invB))
	}
}

func (m manifold) applyFriction(normalImpulse, invA, invB float64) {
	a, b := m.a, m.b
	rel := b.kin.Vel.Sub(a.kin.Vel)
	tangent := rel.Sub(m.normal.Scale(rel.Dot(m.normal)))
	if tangent.LenSq() < 1e-12 {
		return
	}
	tangent = tangent.Normalize()

	jt := -rel.Dot(tangent) / (invA + invB)
	staticMu := math.Sqrt(surface(a).StaticFriction * surface(b).StaticFriction)
	var frictionImpulse vmath.Vec2
	if math.Abs(jt) <= normalImpulse*staticMu {
		frictionImpulse = tangent.Scale(jt)
	} else {
		mu := math.Sqrt(surface(a).Friction * surface(b).Friction)
		frictionImpulse = tangent.Scale(-normalImpulse * mu)
	}
	a.kin.Vel = a.kin.Vel.Sub(frictionImpulse.Scale(invA))
	b.kin.Vel = b.kin.Vel.Add(frictionImpulse.Scale(invB))
}

// wallSurface is the surface profile of every boundary.
var wallSurface = component.Material{Friction: 0.9, StaticFriction: 1}

func surface(b *dynBody) component.Material {
	if b.static {
		return wallSurface
	}
	return b.mat
}
