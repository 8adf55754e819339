// Package board holds the fixed geometry of the play field: the container
// walls, the spawn line and the deadline.
package board

import "emoji-merge/internal/vmath"

// WallThickness is the thickness of each container wall in world units.
const WallThickness = 1.0

// DropMargin keeps a dropped piece this far from the side walls.
const DropMargin = 0.1

// Board is the open-topped container pieces fall into. The interior spans
// x in [0, Width] and y in [0, Height]; y grows downward.
type Board struct {
	Width, Height float64
	DeadlineRatio float64 // deadline height as a fraction of Height
	SpawnY        float64 // y at which dropped pieces appear
}

// New creates a board with the given interior size.
func New(width, height, deadlineRatio, spawnY float64) Board {
	return Board{Width: width, Height: height, DeadlineRatio: deadlineRatio, SpawnY: spawnY}
}

// DeadlineY returns the y of the deadline line.
func (b Board) DeadlineY() float64 {
	return b.Height * b.DeadlineRatio
}

// SpawnExclusionY is the y a piece must fall below before it can count
// against the deadline; a piece still at its drop point never does.
func (b Board) SpawnExclusionY() float64 {
	return b.SpawnY + 1
}

// Walls returns the floor and the two side walls. The side walls extend
// well above the top so a piece at the spawn line cannot slip over them.
func (b Board) Walls() []vmath.Rect {
	t := WallThickness
	top := -b.Height
	return []vmath.Rect{
		vmath.R(-t, b.Height, b.Width+t, b.Height+t), // floor
		vmath.R(-t, top, 0, b.Height+t),              // left
		vmath.R(b.Width, top, b.Width+t, b.Height+t), // right
	}
}

// ClampDropX limits x so a piece of the given radius fits between the
// walls with DropMargin to spare.
func (b Board) ClampDropX(x, radius float64) float64 {
	return vmath.Clamp(x, radius+DropMargin, b.Width-radius-DropMargin)
}

// InBounds reports whether p lies inside the interior.
func (b Board) InBounds(p vmath.Vec2) bool {
	return p.X >= 0 && p.X <= b.Width && p.Y >= 0 && p.Y <= b.Height
}
