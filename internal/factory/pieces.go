package factory

import (
	"emoji-merge/assets"
	"emoji-merge/internal/board"
	"emoji-merge/internal/physics"
)

// Surface profile shared by every piece: grippy and nearly dead so stacks
// stay where they land.
const (
	PieceRestitution    = 0.1
	PieceFriction       = 0.9
	PieceStaticFriction = 1.0
	PieceAirFriction    = 0.01
)

// PieceMaterial returns the physics material for a piece of the given level.
func PieceMaterial(level int) physics.Material {
	def := assets.Def(level)
	return physics.Material{
		Mass:           def.Mass,
		Restitution:    PieceRestitution,
		Friction:       PieceFriction,
		StaticFriction: PieceStaticFriction,
		AirFriction:    PieceAirFriction,
	}
}

// NewBoundaries creates the board's walls in the engine and returns their
// handles.
func NewBoundaries(e physics.Engine, b board.Board) []physics.BodyID {
	walls := b.Walls()
	ids := make([]physics.BodyID, 0, len(walls))
	for _, r := range walls {
		ids = append(ids, e.CreateBoundary(r))
	}
	return ids
}
