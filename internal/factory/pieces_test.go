package factory

import (
	"testing"

	"emoji-merge/assets"
	"emoji-merge/internal/board"
	"emoji-merge/internal/physics"
	"emoji-merge/internal/vmath"
)

func TestPieceMaterialScalesWithLevel(t *testing.T) {
	prev := physics.Material{}
	for level := 1; level <= assets.MaxLevel; level++ {
		m := PieceMaterial(level)
		if m.Mass <= prev.Mass {
			t.Fatalf("level %d mass %v not above level %d mass %v", level, m.Mass, level-1, prev.Mass)
		}
		if m.Friction != PieceFriction || m.StaticFriction != PieceStaticFriction {
			t.Fatalf("level %d: unexpected surface %+v", level, m)
		}
		if m.AirFriction >= m.Friction {
			t.Fatalf("level %d: air friction should be far below contact friction", level)
		}
		prev = m
	}
}

func TestPieceMaterialPanicsOnInvalidLevel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for level 0")
		}
	}()
	PieceMaterial(0)
}

func TestNewBoundaries(t *testing.T) {
	w := physics.NewWorld(vmath.V(0, 40), 1)
	ids := NewBoundaries(w, board.New(24, 30, 0.18, 2.5))
	if len(ids) != 3 {
		t.Fatalf("expected 3 walls, got %d", len(ids))
	}
	for _, id := range ids {
		b, ok := w.Body(id)
		if !ok || !b.Static {
			t.Fatalf("wall %v should be a live static body", id)
		}
	}
}
