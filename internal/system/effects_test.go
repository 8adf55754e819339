package system

import (
	"testing"

	"emoji-merge/internal/vmath"
)

func TestEffectsExpire(t *testing.T) {
	var q Effects
	q.Add(EffectFlash, vmath.V(1, 1), 2, 0)
	q.Add(EffectPopup, vmath.V(1, 1), 0, 10)

	for range FlashSteps - 1 {
		q.Tick()
	}
	if len(q.Active()) != 2 {
		t.Fatalf("active = %d; want 2 before the flash expires", len(q.Active()))
	}
	q.Tick()
	active := q.Active()
	if len(active) != 1 || active[0].Kind != EffectPopup {
		t.Fatalf("active = %+v; want only the popup", active)
	}
	if active[0].Score != 10 {
		t.Fatalf("popup score = %d; want 10", active[0].Score)
	}
}

func TestEffectProgress(t *testing.T) {
	var q Effects
	q.Add(EffectMegaBurst, vmath.V(0, 0), 0, 0)
	if p := q.Active()[0].Progress(); p != 0 {
		t.Fatalf("fresh progress = %v; want 0", p)
	}
	for range BurstSteps / 2 {
		q.Tick()
	}
	if p := q.Active()[0].Progress(); p != 0.5 {
		t.Fatalf("halfway progress = %v; want 0.5", p)
	}
}

func TestEffectsClear(t *testing.T) {
	var q Effects
	q.Add(EffectFlash, vmath.V(0, 0), 1, 0)
	q.Add(EffectMegaBurst, vmath.V(0, 0), 0, 0)
	q.Clear()
	if len(q.Active()) != 0 {
		t.Fatalf("active = %d; want 0 after Clear", len(q.Active()))
	}
}
