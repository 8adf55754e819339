package system

import (
	"math"

	"emoji-merge/assets"
	"emoji-merge/internal/physics"
	"emoji-merge/internal/piece"
	"emoji-merge/internal/vmath"
)

const (
	// DropSoundSpeed is the minimum closing speed against a wall that
	// counts as an audible impact.
	DropSoundSpeed = 2.0
	// fullImpactSpeed is the closing speed that maps to full intensity.
	fullImpactSpeed = 12.0
)

// MergeSink receives the rule outcomes of one step as they happen.
type MergeSink interface {
	// Merged reports that two pieces combined into one of level at pos,
	// worth score points.
	Merged(level int, pos vmath.Vec2, score int)
	// MegaMerged reports that two top-level pieces cleared the board.
	MegaMerged(pos vmath.Vec2)
	// DropCue reports a piece's first audible contact with a wall.
	DropCue(level int, intensity float64)
}

// StepResult summarises what one Resolve call did.
type StepResult struct {
	Merges     int
	MegaMerges int
	Spawned    []physics.BodyID
	Removed    []physics.BodyID
}

// MergeResolver turns one step's contact pairs into merges. A piece takes
// part in at most one merge per step however many pairs mention it.
type MergeResolver struct {
	reg    *piece.Registry
	engine physics.Engine
	sink   MergeSink
}

// NewMergeResolver creates a resolver over reg and engine reporting to sink.
func NewMergeResolver(reg *piece.Registry, engine physics.Engine, sink MergeSink) *MergeResolver {
	return &MergeResolver{reg: reg, engine: engine, sink: sink}
}

// Resolve processes pairs in the order delivered. Locks taken during the
// call are released before it returns.
func (m *MergeResolver) Resolve(pairs []physics.Pair) StepResult {
	defer m.reg.ClearLocks()

	var res StepResult
	for _, p := range pairs {
		// Either side may have been consumed by an earlier pair.
		a, okA := m.engine.Body(p.A)
		b, okB := m.engine.Body(p.B)
		if !okA || !okB {
			continue
		}
		if a.Static || b.Static {
			m.wallContact(a, b, p.Speed)
			continue
		}
		if m.reg.IsLocked(a.ID) || m.reg.IsLocked(b.ID) {
			continue
		}
		levelA, okA := m.reg.LevelOf(a.ID)
		levelB, okB := m.reg.LevelOf(b.ID)
		if !okA || !okB || levelA != levelB {
			continue
		}

		pos := a.Position.Midpoint(b.Position)
		m.reg.Lock(a.ID)
		m.reg.Lock(b.ID)

		if levelA == assets.MaxLevel {
			removed := m.reg.RemoveAll()
			res.Removed = append(res.Removed, removed...)
			res.MegaMerges++
			m.sink.MegaMerged(pos)
			continue
		}

		m.reg.Remove(a.ID, b.ID)
		res.Removed = append(res.Removed, a.ID, b.ID)
		id := m.reg.SpawnMerged(levelA+1, pos)
		// A piece born this step sits out the rest of it.
		m.reg.Lock(id)
		res.Spawned = append(res.Spawned, id)
		res.Merges++
		m.sink.Merged(levelA+1, pos, assets.Def(levelA+1).Score)
	}
	return res
}

// wallContact plays a piece's one impact sound when it first hits a wall
// hard enough.
func (m *MergeResolver) wallContact(a, b physics.Body, speed float64) {
	if a.Static == b.Static {
		return
	}
	body := a
	if a.Static {
		body = b
	}
	level, ok := m.reg.LevelOf(body.ID)
	if !ok || speed < DropSoundSpeed {
		return
	}
	if !m.reg.MarkDropSound(body.ID) {
		return
	}
	m.sink.DropCue(level, math.Min(1, speed/fullImpactSpeed))
}
