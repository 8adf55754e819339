// Package piece tracks which physics bodies are pieces, what level each
// one is, and which ones are already spoken for in the current step.
package piece

import (
	"slices"

	"emoji-merge/assets"
	"emoji-merge/internal/factory"
	"emoji-merge/internal/physics"
	"emoji-merge/internal/vmath"

	"github.com/kamstrup/intmap"
)

type record struct {
	level           int
	dropSoundPlayed bool
}

// Registry is the authoritative level metadata for live pieces. The engine
// owns geometry; the registry owns everything the rules care about.
type Registry struct {
	engine physics.Engine
	pieces *intmap.Map[physics.BodyID, record]
	locks  *intmap.Set[physics.BodyID]
}

// NewRegistry creates an empty registry that spawns bodies in engine.
func NewRegistry(engine physics.Engine) *Registry {
	return &Registry{
		engine: engine,
		pieces: intmap.New[physics.BodyID, record](64),
		locks:  intmap.NewSet[physics.BodyID](8),
	}
}

// Spawn creates a piece of the given level at pos.
func (r *Registry) Spawn(level int, pos vmath.Vec2) physics.BodyID {
	return r.spawn(level, pos, false)
}

// SpawnMerged creates the product of a merge. It starts with its impact
// sound already spent so it does not clack against a wall it was born on.
func (r *Registry) SpawnMerged(level int, pos vmath.Vec2) physics.BodyID {
	return r.spawn(level, pos, true)
}

func (r *Registry) spawn(level int, pos vmath.Vec2, soundPlayed bool) physics.BodyID {
	def := assets.Def(level)
	id := r.engine.CreateCircle(pos, def.Radius, factory.PieceMaterial(level))
	r.pieces.Put(id, record{level: level, dropSoundPlayed: soundPlayed})
	return id
}

// Remove deletes the given pieces from the engine and the registry.
// Handles that are not pieces are ignored.
func (r *Registry) Remove(ids ...physics.BodyID) {
	doomed := make([]physics.BodyID, 0, len(ids))
	for _, id := range ids {
		if r.pieces.Del(id) {
			doomed = append(doomed, id)
		}
	}
	if len(doomed) > 0 {
		r.engine.RemoveBodies(doomed...)
	}
}

// RemoveAll deletes every live piece and returns their handles.
func (r *Registry) RemoveAll() []physics.BodyID {
	ids := r.Live()
	r.Remove(ids...)
	return ids
}

// LevelOf returns the level of a live piece.
func (r *Registry) LevelOf(id physics.BodyID) (int, bool) {
	rec, ok := r.pieces.Get(id)
	return rec.level, ok
}

// IsPiece reports whether id is a live piece.
func (r *Registry) IsPiece(id physics.BodyID) bool {
	return r.pieces.Has(id)
}

// Len returns the number of live pieces.
func (r *Registry) Len() int { return r.pieces.Len() }

// Live returns the handles of every live piece in ascending order.
func (r *Registry) Live() []physics.BodyID {
	ids := make([]physics.BodyID, 0, r.pieces.Len())
	r.pieces.ForEach(func(id physics.BodyID, _ record) bool {
		ids = append(ids, id)
		return true
	})
	slices.Sort(ids)
	return ids
}

// MarkDropSound records that the piece's impact sound has played. It
// returns true only the first time for a given piece.
func (r *Registry) MarkDropSound(id physics.BodyID) bool {
	rec, ok := r.pieces.Get(id)
	if !ok || rec.dropSoundPlayed {
		return false
	}
	rec.dropSoundPlayed = true
	r.pieces.Put(id, rec)
	return true
}

// DropSoundPlayed reports whether the piece's impact sound has played.
func (r *Registry) DropSoundPlayed(id physics.BodyID) bool {
	rec, ok := r.pieces.Get(id)
	return ok && rec.dropSoundPlayed
}

// Lock marks id as consumed for the rest of the current step.
func (r *Registry) Lock(id physics.BodyID) { r.locks.Add(id) }

// IsLocked reports whether id was consumed earlier in this step.
func (r *Registry) IsLocked(id physics.BodyID) bool { return r.locks.Has(id) }

// ClearLocks ends the step. Locks never outlive the step that set them.
func (r *Registry) ClearLocks() { r.locks.Clear() }
