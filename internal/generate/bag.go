package generate

import "math/rand"

// Weight is one entry of a drop table: Level appears Count times per bag.
type Weight struct {
	Level int
	Count int
}

// Bag deals piece levels from a shuffled multiset, refilling whenever it
// runs dry. It never deals the same level twice in a row unless the table
// holds a single distinct level.
type Bag struct {
	weights   []Weight
	rng       *rand.Rand
	pending   []int
	lastDrawn int // 0 = none
}

// NewBag creates a bag over weights. Entries with Count <= 0 contribute
// nothing.
func NewBag(weights []Weight, rng *rand.Rand) *Bag {
	b := &Bag{weights: weights, rng: rng}
	b.refill()
	return b
}

// Pull removes and returns the next level.
func (b *Bag) Pull() int {
	if len(b.pending) == 0 {
		b.refill()
	}
	if len(b.pending) == 0 {
		return 0
	}
	i := b.pick()
	level := b.pending[i]
	b.pending = append(b.pending[:i], b.pending[i+1:]...)
	b.lastDrawn = level
	return level
}

// pick returns the index to deal next: the front, or when the front
// repeats the last level, the nearest entry that does not. That is index 1
// in the common case. If every pending entry repeats it, a fresh bag is
// appended first; nothing already pending is discarded.
func (b *Bag) pick() int {
	if b.pending[0] != b.lastDrawn {
		return 0
	}
	for i := 1; i < len(b.pending); i++ {
		if b.pending[i] != b.lastDrawn {
			return i
		}
	}
	if b.distinct() < 2 {
		return 0
	}
	n := len(b.pending)
	b.pending = append(b.pending, b.shuffled()...)
	for i := n; i < len(b.pending); i++ {
		if b.pending[i] != b.lastDrawn {
			return i
		}
	}
	return 0
}

// distinct counts the different levels the table can deal. Several
// entries may name the same level.
func (b *Bag) distinct() int {
	seen := make(map[int]bool, len(b.weights))
	for _, w := range b.weights {
		if w.Count > 0 {
			seen[w.Level] = true
		}
	}
	return len(seen)
}

// Reset forgets the last drawn level and deals a fresh bag, discarding
// whatever was still pending.
func (b *Bag) Reset() {
	b.lastDrawn = 0
	b.refill()
}

// Len returns the number of levels left before the next refill.
func (b *Bag) Len() int { return len(b.pending) }

func (b *Bag) refill() {
	b.pending = append(b.pending[:0], b.shuffled()...)
}

// shuffled returns the full multiset in Fisher–Yates order (last to first,
// each slot swapped with a uniformly drawn earlier-or-same index).
func (b *Bag) shuffled() []int {
	var out []int
	for _, w := range b.weights {
		for range w.Count {
			out = append(out, w.Level)
		}
	}
	for i := len(out) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
