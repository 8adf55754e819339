package assets

import (
	"fmt"

	"emoji-merge/internal/generate"
)

// Glyphs used for the board itself.
const (
	GlyphWall     = "🧱"
	GlyphDeadline = "┄"
	GlyphUnknown  = "❔"
	GlyphSpark    = "✨"
	GlyphBurst    = "💥"
	GlyphGuide    = "┊"
)

// MaxLevel is the terminal level. Two MaxLevel pieces mega-merge instead of
// producing a new piece.
const MaxLevel = 11

// MegaBonus is awarded for a mega-merge in place of any per-piece value.
const MegaBonus = 1000

// LevelDef describes one rung of the merge ladder.
type LevelDef struct {
	Level  int
	Name   string
	Glyph  string
	Radius float64 // world units
	Mass   float64
	Score  int // awarded when a merge produces this level
}

// Levels is indexed by level (1..MaxLevel); index 0 is unused.
// Radius and Score strictly increase with level.
var Levels = [MaxLevel + 1]LevelDef{
	{},
	{Level: 1, Name: "Cherry", Glyph: "🍒", Radius: 0.9, Score: 1},
	{Level: 2, Name: "Strawberry", Glyph: "🍓", Radius: 1.2, Score: 3},
	{Level: 3, Name: "Grape", Glyph: "🍇", Radius: 1.5, Score: 6},
	{Level: 4, Name: "Tangerine", Glyph: "🍊", Radius: 1.9, Score: 10},
	{Level: 5, Name: "Apple", Glyph: "🍎", Radius: 2.3, Score: 15},
	{Level: 6, Name: "Pear", Glyph: "🍐", Radius: 2.7, Score: 21},
	{Level: 7, Name: "Peach", Glyph: "🍑", Radius: 3.1, Score: 28},
	{Level: 8, Name: "Pineapple", Glyph: "🍍", Radius: 3.6, Score: 36},
	{Level: 9, Name: "Melon", Glyph: "🍈", Radius: 4.1, Score: 45},
	{Level: 10, Name: "Watermelon", Glyph: "🍉", Radius: 4.7, Score: 55},
	{Level: 11, Name: "Golden Star", Glyph: "🌟", Radius: 5.3, Score: 66},
}

func init() {
	// Uniform density: mass grows with area.
	for i := 1; i <= MaxLevel; i++ {
		Levels[i].Mass = Levels[i].Radius * Levels[i].Radius
	}
}

// ValidLevel reports whether level is on the merge ladder.
func ValidLevel(level int) bool {
	return level >= 1 && level <= MaxLevel
}

// Def returns the definition for level. An out-of-range level is a
// programming error and panics.
func Def(level int) LevelDef {
	if !ValidLevel(level) {
		panic(fmt.Sprintf("assets: level %d out of range 1..%d", level, MaxLevel))
	}
	return Levels[level]
}

// LevelForScore returns the level whose merge is worth score. Every level
// has a distinct score.
func LevelForScore(score int) (int, bool) {
	for i := 1; i <= MaxLevel; i++ {
		if Levels[i].Score == score {
			return i, true
		}
	}
	return 0, false
}

// BagWeights is the drop table: only the five smallest levels are ever
// dropped, smaller ones more often.
var BagWeights = []generate.Weight{
	{Level: 1, Count: 6},
	{Level: 2, Count: 6},
	{Level: 3, Count: 5},
	{Level: 4, Count: 4},
	{Level: 5, Count: 3},
}
