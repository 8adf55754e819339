package assets

// LevelLore holds the line shown the first time a level appears in a run
// (index 0 unused).
var LevelLore = [MaxLevel + 1]string{
	"",
	"A cherry rolls in. Small, round, and already plotting.",
	"Two cherries became a strawberry. Nobody asked them to.",
	"A grape cluster. Technically several fruits. Counts as one.",
	"A tangerine. The bag never drops these on purpose.",
	"An apple. Gravity has taken an interest.",
	"A pear, slightly lopsided, stubbornly stable.",
	"A peach. Soft to the touch, heavy on the stack.",
	"A pineapple. Spiky, proud, and hard to fit anywhere.",
	"A melon. The board is starting to feel small.",
	"A watermelon. Everything else shuffles aside.",
	"A golden star. Make another and the board is yours again.",
}

// MegaMergeLore is shown when two golden stars collide.
const MegaMergeLore = "Two stars collide. The board empties in a flash of light."

// GameOverLore is shown when the stack stays above the deadline too long.
const GameOverLore = "The pile held above the line too long. Click or press R to play again."
