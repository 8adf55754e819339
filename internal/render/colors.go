package render

import "github.com/gdamore/tcell/v2"

// Emoji are rendered by the terminal with their own colors, so only the
// text and line-art elements below carry a palette.
var (
	styleBase     = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleDeadline = styleBase.Foreground(tcell.ColorDarkRed)
	styleDanger   = styleBase.Foreground(tcell.ColorRed).Bold(true)
	styleGuide    = styleBase.Foreground(tcell.ColorGray)
	styleHUD      = styleBase.Foreground(tcell.ColorWhite)
	styleDim      = styleBase.Foreground(tcell.ColorDarkGray)
	styleMessage  = styleBase.Foreground(tcell.ColorLightYellow)
	styleOverlay  = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite).Bold(true)
)

// LevelColors tints the score popup of a merge by the level it produced,
// cool colors for small fruit warming towards the star.
var LevelColors = [12]tcell.Color{
	tcell.ColorWhite,       // unused
	tcell.ColorLightPink,   // cherry
	tcell.ColorHotPink,     // strawberry
	tcell.ColorMediumPurple,
	tcell.ColorOrange,
	tcell.ColorLimeGreen,
	tcell.ColorGreenYellow,
	tcell.ColorPeachPuff,
	tcell.ColorGold,
	tcell.ColorPaleGreen,
	tcell.ColorSpringGreen,
	tcell.ColorYellow, // golden star
}

// popupStyle returns the style of a "+N" popup for the given level.
func popupStyle(level int) tcell.Style {
	if level < 0 || level >= len(LevelColors) {
		level = 0
	}
	return styleBase.Foreground(LevelColors[level]).Bold(true)
}
