package render

import (
	"fmt"
	"strings"

	"emoji-merge/assets"
	"emoji-merge/internal/session"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DrawHUD renders the status line, the gallery, the last messages, and
// the key help under the board.
func (r *Renderer) DrawHUD(f Frame) {
	snap := f.Snap
	y := r.camera.OriginY + r.camera.Rows + 1
	x := max(0, r.camera.OriginX-2)

	status := fmt.Sprintf("Score %d   Best %d   Next ", snap.Score, snap.HiScore)
	col := r.drawText(x, y, status, styleHUD)
	if assets.ValidLevel(snap.Next) {
		r.putGlyph(col, y, assets.Def(snap.Next).Glyph, styleBase)
		col += 2
	}
	if snap.DeadlineRunning && !snap.IsGameOver {
		warn := fmt.Sprintf("   DANGER %.1fs/%.1fs", snap.DeadlineElapsed.Seconds(), f.Grace.Seconds())
		style := styleDeadline
		if f.Blink {
			style = styleDanger
		}
		r.drawText(col, y, warn, style)
	}

	col = r.drawText(x, y+1, "Gallery ", styleDim)
	r.drawText(col, y+1, galleryLine(snap), styleBase)

	start := max(0, len(f.Messages)-2)
	for i, msg := range f.Messages[start:] {
		r.drawText(x, y+2+i, msg, styleMessage)
	}

	r.drawText(x, y+4, "←/→ move  space drop  r restart  q quit", styleDim)
}

// galleryLine lists every level's glyph, or a question mark for levels the
// player has never reached.
func galleryLine(snap session.Snapshot) string {
	seen := make(map[int]bool, len(snap.Gallery)+len(snap.Discovered))
	for _, l := range snap.Gallery {
		seen[l] = true
	}
	for _, l := range snap.Discovered {
		seen[l] = true
	}
	var b strings.Builder
	for level := 1; level <= assets.MaxLevel; level++ {
		if seen[level] {
			b.WriteString(assets.Def(level).Glyph)
		} else {
			b.WriteString(assets.GlyphUnknown)
		}
	}
	return b.String()
}

// drawGameOver centers a small box over the board.
func (r *Renderer) drawGameOver(snap session.Snapshot) {
	lines := []string{
		"GAME OVER",
		assets.GameOverLore,
		fmt.Sprintf("Score %d   Best %d", snap.Score, snap.HiScore),
		"space / click to play again, q to quit",
	}
	width := 0
	for _, l := range lines {
		width = max(width, runewidth.StringWidth(l))
	}
	width += 4

	c := r.camera
	centerX := c.OriginX + c.Cols
	top := c.OriginY + c.Rows/2 - len(lines)/2 - 1
	left := max(0, centerX-width/2)

	for i := -1; i <= len(lines); i++ {
		text := ""
		if i >= 0 && i < len(lines) {
			text = lines[i]
		}
		pad := width - runewidth.StringWidth(text)
		row := strings.Repeat(" ", pad/2) + text + strings.Repeat(" ", pad-pad/2)
		r.drawText(left, top+1+i, row, styleOverlay)
	}
}

// drawText writes text from (x, y) and returns the column after it. Wide
// runes take two columns. Text past the right edge is dropped.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	sw, _ := r.screen.Size()
	col := x
	for _, ch := range text {
		if col >= sw {
			break
		}
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(1, runewidth.RuneWidth(ch))
	}
	return col
}
