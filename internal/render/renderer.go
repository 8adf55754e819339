package render

import (
	"fmt"
	"math"
	"time"

	"emoji-merge/assets"
	"emoji-merge/internal/board"
	"emoji-merge/internal/session"
	"emoji-merge/internal/system"
	"emoji-merge/internal/vmath"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// hudRows is the number of rows reserved under the board.
const hudRows = 5

// Frame is everything one redraw needs.
type Frame struct {
	Snap     session.Snapshot
	Effects  []system.Effect
	Messages []string
	Grace    time.Duration
	Blink    bool // toggles a few times a second for warnings
}

// Renderer draws the board onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	board  board.Board
	camera *Camera
}

// NewRenderer creates a Renderer for the given screen and board.
func NewRenderer(screen tcell.Screen, b board.Board) *Renderer {
	r := &Renderer{screen: screen, board: b}
	r.Resize()
	return r
}

// Resize refits the camera to the current screen size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera = FitCamera(r.board, w, h, hudRows)
}

// Camera returns the current camera.
func (r *Renderer) Camera() *Camera { return r.camera }

// ScreenToWorldX converts a mouse column to a world x for the drop guide.
func (r *Renderer) ScreenToWorldX(sx int) float64 {
	return r.camera.ScreenToWorldX(sx)
}

// DrawFrame renders the board, pieces, effects, HUD, and overlay.
func (r *Renderer) DrawFrame(f Frame) {
	r.screen.Clear()
	r.drawWalls()
	r.drawDeadline(f.Snap.DeadlineRunning && f.Blink)
	if !f.Snap.IsGameOver {
		r.drawGuide(f.Snap)
	}
	for _, p := range f.Snap.Pieces {
		def := assets.Def(p.Level)
		r.drawDisk(p.Pos, def.Radius, def.Glyph)
	}
	r.drawEffects(f.Effects)
	r.DrawHUD(f)
	if f.Snap.IsGameOver {
		r.drawGameOver(f.Snap)
	}
	r.screen.Show()
}

func (r *Renderer) drawWalls() {
	c := r.camera
	for cy := 0; cy <= c.Rows; cy++ {
		r.putCell(-1, cy, assets.GlyphWall, styleBase)
		r.putCell(c.Cols, cy, assets.GlyphWall, styleBase)
	}
	for cx := 0; cx < c.Cols; cx++ {
		r.putCell(cx, c.Rows, assets.GlyphWall, styleBase)
	}
}

func (r *Renderer) drawDeadline(alarm bool) {
	c := r.camera
	_, cy := c.Cell(vmath.V(0, r.board.DeadlineY()))
	style := styleDeadline
	if alarm {
		style = styleDanger
	}
	for cx := 0; cx < c.Cols; cx++ {
		sx, sy, ok := c.CellToScreen(cx, cy)
		if !ok {
			continue
		}
		r.screen.SetContent(sx, sy, []rune(assets.GlyphDeadline)[0], nil, style)
		r.screen.SetContent(sx+1, sy, []rune(assets.GlyphDeadline)[0], nil, style)
	}
}

// drawGuide draws the vertical drop line and, once the cooldown is over,
// the piece waiting to be dropped.
func (r *Renderer) drawGuide(snap session.Snapshot) {
	c := r.camera
	spawn := vmath.V(snap.DropX, r.board.SpawnY)
	cx, cy := c.Cell(spawn)
	for y := cy + 1; y < c.Rows; y++ {
		if sx, sy, ok := c.CellToScreen(cx, y); ok {
			r.screen.SetContent(sx, sy, []rune(assets.GlyphGuide)[0], nil, styleGuide)
		}
	}
	if snap.Cooling || !assets.ValidLevel(snap.Current) {
		return
	}
	def := assets.Def(snap.Current)
	r.drawDisk(spawn, def.Radius, def.Glyph)
}

// drawDisk fills every cell whose center lies within radius of center.
// A piece smaller than a cell still gets the cell it sits in.
func (r *Renderer) drawDisk(center vmath.Vec2, radius float64, glyph string) {
	c := r.camera
	x0, y0 := c.Cell(center.Sub(vmath.V(radius, radius)))
	x1, y1 := c.Cell(center.Add(vmath.V(radius, radius)))
	drawn := false
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			if c.CellCenter(cx, cy).Sub(center).Len() > radius {
				continue
			}
			if r.putInterior(cx, cy, glyph, styleBase) {
				drawn = true
			}
		}
	}
	if !drawn {
		cx, cy := c.Cell(center)
		r.putInterior(cx, cy, glyph, styleBase)
	}
}

// drawRing draws glyph on every cell whose center is within half a cell
// of the circle of the given radius.
func (r *Renderer) drawRing(center vmath.Vec2, radius float64, glyph string) {
	c := r.camera
	half := 0.5 / c.Scale
	x0, y0 := c.Cell(center.Sub(vmath.V(radius+half, radius+half)))
	x1, y1 := c.Cell(center.Add(vmath.V(radius+half, radius+half)))
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			d := c.CellCenter(cx, cy).Sub(center).Len()
			if math.Abs(d-radius) <= half {
				r.putInterior(cx, cy, glyph, styleBase)
			}
		}
	}
}

func (r *Renderer) drawEffects(effects []system.Effect) {
	span := math.Max(r.board.Width, r.board.Height)
	for _, e := range effects {
		p := e.Progress()
		switch e.Kind {
		case system.EffectFlash:
			r.drawRing(e.Pos, e.Radius+p*1.5, assets.GlyphSpark)
		case system.EffectMegaBurst:
			r.drawRing(e.Pos, 1+p*span, assets.GlyphBurst)
		case system.EffectPopup:
			level, _ := assets.LevelForScore(e.Score)
			pos := e.Pos.Sub(vmath.V(0, p*3))
			sx, sy, ok := r.camera.WorldToScreen(pos)
			if ok {
				r.drawText(sx, sy, fmt.Sprintf("+%d", e.Score), popupStyle(level))
			}
		}
	}
}

// putInterior draws glyph in an interior cell. It reports false for cells
// outside the board.
func (r *Renderer) putInterior(cx, cy int, glyph string, style tcell.Style) bool {
	if cx < 0 || cx >= r.camera.Cols || cy < 0 || cy >= r.camera.Rows {
		return false
	}
	return r.putCell(cx, cy, glyph, style)
}

func (r *Renderer) putCell(cx, cy int, glyph string, style tcell.Style) bool {
	sx, sy, ok := r.camera.CellToScreen(cx, cy)
	if !ok {
		return false
	}
	r.putGlyph(sx, sy, glyph, style)
	return true
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
