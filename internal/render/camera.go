package render

import (
	"math"

	"emoji-merge/internal/board"
	"emoji-merge/internal/vmath"
)

// Camera translates between world coordinates and screen coordinates.
// The screen is treated as a grid of cells two columns wide and one row
// tall, because emoji occupy 2 terminal columns. Scale is cells per world
// unit and never exceeds 1.
type Camera struct {
	OriginX    int // screen column of world x = 0
	OriginY    int // screen row of world y = 0
	Scale      float64
	Cols, Rows int // interior size in cells
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// FitCamera sizes the camera so the whole board, its walls, and the HUD
// rows below it fit in a viewW x viewH terminal.
func FitCamera(b board.Board, viewW, viewH, hudRows int) *Camera {
	availCells := float64(viewW/2 - 2)
	availRows := float64(viewH - hudRows - 1)
	scale := math.Min(1, math.Min(availCells/b.Width, availRows/b.Height))
	if scale <= 0 {
		scale = 0.1
	}
	c := &Camera{
		Scale:      scale,
		Cols:       max(1, int(math.Ceil(b.Width*scale))),
		Rows:       max(1, int(math.Ceil(b.Height*scale))),
		ViewWidth:  viewW,
		ViewHeight: viewH,
	}
	boardCols := 2 * (c.Cols + 2)
	c.OriginX = max(0, (viewW-boardCols)/2) + 2
	c.OriginY = 0
	return c
}

// Cell returns the cell (column pair, row) containing world point p.
func (c *Camera) Cell(p vmath.Vec2) (cx, cy int) {
	return int(math.Floor(p.X * c.Scale)), int(math.Floor(p.Y * c.Scale))
}

// CellCenter returns the world point at the middle of cell (cx, cy).
func (c *Camera) CellCenter(cx, cy int) vmath.Vec2 {
	return vmath.V((float64(cx)+0.5)/c.Scale, (float64(cy)+0.5)/c.Scale)
}

// CellToScreen converts a cell to its screen column and row. visible is
// false when the result falls outside the viewport.
func (c *Camera) CellToScreen(cx, cy int) (sx, sy int, visible bool) {
	sx = c.OriginX + 2*cx
	sy = c.OriginY + cy
	visible = sx >= 0 && sx+1 < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// WorldToScreen converts world p to screen (sx, sy).
func (c *Camera) WorldToScreen(p vmath.Vec2) (sx, sy int, visible bool) {
	return c.CellToScreen(c.Cell(p))
}

// ScreenToWorldX converts a screen column to the world x at the middle of
// its cell. Used to steer the drop guide with the mouse.
func (c *Camera) ScreenToWorldX(sx int) float64 {
	cx := (sx - c.OriginX)
	if cx < 0 {
		cx -= 1
	}
	return (float64(cx/2) + 0.5) / c.Scale
}
