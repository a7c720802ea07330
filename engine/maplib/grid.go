package maplib

import "math"

// Grid describes the fixed square tile lattice in pixel space
type Grid struct {
	Cols int
	Rows int
	Tile float64 // cell edge length in pixels
}

// Box is an axis-aligned rectangle in pixel coordinates
type Box struct {
	X, Y float64
	W, H float64
}

// TileBox returns a one-tile box at pixel position (x, y).
func (g Grid) TileBox(x, y float64) Box {
	return Box{X: x, Y: y, W: g.Tile, H: g.Tile}
}

// CellBox returns the box covering cell (cx, cy).
func (g Grid) CellBox(cx, cy int) Box {
	return g.TileBox(float64(cx)*g.Tile, float64(cy)*g.Tile)
}

// CellOrigin returns the pixel position of cell (cx, cy).
func (g Grid) CellOrigin(cx, cy int) (float64, float64) {
	return float64(cx) * g.Tile, float64(cy) * g.Tile
}

// PixelWidth returns the grid width in pixels
func (g Grid) PixelWidth() float64 { return float64(g.Cols) * g.Tile }

// PixelHeight returns the grid height in pixels
func (g Grid) PixelHeight() float64 { return float64(g.Rows) * g.Tile }

// Overlaps reports whether a intersects the occupant b. The occupant always
// counts as one full tile regardless of its own size, which keeps every
// collision test tile-granular.
func (g Grid) Overlaps(a, b Box) bool {
	return a.X < b.X+g.Tile &&
		a.X+a.W > b.X &&
		a.Y < b.Y+g.Tile &&
		a.Y+a.H > b.Y
}

// Contains reports whether the whole box lies inside the grid.
func (g Grid) Contains(b Box) bool {
	return b.X >= 0 && b.Y >= 0 &&
		b.X+b.W <= g.PixelWidth() &&
		b.Y+b.H <= g.PixelHeight()
}

// Outside reports whether a projectile-style position has left the grid.
func (g Grid) Outside(x, y float64) bool {
	return x < 0 || y < 0 || x > g.PixelWidth() || y > g.PixelHeight()
}

// CellSpan returns the inclusive cell range touched by b, clamped to the grid.
func (g Grid) CellSpan(b Box) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(b.X / g.Tile))
	y0 = int(math.Floor(b.Y / g.Tile))
	x1 = int(math.Ceil((b.X+b.W)/g.Tile)) - 1
	y1 = int(math.Ceil((b.Y+b.H)/g.Tile)) - 1
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 >= g.Cols {
		x1 = g.Cols - 1
	}
	if y1 >= g.Rows {
		y1 = g.Rows - 1
	}
	return
}

// Center returns the center point of a box
func (b Box) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Distance returns euclidean distance between two points
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}
