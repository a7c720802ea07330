package render

import "github.com/1siamBot/tankarena/engine/maplib"

// Camera maps field pixels onto the screen. The field is always fully
// visible; Zoom scales it and the offset leaves room for the HUD.
type Camera struct {
	Grid    maplib.Grid
	Zoom    float64 // 1.0 = one field pixel per screen pixel
	OffsetX float64 // screen position of the field's top-left corner
	OffsetY float64
}

// NewCamera creates a camera for g placed below a top bar of the given height
func NewCamera(g maplib.Grid, zoom float64, topBar int) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{
		Grid:    g,
		Zoom:    zoom,
		OffsetY: float64(topBar),
	}
}

// WorldToScreen converts a field pixel position to screen coordinates
func (c *Camera) WorldToScreen(x, y float64) (float32, float32) {
	return float32(x*c.Zoom + c.OffsetX), float32(y*c.Zoom + c.OffsetY)
}

// Scale converts a field length to screen pixels
func (c *Camera) Scale(v float64) float32 {
	return float32(v * c.Zoom)
}

// TileSize returns one tile's edge in whole screen pixels
func (c *Camera) TileSize() int {
	return int(c.Grid.Tile*c.Zoom + 0.5)
}

// FieldSize returns the on-screen field dimensions
func (c *Camera) FieldSize() (int, int) {
	return int(c.Grid.PixelWidth()*c.Zoom + 0.5), int(c.Grid.PixelHeight()*c.Zoom + 0.5)
}
