package render

import (
	"image/color"

	"github.com/1siamBot/tankarena/engine/arena"
	"github.com/1siamBot/tankarena/engine/core"
	"github.com/1siamBot/tankarena/engine/maplib"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TerrainColors maps terrain types to their fill colors
var TerrainColors = map[maplib.TerrainType]color.RGBA{
	maplib.TerrainSteel:    {150, 160, 170, 255},
	maplib.TerrainBrick:    {170, 80, 40, 255},
	maplib.TerrainConcrete: {110, 110, 110, 255},
	maplib.TerrainWater:    {30, 100, 220, 255},
	maplib.TerrainForest:   {20, 110, 30, 255},
}

var (
	fieldColor = color.RGBA{15, 15, 15, 255}
	gridColor  = color.RGBA{255, 255, 255, 12}
	mortar     = color.RGBA{90, 40, 20, 255}
	shellColor = color.RGBA{255, 240, 200, 255}
	baseColor  = color.RGBA{240, 220, 120, 255}
	rubble     = color.RGBA{90, 70, 60, 255}
	shieldRing = color.RGBA{140, 140, 255, 200}
	hpBack     = color.RGBA{60, 0, 0, 255}
	hpFront    = color.RGBA{0, 200, 0, 255}
)

// FieldRenderer draws a snapshot of the arena
type FieldRenderer struct {
	Camera    *Camera
	TileCache map[maplib.TerrainType]*ebiten.Image
	Sprites   *SpriteManager
	ShowGrid  bool
}

func NewFieldRenderer(cam *Camera) *FieldRenderer {
	return &FieldRenderer{
		Camera:    cam,
		TileCache: make(map[maplib.TerrainType]*ebiten.Image),
		Sprites:   NewSpriteManager(),
	}
}

// GetTileImage returns (or creates) the cached image for a terrain type
func (r *FieldRenderer) GetTileImage(terrain maplib.TerrainType) *ebiten.Image {
	if img, ok := r.TileCache[terrain]; ok {
		return img
	}

	size := r.Camera.TileSize()
	s := float32(size)
	img := ebiten.NewImage(size, size)
	clr, ok := TerrainColors[terrain]
	if !ok {
		clr = color.RGBA{255, 0, 255, 255}
	}
	img.Fill(clr)

	switch terrain {
	case maplib.TerrainBrick:
		for i := float32(1); i < 4; i++ {
			vector.StrokeLine(img, 0, s*i/4, s, s*i/4, 1, mortar, false)
		}
		for row := 0; row < 4; row++ {
			x := s / 2
			if row%2 == 1 {
				x = s / 4
			}
			y0 := s * float32(row) / 4
			vector.StrokeLine(img, x, y0, x, y0+s/4, 1, mortar, false)
		}
	case maplib.TerrainSteel:
		vector.StrokeRect(img, 2, 2, s-4, s-4, 2, color.RGBA{220, 225, 230, 255}, false)
		vector.DrawFilledRect(img, s*0.3, s*0.3, s*0.4, s*0.4, color.RGBA{200, 205, 210, 255}, false)
	case maplib.TerrainWater:
		for i := float32(1); i < 4; i++ {
			vector.StrokeLine(img, s*0.15, s*i/4, s*0.85, s*i/4, 1, color.RGBA{120, 170, 255, 255}, false)
		}
	case maplib.TerrainForest:
		for _, p := range [][2]float32{{0.3, 0.3}, {0.7, 0.35}, {0.45, 0.7}} {
			vector.DrawFilledCircle(img, s*p[0], s*p[1], s*0.18, color.RGBA{40, 160, 50, 255}, true)
		}
	}

	vector.StrokeRect(img, 0, 0, s, s, 1, color.RGBA{0, 0, 0, 80}, false)
	r.TileCache[terrain] = img
	return img
}

// Draw renders the whole field. Forest is drawn last so tanks under it are hidden.
func (r *FieldRenderer) Draw(screen *ebiten.Image, snap arena.Snapshot) {
	fw, fh := r.Camera.FieldSize()
	x0, y0 := r.Camera.WorldToScreen(0, 0)
	vector.DrawFilledRect(screen, x0, y0, float32(fw), float32(fh), fieldColor, false)
	if r.ShowGrid {
		r.DrawGrid(screen)
	}

	r.drawTerrain(screen, snap, false)
	r.drawBase(screen, snap)
	r.drawPowerUps(screen, snap)
	for _, e := range snap.Enemies {
		r.drawTank(screen, e)
	}
	if p := snap.Player; p != nil && p.Alive {
		r.drawTank(screen, *p)
		if snap.Buff != nil && snap.Buff.Type == core.PowerShield {
			cx, cy := r.Camera.WorldToScreen(p.X+snap.Grid.Tile/2, p.Y+snap.Grid.Tile/2)
			vector.StrokeCircle(screen, cx, cy, r.Camera.Scale(snap.Grid.Tile*0.7), 2, shieldRing, true)
		}
	}
	r.drawShells(screen, snap)
	r.drawTerrain(screen, snap, true)
	r.drawEffects(screen, snap)
}

var effectColors = map[core.EffectKind]color.RGBA{
	core.EffectSpark:     {255, 255, 180, 255},
	core.EffectExplosion: {255, 150, 40, 255},
	core.EffectBlast:     {255, 80, 30, 255},
}

// drawEffects grows a fading ring per animation frame
func (r *FieldRenderer) drawEffects(screen *ebiten.Image, snap arena.Snapshot) {
	for _, e := range snap.Effects {
		t := float32(e.Frame+1) / float32(e.Frames)
		radius := snap.Grid.Tile * 0.5
		switch e.Kind {
		case core.EffectSpark:
			radius = snap.Grid.Tile * 0.2
		case core.EffectBlast:
			radius = snap.Grid.Tile
		}
		clr := effectColors[e.Kind]
		clr.A = uint8(255 * (1 - t*0.7))
		cx, cy := r.Camera.WorldToScreen(e.X, e.Y)
		rad := r.Camera.Scale(radius) * t
		vector.DrawFilledCircle(screen, cx, cy, rad*0.6, clr, true)
		vector.StrokeCircle(screen, cx, cy, rad, 2, clr, true)
	}
}

func (r *FieldRenderer) drawTerrain(screen *ebiten.Image, snap arena.Snapshot, forest bool) {
	for _, c := range snap.Terrain {
		if (c.Terrain == maplib.TerrainForest) != forest {
			continue
		}
		ox, oy := snap.Grid.CellOrigin(c.X, c.Y)
		sx, sy := r.Camera.WorldToScreen(ox, oy)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(sx), float64(sy))
		if forest {
			op.ColorScale.ScaleAlpha(0.85)
		}
		screen.DrawImage(r.GetTileImage(c.Terrain), op)
	}
}

func (r *FieldRenderer) drawBase(screen *ebiten.Image, snap arena.Snapshot) {
	sx, sy := r.Camera.WorldToScreen(snap.BaseX, snap.BaseY)
	s := r.Camera.Scale(snap.Grid.Tile)
	if !snap.BaseAlive {
		vector.DrawFilledRect(screen, sx, sy+s/2, s, s/2, rubble, false)
		vector.StrokeLine(screen, sx, sy+s/2, sx+s, sy+s, 2, fieldColor, false)
		return
	}
	vector.DrawFilledRect(screen, sx+s*0.1, sy+s*0.1, s*0.8, s*0.8, darker(baseColor), false)
	vector.DrawFilledCircle(screen, sx+s/2, sy+s*0.4, s*0.2, baseColor, true)
	vector.StrokeLine(screen, sx+s*0.2, sy+s*0.35, sx+s*0.8, sy+s*0.35, 3, baseColor, false)
	vector.DrawFilledRect(screen, sx+s*0.4, sy+s*0.55, s*0.2, s*0.3, baseColor, false)
}

func (r *FieldRenderer) drawPowerUps(screen *ebiten.Image, snap arena.Snapshot) {
	size := int(r.Camera.Scale(snap.Grid.Tile * core.PowerUpScale))
	inset := (snap.Grid.Tile - snap.Grid.Tile*core.PowerUpScale) / 2
	for _, pu := range snap.PowerUps {
		sx, sy := r.Camera.WorldToScreen(pu.X+inset, pu.Y+inset)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(sx), float64(sy)+pu.Bob*3*r.Camera.Zoom)
		screen.DrawImage(r.Sprites.PowerUp(pu.Type, size), op)
	}
}

func (r *FieldRenderer) drawTank(screen *ebiten.Image, a arena.ActorView) {
	size := r.Camera.TileSize()
	sx, sy := r.Camera.WorldToScreen(a.X, a.Y)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(sx), float64(sy))
	screen.DrawImage(r.Sprites.Tank(BodyColor(a.Player, a.Archetype), a.Facing, size), op)

	if a.MaxHealth > 1 {
		w := float32(size)
		ratio := float32(a.Health) / float32(a.MaxHealth)
		vector.DrawFilledRect(screen, sx, sy-4, w, 3, hpBack, false)
		vector.DrawFilledRect(screen, sx, sy-4, w*ratio, 3, hpFront, false)
	}
}

func (r *FieldRenderer) drawShells(screen *ebiten.Image, snap arena.Snapshot) {
	for _, p := range snap.Shells {
		sx, sy := r.Camera.WorldToScreen(p.X, p.Y)
		w, h := r.Camera.Scale(p.W), r.Camera.Scale(p.H)
		vector.DrawFilledCircle(screen, sx+w/2, sy+h/2, w/2, shellColor, true)
	}
}

// DrawGrid draws the cell grid overlay
func (r *FieldRenderer) DrawGrid(screen *ebiten.Image) {
	g := r.Camera.Grid
	for x := 0; x <= g.Cols; x++ {
		x0, y0 := r.Camera.WorldToScreen(float64(x)*g.Tile, 0)
		_, y1 := r.Camera.WorldToScreen(float64(x)*g.Tile, g.PixelHeight())
		vector.StrokeLine(screen, x0, y0, x0, y1, 1, gridColor, false)
	}
	for y := 0; y <= g.Rows; y++ {
		x0, y0 := r.Camera.WorldToScreen(0, float64(y)*g.Tile)
		x1, _ := r.Camera.WorldToScreen(g.PixelWidth(), float64(y)*g.Tile)
		vector.StrokeLine(screen, x0, y0, x1, y0, 1, gridColor, false)
	}
}
