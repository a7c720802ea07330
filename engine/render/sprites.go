package render

import (
	"image/color"

	"github.com/1siamBot/tankarena/engine/core"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Tank body colors
var (
	PlayerColor     = color.RGBA{230, 190, 40, 255}
	ArchetypeColors = map[string]color.RGBA{
		"basic": {170, 170, 170, 255},
		"fast":  {110, 170, 230, 255},
		"power": {220, 80, 70, 255},
		"armor": {70, 150, 80, 255},
	}
	PowerUpColors = map[core.PowerUpType]color.RGBA{
		core.PowerSpeed:     {80, 200, 255, 255},
		core.PowerRapidFire: {255, 140, 0, 255},
		core.PowerShield:    {120, 120, 255, 255},
		core.PowerExtraLife: {255, 80, 160, 255},
	}
	trackColor  = color.RGBA{40, 40, 40, 255}
	barrelColor = color.RGBA{30, 30, 30, 255}
)

type tankKey struct {
	body   color.RGBA
	facing core.Direction
	size   int
}

type pickupKey struct {
	kind core.PowerUpType
	size int
}

// SpriteManager draws tank and pickup images once and caches them
type SpriteManager struct {
	tanks   map[tankKey]*ebiten.Image
	pickups map[pickupKey]*ebiten.Image
}

func NewSpriteManager() *SpriteManager {
	return &SpriteManager{
		tanks:   make(map[tankKey]*ebiten.Image),
		pickups: make(map[pickupKey]*ebiten.Image),
	}
}

// BodyColor returns the color for a tank
func BodyColor(player bool, archetype string) color.RGBA {
	if player {
		return PlayerColor
	}
	if c, ok := ArchetypeColors[archetype]; ok {
		return c
	}
	return ArchetypeColors["basic"]
}

// Tank returns a size×size tank image facing the given direction
func (sm *SpriteManager) Tank(body color.RGBA, facing core.Direction, size int) *ebiten.Image {
	key := tankKey{body, facing, size}
	if img, ok := sm.tanks[key]; ok {
		return img
	}

	img := ebiten.NewImage(size, size)
	s := float32(size)
	track := s * 0.2

	// tracks run along the facing axis
	if facing == core.DirLeft || facing == core.DirRight {
		vector.DrawFilledRect(img, 0, 0, s, track, trackColor, false)
		vector.DrawFilledRect(img, 0, s-track, s, track, trackColor, false)
		vector.DrawFilledRect(img, s*0.1, track, s*0.8, s-2*track, body, false)
	} else {
		vector.DrawFilledRect(img, 0, 0, track, s, trackColor, false)
		vector.DrawFilledRect(img, s-track, 0, track, s, trackColor, false)
		vector.DrawFilledRect(img, track, s*0.1, s-2*track, s*0.8, body, false)
	}

	c := s / 2
	vector.DrawFilledCircle(img, c, c, s*0.2, darker(body), true)
	dx, dy := facing.Delta()
	vector.StrokeLine(img, c, c, c+float32(dx)*c, c+float32(dy)*c, s*0.12, barrelColor, false)

	sm.tanks[key] = img
	return img
}

// PowerUp returns the pickup icon for t
func (sm *SpriteManager) PowerUp(t core.PowerUpType, size int) *ebiten.Image {
	key := pickupKey{t, size}
	if img, ok := sm.pickups[key]; ok {
		return img
	}

	img := ebiten.NewImage(size, size)
	s := float32(size)
	clr := PowerUpColors[t]
	vector.DrawFilledRect(img, 0, 0, s, s, color.RGBA{20, 20, 20, 220}, false)
	vector.StrokeRect(img, 1, 1, s-2, s-2, 2, clr, false)

	m := s / 2
	switch t {
	case core.PowerSpeed:
		for _, off := range []float32{-s * 0.15, s * 0.1} {
			vector.StrokeLine(img, m+off, s*0.25, m+off+s*0.2, m, 3, clr, true)
			vector.StrokeLine(img, m+off+s*0.2, m, m+off, s*0.75, 3, clr, true)
		}
	case core.PowerRapidFire:
		for _, x := range []float32{s * 0.35, s * 0.65} {
			vector.StrokeLine(img, x, s*0.2, x, s*0.8, 3, clr, false)
		}
	case core.PowerShield:
		vector.StrokeCircle(img, m, m, s*0.28, 3, clr, true)
	case core.PowerExtraLife:
		vector.StrokeLine(img, m, s*0.2, m, s*0.8, 4, clr, false)
		vector.StrokeLine(img, s*0.2, m, s*0.8, m, 4, clr, false)
	}

	sm.pickups[key] = img
	return img
}

func darker(c color.RGBA) color.RGBA {
	return color.RGBA{c.R / 2, c.G / 2, c.B / 2, c.A}
}
