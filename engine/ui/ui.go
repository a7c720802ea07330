package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/1siamBot/tankarena/engine/arena"
	"github.com/1siamBot/tankarena/engine/core"
	"github.com/1siamBot/tankarena/engine/render"
	"github.com/1siamBot/tankarena/engine/wave"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const lineHeight = 16

// Default HUD geometry in screen pixels
const (
	TopBarHeight = 30
	SidebarWidth = 240
)

var (
	textColor  = color.RGBA{230, 230, 230, 255}
	dimColor   = color.RGBA{150, 150, 160, 255}
	alertColor = color.RGBA{255, 90, 70, 255}
	okColor    = color.RGBA{120, 230, 120, 255}
)

// HUD is the heads-up display around the field
type HUD struct {
	ScreenW, ScreenH int
	SidebarWidth     int
	TopBarHeight     int
}

func NewHUD(fieldW, fieldH int) *HUD {
	h := &HUD{
		SidebarWidth: SidebarWidth,
		TopBarHeight: TopBarHeight,
	}
	h.ScreenW = fieldW + h.SidebarWidth
	h.ScreenH = fieldH + h.TopBarHeight
	return h
}

// Draw renders the entire HUD
func (h *HUD) Draw(screen *ebiten.Image, sm arena.Summary, snap arena.Snapshot) {
	h.drawTopBar(screen, sm)
	h.drawSidebar(screen, sm, snap)
	h.drawBanner(screen, sm)
}

func drawText(dst *ebiten.Image, s string, x, y int, clr color.Color) {
	text.Draw(dst, s, basicfont.Face7x13, x, y, clr)
}

func (h *HUD) drawTopBar(screen *ebiten.Image, sm arena.Summary) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), float32(h.TopBarHeight), color.RGBA{0, 0, 0, 200}, false)
	info := fmt.Sprintf("LEVEL %d   SCORE %d   HIGH %d   LIVES %d   ENEMIES %d",
		sm.Level, sm.Score, sm.HighScore, sm.Lives, sm.EnemiesRemaining)
	drawText(screen, info, 10, 20, textColor)
}

func (h *HUD) drawSidebar(screen *ebiten.Image, sm arena.Summary, snap arena.Snapshot) {
	sx := h.ScreenW - h.SidebarWidth
	vector.DrawFilledRect(screen, float32(sx), float32(h.TopBarHeight), float32(h.SidebarWidth), float32(h.ScreenH-h.TopBarHeight), color.RGBA{20, 20, 40, 230}, false)

	x := sx + 10
	y := h.TopBarHeight + 20
	drawText(screen, "=== GOAL ===", x, y, dimColor)
	y += lineHeight
	for _, line := range wrap(sm.Goal, (h.SidebarWidth-20)/7) {
		drawText(screen, line, x, y, textColor)
		y += lineHeight
	}

	y += lineHeight / 2
	drawText(screen, "=== BUFF ===", x, y, dimColor)
	y += lineHeight
	drawText(screen, BuffLine(snap.Buff), x, y, textColor)
	y += lineHeight * 3 / 2

	drawText(screen, "=== TERRAIN ===", x, y, dimColor)
	y += lineHeight
	for _, e := range sm.Legend {
		vector.DrawFilledRect(screen, float32(x), float32(y-10), 12, 12, render.TerrainColors[e.Terrain], false)
		drawText(screen, e.Name, x+18, y, textColor)
		y += lineHeight
		for _, line := range wrap(e.Note, (h.SidebarWidth-30)/7) {
			drawText(screen, line, x+18, y, dimColor)
			y += lineHeight
		}
	}

	y += lineHeight / 2
	drawText(screen, "=== KEYS ===", x, y, dimColor)
	y += lineHeight
	for _, k := range []string{"Arrows/WASD  move", "Space        fire", "R            restart"} {
		drawText(screen, k, x, y, textColor)
		y += lineHeight
	}
}

// drawBanner overlays the field for the terminal states
func (h *HUD) drawBanner(screen *ebiten.Image, sm arena.Summary) {
	var title, hint string
	var clr color.Color
	switch sm.State {
	case wave.StateLevelComplete:
		title, hint, clr = fmt.Sprintf("LEVEL %d CLEAR", sm.Level), "press fire for the next level", okColor
	case wave.StateGameOver:
		title, hint, clr = "GAME OVER", "press R to restart", alertColor
	default:
		return
	}

	fw := h.ScreenW - h.SidebarWidth
	cy := h.TopBarHeight + (h.ScreenH-h.TopBarHeight)/2
	vector.DrawFilledRect(screen, 0, float32(cy-30), float32(fw), 60, color.RGBA{0, 0, 0, 200}, false)
	drawText(screen, title, (fw-len(title)*7)/2, cy-6, clr)
	drawText(screen, hint, (fw-len(hint)*7)/2, cy+14, textColor)
}

// BuffLine describes the active buff in one line
func BuffLine(b *arena.BuffView) string {
	if b == nil {
		return "none"
	}
	switch {
	case b.Type == core.PowerShield:
		return fmt.Sprintf("%s %d hits %.1fs", b.Type, b.Charges, b.Remaining.Seconds())
	case b.Unbounded:
		return b.Type.String()
	}
	return fmt.Sprintf("%s %.1fs", b.Type, b.Remaining.Seconds())
}

// wrap breaks s into lines of at most width characters
func wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
