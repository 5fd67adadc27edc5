package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/obsidianarcane/internal/entity"
	"github.com/samdwyer/obsidianarcane/internal/world"
)

// hudLines is the number of rows reserved below the map.
const hudLines = 2

// Overlay is implemented by maps that draw something other than plain
// tiles at some positions, such as buildings in the village.
type Overlay interface {
	OverlayAt(tileX, tileY int) (r rune, color tcell.Color, ok bool)
}

// HUD is the text shown under the map.
type HUD struct {
	Status  string
	Message string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the visible part of m around the player, then the HUD.
// Tile y grows upward, so the highest visible row is drawn first.
func (r *Renderer) Render(m world.Map, player *entity.Player, hud HUD) {
	r.screen.Clear()

	screenW, screenH := r.screen.Size()
	viewH := max(screenH-hudLines, 1)
	mapW, mapH := m.Bounds()
	px, py := player.Tile()
	left, top := Viewport(mapW, mapH, screenW, viewH, px, py)

	overlay, hasOverlay := m.(Overlay)
	for row := 0; row < viewH; row++ {
		ty := top - row
		if ty < 0 {
			break
		}
		for col := 0; col < screenW; col++ {
			tx := left + col
			if tx >= mapW {
				break
			}
			if hasOverlay {
				if ch, color, ok := overlay.OverlayAt(tx, ty); ok {
					r.screen.SetContent(col, row, ch, tcell.StyleDefault.Foreground(color))
					continue
				}
			}
			tile := m.TileAt(tx, ty)
			r.screen.SetContent(col, row, tile.Rune(), r.getTileStyle(tile))
		}
	}

	// Draw player on top
	playerStyle := tcell.StyleDefault.
		Foreground(tcell.ColorYellow).
		Bold(true)
	r.screen.SetContent(px-left, top-py, player.Symbol, playerStyle)

	r.RenderMessage(hud.Status, viewH)
	r.RenderMessage(hud.Message, viewH+1)

	r.screen.Show()
}

// Viewport returns the leftmost tile column and the topmost tile row to
// draw so the focus tile stays centred without scrolling past the map edge.
func Viewport(mapW, mapH, viewW, viewH, focusX, focusY int) (left, top int) {
	left = clamp(focusX-viewW/2, 0, max(0, mapW-viewW))
	bottom := clamp(focusY-viewH/2, 0, max(0, mapH-viewH))
	top = min(bottom+viewH, mapH) - 1
	return left, top
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// getTileStyle returns the appropriate style for a tile type.
func (r *Renderer) getTileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.TileTunnelEntrance:
		return tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	case world.TileTunnelFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorTan)
	case world.TileTunnelWall:
		return tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	case world.TileParkourPlatform:
		return tcell.StyleDefault.Foreground(tcell.ColorTeal)
	default:
		return tcell.StyleDefault
	}
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	r.screen.SetString(0, y, msg, style)
}
