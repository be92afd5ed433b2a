package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/runrudyrun/megastructure-rpg/internal/tilemap"
)

// Renderer draws a sector tile map onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// NewRenderer creates a Renderer for the given screen. The bottom rows
// are reserved for the status panel.
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	viewH := h - statusRows
	if viewH < 1 {
		viewH = 1
	}
	return &Renderer{
		screen: screen,
		camera: NewCamera(0, 0, w, viewH),
	}
}

// CenterOn recenters the camera on world position (x, y).
func (r *Renderer) CenterOn(x, y int) { r.camera.Center(x, y) }

// Pan shifts the camera by (dx, dy) world tiles.
func (r *Renderer) Pan(dx, dy int) { r.camera.Pan(dx, dy) }

// Resize adjusts the viewport after a terminal resize event.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth = w
	r.camera.ViewHeight = h - statusRows
	if r.camera.ViewHeight < 1 {
		r.camera.ViewHeight = 1
	}
}

// DrawMap renders the sector tiles. When highlight is non-nil that
// room's interior is drawn on a tinted background.
func (r *Renderer) DrawMap(m *tilemap.Map, highlight *tilemap.Room) {
	r.screen.Clear()
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			sx, sy, onScreen := r.camera.WorldToScreen(x, y)
			if !onScreen {
				continue
			}
			tile, _ := m.TileAt(x, y)
			g := glyphFor(tile)
			style := g.style
			if highlight != nil && highlight.Contains(x, y) {
				style = style.Background(tcell.ColorDarkSlateGray)
			}
			r.screen.SetContent(sx, sy, g.ch, nil, style)
		}
	}
}

// Show flushes the drawn frame to the terminal.
func (r *Renderer) Show() { r.screen.Show() }

// drawText writes a line of text, advancing by rune display width so
// wide runes do not smear neighboring cells.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}
