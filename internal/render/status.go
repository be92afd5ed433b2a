package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/runrudyrun/megastructure-rpg/internal/tilemap"
)

// statusRows is the height of the bottom panel, separator included.
const statusRows = 4

// DrawStatus renders the status panel: sector summary, an optional
// inspected room line, and the key help line.
func (r *Renderer) DrawStatus(m *tilemap.Map, sectorX, sectorY int, theme string, seed int64, inspected *tilemap.Room) {
	_, screenH := r.screen.Size()
	panelY := screenH - statusRows

	r.drawHLine(panelY, tcell.ColorGray)

	summary := fmt.Sprintf("sector (%d,%d)  theme: %s  seed: %d  rooms: %d  %dx%d",
		sectorX, sectorY, theme, seed, len(m.Rooms), m.Width, m.Height)
	r.drawText(0, panelY+1, summary, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	roomLine := "room: none selected (Tab to inspect)"
	if inspected != nil {
		roomLine = fmt.Sprintf("room %d: %s at (%d,%d) %dx%d, %d connections, %d features",
			inspected.ID, inspected.Type, inspected.X, inspected.Y,
			inspected.Width, inspected.Height,
			inspected.Connections.Size(), len(inspected.Features))
	}
	r.drawText(0, panelY+2, roomLine, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))

	help := "SPACE regenerate  1-3 theme  arrows pan  Tab inspect  q quit"
	r.drawText(0, panelY+3, help, tcell.StyleDefault.Foreground(tcell.ColorDarkGray))
}
