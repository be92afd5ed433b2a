package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/runrudyrun/megastructure-rpg/internal/tilemap"
)

type glyph struct {
	ch    rune
	style tcell.Style
}

var tileGlyphs = map[tilemap.Tile]glyph{
	tilemap.TileEmpty:     {' ', tcell.StyleDefault},
	tilemap.TileFloor:     {'·', tcell.StyleDefault.Foreground(tcell.ColorDarkGray)},
	tilemap.TileWall:      {'█', tcell.StyleDefault.Foreground(tcell.ColorGray)},
	tilemap.TileDoor:      {'+', tcell.StyleDefault.Foreground(tcell.ColorYellow)},
	tilemap.TileWindow:    {'~', tcell.StyleDefault.Foreground(tcell.ColorLightBlue)},
	tilemap.TileTerminal:  {'◘', tcell.StyleDefault.Foreground(tcell.ColorGreen)},
	tilemap.TileContainer: {'□', tcell.StyleDefault.Foreground(tcell.ColorSandyBrown)},
	tilemap.TileMachine:   {'Ω', tcell.StyleDefault.Foreground(tcell.ColorOrange)},
	tilemap.TilePillar:    {'○', tcell.StyleDefault.Foreground(tcell.ColorSilver)},
	tilemap.TileLight:     {'*', tcell.StyleDefault.Foreground(tcell.ColorLightYellow)},
}

func glyphFor(t tilemap.Tile) glyph {
	if g, ok := tileGlyphs[t.Canonical()]; ok {
		return g
	}
	return glyph{'?', tcell.StyleDefault.Foreground(tcell.ColorRed)}
}
