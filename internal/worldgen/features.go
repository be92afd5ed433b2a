package worldgen

import (
	"sort"

	"github.com/runrudyrun/megastructure-rpg/internal/tilemap"
)

// placeFeatures sprinkles room-type features (terminals, containers,
// machines, pillars, lights) over interior floor cells. Cells touching
// the room boundary are skipped so furniture never blocks a doorway.
// Feature names and cells are visited in stable order to preserve
// determinism under a fixed seed.
func (g *Generator) placeFeatures(m *tilemap.Map, rooms []*tilemap.Room) {
	for _, room := range rooms {
		rule, ok := g.rules.RoomTypes[room.Type]
		if !ok || len(rule.Features) == 0 {
			continue
		}

		names := make([]string, 0, len(rule.Features))
		for name := range rule.Features {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			density := rule.Features[name]
			if density <= 0 {
				continue
			}
			tile, known := tilemap.TileByName(name)
			if !known {
				// Validate() rejects unknown names; guard anyway for
				// rule sets built programmatically.
				g.log.Warnf("room type %q: skipping unknown feature %q", room.Type, name)
				continue
			}

			for y := room.Y + 1; y < room.Y+room.Height-1; y++ {
				for x := room.X + 1; x < room.X+room.Width-1; x++ {
					if g.rng.Float64() < density {
						m.AddFeature(room, tile, x, y)
					}
				}
			}
		}
	}
}
