package worldgen

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/runrudyrun/megastructure-rpg/internal/tilemap"
)

// candidate is one proposed room placement. Candidates are sampled
// serially from the generator's random source so that a fixed seed
// yields identical sectors regardless of validation scheduling.
type candidate struct {
	roomType string
	x, y     int
	w, h     int
}

// placeRooms runs bounded rejection sampling: candidates are sampled
// in batches, validated concurrently against the current grid, and
// committed one at a time so each commit is visible to every later
// overlap check. Stops at the random room-count target or when the
// attempt budget runs out.
func (g *Generator) placeRooms(m *tilemap.Map, weights map[string]float64, cfg SectorConfig) []*tilemap.Room {
	minRooms, maxRooms := cfg.MinRooms, cfg.MaxRooms
	if minRooms <= 0 {
		minRooms = defaultMinRooms
	}
	if maxRooms < minRooms {
		maxRooms = max(minRooms, defaultMaxRooms)
	}
	target := minRooms + g.rng.Intn(maxRooms-minRooms+1)

	typeNames := sortedWeightKeys(weights)
	var rooms []*tilemap.Room

	attempts := placementAttempts
	for attempts > 0 && len(rooms) < target {
		batch := min(placementBatch, attempts)
		attempts -= batch

		candidates := make([]candidate, 0, batch)
		for i := 0; i < batch; i++ {
			if c, ok := g.sampleCandidate(m, typeNames, weights); ok {
				candidates = append(candidates, c)
			}
		}

		// Workers only read the grid; results come back by index and
		// the coordinator alone mutates the map.
		verdicts := make([]bool, len(candidates))
		var wg sync.WaitGroup
		for i, c := range candidates {
			wg.Add(1)
			go func(i int, c candidate) {
				defer wg.Done()
				verdicts[i] = canPlace(m, c)
			}(i, c)
		}
		wg.Wait()

		for i, c := range candidates {
			if len(rooms) >= target {
				break
			}
			// Re-validate serially: an earlier commit in this batch may
			// have claimed overlapping tiles.
			if !verdicts[i] || !canPlace(m, c) {
				continue
			}
			if room := m.AddRoom(c.roomType, c.x, c.y, c.w, c.h); room != nil {
				rooms = append(rooms, room)
				g.log.Debugf("placed %s room %d at (%d,%d) size %dx%d",
					c.roomType, room.ID, c.x, c.y, c.w, c.h)
			}
		}
	}

	g.log.Debugf("placed %d of %d target rooms after %d attempts",
		len(rooms), target, placementAttempts-attempts)
	return rooms
}

// sampleCandidate draws a room type, size, and position from the
// random source. ok is false when the sampled type cannot fit the map.
func (g *Generator) sampleCandidate(m *tilemap.Map, typeNames []string, weights map[string]float64) (candidate, bool) {
	roomType := weightedPick(g.rng, typeNames, weights)
	rule, ok := g.rules.RoomTypes[roomType]
	if !ok {
		return candidate{}, false
	}

	// Clamp bounds so the room plus its wall ring fits the map.
	minW := min(rule.MinSize[0], m.Width-2*edgePadding)
	minH := min(rule.MinSize[1], m.Height-2*edgePadding)
	maxW := min(rule.MaxSize[0], m.Width-2*edgePadding)
	maxH := min(rule.MaxSize[1], m.Height-2*edgePadding)
	if minW < 1 || minH < 1 {
		return candidate{}, false
	}

	w := minW + g.rng.Intn(maxW-minW+1)
	h := minH + g.rng.Intn(maxH-minH+1)

	xSpan := m.Width - w - 2*edgePadding
	ySpan := m.Height - h - 2*edgePadding
	if xSpan < 0 || ySpan < 0 {
		return candidate{}, false
	}
	x := edgePadding + g.rng.Intn(xSpan+1)
	y := edgePadding + g.rng.Intn(ySpan+1)

	return candidate{roomType: roomType, x: x, y: y, w: w, h: h}, true
}

// canPlace reports whether the candidate's rectangle plus a 1-tile
// padding border covers only empty in-bounds tiles. Existing rooms
// occupy their padded rectangles with floor and wall, so a clean scan
// guarantees padded rectangles do not intersect.
func canPlace(m *tilemap.Map, c candidate) bool {
	for y := c.y - 1; y <= c.y+c.h; y++ {
		for x := c.x - 1; x <= c.x+c.w; x++ {
			tile, ok := m.TileAt(x, y)
			if !ok || tile != tilemap.TileEmpty {
				return false
			}
		}
	}
	return true
}

// sortedWeightKeys returns the room type names in stable order so that
// weighted picks are deterministic under a fixed seed.
func sortedWeightKeys(weights map[string]float64) []string {
	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// weightedPick samples one name proportionally to its weight.
func weightedPick(rng *rand.Rand, names []string, weights map[string]float64) string {
	total := 0.0
	for _, name := range names {
		total += weights[name]
	}
	if total <= 0 {
		return names[rng.Intn(len(names))]
	}
	r := rng.Float64() * total
	for _, name := range names {
		r -= weights[name]
		if r < 0 {
			return name
		}
	}
	return names[len(names)-1]
}
