package worldgen

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/runrudyrun/megastructure-rpg/internal/tilemap"
)

// edge is a candidate corridor between two rooms, weighted by the
// Manhattan distance between their centers.
type edge struct {
	dist int
	a, b *tilemap.Room
}

// connectRooms links the placed rooms along a minimum spanning tree,
// then carves a configured fraction of the leftover edges as redundant
// corridors. Rooms that no edge could bridge keep a fallback perimeter
// door; that gap is surfaced as a warning, not silently repaired.
func (g *Generator) connectRooms(m *tilemap.Map, rooms []*tilemap.Room, corridorRatio float64, log *logrus.Entry) {
	if len(rooms) < 2 {
		return
	}

	// Failed carves skip the per-carve invalidation; drop the map's
	// abstraction entry unconditionally so the generator never retains
	// a sector it has handed back.
	defer g.pf.Invalidate(m)

	edges := buildEdges(rooms)

	// Prim-style frontier expansion: repeatedly carve the cheapest edge
	// bridging the connected set and the rest. Edges whose corridor
	// cannot be carved are discarded; when a full pass makes no
	// progress the remaining rooms stay unbridged.
	connected := map[int]bool{rooms[0].ID: true}
	used := make(map[int]bool, len(edges))
	dead := make(map[int]bool, len(edges))
	for len(connected) < len(rooms) {
		progress := false
		for i, e := range edges {
			if used[i] || dead[i] || connected[e.a.ID] == connected[e.b.ID] {
				continue
			}
			if g.carveCorridor(m, e.a, e.b) {
				connected[e.a.ID] = true
				connected[e.b.ID] = true
				used[i] = true
				progress = true
				break
			}
			dead[i] = true
		}
		if !progress {
			break
		}
	}

	// Redundant corridors reduce dead-end backtracking.
	if corridorRatio > 0 {
		var leftover []int
		for i, e := range edges {
			if !used[i] && !dead[i] && connected[e.a.ID] && connected[e.b.ID] {
				leftover = append(leftover, i)
			}
		}
		extra := int(corridorRatio * float64(len(leftover)))
		for _, i := range leftover[:min(extra, len(leftover))] {
			e := edges[i]
			if g.carveCorridor(m, e.a, e.b) {
				log.Debugf("carved redundant corridor between rooms %d and %d", e.a.ID, e.b.ID)
			}
		}
	}

	// Best-effort fallback: stamp a door on rooms left without any
	// connection so they at least open onto the sector.
	for _, room := range rooms {
		if room.Connections.Size() > 0 {
			continue
		}
		if door, ok := g.fallbackDoor(m, room); ok {
			m.AddDoor(door.X, door.Y)
			room.AddFeature("door", door)
			log.Warnf("room %d has a door but no guaranteed corridor", room.ID)
		} else {
			log.Warnf("room %d could not be connected at all", room.ID)
		}
	}
}

// buildEdges lists every room pair ordered by ascending center
// distance, with ids breaking ties for deterministic iteration.
func buildEdges(rooms []*tilemap.Room) []edge {
	var edges []edge
	for i, a := range rooms {
		for _, b := range rooms[i+1:] {
			ax, ay := a.Center()
			bx, by := b.Center()
			edges = append(edges, edge{dist: abs(ax-bx) + abs(ay-by), a: a, b: b})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].dist != edges[j].dist {
			return edges[i].dist < edges[j].dist
		}
		if edges[i].a.ID != edges[j].a.ID {
			return edges[i].a.ID < edges[j].a.ID
		}
		return edges[i].b.ID < edges[j].b.ID
	})
	return edges
}

// carveCorridor opens a door on each room facing the other, routes the
// corridor with the hierarchical pathfinder, and stamps floor walled
// off from the surrounding void. Both doors revert to wall when no
// route exists.
func (g *Generator) carveCorridor(m *tilemap.Map, a, b *tilemap.Room) bool {
	bx, by := b.Center()
	ax, ay := a.Center()
	doorA, okA := doorPosition(m, a, tilemap.Point{X: bx, Y: by})
	doorB, okB := doorPosition(m, b, tilemap.Point{X: ax, Y: ay})
	if !okA || !okB {
		return false
	}

	// Doors become passable before routing so the path can leave and
	// enter through them.
	m.Set(doorA.X, doorA.Y, tilemap.TileDoor)
	m.Set(doorB.X, doorB.Y, tilemap.TileDoor)

	path := g.pf.FindPath(m, doorA, doorB)
	if len(path) == 0 {
		m.Set(doorA.X, doorA.Y, tilemap.TileWall)
		m.Set(doorB.X, doorB.Y, tilemap.TileWall)
		return false
	}

	for _, p := range path {
		g.stampCorridorTile(m, p)
	}

	m.Connect(a, b)
	a.AddFeature("door", doorA)
	b.AddFeature("door", doorB)
	g.widenDoor(m, a, doorA)
	g.widenDoor(m, b, doorB)

	// Carving changed wall density; drop the stale chunk abstraction.
	g.pf.Invalidate(m)
	return true
}

// stampCorridorTile lays floor at p unless it falls inside a room
// interior or on an existing door, then seals every surrounding empty
// cell with wall so corridors stay enclosed.
func (g *Generator) stampCorridorTile(m *tilemap.Map, p tilemap.Point) {
	tile, ok := m.TileAt(p.X, p.Y)
	if !ok || tile == tilemap.TileDoor {
		return
	}
	if m.RoomAt(p.X, p.Y) != nil {
		return
	}
	m.Set(p.X, p.Y, tilemap.TileFloor)

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if t, ok := m.TileAt(p.X+dx, p.Y+dy); ok && t == tilemap.TileEmpty {
				m.Set(p.X+dx, p.Y+dy, tilemap.TileWall)
			}
		}
	}
}

// doorPosition finds the perimeter wall tile best facing the target.
// Corners are excluded; the tile directly outside must not be a wall
// so the corridor has somewhere to go.
func doorPosition(m *tilemap.Map, room *tilemap.Room, target tilemap.Point) (tilemap.Point, bool) {
	var best tilemap.Point
	bestDist := -1

	consider := func(door, outside tilemap.Point) {
		if t, ok := m.TileAt(door.X, door.Y); !ok || t != tilemap.TileWall {
			return
		}
		if t, ok := m.TileAt(outside.X, outside.Y); !ok || t == tilemap.TileWall {
			return
		}
		d := abs(door.X-target.X) + abs(door.Y-target.Y)
		if bestDist < 0 || d < bestDist {
			best = door
			bestDist = d
		}
	}

	for x := room.X; x < room.X+room.Width; x++ {
		consider(tilemap.Point{X: x, Y: room.Y - 1}, tilemap.Point{X: x, Y: room.Y - 2})
		consider(tilemap.Point{X: x, Y: room.Y + room.Height}, tilemap.Point{X: x, Y: room.Y + room.Height + 1})
	}
	for y := room.Y; y < room.Y+room.Height; y++ {
		consider(tilemap.Point{X: room.X - 1, Y: y}, tilemap.Point{X: room.X - 2, Y: y})
		consider(tilemap.Point{X: room.X + room.Width, Y: y}, tilemap.Point{X: room.X + room.Width + 1, Y: y})
	}

	return best, bestDist >= 0
}

// widenDoor extends a carved door along its wall until the room type's
// minimum door width is met.
func (g *Generator) widenDoor(m *tilemap.Map, room *tilemap.Room, door tilemap.Point) {
	rule, ok := g.rules.RoomTypes[room.Type]
	if !ok || rule.MinDoorWidth <= 1 {
		return
	}

	// Horizontal walls widen along x, vertical walls along y.
	step := tilemap.Point{X: 1}
	if door.X == room.X-1 || door.X == room.X+room.Width {
		step = tilemap.Point{Y: 1}
	}

	// Keep extra door tiles inside the wall span, off the corners.
	inSpan := func(p tilemap.Point) bool {
		if step.X == 1 {
			return p.X >= room.X && p.X < room.X+room.Width
		}
		return p.Y >= room.Y && p.Y < room.Y+room.Height
	}

	stamped := 1
	for offset := 1; stamped < rule.MinDoorWidth; offset++ {
		extended := false
		for _, dir := range [2]int{1, -1} {
			p := tilemap.Point{X: door.X + dir*offset*step.X, Y: door.Y + dir*offset*step.Y}
			if stamped < rule.MinDoorWidth && inSpan(p) && m.AddDoor(p.X, p.Y) {
				room.AddFeature("door", p)
				stamped++
				extended = true
			}
		}
		if !extended {
			break
		}
	}
}

// fallbackDoor picks any usable perimeter wall tile for a room the MST
// pass could not bridge.
func (g *Generator) fallbackDoor(m *tilemap.Map, room *tilemap.Room) (tilemap.Point, bool) {
	cx, cy := room.Center()
	// Reuse the facing heuristic with the map center as target so the
	// door opens toward the bulk of the sector.
	target := tilemap.Point{X: m.Width / 2, Y: m.Height / 2}
	if cx == target.X && cy == target.Y {
		target = tilemap.Point{X: 0, Y: 0}
	}
	return doorPosition(m, room, target)
}

// addSectorConnections marks one room as the sector entrance and a
// different room as the exit, stamping a door on each.
func (g *Generator) addSectorConnections(m *tilemap.Map, rooms []*tilemap.Room, log *logrus.Entry) {
	entrance := rooms[g.rng.Intn(len(rooms))]
	exit := entrance
	for exit == entrance {
		exit = rooms[g.rng.Intn(len(rooms))]
	}

	if door, ok := g.fallbackDoor(m, entrance); ok {
		m.Set(door.X, door.Y, tilemap.TileDoor)
		entrance.AddFeature("entrance", door)
		log.Debugf("entrance door at (%d,%d) in room %d", door.X, door.Y, entrance.ID)
	}
	if door, ok := g.fallbackDoor(m, exit); ok {
		m.Set(door.X, door.Y, tilemap.TileDoor)
		exit.AddFeature("exit", door)
		log.Debugf("exit door at (%d,%d) in room %d", door.X, door.Y, exit.ID)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
