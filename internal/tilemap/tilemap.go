package tilemap

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// Room is a placed rectangular area of a given type. X/Y/Width/Height
// describe the floor interior; the surrounding 1-tile wall ring is
// stamped by AddRoom but is not part of the rectangle. A room never
// moves or resizes after placement.
type Room struct {
	ID     int
	Type   string
	X, Y   int
	Width  int
	Height int

	// Connections holds the ids of rooms reachable through a carved
	// corridor. Always symmetric: Connect records both directions.
	Connections mapset.Set[int]

	// Features maps a feature name ("terminals", "entrance", ...) to
	// the coordinates where it was placed.
	Features map[string][]Point
}

func newRoom(id int, roomType string, x, y, width, height int) *Room {
	return &Room{
		ID:          id,
		Type:        roomType,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Connections: mapset.New[int](),
		Features:    make(map[string][]Point),
	}
}

// Center returns the center point of the room interior.
func (r *Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains reports whether (x, y) lies inside the room interior.
func (r *Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Overlaps reports whether the two rooms' padded rectangles intersect.
// The padding covers the wall ring, so rooms may not even share walls.
func (r *Room) Overlaps(other *Room) bool {
	return r.X-1 <= other.X+other.Width && r.X+r.Width >= other.X-1 &&
		r.Y-1 <= other.Y+other.Height && r.Y+r.Height >= other.Y-1
}

// ConnectionIDs returns the connected room ids in ascending order.
func (r *Room) ConnectionIDs() []int {
	ids := make([]int, 0, r.Connections.Size())
	r.Connections.Each(func(id int) {
		ids = append(ids, id)
	})
	sort.Ints(ids)
	return ids
}

// AddFeature records a feature coordinate on the room.
func (r *Room) AddFeature(name string, p Point) {
	r.Features[name] = append(r.Features[name], p)
}

// Map is one sector's tile grid plus its room catalog.
type Map struct {
	Width, Height int
	Tiles         [][]Tile
	Rooms         map[int]*Room

	nextRoomID int
}

// New creates a Map filled with empty tiles.
func New(width, height int) *Map {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
	}
	return &Map{
		Width:  width,
		Height: height,
		Tiles:  tiles,
		Rooms:  make(map[int]*Room),
	}
}

// InBounds reports whether (x, y) is within the map boundaries.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// TileAt returns the tile at (x, y); ok is false out of bounds.
func (m *Map) TileAt(x, y int) (Tile, bool) {
	if !m.InBounds(x, y) {
		return TileEmpty, false
	}
	return m.Tiles[y][x], true
}

// Set replaces the tile at (x, y). Out-of-bounds writes are a no-op
// returning false.
func (m *Map) Set(x, y int, t Tile) bool {
	if !m.InBounds(x, y) {
		return false
	}
	m.Tiles[y][x] = t
	return true
}

// AddRoom places a room with its interior at (x, y, width, height),
// stamping floor over the interior and wall over the surrounding ring.
// Returns nil when the padded rectangle leaves the map or overlaps an
// existing room.
func (m *Map) AddRoom(roomType string, x, y, width, height int) *Room {
	if width <= 0 || height <= 0 {
		return nil
	}
	if !m.InBounds(x-1, y-1) || !m.InBounds(x+width, y+height) {
		return nil
	}

	room := newRoom(m.nextRoomID, roomType, x, y, width, height)
	for _, existing := range m.Rooms {
		if room.Overlaps(existing) {
			return nil
		}
	}
	m.nextRoomID++
	m.Rooms[room.ID] = room

	// Walls first, then the floor interior over the inner cells.
	for wy := y - 1; wy <= y+height; wy++ {
		m.Set(x-1, wy, TileWall)
		m.Set(x+width, wy, TileWall)
	}
	for wx := x - 1; wx <= x+width; wx++ {
		m.Set(wx, y-1, TileWall)
		m.Set(wx, y+height, TileWall)
	}
	for fy := y; fy < y+height; fy++ {
		for fx := x; fx < x+width; fx++ {
			m.Set(fx, fy, TileFloor)
		}
	}
	return room
}

// AddDoor converts the wall at (x, y) into a door.
func (m *Map) AddDoor(x, y int) bool {
	if t, ok := m.TileAt(x, y); !ok || t != TileWall {
		return false
	}
	return m.Set(x, y, TileDoor)
}

// AddFeature stamps a feature tile on a floor cell inside the room and
// records its coordinate under the tile's name.
func (m *Map) AddFeature(room *Room, t Tile, x, y int) bool {
	if !room.Contains(x, y) {
		return false
	}
	if cur, ok := m.TileAt(x, y); !ok || cur != TileFloor {
		return false
	}
	m.Set(x, y, t)
	room.AddFeature(t.String(), Point{X: x, Y: y})
	return true
}

// Connect records a symmetric connection between two rooms. Rejects
// self-connection.
func (m *Map) Connect(a, b *Room) bool {
	if a == nil || b == nil || a.ID == b.ID {
		return false
	}
	a.Connections.Put(b.ID)
	b.Connections.Put(a.ID)
	return true
}

// RoomAt returns the room whose interior covers (x, y), or nil.
// Linear scan; sectors hold 10-20 rooms at most.
func (m *Map) RoomAt(x, y int) *Room {
	for _, room := range m.Rooms {
		if room.Contains(x, y) {
			return room
		}
	}
	return nil
}

// RoomList returns the rooms ordered by id (placement order).
func (m *Map) RoomList() []*Room {
	rooms := make([]*Room, 0, len(m.Rooms))
	for _, room := range m.Rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms
}
