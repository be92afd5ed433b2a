package tilemap

import "testing"

func TestInBounds(t *testing.T) {
	m := New(10, 8)
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{9, 7, true},
		{-1, 0, false},
		{10, 0, false},
		{0, 8, false},
	}
	for _, c := range cases {
		if got := m.InBounds(c.x, c.y); got != c.want {
			t.Errorf("InBounds(%d,%d)=%v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestSetAndTileAt(t *testing.T) {
	m := New(5, 5)
	if tile, ok := m.TileAt(2, 2); !ok || tile != TileEmpty {
		t.Fatalf("fresh map should be empty at (2,2), got %v ok=%v", tile, ok)
	}
	if !m.Set(2, 2, TileFloor) {
		t.Fatal("in-bounds Set should succeed")
	}
	if tile, _ := m.TileAt(2, 2); tile != TileFloor {
		t.Errorf("Set should be reflected by subsequent TileAt, got %v", tile)
	}
	if m.Set(-1, 0, TileFloor) {
		t.Error("out-of-bounds Set should return false")
	}
	if _, ok := m.TileAt(5, 0); ok {
		t.Error("out-of-bounds TileAt should report ok=false")
	}
}

func TestAddRoomStampsTiles(t *testing.T) {
	m := New(20, 20)
	room := m.AddRoom("storage", 5, 5, 4, 3)
	if room == nil {
		t.Fatal("AddRoom should succeed on an empty map")
	}

	// Interior is floor.
	for y := 5; y < 8; y++ {
		for x := 5; x < 9; x++ {
			if tile, _ := m.TileAt(x, y); tile != TileFloor {
				t.Errorf("interior (%d,%d) = %v, want floor", x, y, tile)
			}
		}
	}
	// Perimeter ring is wall.
	for x := 4; x <= 9; x++ {
		if tile, _ := m.TileAt(x, 4); tile != TileWall {
			t.Errorf("perimeter (%d,4) = %v, want wall", x, tile)
		}
		if tile, _ := m.TileAt(x, 8); tile != TileWall {
			t.Errorf("perimeter (%d,8) = %v, want wall", x, tile)
		}
	}
	for y := 4; y <= 8; y++ {
		if tile, _ := m.TileAt(4, y); tile != TileWall {
			t.Errorf("perimeter (4,%d) = %v, want wall", y, tile)
		}
		if tile, _ := m.TileAt(9, y); tile != TileWall {
			t.Errorf("perimeter (9,%d) = %v, want wall", y, tile)
		}
	}
}

func TestAddRoomRejectsOverlapAndBounds(t *testing.T) {
	m := New(20, 20)
	if m.AddRoom("lab", 5, 5, 5, 5) == nil {
		t.Fatal("first room should place")
	}
	// Overlapping interior.
	if m.AddRoom("lab", 7, 7, 4, 4) != nil {
		t.Error("overlapping room should be rejected")
	}
	// Sharing the wall ring counts as overlap too.
	if m.AddRoom("lab", 11, 5, 4, 4) != nil {
		t.Error("room sharing a wall ring should be rejected")
	}
	// Wall ring would leave the map.
	if m.AddRoom("lab", 0, 0, 4, 4) != nil {
		t.Error("room whose wall ring leaves the map should be rejected")
	}
	if m.AddRoom("lab", 16, 16, 4, 4) != nil {
		t.Error("room extending past the far edge should be rejected")
	}
	if len(m.Rooms) != 1 {
		t.Errorf("expected 1 room, got %d", len(m.Rooms))
	}
}

func TestAddDoorRequiresWall(t *testing.T) {
	m := New(20, 20)
	m.AddRoom("quarters", 5, 5, 4, 4)
	if !m.AddDoor(5, 4) {
		t.Error("door on a perimeter wall should succeed")
	}
	if tile, _ := m.TileAt(5, 4); tile != TileDoor {
		t.Errorf("tile after AddDoor = %v, want door", tile)
	}
	if m.AddDoor(6, 6) {
		t.Error("door on a floor tile should fail")
	}
	if m.AddDoor(0, 0) {
		t.Error("door on an empty tile should fail")
	}
}

func TestConnectSymmetricAndRejectsSelf(t *testing.T) {
	m := New(30, 20)
	a := m.AddRoom("lab", 2, 2, 4, 4)
	b := m.AddRoom("lab", 12, 2, 4, 4)

	if m.Connect(a, a) {
		t.Error("self-connection should be rejected")
	}
	if !m.Connect(a, b) {
		t.Fatal("Connect should succeed for distinct rooms")
	}
	if !a.Connections.Has(b.ID) || !b.Connections.Has(a.ID) {
		t.Error("connection should be recorded on both rooms")
	}
	ids := a.ConnectionIDs()
	if len(ids) != 1 || ids[0] != b.ID {
		t.Errorf("ConnectionIDs = %v, want [%d]", ids, b.ID)
	}
}

func TestRoomAt(t *testing.T) {
	m := New(30, 20)
	a := m.AddRoom("lab", 2, 2, 4, 4)
	if got := m.RoomAt(3, 3); got != a {
		t.Errorf("RoomAt(3,3) = %v, want room %d", got, a.ID)
	}
	// The wall ring is not part of the room interior.
	if got := m.RoomAt(1, 1); got != nil {
		t.Errorf("RoomAt on the wall ring should be nil, got room %d", got.ID)
	}
	if got := m.RoomAt(20, 10); got != nil {
		t.Errorf("RoomAt in open space should be nil, got room %d", got.ID)
	}
}

func TestAddFeature(t *testing.T) {
	m := New(20, 20)
	room := m.AddRoom("machine_room", 5, 5, 5, 5)
	if !m.AddFeature(room, TileTerminal, 7, 7) {
		t.Fatal("feature on interior floor should succeed")
	}
	if tile, _ := m.TileAt(7, 7); tile != TileTerminal {
		t.Errorf("tile after AddFeature = %v, want terminal", tile)
	}
	pts := room.Features["terminal"]
	if len(pts) != 1 || pts[0] != (Point{X: 7, Y: 7}) {
		t.Errorf("feature coordinates = %v, want [(7,7)]", pts)
	}
	// Same cell is no longer floor.
	if m.AddFeature(room, TileContainer, 7, 7) {
		t.Error("feature on a non-floor cell should fail")
	}
	// Outside the room interior.
	if m.AddFeature(room, TileContainer, 4, 4) {
		t.Error("feature outside the room should fail")
	}
}

func TestWalkable(t *testing.T) {
	for _, tile := range []Tile{TileFloor, TileDoor, TileLight, TileLightCluster} {
		if !tile.Walkable() {
			t.Errorf("%v should be walkable", tile)
		}
	}
	for _, tile := range []Tile{TileEmpty, TileWall, TileMachine, TileContainerCluster, TilePillar} {
		if tile.Walkable() {
			t.Errorf("%v should block movement", tile)
		}
	}
}

func TestTileNamesRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		want Tile
	}{
		{"terminal", TileTerminal},
		{"terminals", TileTerminalCluster},
		{"door", TileDoor},
		{"lights", TileLightCluster},
	}
	for _, c := range cases {
		got, ok := TileByName(c.name)
		if !ok || got != c.want {
			t.Errorf("TileByName(%q) = %v ok=%v, want %v", c.name, got, ok, c.want)
		}
	}
	if _, ok := TileByName("lava"); ok {
		t.Error("unknown feature name should not resolve")
	}
	if TileTerminalCluster.Canonical() != TileTerminal {
		t.Error("cluster variant should canonicalize to its base tile")
	}
}
