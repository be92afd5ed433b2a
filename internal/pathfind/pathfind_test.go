package pathfind

import (
	"testing"

	"github.com/runrudyrun/megastructure-rpg/internal/tilemap"
)

// openMap builds a map with every tile set to floor.
func openMap(w, h int) *tilemap.Map {
	m := tilemap.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, tilemap.TileFloor)
		}
	}
	return m
}

func TestFindPathStraightCorridor(t *testing.T) {
	m := openMap(10, 1)
	p := New(0)

	path := p.FindPath(m, tilemap.Point{X: 0, Y: 0}, tilemap.Point{X: 9, Y: 0})
	if len(path) != 10 {
		t.Fatalf("corridor path length = %d, want 10", len(path))
	}
	if path[0] != (tilemap.Point{X: 0, Y: 0}) {
		t.Errorf("path starts at %v, want (0,0)", path[0])
	}
	if path[len(path)-1] != (tilemap.Point{X: 9, Y: 0}) {
		t.Errorf("path ends at %v, want (9,0)", path[len(path)-1])
	}
	for i := 1; i < len(path); i++ {
		dx := path[i].X - path[i-1].X
		dy := path[i].Y - path[i-1].Y
		if dx < -1 || dx > 1 || dy < -1 || dy > 1 || (dx == 0 && dy == 0) {
			t.Errorf("step %d: %v -> %v is not a single tile move", i, path[i-1], path[i])
		}
	}
}

func TestFindPathOutOfBounds(t *testing.T) {
	m := openMap(10, 10)
	p := New(0)

	if got := p.FindPath(m, tilemap.Point{X: -1, Y: 0}, tilemap.Point{X: 5, Y: 5}); len(got) != 0 {
		t.Errorf("out-of-bounds start should yield an empty path, got %v", got)
	}
	if got := p.FindPath(m, tilemap.Point{X: 0, Y: 0}, tilemap.Point{X: 10, Y: 10}); len(got) != 0 {
		t.Errorf("out-of-bounds goal should yield an empty path, got %v", got)
	}
}

func TestFindPathBlockedByWall(t *testing.T) {
	m := openMap(9, 5)
	// A full-height wall splits the map in two.
	for y := 0; y < 5; y++ {
		m.Set(4, y, tilemap.TileWall)
	}
	p := New(0)

	got := p.FindPath(m, tilemap.Point{X: 1, Y: 2}, tilemap.Point{X: 7, Y: 2})
	if len(got) != 0 {
		t.Errorf("disconnected halves should yield an empty path, got %v", got)
	}
}

func TestFindPathCrossesChunkBoundary(t *testing.T) {
	// 40x12 open map spans three chunks horizontally at the default size.
	m := openMap(40, 12)
	p := New(DefaultChunkSize)

	start := tilemap.Point{X: 2, Y: 6}
	goal := tilemap.Point{X: 37, Y: 6}
	path := p.FindPath(m, start, goal)
	if len(path) == 0 {
		t.Fatal("expected a path across chunk boundaries")
	}
	if path[0] != start || path[len(path)-1] != goal {
		t.Errorf("path endpoints %v..%v, want %v..%v",
			path[0], path[len(path)-1], start, goal)
	}
	for i := 1; i < len(path); i++ {
		dx := path[i].X - path[i-1].X
		dy := path[i].Y - path[i-1].Y
		if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
			t.Fatalf("step %d: %v -> %v jumps more than one tile", i, path[i-1], path[i])
		}
	}
}

func TestDiagonalCostPrefersStraightLine(t *testing.T) {
	m := openMap(10, 10)
	p := New(0)

	path := p.FindPath(m, tilemap.Point{X: 0, Y: 5}, tilemap.Point{X: 9, Y: 5})
	if len(path) != 10 {
		t.Errorf("straight route should take 10 steps, got %d", len(path))
	}
}

func TestInvalidateRebuildsAbstraction(t *testing.T) {
	m := openMap(32, 16)
	p := New(16)

	start := tilemap.Point{X: 2, Y: 8}
	goal := tilemap.Point{X: 30, Y: 8}
	if len(p.FindPath(m, start, goal)) == 0 {
		t.Fatal("open map should be routable")
	}
	if p.Cached() != 1 {
		t.Fatalf("expected one cached abstraction, got %d", p.Cached())
	}

	// Wall off the right chunk almost completely.
	for y := 0; y < 16; y++ {
		for x := 16; x < 32; x++ {
			m.Set(x, y, tilemap.TileWall)
		}
	}

	// The stale abstraction still considers the right chunk walkable,
	// but the refinement tier cannot reach a goal surrounded by walls.
	if len(p.FindPath(m, start, goal)) != 0 {
		t.Error("walled goal should not be reachable on stale abstraction")
	}

	p.Invalidate(m)
	if p.Cached() != 0 {
		t.Fatalf("Invalidate left %d cached abstractions", p.Cached())
	}
	if len(p.FindPath(m, start, goal)) != 0 {
		t.Error("walled goal should not be reachable after invalidation")
	}
}

func TestChunkGridWallRatio(t *testing.T) {
	m := tilemap.New(16, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			m.Set(x, y, tilemap.TileFloor)
		}
	}
	// 25% walls exactly: still walkable.
	count := 0
	for y := 0; y < 16 && count < 64; y++ {
		for x := 0; x < 16 && count < 64; x++ {
			m.Set(x, y, tilemap.TileWall)
			count++
		}
	}
	g := buildChunkGrid(m, 16)
	if !g.at(0, 0) {
		t.Error("chunk at exactly 25% walls should remain walkable")
	}
	// One more wall tips it over.
	m.Set(15, 15, tilemap.TileWall)
	g = buildChunkGrid(m, 16)
	if g.at(0, 0) {
		t.Error("chunk above 25% walls should be unwalkable")
	}
}
