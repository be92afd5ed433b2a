// Package pathfind implements two-tier hierarchical A* over a sector
// tile grid. The map is divided into fixed-size chunks; an abstract
// route over chunk walkability bounds the search space before each hop
// is refined with tile-level A*.
package pathfind

import (
	"container/heap"
	"sync"

	"github.com/runrudyrun/megastructure-rpg/internal/tilemap"
)

// DefaultChunkSize is the side length of one abstraction chunk.
const DefaultChunkSize = 16

// wallRatioLimit marks a chunk unwalkable when exceeded.
const wallRatioLimit = 0.25

// chunkGrid is the coarse walkability abstraction of one map.
type chunkGrid struct {
	w, h     int
	walkable []bool
}

func (g *chunkGrid) at(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h && g.walkable[y*g.w+x]
}

// Pathfinder answers path queries over tile maps. It caches one chunk
// abstraction per map; callers that mutate a map afterwards must call
// Invalidate before the next query.
type Pathfinder struct {
	chunkSize int

	mu        sync.Mutex
	abstracts map[*tilemap.Map]*chunkGrid
}

// New creates a Pathfinder with the given chunk size; non-positive
// values select DefaultChunkSize.
func New(chunkSize int) *Pathfinder {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Pathfinder{
		chunkSize: chunkSize,
		abstracts: make(map[*tilemap.Map]*chunkGrid),
	}
}

// Invalidate drops the cached abstraction for m.
func (p *Pathfinder) Invalidate(m *tilemap.Map) {
	p.mu.Lock()
	delete(p.abstracts, m)
	p.mu.Unlock()
}

// Cached returns the number of maps with a live abstraction entry.
// A map stays reachable through this cache until Invalidate drops it.
func (p *Pathfinder) Cached() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.abstracts)
}

func (p *Pathfinder) abstractFor(m *tilemap.Map) *chunkGrid {
	p.mu.Lock()
	defer p.mu.Unlock()
	if g, ok := p.abstracts[m]; ok {
		return g
	}
	g := buildChunkGrid(m, p.chunkSize)
	p.abstracts[m] = g
	return g
}

// buildChunkGrid marks a chunk unwalkable when more than 25% of its
// tiles are walls.
func buildChunkGrid(m *tilemap.Map, size int) *chunkGrid {
	cw := (m.Width + size - 1) / size
	ch := (m.Height + size - 1) / size
	g := &chunkGrid{w: cw, h: ch, walkable: make([]bool, cw*ch)}

	for cy := 0; cy < ch; cy++ {
		for cx := 0; cx < cw; cx++ {
			x1, y1 := cx*size, cy*size
			x2, y2 := min(x1+size, m.Width), min(y1+size, m.Height)

			walls, total := 0, 0
			for y := y1; y < y2; y++ {
				for x := x1; x < x2; x++ {
					if m.Tiles[y][x] == tilemap.TileWall {
						walls++
					}
					total++
				}
			}
			g.walkable[cy*cw+cx] = float64(walls)/float64(total) <= wallRatioLimit
		}
	}
	return g
}

// FindPath returns a tile path from start to goal, or an empty slice
// when either endpoint is out of bounds or no route exists. Pathfinding
// failure is never an error; callers decide their own fallback.
func (p *Pathfinder) FindPath(m *tilemap.Map, start, goal tilemap.Point) []tilemap.Point {
	if !m.InBounds(start.X, start.Y) || !m.InBounds(goal.X, goal.Y) {
		return nil
	}

	grid := p.abstractFor(m)
	abstractStart := tilemap.Point{X: start.X / p.chunkSize, Y: start.Y / p.chunkSize}
	abstractGoal := tilemap.Point{X: goal.X / p.chunkSize, Y: goal.Y / p.chunkSize}

	route := abstractPath(grid, abstractStart, abstractGoal)
	if len(route) == 0 {
		return nil
	}

	// Refine chunk hops through greedily chosen crossing points.
	path := []tilemap.Point{start}
	current := start
	for i := 0; i < len(route)-1; i++ {
		crossings := p.crossingPoints(m, route[i], route[i+1])
		if len(crossings) == 0 {
			continue
		}
		best := crossings[0]
		for _, c := range crossings[1:] {
			if heuristic(c, goal) < heuristic(best, goal) {
				best = c
			}
		}
		if hop := detailedPath(m, current, best); len(hop) > 0 {
			path = append(path, hop[1:]...)
			current = best
		}
	}

	final := detailedPath(m, current, goal)
	if len(final) == 0 {
		return nil
	}
	path = append(path, final[1:]...)
	return path
}

// abstractPath runs 4-directional A* over chunk coordinates.
func abstractPath(g *chunkGrid, start, goal tilemap.Point) []tilemap.Point {
	open := &nodeHeap{}
	heap.Push(open, &node{pos: start})
	closed := make(map[tilemap.Point]bool)
	gScores := map[tilemap.Point]float64{start: 0}

	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		if current.pos == goal {
			return reconstruct(current)
		}
		closed[current.pos] = true

		for _, d := range [4]tilemap.Point{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: 0}} {
			next := tilemap.Point{X: current.pos.X + d.X, Y: current.pos.Y + d.Y}
			if !g.at(next.X, next.Y) || closed[next] {
				continue
			}
			tentative := gScores[current.pos] + 1
			if prev, seen := gScores[next]; !seen || tentative < prev {
				gScores[next] = tentative
				heap.Push(open, &node{
					pos:    next,
					g:      tentative,
					f:      tentative + heuristic(next, goal),
					parent: current,
				})
			}
		}
	}
	return nil
}

// crossingPoints lists tiles on the far side of the shared chunk edge
// where both straddling tiles are free of walls.
func (p *Pathfinder) crossingPoints(m *tilemap.Map, c1, c2 tilemap.Point) []tilemap.Point {
	var points []tilemap.Point
	size := p.chunkSize

	if c1.X == c2.X {
		// Vertically adjacent chunks share a horizontal edge.
		edgeY := max(c1.Y, c2.Y) * size
		x1 := c1.X * size
		x2 := min(x1+size, m.Width)
		for x := x1; x < x2; x++ {
			a, okA := m.TileAt(x, edgeY-1)
			b, okB := m.TileAt(x, edgeY)
			if okA && okB && a != tilemap.TileWall && b != tilemap.TileWall {
				points = append(points, tilemap.Point{X: x, Y: edgeY})
			}
		}
	} else {
		edgeX := max(c1.X, c2.X) * size
		y1 := c1.Y * size
		y2 := min(y1+size, m.Height)
		for y := y1; y < y2; y++ {
			a, okA := m.TileAt(edgeX-1, y)
			b, okB := m.TileAt(edgeX, y)
			if okA && okB && a != tilemap.TileWall && b != tilemap.TileWall {
				points = append(points, tilemap.Point{X: edgeX, Y: y})
			}
		}
	}
	return points
}
