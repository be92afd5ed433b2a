package pathfind

import (
	"container/heap"

	"github.com/runrudyrun/megastructure-rpg/internal/tilemap"
)

// node is one A* frontier entry.
type node struct {
	pos    tilemap.Point
	f, g   float64
	parent *node
	index  int
}

// nodeHeap is a min-heap ordered by f-score.
type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x any) { n := x.(*node); n.index = len(*h); *h = append(*h, n) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*h = old[:len(old)-1]
	return n
}

// heuristic is the Manhattan distance between two points.
func heuristic(a, b tilemap.Point) float64 {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return float64(dx + dy)
}

// reconstruct walks parent pointers back to the start.
func reconstruct(n *node) []tilemap.Point {
	var path []tilemap.Point
	for ; n != nil; n = n.parent {
		path = append(path, n.pos)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// detailedSteps are the 8-directional moves used during refinement.
var detailedSteps = [8]tilemap.Point{
	{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: 0},
	{X: 1, Y: 1}, {X: -1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: -1},
}

// detailedPath runs tile-level A* between start and goal. Only walls
// block movement; diagonal steps cost 1.4 against 1.0 for cardinals.
// Returns nil when no route exists.
func detailedPath(m *tilemap.Map, start, goal tilemap.Point) []tilemap.Point {
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

		for _, d := range detailedSteps {
			next := tilemap.Point{X: current.pos.X + d.X, Y: current.pos.Y + d.Y}
			tile, ok := m.TileAt(next.X, next.Y)
			if !ok || tile == tilemap.TileWall || closed[next] {
				continue
			}

			cost := 1.0
			if d.X != 0 && d.Y != 0 {
				cost = 1.4
			}
			g := gScores[current.pos] + cost
			if prev, seen := gScores[next]; !seen || g < prev {
				gScores[next] = g
				heap.Push(open, &node{
					pos:    next,
					g:      g,
					f:      g + heuristic(next, goal),
					parent: current,
				})
			}
		}
	}
	return nil
}
