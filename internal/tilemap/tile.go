package tilemap

// Tile identifies the contents of one map cell.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileFloor
	TileWall
	TileDoor
	TileWindow
	TileTerminal
	TileContainer
	TileMachine
	TilePillar
	TileLight

	// Cluster variants mark decorative groups of the same fixture.
	// Rule files may name features in either singular or plural form.
	TileDoorCluster
	TileWindowCluster
	TileTerminalCluster
	TileContainerCluster
	TileMachineCluster
	TilePillarCluster
	TileLightCluster
)

var tileNames = map[Tile]string{
	TileEmpty:            "empty",
	TileFloor:            "floor",
	TileWall:             "wall",
	TileDoor:             "door",
	TileWindow:           "window",
	TileTerminal:         "terminal",
	TileContainer:        "container",
	TileMachine:          "machine",
	TilePillar:           "pillar",
	TileLight:            "light",
	TileDoorCluster:      "doors",
	TileWindowCluster:    "windows",
	TileTerminalCluster:  "terminals",
	TileContainerCluster: "containers",
	TileMachineCluster:   "machines",
	TilePillarCluster:    "pillars",
	TileLightCluster:     "lights",
}

// String returns the rule-file name of the tile.
func (t Tile) String() string {
	if name, ok := tileNames[t]; ok {
		return name
	}
	return "unknown"
}

// Canonical maps a cluster variant to its base tile.
func (t Tile) Canonical() Tile {
	if t >= TileDoorCluster && t <= TileLightCluster {
		return TileDoor + (t - TileDoorCluster)
	}
	return t
}

// Walkable reports whether entities can occupy the tile.
func (t Tile) Walkable() bool {
	switch t.Canonical() {
	case TileFloor, TileDoor, TileLight:
		return true
	}
	return false
}

// TileByName resolves a rule-file feature name to its tile value.
func TileByName(name string) (Tile, bool) {
	for t, n := range tileNames {
		if n == name {
			return t, true
		}
	}
	return TileEmpty, false
}
