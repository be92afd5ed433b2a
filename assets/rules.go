// Package assets holds the built-in generation rules used when no rule
// directory is supplied on the command line.
package assets

import "github.com/runrudyrun/megastructure-rpg/internal/worldgen"

// DefaultRules returns the baked-in room and theme catalog. Callers may
// mutate the result freely; every call returns a fresh copy.
func DefaultRules() *worldgen.Rules {
	return &worldgen.Rules{
		RoomTypes: map[string]worldgen.RoomTypeRule{
			"corridor": {
				MinSize:      []int{3, 3},
				MaxSize:      []int{10, 4},
				MinDoorWidth: 1,
			},
			"quarters": {
				MinSize:      []int{4, 4},
				MaxSize:      []int{8, 8},
				MinDoorWidth: 1,
				Features: map[string]float64{
					"containers": 0.03,
					"lights":     0.02,
				},
			},
			"commons": {
				MinSize:      []int{8, 6},
				MaxSize:      []int{14, 10},
				MinDoorWidth: 2,
				Features: map[string]float64{
					"pillars": 0.04,
					"lights":  0.03,
				},
			},
			"storage": {
				MinSize:      []int{5, 4},
				MaxSize:      []int{12, 9},
				MinDoorWidth: 2,
				Features: map[string]float64{
					"containers": 0.12,
				},
			},
			"machine_room": {
				MinSize:      []int{6, 6},
				MaxSize:      []int{14, 11},
				MinDoorWidth: 1,
				Features: map[string]float64{
					"machines":  0.08,
					"terminals": 0.02,
				},
			},
			"laboratory": {
				MinSize:      []int{5, 5},
				MaxSize:      []int{10, 9},
				MinDoorWidth: 1,
				Features: map[string]float64{
					"terminals": 0.06,
					"machines":  0.03,
				},
			},
		},
		Themes: map[string]worldgen.ThemeRule{
			"residential": {
				RoomWeights: map[string]float64{
					"quarters": 0.5,
					"commons":  0.2,
					"corridor": 0.2,
					"storage":  0.1,
				},
			},
			"industrial": {
				RoomWeights: map[string]float64{
					"machine_room": 0.4,
					"storage":      0.3,
					"corridor":     0.3,
				},
			},
			"research": {
				RoomWeights: map[string]float64{
					"laboratory": 0.45,
					"quarters":   0.2,
					"storage":    0.15,
					"corridor":   0.2,
				},
			},
		},
	}
}

// ThemeNames lists the built-in themes in a stable display order.
func ThemeNames() []string {
	return []string{"residential", "industrial", "research"}
}
