package worldgen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runrudyrun/megastructure-rpg/internal/tilemap"
)

// RoomTypeRule bounds the dimensions of one room type and its door
// width, and optionally sprinkles features over its floor.
type RoomTypeRule struct {
	MinSize      []int `json:"min_size"`
	MaxSize      []int `json:"max_size"`
	MinDoorWidth int   `json:"min_door_width"`

	// Features maps a feature tile name (singular or plural form) to
	// the per-floor-cell placement probability.
	Features map[string]float64 `json:"features,omitempty"`
}

// ThemeRule weights the room types available to one theme.
type ThemeRule struct {
	RoomWeights map[string]float64 `json:"room_weights"`
}

// Rules is the full declarative generation rule set. Loaded once and
// treated as read-only by the generator.
type Rules struct {
	RoomTypes map[string]RoomTypeRule `json:"room_types"`
	Themes    map[string]ThemeRule    `json:"themes"`
}

// Validate checks structural soundness: both sections present, sizes
// are two-element and component-wise ordered, and feature names
// resolve to known tiles. Violations are construction failures.
func (r *Rules) Validate() error {
	if len(r.RoomTypes) == 0 {
		return fmt.Errorf("generation rules: missing room_types section")
	}
	if len(r.Themes) == 0 {
		return fmt.Errorf("generation rules: missing themes section")
	}
	for name, rt := range r.RoomTypes {
		if len(rt.MinSize) != 2 || len(rt.MaxSize) != 2 {
			return fmt.Errorf("room type %q: min_size and max_size must have exactly two elements", name)
		}
		for i := 0; i < 2; i++ {
			if rt.MinSize[i] <= 0 {
				return fmt.Errorf("room type %q: min_size must be positive, got %v", name, rt.MinSize)
			}
			if rt.MinSize[i] > rt.MaxSize[i] {
				return fmt.Errorf("room type %q: min_size %v exceeds max_size %v", name, rt.MinSize, rt.MaxSize)
			}
		}
		if rt.MinDoorWidth < 0 {
			return fmt.Errorf("room type %q: min_door_width must not be negative", name)
		}
		for feature := range rt.Features {
			if _, ok := tilemap.TileByName(feature); !ok {
				return fmt.Errorf("room type %q: unknown feature %q", name, feature)
			}
		}
	}
	for theme, tr := range r.Themes {
		for roomType, weight := range tr.RoomWeights {
			if _, ok := r.RoomTypes[roomType]; !ok {
				return fmt.Errorf("theme %q: weight references unknown room type %q", theme, roomType)
			}
			if weight < 0 {
				return fmt.Errorf("theme %q: negative weight for room type %q", theme, roomType)
			}
		}
	}
	return nil
}

// LoadRules reads and merges every *.json rule file in dir, then
// validates the result. Later files extend earlier ones.
func LoadRules(dir string) (*Rules, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan rules directory: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no rule files found in %s", dir)
	}

	merged := &Rules{
		RoomTypes: make(map[string]RoomTypeRule),
		Themes:    make(map[string]ThemeRule),
	}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read rule file %s: %w", filepath.Base(file), err)
		}
		var part Rules
		if err := json.Unmarshal(data, &part); err != nil {
			return nil, fmt.Errorf("failed to parse rule file %s: %w", filepath.Base(file), err)
		}
		for name, rt := range part.RoomTypes {
			merged.RoomTypes[name] = rt
		}
		for name, theme := range part.Themes {
			merged.Themes[name] = theme
		}
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}
