package worldgen

import (
	"os"
	"path/filepath"
	"testing"
)

func validRules() *Rules {
	return &Rules{
		RoomTypes: map[string]RoomTypeRule{
			"corridor": {MinSize: []int{3, 3}, MaxSize: []int{6, 4}, MinDoorWidth: 1},
			"quarters": {MinSize: []int{4, 4}, MaxSize: []int{8, 8}, MinDoorWidth: 1},
		},
		Themes: map[string]ThemeRule{
			"residential": {RoomWeights: map[string]float64{"quarters": 0.7, "corridor": 0.3}},
		},
	}
}

func TestValidateAcceptsWellFormedRules(t *testing.T) {
	if err := validRules().Validate(); err != nil {
		t.Fatalf("valid rules rejected: %v", err)
	}
}

func TestValidateRejectsMalformedRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Rules)
	}{
		{"no room types", func(r *Rules) { r.RoomTypes = nil }},
		{"no themes", func(r *Rules) { r.Themes = nil }},
		{"min_size wrong arity", func(r *Rules) {
			rt := r.RoomTypes["corridor"]
			rt.MinSize = []int{3}
			r.RoomTypes["corridor"] = rt
		}},
		{"min exceeds max", func(r *Rules) {
			rt := r.RoomTypes["corridor"]
			rt.MinSize = []int{7, 3}
			r.RoomTypes["corridor"] = rt
		}},
		{"zero min size", func(r *Rules) {
			rt := r.RoomTypes["corridor"]
			rt.MinSize = []int{0, 3}
			r.RoomTypes["corridor"] = rt
		}},
		{"negative door width", func(r *Rules) {
			rt := r.RoomTypes["corridor"]
			rt.MinDoorWidth = -1
			r.RoomTypes["corridor"] = rt
		}},
		{"unknown feature", func(r *Rules) {
			rt := r.RoomTypes["corridor"]
			rt.Features = map[string]float64{"lava": 0.1}
			r.RoomTypes["corridor"] = rt
		}},
		{"weight for unknown type", func(r *Rules) {
			r.Themes["residential"] = ThemeRule{RoomWeights: map[string]float64{"vault": 1}}
		}},
		{"negative weight", func(r *Rules) {
			r.Themes["residential"] = ThemeRule{RoomWeights: map[string]float64{"corridor": -1}}
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := validRules()
			c.mutate(r)
			if err := r.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestLoadRulesMergesFiles(t *testing.T) {
	dir := t.TempDir()
	base := `{
		"room_types": {
			"corridor": {"min_size": [3, 3], "max_size": [6, 4], "min_door_width": 1}
		},
		"themes": {
			"industrial": {"room_weights": {"corridor": 1.0}}
		}
	}`
	extra := `{
		"room_types": {
			"storage": {"min_size": [4, 4], "max_size": [9, 7], "min_door_width": 2,
				"features": {"containers": 0.1}}
		},
		"themes": {
			"research": {"room_weights": {"storage": 1.0}}
		}
	}`
	if err := os.WriteFile(filepath.Join(dir, "a_base.json"), []byte(base), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b_extra.json"), []byte(extra), 0644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(dir)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(rules.RoomTypes) != 2 {
		t.Errorf("expected 2 merged room types, got %d", len(rules.RoomTypes))
	}
	if _, ok := rules.Themes["research"]; !ok {
		t.Error("theme from the second file should be present")
	}
	if rules.RoomTypes["storage"].MinDoorWidth != 2 {
		t.Error("storage min_door_width should survive the merge")
	}
}

func TestLoadRulesFailures(t *testing.T) {
	if _, err := LoadRules(t.TempDir()); err == nil {
		t.Error("empty directory should be an error")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRules(dir); err == nil {
		t.Error("malformed JSON should be an error")
	}

	dir2 := t.TempDir()
	// Parses, but fails validation: min exceeds max.
	bad := `{
		"room_types": {"corridor": {"min_size": [9, 9], "max_size": [4, 4]}},
		"themes": {"industrial": {"room_weights": {"corridor": 1.0}}}
	}`
	if err := os.WriteFile(filepath.Join(dir2, "rules.json"), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRules(dir2); err == nil {
		t.Error("invalid merged rules should be an error")
	}
}
