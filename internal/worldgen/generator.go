// Package worldgen procedurally generates megastructure sectors: it
// places non-overlapping rooms from weighted theme rules, connects
// them along a minimum spanning tree with pathfinder-carved corridors,
// and marks sector entrances and exits.
package worldgen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/runrudyrun/megastructure-rpg/internal/pathfind"
	"github.com/runrudyrun/megastructure-rpg/internal/tilemap"
)

const (
	// placementAttempts bounds rejection sampling per sector.
	placementAttempts = 100
	// placementBatch is how many candidates are validated concurrently.
	placementBatch = 4
	// edgePadding keeps room wall rings away from the map border.
	edgePadding = 2

	defaultMinRooms = 6
	defaultMaxRooms = 10
)

// SectorConfig describes one generation request.
type SectorConfig struct {
	Width, Height int
	Theme         string

	// SectorX/SectorY identify the sector in world space. They do not
	// influence layout; they only label logs and cache keys.
	SectorX, SectorY int

	// MinRooms/MaxRooms bound the random room-count target. Zero
	// values select the defaults (6 and 10).
	MinRooms, MaxRooms int

	// CorridorRatio in [0,1] carves that fraction of the leftover
	// non-MST edges as redundant corridors.
	CorridorRatio float64
}

// Generator produces sector tile maps from a validated rule set and an
// injected random source. Safe for sequential reuse; one Generate call
// runs at a time per Generator because the random source is shared.
type Generator struct {
	rules *Rules
	rng   *rand.Rand
	pf    *pathfind.Pathfinder
	log   *logrus.Logger
}

// New creates a Generator. The rules are validated once here so that
// generation never operates on malformed bounds. A nil rng falls back
// to a time-seeded source; tests inject a fixed seed for reproducible
// sectors.
func New(rules *Rules, rng *rand.Rand) (*Generator, error) {
	if rules == nil {
		return nil, fmt.Errorf("generator: rules must not be nil")
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		rules: rules,
		rng:   rng,
		pf:    pathfind.New(pathfind.DefaultChunkSize),
		log:   logrus.StandardLogger(),
	}, nil
}

// SetLogger replaces the generator's logger.
func (g *Generator) SetLogger(log *logrus.Logger) {
	if log != nil {
		g.log = log
	}
}

// Generate produces one sector. Non-positive dimensions are an error;
// an unknown theme degrades to a default weight table, and a sector
// where no room fits is returned as a valid (if empty) map.
func (g *Generator) Generate(cfg SectorConfig) (*tilemap.Map, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("generate sector: dimensions must be positive, got %dx%d", cfg.Width, cfg.Height)
	}

	log := g.log.WithFields(logrus.Fields{
		"sector": fmt.Sprintf("(%d,%d)", cfg.SectorX, cfg.SectorY),
		"theme":  cfg.Theme,
	})
	log.Infof("generating sector %dx%d", cfg.Width, cfg.Height)

	weights := g.themeWeights(cfg.Theme, log)
	m := tilemap.New(cfg.Width, cfg.Height)

	rooms := g.placeRooms(m, weights, cfg)
	g.connectRooms(m, rooms, cfg.CorridorRatio, log)
	if len(rooms) >= 2 {
		g.addSectorConnections(m, rooms, log)
	}
	g.placeFeatures(m, rooms)

	log.Infof("sector generation complete: %d rooms", len(rooms))
	return m, nil
}

// themeWeights resolves the theme's weight table, falling back to a
// corridor-only distribution for unknown themes. Soft degeneracy: the
// caller still gets a usable sector.
func (g *Generator) themeWeights(theme string, log *logrus.Entry) map[string]float64 {
	if t, ok := g.rules.Themes[theme]; ok && len(t.RoomWeights) > 0 {
		return t.RoomWeights
	}
	log.Warnf("theme %q not found in rules, using default weights", theme)
	if _, ok := g.rules.RoomTypes["corridor"]; ok {
		return map[string]float64{"corridor": 1.0}
	}
	// Weight every known room type equally when no corridor type exists.
	weights := make(map[string]float64, len(g.rules.RoomTypes))
	for name := range g.rules.RoomTypes {
		weights[name] = 1.0
	}
	return weights
}
