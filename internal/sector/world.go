package sector

import (
	"github.com/runrudyrun/megastructure-rpg/internal/tilemap"
	"github.com/runrudyrun/megastructure-rpg/internal/worldgen"
)

// World hands out sectors by world coordinate and theme, generating
// through the configured generator on cache miss. Every sector shares
// the same dimensions.
type World struct {
	gen    *worldgen.Generator
	cache  *Cache
	width  int
	height int
}

// NewWorld wires a generator and cache into a sector lookup. A nil
// cache gets default bounds.
func NewWorld(gen *worldgen.Generator, cache *Cache, sectorWidth, sectorHeight int) *World {
	if cache == nil {
		cache = NewCache(0, 0)
	}
	return &World{
		gen:    gen,
		cache:  cache,
		width:  sectorWidth,
		height: sectorHeight,
	}
}

// Sector returns the sector at (x, y) for the given theme, generating
// and caching it on first request. Concurrent requests for the same
// key may both generate; the last result wins the cache slot.
func (w *World) Sector(x, y int, theme string) (*tilemap.Map, error) {
	if m := w.cache.Get(x, y, theme); m != nil {
		return m, nil
	}

	m, err := w.gen.Generate(worldgen.SectorConfig{
		Width:   w.width,
		Height:  w.height,
		Theme:   theme,
		SectorX: x,
		SectorY: y,
	})
	if err != nil {
		return nil, err
	}

	w.cache.Put(x, y, theme, m)
	return m, nil
}

// Forget drops the sector at (x, y, theme) so the next request
// regenerates it.
func (w *World) Forget(x, y int, theme string) {
	w.cache.Remove(x, y, theme)
}
