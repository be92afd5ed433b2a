// Package viewer is an interactive terminal front end for the sector
// generator: it renders one sector at a time and regenerates it on
// demand so rule and theme changes can be eyeballed quickly.
package viewer

import (
	"fmt"
	"math/rand"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/runrudyrun/megastructure-rpg/internal/render"
	"github.com/runrudyrun/megastructure-rpg/internal/tilemap"
	"github.com/runrudyrun/megastructure-rpg/internal/worldgen"
)

// Config selects what the viewer shows first.
type Config struct {
	Rules  *worldgen.Rules
	Themes []string // cycled by the 1-3 keys; at least one required
	Width  int
	Height int
	Seed   int64
	Log    *logrus.Logger
}

// Viewer drives the generate-inspect-regenerate loop on a tcell screen.
type Viewer struct {
	screen   tcell.Screen
	renderer *render.Renderer
	rules    *worldgen.Rules
	log      *logrus.Logger

	themes   []string
	themeIdx int
	seed     int64
	width    int
	height   int

	m       *tilemap.Map
	rooms   []*tilemap.Room
	inspect int // index into rooms, -1 for none
}

// New creates a Viewer on the given screen and generates the first
// sector.
func New(screen tcell.Screen, cfg Config) (*Viewer, error) {
	if len(cfg.Themes) == 0 {
		return nil, fmt.Errorf("viewer: at least one theme required")
	}
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	v := &Viewer{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		rules:    cfg.Rules,
		log:      log,
		themes:   cfg.Themes,
		seed:     cfg.Seed,
		width:    cfg.Width,
		height:   cfg.Height,
		inspect:  -1,
	}
	if err := v.regenerate(); err != nil {
		return nil, err
	}
	return v, nil
}

// regenerate rebuilds the sector from the current seed and theme.
func (v *Viewer) regenerate() error {
	gen, err := worldgen.New(v.rules, rand.New(rand.NewSource(v.seed)))
	if err != nil {
		return err
	}
	gen.SetLogger(v.log)

	m, err := gen.Generate(worldgen.SectorConfig{
		Width:  v.width,
		Height: v.height,
		Theme:  v.themes[v.themeIdx],
	})
	if err != nil {
		return err
	}
	v.m = m
	v.rooms = m.RoomList()
	v.inspect = -1
	v.renderer.CenterOn(m.Width/2, m.Height/2)
	return nil
}

// Run polls events until the user quits. The caller owns the screen
// lifecycle.
func (v *Viewer) Run() error {
	for {
		v.draw()

		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
			v.renderer.Resize()
		case *tcell.EventKey:
			action := keyToAction(ev)
			if action == ActionQuit {
				return nil
			}
			if err := v.apply(action); err != nil {
				return err
			}
		}
	}
}

func (v *Viewer) apply(action Action) error {
	switch action {
	case ActionRegenerate:
		v.seed++
		return v.regenerate()
	case ActionTheme1, ActionTheme2, ActionTheme3:
		idx := int(action - ActionTheme1)
		if idx < len(v.themes) && idx != v.themeIdx {
			v.themeIdx = idx
			return v.regenerate()
		}
	case ActionPanN:
		v.renderer.Pan(0, -2)
	case ActionPanS:
		v.renderer.Pan(0, 2)
	case ActionPanE:
		v.renderer.Pan(2, 0)
	case ActionPanW:
		v.renderer.Pan(-2, 0)
	case ActionInspectNext:
		if len(v.rooms) > 0 {
			v.inspect = (v.inspect + 1) % len(v.rooms)
		}
	}
	return nil
}

func (v *Viewer) draw() {
	var highlight *tilemap.Room
	if v.inspect >= 0 && v.inspect < len(v.rooms) {
		highlight = v.rooms[v.inspect]
	}
	v.renderer.DrawMap(v.m, highlight)
	v.renderer.DrawStatus(v.m, 0, 0, v.themes[v.themeIdx], v.seed, highlight)
	v.renderer.Show()
}
