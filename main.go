// megastructure-rpg renders procedurally generated station sectors in
// the terminal. Run it with no arguments for a random sector, or pin a
// seed to reproduce one:
//
//	go run . --seed 42 --theme industrial
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/runrudyrun/megastructure-rpg/assets"
	"github.com/runrudyrun/megastructure-rpg/internal/viewer"
	"github.com/runrudyrun/megastructure-rpg/internal/worldgen"
)

func main() {
	width := flag.Int("width", 80, "Sector width in tiles")
	height := flag.Int("height", 50, "Sector height in tiles")
	theme := flag.String("theme", "residential", "Starting theme")
	seed := flag.Int64("seed", 0, "Generation seed (random if 0)")
	rulesDir := flag.String("rules", "", "Directory of JSON rule files (built-in rules if empty)")
	logFile := flag.String("log", "", "Write logs to this file (discarded if empty)")
	flag.Parse()

	log := logrus.StandardLogger()
	// The tcell screen owns the terminal; logs go to a file or nowhere.
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	rules := assets.DefaultRules()
	if *rulesDir != "" {
		loaded, err := worldgen.LoadRules(*rulesDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: load rules: %v\n", err)
			os.Exit(1)
		}
		rules = loaded
	}

	// The requested theme goes first so it is what the viewer opens on.
	themes := []string{*theme}
	for _, name := range assets.ThemeNames() {
		if name != *theme {
			themes = append(themes, name)
		}
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "error: init screen: %v\n", err)
		os.Exit(1)
	}

	v, err := viewer.New(screen, viewer.Config{
		Rules:  rules,
		Themes: themes,
		Width:  *width,
		Height: *height,
		Seed:   *seed,
		Log:    log,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	err = v.Run()
	screen.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
