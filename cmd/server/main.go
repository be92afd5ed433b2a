// megastructure-server exposes the sector viewer over SSH so rule
// changes can be reviewed from any terminal. Build:
//
//	go build -o megastructure-server ./cmd/server
//
// Usage:
//
//	./megastructure-server [--port 2222] [--key server_host_key] [--rules dir]
//
// Connect with:
//
//	ssh -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/sirupsen/logrus"
	xssh "golang.org/x/crypto/ssh"

	"github.com/runrudyrun/megastructure-rpg/assets"
	internalssh "github.com/runrudyrun/megastructure-rpg/internal/ssh"
	"github.com/runrudyrun/megastructure-rpg/internal/viewer"
	"github.com/runrudyrun/megastructure-rpg/internal/worldgen"
)

// allowedTerms are the TERM values we trust enough to hand to tcell's
// terminfo lookup. Anything else falls back to xterm-256color.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"tmux":                  true,
	"tmux-256color":         true,
	"screen":                true,
	"screen-256color":       true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
}

// termMu serializes os.Setenv("TERM") around screen creation; tcell
// reads the process environment when building a terminfo screen.
var termMu sync.Mutex

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	rulesDir := flag.String("rules", "", "Directory of JSON rule files (built-in rules if empty)")
	width := flag.Int("width", 80, "Sector width in tiles")
	height := flag.Int("height", 50, "Sector height in tiles")
	flag.Parse()

	log := logrus.StandardLogger()
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	rules := assets.DefaultRules()
	if *rulesDir != "" {
		loaded, err := worldgen.LoadRules(*rulesDir)
		if err != nil {
			log.Fatalf("load rules: %v", err)
		}
		rules = loaded
	}

	signer := loadOrCreateHostKey(*keyFile, log)

	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", *port),
		Handler: func(s gossh.Session) {
			handleSession(s, rules, *width, *height, log)
		},
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No auth: every connection gets a read-only viewer.
		HostSigners: []gossh.Signer{signer},
	}

	log.Infof("sector viewer listening on :%d", *port)
	log.Fatal(srv.ListenAndServe())
}

// handleSession runs one viewer for the lifetime of one SSH connection.
func handleSession(s gossh.Session, rules *worldgen.Rules, width, height int, log *logrus.Logger) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "A PTY is required. Connect with: ssh -t -p 2222 <host>")
		return
	}

	term := "xterm-256color"
	for _, env := range s.Environ() {
		if strings.HasPrefix(env, "TERM=") && allowedTerms[env[5:]] {
			term = env[5:]
			break
		}
	}

	tty := internalssh.NewSessionTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		return
	}
	defer screen.Fini()

	v, err := viewer.New(screen, viewer.Config{
		Rules:  rules,
		Themes: assets.ThemeNames(),
		Width:  width,
		Height: height,
		Seed:   time.Now().UnixNano(),
		Log:    log,
	})
	if err != nil {
		fmt.Fprintf(s, "Viewer setup failed: %v\n", err)
		return
	}

	log.WithField("remote", s.RemoteAddr().String()).Info("viewer session started")
	if err := v.Run(); err != nil {
		log.WithField("remote", s.RemoteAddr().String()).Warnf("viewer session error: %v", err)
	}
}

// loadOrCreateHostKey loads a PEM private key from path, or generates
// and persists a new ed25519 key when the file is absent or unreadable.
func loadOrCreateHostKey(path string, log *logrus.Logger) gossh.Signer {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Infof("loaded host key from %s", path)
			return signer
		}
	}

	log.Infof("generating new ed25519 host key at %s", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Fatalf("generate host key: %v", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		log.Fatalf("create signer: %v", err)
	}
	// Persist for next run (non-fatal if it fails).
	if pemBlock, err := xssh.MarshalPrivateKey(key, "megastructure server"); err == nil {
		_ = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0600)
	}
	return signer
}
