// emoji-merge-server hosts the merge game over SSH. Every connection gets its
// own board; hi score and gallery are shared through one progress store.
// Build:
//
//	go build -o emoji-merge-server ./cmd/server
//
// Usage:
//
//	./emoji-merge-server [--port 2222] [--key server_host_key] [--max 32]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"emoji-merge/internal/config"
	"emoji-merge/internal/game"
	internalssh "emoji-merge/internal/ssh"
	"emoji-merge/internal/store"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
)

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	maxPlayers := flag.Int("max", 32, "Maximum concurrent players")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	kv := store.OpenOrMemory(cfg.Store, cfg.DataDir)
	defer kv.Close()

	signer := loadOrCreateHostKey(*keyFile)
	h := newHost(cfg, store.NewProgress(kv), *maxPlayers)

	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: h.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication: intended for a private home server.
		HostSigners: []gossh.Signer{signer},
	}

	log.Printf("emoji-merge SSH server listening on :%d (store %s in %s)", *port, cfg.Store, cfg.DataDir)
	log.Printf("Connect with:  ssh -t -p %d -o StrictHostKeyChecking=no localhost", *port)
	log.Fatal(srv.ListenAndServe())
}

// ─── host ───────────────────────────────────────────────────────────────────

// host runs one independent game per SSH connection.
type host struct {
	cfg      config.Config
	progress *store.Progress
	max      int

	mu      sync.Mutex
	players int
}

func newHost(cfg config.Config, progress *store.Progress, limit int) *host {
	return &host{cfg: cfg, progress: progress, max: limit}
}

// join reserves a player slot. It reports false when the server is full.
func (h *host) join() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.max > 0 && h.players >= h.max {
		return false
	}
	h.players++
	return true
}

func (h *host) leave() {
	h.mu.Lock()
	h.players--
	h.mu.Unlock()
}

// handleSession is the gliderlabs SSH handler for one connection.
// It blocks until the player quits so the SSH session stays open.
func (h *host) handleSession(s gossh.Session) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}
	if !h.join() {
		fmt.Fprintln(s, "Server full, try again later.")
		return
	}
	defer h.leave()

	name := sanitizeName(s.User())
	term := sessionTerm(s.Environ())

	// TERM must be set in the process environment before NewTerminfoScreenFromTty.
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

	log.Printf("player %q joined from %s (TERM=%s)", name, s.RemoteAddr(), term)
	g := game.New(screen, h.cfg, game.Options{Progress: h.progress})
	g.Run()
	stats := g.Session().Stats()
	log.Printf("player %q left: score %d, merges %d", name, stats.Score, stats.Merges)
}

// termMu protects os.Setenv("TERM") around screen creation, since
// connections set up their screens concurrently.
var termMu sync.Mutex

// defaultTerm is used when the client's TERM is missing or not allowed.
const defaultTerm = "xterm-256color"

// allowedTerms lists the terminal types the server trusts to look up in
// terminfo. Anything else falls back to defaultTerm.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
	"alacritty":             true,
}

// sessionTerm picks TERM from the client environment.
func sessionTerm(environ []string) string {
	for _, env := range environ {
		if term, ok := strings.CutPrefix(env, "TERM="); ok {
			if allowedTerms[term] {
				return term
			}
			return defaultTerm
		}
	}
	return defaultTerm
}

// maxNameBytes bounds a player name in log lines.
const maxNameBytes = 16

// sanitizeName strips control characters from an SSH user name and cuts it
// to maxNameBytes without splitting a rune.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ─── host key ───────────────────────────────────────────────────────────────

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string) gossh.Signer {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Printf("Loaded host key from %s", path)
			return signer
		}
	}

	log.Printf("Generating new ed25519 host key → %s", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Fatalf("generate host key: %v", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		log.Fatalf("create signer: %v", err)
	}
	// Persist for next run (non-fatal if it fails).
	if pemBlock, err := xssh.MarshalPrivateKey(key, "emoji-merge server"); err == nil {
		_ = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0600)
	}
	return signer
}
