// emoji-merge is a terminal merge game: drop emoji pieces into a box, match
// two of a kind to evolve them, and keep the pile below the line.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"emoji-merge/internal/audio"
	"emoji-merge/internal/config"
	"emoji-merge/internal/game"
	"emoji-merge/internal/store"

	"github.com/gdamore/tcell/v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The screen owns stdout, so logs go to a file.
	if f, err := openLogFile(); err == nil {
		log.SetOutput(f)
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	kv := store.OpenOrMemory(cfg.Store, cfg.DataDir)
	defer kv.Close()

	opts := game.Options{Progress: store.NewProgress(kv)}
	if cfg.Audio {
		cues := audio.NewCues(1)
		if err := cues.Init(); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer cues.Close()
			opts.Listener = cues
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	g := game.New(screen, cfg, opts)
	g.Run()
	stats := g.Session().Stats()
	log.Printf("session over: score %d, best %d", stats.Score, stats.HiScore)
	return nil
}

// openLogFile opens $XDG_STATE_HOME/emoji-merge/emoji-merge.log for append.
func openLogFile() (*os.File, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".local", "state")
	}
	dir = filepath.Join(dir, "emoji-merge")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "emoji-merge.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
