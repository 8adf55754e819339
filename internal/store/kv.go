// Package store persists player progress across sessions: the high score,
// the lifetime gallery of discovered levels, and a log of finished runs.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned by KV.Get for a key that was never set.
var ErrNotFound = errors.New("store: key not found")

// KV is a string key-value store. Implementations are safe for concurrent
// use; the SSH host shares one store between all connections.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Backend kinds accepted by Open.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Open returns the backend named by kind, rooted in dir.
func Open(kind, dir string) (KV, error) {
	switch kind {
	case KindMemory:
		return NewMemory(), nil
	case KindFile, "":
		return OpenFile(filepath.Join(dir, "progress.json"))
	case KindSQLite:
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return OpenSQLite(filepath.Join(dir, "progress.db"))
	default:
		return nil, fmt.Errorf("unknown store kind %q", kind)
	}
}

// OpenOrMemory is Open for front-ends: when the backend cannot be opened
// it logs the reason and returns an in-memory store, so progress falls
// back to defaults instead of stopping the game.
func OpenOrMemory(kind, dir string) KV {
	kv, err := Open(kind, dir)
	if err != nil {
		log.Printf("store: %v; progress will not be saved", err)
		return NewMemory()
	}
	return kv
}

// DataDir returns the directory where progress and run logs are stored.
// Follows the XDG Base Directory layout: $XDG_DATA_HOME/emoji-merge,
// defaulting to ~/.local/share/emoji-merge.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "emoji-merge"), nil
}

// Memory is an in-process KV that forgets everything on exit.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Close() error { return nil }
