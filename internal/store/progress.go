package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"slices"
	"strconv"
	"sync"
	"time"

	"emoji-merge/assets"
)

// Keys under which progress is stored.
const (
	KeyHiScore          = "hiScore"
	KeyDiscoveredLevels = "discoveredLevels"
)

const opTimeout = 2 * time.Second

// Progress reads and writes the player's long-lived progress. Storage
// problems never reach the game: reads fall back to defaults and failed
// writes are logged and dropped.
//
// Writes only ever raise the stored values, so sessions sharing one
// Progress cannot undo each other's records.
type Progress struct {
	kv KV
	mu sync.Mutex // serialises read-compare-write updates
}

// NewProgress wraps kv.
func NewProgress(kv KV) *Progress {
	return &Progress{kv: kv}
}

// HiScore returns the best score ever recorded, or 0.
func (p *Progress) HiScore() int {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hiScore()
}

func (p *Progress) hiScore() int {
	raw, ok := p.get(KeyHiScore)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Printf("store: ignoring malformed %s %q", KeyHiScore, raw)
		return 0
	}
	return n
}

// SetHiScore records score if it beats the stored best, and returns the
// best score after the update.
func (p *Progress) SetHiScore(score int) int {
	if p == nil {
		return score
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	best := p.hiScore()
	if score <= best {
		return best
	}
	p.set(KeyHiScore, strconv.Itoa(score))
	return score
}

// Gallery returns every level the player has ever discovered, ascending.
func (p *Progress) Gallery() []int {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gallery()
}

func (p *Progress) gallery() []int {
	raw, ok := p.get(KeyDiscoveredLevels)
	if !ok {
		return nil
	}
	var levels []int
	if err := json.Unmarshal([]byte(raw), &levels); err != nil {
		log.Printf("store: ignoring malformed %s: %v", KeyDiscoveredLevels, err)
		return nil
	}
	levels = slices.DeleteFunc(levels, func(l int) bool { return !assets.ValidLevel(l) })
	slices.Sort(levels)
	return slices.Compact(levels)
}

// SetGallery adds levels to the lifetime gallery and returns the merged
// gallery, ascending. Levels already stored are never dropped.
func (p *Progress) SetGallery(levels []int) []int {
	merged := slices.DeleteFunc(slices.Clone(levels), func(l int) bool { return !assets.ValidLevel(l) })
	if p == nil {
		slices.Sort(merged)
		return slices.Compact(merged)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	stored := p.gallery()
	merged = append(merged, stored...)
	slices.Sort(merged)
	merged = slices.Compact(merged)
	if slices.Equal(merged, stored) {
		return merged
	}
	raw, err := json.Marshal(merged)
	if err != nil {
		log.Printf("store: encode gallery: %v", err)
		return merged
	}
	p.set(KeyDiscoveredLevels, string(raw))
	return merged
}

func (p *Progress) get(key string) (string, bool) {
	if p == nil || p.kv == nil {
		return "", false
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	v, err := p.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("store: read %s: %v", key, err)
		}
		return "", false
	}
	return v, true
}

func (p *Progress) set(key, value string) {
	if p == nil || p.kv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := p.kv.Set(ctx, key, value); err != nil {
		log.Printf("store: write %s: %v", key, err)
	}
}
