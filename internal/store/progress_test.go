package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"emoji-merge/assets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenKV struct{}

var errBroken = errors.New("disk on fire")

func (brokenKV) Get(context.Context, string) (string, error) { return "", errBroken }
func (brokenKV) Set(context.Context, string, string) error   { return errBroken }
func (brokenKV) Close() error                                { return nil }

func TestProgressDefaults(t *testing.T) {
	p := NewProgress(NewMemory())
	assert.Equal(t, 0, p.HiScore())
	assert.Empty(t, p.Gallery())
}

func TestProgressRoundTrip(t *testing.T) {
	kv := NewMemory()
	p := NewProgress(kv)

	p.SetHiScore(1234)
	p.SetGallery([]int{5, 1, 3, 1})

	assert.Equal(t, 1234, p.HiScore())
	assert.Equal(t, []int{1, 3, 5}, p.Gallery())

	raw, err := kv.Get(context.Background(), KeyDiscoveredLevels)
	require.NoError(t, err)
	assert.Equal(t, "[1,3,5]", raw)
	raw, err = kv.Get(context.Background(), KeyHiScore)
	require.NoError(t, err)
	assert.Equal(t, "1234", raw)
}

func TestProgressMalformedValuesFallBack(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	require.NoError(t, kv.Set(ctx, KeyHiScore, "lots"))
	require.NoError(t, kv.Set(ctx, KeyDiscoveredLevels, "{"))

	p := NewProgress(kv)
	assert.Equal(t, 0, p.HiScore())
	assert.Empty(t, p.Gallery())
}

func TestProgressDropsUnknownLevels(t *testing.T) {
	kv := NewMemory()
	require.NoError(t, kv.Set(context.Background(), KeyDiscoveredLevels, "[0,2,12,2,11]"))
	assert.Equal(t, []int{2, 11}, NewProgress(kv).Gallery())
}

func TestProgressSurvivesBrokenStore(t *testing.T) {
	p := NewProgress(brokenKV{})
	assert.NotPanics(t, func() {
		p.SetHiScore(10)
		p.SetGallery([]int{1})
	})
	assert.Equal(t, 0, p.HiScore())
	assert.Empty(t, p.Gallery())
}

func TestNilProgressIsInert(t *testing.T) {
	var p *Progress
	p.SetHiScore(5)
	assert.Equal(t, 0, p.HiScore())
}

func TestSetHiScoreOnlyRaises(t *testing.T) {
	p := NewProgress(NewMemory())

	assert.Equal(t, 21, p.SetHiScore(21))
	assert.Equal(t, 21, p.SetHiScore(3), "a lower score must not replace the record")
	assert.Equal(t, 21, p.HiScore())
	assert.Equal(t, 40, p.SetHiScore(40))
	assert.Equal(t, 40, p.HiScore())
}

func TestSetGalleryMergesWithStored(t *testing.T) {
	kv := NewMemory()
	first := NewProgress(kv)
	second := NewProgress(kv)

	assert.Equal(t, []int{6}, first.SetGallery([]int{6}))
	assert.Equal(t, []int{2, 6}, second.SetGallery([]int{2}))
	assert.Equal(t, []int{2, 6}, first.Gallery())
	assert.Equal(t, []int{2, 6}, first.SetGallery([]int{0, 13}), "invalid levels are ignored")
}

func TestProgressConcurrentRaises(t *testing.T) {
	p := NewProgress(NewMemory())
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			p.SetHiScore(score)
			p.SetGallery([]int{score%assets.MaxLevel + 1})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, p.HiScore())
	assert.Len(t, p.Gallery(), assets.MaxLevel)
}
