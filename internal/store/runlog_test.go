package store

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendRunCreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	run := RunLog{
		Score:        321,
		HiScore:      900,
		HighestLevel: 7,
		Drops:        40,
		Merges:       25,
		Discovered:   []int{1, 2, 3, 4, 5, 6, 7},
		Duration:     3 * time.Minute,
		EndedAt:      time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, AppendRun(dir, run))

	data, err := os.ReadFile(filepath.Join(dir, RunLogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"highestLevel":7`)
	assert.Equal(t, byte('\n'), data[len(data)-1])

	var got RunLog
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, run.Score, got.Score)
	assert.Equal(t, run.Duration, got.Duration)
	assert.True(t, run.EndedAt.Equal(got.EndedAt))
}

func TestAppendRunAppendsMultiple(t *testing.T) {
	dir := t.TempDir()
	for i := range 3 {
		require.NoError(t, AppendRun(dir, RunLog{Score: i + 1}))
	}

	f, err := os.Open(filepath.Join(dir, RunLogFile))
	require.NoError(t, err)
	defer f.Close()

	var scores []int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var r RunLog
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		scores = append(scores, r.Score)
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, []int{1, 2, 3}, scores)
}
