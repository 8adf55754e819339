package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RunLog records statistics gathered during one session.
type RunLog struct {
	Score        int           `json:"score"`
	HiScore      int           `json:"hiScore"`
	HighestLevel int           `json:"highestLevel"`
	Drops        int           `json:"drops"`
	Merges       int           `json:"merges"`
	MegaMerges   int           `json:"megaMerges"`
	Discovered   []int         `json:"discovered"`
	Duration     time.Duration `json:"durationNs"`
	EndedAt      time.Time     `json:"endedAt"`
}

// RunLogFile is the name of the append-only run log inside the data dir.
const RunLogFile = "runs.jsonl"

// AppendRun appends the finished session as a single JSON line to
// runs.jsonl in dir.
func AppendRun(dir string, run RunLog) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, RunLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append run: %w", err)
	}
	return nil
}
