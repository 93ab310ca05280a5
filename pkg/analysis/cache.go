package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/exotools/rvdetect/internal/types"
)

// CacheSnapshot is the advisory on-disk record of the most recent analysis.
// It is written best-effort and never read back by the analysis path itself.
type CacheSnapshot struct {
	Timestamp string                `json:"timestamp"`
	Results   *types.AnalysisResult `json:"results"`
}

// SaveSnapshot writes a timestamped snapshot of the result to the configured
// cache path. Caching is advisory only: failures are logged and swallowed,
// never surfaced, and concurrent writers race with last-write-wins.
func (m *Manager) SaveSnapshot(result *types.AnalysisResult) {
	if m.cfg.CachePath == "" {
		return
	}

	snapshot := CacheSnapshot{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Results:   result,
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		log.Debug().Err(err).Msg("cache: marshal failed, skipping snapshot")
		return
	}
	if err := os.MkdirAll(filepath.Dir(m.cfg.CachePath), 0o755); err != nil {
		log.Debug().Err(err).Msg("cache: directory creation failed, skipping snapshot")
		return
	}
	if err := os.WriteFile(m.cfg.CachePath, data, 0o644); err != nil {
		log.Debug().Err(err).Str("path", m.cfg.CachePath).Msg("cache: write failed, skipping snapshot")
	}
}

// LoadSnapshot reads a previously written cache snapshot for out-of-band
// inspection. Unlike writes, callers asking for a snapshot do get an error
// when none is readable.
func LoadSnapshot(path string) (*CacheSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache snapshot: %w", err)
	}
	var snapshot CacheSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode cache snapshot: %w", err)
	}
	return &snapshot, nil
}
