package analysis

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/exotools/rvdetect/internal/types"
)

// BatchItem is a single named observation series queued for analysis
type BatchItem struct {
	Name        string
	Series      *types.ObservationSeries
	StellarMass float64
}

// BatchResult pairs an item name with its analysis outcome. Either Result
// or Error is set, never both.
type BatchResult struct {
	Name   string                `json:"name"`
	Result *types.AnalysisResult `json:"result,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// AnalyzeBatch runs the full pipeline over independent observation series
// concurrently, bounded by the configured worker count. Each item reads
// only its own input and writes only its own slot, so no locking beyond
// the worker semaphore is needed. Results are returned in input order.
func (m *Manager) AnalyzeBatch(items []BatchItem) []BatchResult {
	results := make([]BatchResult, len(items))

	sem := make(chan struct{}, m.cfg.Workers)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(i int, item BatchItem) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i].Name = item.Name
			result, err := m.FullAnalysis(item.Series, item.StellarMass)
			if err != nil {
				results[i].Error = err.Error()
				return
			}
			results[i].Result = result
		}(i, item)
	}
	wg.Wait()

	log.Info().Int("items", len(items)).Int("workers", m.cfg.Workers).Msg("batch analysis completed")
	return results
}
