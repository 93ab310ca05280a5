package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exotools/rvdetect/internal/types"
)

func TestDetectPeriodicity_RecoversInjectedPeriod(t *testing.T) {
	m := NewManager(DefaultConfig())

	const trials = 20
	recovered := 0
	for i := 0; i < trials; i++ {
		dataset := GenerateSyntheticSeries(SyntheticOptions{
			NumObservations: 150,
			HasPlanet:       true,
			Seed:            uint64(100 + i),
		})

		result := m.DetectPeriodicity(dataset.Series())
		require.True(t, result.SignificantDetection, "trial %d: injected signal should be significant", i)

		relErr := math.Abs(result.BestPeriod-dataset.Parameters.Period) / dataset.Parameters.Period
		if relErr < 0.05 {
			recovered++
		}
	}

	// At least 90% of trials must recover the period within 5%
	assert.GreaterOrEqual(t, recovered, int(0.9*trials))
}

func TestDetectPeriodicity_NoPlanetNotSignificant(t *testing.T) {
	m := NewManager(DefaultConfig())

	const trials = 20
	quiet := 0
	for i := 0; i < trials; i++ {
		dataset := GenerateSyntheticSeries(SyntheticOptions{
			NumObservations: 100,
			HasPlanet:       false,
			Seed:            uint64(500 + i),
		})

		result := m.DetectPeriodicity(dataset.Series())
		if !result.SignificantDetection {
			quiet++
		}
	}

	assert.GreaterOrEqual(t, quiet, int(0.9*trials))
}

func TestDetectPeriodicity_PeakPowerBounded(t *testing.T) {
	m := NewManager(DefaultConfig())
	dataset := GenerateSyntheticSeries(SyntheticOptions{
		NumObservations: 150,
		HasPlanet:       true,
		Seed:            7,
	})

	result := m.DetectPeriodicity(dataset.Series())

	assert.Greater(t, result.PeakPower, 0.0)
	assert.LessOrEqual(t, result.PeakPower, 1.05, "normalized peak power stays near [0, 1]")
	assert.GreaterOrEqual(t, result.FalseAlarmProbability, 0.0)
	assert.LessOrEqual(t, result.FalseAlarmProbability, 1.0)
}

func TestDetectPeriodicity_OutputDownsampled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DownsampleTarget = 50
	m := NewManager(cfg)

	dataset := GenerateSyntheticSeries(SyntheticOptions{
		NumObservations: 120,
		HasPlanet:       true,
		Seed:            11,
	})

	result := m.DetectPeriodicity(dataset.Series())

	assert.Len(t, result.Periods, 50)
	assert.Len(t, result.Power, 50)
}

func TestDetectPeriodicity_DegenerateSeriesFallback(t *testing.T) {
	m := NewManager(DefaultConfig())

	// All observations at the same instant: degenerate span
	series := &types.ObservationSeries{
		Time:    []float64{5, 5, 5, 5},
		RV:      []float64{1, 2, 3, 4},
		RVError: []float64{1, 1, 1, 1},
	}

	result := m.DetectPeriodicity(series)

	assert.Equal(t, fallbackPeriod, result.BestPeriod)
	assert.Equal(t, fallbackPower, result.PeakPower)
	assert.Equal(t, fallbackFAP, result.FalseAlarmProbability)
	assert.False(t, result.SignificantDetection)
	assert.Equal(t, []float64{fallbackPeriod}, result.Periods)
}

func TestDetectPeriodicity_ConstantSeriesFallback(t *testing.T) {
	m := NewManager(DefaultConfig())

	// Zero variance: the power spectrum cannot be normalized
	n := 50
	series := &types.ObservationSeries{
		Time:    make([]float64, n),
		RV:      make([]float64, n),
		RVError: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		series.Time[i] = float64(i)
		series.RV[i] = 3.0
		series.RVError[i] = 1.0
	}

	result := m.DetectPeriodicity(series)

	assert.False(t, result.SignificantDetection)
	assert.Equal(t, fallbackPeriod, result.BestPeriod)
}

func TestMedianCadence(t *testing.T) {
	assert.Equal(t, 1.0, medianCadence([]float64{0, 1, 2, 3, 4}))
	// Unsorted input is sorted before differencing
	assert.Equal(t, 1.0, medianCadence([]float64{3, 0, 4, 1, 2}))
	assert.Equal(t, 0.0, medianCadence([]float64{1}))
}
