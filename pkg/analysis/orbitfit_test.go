package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exotools/rvdetect/internal/types"
)

// noiselessSinusoid builds a pure circular-orbit RV series with known
// amplitude, period, phase and systemic velocity
func noiselessSinusoid(n int, K, period, phase, gamma float64) *types.ObservationSeries {
	series := &types.ObservationSeries{
		Time:    make([]float64, n),
		RV:      make([]float64, n),
		RVError: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		t := float64(i) * period / float64(n) * 3.7 // several cycles, uneven phase coverage
		series.Time[i] = t
		series.RV[i] = K*math.Cos(2*math.Pi*t/period+phase) + gamma
		series.RVError[i] = 1.0
	}
	return series
}

func TestFitKeplerianOrbit_RecoversAmplitude(t *testing.T) {
	m := NewManager(DefaultConfig())
	const K, period, gamma = 55.0, 365.25, 12.0

	series := noiselessSinusoid(100, K, period, 0, gamma)
	fit, err := m.FitKeplerianOrbit(series, period)
	require.NoError(t, err)

	assert.InEpsilon(t, K, fit.KAmplitude, 0.01, "K recovered within 1%")
	assert.InDelta(t, gamma, fit.SystemicVelocity, 0.5)
	assert.Greater(t, fit.RSquared, 0.99)
	assert.Less(t, fit.RMS, 1.0)
	assert.Equal(t, period, fit.Period)
	assert.Len(t, fit.RVModel, series.Len())
	assert.Len(t, fit.Residuals, series.Len())
}

func TestFitKeplerianOrbit_NonZeroPhase(t *testing.T) {
	m := NewManager(DefaultConfig())
	const K, period = 55.0, 100.0

	// The reconstructed model must match the data regardless of where the
	// sinusoid's phase falls, not just at phase 0 or pi.
	for _, phase := range []float64{math.Pi / 2, -math.Pi / 2, 1.0, 2.5} {
		series := noiselessSinusoid(100, K, period, phase, 0)
		fit, err := m.FitKeplerianOrbit(series, period)
		require.NoError(t, err, "phase=%g", phase)

		assert.InEpsilon(t, K, fit.KAmplitude, 0.01, "phase=%g", phase)
		assert.Greater(t, fit.RSquared, 0.99, "phase=%g", phase)
		assert.Less(t, fit.RMS, 1.0, "phase=%g", phase)
		assert.Less(t, fit.ReducedChiSq, 1e-6, "phase=%g", phase)
		for i, rv := range series.RV {
			assert.InDelta(t, rv, fit.RVModel[i], 1e-6)
		}
	}
}

func TestFitKeplerianOrbit_PhaseOffsetWrapped(t *testing.T) {
	m := NewManager(DefaultConfig())
	series := noiselessSinusoid(80, 30, 100, 1.2, 0)

	fit, err := m.FitKeplerianOrbit(series, 100)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, fit.PhaseOffset, -math.Pi)
	assert.LessOrEqual(t, fit.PhaseOffset, math.Pi)
}

func TestFitKeplerianOrbit_TooFewPoints(t *testing.T) {
	m := NewManager(DefaultConfig())

	// Reduced chi-squared is undefined for N <= 3 and must be rejected
	series := &types.ObservationSeries{
		Time:    []float64{0, 1, 2},
		RV:      []float64{1, 2, 3},
		RVError: []float64{1, 1, 1},
	}

	_, err := m.FitKeplerianOrbit(series, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestFitKeplerianOrbit_DegeneratePhaseCoverage(t *testing.T) {
	m := NewManager(DefaultConfig())

	// All samples at integer multiples of the period share one phase: the
	// cosine and constant columns are collinear and the system is singular.
	const period = 10.0
	series := &types.ObservationSeries{
		Time:    []float64{0, period, 2 * period, 3 * period, 4 * period},
		RV:      []float64{1, 1.1, 0.9, 1.05, 0.95},
		RVError: []float64{1, 1, 1, 1, 1},
	}

	_, err := m.FitKeplerianOrbit(series, period)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSingularFit)
}

func TestFitKeplerianOrbit_InvalidPeriod(t *testing.T) {
	m := NewManager(DefaultConfig())
	series := noiselessSinusoid(50, 10, 100, 0, 0)

	for _, period := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		_, err := m.FitKeplerianOrbit(series, period)
		assert.ErrorIs(t, err, ErrNonPositivePeriod, "period=%v", period)
	}
}

func TestFitKeplerianOrbit_ZeroVarianceRSquared(t *testing.T) {
	m := NewManager(DefaultConfig())

	// Constant RV: total variance is zero, R^2 falls back to 0
	n := 20
	series := &types.ObservationSeries{
		Time:    make([]float64, n),
		RV:      make([]float64, n),
		RVError: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		series.Time[i] = float64(i) * 0.37
		series.RV[i] = 5.0
		series.RVError[i] = 1.0
	}

	fit, err := m.FitKeplerianOrbit(series, 7.3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fit.RSquared)
	assert.InDelta(t, 0.0, fit.KAmplitude, 1e-9)
	assert.InDelta(t, 5.0, fit.SystemicVelocity, 1e-9)
}

func TestFitKeplerianOrbit_ChiSquaredConsistency(t *testing.T) {
	m := NewManager(DefaultConfig())
	series := noiselessSinusoid(60, 40, 200, 0.7, -3)

	fit, err := m.FitKeplerianOrbit(series, 200)
	require.NoError(t, err)

	assert.InDelta(t, fit.ChiSquared/float64(series.Len()-3), fit.ReducedChiSq, 1e-12)
	// Noiseless data fits essentially exactly
	assert.Less(t, fit.ReducedChiSq, 1e-6)
}
