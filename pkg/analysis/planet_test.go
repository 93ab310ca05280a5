package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimatePlanetProperties_JupiterAnalog(t *testing.T) {
	// K = 80 m/s at P = 1 yr around 1 M_sun corresponds to roughly 2.8
	// Jupiter masses at 1 AU
	est, err := EstimatePlanetProperties(80, 365.25, 1.0)
	require.NoError(t, err)

	assert.InDelta(t, 2.8, est.MinimumMassJupiter, 0.2)
	assert.InDelta(t, 1.0, est.SemiMajorAxisAU, 0.01)
	// Earth-like orbit around a Sun-like star: T_eq ~ 255 K
	assert.InDelta(t, 255, est.EquilibriumTempK, 10)
	assert.Equal(t, 90.0, est.InclinationDeg)
	assert.Equal(t, 80.0, est.RVAmplitudeMS)
	assert.Equal(t, 365.25, est.OrbitalPeriodDays)
}

func TestEstimatePlanetProperties_MassScalesLinearlyInK(t *testing.T) {
	base, err := EstimatePlanetProperties(40, 200, 1.2)
	require.NoError(t, err)
	doubled, err := EstimatePlanetProperties(80, 200, 1.2)
	require.NoError(t, err)

	assert.InEpsilon(t, 2*base.MinimumMassEarth, doubled.MinimumMassEarth, 1e-12)
	assert.InEpsilon(t, 2*base.MinimumMassJupiter, doubled.MinimumMassJupiter, 1e-12)
	// Semi-major axis is independent of K
	assert.Equal(t, base.SemiMajorAxisAU, doubled.SemiMajorAxisAU)
}

func TestEstimatePlanetProperties_ZeroAmplitude(t *testing.T) {
	est, err := EstimatePlanetProperties(0, 365.25, 1.0)
	require.NoError(t, err)

	assert.Equal(t, 0.0, est.MinimumMassEarth)
	assert.Equal(t, 0.0, est.MinimumMassJupiter)
	assert.Greater(t, est.SemiMajorAxisAU, 0.0)
}

func TestEstimatePlanetProperties_DomainErrors(t *testing.T) {
	cases := []struct {
		name               string
		k, period, stellar float64
	}{
		{"zero period", 50, 0, 1},
		{"negative period", 50, -10, 1},
		{"infinite period", 50, math.Inf(1), 1},
		{"zero stellar mass", 50, 365, 0},
		{"negative stellar mass", 50, 365, -1},
		{"NaN stellar mass", 50, 365, math.NaN()},
		{"negative K", -1, 365, 1},
		{"NaN K", math.NaN(), 365, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EstimatePlanetProperties(tc.k, tc.period, tc.stellar)
			assert.ErrorIs(t, err, ErrInvalidEstimateInput)
		})
	}
}

func TestEstimatePlanetProperties_LongerPeriodWiderOrbit(t *testing.T) {
	inner, err := EstimatePlanetProperties(30, 100, 1.0)
	require.NoError(t, err)
	outer, err := EstimatePlanetProperties(30, 1000, 1.0)
	require.NoError(t, err)

	assert.Greater(t, outer.SemiMajorAxisAU, inner.SemiMajorAxisAU)
	assert.Less(t, outer.EquilibriumTempK, inner.EquilibriumTempK)
}
