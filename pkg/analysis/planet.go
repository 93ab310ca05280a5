package analysis

import (
	"fmt"
	"math"

	"github.com/exotools/rvdetect/internal/types"
)

// Physical constants (SI except where noted)
const (
	gravitationalConstant = 6.674e-11 // m^3 kg^-1 s^-2
	solarMassKg           = 1.989e30
	earthMassKg           = 5.972e24
	earthMassesPerJupiter = 317.8
	astronomicalUnitM     = 1.496e11
	solarTemperatureK     = 5778
	solarRadiusM          = 6.96e8
	assumedAlbedo         = 0.3
	secondsPerDay         = 86400
)

// EstimatePlanetProperties converts a fitted radial velocity amplitude
// (m/s) and orbital period (days) into physical companion properties for a
// host of the given stellar mass (solar masses), assuming an edge-on orbit
// (sin i = 1). The equilibrium temperature assumes a Sun-like host and a
// fixed albedo and is an order-of-magnitude estimate only.
//
// Pure function of its inputs: period and stellarMass must be finite and
// positive; K must be finite and non-negative (zero K yields zero mass).
func EstimatePlanetProperties(K, period, stellarMass float64) (*types.PlanetEstimate, error) {
	if !(period > 0) || math.IsInf(period, 0) {
		return nil, fmt.Errorf("%w: period=%g", ErrInvalidEstimateInput, period)
	}
	if !(stellarMass > 0) || math.IsInf(stellarMass, 0) {
		return nil, fmt.Errorf("%w: stellar_mass=%g", ErrInvalidEstimateInput, stellarMass)
	}
	if K < 0 || math.IsNaN(K) || math.IsInf(K, 0) {
		return nil, fmt.Errorf("%w: K=%g", ErrInvalidEstimateInput, K)
	}

	periodS := period * secondsPerDay
	starKg := stellarMass * solarMassKg

	// Mp*sin(i) ~= K * (P/2*pi*G)^(1/3) * M_star^(2/3)
	factor := math.Cbrt(periodS / (2 * math.Pi * gravitationalConstant))
	minMassKg := K * factor * math.Pow(starKg, 2.0/3.0)
	minMassEarth := minMassKg / earthMassKg

	// Kepler's third law: a^3 = G*M_star*P^2 / 4*pi^2
	semiMajorM := math.Cbrt(gravitationalConstant * starKg * periodS * periodS / (4 * math.Pi * math.Pi))

	// Equilibrium temperature for a circular orbit around a Sun-like star
	equilibriumK := solarTemperatureK *
		math.Sqrt(solarRadiusM/(2*semiMajorM)) *
		math.Pow(1-assumedAlbedo, 0.25)

	return &types.PlanetEstimate{
		MinimumMassEarth:   minMassEarth,
		MinimumMassJupiter: minMassEarth / earthMassesPerJupiter,
		SemiMajorAxisAU:    semiMajorM / astronomicalUnitM,
		EquilibriumTempK:   equilibriumK,
		OrbitalPeriodDays:  period,
		RVAmplitudeMS:      K,
		StellarMassSolar:   stellarMass,
		InclinationDeg:     90,
	}, nil
}
