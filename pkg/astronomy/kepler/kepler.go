package kepler

import "math"

// seriesEccentricityLimit bounds the small-eccentricity series solution.
// Above it the first-order expansion of Kepler's equation is no longer a
// good approximation and Newton-Raphson iteration is used instead.
const seriesEccentricityLimit = 0.1

// MeanAnomaly returns the mean anomaly at time t (days) for an orbit with
// period P (days) and periastron passage at t=0.
func MeanAnomaly(t, period float64) float64 {
	return 2 * math.Pi * t / period
}

// EccentricAnomaly solves Kepler's equation M = E - e*sin(E) for E.
// For small eccentricities the first-order series E ≈ M + e*sin(M) is used;
// otherwise Newton-Raphson iteration.
func EccentricAnomaly(M, e float64) float64 {
	if e < seriesEccentricityLimit {
		return M + e*math.Sin(M)
	}
	return solveNewton(M, e)
}

// solveNewton solves Kepler's equation by Newton-Raphson iteration
func solveNewton(M, e float64) float64 {
	E := M
	if e > 0.8 {
		E = math.Pi // better initial guess for high eccentricity
	}

	const tolerance = 1e-10
	const maxIterations = 50

	for i := 0; i < maxIterations; i++ {
		f := E - e*math.Sin(E) - M
		fp := 1 - e*math.Cos(E)

		deltaE := f / fp
		E -= deltaE

		if math.Abs(deltaE) < tolerance {
			break
		}
	}

	return E
}

// TrueAnomaly converts an eccentric anomaly to the true anomaly
func TrueAnomaly(E, e float64) float64 {
	return 2 * math.Atan2(
		math.Sqrt(1+e)*math.Sin(E/2),
		math.Sqrt(1-e)*math.Cos(E/2),
	)
}

// RadialVelocity returns the Keplerian radial velocity contribution
// K*(cos(nu+omega) + e*cos(omega)) for true anomaly nu and argument of
// periastron omega.
func RadialVelocity(K, nu, omega, e float64) float64 {
	return K * (math.Cos(nu+omega) + e*math.Cos(omega))
}

// WrapPhase wraps an angle to (-pi, pi]
func WrapPhase(theta float64) float64 {
	wrapped := math.Mod(theta+math.Pi, 2*math.Pi)
	if wrapped <= 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped - math.Pi
}
