package analysis

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/exotools/rvdetect/internal/types"
	"github.com/exotools/rvdetect/pkg/astronomy/kepler"
)

// FitKeplerianOrbit fits a circular-orbit radial velocity model
// RV = K*cos(2*pi*phase + phi) + gamma at a fixed candidate period by
// weighted least squares, with weights 1/uncertainty^2. The period itself
// is not fitted. Degenerate phase coverage surfaces as ErrSingularFit and
// fewer than four observations as ErrInsufficientData, since the reduced
// chi-squared uses N-3 degrees of freedom.
func (m *Manager) FitKeplerianOrbit(series *types.ObservationSeries, period float64) (*types.OrbitFit, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if !(period > 0) || math.IsInf(period, 0) {
		return nil, fmt.Errorf("%w: period=%g", ErrNonPositivePeriod, period)
	}

	n := series.Len()
	if n <= 3 {
		return nil, fmt.Errorf("%w: need more than 3 observations, got %d", ErrInsufficientData, n)
	}

	phase := make([]float64, n)
	for i, t := range series.Time {
		phase[i] = math.Mod(t, period) / period
	}

	// Design matrix [cos(2*pi*phase), sin(2*pi*phase), 1]
	design := mat.NewDense(n, 3, nil)
	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * phase[i]
		design.Set(i, 0, math.Cos(theta))
		design.Set(i, 1, math.Sin(theta))
		design.Set(i, 2, 1)
		weights[i] = 1.0 / (series.RVError[i] * series.RVError[i])
	}

	w := mat.NewDiagDense(n, weights)
	y := mat.NewVecDense(n, series.RV)

	var xtw mat.Dense
	xtw.Mul(design.T(), w) // 3 x n

	var xtwx mat.Dense
	xtwx.Mul(&xtw, design) // 3 x 3

	var xtwy mat.VecDense
	xtwy.MulVec(&xtw, y)

	var beta mat.VecDense
	if err := beta.SolveVec(&xtwx, &xtwy); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularFit, err)
	}

	a := beta.AtVec(0)
	b := beta.AtVec(1)
	gamma := beta.AtVec(2)

	amplitude := math.Hypot(a, b)
	phaseOffset := kepler.WrapPhase(math.Atan2(b, a))

	// Reconstruct the fitted curve from the solved coefficients directly:
	// a*cos(theta) + b*sin(theta) + gamma. This is the curve the least
	// squares solution actually minimizes against.
	model := make([]float64, n)
	residuals := make([]float64, n)
	chiSq := 0.0
	sumSqRes := 0.0
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * phase[i]
		model[i] = a*math.Cos(theta) + b*math.Sin(theta) + gamma
		residuals[i] = series.RV[i] - model[i]
		norm := residuals[i] / series.RVError[i]
		chiSq += norm * norm
		sumSqRes += residuals[i] * residuals[i]
	}

	rSquared := 0.0
	if stat.Variance(series.RV, nil) > 0 {
		rSquared = stat.RSquaredFrom(model, series.RV, nil)
	}

	fit := &types.OrbitFit{
		KAmplitude:       amplitude,
		PhaseOffset:      phaseOffset,
		SystemicVelocity: gamma,
		Period:           period,
		RVModel:          model,
		Residuals:        residuals,
		ChiSquared:       chiSq,
		ReducedChiSq:     chiSq / float64(n-3),
		RMS:              math.Sqrt(sumSqRes / float64(n)),
		RSquared:         rSquared,
	}

	log.Debug().
		Float64("period", period).
		Float64("K", amplitude).
		Float64("reduced_chi_squared", fit.ReducedChiSq).
		Float64("r_squared", rSquared).
		Msg("orbit fit completed")

	return fit, nil
}
