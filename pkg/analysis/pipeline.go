package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/exotools/rvdetect/internal/types"
)

// FullAnalysis runs the complete detect -> fit -> estimate pipeline on a
// validated observation series. A non-significant periodogram is a normal
// outcome and returns StatusNoSignificantSignal carrying only the
// periodogram; an orbit fit failure returns StatusAnalysisFailed with the
// periodogram and a message, distinguishable from "no signal". Only input
// validation produces an error.
//
// The pipeline performs a single best-period pass; it never retries with
// alternate periods.
func (m *Manager) FullAnalysis(series *types.ObservationSeries, stellarMass float64) (*types.AnalysisResult, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if series.Len() > m.cfg.MaxObservations {
		return nil, fmt.Errorf("%w: %d observations, limit %d",
			ErrSeriesTooLarge, series.Len(), m.cfg.MaxObservations)
	}
	if !(stellarMass > 0) || math.IsInf(stellarMass, 0) {
		return nil, fmt.Errorf("%w: stellar_mass=%g", types.ErrNonPositiveMass, stellarMass)
	}

	start := time.Now()
	log.Info().Int("observations", series.Len()).Msg("starting radial velocity analysis")

	periodogram := m.DetectPeriodicity(series)

	if !periodogram.SignificantDetection {
		result := &types.AnalysisResult{
			DetectionStatus: types.StatusNoSignificantSignal,
			Periodogram:     periodogram,
			Message:         "No significant periodic signal detected",
		}
		m.SaveSnapshot(result)
		log.Info().Dur("duration", time.Since(start)).Msg("analysis completed: no significant signal")
		return result, nil
	}

	fit, err := m.FitKeplerianOrbit(series, periodogram.BestPeriod)
	if err != nil {
		result := &types.AnalysisResult{
			DetectionStatus: types.StatusAnalysisFailed,
			Periodogram:     periodogram,
			Message:         fmt.Sprintf("orbit fit failed at period %.2f d: %v", periodogram.BestPeriod, err),
		}
		m.SaveSnapshot(result)
		log.Warn().Err(err).Float64("period", periodogram.BestPeriod).Msg("orbit fit failed")
		return result, nil
	}

	properties, err := EstimatePlanetProperties(fit.KAmplitude, periodogram.BestPeriod, stellarMass)
	if err != nil {
		result := &types.AnalysisResult{
			DetectionStatus: types.StatusAnalysisFailed,
			Periodogram:     periodogram,
			OrbitalFit:      fit,
			Message:         fmt.Sprintf("planet property estimate failed: %v", err),
		}
		m.SaveSnapshot(result)
		log.Warn().Err(err).Msg("planet property estimate failed")
		return result, nil
	}

	significance := "moderate"
	if periodogram.FalseAlarmProbability < m.cfg.HighSignificanceFAP {
		significance = "high"
	}
	quality := "poor"
	if fit.ReducedChiSq < m.cfg.GoodFitChiSquared {
		quality = "good"
	}

	result := &types.AnalysisResult{
		DetectionStatus:       types.StatusPlanetDetected,
		DetectionSignificance: significance,
		Periodogram:           periodogram,
		OrbitalFit:            fit,
		PlanetProperties:      properties,
		AnalysisSummary: &types.AnalysisSummary{
			PeriodDays:         periodogram.BestPeriod,
			RVAmplitudeMS:      fit.KAmplitude,
			MinPlanetMassEarth: properties.MinimumMassEarth,
			SemiMajorAxisAU:    properties.SemiMajorAxisAU,
			FitQuality:         quality,
		},
	}
	m.SaveSnapshot(result)

	log.Info().
		Dur("duration", time.Since(start)).
		Float64("period_days", periodogram.BestPeriod).
		Float64("K", fit.KAmplitude).
		Str("significance", significance).
		Str("fit_quality", quality).
		Msg("analysis completed: planet detected")

	return result, nil
}
