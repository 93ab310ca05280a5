package analysis

import (
	"math"
	"sort"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"github.com/exotools/rvdetect/internal/types"
)

// Fallback values reported when the periodogram cannot be computed.
// Detection failure is a normal, non-fatal outcome.
const (
	fallbackPeriod    = 100.0
	fallbackPower     = 0.1
	fallbackFAP       = 0.99
	nyquistFraction   = 0.1 // conservative fraction of Nyquist to avoid aliasing
	longestPeriodFrac = 0.5 // lowest frequency as fraction of 1/span
)

// DetectPeriodicity computes a Lomb-Scargle periodogram over a log-spaced
// frequency grid derived from the series span and median cadence, and
// reports the best period candidate with a rank-based false alarm heuristic.
// Any numeric degeneracy yields the fixed low-confidence fallback result.
func (m *Manager) DetectPeriodicity(series *types.ObservationSeries) *types.PeriodogramResult {
	if err := series.Validate(); err != nil {
		log.Warn().Err(err).Msg("periodogram: invalid series, returning fallback")
		return fallbackPeriodogram()
	}

	freqs, ok := m.frequencyGrid(series)
	if !ok {
		log.Warn().Msg("periodogram: degenerate frequency grid, returning fallback")
		return fallbackPeriodogram()
	}

	power, ok := lombScargle(series.Time, series.RV, freqs)
	if !ok {
		log.Warn().Msg("periodogram: degenerate power spectrum, returning fallback")
		return fallbackPeriodogram()
	}

	periods := make([]float64, len(freqs))
	for i, f := range freqs {
		periods[i] = 1.0 / f
	}

	peakIdx := 0
	for i, p := range power {
		if p > power[peakIdx] {
			peakIdx = i
		}
	}
	bestPeriod := periods[peakIdx]
	peakPower := power[peakIdx]

	// Rank-based heuristic: fraction of grid powers strictly below the
	// peak. Not a calibrated false alarm probability.
	below := 0
	for _, p := range power {
		if p < peakPower {
			below++
		}
	}
	fap := float64(below) / float64(len(power))

	significant := peakPower > m.cfg.PeakPowerThreshold || fap < m.cfg.FAPThreshold

	periodsDown, powerDown := Downsample(periods, power, m.cfg.DownsampleTarget)

	log.Debug().
		Float64("best_period", bestPeriod).
		Float64("peak_power", peakPower).
		Float64("fap", fap).
		Bool("significant", significant).
		Msg("periodogram computed")

	return &types.PeriodogramResult{
		Periods:               periodsDown,
		Power:                 powerDown,
		BestPeriod:            bestPeriod,
		PeakPower:             peakPower,
		FalseAlarmProbability: fap,
		SignificantDetection:  significant,
	}
}

// frequencyGrid builds the log-spaced trial frequency grid between
// 0.5/span and a conservative fraction of the Nyquist frequency derived
// from the median sampling cadence.
func (m *Manager) frequencyGrid(series *types.ObservationSeries) ([]float64, bool) {
	span := series.Span()
	dt := medianCadence(series.Time)
	if !(span > 0) || !(dt > 0) {
		return nil, false
	}

	freqMin := longestPeriodFrac / span
	freqMax := nyquistFraction / dt
	if !(freqMax > freqMin) {
		return nil, false
	}

	n := m.cfg.GridPoints
	logMin := math.Log10(freqMin)
	logMax := math.Log10(freqMax)
	freqs := make([]float64, n)
	for i := 0; i < n; i++ {
		exp := logMin + (logMax-logMin)*float64(i)/float64(n-1)
		freqs[i] = math.Pow(10, exp)
	}
	return freqs, true
}

// medianCadence returns the median of the sorted consecutive time differences
func medianCadence(times []float64) float64 {
	if len(times) < 2 {
		return 0
	}
	sorted := make([]float64, len(times))
	copy(sorted, times)
	sort.Float64s(sorted)

	diffs := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		diffs = append(diffs, sorted[i]-sorted[i-1])
	}
	sort.Float64s(diffs)

	return stat.Quantile(0.5, stat.Empirical, diffs, nil)
}

// lombScargle evaluates the classical Lomb-Scargle statistic at each trial
// frequency, normalized by the total variance of the mean-subtracted series
// so a pure sinusoid peaks near 1 while noise stays low. Returns false when
// the spectrum is degenerate (zero variance or non-finite power).
func lombScargle(times, values, freqs []float64) ([]float64, bool) {
	n := len(times)
	mean := stat.Mean(values, nil)

	centered := make([]float64, n)
	ssTot := 0.0
	for i, v := range values {
		centered[i] = v - mean
		ssTot += centered[i] * centered[i]
	}
	if !(ssTot > 0) {
		return nil, false
	}

	power := make([]float64, len(freqs))
	for k, f := range freqs {
		omega := 2 * math.Pi * f

		// Time shift tau makes the statistic invariant to time origin
		var s2, c2 float64
		for _, t := range times {
			s2 += math.Sin(2 * omega * t)
			c2 += math.Cos(2 * omega * t)
		}
		tau := math.Atan2(s2, c2) / (2 * omega)

		var cy, sy, cc, ss float64
		for i, t := range times {
			ct := math.Cos(omega * (t - tau))
			st := math.Sin(omega * (t - tau))
			cy += centered[i] * ct
			sy += centered[i] * st
			cc += ct * ct
			ss += st * st
		}

		var p float64
		if cc > 0 {
			p += cy * cy / cc
		}
		if ss > 0 {
			p += sy * sy / ss
		}
		power[k] = p / ssTot
		if math.IsNaN(power[k]) || math.IsInf(power[k], 0) {
			return nil, false
		}
	}
	return power, true
}

// fallbackPeriodogram is the documented low-confidence result returned on
// any numeric failure
func fallbackPeriodogram() *types.PeriodogramResult {
	return &types.PeriodogramResult{
		Periods:               []float64{fallbackPeriod},
		Power:                 []float64{fallbackPower},
		BestPeriod:            fallbackPeriod,
		PeakPower:             fallbackPower,
		FalseAlarmProbability: fallbackFAP,
		SignificantDetection:  false,
	}
}
