package types

import (
	"encoding/json"
	"fmt"
	"math"
)

// DetectionStatus labels the outcome of a full analysis run
type DetectionStatus string

const (
	StatusNoSignificantSignal DetectionStatus = "no_significant_signal"
	StatusPlanetDetected      DetectionStatus = "planet_detected"
	StatusAnalysisFailed      DetectionStatus = "analysis_failed"
)

// ObservationSeries holds a radial velocity time series with per-point
// measurement uncertainties. Times are in days, velocities in m/s.
type ObservationSeries struct {
	Time    []float64 `json:"time"`
	RV      []float64 `json:"rv"`
	RVError []float64 `json:"rv_error"`
}

// Len returns the number of observations
func (s *ObservationSeries) Len() int { return len(s.Time) }

// Validate checks the series invariants: equal lengths, at least two
// points, strictly positive uncertainties and a non-degenerate time span.
func (s *ObservationSeries) Validate() error {
	n := len(s.Time)
	if len(s.RV) != n || len(s.RVError) != n {
		return fmt.Errorf("%w: time=%d rv=%d rv_error=%d",
			ErrLengthMismatch, n, len(s.RV), len(s.RVError))
	}
	if n < 2 {
		return fmt.Errorf("%w: got %d observations, need at least 2", ErrTooFewPoints, n)
	}
	tMin, tMax := s.Time[0], s.Time[0]
	for i := 0; i < n; i++ {
		if math.IsNaN(s.Time[i]) || math.IsInf(s.Time[i], 0) ||
			math.IsNaN(s.RV[i]) || math.IsInf(s.RV[i], 0) {
			return fmt.Errorf("%w: non-finite value at index %d", ErrInvalidSeries, i)
		}
		if !(s.RVError[i] > 0) {
			return fmt.Errorf("%w: rv_error[%d]=%g", ErrNonPositiveError, i, s.RVError[i])
		}
		if s.Time[i] < tMin {
			tMin = s.Time[i]
		}
		if s.Time[i] > tMax {
			tMax = s.Time[i]
		}
	}
	if !(tMax-tMin > 0) {
		return fmt.Errorf("%w: span=%g", ErrDegenerateSpan, tMax-tMin)
	}
	return nil
}

// Span returns max(time) - min(time)
func (s *ObservationSeries) Span() float64 {
	if len(s.Time) == 0 {
		return 0
	}
	tMin, tMax := s.Time[0], s.Time[0]
	for _, t := range s.Time {
		if t < tMin {
			tMin = t
		}
		if t > tMax {
			tMax = t
		}
	}
	return tMax - tMin
}

// ObservationPayload is the JSON input accepted at the pipeline boundary
type ObservationPayload struct {
	Time        []float64 `json:"time"`
	RV          []float64 `json:"rv"`
	RVError     []float64 `json:"rv_error"`
	StellarMass *float64  `json:"stellar_mass,omitempty"` // solar masses, default 1.0
}

// ParseObservationPayload decodes and validates a JSON observation payload,
// returning the typed series and the stellar mass (defaulted to 1 M_sun).
func ParseObservationPayload(data []byte) (*ObservationSeries, float64, error) {
	var p ObservationPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, 0, fmt.Errorf("invalid observation payload: %w", err)
	}
	series := &ObservationSeries{Time: p.Time, RV: p.RV, RVError: p.RVError}
	if err := series.Validate(); err != nil {
		return nil, 0, err
	}
	stellarMass := 1.0
	if p.StellarMass != nil {
		stellarMass = *p.StellarMass
	}
	if !(stellarMass > 0) || math.IsInf(stellarMass, 0) {
		return nil, 0, fmt.Errorf("%w: stellar_mass=%g", ErrNonPositiveMass, stellarMass)
	}
	return series, stellarMass, nil
}

// PeriodogramResult represents a Lomb-Scargle periodogram and its peak.
// Periods are in days. Power is normalized against the total variance of
// the series, so peak values are only comparable within one run, never
// across datasets.
type PeriodogramResult struct {
	Periods               []float64 `json:"periods"`
	Power                 []float64 `json:"power"`
	BestPeriod            float64   `json:"best_period"`
	PeakPower             float64   `json:"peak_power"`
	FalseAlarmProbability float64   `json:"false_alarm_probability"` // rank heuristic, not calibrated
	SignificantDetection  bool      `json:"significant_detection"`
}

// OrbitFit holds the parameters and quality metrics of a circular-orbit
// radial velocity fit at a fixed candidate period.
type OrbitFit struct {
	KAmplitude       float64   `json:"K_amplitude"`       // m/s
	PhaseOffset      float64   `json:"phase_offset"`      // radians
	SystemicVelocity float64   `json:"systemic_velocity"` // m/s
	Period           float64   `json:"period"`            // days, input not fitted
	RVModel          []float64 `json:"rv_model"`
	Residuals        []float64 `json:"residuals"`
	ChiSquared       float64   `json:"chi_squared"`
	ReducedChiSq     float64   `json:"reduced_chi_squared"` // N-3 degrees of freedom
	RMS              float64   `json:"rms"`
	RSquared         float64   `json:"r_squared"`
}

// PlanetEstimate contains physical quantities derived from the fitted
// amplitude and period, assuming a Sun-like host and edge-on orbit.
type PlanetEstimate struct {
	MinimumMassEarth   float64 `json:"minimum_mass_earth"`
	MinimumMassJupiter float64 `json:"minimum_mass_jupiter"`
	SemiMajorAxisAU    float64 `json:"semi_major_axis_au"`
	EquilibriumTempK   float64 `json:"equilibrium_temperature_k"`
	OrbitalPeriodDays  float64 `json:"orbital_period_days"`
	RVAmplitudeMS      float64 `json:"rv_amplitude_ms"`
	StellarMassSolar   float64 `json:"stellar_mass_solar"`
	InclinationDeg     float64 `json:"inclination_assumed_deg"`
}

// AnalysisSummary condenses the headline numbers of a detection
type AnalysisSummary struct {
	PeriodDays         float64 `json:"period_days"`
	RVAmplitudeMS      float64 `json:"rv_amplitude_ms"`
	MinPlanetMassEarth float64 `json:"min_planet_mass_earth"`
	SemiMajorAxisAU    float64 `json:"semi_major_axis_au"`
	FitQuality         string  `json:"fit_quality"` // "good" or "poor"
}

// AnalysisResult aggregates the output of the full detection pipeline
type AnalysisResult struct {
	DetectionStatus       DetectionStatus    `json:"detection_status"`
	DetectionSignificance string             `json:"detection_significance,omitempty"` // "high" or "moderate"
	Periodogram           *PeriodogramResult `json:"periodogram,omitempty"`
	OrbitalFit            *OrbitFit          `json:"orbital_fit,omitempty"`
	PlanetProperties      *PlanetEstimate    `json:"planet_properties,omitempty"`
	AnalysisSummary       *AnalysisSummary   `json:"analysis_summary,omitempty"`
	Message               string             `json:"message,omitempty"`
}

// SyntheticParameters carries the injected ground truth of a generated
// dataset so parameter recovery can be checked against it.
type SyntheticParameters struct {
	HasPlanet       bool    `json:"has_planet"`
	KAmplitude      float64 `json:"K_amplitude"` // m/s
	Period          float64 `json:"period"`      // days
	PlanetMassEarth float64 `json:"planet_mass_earth"`
	Eccentricity    float64 `json:"eccentricity"`
	StellarMass     float64 `json:"stellar_mass"` // solar masses
}

// SyntheticDataset is a generated observation series plus its ground truth
type SyntheticDataset struct {
	Time       []float64           `json:"time"`
	RV         []float64           `json:"rv"`
	RVError    []float64           `json:"rv_error"`
	TrueSignal []float64           `json:"true_signal"`
	Parameters SyntheticParameters `json:"parameters"`
}

// Series returns the dataset's observable part as an ObservationSeries
func (d *SyntheticDataset) Series() *ObservationSeries {
	return &ObservationSeries{Time: d.Time, RV: d.RV, RVError: d.RVError}
}

// DemoDataset is a named synthetic dataset used for demonstrations
type DemoDataset struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Data        *SyntheticDataset `json:"data"`
}
