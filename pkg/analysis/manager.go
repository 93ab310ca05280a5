package analysis

import "errors"

// Analysis errors surfaced to callers. Periodogram degeneracy is not among
// them: a failed detection is a normal outcome and yields the low-confidence
// fallback result instead of an error.
var (
	ErrInsufficientData     = errors.New("too few observations for orbit fit")
	ErrSingularFit          = errors.New("singular design matrix in orbit fit")
	ErrNonPositivePeriod    = errors.New("orbital period must be positive and finite")
	ErrInvalidEstimateInput = errors.New("invalid planet property input")
	ErrSeriesTooLarge       = errors.New("observation series exceeds configured maximum")
)

// Config holds all tunables of the analysis pipeline. A zero value for any
// field falls back to its default, so tests can override selectively.
type Config struct {
	// GridPoints is the number of trial frequencies in the periodogram grid
	GridPoints int
	// DownsampleTarget bounds the number of (period, power) pairs returned
	DownsampleTarget int
	// PeakPowerThreshold marks a detection as significant on its own
	PeakPowerThreshold float64
	// FAPThreshold marks a detection as significant on its own
	FAPThreshold float64
	// HighSignificanceFAP separates "high" from "moderate" detections
	HighSignificanceFAP float64
	// GoodFitChiSquared separates "good" from "poor" fits (reduced chi-squared)
	GoodFitChiSquared float64
	// MaxObservations bounds periodogram cost; larger series are rejected
	MaxObservations int
	// Workers bounds batch analysis concurrency
	Workers int
	// CachePath enables the advisory result snapshot when non-empty
	CachePath string
}

// DefaultConfig returns the default pipeline configuration
func DefaultConfig() Config {
	return Config{
		GridPoints:          1000,
		DownsampleTarget:    500,
		PeakPowerThreshold:  0.3,
		FAPThreshold:        0.05,
		HighSignificanceFAP: 0.001,
		GoodFitChiSquared:   2.0,
		MaxObservations:     100000,
		Workers:             4,
	}
}

// Manager handles all radial velocity analysis operations. It is stateless
// apart from its configuration, so concurrent calls on independent inputs
// are safe without locking.
type Manager struct {
	cfg Config
}

// NewManager creates a new analysis manager. Zero-valued config fields are
// replaced by their defaults.
func NewManager(cfg Config) *Manager {
	def := DefaultConfig()
	if cfg.GridPoints <= 0 {
		cfg.GridPoints = def.GridPoints
	}
	if cfg.DownsampleTarget <= 0 {
		cfg.DownsampleTarget = def.DownsampleTarget
	}
	if cfg.PeakPowerThreshold <= 0 {
		cfg.PeakPowerThreshold = def.PeakPowerThreshold
	}
	if cfg.FAPThreshold <= 0 {
		cfg.FAPThreshold = def.FAPThreshold
	}
	if cfg.HighSignificanceFAP <= 0 {
		cfg.HighSignificanceFAP = def.HighSignificanceFAP
	}
	if cfg.GoodFitChiSquared <= 0 {
		cfg.GoodFitChiSquared = def.GoodFitChiSquared
	}
	if cfg.MaxObservations <= 0 {
		cfg.MaxObservations = def.MaxObservations
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	return &Manager{cfg: cfg}
}

// Config returns the manager's effective configuration
func (m *Manager) Config() Config { return m.cfg }
