package recon

import (
	"fmt"
	"math"
)

// Default selection parameters.
const (
	DefaultHistogramPhiBins      = 200
	DefaultMaxOnHitDisplacement  = 1.0
	DefaultHitDeweightingPower   = -0.5
	DefaultMaxTopScoreCandidates = 5
	DefaultMinCandidateDisplacement  = 2.0
	DefaultMinCandidateScoreFraction = 0.9
)

// DefaultHistogramPhiMin and DefaultHistogramPhiMax pad the angular
// range slightly beyond ±π so boundary bearings never sit on the open
// upper edge.
var (
	DefaultHistogramPhiMin = -1.1 * math.Pi
	DefaultHistogramPhiMax = +1.1 * math.Pi
)

// SelectionConfig holds every tunable of one selection pass. Build it
// once at setup (DefaultSelectionConfig or config.SelectionConfigFromTuning),
// validate it, and pass it by value into NewSelector.
type SelectionConfig struct {
	// Named collections read from / written to the event store.
	InputHitListU   string
	InputHitListV   string
	InputHitListW   string
	OutputVertexList string

	// ReplaceCurrentVertexList also redesignates the output list as
	// the event's current vertex list after a successful selection.
	ReplaceCurrentVertexList bool

	// Angular histogram shape.
	HistogramPhiBins int
	HistogramPhiMin  float64
	HistogramPhiMax  float64

	// MaxHitVertexDisplacement is the largest hit-to-vertex 2D
	// displacement still considered relevant; hits beyond it are
	// ignored entirely.
	MaxHitVertexDisplacement float64

	// MaxOnHitDisplacement is the threshold below which the projected
	// vertex counts as lying on a hit.
	MaxOnHitDisplacement float64

	// HitDeweightingPower is the exponent applied to the displacement
	// magnitude to form the fill weight. Negative values up-weight
	// nearby hits.
	HitDeweightingPower float64

	// Shortlist gating.
	MaxTopScoreCandidates     int
	MinCandidateDisplacement  float64
	MinCandidateScoreFraction float64
}

// DefaultSelectionConfig returns production-default selection
// parameters. Collection names have no defaults and must be set by
// the caller.
func DefaultSelectionConfig() SelectionConfig {
	return SelectionConfig{
		ReplaceCurrentVertexList:  true,
		HistogramPhiBins:          DefaultHistogramPhiBins,
		HistogramPhiMin:           DefaultHistogramPhiMin,
		HistogramPhiMax:           DefaultHistogramPhiMax,
		MaxHitVertexDisplacement:  math.MaxFloat64,
		MaxOnHitDisplacement:      DefaultMaxOnHitDisplacement,
		HitDeweightingPower:       DefaultHitDeweightingPower,
		MaxTopScoreCandidates:     DefaultMaxTopScoreCandidates,
		MinCandidateDisplacement:  DefaultMinCandidateDisplacement,
		MinCandidateScoreFraction: DefaultMinCandidateScoreFraction,
	}
}

// Validate checks that the configuration can drive a selection pass.
// List names are required; every numeric field must be well-formed.
func (c *SelectionConfig) Validate() error {
	if c.InputHitListU == "" || c.InputHitListV == "" || c.InputHitListW == "" {
		return fmt.Errorf("all three input hit list names are required (U=%q V=%q W=%q)",
			c.InputHitListU, c.InputHitListV, c.InputHitListW)
	}
	if c.OutputVertexList == "" {
		return fmt.Errorf("output vertex list name is required")
	}
	if c.HistogramPhiBins <= 0 {
		return fmt.Errorf("histogram_phi_bins must be positive, got %d", c.HistogramPhiBins)
	}
	if c.HistogramPhiMin >= c.HistogramPhiMax {
		return fmt.Errorf("histogram phi range invalid: min %f >= max %f", c.HistogramPhiMin, c.HistogramPhiMax)
	}
	if c.MaxHitVertexDisplacement <= 0 {
		return fmt.Errorf("max_hit_vertex_displacement must be positive, got %f", c.MaxHitVertexDisplacement)
	}
	if c.MaxOnHitDisplacement <= 0 {
		return fmt.Errorf("max_on_hit_displacement must be positive, got %f", c.MaxOnHitDisplacement)
	}
	if math.IsNaN(c.HitDeweightingPower) || math.IsInf(c.HitDeweightingPower, 0) {
		return fmt.Errorf("hit_deweighting_power must be finite")
	}
	if c.MaxTopScoreCandidates <= 0 {
		return fmt.Errorf("max_top_score_candidates must be positive, got %d", c.MaxTopScoreCandidates)
	}
	if c.MinCandidateDisplacement < 0 {
		return fmt.Errorf("min_candidate_displacement must be non-negative, got %f", c.MinCandidateDisplacement)
	}
	if c.MinCandidateScoreFraction < 0 {
		return fmt.Errorf("min_candidate_score_fraction must be non-negative, got %f", c.MinCandidateScoreFraction)
	}
	return nil
}
