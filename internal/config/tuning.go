package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/harrier-data/vertex.report/internal/recon"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig is the JSON tuning surface for vertex selection.
// Fields omitted from a file keep their documented defaults, so
// partial configs are safe; unknown fields are a configuration error.
type TuningConfig struct {
	// Collection wiring (required; no defaults).
	InputHitListU    *string `json:"input_hit_list_u,omitempty"`
	InputHitListV    *string `json:"input_hit_list_v,omitempty"`
	InputHitListW    *string `json:"input_hit_list_w,omitempty"`
	OutputVertexList *string `json:"output_vertex_list,omitempty"`

	ReplaceCurrentVertexList *bool `json:"replace_current_vertex_list,omitempty"`

	// Angular histogram params.
	HistogramPhiBins *int     `json:"histogram_phi_bins,omitempty"`
	HistogramPhiMin  *float64 `json:"histogram_phi_min,omitempty"`
	HistogramPhiMax  *float64 `json:"histogram_phi_max,omitempty"`

	// Scoring params.
	MaxHitVertexDisplacement *float64 `json:"max_hit_vertex_displacement,omitempty"`
	MaxOnHitDisplacement     *float64 `json:"max_on_hit_displacement,omitempty"`
	HitDeweightingPower      *float64 `json:"hit_deweighting_power,omitempty"`

	// Shortlist gating params.
	MaxTopScoreCandidates     *int     `json:"max_top_score_candidates,omitempty"`
	MinCandidateDisplacement  *float64 `json:"min_candidate_displacement,omitempty"`
	MinCandidateScoreFraction *float64 `json:"min_candidate_score_fraction,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields unset.
// Use LoadTuningConfig to load actual values from a file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file
// must have a .json extension and stay under the max file size.
// Unrecognized options fail loading rather than being dropped.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()

	cfg := EmptyTuningConfig()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from
// DefaultConfigPath, searching upward from the current directory.
// Panics if the file cannot be loaded, intended for CLI startup and
// test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
		"../../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that every set field holds a usable value.
func (c *TuningConfig) Validate() error {
	if c.HistogramPhiBins != nil && *c.HistogramPhiBins <= 0 {
		return fmt.Errorf("histogram_phi_bins must be positive, got %d", *c.HistogramPhiBins)
	}
	if c.HistogramPhiMin != nil && c.HistogramPhiMax != nil && *c.HistogramPhiMin >= *c.HistogramPhiMax {
		return fmt.Errorf("histogram phi range invalid: min %f >= max %f", *c.HistogramPhiMin, *c.HistogramPhiMax)
	}
	if c.MaxHitVertexDisplacement != nil && *c.MaxHitVertexDisplacement <= 0 {
		return fmt.Errorf("max_hit_vertex_displacement must be positive, got %f", *c.MaxHitVertexDisplacement)
	}
	if c.MaxOnHitDisplacement != nil && *c.MaxOnHitDisplacement <= 0 {
		return fmt.Errorf("max_on_hit_displacement must be positive, got %f", *c.MaxOnHitDisplacement)
	}
	if c.MaxTopScoreCandidates != nil && *c.MaxTopScoreCandidates <= 0 {
		return fmt.Errorf("max_top_score_candidates must be positive, got %d", *c.MaxTopScoreCandidates)
	}
	if c.MinCandidateDisplacement != nil && *c.MinCandidateDisplacement < 0 {
		return fmt.Errorf("min_candidate_displacement must be non-negative, got %f", *c.MinCandidateDisplacement)
	}
	if c.MinCandidateScoreFraction != nil && *c.MinCandidateScoreFraction < 0 {
		return fmt.Errorf("min_candidate_score_fraction must be non-negative, got %f", *c.MinCandidateScoreFraction)
	}
	return nil
}

// GetInputHitListU returns the input_hit_list_u value, or "" when unset.
func (c *TuningConfig) GetInputHitListU() string {
	if c.InputHitListU == nil {
		return ""
	}
	return *c.InputHitListU
}

// GetInputHitListV returns the input_hit_list_v value, or "" when unset.
func (c *TuningConfig) GetInputHitListV() string {
	if c.InputHitListV == nil {
		return ""
	}
	return *c.InputHitListV
}

// GetInputHitListW returns the input_hit_list_w value, or "" when unset.
func (c *TuningConfig) GetInputHitListW() string {
	if c.InputHitListW == nil {
		return ""
	}
	return *c.InputHitListW
}

// GetOutputVertexList returns the output_vertex_list value, or "" when unset.
func (c *TuningConfig) GetOutputVertexList() string {
	if c.OutputVertexList == nil {
		return ""
	}
	return *c.OutputVertexList
}

// GetReplaceCurrentVertexList returns the replace_current_vertex_list
// value or the default.
func (c *TuningConfig) GetReplaceCurrentVertexList() bool {
	if c.ReplaceCurrentVertexList == nil {
		return true // default: the selected vertex becomes current
	}
	return *c.ReplaceCurrentVertexList
}

// GetHistogramPhiBins returns the histogram_phi_bins value or the default.
func (c *TuningConfig) GetHistogramPhiBins() int {
	if c.HistogramPhiBins == nil {
		return recon.DefaultHistogramPhiBins
	}
	return *c.HistogramPhiBins
}

// GetHistogramPhiMin returns the histogram_phi_min value or the default.
func (c *TuningConfig) GetHistogramPhiMin() float64 {
	if c.HistogramPhiMin == nil {
		return recon.DefaultHistogramPhiMin
	}
	return *c.HistogramPhiMin
}

// GetHistogramPhiMax returns the histogram_phi_max value or the default.
func (c *TuningConfig) GetHistogramPhiMax() float64 {
	if c.HistogramPhiMax == nil {
		return recon.DefaultHistogramPhiMax
	}
	return *c.HistogramPhiMax
}

// GetMaxHitVertexDisplacement returns the max_hit_vertex_displacement
// value or the default (effectively unbounded).
func (c *TuningConfig) GetMaxHitVertexDisplacement() float64 {
	if c.MaxHitVertexDisplacement == nil {
		return math.MaxFloat64
	}
	return *c.MaxHitVertexDisplacement
}

// GetMaxOnHitDisplacement returns the max_on_hit_displacement value or
// the default.
func (c *TuningConfig) GetMaxOnHitDisplacement() float64 {
	if c.MaxOnHitDisplacement == nil {
		return recon.DefaultMaxOnHitDisplacement
	}
	return *c.MaxOnHitDisplacement
}

// GetHitDeweightingPower returns the hit_deweighting_power value or
// the default.
func (c *TuningConfig) GetHitDeweightingPower() float64 {
	if c.HitDeweightingPower == nil {
		return recon.DefaultHitDeweightingPower
	}
	return *c.HitDeweightingPower
}

// GetMaxTopScoreCandidates returns the max_top_score_candidates value
// or the default.
func (c *TuningConfig) GetMaxTopScoreCandidates() int {
	if c.MaxTopScoreCandidates == nil {
		return recon.DefaultMaxTopScoreCandidates
	}
	return *c.MaxTopScoreCandidates
}

// GetMinCandidateDisplacement returns the min_candidate_displacement
// value or the default.
func (c *TuningConfig) GetMinCandidateDisplacement() float64 {
	if c.MinCandidateDisplacement == nil {
		return recon.DefaultMinCandidateDisplacement
	}
	return *c.MinCandidateDisplacement
}

// GetMinCandidateScoreFraction returns the min_candidate_score_fraction
// value or the default.
func (c *TuningConfig) GetMinCandidateScoreFraction() float64 {
	if c.MinCandidateScoreFraction == nil {
		return recon.DefaultMinCandidateScoreFraction
	}
	return *c.MinCandidateScoreFraction
}

// SelectionConfigFromTuning derives a recon.SelectionConfig from the
// tuning surface. The result still needs recon-side validation, which
// enforces the required collection names.
func SelectionConfigFromTuning(c *TuningConfig) recon.SelectionConfig {
	return recon.SelectionConfig{
		InputHitListU:             c.GetInputHitListU(),
		InputHitListV:             c.GetInputHitListV(),
		InputHitListW:             c.GetInputHitListW(),
		OutputVertexList:          c.GetOutputVertexList(),
		ReplaceCurrentVertexList:  c.GetReplaceCurrentVertexList(),
		HistogramPhiBins:          c.GetHistogramPhiBins(),
		HistogramPhiMin:           c.GetHistogramPhiMin(),
		HistogramPhiMax:           c.GetHistogramPhiMax(),
		MaxHitVertexDisplacement:  c.GetMaxHitVertexDisplacement(),
		MaxOnHitDisplacement:      c.GetMaxOnHitDisplacement(),
		HitDeweightingPower:       c.GetHitDeweightingPower(),
		MaxTopScoreCandidates:     c.GetMaxTopScoreCandidates(),
		MinCandidateDisplacement:  c.GetMinCandidateDisplacement(),
		MinCandidateScoreFraction: c.GetMinCandidateScoreFraction(),
	}
}
