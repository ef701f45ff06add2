package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_config.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestEmptyTuningConfigDefaults(t *testing.T) {
	cfg := EmptyTuningConfig()

	if got := cfg.GetHistogramPhiBins(); got != 200 {
		t.Errorf("GetHistogramPhiBins() = %d, want 200", got)
	}
	if got := cfg.GetHistogramPhiMin(); math.Abs(got+1.1*math.Pi) > 1e-12 {
		t.Errorf("GetHistogramPhiMin() = %f, want -1.1π", got)
	}
	if got := cfg.GetHistogramPhiMax(); math.Abs(got-1.1*math.Pi) > 1e-12 {
		t.Errorf("GetHistogramPhiMax() = %f, want +1.1π", got)
	}
	if got := cfg.GetMaxHitVertexDisplacement(); got != math.MaxFloat64 {
		t.Errorf("GetMaxHitVertexDisplacement() = %f, want unbounded", got)
	}
	if got := cfg.GetMaxOnHitDisplacement(); got != 1.0 {
		t.Errorf("GetMaxOnHitDisplacement() = %f, want 1.0", got)
	}
	if got := cfg.GetHitDeweightingPower(); got != -0.5 {
		t.Errorf("GetHitDeweightingPower() = %f, want -0.5", got)
	}
	if got := cfg.GetMaxTopScoreCandidates(); got != 5 {
		t.Errorf("GetMaxTopScoreCandidates() = %d, want 5", got)
	}
	if got := cfg.GetMinCandidateDisplacement(); got != 2.0 {
		t.Errorf("GetMinCandidateDisplacement() = %f, want 2.0", got)
	}
	if got := cfg.GetMinCandidateScoreFraction(); got != 0.9 {
		t.Errorf("GetMinCandidateScoreFraction() = %f, want 0.9", got)
	}
	if !cfg.GetReplaceCurrentVertexList() {
		t.Error("GetReplaceCurrentVertexList() must default to true")
	}
	if cfg.GetInputHitListU() != "" || cfg.GetOutputVertexList() != "" {
		t.Error("collection names must have no defaults")
	}
}

func TestLoadTuningConfig(t *testing.T) {
	path := writeConfig(t, `{
  "input_hit_list_u": "HitsU",
  "input_hit_list_v": "HitsV",
  "input_hit_list_w": "HitsW",
  "output_vertex_list": "SelectedVertices",
  "replace_current_vertex_list": false,
  "histogram_phi_bins": 100,
  "max_on_hit_displacement": 0.5,
  "hit_deweighting_power": -1.0,
  "max_top_score_candidates": 3
}`)

	cfg, err := LoadTuningConfig(path)
	if err != nil {
		t.Fatalf("LoadTuningConfig: %v", err)
	}

	if cfg.GetInputHitListU() != "HitsU" || cfg.GetInputHitListW() != "HitsW" {
		t.Errorf("unexpected hit list names: %q %q", cfg.GetInputHitListU(), cfg.GetInputHitListW())
	}
	if cfg.GetReplaceCurrentVertexList() {
		t.Error("expected replace_current_vertex_list false")
	}
	if cfg.GetHistogramPhiBins() != 100 {
		t.Errorf("expected 100 bins, got %d", cfg.GetHistogramPhiBins())
	}
	if cfg.GetMaxOnHitDisplacement() != 0.5 {
		t.Errorf("expected on-hit 0.5, got %f", cfg.GetMaxOnHitDisplacement())
	}
	if cfg.GetHitDeweightingPower() != -1.0 {
		t.Errorf("expected power -1.0, got %f", cfg.GetHitDeweightingPower())
	}
	if cfg.GetMaxTopScoreCandidates() != 3 {
		t.Errorf("expected cap 3, got %d", cfg.GetMaxTopScoreCandidates())
	}

	// Fields omitted from the file keep their defaults.
	if cfg.GetMinCandidateScoreFraction() != 0.9 {
		t.Errorf("expected default fraction 0.9, got %f", cfg.GetMinCandidateScoreFraction())
	}
}

func TestLoadTuningConfigRejectsUnknownField(t *testing.T) {
	path := writeConfig(t, `{"histogram_phi_bins": 100, "histogram_n_phi_bins": 200}`)
	if _, err := LoadTuningConfig(path); err == nil {
		t.Fatal("expected error for unrecognized option")
	}
}

func TestLoadTuningConfigRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"wrong type", `{"histogram_phi_bins": "many"}`},
		{"zero bins", `{"histogram_phi_bins": 0}`},
		{"inverted phi range", `{"histogram_phi_min": 2.0, "histogram_phi_max": 1.0}`},
		{"negative on-hit", `{"max_on_hit_displacement": -1.0}`},
		{"zero max displacement", `{"max_hit_vertex_displacement": 0}`},
		{"zero candidate cap", `{"max_top_score_candidates": 0}`},
		{"negative separation", `{"min_candidate_displacement": -2.0}`},
		{"negative fraction", `{"min_candidate_score_fraction": -0.9}`},
		{"truncated json", `{"histogram_phi_bins":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.contents)
			if _, err := LoadTuningConfig(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadTuningConfigFileChecks(t *testing.T) {
	if _, err := LoadTuningConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadTuningConfig(filepath.Join(t.TempDir(), "config.yaml")); err == nil {
		t.Error("expected error for non-json extension")
	}
}

func TestSelectionConfigFromTuning(t *testing.T) {
	path := writeConfig(t, `{
  "input_hit_list_u": "HitsU",
  "input_hit_list_v": "HitsV",
  "input_hit_list_w": "HitsW",
  "output_vertex_list": "SelectedVertices",
  "min_candidate_displacement": 4.5
}`)

	cfg, err := LoadTuningConfig(path)
	if err != nil {
		t.Fatalf("LoadTuningConfig: %v", err)
	}

	sel := SelectionConfigFromTuning(cfg)
	if err := sel.Validate(); err != nil {
		t.Fatalf("derived selection config invalid: %v", err)
	}
	if sel.MinCandidateDisplacement != 4.5 {
		t.Errorf("expected separation 4.5, got %f", sel.MinCandidateDisplacement)
	}
	if sel.HistogramPhiBins != 200 {
		t.Errorf("expected default bins carried over, got %d", sel.HistogramPhiBins)
	}
}

func TestSelectionConfigFromTuningMissingNames(t *testing.T) {
	sel := SelectionConfigFromTuning(EmptyTuningConfig())
	if err := sel.Validate(); err == nil {
		t.Fatal("expected validation failure for missing collection names")
	}
}

func TestMustLoadDefaultConfig(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("defaults file must load: %v", r)
		}
	}()

	cfg := MustLoadDefaultConfig()
	sel := SelectionConfigFromTuning(cfg)
	if err := sel.Validate(); err != nil {
		t.Errorf("canonical defaults must produce a valid selection config: %v", err)
	}
}
