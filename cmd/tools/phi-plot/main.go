package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/harrier-data/vertex.report/internal/config"
	"github.com/harrier-data/vertex.report/internal/event"
	"github.com/harrier-data/vertex.report/internal/geom"
	"github.com/harrier-data/vertex.report/internal/recon"
)

// phi-plot renders the per-view bearing histograms for one candidate
// vertex as PNGs, for tuning the histogram binning by eye.

var viewColors = map[geom.View]color.RGBA{
	geom.ViewU: {R: 31, G: 119, B: 180, A: 255},
	geom.ViewV: {R: 255, G: 127, B: 14, A: 255},
	geom.ViewW: {R: 44, G: 160, B: 44, A: 255},
}

func main() {
	var eventPath string
	var configPath string
	var vertexID string
	var outputDir string

	flag.StringVar(&eventPath, "event", "", "path to event JSON file")
	flag.StringVar(&configPath, "config", "", "path to tuning JSON (default: bundled defaults)")
	flag.StringVar(&vertexID, "vertex", "", "candidate vertex id (default: first candidate)")
	flag.StringVar(&outputDir, "out", "phi-plots", "output directory for PNGs")
	flag.Parse()

	if eventPath == "" {
		log.Fatalf("event file must be provided (-event)")
	}

	tuning := config.MustLoadDefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadTuningConfig(configPath)
		if err != nil {
			log.Fatalf("load tuning config: %v", err)
		}
		tuning = loaded
	}
	cfg := config.SelectionConfigFromTuning(tuning)

	store, err := event.LoadEventFile(eventPath)
	if err != nil {
		log.Fatalf("load event: %v", err)
	}

	candidates, err := store.CurrentVertices()
	if err != nil {
		log.Fatalf("read candidate vertices: %v", err)
	}
	if len(candidates) == 0 {
		log.Fatalf("event has no candidate vertices")
	}

	candidate := candidates[0]
	if vertexID != "" {
		found := false
		for _, c := range candidates {
			if c.ID == vertexID {
				candidate = c
				found = true
				break
			}
		}
		if !found {
			log.Fatalf("no candidate vertex with id %q", vertexID)
		}
	}

	selector, err := recon.NewSelector(cfg, geom.DefaultWirePlaneProjector())
	if err != nil {
		log.Fatalf("build selector: %v", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	hitLists := map[geom.View]string{
		geom.ViewU: cfg.InputHitListU,
		geom.ViewV: cfg.InputHitListV,
		geom.ViewW: cfg.InputHitListW,
	}

	for _, view := range geom.Views {
		hits, err := store.Hits(hitLists[view])
		if err != nil {
			log.Fatalf("read hit list %q: %v", hitLists[view], err)
		}

		hist, err := recon.NewPhiHistogram(cfg.HistogramPhiBins, cfg.HistogramPhiMin, cfg.HistogramPhiMax)
		if err != nil {
			log.Fatalf("build histogram: %v", err)
		}

		onHit, err := selector.ScoreView(candidate.Position, view, hits, hist)
		if err != nil {
			log.Fatalf("score view %s: %v", view, err)
		}

		file := filepath.Join(outputDir, fmt.Sprintf("phi_%s.png", view))
		if err := savePhiPlot(hist, view, candidate.ID, onHit, file); err != nil {
			log.Fatalf("save plot for view %s: %v", view, err)
		}
		log.Printf("wrote %s (view %s, %d hits, on_hit=%v)", file, view, len(hits), onHit)
	}
}

func savePhiPlot(hist *recon.PhiHistogram, view geom.View, vertexID string, onHit bool, file string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("View %s - Bearing Histogram (vertex %s, on_hit=%v)", view, vertexID, onHit)
	p.X.Label.Text = "Phi (rad)"
	p.Y.Label.Text = "Weight"

	pts := make(plotter.XYs, 0, hist.NBins())
	for i := 0; i < hist.NBins(); i++ {
		pts = append(pts, plotter.XY{X: hist.BinCenter(i), Y: hist.BinContent(i)})
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = viewColors[view]
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add(string(view), line)
	p.Legend.Top = true

	if err := p.Save(14*vg.Inch, 6*vg.Inch, file); err != nil {
		return fmt.Errorf("save phi plot: %w", err)
	}
	return nil
}
