package monitor

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/harrier-data/vertex.report/internal/recondb"
)

const echartsAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// handleScoresChart renders a bar chart (HTML) of a run's candidate
// scores in rank order using go-echarts. This is a debugging-only
// endpoint (no auth) for eyeballing the score distribution.
// Query params:
//   - run_id (optional; defaults to most recent run)
func (ws *WebServer) handleScoresChart(w http.ResponseWriter, r *http.Request) {
	if ws.db == nil {
		ws.writeJSONError(w, http.StatusServiceUnavailable, "no database configured")
		return
	}

	run, err := ws.resolveRun(r)
	if errors.Is(err, recondb.ErrRunNotFound) {
		ws.writeJSONError(w, http.StatusNotFound, "no runs recorded")
		return
	}
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to resolve run: %v", err))
		return
	}

	scores, err := ws.db.RunScores(run.RunID)
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to get scores: %v", err))
		return
	}
	if len(scores) == 0 {
		ws.writeJSONError(w, http.StatusNotFound, "run has no scored candidates")
		return
	}

	x := make([]string, 0, len(scores))
	y := make([]opts.BarData, 0, len(scores))
	for _, s := range scores {
		x = append(x, s.CandidateID)
		y = append(y, opts.BarData{Value: s.Score})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Candidate Scores", Theme: "dark", Width: "1200px", Height: "720px", AssetsHost: echartsAssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: "Candidate Scores", Subtitle: fmt.Sprintf("run=%s event=%s selected=%s", run.RunID, run.EventID, run.SelectedVertexID)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "candidate", AxisLabel: &opts.AxisLabel{Rotate: 45}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "score"}),
	)
	bar.SetXAxis(x).
		AddSeries("score", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handleCandidatesChart renders a run's candidates as scatter points in
// the x-z plane, colored by score, with the selected vertex as a second
// series.
// Query params:
//   - run_id (optional; defaults to most recent run)
func (ws *WebServer) handleCandidatesChart(w http.ResponseWriter, r *http.Request) {
	if ws.db == nil {
		ws.writeJSONError(w, http.StatusServiceUnavailable, "no database configured")
		return
	}

	run, err := ws.resolveRun(r)
	if errors.Is(err, recondb.ErrRunNotFound) {
		ws.writeJSONError(w, http.StatusNotFound, "no runs recorded")
		return
	}
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to resolve run: %v", err))
		return
	}

	scores, err := ws.db.RunScores(run.RunID)
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to get scores: %v", err))
		return
	}
	if len(scores) == 0 {
		ws.writeJSONError(w, http.StatusNotFound, "run has no scored candidates")
		return
	}

	pts := make([]opts.ScatterData, 0, len(scores))
	maxAbs := 0.0
	maxScore := 0.0
	for _, s := range scores {
		if math.Abs(s.X) > maxAbs {
			maxAbs = math.Abs(s.X)
		}
		if math.Abs(s.Z) > maxAbs {
			maxAbs = math.Abs(s.Z)
		}
		if s.Score > maxScore {
			maxScore = s.Score
		}
		pts = append(pts, opts.ScatterData{Value: []interface{}{s.X, s.Z, s.Score}})
	}

	// Add a small padding so points at the edges are visible
	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}
	if maxScore == 0 {
		maxScore = 1
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Candidate Vertices", Theme: "dark", Width: "900px", Height: "900px", AssetsHost: echartsAssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: "Candidate Vertices (x-z plane)", Subtitle: fmt.Sprintf("run=%s candidates=%d", run.RunID, len(pts))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (cm)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Z (cm)", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxScore),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}},
		}),
	)

	scatter.AddSeries("candidates", pts, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
	if run.Selected {
		selected := []opts.ScatterData{{Value: []interface{}{run.SelectedX, run.SelectedZ, run.SelectedScore}}}
		scatter.AddSeries("selected", selected,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 16, Symbol: "diamond"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ff5252"}),
		)
	}

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
