package monitor

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/harrier-data/vertex.report/internal/recondb"
)

type runSummary struct {
	RunID            string  `json:"run_id"`
	EventID          string  `json:"event_id"`
	CandidatesTotal  int     `json:"candidates_total"`
	CandidatesScored int     `json:"candidates_scored"`
	ShortlistSize    int     `json:"shortlist_size"`
	Selected         bool    `json:"selected"`
	SelectedVertexID string  `json:"selected_vertex_id,omitempty"`
	SelectedScore    float64 `json:"selected_score,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

type candidateScoreEntry struct {
	CandidateID string  `json:"candidate_id"`
	Rank        int     `json:"rank"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	Score       float64 `json:"score"`
}

type runDetail struct {
	runSummary
	SelectedX float64               `json:"selected_x,omitempty"`
	SelectedY float64               `json:"selected_y,omitempty"`
	SelectedZ float64               `json:"selected_z,omitempty"`
	Scores    []candidateScoreEntry `json:"scores"`
}

func summarizeRun(run recondb.SelectionRun) runSummary {
	return runSummary{
		RunID:            run.RunID,
		EventID:          run.EventID,
		CandidatesTotal:  run.CandidatesTotal,
		CandidatesScored: run.CandidatesScored,
		ShortlistSize:    run.ShortlistSize,
		Selected:         run.Selected,
		SelectedVertexID: run.SelectedVertexID,
		SelectedScore:    run.SelectedScore,
		CreatedAt:        run.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// handleListRuns returns a JSON array of recent selection runs.
// Query params:
//
//	limit (optional, default 10, max 100)
func (ws *WebServer) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if ws.db == nil {
		ws.writeJSONError(w, http.StatusServiceUnavailable, "no database configured")
		return
	}

	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	runs, err := ws.db.ListRuns(limit)
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list runs: %v", err))
		return
	}

	summaries := make([]runSummary, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, summarizeRun(run))
	}
	ws.writeJSON(w, summaries)
}

// handleRunByID returns one run with its full candidate score list.
func (ws *WebServer) handleRunByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if ws.db == nil {
		ws.writeJSONError(w, http.StatusServiceUnavailable, "no database configured")
		return
	}

	runID := strings.TrimPrefix(r.URL.Path, "/api/runs/")
	if runID == "" || strings.Contains(runID, "/") {
		ws.writeJSONError(w, http.StatusBadRequest, "missing run_id in path")
		return
	}

	run, err := ws.db.GetRun(runID)
	if errors.Is(err, recondb.ErrRunNotFound) {
		ws.writeJSONError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to get run: %v", err))
		return
	}

	scores, err := ws.db.RunScores(runID)
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to get scores: %v", err))
		return
	}

	detail := runDetail{
		runSummary: summarizeRun(run),
		Scores:     make([]candidateScoreEntry, 0, len(scores)),
	}
	if run.Selected {
		detail.SelectedX = run.SelectedX
		detail.SelectedY = run.SelectedY
		detail.SelectedZ = run.SelectedZ
	}
	for _, s := range scores {
		detail.Scores = append(detail.Scores, candidateScoreEntry{
			CandidateID: s.CandidateID,
			Rank:        s.Rank,
			X:           s.X,
			Y:           s.Y,
			Z:           s.Z,
			Score:       s.Score,
		})
	}
	ws.writeJSON(w, detail)
}

// resolveRun finds the run named by the run_id query parameter, falling
// back to the most recent run when the parameter is absent.
func (ws *WebServer) resolveRun(r *http.Request) (recondb.SelectionRun, error) {
	if runID := r.URL.Query().Get("run_id"); runID != "" {
		return ws.db.GetRun(runID)
	}

	runs, err := ws.db.ListRuns(1)
	if err != nil {
		return recondb.SelectionRun{}, err
	}
	if len(runs) == 0 {
		return recondb.SelectionRun{}, recondb.ErrRunNotFound
	}
	return runs[0], nil
}
