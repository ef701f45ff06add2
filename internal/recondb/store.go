package recondb

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harrier-data/vertex.report/internal/recon"
)

// ErrRunNotFound reports a lookup of a run id that was never recorded.
var ErrRunNotFound = errors.New("selection run not found")

// SelectionRun is one recorded selection pass over an event.
type SelectionRun struct {
	RunID            string
	EventID          string
	CandidatesTotal  int
	CandidatesScored int
	ShortlistSize    int

	// Selected vertex; zero-valued with Selected=false when the pass
	// produced an empty output.
	Selected         bool
	SelectedVertexID string
	SelectedX        float64
	SelectedY        float64
	SelectedZ        float64
	SelectedScore    float64

	CreatedAt time.Time
}

// CandidateScore is one scored candidate within a run, ranked by
// ascending score (rank 0 is the weakest survivor).
type CandidateScore struct {
	RunID       string
	CandidateID string
	Rank        int
	X, Y, Z     float64
	Score       float64
}

// BuildRun assembles the persistable records for one selection pass.
// candidates must be the same slice the result's indices refer to.
func BuildRun(eventID string, candidates []recon.CandidateVertex, res *recon.Result) (SelectionRun, []CandidateScore) {
	run := SelectionRun{
		RunID:            uuid.NewString(),
		EventID:          eventID,
		CandidatesTotal:  len(candidates),
		CandidatesScored: len(res.Scored),
		ShortlistSize:    len(res.Shortlist),
	}

	if len(res.Selected) > 0 {
		run.Selected = true
		run.SelectedVertexID = res.Selected[0].ID
		run.SelectedX = res.Selected[0].Position.X
		run.SelectedY = res.Selected[0].Position.Y
		run.SelectedZ = res.Selected[0].Position.Z
		run.SelectedScore = res.BestScore
	}

	scores := make([]CandidateScore, len(res.Scored))
	for rank, vs := range res.Scored {
		c := candidates[vs.CandidateIndex]
		scores[rank] = CandidateScore{
			RunID:       run.RunID,
			CandidateID: c.ID,
			Rank:        rank,
			X:           c.Position.X,
			Y:           c.Position.Y,
			Z:           c.Position.Z,
			Score:       vs.Score,
		}
	}

	return run, scores
}

// RecordRun stores a run and its candidate scores in one transaction.
func (db *DB) RecordRun(run SelectionRun, scores []CandidateScore) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting run transaction: %w", err)
	}
	defer tx.Rollback()

	selectedID := sql.NullString{String: run.SelectedVertexID, Valid: run.Selected}
	selectedX := sql.NullFloat64{Float64: run.SelectedX, Valid: run.Selected}
	selectedY := sql.NullFloat64{Float64: run.SelectedY, Valid: run.Selected}
	selectedZ := sql.NullFloat64{Float64: run.SelectedZ, Valid: run.Selected}
	selectedScore := sql.NullFloat64{Float64: run.SelectedScore, Valid: run.Selected}

	_, err = tx.Exec(`
		INSERT INTO selection_runs (
			run_id, event_id, candidates_total, candidates_scored, shortlist_size,
			selected_vertex_id, selected_x, selected_y, selected_z, selected_score
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.EventID, run.CandidatesTotal, run.CandidatesScored, run.ShortlistSize,
		selectedID, selectedX, selectedY, selectedZ, selectedScore)
	if err != nil {
		return fmt.Errorf("inserting selection run: %w", err)
	}

	for _, s := range scores {
		_, err = tx.Exec(`
			INSERT INTO candidate_scores (run_id, candidate_id, rank, x, y, z, score)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			s.RunID, s.CandidateID, s.Rank, s.X, s.Y, s.Z, s.Score)
		if err != nil {
			return fmt.Errorf("inserting candidate score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run transaction: %w", err)
	}
	return nil
}

// GetRun returns one recorded run by id.
func (db *DB) GetRun(runID string) (SelectionRun, error) {
	row := db.QueryRow(`
		SELECT run_id, event_id, candidates_total, candidates_scored, shortlist_size,
		       selected_vertex_id, selected_x, selected_y, selected_z, selected_score,
		       created_at
		FROM selection_runs WHERE run_id = ?`, runID)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SelectionRun{}, fmt.Errorf("run %q: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return SelectionRun{}, fmt.Errorf("reading selection run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]SelectionRun, error) {
	rows, err := db.Query(`
		SELECT run_id, event_id, candidates_total, candidates_scored, shortlist_size,
		       selected_vertex_id, selected_x, selected_y, selected_z, selected_score,
		       created_at
		FROM selection_runs ORDER BY created_at DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing selection runs: %w", err)
	}
	defer rows.Close()

	var runs []SelectionRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning selection run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunScores returns a run's candidate scores in rank order.
func (db *DB) RunScores(runID string) ([]CandidateScore, error) {
	rows, err := db.Query(`
		SELECT run_id, candidate_id, rank, x, y, z, score
		FROM candidate_scores WHERE run_id = ? ORDER BY rank`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing candidate scores: %w", err)
	}
	defer rows.Close()

	var scores []CandidateScore
	for rows.Next() {
		var s CandidateScore
		if err := rows.Scan(&s.RunID, &s.CandidateID, &s.Rank, &s.X, &s.Y, &s.Z, &s.Score); err != nil {
			return nil, fmt.Errorf("scanning candidate score: %w", err)
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (SelectionRun, error) {
	var run SelectionRun
	var selectedID sql.NullString
	var selectedX, selectedY, selectedZ, selectedScore sql.NullFloat64

	err := row.Scan(&run.RunID, &run.EventID, &run.CandidatesTotal, &run.CandidatesScored,
		&run.ShortlistSize, &selectedID, &selectedX, &selectedY, &selectedZ, &selectedScore,
		&run.CreatedAt)
	if err != nil {
		return SelectionRun{}, err
	}

	if selectedID.Valid {
		run.Selected = true
		run.SelectedVertexID = selectedID.String
		run.SelectedX = selectedX.Float64
		run.SelectedY = selectedY.Float64
		run.SelectedZ = selectedZ.Float64
		run.SelectedScore = selectedScore.Float64
	}
	return run, nil
}
