package recondb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harrier-data/vertex.report/internal/geom"
	"github.com/harrier-data/vertex.report/internal/recon"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDBAppliesMigrations(t *testing.T) {
	db := newTestDB(t)

	version, dirty, err := db.MigrateVersion()
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(2), version)

	// Tables exist and are empty.
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM selection_runs`).Scan(&n))
	require.Equal(t, 0, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM candidate_scores`).Scan(&n))
	require.Equal(t, 0, n)
}

func TestRecordRunRoundTrip(t *testing.T) {
	db := newTestDB(t)

	run := SelectionRun{
		RunID:            "run-1",
		EventID:          "event-1",
		CandidatesTotal:  3,
		CandidatesScored: 2,
		ShortlistSize:    1,
		Selected:         true,
		SelectedVertexID: "v-best",
		SelectedX:        1.5,
		SelectedY:        -2.25,
		SelectedZ:        10.0,
		SelectedScore:    42.5,
	}
	scores := []CandidateScore{
		{RunID: "run-1", CandidateID: "v-weak", Rank: 0, X: 0, Y: 0, Z: 0, Score: 7.25},
		{RunID: "run-1", CandidateID: "v-best", Rank: 1, X: 1.5, Y: -2.25, Z: 10.0, Score: 42.5},
	}

	require.NoError(t, db.RecordRun(run, scores))

	got, err := db.GetRun("run-1")
	require.NoError(t, err)
	require.False(t, got.CreatedAt.IsZero())
	got.CreatedAt = run.CreatedAt
	require.Equal(t, run, got)

	gotScores, err := db.RunScores("run-1")
	require.NoError(t, err)
	require.Equal(t, scores, gotScores)
}

func TestRecordRunNoSelection(t *testing.T) {
	db := newTestDB(t)

	run := SelectionRun{
		RunID:            "run-empty",
		EventID:          "event-1",
		CandidatesTotal:  2,
		CandidatesScored: 0,
		ShortlistSize:    0,
	}
	require.NoError(t, db.RecordRun(run, nil))

	got, err := db.GetRun("run-empty")
	require.NoError(t, err)
	require.False(t, got.Selected)
	require.Empty(t, got.SelectedVertexID)
	require.Zero(t, got.SelectedScore)

	scores, err := db.RunScores("run-empty")
	require.NoError(t, err)
	require.Empty(t, scores)
}

func TestRecordRunDuplicateIDFails(t *testing.T) {
	db := newTestDB(t)

	run := SelectionRun{RunID: "run-dup", EventID: "event-1"}
	require.NoError(t, db.RecordRun(run, nil))
	require.Error(t, db.RecordRun(run, nil))
}

func TestGetRunNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetRun("no-such-run")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRunsLimit(t *testing.T) {
	db := newTestDB(t)

	for _, id := range []string{"run-a", "run-b", "run-c"} {
		require.NoError(t, db.RecordRun(SelectionRun{RunID: id, EventID: "event-1"}, nil))
	}

	runs, err := db.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	runs, err = db.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 3)
}

func TestBuildRun(t *testing.T) {
	candidates := []recon.CandidateVertex{
		{ID: "v-0", Position: geom.Vector3{X: 0, Y: 0, Z: 0}},
		{ID: "v-1", Position: geom.Vector3{X: 1, Y: 2, Z: 3}},
	}
	res := &recon.Result{
		Selected: []recon.CandidateVertex{candidates[1]},
		Scored: []recon.VertexScore{
			{CandidateIndex: 0, Score: 5},
			{CandidateIndex: 1, Score: 9},
		},
		Shortlist: []recon.VertexScore{{CandidateIndex: 0, Score: 5}},
		BestIndex: 1,
		BestScore: 9,
	}

	run, scores := BuildRun("event-7", candidates, res)
	require.NotEmpty(t, run.RunID)
	require.Equal(t, "event-7", run.EventID)
	require.Equal(t, 2, run.CandidatesTotal)
	require.Equal(t, 2, run.CandidatesScored)
	require.Equal(t, 1, run.ShortlistSize)
	require.True(t, run.Selected)
	require.Equal(t, "v-1", run.SelectedVertexID)
	require.Equal(t, 9.0, run.SelectedScore)
	require.Equal(t, geom.Vector3{X: 1, Y: 2, Z: 3},
		geom.Vector3{X: run.SelectedX, Y: run.SelectedY, Z: run.SelectedZ})

	require.Len(t, scores, 2)
	require.Equal(t, "v-0", scores[0].CandidateID)
	require.Equal(t, 0, scores[0].Rank)
	require.Equal(t, "v-1", scores[1].CandidateID)
	require.Equal(t, run.RunID, scores[1].RunID)

	// No selection when the result is empty.
	emptyRun, emptyScores := BuildRun("event-8", candidates, &recon.Result{BestIndex: -1})
	require.False(t, emptyRun.Selected)
	require.Empty(t, emptyScores)
}
