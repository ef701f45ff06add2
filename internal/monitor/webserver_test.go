package monitor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harrier-data/vertex.report/internal/recondb"
)

func newTestServer(t *testing.T) (*WebServer, *recondb.DB) {
	t.Helper()
	db, err := recondb.NewDB(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWebServer(WebServerConfig{Address: "127.0.0.1:0", DB: db}), db
}

func recordTestRun(t *testing.T, db *recondb.DB, runID string) {
	t.Helper()
	run := recondb.SelectionRun{
		RunID:            runID,
		EventID:          "event-1",
		CandidatesTotal:  2,
		CandidatesScored: 2,
		ShortlistSize:    1,
		Selected:         true,
		SelectedVertexID: "v-best",
		SelectedX:        1,
		SelectedY:        2,
		SelectedZ:        3,
		SelectedScore:    12.5,
	}
	scores := []recondb.CandidateScore{
		{RunID: runID, CandidateID: "v-weak", Rank: 0, X: -4, Z: 2, Score: 3.25},
		{RunID: runID, CandidateID: "v-best", Rank: 1, X: 1, Y: 2, Z: 3, Score: 12.5},
	}
	require.NoError(t, db.RecordRun(run, scores))
}

func TestHealthEndpoint(t *testing.T) {
	ws, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListRuns(t *testing.T) {
	ws, db := newTestServer(t)
	recordTestRun(t, db, "run-1")
	recordTestRun(t, db, "run-2")

	rec := httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []runSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	require.Equal(t, "event-1", got[0].EventID)
	require.True(t, got[0].Selected)
	require.Equal(t, "v-best", got[0].SelectedVertexID)

	// Limit applies.
	rec = httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs?limit=1", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
}

func TestListRunsMethodNotAllowed(t *testing.T) {
	ws, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/runs", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRunByID(t *testing.T) {
	ws, db := newTestServer(t)
	recordTestRun(t, db, "run-1")

	rec := httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/run-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got runDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "run-1", got.RunID)
	require.Len(t, got.Scores, 2)
	require.Equal(t, "v-weak", got.Scores[0].CandidateID)
	require.Equal(t, 0, got.Scores[0].Rank)
	require.Equal(t, 12.5, got.SelectedScore)
	require.Equal(t, 3.0, got.SelectedZ)
}

func TestRunByIDNotFound(t *testing.T) {
	ws, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScoresChart(t *testing.T) {
	ws, db := newTestServer(t)
	recordTestRun(t, db, "run-1")

	// Latest run by default.
	rec := httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/charts/scores", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), "v-best")

	// Explicit run id.
	rec = httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/charts/scores?run_id=run-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestScoresChartNoRuns(t *testing.T) {
	ws, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/charts/scores", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCandidatesChart(t *testing.T) {
	ws, db := newTestServer(t)
	recordTestRun(t, db, "run-1")

	rec := httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/charts/candidates?run_id=run-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	// Selected vertex gets its own series.
	require.True(t, strings.Contains(rec.Body.String(), "selected"))
}

func TestChartsWithoutDB(t *testing.T) {
	ws := NewWebServer(WebServerConfig{Address: "127.0.0.1:0"})

	for _, path := range []string{"/charts/scores", "/charts/candidates", "/api/runs"} {
		rec := httptest.NewRecorder()
		ws.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
	}
}
