package recondb

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harrier-data/vertex.report/internal/event"
	"github.com/harrier-data/vertex.report/internal/geom"
	"github.com/harrier-data/vertex.report/internal/recon"
)

// ErrEventNotFound reports a lookup of an event id that was never saved.
var ErrEventNotFound = errors.New("event not found")

// SaveEvent persists an event store's collections in one transaction.
// Saving an event id that already exists replaces it wholesale.
func (db *DB) SaveEvent(s *event.Store) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting event transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM event_hits WHERE event_id = ?`,
		`DELETE FROM event_vertices WHERE event_id = ?`,
		`DELETE FROM events WHERE event_id = ?`,
	} {
		if _, err := tx.Exec(stmt, s.EventID()); err != nil {
			return fmt.Errorf("clearing previous event rows: %w", err)
		}
	}

	_, err = tx.Exec(`INSERT INTO events (event_id, current_vertex_list) VALUES (?, ?)`,
		s.EventID(), s.CurrentVertexList())
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}

	for _, name := range s.HitListNames() {
		hits, err := s.Hits(name)
		if err != nil {
			return fmt.Errorf("reading hit list %q: %w", name, err)
		}
		for _, h := range hits {
			_, err = tx.Exec(`
				INSERT INTO event_hits (event_id, list_name, hit_id, view, x, z)
				VALUES (?, ?, ?, ?, ?, ?)`,
				s.EventID(), name, h.ID, string(h.View), h.Position.X, h.Position.Z)
			if err != nil {
				return fmt.Errorf("inserting hit %s: %w", h.ID, err)
			}
		}
	}

	for _, name := range s.VertexListNames() {
		vertices, err := s.Vertices(name)
		if err != nil {
			return fmt.Errorf("reading vertex list %q: %w", name, err)
		}
		for _, v := range vertices {
			_, err = tx.Exec(`
				INSERT INTO event_vertices (event_id, list_name, vertex_id, x, y, z)
				VALUES (?, ?, ?, ?, ?, ?)`,
				s.EventID(), name, v.ID, v.Position.X, v.Position.Y, v.Position.Z)
			if err != nil {
				return fmt.Errorf("inserting vertex %s: %w", v.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing event transaction: %w", err)
	}
	return nil
}

// LoadEvent reconstructs a saved event store by id.
func (db *DB) LoadEvent(eventID string) (*event.Store, error) {
	var current string
	err := db.QueryRow(`SELECT current_vertex_list FROM events WHERE event_id = ?`, eventID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %q: %w", eventID, ErrEventNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading event: %w", err)
	}

	store := event.NewStore(eventID)

	hitRows, err := db.Query(`
		SELECT list_name, hit_id, view, x, z
		FROM event_hits WHERE event_id = ? ORDER BY list_name, hit_id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("reading event hits: %w", err)
	}
	defer hitRows.Close()

	hitLists := make(map[string][]recon.Hit)
	for hitRows.Next() {
		var listName, hitID, viewStr string
		var x, z float64
		if err := hitRows.Scan(&listName, &hitID, &viewStr, &x, &z); err != nil {
			return nil, fmt.Errorf("scanning event hit: %w", err)
		}
		view, err := geom.ParseView(viewStr)
		if err != nil {
			return nil, fmt.Errorf("hit %s: %w", hitID, err)
		}
		hitLists[listName] = append(hitLists[listName], recon.Hit{
			ID: hitID, View: view, Position: geom.Vector2{X: x, Z: z},
		})
	}
	if err := hitRows.Err(); err != nil {
		return nil, fmt.Errorf("reading event hits: %w", err)
	}
	for name, hits := range hitLists {
		store.AddHitList(name, hits)
	}

	vertexRows, err := db.Query(`
		SELECT list_name, vertex_id, x, y, z
		FROM event_vertices WHERE event_id = ? ORDER BY list_name, vertex_id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("reading event vertices: %w", err)
	}
	defer vertexRows.Close()

	vertexLists := make(map[string][]recon.CandidateVertex)
	for vertexRows.Next() {
		var listName, vertexID string
		var x, y, z float64
		if err := vertexRows.Scan(&listName, &vertexID, &x, &y, &z); err != nil {
			return nil, fmt.Errorf("scanning event vertex: %w", err)
		}
		vertexLists[listName] = append(vertexLists[listName], recon.CandidateVertex{
			ID: vertexID, Position: geom.Vector3{X: x, Y: y, Z: z},
		})
	}
	if err := vertexRows.Err(); err != nil {
		return nil, fmt.Errorf("reading event vertices: %w", err)
	}
	for name, vertices := range vertexLists {
		store.AddVertexList(name, vertices)
	}

	if current != "" {
		if err := store.SetCurrentVertexList(current); err != nil {
			return nil, fmt.Errorf("restoring current vertex list: %w", err)
		}
	}

	return store, nil
}

// ListEvents returns the most recently saved event ids, newest first.
func (db *DB) ListEvents(limit int) ([]string, error) {
	rows, err := db.Query(`
		SELECT event_id FROM events ORDER BY created_at DESC, event_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning event id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
