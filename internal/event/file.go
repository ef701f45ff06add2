package event

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/harrier-data/vertex.report/internal/geom"
	"github.com/harrier-data/vertex.report/internal/recon"
)

// maxEventFileSize caps event files at 64MB; anything larger is a
// capture error, not an event.
const maxEventFileSize = 64 * 1024 * 1024

// fileHit is the on-disk form of one hit.
type fileHit struct {
	ID   string  `json:"id,omitempty"`
	View string  `json:"view"`
	X    float64 `json:"x"`
	Z    float64 `json:"z"`
}

// fileVertex is the on-disk form of one candidate vertex.
type fileVertex struct {
	ID string  `json:"id,omitempty"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
}

// eventFile is the JSON document layout for a captured event.
type eventFile struct {
	EventID           string                  `json:"event_id,omitempty"`
	HitLists          map[string][]fileHit    `json:"hit_lists"`
	VertexLists       map[string][]fileVertex `json:"vertex_lists"`
	CurrentVertexList string                  `json:"current_vertex_list,omitempty"`
}

// LoadEventFile reads a JSON event capture into a Store. Hits and
// vertices without explicit ids are assigned fresh uuids. Unknown
// document fields are a format error.
func LoadEventFile(path string) (*Store, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("event file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat event file: %w", err)
	}
	if info.Size() > maxEventFileSize {
		return nil, fmt.Errorf("event file too large: %d bytes (max %d)", info.Size(), maxEventFileSize)
	}

	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open event file: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()

	var doc eventFile
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse event file: %w", err)
	}

	eventID := doc.EventID
	if eventID == "" {
		eventID = uuid.NewString()
	}
	store := NewStore(eventID)

	for name, fileHits := range doc.HitLists {
		hits := make([]recon.Hit, len(fileHits))
		for i, fh := range fileHits {
			view, err := geom.ParseView(fh.View)
			if err != nil {
				return nil, fmt.Errorf("hit list %q entry %d: %w", name, i, err)
			}
			id := fh.ID
			if id == "" {
				id = uuid.NewString()
			}
			hits[i] = recon.Hit{ID: id, View: view, Position: geom.Vector2{X: fh.X, Z: fh.Z}}
		}
		store.AddHitList(name, hits)
	}

	for name, fileVertices := range doc.VertexLists {
		vertices := make([]recon.CandidateVertex, len(fileVertices))
		for i, fv := range fileVertices {
			id := fv.ID
			if id == "" {
				id = uuid.NewString()
			}
			vertices[i] = recon.CandidateVertex{ID: id, Position: geom.Vector3{X: fv.X, Y: fv.Y, Z: fv.Z}}
		}
		store.AddVertexList(name, vertices)
	}

	if doc.CurrentVertexList != "" {
		if err := store.SetCurrentVertexList(doc.CurrentVertexList); err != nil {
			return nil, fmt.Errorf("current vertex list: %w", err)
		}
	}

	return store, nil
}
