package event

import (
	"errors"
	"fmt"
	"sort"

	"github.com/harrier-data/vertex.report/internal/recon"
)

// ErrListNotFound reports a read of a collection name that was never
// registered.
var ErrListNotFound = errors.New("list not found")

// ErrNoCurrentList reports a candidate read with no current vertex
// list designated.
var ErrNoCurrentList = errors.New("no current vertex list designated")

// Store holds one event's named collections. It is not safe for
// concurrent use; a reconstruction pass owns its store for the
// duration of a run.
type Store struct {
	eventID string

	hitLists    map[string][]recon.Hit
	vertexLists map[string][]recon.CandidateVertex
	current     string
}

// NewStore creates an empty store for the given event.
func NewStore(eventID string) *Store {
	return &Store{
		eventID:     eventID,
		hitLists:    make(map[string][]recon.Hit),
		vertexLists: make(map[string][]recon.CandidateVertex),
	}
}

// EventID returns the identifier of the event this store belongs to.
func (s *Store) EventID() string { return s.eventID }

// AddHitList registers a named hit list. Re-registering a name
// replaces its contents.
func (s *Store) AddHitList(name string, hits []recon.Hit) {
	s.hitLists[name] = hits
}

// AddVertexList registers a named candidate-vertex list.
func (s *Store) AddVertexList(name string, vertices []recon.CandidateVertex) {
	s.vertexLists[name] = vertices
}

// SetCurrentVertexList designates name as the current vertex list.
func (s *Store) SetCurrentVertexList(name string) error {
	if _, ok := s.vertexLists[name]; !ok {
		return fmt.Errorf("vertex list %q: %w", name, ErrListNotFound)
	}
	s.current = name
	return nil
}

// CurrentVertexList returns the name of the current vertex list, or
// "" when none is designated.
func (s *Store) CurrentVertexList() string { return s.current }

// HitListNames returns the registered hit-list names in sorted order.
func (s *Store) HitListNames() []string {
	names := make([]string, 0, len(s.hitLists))
	for name := range s.hitLists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VertexListNames returns the registered vertex-list names in sorted
// order.
func (s *Store) VertexListNames() []string {
	names := make([]string, 0, len(s.vertexLists))
	for name := range s.vertexLists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Hits returns the named hit list.
func (s *Store) Hits(name string) ([]recon.Hit, error) {
	hits, ok := s.hitLists[name]
	if !ok {
		return nil, fmt.Errorf("hit list %q: %w", name, ErrListNotFound)
	}
	return hits, nil
}

// Vertices returns the named candidate-vertex list.
func (s *Store) Vertices(name string) ([]recon.CandidateVertex, error) {
	vertices, ok := s.vertexLists[name]
	if !ok {
		return nil, fmt.Errorf("vertex list %q: %w", name, ErrListNotFound)
	}
	return vertices, nil
}

// CurrentVertices returns the current vertex list's candidates.
func (s *Store) CurrentVertices() ([]recon.CandidateVertex, error) {
	if s.current == "" {
		return nil, ErrNoCurrentList
	}
	return s.Vertices(s.current)
}

// SaveVertices writes a named vertex list, replacing any previous
// contents under that name.
func (s *Store) SaveVertices(name string, vertices []recon.CandidateVertex) error {
	if name == "" {
		return fmt.Errorf("vertex list name must not be empty")
	}
	s.vertexLists[name] = vertices
	return nil
}

// ReplaceCurrentVertices redesignates the current vertex list.
func (s *Store) ReplaceCurrentVertices(name string) error {
	return s.SetCurrentVertexList(name)
}
