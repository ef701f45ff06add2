package recon

import (
	"github.com/harrier-data/vertex.report/internal/geom"
)

// Hit is a single reconstructed charge deposit in one readout view.
// Hits are read-only inputs; a hit list handed to the scorer must be
// view-pure (every hit tagged with the list's view).
type Hit struct {
	ID       string
	View     geom.View
	Position geom.Vector2
}

// CandidateVertex is a proposed 3D interaction point produced by an
// upstream pattern-recognition stage, awaiting confirmation against
// the hit data.
type CandidateVertex struct {
	ID       string
	Position geom.Vector3
}

// VertexScore pairs a candidate with its aggregate figure of merit.
// The candidate is referenced by index into the candidate list handed
// to Select, so scores stay valid however the caller stores the
// candidates themselves.
type VertexScore struct {
	CandidateIndex int
	Score          float64
}

// HitSets carries the three view-pure hit lists consumed by one
// selection pass.
type HitSets struct {
	U, V, W []Hit
}

// Result reports one selection pass. Selected holds at most one
// vertex: the globally highest-scoring candidate, emitted only when
// the gated shortlist is non-empty. Scored lists every candidate that
// passed the three-view on-hit requirement, in ascending score order.
type Result struct {
	Selected  []CandidateVertex
	Scored    []VertexScore
	Shortlist []VertexScore

	// BestIndex is the candidate index of the selected vertex, or -1
	// when nothing was selected.
	BestIndex int
	BestScore float64
}
