package recon

import (
	"fmt"

	"github.com/harrier-data/vertex.report/internal/geom"
)

// ListProvider is the collection contract with the host event store:
// named view-pure hit lists are read, the current vertex list supplies
// the candidates, and the selected vertex is written back by name.
type ListProvider interface {
	Hits(name string) ([]Hit, error)
	CurrentVertices() ([]CandidateVertex, error)
	SaveVertices(name string, vertices []CandidateVertex) error
	ReplaceCurrentVertices(name string) error
}

// Algorithm binds a Selector to the named collections of an event
// store and runs one selection pass end to end.
type Algorithm struct {
	selector *Selector
}

// NewAlgorithm builds the selection algorithm from a validated
// configuration and a projector.
func NewAlgorithm(cfg SelectionConfig, proj geom.Projector) (*Algorithm, error) {
	selector, err := NewSelector(cfg, proj)
	if err != nil {
		return nil, err
	}
	return &Algorithm{selector: selector}, nil
}

// Selector exposes the underlying selector, e.g. for per-view
// diagnostics.
func (a *Algorithm) Selector() *Selector { return a.selector }

// Run reads the candidate and hit lists from lists, selects the best
// vertex, and writes the single-element output list. When nothing
// survives selection, Run completes successfully without writing and
// the Result selects nothing.
func (a *Algorithm) Run(lists ListProvider) (*Result, error) {
	cfg := a.selector.Config()

	candidates, err := lists.CurrentVertices()
	if err != nil {
		return nil, fmt.Errorf("reading candidate vertex list: %w", err)
	}

	var hits HitSets
	if hits.U, err = lists.Hits(cfg.InputHitListU); err != nil {
		return nil, fmt.Errorf("reading hit list %q: %w", cfg.InputHitListU, err)
	}
	if hits.V, err = lists.Hits(cfg.InputHitListV); err != nil {
		return nil, fmt.Errorf("reading hit list %q: %w", cfg.InputHitListV, err)
	}
	if hits.W, err = lists.Hits(cfg.InputHitListW); err != nil {
		return nil, fmt.Errorf("reading hit list %q: %w", cfg.InputHitListW, err)
	}

	result, err := a.selector.Select(candidates, hits)
	if err != nil {
		return nil, err
	}

	if len(result.Selected) > 0 {
		if err := lists.SaveVertices(cfg.OutputVertexList, result.Selected); err != nil {
			return nil, fmt.Errorf("saving vertex list %q: %w", cfg.OutputVertexList, err)
		}
		if cfg.ReplaceCurrentVertexList {
			if err := lists.ReplaceCurrentVertices(cfg.OutputVertexList); err != nil {
				return nil, fmt.Errorf("replacing current vertex list: %w", err)
			}
		}
	}

	return result, nil
}
