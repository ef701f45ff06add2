package recon

import (
	"fmt"
	"sort"

	"github.com/harrier-data/vertex.report/internal/geom"
)

// Selector runs the scoring and shortlist-gating pass over candidate
// vertices. It holds no per-run state: every Select call works on
// local histograms and score lists, so a Selector may be reused
// across events.
type Selector struct {
	cfg  SelectionConfig
	proj geom.Projector
}

// NewSelector validates cfg and returns a Selector projecting through
// proj.
func NewSelector(cfg SelectionConfig, proj geom.Projector) (*Selector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid selection config: %w", err)
	}
	if proj == nil {
		return nil, fmt.Errorf("selector requires a projector")
	}
	return &Selector{cfg: cfg, proj: proj}, nil
}

// Config returns the selector's configuration.
func (s *Selector) Config() SelectionConfig { return s.cfg }

// Select scores every candidate against the three view hit lists and
// picks the best-supported vertex. Candidates not on a hit in all
// three views are discarded. An empty candidate list, or no candidate
// surviving the on-hit requirement, is not an error: the Result
// simply selects nothing.
func (s *Selector) Select(candidates []CandidateVertex, hits HitSets) (*Result, error) {
	scored := make([]VertexScore, 0, len(candidates))

	for i, candidate := range candidates {
		score, onHitAllViews, err := s.scoreCandidate(candidate, hits)
		if err != nil {
			return nil, fmt.Errorf("scoring candidate %s: %w", candidate.ID, err)
		}
		if !onHitAllViews {
			continue
		}
		scored = append(scored, VertexScore{CandidateIndex: i, Score: score})
	}

	// Ascending by score: the gate iteration deliberately walks from
	// the weak end. The emitted vertex is still the global maximum,
	// picked separately below.
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score < scored[j].Score })

	shortlist := make([]VertexScore, 0, s.cfg.MaxTopScoreCandidates)
	for n, vs := range scored {
		if n >= s.cfg.MaxTopScoreCandidates {
			break
		}
		if len(shortlist) > 0 {
			if !s.acceptVertexLocation(candidates[vs.CandidateIndex].Position, candidates, shortlist) {
				continue
			}
			if !s.acceptVertexScore(vs.Score, shortlist) {
				continue
			}
		}
		shortlist = append(shortlist, vs)
	}

	result := &Result{
		Scored:    scored,
		Shortlist: shortlist,
		BestIndex: -1,
	}

	if len(shortlist) > 0 {
		// The emitted vertex is always the global score maximum of the
		// full scored set, independent of what the shortlist retained.
		best := scored[0]
		for _, vs := range scored[1:] {
			if vs.Score > best.Score {
				best = vs
			}
		}
		result.Selected = []CandidateVertex{candidates[best.CandidateIndex]}
		result.BestIndex = best.CandidateIndex
		result.BestScore = best.Score
	}

	return result, nil
}

// scoreCandidate runs the per-view scorer for all three views and
// aggregates the figure of merit. The second return is true only if
// the candidate lies on a hit in every view.
func (s *Selector) scoreCandidate(candidate CandidateVertex, hits HitSets) (float64, bool, error) {
	histU, err := NewPhiHistogram(s.cfg.HistogramPhiBins, s.cfg.HistogramPhiMin, s.cfg.HistogramPhiMax)
	if err != nil {
		return 0, false, err
	}
	histV, err := NewPhiHistogram(s.cfg.HistogramPhiBins, s.cfg.HistogramPhiMin, s.cfg.HistogramPhiMax)
	if err != nil {
		return 0, false, err
	}
	histW, err := NewPhiHistogram(s.cfg.HistogramPhiBins, s.cfg.HistogramPhiMin, s.cfg.HistogramPhiMax)
	if err != nil {
		return 0, false, err
	}

	onHitU, err := s.ScoreView(candidate.Position, geom.ViewU, hits.U, histU)
	if err != nil {
		return 0, false, err
	}
	onHitV, err := s.ScoreView(candidate.Position, geom.ViewV, hits.V, histV)
	if err != nil {
		return 0, false, err
	}
	onHitW, err := s.ScoreView(candidate.Position, geom.ViewW, hits.W, histW)
	if err != nil {
		return 0, false, err
	}

	if !onHitU || !onHitV || !onHitW {
		return 0, false, nil
	}

	return FigureOfMerit(histU, histV, histW), true, nil
}

// acceptVertexLocation applies the spatial-exclusion gate: the
// candidate must sit at least MinCandidateDisplacement from every
// already-accepted vertex.
func (s *Selector) acceptVertexLocation(pos geom.Vector3, candidates []CandidateVertex, shortlist []VertexScore) bool {
	for _, accepted := range shortlist {
		displacement := pos.Sub(candidates[accepted.CandidateIndex].Position).Magnitude()
		if displacement < s.cfg.MinCandidateDisplacement {
			return false
		}
	}
	return true
}

// acceptVertexScore applies the score-fraction gate: the candidate's
// score must reach MinCandidateScoreFraction of every already-accepted
// entry's score.
func (s *Selector) acceptVertexScore(score float64, shortlist []VertexScore) bool {
	for _, accepted := range shortlist {
		if score < s.cfg.MinCandidateScoreFraction*accepted.Score {
			return false
		}
	}
	return true
}
