package recon

import (
	"errors"
	"fmt"
	"math"

	"github.com/harrier-data/vertex.report/internal/geom"
)

// ErrViewMismatch reports a hit tagged with a different view than the
// collection it arrived in. This is an upstream data-integrity bug,
// never a recoverable condition.
var ErrViewMismatch = errors.New("hit view does not match collection view")

// minHitDisplacement is the floor applied to the displacement
// magnitude before exponentiation, so a hit coincident with the
// projected vertex yields a large finite weight rather than an
// infinity under a negative deweighting power.
const minHitDisplacement = 1e-6

// ScoreView scores one candidate position against one view's hit
// list: the candidate is projected into the view, and every relevant
// hit fills h at the bearing of its displacement from the projected
// position, weighted by magnitude^HitDeweightingPower. It reports
// whether the projected position lies on any hit.
func (s *Selector) ScoreView(pos geom.Vector3, view geom.View, hits []Hit, h *PhiHistogram) (bool, error) {
	pos2D, err := s.proj.Project(pos, view)
	if err != nil {
		return false, fmt.Errorf("projecting candidate into view %s: %w", view, err)
	}

	onHit := false
	for _, hit := range hits {
		if hit.View != view {
			return false, fmt.Errorf("hit %s tagged %s in %s collection: %w",
				hit.ID, hit.View, view, ErrViewMismatch)
		}

		displacement := hit.Position.Sub(pos2D)
		magnitude := displacement.Magnitude()

		if magnitude > s.cfg.MaxHitVertexDisplacement {
			continue
		}
		if magnitude < s.cfg.MaxOnHitDisplacement {
			onHit = true
		}
		if magnitude < minHitDisplacement {
			magnitude = minHitDisplacement
		}

		phi := math.Atan2(displacement.Z, displacement.X)
		h.Fill(phi, math.Pow(magnitude, s.cfg.HitDeweightingPower))
	}

	return onHit, nil
}
