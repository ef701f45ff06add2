package geom

import (
	"fmt"
	"math"
)

// DefaultWireAngleRad is the inclination of the U and V wires from
// vertical, in radians. The W wires are vertical, so the W coordinate
// is the beam coordinate Z unchanged.
const DefaultWireAngleRad = math.Pi / 3

// Projector maps a 3D event-frame position onto the 2D readout plane
// of a view. Implementations must be safe for repeated use within a
// single reconstruction pass.
type Projector interface {
	Project(pos Vector3, view View) (Vector2, error)
}

// WirePlaneProjector projects through the standard three-plane wire
// geometry. The drift coordinate X passes through unchanged; the wire
// coordinate is z·cos(θ) − y·sin(θ) for the view's wire angle θ,
// with θ_W = 0 and θ_V = −θ_U for a symmetric plane pair.
type WirePlaneProjector struct {
	angleU float64
	angleV float64
}

// NewWirePlaneProjector builds a projector with explicit U and V wire
// angles in radians.
func NewWirePlaneProjector(angleU, angleV float64) *WirePlaneProjector {
	return &WirePlaneProjector{angleU: angleU, angleV: angleV}
}

// DefaultWirePlaneProjector returns a projector for the symmetric
// default geometry (U and V at ±DefaultWireAngleRad).
func DefaultWirePlaneProjector() *WirePlaneProjector {
	return NewWirePlaneProjector(DefaultWireAngleRad, -DefaultWireAngleRad)
}

// Project maps pos onto the readout plane of view.
func (p *WirePlaneProjector) Project(pos Vector3, view View) (Vector2, error) {
	switch view {
	case ViewU:
		return Vector2{X: pos.X, Z: pos.Z*math.Cos(p.angleU) - pos.Y*math.Sin(p.angleU)}, nil
	case ViewV:
		return Vector2{X: pos.X, Z: pos.Z*math.Cos(p.angleV) - pos.Y*math.Sin(p.angleV)}, nil
	case ViewW:
		return Vector2{X: pos.X, Z: pos.Z}, nil
	}
	return Vector2{}, fmt.Errorf("cannot project onto unknown view %q", view)
}
