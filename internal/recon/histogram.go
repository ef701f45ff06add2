package recon

import "fmt"

// PhiHistogram is a fixed-range angular accumulator over [phiMin,
// phiMax) with equal-width bins. It is created fresh per (candidate,
// view) pair and discarded once its figure of merit is extracted.
type PhiHistogram struct {
	nBins    int
	phiMin   float64
	phiMax   float64
	binWidth float64
	bins     []float64
}

// NewPhiHistogram builds an empty histogram with nBins bins covering
// [phiMin, phiMax).
func NewPhiHistogram(nBins int, phiMin, phiMax float64) (*PhiHistogram, error) {
	if nBins <= 0 {
		return nil, fmt.Errorf("histogram bin count must be positive, got %d", nBins)
	}
	if phiMin >= phiMax {
		return nil, fmt.Errorf("histogram range invalid: min %f >= max %f", phiMin, phiMax)
	}
	return &PhiHistogram{
		nBins:    nBins,
		phiMin:   phiMin,
		phiMax:   phiMax,
		binWidth: (phiMax - phiMin) / float64(nBins),
		bins:     make([]float64, nBins),
	}, nil
}

// Fill adds weight to the bin containing phi. Values outside the
// histogram range are dropped silently. Callers must supply finite,
// non-negative weights; Fill does not police them.
func (h *PhiHistogram) Fill(phi, weight float64) {
	if phi < h.phiMin || phi >= h.phiMax {
		return
	}
	bin := int((phi - h.phiMin) / h.binWidth)
	if bin >= h.nBins {
		// Guard the float boundary: phi just below phiMax can land on
		// nBins after division.
		bin = h.nBins - 1
	}
	h.bins[bin] += weight
}

// NBins returns the number of bins.
func (h *PhiHistogram) NBins() int { return h.nBins }

// BinContent returns the accumulated weight of bin i for i in
// [0, NBins). Out-of-range indices return 0.
func (h *PhiHistogram) BinContent(i int) float64 {
	if i < 0 || i >= h.nBins {
		return 0
	}
	return h.bins[i]
}

// BinCenter returns the angular midpoint of bin i.
func (h *PhiHistogram) BinCenter(i int) float64 {
	return h.phiMin + (float64(i)+0.5)*h.binWidth
}
