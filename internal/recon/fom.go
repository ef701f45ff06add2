package recon

import "gonum.org/v1/gonum/floats"

// FigureOfMerit reduces populated angular histograms to a single
// scalar: the sum over all histograms of the sum of squared bin
// contents. Squaring rewards weight concentrated into few bins, so a
// sharply peaked angular distribution around a true vertex outscores
// a diffuse one of equal total weight.
func FigureOfMerit(histograms ...*PhiHistogram) float64 {
	var fom float64
	for _, h := range histograms {
		fom += floats.Dot(h.bins, h.bins)
	}
	return fom
}
