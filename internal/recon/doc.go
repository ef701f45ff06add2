// Package recon owns vertex selection: scoring candidate interaction
// vertices against the hit topology of the three readout views and
// committing the best-supported candidate.
//
// The pipeline per candidate: project the 3D position into each view,
// accumulate a weighted angular histogram of hit bearings around the
// projected position (PhiHistogram), reduce the three histograms to a
// scalar figure of merit, then rank and gate the surviving candidates
// (Selector).
//
// Dependency rule: recon may depend on geom, but never on the event
// store or persistence layers; those consume recon through the
// Algorithm's ListProvider interface. No SQL/database code is allowed
// in this package.
package recon
