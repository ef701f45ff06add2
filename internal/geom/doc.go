// Package geom owns the detector coordinate model: 3D event-frame
// vectors, 2D wire-plane vectors, the closed set of readout views
// (U, V, W), and the projection from 3D positions onto a view's
// readout plane.
//
// Dependency rule: geom depends on nothing above the standard library.
// No reconstruction or persistence code is allowed in this package.
package geom
