// Package blob implements the morphing blob shapes: the smooth closed curves
// they are drawn with, the random shapes they morph between, the per-layer
// animation state and the three-layer voice blob that reacts to audio level.
package blob

import "honnef.co/go/curve"

// circleTolerance keeps curve.Circle at its four-segment form for radii up
// to about 500.
const circleTolerance = 0.1

// Circle returns a closed four-segment circle centered on the origin,
// starting at (radius, 0).
func Circle(radius float64) curve.BezPath {
	return curve.Circle{Radius: radius}.Path(circleTolerance)
}
