package blob

import (
	"fmt"
	"math"

	"honnef.co/go/curve"
)

// handles holds the two tangent handles of one ring point.
type handles struct {
	point   curve.Point
	in, out curve.Point
}

// SmoothCurve returns a closed path through every point of ring, in order,
// with exactly one cubic segment per point. The ring is in unit coordinates
// and is scaled by length. At each point the tangent runs parallel to the
// chord between its neighbors; the outgoing handle is smoothness times the
// distance to the next point and the incoming handle smoothness times the
// distance to the previous one.
//
// SmoothCurve panics if ring has fewer than 3 points.
func SmoothCurve(ring []curve.Point, length, smoothness float64) curve.BezPath {
	n := len(ring)
	if n < 3 {
		panic(fmt.Sprintf("blob: smooth curve needs at least 3 points, got %d", n))
	}

	scale := curve.Scale(length, length)
	hs := make([]handles, n)
	for i := range ring {
		prev := ring[(i+n-1)%n].Transform(scale)
		curr := ring[i].Transform(scale)
		next := ring[(i+1)%n].Transform(scale)

		angle := next.Sub(prev).Angle()
		hs[i] = handles{
			point: curr,
			out:   curr.Translate(curve.VecFromAngle(angle).Mul(smoothness * curr.Distance(next))),
			in:    curr.Translate(curve.VecFromAngle(angle + math.Pi).Mul(smoothness * curr.Distance(prev))),
		}
	}

	path := make(curve.BezPath, 0, n+2)
	path.MoveTo(hs[0].point)
	for i := range hs {
		next := hs[(i+1)%n]
		path.CubicTo(hs[i].out, next.in, next.point)
	}
	path.ClosePath()
	return path
}

// Smoothness returns the handle coefficient that makes a regular ring of
// pointsCount points render as a circle.
func Smoothness(pointsCount int) float64 {
	angle := 2 * math.Pi / float64(pointsCount)
	return ((4.0 / 3.0) * math.Tan(angle/4)) / math.Sin(angle/2) / 2
}
