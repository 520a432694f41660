package blob

import (
	"math"
	"math/rand"

	"honnef.co/go/curve"
)

// countingRand wraps a seeded source and counts draws.
type countingRand struct {
	r     *rand.Rand
	calls int
}

func newCountingRand(seed int64) *countingRand {
	return &countingRand{r: rand.New(rand.NewSource(seed))}
}

func (c *countingRand) Intn(n int) int {
	c.calls++
	return c.r.Intn(n)
}

// constRand always returns the same draw, clamped to the requested range.
type constRand int

func (c constRand) Intn(n int) int { return min(int(c), n-1) }

// cubics returns the cubic segments of a path in order.
func cubics(p curve.BezPath) []curve.CubicBez {
	var out []curve.CubicBez
	for seg := range p.Segments() {
		out = append(out, seg.Cubic())
	}
	return out
}

func regularRing(n int, radius float64) []curve.Point {
	ring := make([]curve.Point, n)
	for i := range ring {
		theta := 2 * math.Pi * float64(i) / float64(n)
		ring[i] = curve.Pt(math.Cos(theta)*radius, math.Sin(theta)*radius)
	}
	return ring
}
