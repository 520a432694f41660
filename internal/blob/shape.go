package blob

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"honnef.co/go/curve"
)

// Rand is the random source used to generate shapes. *rand.Rand satisfies
// it.
type Rand interface {
	// Intn returns a non-negative pseudo-random number in [0,n).
	Intn(n int) int
}

// NewRand returns a time-seeded random source.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Generator produces random blob outlines.
type Generator struct {
	rng Rand
}

// NewGenerator returns a generator drawing from rng. A nil rng gets a
// time-seeded source.
func NewGenerator(rng Rand) *Generator {
	if rng == nil {
		rng = NewRand()
	}
	return &Generator{rng: rng}
}

// Blob returns a ring of pointsCount points around the origin with radii in
// [floor/2, 1/2], where floor = 1/(1+randomness/10). Every point lies inside
// the unit disk. Consecutive points are separated by the base angle 2π/n
// with a shared jitter of up to ±5% of the base angle times the base angle.
//
// Blob panics if pointsCount is less than 3.
func (g *Generator) Blob(pointsCount int, randomness float64) []curve.Point {
	if pointsCount < 3 {
		panic(fmt.Sprintf("blob: shape needs at least 3 points, got %d", pointsCount))
	}

	angle := 2 * math.Pi / float64(pointsCount)
	rangeStart := 1 / (1 + randomness/10)
	startAngle := angle * float64(g.rng.Intn(100)) / 100

	points := make([]curve.Point, pointsCount)
	for i := range points {
		offset := (rangeStart + g.unit()*(1-rangeStart)) / 2
		angleRandomness := angle * 0.1
		randAngle := angle + angle*(angleRandomness*float64(g.rng.Intn(100))/100-angleRandomness*0.5)
		theta := startAngle + float64(i)*randAngle
		points[i] = curve.Pt(math.Sin(theta)*offset, math.Cos(theta)*offset)
	}
	return points
}

// unit returns a value in [0, 1) with a resolution of 1/1000.
func (g *Generator) unit() float64 {
	const accuracy = 1000
	return float64(g.rng.Intn(accuracy)) / accuracy
}
