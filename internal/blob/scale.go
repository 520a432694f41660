package blob

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/fogleman/ease"
)

// FPS is the frame rate the layer spring is tuned for. Hosts are expected
// to call Advance once per frame at this rate.
const FPS = 60

const (
	bounceFrequency = 20.0
	bounceDamping   = 0.45
	settleEpsilon   = 1e-3
)

type scaleMode int

const (
	scaleIdle scaleMode = iota
	scaleSpring
	scaleTween
)

// layerScale is the extra scale applied to a whole layer on start and stop,
// on top of the level driven scale. Idle layers keep their last value.
type layerScale struct {
	mode  scaleMode
	value float64

	spring   harmonica.Spring
	velocity float64
	target   float64

	from, to          float64
	elapsed, duration float64
}

func newLayerScale() layerScale {
	return layerScale{value: 1}
}

// bounce springs from from to to, overshooting the target before settling.
func (s *layerScale) bounce(from, to float64) {
	s.mode = scaleSpring
	s.spring = harmonica.NewSpring(harmonica.FPS(FPS), bounceFrequency, bounceDamping)
	s.value = from
	s.velocity = 0
	s.target = to
}

// tween moves linearly from from to to over duration seconds and holds to.
func (s *layerScale) tween(from, to, duration float64) {
	if duration <= 0 {
		s.mode = scaleIdle
		s.value = to
		return
	}
	s.mode = scaleTween
	s.value = from
	s.from, s.to = from, to
	s.elapsed, s.duration = 0, duration
}

// reset drops any running animation and restores the identity scale.
func (s *layerScale) reset() {
	s.mode = scaleIdle
	s.value = 1
	s.velocity = 0
}

func (s *layerScale) running() bool { return s.mode != scaleIdle }

func (s *layerScale) advance(dt float64) {
	switch s.mode {
	case scaleSpring:
		s.value, s.velocity = s.spring.Update(s.value, s.velocity, s.target)
		if math.Abs(s.value-s.target) < settleEpsilon && math.Abs(s.velocity) < settleEpsilon {
			s.value = s.target
			s.mode = scaleIdle
		}
	case scaleTween:
		s.elapsed += dt
		t := s.elapsed / s.duration
		if t >= 1 {
			s.value = s.to
			s.mode = scaleIdle
			return
		}
		s.value = s.from + (s.to-s.from)*ease.Linear(t)
	}
}
