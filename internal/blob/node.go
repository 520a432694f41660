package blob

import (
	"fmt"
	"math"

	"github.com/fogleman/ease"
	"honnef.co/go/curve"

	"github.com/iburimskiy/voice-blob/internal/palette"
)

// levelThreshold is the smallest level change that updates the scale.
const levelThreshold = 0.01

// colorFade is how long an animated color change takes, in seconds.
const colorFade = 0.25

// Params are the fixed tuning ranges of a node.
type Params struct {
	PointsCount int

	MinRandomness float64
	MaxRandomness float64

	// Speeds are in transitions per second.
	MinSpeed float64
	MaxSpeed float64

	MinScale float64
	MaxScale float64

	IsCircle bool
}

// Node is one animated blob layer. While animating it keeps morphing from
// its committed shape to a freshly generated one; each morph lasts
// 1/(MinSpeed+(MaxSpeed-MinSpeed)*speedLevel) seconds, where speedLevel is
// the largest boost received since the previous morph started.
//
// A Node is not safe for concurrent use.
type Node struct {
	params     Params
	smoothness float64
	isCircle   bool
	gen        *Generator

	size float64

	fill      palette.Color
	fillFrom  palette.Color
	fillTime  float64
	fillFaded bool

	level        float64
	levelScale   float64
	scaleUpdates int
	layer        layerScale

	// speedLevel accumulates boosts until the next morph starts, which
	// consumes it into lastSpeedLevel and resets it to zero.
	speedLevel     float64
	lastSpeedLevel float64

	active    bool
	from      []curve.Point // shape the running morph started from; nil when idle
	committed []curve.Point // shape the node settles on
	elapsed   float64
	duration  float64
	fraction  float64
}

// NewNode returns an idle node. A nil gen gets a time-seeded generator.
func NewNode(p Params, gen *Generator) *Node {
	if p.PointsCount < 3 {
		panic(fmt.Sprintf("blob: node needs at least 3 points, got %d", p.PointsCount))
	}
	if gen == nil {
		gen = NewGenerator(nil)
	}
	return &Node{
		params:     p,
		smoothness: Smoothness(p.PointsCount),
		isCircle:   p.IsCircle,
		gen:        gen,
		levelScale: p.MinScale,
		layer:      newLayerScale(),
		fillFaded:  true,
	}
}

// PointsCount returns the number of points of generated shapes.
func (n *Node) PointsCount() int { return n.params.PointsCount }

// SetPointsCount changes the number of points. The running morph finishes
// with the old count.
func (n *Node) SetPointsCount(count int) {
	if count < 3 {
		panic(fmt.Sprintf("blob: node needs at least 3 points, got %d", count))
	}
	n.params.PointsCount = count
	n.smoothness = Smoothness(count)
}

// IsCircle reports whether the node draws a plain circle.
func (n *Node) IsCircle() bool { return n.isCircle }

// SetCircle switches between circle and blob rendering. Turning circle mode
// off on an animating node starts morphing on the next Advance.
func (n *Node) SetCircle(circle bool) {
	if n.isCircle == circle {
		return
	}
	n.isCircle = circle
	n.from = nil
	n.fraction = 0
}

// Params returns the node's tuning with the current points count and mode.
func (n *Node) Params() Params {
	p := n.params
	p.IsCircle = n.isCircle
	return p
}

// Layout sets the side of the square the node draws into.
func (n *Node) Layout(size float64) {
	n.size = size
}

// Size returns the side set by Layout.
func (n *Node) Size() float64 { return n.size }

// SetColor sets the fill color, fading from the current one when animated.
func (n *Node) SetColor(c palette.Color, animated bool) {
	if animated {
		n.fillFrom = n.Color()
		n.fillTime = 0
		n.fillFaded = false
	} else {
		n.fillFaded = true
	}
	n.fill = c
}

// Color returns the fill color to draw with right now.
func (n *Node) Color() palette.Color {
	if n.fillFaded {
		return n.fill
	}
	return palette.Blend(n.fillFrom, n.fill, n.fillTime/colorFade)
}

// TargetColor returns the last color passed to SetColor.
func (n *Node) TargetColor() palette.Color { return n.fill }

// Level returns the last applied level.
func (n *Node) Level() float64 { return n.level }

// SetLevel sets the level in [0, 1] that scales the node between its min
// and max scale. Changes of 0.01 or less are dropped.
func (n *Node) SetLevel(level float64) {
	if math.Abs(level-n.level) <= levelThreshold {
		return
	}
	n.level = level
	n.levelScale = n.params.MinScale + (n.params.MaxScale-n.params.MinScale)*level
	n.scaleUpdates++
}

// ScaleUpdates counts how many times SetLevel changed the scale.
func (n *Node) ScaleUpdates() int { return n.scaleUpdates }

// LevelScale returns the scale driven by the level alone.
func (n *Node) LevelScale() float64 { return n.levelScale }

// Scale returns the scale to draw with: the level scale times the layer
// start/stop animation.
func (n *Node) Scale() float64 { return n.levelScale * n.layer.value }

// AnimateScale bounces the layer scale from from to to.
func (n *Node) AnimateScale(from, to float64) { n.layer.bounce(from, to) }

// AnimateScaleLinear moves the layer scale linearly from from to to over
// duration seconds and holds it there.
func (n *Node) AnimateScaleLinear(from, to, duration float64) {
	n.layer.tween(from, to, duration)
}

// RemoveScaleAnimations cancels the layer scale animation.
func (n *Node) RemoveScaleAnimations() { n.layer.reset() }

// ScaleAnimating reports whether a layer scale animation is running.
func (n *Node) ScaleAnimating() bool { return n.layer.running() }

// UpdateSpeedLevel boosts the speed of the next morph. The boost is the
// maximum of all levels received since the previous morph started.
func (n *Node) UpdateSpeedLevel(level float64) {
	n.speedLevel = max(n.speedLevel, level)
}

// SpeedLevel returns the pending speed boost.
func (n *Node) SpeedLevel() float64 { return n.speedLevel }

// LastSpeedLevel returns the boost consumed by the running morph.
func (n *Node) LastSpeedLevel() float64 { return n.lastSpeedLevel }

// StartAnimating starts morphing. It does nothing if the node is already
// animating; circle nodes only animate their scale.
func (n *Node) StartAnimating() {
	if n.active {
		return
	}
	n.active = true
	n.animateToNewShape()
}

// StopAnimating cancels the running morph, leaving the committed shape.
func (n *Node) StopAnimating() {
	if !n.active {
		return
	}
	n.active = false
	n.from = nil
	n.fraction = 0
	n.elapsed = 0
}

// Animating reports whether the node is between StartAnimating and
// StopAnimating.
func (n *Node) Animating() bool { return n.active }

// Transitioning reports whether a morph is in flight.
func (n *Node) Transitioning() bool { return n.from != nil }

// Transition returns the linear progress of the running morph in [0, 1].
func (n *Node) Transition() float64 { return n.fraction }

// Duration returns the length of the running morph in seconds.
func (n *Node) Duration() float64 { return n.duration }

// Advance moves the node's animations forward by dt seconds. A finished
// morph commits its shape and, while the node is animating, the next one
// starts right away.
func (n *Node) Advance(dt float64) {
	n.layer.advance(dt)
	if !n.fillFaded {
		n.fillTime += dt
		if n.fillTime >= colorFade {
			n.fillFaded = true
		}
	}

	if !n.active || n.isCircle {
		return
	}
	if n.from == nil {
		n.animateToNewShape()
		return
	}

	n.elapsed += dt
	n.fraction = min(n.elapsed/n.duration, 1)
	if n.fraction >= 1 {
		n.from = nil
		n.animateToNewShape()
	}
}

func (n *Node) animateToNewShape() {
	if n.isCircle {
		return
	}
	if n.committed == nil {
		n.committed = n.nextBlob()
	}

	n.from = n.committed
	n.committed = n.nextBlob()
	n.duration = 1 / (n.params.MinSpeed + (n.params.MaxSpeed-n.params.MinSpeed)*n.speedLevel)
	n.elapsed = 0
	n.fraction = 0

	n.lastSpeedLevel = n.speedLevel
	n.speedLevel = 0
}

func (n *Node) nextBlob() []curve.Point {
	randomness := n.params.MinRandomness + (n.params.MaxRandomness-n.params.MinRandomness)*n.speedLevel
	return n.gen.Blob(n.params.PointsCount, randomness)
}

// Ring returns the unit ring currently shown, interpolated when a morph is
// running, or nil when the node has no shape yet.
func (n *Node) Ring() []curve.Point {
	if n.from == nil || len(n.from) != len(n.committed) {
		return n.committed
	}
	t := ease.InOutQuad(n.fraction)
	ring := make([]curve.Point, len(n.committed))
	for i, to := range n.committed {
		ring[i] = n.from[i].Lerp(to, t)
	}
	return ring
}

// Path returns the outline to draw, centered on the origin and sized to the
// node, before Scale is applied. The path is nil for blob nodes that were
// never started.
func (n *Node) Path() curve.BezPath {
	if n.isCircle {
		return Circle(n.size / 2)
	}
	ring := n.Ring()
	if ring == nil {
		return nil
	}
	return SmoothCurve(ring, n.size, n.smoothness)
}
