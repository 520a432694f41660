package blob

import (
	"fmt"
	"log/slog"

	"github.com/iburimskiy/voice-blob/internal/palette"
)

// Range is a min/max pair of node scales.
type Range struct {
	Min, Max float64
}

// Layer names one of the three nodes of a VoiceBlob.
type Layer int

const (
	Small Layer = iota
	Medium
	Big
)

func (l Layer) String() string {
	switch l {
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Big:
		return "big"
	default:
		return fmt.Sprintf("Layer(%d)", int(l))
	}
}

const (
	// presentationDecay is the share of the previous presentation level kept
	// on every clock tick.
	presentationDecay = 0.9

	mediumAlpha = 0.3
	bigAlpha    = 0.15

	// outer layers bounce in from and shrink back to this scale.
	restScale = 0.75

	// DefaultStopDuration is the shrink time used by StopAnimating callers
	// that have no preference.
	DefaultStopDuration = 0.15
)

// SmallParams, MediumParams and BigParams return the tuning of the three
// layers for the given scale range.
func SmallParams(r Range) Params {
	return Params{PointsCount: 8, MinRandomness: 0.1, MaxRandomness: 0.5, MinSpeed: 0.2, MaxSpeed: 0.6, MinScale: r.Min, MaxScale: r.Max, IsCircle: true}
}

func MediumParams(r Range) Params {
	return Params{PointsCount: 8, MinRandomness: 1, MaxRandomness: 1, MinSpeed: 0.9, MaxSpeed: 4, MinScale: r.Min, MaxScale: r.Max}
}

func BigParams(r Range) Params {
	return Params{PointsCount: 8, MinRandomness: 1, MaxRandomness: 1, MinSpeed: 0.9, MaxSpeed: 4, MinScale: r.Min, MaxScale: r.Max}
}

// VoiceBlob stacks a small, a medium and a big node that pulse with an audio
// level. Levels are smoothed once per clock tick before they reach the
// nodes; every level update also speeds up the nodes' next morph.
type VoiceBlob struct {
	nodes [3]*Node

	maxLevel          float64
	audioLevel        float64
	presentationLevel float64
	animating         bool
	size              float64

	clock *Clock
}

// New returns a stopped voice blob. Raw levels passed to UpdateLevel are
// divided by maxLevel. A nil gen gets a time-seeded generator.
func New(maxLevel float64, small, medium, big Range, gen *Generator) *VoiceBlob {
	if maxLevel <= 0 {
		panic(fmt.Sprintf("blob: max level must be positive, got %g", maxLevel))
	}
	if gen == nil {
		gen = NewGenerator(nil)
	}
	v := &VoiceBlob{maxLevel: maxLevel}
	v.nodes[Small] = NewNode(SmallParams(small), gen)
	v.nodes[Medium] = NewNode(MediumParams(medium), gen)
	v.nodes[Big] = NewNode(BigParams(big), gen)
	v.clock = NewClock(v.tick)
	return v
}

func (v *VoiceBlob) tick() {
	v.presentationLevel = v.presentationLevel*presentationDecay + v.audioLevel*(1-presentationDecay)
	for _, n := range v.nodes {
		n.SetLevel(v.presentationLevel)
	}
}

// Node returns one of the three layers.
func (v *VoiceBlob) Node(l Layer) *Node { return v.nodes[l] }

// Nodes returns the layers in drawing order, big first.
func (v *VoiceBlob) Nodes() []*Node {
	return []*Node{v.nodes[Big], v.nodes[Medium], v.nodes[Small]}
}

// Configure lets the caller change a layer after construction, typically
// its points count or circle mode.
func (v *VoiceBlob) Configure(l Layer, fn func(n *Node)) {
	fn(v.nodes[l])
}

// Clock returns the clock that smooths the level.
func (v *VoiceBlob) Clock() *Clock { return v.clock }

// MaxLevel returns the raw level that maps to 1.
func (v *VoiceBlob) MaxLevel() float64 { return v.maxLevel }

// AudioLevel returns the last normalized level.
func (v *VoiceBlob) AudioLevel() float64 { return v.audioLevel }

// PresentationLevel returns the smoothed level shown by the nodes.
func (v *VoiceBlob) PresentationLevel() float64 { return v.presentationLevel }

// Animating reports whether the blob is started.
func (v *VoiceBlob) Animating() bool { return v.animating }

// Size returns the side of the square the blob draws into.
func (v *VoiceBlob) Size() float64 { return v.size }

// SetColor tints the blob. The medium and big layers use the color with
// reduced alpha.
func (v *VoiceBlob) SetColor(c palette.Color, animated bool) {
	v.nodes[Small].SetColor(c, animated)
	v.nodes[Medium].SetColor(c.WithAlpha(mediumAlpha), animated)
	v.nodes[Big].SetColor(c.WithAlpha(bigAlpha), animated)
}

// SetNewCustomColor tints the blob with animation. A nil color clears it.
func (v *VoiceBlob) SetNewCustomColor(c *palette.Color) {
	if c == nil {
		v.SetColor(palette.Clear, true)
		return
	}
	v.SetColor(*c, true)
}

// UpdateLevel feeds a raw audio level. The level is normalized by the max
// level and clamped to [0, 1]. Unless immediately is set the nodes ease
// toward it over the following ticks.
func (v *VoiceBlob) UpdateLevel(level float64, immediately bool) {
	normalized := min(1, max(level/v.maxLevel, 0))
	for _, n := range v.nodes {
		n.UpdateSpeedLevel(normalized)
	}
	v.audioLevel = normalized
	if immediately {
		v.presentationLevel = normalized
	}
}

// StartAnimating starts the blob. The outer layers bounce in unless
// immediately is set. Calling it on a started blob does nothing.
func (v *VoiceBlob) StartAnimating(immediately bool) {
	if v.animating {
		return
	}
	v.animating = true

	for _, l := range []Layer{Medium, Big} {
		if immediately {
			v.nodes[l].RemoveScaleAnimations()
		} else {
			v.nodes[l].AnimateScale(restScale, 1)
		}
	}

	v.updateNodesState()
	v.clock.SetPaused(false)
	slog.Debug("voice blob started", "immediately", immediately)
}

// StopAnimating stops the blob, shrinking the outer layers over duration
// seconds. Calling it on a stopped blob does nothing.
func (v *VoiceBlob) StopAnimating(duration float64) {
	if !v.animating {
		return
	}
	v.animating = false

	v.nodes[Medium].AnimateScaleLinear(1, restScale, duration)
	v.nodes[Big].AnimateScaleLinear(1, restScale, duration)

	v.updateNodesState()
	v.clock.SetPaused(true)
	slog.Debug("voice blob stopped", "duration", duration)
}

// Layout sizes the blob. Nodes only start morphing once the blob has a
// size, so a blob started before its first layout starts its nodes here.
func (v *VoiceBlob) Layout(size float64) {
	v.size = size
	for _, n := range v.nodes {
		n.Layout(size)
	}
	v.updateNodesState()
}

func (v *VoiceBlob) updateNodesState() {
	if v.animating {
		if v.size > 0 {
			for _, n := range v.nodes {
				n.StartAnimating()
			}
		}
		return
	}
	for _, n := range v.nodes {
		n.StopAnimating()
	}
}

// Update advances the blob by one frame of dt seconds: it ticks the clock
// and then the nodes.
func (v *VoiceBlob) Update(dt float64) {
	v.clock.Tick()
	for _, n := range v.nodes {
		n.Advance(dt)
	}
}

// Close releases the clock. The blob stops reacting to levels.
func (v *VoiceBlob) Close() {
	v.clock.Invalidate()
}
