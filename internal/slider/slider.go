// Package slider implements a horizontal value slider whose track is a color
// gradient, optionally a rainbow.
package slider

import (
	"fmt"

	"github.com/fogleman/ease"
	"golang.org/x/image/colornames"

	"github.com/iburimskiy/voice-blob/internal/palette"
)

const (
	DefaultThickness = 2.0
	DefaultThumbSize = 28.0

	// inset is the horizontal gap between the bounds and the track.
	inset = 2.0

	// minTouchSize is the smallest square around the thumb that accepts a
	// touch.
	minTouchSize = 44.0

	rainbowStops = 40

	// glide is how long an animated thumb move takes, in seconds.
	glide = 0.2
)

// Point is a position in the host's coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p is inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Stop is one color of the track gradient at a location in [0, 1].
type Stop struct {
	Location float64
	Color    palette.Color
}

// GradientSlider is a value in [Min, Max] picked by dragging a round thumb
// along a gradient track.
type GradientSlider struct {
	rainbow  bool
	minColor palette.Color
	maxColor palette.Color
	stops    []Stop

	min, max float64
	value    float64

	thickness float64
	thumbSize float64

	bounds   Rect
	thumb    Point
	from     Point
	target   Point
	glideFor float64
	gliding  bool
	tracking bool

	// OnChange is called with the new value while the thumb is dragged and
	// when it is released.
	OnChange func(s *GradientSlider, value float64)
}

// New returns a slider over [0, 1] with a black track.
func New() *GradientSlider {
	black := palette.FromColor(colornames.Black)
	s := &GradientSlider{
		minColor:  black,
		maxColor:  black,
		max:       1,
		thickness: DefaultThickness,
		thumbSize: DefaultThumbSize,
	}
	s.updateTrackColors()
	return s
}

// Value returns the current value.
func (s *GradientSlider) Value() float64 { return s.value }

// SetValue sets the value, pinned to [Min, Max]. An animated change glides
// the thumb to its new position.
func (s *GradientSlider) SetValue(v float64, animated bool) {
	s.value = max(min(v, s.max), s.min)
	s.updateThumbPosition(animated)
}

// Min and Max return the value range.
func (s *GradientSlider) Min() float64 { return s.min }
func (s *GradientSlider) Max() float64 { return s.max }

// SetRange changes the value range. The current value is pinned to the new
// range. SetRange panics unless lo < hi.
func (s *GradientSlider) SetRange(lo, hi float64) {
	if !(lo < hi) {
		panic(fmt.Sprintf("slider: invalid range [%g, %g]", lo, hi))
	}
	s.min, s.max = lo, hi
	s.SetValue(s.value, false)
}

// Rainbow reports whether the track is a hue sweep.
func (s *GradientSlider) Rainbow() bool { return s.rainbow }

// SetRainbow switches the track to a hue sweep that keeps the saturation,
// brightness and alpha of the min color.
func (s *GradientSlider) SetRainbow(rainbow bool) {
	s.rainbow = rainbow
	s.updateTrackColors()
}

// MinColor returns the color at the start of the track.
func (s *GradientSlider) MinColor() palette.Color { return s.minColor }

// SetMinColor sets the color at the start of the track.
func (s *GradientSlider) SetMinColor(c palette.Color) {
	s.minColor = c
	s.updateTrackColors()
}

// MaxColor returns the color at the end of the track.
func (s *GradientSlider) MaxColor() palette.Color { return s.maxColor }

// SetMaxColor sets the color at the end of the track.
func (s *GradientSlider) SetMaxColor(c palette.Color) {
	s.maxColor = c
	s.updateTrackColors()
}

// Stops returns the track gradient.
func (s *GradientSlider) Stops() []Stop { return s.stops }

// ColorAt returns the track color at location t in [0, 1].
func (s *GradientSlider) ColorAt(t float64) palette.Color {
	stops := s.stops
	if t <= stops[0].Location {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Location {
			a, b := stops[i-1], stops[i]
			return palette.Blend(a.Color, b.Color, (t-a.Location)/(b.Location-a.Location))
		}
	}
	return stops[len(stops)-1].Color
}

func (s *GradientSlider) updateTrackColors() {
	if !s.rainbow {
		s.stops = []Stop{{0, s.minColor}, {1, s.maxColor}}
		return
	}
	step := 1.0 / rainbowStops
	s.stops = make([]Stop, rainbowStops+1)
	for i := range s.stops {
		loc := step * float64(i)
		s.stops[i] = Stop{
			Location: loc,
			Color:    palette.HSBA(loc, s.minColor.Saturation, s.minColor.Brightness, s.minColor.Alpha),
		}
	}
}

// Thickness returns the track height.
func (s *GradientSlider) Thickness() float64 { return s.thickness }

// SetThickness sets the track height.
func (s *GradientSlider) SetThickness(t float64) { s.thickness = t }

// ThumbSize returns the thumb diameter.
func (s *GradientSlider) ThumbSize() float64 { return s.thumbSize }

// SetThumbSize sets the thumb diameter.
func (s *GradientSlider) SetThumbSize(size float64) {
	s.thumbSize = size
	s.updateThumbPosition(false)
}

// Height returns the height the slider wants: one thumb.
func (s *GradientSlider) Height() float64 { return s.thumbSize }

// Layout places the slider.
func (s *GradientSlider) Layout(bounds Rect) {
	s.bounds = bounds
	s.updateThumbPosition(false)
}

// Bounds returns the rectangle set by Layout.
func (s *GradientSlider) Bounds() Rect { return s.bounds }

// Track returns the track rectangle.
func (s *GradientSlider) Track() Rect {
	w := s.bounds.W - 2*inset
	return Rect{
		X: s.bounds.X + inset,
		Y: s.bounds.Y + s.bounds.H/2 - s.thickness/2,
		W: w,
		H: s.thickness,
	}
}

// Thumb returns the center of the thumb as drawn.
func (s *GradientSlider) Thumb() Point { return s.thumb }

func (s *GradientSlider) updateThumbPosition(animated bool) {
	perc := (s.value - s.min) / (s.max - s.min)

	track := s.Track()
	travel := track.W - s.thumbSize
	left := track.X + track.W/2 - travel/2
	target := Point{X: left + travel*perc, Y: s.bounds.Y + s.bounds.H/2}

	if !animated {
		s.thumb = target
		s.gliding = false
		return
	}
	s.from = s.thumb
	s.target = target
	s.glideFor = 0
	s.gliding = true
}

// Advance moves an animated thumb by dt seconds.
func (s *GradientSlider) Advance(dt float64) {
	if !s.gliding {
		return
	}
	s.glideFor += dt
	t := s.glideFor / glide
	if t >= 1 {
		s.thumb = s.target
		s.gliding = false
		return
	}
	e := ease.OutQuad(t)
	s.thumb = Point{
		X: s.from.X + (s.target.X-s.from.X)*e,
		Y: s.from.Y + (s.target.Y-s.from.Y)*e,
	}
}

// ValueForLocation maps a pointer position to a value, pinned to the range.
func (s *GradientSlider) ValueForLocation(p Point) float64 {
	left := s.bounds.X + inset
	w := s.bounds.W - 2*inset
	perc := max(min((p.X-left)/w, 1), 0)
	return perc*(s.max-s.min) + s.min
}

// Tracking reports whether the thumb is being dragged.
func (s *GradientSlider) Tracking() bool { return s.tracking }

// BeginTracking starts a drag if p hits the thumb. The hit area is at least
// 44 points wide.
func (s *GradientSlider) BeginTracking(p Point) bool {
	d := max(s.thumbSize, minTouchSize)
	hit := Rect{X: s.thumb.X - d/2, Y: s.thumb.Y - d/2, W: d, H: d}
	if !hit.Contains(p) {
		return false
	}
	s.tracking = true
	return true
}

// ContinueTracking moves the thumb under the pointer.
func (s *GradientSlider) ContinueTracking(p Point) bool {
	if !s.tracking {
		return false
	}
	s.SetValue(s.ValueForLocation(p), false)
	s.changed()
	return true
}

// EndTracking finishes a drag, taking the value at p when it is known.
func (s *GradientSlider) EndTracking(p *Point) {
	if !s.tracking {
		return
	}
	s.tracking = false
	if p != nil {
		s.SetValue(s.ValueForLocation(*p), false)
	}
	s.changed()
}

func (s *GradientSlider) changed() {
	if s.OnChange != nil {
		s.OnChange(s, s.value)
	}
}

func (s *GradientSlider) String() string {
	return fmt.Sprintf("(value: %g, minimum: %g, maximum: %g)", s.value, s.min, s.max)
}
