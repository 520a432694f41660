package slider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/voice-blob/internal/palette"
)

func newLaidOut() *GradientSlider {
	s := New()
	s.Layout(Rect{X: 10, Y: 20, W: 204, H: 28})
	return s
}

func TestSliderDefaults(t *testing.T) {
	s := New()
	assert.Equal(t, "(value: 0, minimum: 0, maximum: 1)", s.String())
	assert.Equal(t, DefaultThumbSize, s.Height())
	assert.Equal(t, DefaultThickness, s.Thickness())
	require.Len(t, s.Stops(), 2)
	assert.Equal(t, "#000000", s.Stops()[1].Color.Hex())
}

func TestSliderValueIsPinned(t *testing.T) {
	s := newLaidOut()
	s.SetValue(0.7, false)
	assert.Equal(t, 0.7, s.Value())
	s.SetValue(3, false)
	assert.Equal(t, 1.0, s.Value())
	s.SetValue(-3, false)
	assert.Equal(t, 0.0, s.Value())

	s.SetRange(5.7, 18)
	assert.Equal(t, 5.7, s.Value())
	s.SetValue(10.2, false)
	assert.Equal(t, "(value: 10.2, minimum: 5.7, maximum: 18)", s.String())

	assert.Panics(t, func() { s.SetRange(1, 1) })
}

func TestSliderGeometry(t *testing.T) {
	s := newLaidOut()
	track := s.Track()
	assert.Equal(t, Rect{X: 12, Y: 33, W: 200, H: 2}, track)

	// the thumb travels the track minus one thumb
	s.SetValue(0, false)
	assert.Equal(t, Point{X: 12 + 14, Y: 34}, s.Thumb())
	s.SetValue(1, false)
	assert.Equal(t, Point{X: 212 - 14, Y: 34}, s.Thumb())
	s.SetValue(0.5, false)
	assert.Equal(t, Point{X: 112, Y: 34}, s.Thumb())
}

func TestSliderValueForLocation(t *testing.T) {
	s := newLaidOut()
	assert.Equal(t, 0.0, s.ValueForLocation(Point{X: 0}))
	assert.Equal(t, 0.5, s.ValueForLocation(Point{X: 112}))
	assert.Equal(t, 1.0, s.ValueForLocation(Point{X: 500}))

	s.SetRange(10, 20)
	assert.Equal(t, 15.0, s.ValueForLocation(Point{X: 112}))
}

func TestSliderTracking(t *testing.T) {
	s := newLaidOut()
	var got []float64
	s.OnChange = func(_ *GradientSlider, v float64) { got = append(got, v) }

	// misses outside the 44 point hit square around the thumb
	assert.False(t, s.BeginTracking(Point{X: 100, Y: 34}))
	assert.False(t, s.ContinueTracking(Point{X: 100, Y: 34}))
	s.EndTracking(nil)
	assert.Empty(t, got)

	require.True(t, s.BeginTracking(Point{X: 26 + 21, Y: 34}))
	assert.True(t, s.Tracking())
	assert.True(t, s.ContinueTracking(Point{X: 62, Y: 80}))
	assert.Equal(t, 0.25, s.Value())

	end := Point{X: 162, Y: 34}
	s.EndTracking(&end)
	assert.False(t, s.Tracking())
	assert.Equal(t, 0.75, s.Value())
	assert.Equal(t, []float64{0.25, 0.75}, got)
}

func TestSliderAnimatedValue(t *testing.T) {
	s := newLaidOut()
	s.SetValue(1, true)
	assert.Equal(t, Point{X: 26, Y: 34}, s.Thumb())
	s.Advance(glide / 2)
	assert.Greater(t, s.Thumb().X, 26.0)
	assert.Less(t, s.Thumb().X, 198.0)
	s.Advance(glide)
	assert.Equal(t, Point{X: 198, Y: 34}, s.Thumb())
}

func TestSliderRainbow(t *testing.T) {
	s := New()
	s.SetMinColor(palette.HSBA(0.3, 0.6, 0.8, 0.9))
	s.SetRainbow(true)

	stops := s.Stops()
	require.Len(t, stops, 41)
	assert.Equal(t, 0.0, stops[0].Location)
	assert.InDelta(t, 1.0, stops[40].Location, 1e-12)
	for i, st := range stops {
		assert.InDelta(t, float64(i)/40, st.Location, 1e-12)
		assert.Equal(t, st.Location, st.Color.Hue)
		assert.Equal(t, 0.6, st.Color.Saturation)
		assert.Equal(t, 0.8, st.Color.Brightness)
		assert.Equal(t, 0.9, st.Color.Alpha)
	}

	s.SetRainbow(false)
	assert.Len(t, s.Stops(), 2)
}

func TestSliderColorAt(t *testing.T) {
	s := New()
	s.SetMinColor(palette.HSBA(0, 0, 0, 1))
	s.SetMaxColor(palette.HSBA(0, 0, 1, 1))
	assert.Equal(t, "#000000", s.ColorAt(-1).Hex())
	assert.Equal(t, "#FFFFFF", s.ColorAt(2).Hex())
	assert.InDelta(t, 0.5, s.ColorAt(0.5).Brightness, 1e-9)
}
