package blob

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/voice-blob/internal/palette"
)

var (
	smallRange  = Range{0.40, 0.54}
	mediumRange = Range{0.52, 0.87}
	bigRange    = Range{0.55, 1.00}
)

func newTestVoiceBlob() (*VoiceBlob, *countingRand) {
	rng := newCountingRand(5)
	return New(50, smallRange, mediumRange, bigRange, NewGenerator(rng)), rng
}

func TestVoiceBlobLayers(t *testing.T) {
	v, _ := newTestVoiceBlob()
	assert.True(t, v.Node(Small).IsCircle())
	assert.False(t, v.Node(Medium).IsCircle())
	assert.False(t, v.Node(Big).IsCircle())
	assert.Equal(t, SmallParams(smallRange), v.Node(Small).Params())
	assert.Equal(t, []*Node{v.Node(Big), v.Node(Medium), v.Node(Small)}, v.Nodes())
	assert.Equal(t, "medium", Medium.String())
}

func TestVoiceBlobUpdateLevel(t *testing.T) {
	v, _ := newTestVoiceBlob()

	v.UpdateLevel(25, false)
	assert.Equal(t, 0.5, v.AudioLevel())
	assert.Equal(t, 0.0, v.PresentationLevel())
	for _, n := range v.Nodes() {
		assert.Equal(t, 0.5, n.SpeedLevel())
	}

	v.UpdateLevel(60, false)
	assert.Equal(t, 1.0, v.AudioLevel())
	for _, n := range v.Nodes() {
		assert.Equal(t, 1.0, n.SpeedLevel())
	}

	v.UpdateLevel(-5, true)
	assert.Equal(t, 0.0, v.AudioLevel())
	assert.Equal(t, 0.0, v.PresentationLevel())
	// boosts only grow until consumed
	assert.Equal(t, 1.0, v.Node(Big).SpeedLevel())

	v.UpdateLevel(10, true)
	assert.Equal(t, 0.2, v.PresentationLevel())
}

func TestVoiceBlobSmoothing(t *testing.T) {
	v, _ := newTestVoiceBlob()
	v.Layout(200)
	v.StartAnimating(true)

	for k := 1; k <= 40; k++ {
		v.UpdateLevel(50, false)
		v.Update(frame)
		assert.InDelta(t, 1-math.Pow(0.9, float64(k)), v.PresentationLevel(), 1e-12, "tick %d", k)
	}
	for _, n := range v.Nodes() {
		assert.InDelta(t, v.PresentationLevel(), n.Level(), levelThreshold)
	}
}

func TestVoiceBlobSetColor(t *testing.T) {
	v, _ := newTestVoiceBlob()
	c := palette.HSBA(0.6, 0.8, 0.9, 1)
	v.SetColor(c, false)
	assert.Equal(t, c, v.Node(Small).Color())
	assert.Equal(t, 0.3, v.Node(Medium).Color().Alpha)
	assert.Equal(t, 0.15, v.Node(Big).Color().Alpha)
	assert.Equal(t, c.Hex(), v.Node(Big).Color().Hex())

	v.SetNewCustomColor(nil)
	assert.Equal(t, palette.Clear, v.Node(Small).TargetColor())
	v.SetNewCustomColor(&c)
	assert.Equal(t, c, v.Node(Small).TargetColor())
}

func TestVoiceBlobStartStop(t *testing.T) {
	v, _ := newTestVoiceBlob()

	// nodes wait for a size
	v.StartAnimating(false)
	assert.True(t, v.Animating())
	assert.False(t, v.Clock().Paused())
	for _, n := range v.Nodes() {
		assert.False(t, n.Animating())
	}
	assert.True(t, v.Node(Medium).ScaleAnimating())
	assert.False(t, v.Node(Small).ScaleAnimating())

	v.Layout(200)
	for _, n := range v.Nodes() {
		assert.True(t, n.Animating())
	}
	assert.True(t, v.Node(Big).Transitioning())
	assert.False(t, v.Node(Small).Transitioning())

	// a second start is ignored
	ring := v.Node(Big).Ring()
	v.StartAnimating(false)
	assert.Equal(t, ring, v.Node(Big).Ring())

	v.StopAnimating(DefaultStopDuration)
	assert.False(t, v.Animating())
	assert.True(t, v.Clock().Paused())
	for _, n := range v.Nodes() {
		assert.False(t, n.Animating())
		assert.False(t, n.Transitioning())
	}
	for range 20 {
		v.Update(frame)
	}
	assert.InDelta(t, 0.75*v.Node(Medium).LevelScale(), v.Node(Medium).Scale(), 1e-12)
	assert.InDelta(t, v.Node(Small).LevelScale(), v.Node(Small).Scale(), 1e-12)

	// a second stop is ignored
	v.StopAnimating(5)
	assert.False(t, v.Node(Big).ScaleAnimating())

	v.StartAnimating(true)
	assert.InDelta(t, v.Node(Big).LevelScale(), v.Node(Big).Scale(), 1e-12)
}

func TestVoiceBlobStoppedIgnoresLevels(t *testing.T) {
	v, _ := newTestVoiceBlob()
	v.Layout(200)
	v.UpdateLevel(50, false)
	for range 10 {
		v.Update(frame)
	}
	assert.Zero(t, v.PresentationLevel())
	assert.Zero(t, v.Node(Big).ScaleUpdates())
}

func TestVoiceBlobConfigure(t *testing.T) {
	v, rng := newTestVoiceBlob()
	v.Configure(Medium, func(n *Node) { n.SetCircle(true) })
	v.Configure(Big, func(n *Node) { n.SetCircle(true) })
	v.Layout(200)
	v.StartAnimating(false)
	for range 120 {
		v.Update(frame)
	}
	assert.Zero(t, rng.calls)

	v.Configure(Small, func(n *Node) {
		n.SetPointsCount(200)
		n.SetCircle(false)
	})
	v.Update(frame)
	require.True(t, v.Node(Small).Transitioning())
	assert.Len(t, v.Node(Small).Ring(), 200)
}

func TestVoiceBlobClose(t *testing.T) {
	v, _ := newTestVoiceBlob()
	v.Layout(200)
	v.StartAnimating(true)
	v.UpdateLevel(50, false)
	v.Update(frame)
	level := v.PresentationLevel()

	v.Close()
	v.Update(frame)
	assert.Equal(t, level, v.PresentationLevel())
}

func TestVoiceBlobInvalidMaxLevel(t *testing.T) {
	assert.Panics(t, func() { New(0, smallRange, mediumRange, bigRange, nil) })
}
