package audio

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constStreamer yields n samples of the given value.
type constStreamer struct {
	value float64
	n     int
}

func (s *constStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.n == 0 {
		return 0, false
	}
	k := min(len(samples), s.n)
	for i := range samples[:k] {
		samples[i] = [2]float64{s.value, s.value}
	}
	s.n -= k
	return k, true
}

func (s *constStreamer) Err() error { return nil }

func TestTapLevel(t *testing.T) {
	tap := NewTap(&constStreamer{value: 0.5, n: 100}, 16)
	assert.Zero(t, tap.Level(8))

	buf := make([][2]float64, 10)
	n, ok := tap.Stream(buf)
	require.True(t, ok)
	assert.Equal(t, 10, n)
	assert.InDelta(t, 0.5, tap.Level(8), 1e-12)
	assert.Len(t, tap.Snapshot(100), 10)
}

func TestTapSnapshotWraps(t *testing.T) {
	src := &seqStreamer{}
	tap := NewTap(src, 4)
	buf := make([][2]float64, 3)
	tap.Stream(buf)
	tap.Stream(buf)

	got := tap.Snapshot(4)
	require.Len(t, got, 4)
	for i, s := range got {
		assert.Equal(t, float64(2+i), s[0])
	}
}

// seqStreamer yields 0, 1, 2, ...
type seqStreamer struct{ next float64 }

func (s *seqStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{s.next, s.next}
		s.next++
	}
	return len(samples), true
}

func (s *seqStreamer) Err() error { return nil }

func TestLoudness(t *testing.T) {
	assert.Zero(t, Loudness(0))
	assert.Zero(t, Loudness(-1))
	assert.Equal(t, 1.0, Loudness(4))
	assert.Greater(t, Loudness(0.1), 0.1)
}

func TestDecodeUnsupported(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "*.ogg")
	require.NoError(t, err)
	_, _, err = Decode(f, f.Name())
	assert.ErrorIs(t, err, ErrUnsupported)
	f.Close()
}

func TestDecodeWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.WAV")
	f, err := os.Create(path)
	require.NoError(t, err)
	format := beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, &constStreamer{value: 0.25, n: 800}, format))
	require.NoError(t, f.Close())

	f, err = os.Open(path)
	require.NoError(t, err)
	streamer, got, err := Decode(f, path)
	require.NoError(t, err)
	defer streamer.Close()

	assert.Equal(t, beep.SampleRate(8000), got.SampleRate)
	assert.Equal(t, 800, streamer.Len())

	tap := NewTap(streamer, RingSize)
	buf := make([][2]float64, 512)
	n, _ := tap.Stream(buf)
	assert.Equal(t, 512, n)
	assert.InDelta(t, 0.25, tap.Level(512), 1e-3)
}

func TestPlayerIdle(t *testing.T) {
	p := NewPlayer()
	assert.False(t, p.Playing())
	assert.Zero(t, p.Level())
	p.TogglePause()
	assert.False(t, p.Paused())
	p.Close()

	err := p.Load(filepath.Join(t.TempDir(), "missing.wav"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// fakeOutput pulls from its streamers only when told to, under its own lock,
// the way the speaker does from its goroutine.
type fakeOutput struct {
	mu        sync.Mutex
	streamers []beep.Streamer
	inits     int
	clears    int
	onClear   func()
}

func (o *fakeOutput) Init(beep.SampleRate, int) error {
	o.inits++
	return nil
}

func (o *fakeOutput) Play(s ...beep.Streamer) {
	o.mu.Lock()
	o.streamers = append(o.streamers, s...)
	o.mu.Unlock()
}

func (o *fakeOutput) Clear() {
	o.mu.Lock()
	o.streamers = nil
	o.clears++
	o.mu.Unlock()
	if o.onClear != nil {
		o.onClear()
	}
}

func (o *fakeOutput) Lock()   { o.mu.Lock() }
func (o *fakeOutput) Unlock() { o.mu.Unlock() }

// pull streams up to n samples from every playing streamer and returns how
// many were produced.
func (o *fakeOutput) pull(n int) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	buf := make([][2]float64, n)
	total := 0
	for _, s := range o.streamers {
		k, _ := s.Stream(buf)
		total += k
	}
	return total
}

func writeTone(t *testing.T, samples int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	format := beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, &constStreamer{value: 0.25, n: samples}, format))
	require.NoError(t, f.Close())
	return path
}

func TestPlayerCloseWhileStreaming(t *testing.T) {
	out := &fakeOutput{}
	p := NewPlayerWith(out)
	require.NoError(t, p.Load(writeTone(t, 80000)))
	assert.Equal(t, 1, out.inits)

	require.Positive(t, out.pull(4096))
	assert.Positive(t, p.Level())

	var playingAtClear bool
	out.onClear = func() { playingAtClear = p.Playing() }

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
				out.pull(64)
			}
		}
	}()
	p.Close()
	close(stop)
	<-done

	assert.Equal(t, 1, out.clears)
	assert.True(t, playingAtClear, "output cleared after the file was released")
	assert.False(t, p.Playing())
	assert.Zero(t, out.pull(64))
}

func TestPlayerReleasesFinishedFile(t *testing.T) {
	out := &fakeOutput{}
	p := NewPlayerWith(out)
	require.NoError(t, p.Load(writeTone(t, 800)))
	assert.True(t, p.Playing())

	out.pull(2048)
	assert.False(t, p.Playing())
	assert.Zero(t, p.Level())

	p.Close()
	assert.Zero(t, out.clears)
}

func TestPlayerTogglePause(t *testing.T) {
	out := &fakeOutput{}
	p := NewPlayerWith(out)
	require.NoError(t, p.Load(writeTone(t, 80000)))

	p.TogglePause()
	assert.True(t, p.Paused())
	assert.Zero(t, p.Level())
	p.TogglePause()
	assert.False(t, p.Paused())
	p.Close()
}
