package audio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

const (
	// RingSize is how many samples the tap remembers.
	RingSize = 8192

	// levelWindow is how many recent samples make up one level reading.
	levelWindow = 2048

	// levelCurve compresses the RMS so quiet passages still move the blob.
	levelCurve = 0.3
)

// ErrUnsupported is returned for files whose extension has no decoder.
var ErrUnsupported = errors.New("unsupported file type")

// Decode picks a decoder by file extension.
func Decode(r io.ReadCloser, path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav":
		return wav.Decode(r)
	case ".mp3":
		return mp3.Decode(r)
	case ".flac":
		return flac.Decode(r)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// Output is where a Player sends audio. Lock and Unlock guard the streamers
// the output is currently pulling from.
type Output interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

// speakerOutput is the system speaker.
type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}
func (speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerOutput) Clear()                  { speaker.Clear() }
func (speakerOutput) Lock()                   { speaker.Lock() }
func (speakerOutput) Unlock()                 { speaker.Unlock() }

// Player plays one file at a time through an Output and exposes its level.
type Player struct {
	out Output

	mu       sync.Mutex
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *Tap
	initDone bool
	paused   bool
}

// NewPlayer returns an idle player on the system speaker. The speaker is
// initialized on the first Load.
func NewPlayer() *Player {
	return NewPlayerWith(speakerOutput{})
}

// NewPlayerWith returns an idle player on out.
func NewPlayerWith(out Output) *Player {
	return &Player{out: out}
}

// Load stops the current file, if any, and starts playing path.
func (p *Player) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}
	streamer, format, err := Decode(f, path)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	tap := NewTap(streamer, RingSize)
	ctrl := &beep.Ctrl{Streamer: tap}

	if err := p.prepareSpeaker(format); err != nil {
		_ = streamer.Close()
		_ = f.Close()
		return err
	}

	p.mu.Lock()
	p.closeCurrent()
	p.file = f
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = tap
	p.paused = false
	p.mu.Unlock()

	slog.Info("playing audio", "file", filepath.Base(path), "sampleRate", int(format.SampleRate), "duration", format.SampleRate.D(streamer.Len()))

	p.out.Play(beep.Seq(ctrl, beep.Callback(func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.ctrl == ctrl {
			p.closeCurrent()
		}
		slog.Debug("audio finished", "file", filepath.Base(path))
	})))
	return nil
}

// prepareSpeaker initializes the speaker, again when the sample rate
// changes, and clears anything still playing.
func (p *Player) prepareSpeaker(format beep.Format) error {
	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := p.out.Init(format.SampleRate, bufferSize); err != nil {
			return fmt.Errorf("init speaker: %w", err)
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		p.out.Clear()
		if err := p.out.Init(format.SampleRate, bufferSize); err != nil {
			return fmt.Errorf("reinit speaker: %w", err)
		}
	default:
		p.out.Clear()
	}
	return nil
}

// closeCurrent releases the current file. p.mu must be held.
func (p *Player) closeCurrent() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		_ = p.file.Close()
		p.file = nil
	}
	p.ctrl = nil
	p.tap = nil
}

// Playing reports whether a file is loaded and not finished.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl != nil
}

// Paused reports whether playback is paused.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// TogglePause pauses or resumes the current file.
func (p *Player) TogglePause() {
	p.mu.Lock()
	ctrl := p.ctrl
	p.mu.Unlock()
	if ctrl == nil {
		return
	}
	p.out.Lock()
	p.mu.Lock()
	p.paused = !p.paused
	ctrl.Paused = p.paused
	p.mu.Unlock()
	p.out.Unlock()
}

// Level returns the loudness of what just played in [0, 1], or 0 when
// nothing plays.
func (p *Player) Level() float64 {
	p.mu.Lock()
	tap, paused := p.tap, p.paused
	p.mu.Unlock()
	if tap == nil || paused {
		return 0
	}
	return Loudness(tap.Level(levelWindow))
}

// Loudness maps an RMS value to a level that reads well on screen.
func Loudness(rms float64) float64 {
	if rms <= 0 {
		return 0
	}
	return math.Pow(min(rms, 1), levelCurve)
}

// Close stops playback and releases the file. The output is cleared first so
// nothing reads the decoder once it is closed.
func (p *Player) Close() {
	if p.Playing() {
		p.out.Clear()
	}
	p.mu.Lock()
	p.closeCurrent()
	p.mu.Unlock()
}
