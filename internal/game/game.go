package game

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/voice-blob/internal/audio"
	"github.com/iburimskiy/voice-blob/internal/blob"
	"github.com/iburimskiy/voice-blob/internal/config"
	"github.com/iburimskiy/voice-blob/internal/palette"
	"github.com/iburimskiy/voice-blob/internal/slider"
)

const frame = 1.0 / config.TPS

// Game shows three voice blobs fed by random levels or by a playing audio
// file, with start/pause controls and a color picker.
type Game struct {
	preset config.Preset
	tint   palette.Color

	blobs     []*blob.VoiceBlob
	blobRects []slider.Rect
	running   bool

	// level feed
	rng        *rand.Rand
	sinceLevel float64
	player     *audio.Player

	// controls
	startRect slider.Rect
	pauseRect slider.Rect
	pickRect  slider.Rect
	openRect  slider.Rect
	picker    *pickerOverlay
	pointer   pointer

	// input edge detection
	prevKey map[ebiten.Key]bool

	lastErr error
}

// New builds the demo from a preset. The blobs start animating right away.
func New(preset config.Preset) (*Game, error) {
	tint, err := palette.FromHex(preset.Tint)
	if err != nil {
		return nil, fmt.Errorf("preset tint: %w", err)
	}

	g := &Game{
		preset:  preset,
		tint:    tint,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		player:  audio.NewPlayer(),
		prevKey: map[ebiten.Key]bool{},
	}

	plain := g.newBlob()
	circles := g.newBlob()
	circles.Configure(blob.Medium, func(n *blob.Node) { n.SetCircle(true) })
	circles.Configure(blob.Big, func(n *blob.Node) { n.SetCircle(true) })
	dense := g.newBlob()
	for _, l := range []blob.Layer{blob.Small, blob.Medium, blob.Big} {
		dense.Configure(l, func(n *blob.Node) { n.SetPointsCount(config.DenseBlobPoints) })
	}
	dense.Configure(blob.Small, func(n *blob.Node) { n.SetCircle(false) })
	g.blobs = []*blob.VoiceBlob{plain, circles, dense}

	g.layout()
	g.picker = newPickerOverlay(g.newBlob(), g.pickerBounds())
	g.setTint(tint)
	g.start()
	return g, nil
}

func (g *Game) newBlob() *blob.VoiceBlob {
	p := g.preset
	return blob.New(p.MaxLevel, p.Small, p.Medium, p.Big, nil)
}

// layout places the blobs and controls. The first two blobs sit side by side
// and the third is centered below them.
func (g *Game) layout() {
	size := float64(config.BlobSize)
	top := float64(config.BlobTop)
	w := float64(config.WindowWidth)

	g.blobRects = []slider.Rect{
		{X: config.BlobInset, Y: top, W: size, H: size},
		{X: w - config.BlobInset - size, Y: top, W: size, H: size},
		{X: (w - size) / 2, Y: top + size + config.BlobTop, W: size, H: size},
	}
	for _, b := range g.blobs {
		b.Layout(size)
	}

	y := top + 2*size + 3*config.BlobTop
	x := (w - 2*config.ButtonWidth) / 2
	g.startRect = slider.Rect{X: x, Y: y, W: config.ButtonWidth, H: config.ButtonHeight}
	g.pauseRect = slider.Rect{X: x + config.ButtonWidth, Y: y, W: config.ButtonWidth, H: config.ButtonHeight}
	g.pickRect = slider.Rect{X: x, Y: y + config.ButtonHeight + 15, W: 2 * config.ButtonWidth, H: config.ButtonHeight}
	g.openRect = slider.Rect{X: x, Y: y + 2*(config.ButtonHeight+15), W: 2 * config.ButtonWidth, H: config.ButtonHeight}
}

func (g *Game) pickerBounds() slider.Rect {
	h := float64(config.BlobSize + 3*(config.SliderHeight+config.SliderSpacing) + 2*config.ButtonHeight + 40)
	return slider.Rect{
		X: (config.WindowWidth - config.PickerWidth) / 2,
		Y: (config.WindowHeight - h) / 2,
		W: config.PickerWidth,
		H: h,
	}
}

func (g *Game) setTint(c palette.Color) {
	g.tint = c
	for _, b := range g.blobs {
		b.SetColor(c, true)
	}
}

func (g *Game) start() {
	g.running = true
	for _, b := range g.blobs {
		b.StartAnimating(false)
	}
}

func (g *Game) stop() {
	g.running = false
	for _, b := range g.blobs {
		b.StopAnimating(config.StopDuration)
	}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	g.pointer.update()

	if g.picker.open {
		g.picker.handle(g, g.pointer)
	} else {
		g.handleControls()
	}

	if justPressed(ebiten.KeySpace) {
		g.player.TogglePause()
	}
	if justPressed(ebiten.KeyS) {
		if g.running {
			g.stop()
		} else {
			g.start()
		}
	}
	if justPressed(ebiten.KeyO) {
		g.report(g.openAudioDialog())
	}
	if justPressed(ebiten.KeyC) {
		g.report(g.nativeColorDialog())
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		if g.picker.open {
			g.picker.cancel(g)
		} else {
			return ebiten.Termination
		}
	}

	g.feedLevel()
	for _, b := range g.blobs {
		b.Update(frame)
	}
	g.picker.update(frame)
	return nil
}

func (g *Game) handleControls() {
	if !g.pointer.released {
		return
	}
	switch {
	case g.startRect.Contains(g.pointer.pos):
		if !g.running {
			g.start()
		}
	case g.pauseRect.Contains(g.pointer.pos):
		if g.running {
			g.stop()
		}
	case g.pickRect.Contains(g.pointer.pos):
		g.picker.show(g)
	case g.openRect.Contains(g.pointer.pos):
		g.report(g.openAudioDialog())
	}
}

// feedLevel pushes the audio level every frame while a file plays, and a
// random level every second otherwise.
func (g *Game) feedLevel() {
	if g.player.Playing() {
		level := g.player.Level() * g.preset.MaxLevel
		g.updateLevel(level)
		return
	}
	g.sinceLevel += frame
	if g.sinceLevel < config.RandomLevelEvery {
		return
	}
	g.sinceLevel = 0
	g.updateLevel(1 + g.rng.Float64()*(g.preset.MaxLevel-1))
}

func (g *Game) updateLevel(level float64) {
	for _, b := range g.blobs {
		b.UpdateLevel(level, false)
	}
	g.picker.preview.UpdateLevel(level, false)
}

func (g *Game) report(err error) {
	if err == nil {
		return
	}
	slog.Error("action failed", "err", err)
	g.lastErr = err
}

// LoadAudio plays a file and drives the blobs with its level.
func (g *Game) LoadAudio(path string) error {
	if err := g.player.Load(path); err != nil {
		return err
	}
	g.lastErr = nil
	return nil
}

func (g *Game) openAudioDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return fmt.Errorf("file dialog: %w", err)
	}
	return g.LoadAudio(filename)
}

func (g *Game) nativeColorDialog() error {
	c, err := zenity.SelectColor(zenity.Title("Blob tint"), zenity.Color(g.tint))
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return fmt.Errorf("color dialog: %w", err)
	}
	g.setTint(palette.FromColor(c).WithAlpha(1))
	slog.Info("tint changed", "color", g.tint.Hex())
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	for i, b := range g.blobs {
		drawVoiceBlob(screen, b, g.blobRects[i])
	}

	g.drawSegmented(screen)
	drawButton(screen, g.pickRect, "Pick new color", g.tint.WithAlpha(0.8), g.pointer.hovering(g.pickRect))
	drawButton(screen, g.openRect, "Open audio", g.tint.WithAlpha(0.8), g.pointer.hovering(g.openRect))

	if g.picker.open {
		g.picker.draw(screen)
	}

	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
}

func (g *Game) status() string {
	var status string
	switch {
	case g.player.Playing() && g.player.Paused():
		status = "Audio paused - Space to resume"
	case g.player.Playing():
		status = "Playing audio - Space to pause, O to open another"
	default:
		status = "Random levels - O to open audio, C for native color chooser"
	}
	if !g.running {
		status += " | stopped (S to start)"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	return status
}

func (g *Game) drawSegmented(screen *ebiten.Image) {
	selected := g.tint.WithAlpha(0.4)
	idle := palette.HSBA(0, 0, 0.25, 1)

	startFill, pauseFill := idle, selected
	if g.running {
		startFill, pauseFill = selected, idle
	}
	drawButton(screen, g.startRect, "Start", startFill, g.pointer.hovering(g.startRect))
	drawButton(screen, g.pauseRect, "Pause", pauseFill, g.pointer.hovering(g.pauseRect))
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// Close stops playback and releases the blobs' clocks.
func (g *Game) Close() {
	g.player.Close()
	for _, b := range g.blobs {
		b.Close()
	}
	g.picker.preview.Close()
}

var _ ebiten.Game = (*Game)(nil)

