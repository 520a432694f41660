package game

import (
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/voice-blob/internal/blob"
	"github.com/iburimskiy/voice-blob/internal/config"
	"github.com/iburimskiy/voice-blob/internal/palette"
	"github.com/iburimskiy/voice-blob/internal/picker"
	"github.com/iburimskiy/voice-blob/internal/slider"
)

const overlayPadding = 16

// pickerOverlay is the "Pick new color" sheet: a preview blob above the
// picker sliders, with Select and Cancel buttons. Colors apply live while
// dragging; Cancel restores the color the sheet opened with.
type pickerOverlay struct {
	bounds      slider.Rect
	previewRect slider.Rect
	selectRect  slider.Rect
	cancelRect  slider.Rect

	preview *blob.VoiceBlob
	picker  *picker.Picker

	open   bool
	before palette.Color
	active *slider.GradientSlider
}

func newPickerOverlay(preview *blob.VoiceBlob, bounds slider.Rect) *pickerOverlay {
	o := &pickerOverlay{bounds: bounds, preview: preview}
	o.picker = picker.New(preview)
	o.layout()
	return o
}

func (o *pickerOverlay) layout() {
	b := o.bounds
	size := float64(config.BlobSize)
	o.previewRect = slider.Rect{X: b.X + (b.W-size)/2, Y: b.Y + 2*overlayPadding, W: size, H: size}
	o.preview.Layout(size)

	y := o.previewRect.Y + size + config.SliderSpacing
	for _, s := range o.picker.Sliders() {
		s.Layout(slider.Rect{X: b.X + overlayPadding, Y: y, W: b.W - 2*overlayPadding, H: config.SliderHeight})
		y += config.SliderHeight + config.SliderSpacing
	}

	w := (b.W - 3*overlayPadding) / 2
	o.cancelRect = slider.Rect{X: b.X + overlayPadding, Y: y, W: w, H: config.ButtonHeight}
	o.selectRect = slider.Rect{X: b.X + 2*overlayPadding + w, Y: y, W: w, H: config.ButtonHeight}
}

func (o *pickerOverlay) show(g *Game) {
	o.before = g.tint
	o.open = true
	o.preview.StartAnimating(false)
	o.picker.Setup(g.tint, g.setTint)
}

func (o *pickerOverlay) confirm(g *Game) {
	slog.Info("tint changed", "color", g.tint.Hex())
	o.close()
}

func (o *pickerOverlay) cancel(g *Game) {
	g.setTint(o.before)
	o.close()
}

func (o *pickerOverlay) close() {
	if o.active != nil {
		o.active.EndTracking(nil)
		o.active = nil
	}
	o.open = false
	o.preview.StopAnimating(blob.DefaultStopDuration)
}

// handle routes the pointer to the slider under it, or to the buttons.
func (o *pickerOverlay) handle(g *Game, p pointer) {
	if p.pressed && o.active == nil {
		for _, s := range o.picker.Sliders() {
			if s.BeginTracking(p.pos) {
				o.active = s
				break
			}
		}
	}
	if o.active != nil {
		if p.released {
			pos := p.pos
			o.active.EndTracking(&pos)
			o.active = nil
		} else if p.down {
			o.active.ContinueTracking(p.pos)
		}
		return
	}
	if !p.released {
		return
	}
	switch {
	case o.selectRect.Contains(p.pos):
		o.confirm(g)
	case o.cancelRect.Contains(p.pos):
		o.cancel(g)
	}
}

func (o *pickerOverlay) update(dt float64) {
	o.preview.Update(dt)
	o.picker.Advance(dt)
}

func (o *pickerOverlay) draw(dst *ebiten.Image) {
	vector.DrawFilledRect(dst, 0, 0, config.WindowWidth, config.WindowHeight, color.NRGBA{A: 0xa0}, false)
	b := o.bounds
	vector.DrawFilledRect(dst, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), color.Gray{Y: 0x1c}, false)

	drawLabel(dst, o.picker.Title(), slider.Rect{X: b.X, Y: b.Y + overlayPadding/2, W: b.W, H: glyphHeight})
	drawVoiceBlob(dst, o.preview, o.previewRect)
	for _, s := range o.picker.Sliders() {
		drawSlider(dst, s)
	}

	gray := palette.HSBA(0, 0, 0.25, 1)
	drawButton(dst, o.cancelRect, "Cancel", gray, false)
	drawButton(dst, o.selectRect, "Select", o.picker.Color().WithAlpha(1), false)
}
