// Package picker builds a color picker out of three gradient sliders for
// saturation, brightness and hue.
package picker

import (
	"log/slog"

	"golang.org/x/image/colornames"

	"github.com/iburimskiy/voice-blob/internal/palette"
	"github.com/iburimskiy/voice-blob/internal/slider"
)

// ColorView previews the picked color.
type ColorView interface {
	SetNewCustomColor(c *palette.Color)
}

// Selection receives every color the picker produces.
type Selection func(c palette.Color)

// Picker holds the color being edited and the sliders that edit it.
type Picker struct {
	Hue        float64
	Saturation float64
	Brightness float64
	Alpha      float64

	saturation *slider.GradientSlider
	brightness *slider.GradientSlider
	hue        *slider.GradientSlider

	view      ColorView
	selection Selection
}

// New returns a picker at a mid gray-cyan with its sliders wired.
func New(view ColorView) *Picker {
	p := &Picker{Hue: 0.5, Saturation: 0.5, Brightness: 0.5, Alpha: 1, view: view}

	p.saturation = slider.New()
	p.saturation.SetMinColor(palette.FromColor(colornames.White))
	p.saturation.OnChange = func(_ *slider.GradientSlider, v float64) {
		p.Saturation = v
		p.updateColorView()
	}

	p.brightness = slider.New()
	p.brightness.SetMinColor(palette.FromColor(colornames.Black))
	p.brightness.OnChange = func(_ *slider.GradientSlider, v float64) {
		p.Brightness = v
		p.updateColorView()
	}

	p.hue = slider.New()
	p.hue.SetRainbow(true)
	p.hue.OnChange = func(_ *slider.GradientSlider, v float64) {
		p.Hue = v
		p.tintSliders()
		p.updateColorView()
	}
	return p
}

// Sliders returns the sliders top to bottom: saturation, brightness, hue.
func (p *Picker) Sliders() []*slider.GradientSlider {
	return []*slider.GradientSlider{p.saturation, p.brightness, p.hue}
}

// Color returns the picked color.
func (p *Picker) Color() palette.Color {
	return palette.HSBA(p.Hue, p.Saturation, p.Brightness, p.Alpha)
}

// Title is the hex string of the picked color.
func (p *Picker) Title() string { return p.Color().Hex() }

// Setup loads c into the picker, previews it and reports every later change
// to selection.
func (p *Picker) Setup(c palette.Color, selection Selection) {
	p.Hue, p.Saturation, p.Brightness, p.Alpha = c.Hue, c.Saturation, c.Brightness, c.Alpha

	p.hue.SetMinColor(pure(p.Hue))
	p.tintSliders()

	p.hue.SetValue(p.Hue, true)
	p.saturation.SetValue(p.Saturation, true)
	p.brightness.SetValue(p.Brightness, true)

	p.updateColorView()
	p.selection = selection
	slog.Debug("color picker set up", "color", c.Hex())
}

// tintSliders ends the saturation and brightness tracks at the fully
// saturated current hue.
func (p *Picker) tintSliders() {
	main := pure(p.Hue)
	p.brightness.SetMaxColor(main)
	p.saturation.SetMaxColor(main)
}

func (p *Picker) updateColorView() {
	c := p.Color()
	if p.view != nil {
		p.view.SetNewCustomColor(&c)
	}
	if p.selection != nil {
		p.selection(c)
	}
}

// Advance moves the sliders' animated thumbs by dt seconds.
func (p *Picker) Advance(dt float64) {
	for _, s := range p.Sliders() {
		s.Advance(dt)
	}
}

func pure(hue float64) palette.Color {
	return palette.HSBA(hue, 1, 1, 1)
}
