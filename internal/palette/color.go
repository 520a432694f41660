// Package palette holds the HSBA color type shared by the blobs and the
// color picker.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a color in hue/saturation/brightness space with an alpha
// component. All four components are in [0, 1].
type Color struct {
	Hue        float64
	Saturation float64
	Brightness float64
	Alpha      float64
}

// Clear is fully transparent black.
var Clear = Color{}

var _ color.Color = Color{}

// HSBA returns the color with the given components.
func HSBA(h, s, b, a float64) Color {
	return Color{Hue: h, Saturation: s, Brightness: b, Alpha: a}
}

// FromColor converts any image color. Non-opaque colors are un-premultiplied
// before the hue is computed.
func FromColor(c color.Color) Color {
	if c == nil {
		return Clear
	}
	if pc, ok := c.(Color); ok {
		return pc
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	cf := colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}
	h, s, v := cf.Hsv()
	return Color{Hue: h / 360, Saturation: s, Brightness: v, Alpha: float64(n.A) / 255}
}

// FromHex parses "#RRGGBB" or "#RGB". The result is opaque.
func FromHex(s string) (Color, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return Clear, fmt.Errorf("palette: parse %q: %w", s, err)
	}
	h, sat, v := cf.Hsv()
	return Color{Hue: h / 360, Saturation: sat, Brightness: v, Alpha: 1}, nil
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.Alpha = a
	return c
}

func (c Color) rgb() colorful.Color {
	h := c.Hue - math.Floor(c.Hue)
	return colorful.Hsv(h*360, clamp01(c.Saturation), clamp01(c.Brightness)).Clamped()
}

// NRGBA returns the non-premultiplied 8-bit representation of c.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.rgb().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(c.Alpha)*255 + 0.5)}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Hex returns "#RRGGBB". Channels are scaled to 0-255 and truncated, so
// 0.999 still maps to FE.
func (c Color) Hex() string {
	rgb := c.rgb()
	return fmt.Sprintf("#%02X%02X%02X", int(rgb.R*255), int(rgb.G*255), int(rgb.B*255))
}

// ShortHex returns the three digit form of Hex when every channel repeats
// its digit, like "#FFF".
func (c Color) ShortHex() (string, bool) {
	s := strings.TrimPrefix(c.Hex(), "#")
	if s[0] != s[1] || s[2] != s[3] || s[4] != s[5] {
		return "", false
	}
	return "#" + string([]byte{s[0], s[2], s[4]}), true
}

// Blend mixes a and b in RGB space; t=0 gives a and t=1 gives b. Alpha is
// interpolated linearly.
func Blend(a, b Color, t float64) Color {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	h, s, v := a.rgb().BlendRgb(b.rgb(), t).Hsv()
	return Color{Hue: h / 360, Saturation: s, Brightness: v, Alpha: a.Alpha + (b.Alpha-a.Alpha)*t}
}

func (c Color) String() string {
	return fmt.Sprintf("%s (alpha %.2f)", c.Hex(), c.Alpha)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
