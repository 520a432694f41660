package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"honnef.co/go/curve"

	"github.com/iburimskiy/voice-blob/internal/blob"
	"github.com/iburimskiy/voice-blob/internal/palette"
	"github.com/iburimskiy/voice-blob/internal/slider"
)

// debug font cell
const (
	glyphWidth  = 6
	glyphHeight = 16
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// vectorPath converts a blob path to an ebiten vector path.
func vectorPath(p curve.BezPath) *vector.Path {
	var vp vector.Path
	for el := range p.Elements() {
		switch el.Kind {
		case curve.MoveToKind:
			vp.MoveTo(float32(el.P0.X), float32(el.P0.Y))
		case curve.LineToKind:
			vp.LineTo(float32(el.P0.X), float32(el.P0.Y))
		case curve.QuadToKind:
			vp.QuadTo(float32(el.P0.X), float32(el.P0.Y), float32(el.P1.X), float32(el.P1.Y))
		case curve.CubicToKind:
			vp.CubicTo(
				float32(el.P0.X), float32(el.P0.Y),
				float32(el.P1.X), float32(el.P1.Y),
				float32(el.P2.X), float32(el.P2.Y),
			)
		case curve.ClosePathKind:
			vp.Close()
		}
	}
	return &vp
}

// placeNode maps a node path, centered on the origin, into r at the given
// scale.
func placeNode(p curve.BezPath, r slider.Rect, scale float64) curve.BezPath {
	center := curve.Vec(r.X+r.W/2, r.Y+r.H/2)
	return p.Transform(curve.Translate(center).Mul(curve.Scale(scale, scale)))
}

func fillPath(dst *ebiten.Image, p curve.BezPath, c palette.Color) {
	if !p.HasSegments() || c.Alpha <= 0 {
		return
	}
	vs, is := vectorPath(p).AppendVerticesAndIndicesForFilling(nil, nil)
	rgba := c.NRGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(rgba.R) / 0xff
		vs[i].ColorG = float32(rgba.G) / 0xff
		vs[i].ColorB = float32(rgba.B) / 0xff
		vs[i].ColorA = float32(rgba.A) / 0xff
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true, FillRule: ebiten.FillRuleNonZero}
	dst.DrawTriangles(vs, is, whiteSubImage, op)
}

// drawVoiceBlob draws the nodes back to front, each at its current scale
// and color.
func drawVoiceBlob(dst *ebiten.Image, v *blob.VoiceBlob, r slider.Rect) {
	for _, n := range v.Nodes() {
		fillPath(dst, placeNode(n.Path(), r, n.Scale()), n.Color())
	}
}

// drawSlider draws the gradient track column by column, then the thumb.
func drawSlider(dst *ebiten.Image, s *slider.GradientSlider) {
	track := s.Track()
	w := int(track.W)
	for x := 0; x < w; x++ {
		c := s.ColorAt(float64(x) / float64(max(w-1, 1)))
		vector.DrawFilledRect(dst, float32(track.X)+float32(x), float32(track.Y)-1, 1, float32(track.H)+2, c, false)
	}

	thumb := s.Thumb()
	perc := (s.Value() - s.Min()) / (s.Max() - s.Min())
	r := float32(s.ThumbSize() / 2)
	vector.DrawFilledCircle(dst, float32(thumb.X), float32(thumb.Y), r, color.White, true)
	vector.DrawFilledCircle(dst, float32(thumb.X), float32(thumb.Y), r-3, s.ColorAt(perc), true)
	if s.Tracking() {
		vector.StrokeCircle(dst, float32(thumb.X), float32(thumb.Y), r+2, 1, color.White, true)
	}
}

func drawButton(dst *ebiten.Image, r slider.Rect, label string, fill palette.Color, hover bool) {
	if hover {
		fill = palette.Blend(fill, palette.HSBA(0, 0, 1, fill.Alpha), 0.15)
	}
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), fill, false)
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, color.Gray{Y: 0x80}, false)
	drawLabel(dst, label, r)
}

// drawLabel centers a debug-font label in r.
func drawLabel(dst *ebiten.Image, label string, r slider.Rect) {
	x := r.X + (r.W-float64(len(label)*glyphWidth))/2
	y := r.Y + (r.H-glyphHeight)/2
	ebitenutil.DebugPrintAt(dst, label, int(x), int(y))
}
