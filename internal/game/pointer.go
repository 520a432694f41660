package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/voice-blob/internal/slider"
)

// pointer merges the mouse and the first touch into one pointer with
// press and release edges.
type pointer struct {
	pos      slider.Point
	down     bool
	pressed  bool // went down this tick
	released bool // went up this tick

	touch    ebiten.TouchID
	touching bool
}

func (p *pointer) update() {
	p.pressed, p.released = false, false

	if p.touching {
		if inpututil.IsTouchJustReleased(p.touch) {
			x, y := inpututil.TouchPositionInPreviousTick(p.touch)
			p.pos = slider.Point{X: float64(x), Y: float64(y)}
			p.touching, p.down, p.released = false, false, true
			return
		}
		x, y := ebiten.TouchPosition(p.touch)
		p.pos = slider.Point{X: float64(x), Y: float64(y)}
		return
	}
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		p.touch, p.touching = ids[0], true
		x, y := ebiten.TouchPosition(p.touch)
		p.pos = slider.Point{X: float64(x), Y: float64(y)}
		p.down, p.pressed = true, true
		return
	}

	x, y := ebiten.CursorPosition()
	p.pos = slider.Point{X: float64(x), Y: float64(y)}
	p.pressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	p.released = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	p.down = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (p pointer) hovering(r slider.Rect) bool {
	return !p.touching && r.Contains(p.pos)
}
