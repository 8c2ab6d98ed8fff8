package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/touch-targets/internal/config"
	"github.com/iburimskiy/touch-targets/internal/round"
	"github.com/iburimskiy/touch-targets/internal/sensor"
)

// MouseSource treats the cursor as the fingertip while it is inside the
// window. Samples also go through latest so the trail keeps working.
type MouseSource struct {
	latest *sensor.Latest
}

func NewMouseSource(latest *sensor.Latest) *MouseSource {
	return &MouseSource{latest: latest}
}

func (m *MouseSource) Latest() round.Sample {
	x, y := ebiten.CursorPosition()
	s := round.At(float64(x), float64(y))
	if x < 0 || y < 0 || x >= config.WindowWidth || y >= config.WindowHeight {
		s = round.Sample{}
	}
	m.latest.Store(s)
	return m.latest.Latest()
}
