package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/touch-targets/internal/config"
	"github.com/iburimskiy/touch-targets/internal/round"
)

var (
	colorBg        = color.RGBA{R: 0x1a, G: 0x0d, B: 0x2e, A: 0xff}
	colorPrimary   = color.RGBA{R: 0x9d, G: 0x4e, B: 0xdd, A: 0xff}
	colorSecondary = color.RGBA{R: 0xc7, G: 0x7d, B: 0xff, A: 0xff}
	colorAccent    = color.RGBA{R: 0xff, G: 0xd6, B: 0x0a, A: 0xff}
	colorWhite     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorBlack     = color.RGBA{A: 0xff}
	colorWrong     = color.RGBA{R: 0xe6, G: 0x39, B: 0x46, A: 0xff}
	colorSuccess   = color.RGBA{R: 0x06, G: 0xff, B: 0xa5, A: 0xff}
)

type action uint8

const (
	actionNext action = iota
	actionRestart
)

type button struct {
	x, y, w, h int
	label      string
	action     action
}

func (b button) contains(x, y int) bool {
	return x >= b.x && x <= b.x+b.w && y >= b.y && y <= b.y+b.h
}

// phaseButton returns the overlay button for phases that wait on the player.
func phaseButton(p round.Phase) (button, bool) {
	b := button{
		x: (config.WindowWidth - config.ButtonWidth) / 2,
		y: config.WindowHeight/2 + 40,
		w: config.ButtonWidth,
		h: config.ButtonHeight,
	}
	switch p {
	case round.LevelComplete:
		b.label, b.action = "Next level", actionNext
	case round.GameOver:
		b.label, b.action = "Play again", actionRestart
	default:
		return button{}, false
	}
	return b, true
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	g.drawTargets(screen)
	g.drawEffects(screen)
	g.drawTrail(screen)
	g.drawFinger(screen)
	g.drawHUD(screen)
	g.drawOverlay(screen)
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	screen.Fill(colorBg)
	// Faint bands marking the HUD and bottom margin
	band := withAlpha(colorPrimary, 0.15)
	top := float32(config.LayoutMargin + config.LayoutTopBand - config.TargetRadius)
	vector.DrawFilledRect(screen, 0, 0, config.WindowWidth, top, band, false)
}

func (g *Game) drawTargets(screen *ebiten.Image) {
	for _, t := range g.snap.Targets {
		x, y := float32(t.Pos.X), float32(t.Pos.Y)
		r := float32(config.TargetRadius)
		current := t.Number == g.snap.CurrentTarget

		if current && !t.Completed && g.snap.Phase == round.Playing {
			g.drawCountdownRing(screen, t)
		}

		switch {
		case t.Wrong:
			vector.DrawFilledCircle(screen, x, y, r, colorWrong, true)
			vector.StrokeLine(screen, x-20, y-20, x+20, y+20, 4, colorWhite, true)
			vector.StrokeLine(screen, x-20, y+20, x+20, y-20, 4, colorWhite, true)
		case t.Completed:
			vector.DrawFilledCircle(screen, x, y, r, colorPrimary, true)
		case current:
			clr := colorWhite
			if t.BeingTouched {
				clr = colorSuccess
			}
			vector.StrokeCircle(screen, x, y, r, 5, clr, true)
			drawLabel(screen, fmt.Sprint(t.Number), t.Pos)
		default:
			vector.StrokeCircle(screen, x, y, r, 3, colorSecondary, true)
			drawLabel(screen, fmt.Sprint(t.Number), t.Pos)
		}
	}
}

// drawCountdownRing draws the remaining share of the time limit as an arc
// starting at twelve o'clock.
func (g *Game) drawCountdownRing(screen *ebiten.Image, t round.Target) {
	remaining := clamp01(float64(g.snap.Countdown) / float64(config.TargetTimeLimit))
	if remaining <= 0 {
		return
	}
	clr := colorAccent
	if remaining <= 0.5 {
		clr = colorWrong
	}
	radius := config.TargetRadius + 15
	segs := int(math.Ceil(remaining * config.CountdownRingSegs))
	sweep := remaining * 2 * math.Pi
	start := -math.Pi / 2
	for i := 0; i < segs; i++ {
		a1 := start + sweep*float64(i)/float64(segs)
		a2 := start + sweep*float64(i+1)/float64(segs)
		x1 := t.Pos.X + math.Cos(a1)*radius
		y1 := t.Pos.Y + math.Sin(a1)*radius
		x2 := t.Pos.X + math.Cos(a2)*radius
		y2 := t.Pos.Y + math.Sin(a2)*radius
		vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), 5, clr, true)
	}
}

func (g *Game) drawEffects(screen *ebiten.Image) {
	for i, e := range g.snap.Effects {
		p := e.Position()
		size := config.EffectBaseSize * e.Scale()
		x, y, s := float32(p.X), float32(p.Y), float32(size)

		// Slight hue drift per effect keeps overlapping smileys apart.
		r, gv, b := hsvToRgb(50+float64(i*12+g.frame%12), 0.95, 1)
		vector.DrawFilledCircle(screen, x, y, s, color.RGBA{R: r, G: gv, B: b, A: 0xff}, true)
		vector.StrokeCircle(screen, x, y, s, 2, colorWhite, true)

		if size > 10 {
			eye := s * 0.15
			vector.DrawFilledCircle(screen, x-s*0.3, y-s*0.2, eye, colorBlack, true)
			vector.DrawFilledCircle(screen, x+s*0.3, y-s*0.2, eye, colorBlack, true)
			drawSmile(screen, p.X, p.Y+size*0.2, size*0.4)
		}
	}
}

func drawSmile(screen *ebiten.Image, cx, cy, r float64) {
	const segs = 10
	for i := 0; i < segs; i++ {
		a1 := math.Pi * float64(i) / segs
		a2 := math.Pi * float64(i+1) / segs
		vector.StrokeLine(screen,
			float32(cx+math.Cos(a1)*r), float32(cy+math.Sin(a1)*r),
			float32(cx+math.Cos(a2)*r), float32(cy+math.Sin(a2)*r),
			2, colorBlack, true)
	}
}

func (g *Game) drawTrail(screen *ebiten.Image) {
	if g.trail == nil || !g.sample.Present {
		return
	}
	pts := g.trail.Trail(config.TrailRingSize)
	for i, p := range pts {
		a := float64(i+1) / float64(len(pts)+1)
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(3+5*a), withAlpha(colorAccent, a*0.5), true)
	}
}

func (g *Game) drawFinger(screen *ebiten.Image) {
	if !g.sample.Present {
		return
	}
	x, y := float32(g.sample.Pos.X), float32(g.sample.Pos.Y)
	vector.StrokeCircle(screen, x, y, 20, 3, colorWhite, true)
	vector.DrawFilledCircle(screen, x, y, 15, colorAccent, true)
	vector.StrokeLine(screen, x-10, y, x+10, y, 2, colorWhite, true)
	vector.StrokeLine(screen, x, y-10, x, y+10, 2, colorWhite, true)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	hud := fmt.Sprintf("Score: %d   Level: %d   Time: %s",
		g.snap.Score, g.snap.Level, formatSeconds(g.snap.CountdownSeconds()))
	if g.hasBest {
		hud += fmt.Sprintf("   Best: %d (level %d)", g.best.Score, g.best.Level)
	}
	ebitenutil.DebugPrintAt(screen, hud, config.EffectAnchorX+40, config.EffectAnchorY-4)

	status := "R: restart  Enter: next level  C: clear history  Esc/Q: quit"
	if g.status != nil {
		status = g.status() + " | " + status
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, config.WindowHeight-20)
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	var lines []string
	switch g.snap.Phase {
	case round.AwaitingSensor:
		lines = []string{"Waiting for a hand...", "Raise your index finger in front of the camera to start."}
	case round.WrongTouch:
		lines = []string{"Wrong number!", fmt.Sprintf("Touch %d first. A new layout is coming.", g.snap.CurrentTarget)}
	case round.LevelComplete:
		lines = []string{
			fmt.Sprintf("Level %d complete!", g.snap.Level),
			fmt.Sprintf("Next: level %d with %d targets", g.snap.NextLevel, g.snap.NextTargetCount),
		}
	case round.GameOver:
		lines = []string{
			"Time's up!",
			fmt.Sprintf("Final score %d at level %d", g.snap.FinalScore, g.snap.FinalLevel),
		}
		for _, r := range g.recent {
			lines = append(lines, fmt.Sprintf("  %s  score %d, level %d",
				r.EndedAt.Local().Format("Jan 2 15:04"), r.Score, r.Level))
		}
	default:
		return
	}

	w, h := float32(520), float32(180)
	x, y := float32(config.WindowWidth)/2-w/2, float32(config.WindowHeight)/2-h/2
	vector.DrawFilledRect(screen, x, y, w, h, withAlpha(colorBg, 0.9), false)
	vector.StrokeRect(screen, x, y, w, h, 2, colorSecondary, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(x)+20, int(y)+20+i*20)
	}

	if b, ok := phaseButton(g.snap.Phase); ok {
		g.drawButton(screen, b)
	}
}

func (g *Game) drawButton(screen *ebiten.Image, b button) {
	var bg color.Color
	if g.buttonPressed {
		bg = color.RGBA{R: 0x5a, G: 0x2c, B: 0x85, A: 0xff} // Pressed
	} else if g.buttonHovered {
		bg = color.RGBA{R: 0x7b, G: 0x3d, B: 0xb5, A: 0xff} // Hovered
	} else {
		bg = colorPrimary // Normal
	}

	vector.DrawFilledRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), bg, false)
	vector.StrokeRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), 2, colorAccent, false)

	textWidth := len(b.label) * 6 // debug font glyph width
	ebitenutil.DebugPrintAt(screen, b.label, b.x+(b.w-textWidth)/2, b.y+(b.h-16)/2)
}

// drawLabel centres debug text on p.
func drawLabel(screen *ebiten.Image, s string, p round.Point) {
	ebitenutil.DebugPrintAt(screen, s, int(p.X)-len(s)*3, int(p.Y)-8)
}
