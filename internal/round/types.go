package round

import (
	"math"
	"time"

	"github.com/iburimskiy/touch-targets/internal/config"
)

// Point is a position in render space (pixels).
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Lerp interpolates from p towards q by t in [0,1].
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Sample is one frame's fingertip reading. The zero value is an absent sample.
type Sample struct {
	Pos     Point
	Present bool
}

// At returns a present sample at (x, y).
func At(x, y float64) Sample {
	return Sample{Pos: Point{X: x, Y: y}, Present: true}
}

// Rect is an axis-aligned region, Min inclusive and Max exclusive.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Y >= r.MinY && p.Y < r.MaxY
}

// PlayArea returns the region targets may be placed in for a canvas of the
// given size, leaving room for the HUD at the top and a band at the bottom.
func PlayArea(width, height float64) Rect {
	return Rect{
		MinX: config.LayoutMargin,
		MinY: config.LayoutMargin + config.LayoutTopBand,
		MaxX: width - config.LayoutMargin,
		MaxY: height - config.LayoutMargin - config.LayoutBottomBand,
	}
}

// Target is one numbered circle of the active level.
type Target struct {
	Number       int
	Pos          Point
	Completed    bool
	BeingTouched bool
	Wrong        bool
	// ActivatedAt is zero until the target becomes current.
	ActivatedAt time.Time
}

// Phase is the round state.
type Phase uint8

const (
	AwaitingSensor Phase = iota
	Playing
	LevelComplete
	GameOver
	WrongTouch
)

func (p Phase) String() string {
	switch p {
	case AwaitingSensor:
		return "awaiting_sensor"
	case Playing:
		return "playing"
	case LevelComplete:
		return "level_complete"
	case GameOver:
		return "game_over"
	case WrongTouch:
		return "wrong_touch"
	default:
		return "unknown"
	}
}

// TargetsPerLevel returns min(level+1, limit). Levels below 1 count as 1.
func TargetsPerLevel(level, limit int) int {
	if level < 1 {
		level = 1
	}
	return min(level+1, limit)
}

// Rules are the tunables of a round. DefaultRules mirrors internal/config.
type Rules struct {
	Area           Rect
	TargetRadius   float64
	TouchThreshold float64
	MaxTargets     int
	LayoutAttempts int
	TimeLimit      time.Duration
	WrongDwell     time.Duration
	EffectRate     float64
	Anchor         Point
}

// DefaultRules returns the game's standard rules for the default window.
func DefaultRules() Rules {
	return Rules{
		Area:           PlayArea(config.WindowWidth, config.WindowHeight),
		TargetRadius:   config.TargetRadius,
		TouchThreshold: config.TouchThreshold,
		MaxTargets:     config.MaxTargets,
		LayoutAttempts: config.LayoutAttempts,
		TimeLimit:      config.TargetTimeLimit,
		WrongDwell:     config.WrongTouchDwell,
		EffectRate:     config.EffectRate,
		Anchor:         Point{X: config.EffectAnchorX, Y: config.EffectAnchorY},
	}
}

// MinGap is the minimum centre distance the layout tries to keep.
func (r Rules) MinGap() float64 {
	return r.TargetRadius * 3
}
