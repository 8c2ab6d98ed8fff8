package round

import (
	"math"
	"math/rand/v2"
	"time"
)

// GenerateLayout places count points inside area by rejection sampling so
// that every pair is at least minDist apart. Each point gets up to attempts
// draws; when none satisfies the gap the draw with the largest clearance is
// kept, so dense layouts degrade instead of stalling. Points are whole
// pixels and their order is the touch order.
func GenerateLayout(count int, area Rect, minDist float64, rng *rand.Rand, attempts int) []Point {
	if count <= 0 {
		return nil
	}
	if attempts < 1 {
		attempts = 1
	}

	out := make([]Point, 0, count)
	for len(out) < count {
		var best Point
		bestClear := -1.0
		for a := 0; a < attempts; a++ {
			c := randomPoint(area, rng)
			gap := clearance(c, out)
			if gap >= minDist {
				best = c
				break
			}
			if gap > bestClear {
				best, bestClear = c, gap
			}
		}
		out = append(out, best)
	}
	return out
}

func randomPoint(area Rect, rng *rand.Rand) Point {
	return Point{
		X: math.Floor(area.MinX + rng.Float64()*math.Max(area.Width(), 0)),
		Y: math.Floor(area.MinY + rng.Float64()*math.Max(area.Height(), 0)),
	}
}

// clearance is the distance from p to the nearest placed point.
func clearance(p Point, placed []Point) float64 {
	d := math.Inf(1)
	for _, q := range placed {
		d = math.Min(d, p.Dist(q))
	}
	return d
}

// NewTargets numbers positions 1..n in order. Only target #1 is activated.
func NewTargets(positions []Point, now time.Time) []Target {
	targets := make([]Target, len(positions))
	for i, p := range positions {
		targets[i] = Target{Number: i + 1, Pos: p}
	}
	if len(targets) > 0 {
		targets[0].ActivatedAt = now
	}
	return targets
}
