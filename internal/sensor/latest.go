package sensor

import (
	"math"
	"sync"
	"time"

	"github.com/iburimskiy/touch-targets/internal/round"
)

// Source supplies the fingertip sample to use for the current frame.
type Source interface {
	Latest() round.Sample
}

// Latest keeps the most recent fingertip sample plus a ring of recent
// positions the renderer draws as a trail. Writers are the transport
// goroutines; the frame loop only reads.
type Latest struct {
	mu     sync.RWMutex
	sample round.Sample
	at     time.Time
	ttl    time.Duration
	now    func() time.Time

	trail     []round.Point
	nextIndex int
	filled    int
}

// NewLatest returns a holder whose samples expire after ttl (0 keeps them
// until replaced) and whose trail holds up to ringSize positions.
func NewLatest(ringSize int, ttl time.Duration) *Latest {
	if ringSize < 1 {
		ringSize = 1
	}
	return &Latest{
		ttl:   ttl,
		now:   time.Now,
		trail: make([]round.Point, ringSize),
	}
}

// Store replaces the current sample. Absent samples leave the trail alone.
func (l *Latest) Store(s round.Sample) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sample = s
	l.at = l.now()
	if !s.Present {
		return
	}
	l.trail[l.nextIndex] = s.Pos
	l.nextIndex++
	if l.nextIndex >= len(l.trail) {
		l.nextIndex = 0
	}
	if l.filled < len(l.trail) {
		l.filled++
	}
}

// Latest returns the current sample, or an absent one once it is older
// than the ttl.
func (l *Latest) Latest() round.Sample {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if !l.sample.Present {
		return round.Sample{}
	}
	if l.ttl > 0 && l.now().Sub(l.at) > l.ttl {
		return round.Sample{}
	}
	return l.sample
}

// Trail returns up to the last n stored positions, oldest first.
func (l *Latest) Trail(n int) []round.Point {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n > l.filled {
		n = l.filled
	}
	if n <= 0 {
		return nil
	}
	out := make([]round.Point, n)
	// Walk backwards from nextIndex - 1
	idx := l.nextIndex - 1
	for i := n - 1; i >= 0; i-- {
		if idx < 0 {
			idx = len(l.trail) - 1
		}
		out[i] = l.trail[idx]
		idx--
	}
	return out
}

// Project maps a tip in camera coordinates onto a width x height canvas,
// mirrored horizontally so the player sees a selfie view.
func Project(t Tip, width, height float64) round.Sample {
	if !t.Detected || math.IsNaN(t.X) || math.IsNaN(t.Y) {
		return round.Sample{}
	}
	return round.At((1-clamp01(t.X))*width, clamp01(t.Y)*height)
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
