package round

import (
	"math"
	"testing"
)

func TestEffectAdvanceCompletes(t *testing.T) {
	e := NewEffect(Point{X: 500, Y: 400}, Point{X: 100, Y: 60}, 0.05)
	if e.Position() != e.From {
		t.Fatalf("start position = %+v, want %+v", e.Position(), e.From)
	}
	if e.Scale() != 1.5 {
		t.Fatalf("start scale = %v, want 1.5", e.Scale())
	}

	steps := 0
	for !e.Advance() {
		steps++
		if steps > 100 {
			t.Fatal("effect never finished")
		}
	}
	steps++
	if steps < 19 || steps > 21 {
		t.Fatalf("finished after %d steps, want about 20", steps)
	}
	if e.Progress != 1 {
		t.Fatalf("progress = %v, want 1", e.Progress)
	}
	if p := e.Position(); math.Abs(p.X-100) > 1e-9 || math.Abs(p.Y-60) > 1e-9 {
		t.Fatalf("end position = %+v, want destination", p)
	}
	if e.Scale() != 1 {
		t.Fatalf("end scale = %v, want 1", e.Scale())
	}
}

func TestEffectPoolDropsFinished(t *testing.T) {
	var pool EffectPool
	pool.Spawn(NewEffect(Point{}, Point{X: 1}, 0.5))
	pool.Spawn(NewEffect(Point{}, Point{X: 1}, 0.25))

	pool.Advance()
	if pool.Len() != 2 {
		t.Fatalf("after 1 advance len = %d, want 2", pool.Len())
	}
	pool.Advance()
	if pool.Len() != 1 {
		t.Fatalf("after 2 advances len = %d, want 1", pool.Len())
	}
	if got := pool.Effects()[0].Progress; got != 0.5 {
		t.Fatalf("remaining progress = %v, want 0.5", got)
	}

	pool.Clear()
	if pool.Len() != 0 || pool.Effects() != nil {
		t.Fatal("Clear left effects behind")
	}
}

func TestEffectPoolSnapshotIsCopy(t *testing.T) {
	var pool EffectPool
	pool.Spawn(NewEffect(Point{}, Point{X: 1}, 0.1))
	snap := pool.Effects()
	snap[0].Progress = 0.9
	if pool.Effects()[0].Progress != 0 {
		t.Fatal("mutating snapshot changed the pool")
	}
}
