package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

const attackSeconds = 0.005

// toneGenerator plays a sequence of sine notes of equal length, each with a
// short attack and a linear release.
type toneGenerator struct {
	sr    beep.SampleRate
	notes []float64
	noteN int
	amp   float64
	pos   int
	phase float64
}

// NewTone returns a finite streamer playing notes (Hz) one after another.
func NewTone(sr beep.SampleRate, noteDur time.Duration, amp float64, notes ...float64) beep.Streamer {
	noteN := max(sr.N(noteDur), 1)
	g := &toneGenerator{sr: sr, notes: notes, noteN: noteN, amp: amp}
	return beep.Take(noteN*len(notes), g)
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if len(g.notes) == 0 {
		return 0, false
	}
	attack := float64(g.sr) * attackSeconds
	for i := range samples {
		idx := min(g.pos/g.noteN, len(g.notes)-1)
		local := float64(g.pos % g.noteN)

		env := math.Min(local/attack, 1) * (1 - local/float64(g.noteN))
		g.phase += 2 * math.Pi * g.notes[idx] / float64(g.sr)
		s := g.amp * env * math.Sin(g.phase)

		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error { return nil }

// BuzzGenerator generates a low harsh buzz for mistakes.
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)

		// 20ms fade in
		envelope := math.Min(t/0.02, 1.0)
		sample *= envelope * 0.5

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error { return nil }

// sweepGenerator glides exponentially from one frequency to another while
// fading out.
type sweepGenerator struct {
	sr       beep.SampleRate
	from, to float64
	total    int
	amp      float64
	pos      int
	phase    float64
}

// NewSweep returns a finite falling (or rising) glide.
func NewSweep(sr beep.SampleRate, d time.Duration, from, to, amp float64) beep.Streamer {
	total := max(sr.N(d), 1)
	g := &sweepGenerator{sr: sr, from: from, to: to, total: total, amp: amp}
	return beep.Take(total, g)
}

func (g *sweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		p := math.Min(float64(g.pos)/float64(g.total), 1)
		freq := g.from * math.Pow(g.to/g.from, p)
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		s := g.amp * (1 - p) * math.Sin(g.phase)

		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *sweepGenerator) Err() error { return nil }
