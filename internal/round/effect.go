package round

// Effect is the celebration that flies from a touched target to the score
// anchor. Renderers interpolate with Position and Scale.
type Effect struct {
	From, To Point
	Progress float64
	Rate     float64
}

// NewEffect starts an effect at progress 0.
func NewEffect(from, to Point, rate float64) Effect {
	return Effect{From: from, To: to, Rate: rate}
}

// Advance steps the effect and reports whether it has finished.
func (e *Effect) Advance() bool {
	e.Progress += e.Rate
	if e.Progress >= 1 {
		e.Progress = 1
		return true
	}
	return false
}

func (e Effect) Position() Point {
	return e.From.Lerp(e.To, e.Progress)
}

// Scale shrinks from 1.5 at the start to 1.0 on arrival.
func (e Effect) Scale() float64 {
	return 1.5 - e.Progress*0.5
}

// EffectPool owns the live effects.
type EffectPool struct {
	live []Effect
}

func (p *EffectPool) Spawn(e Effect) {
	p.live = append(p.live, e)
}

// Advance steps every effect once and drops the finished ones.
func (p *EffectPool) Advance() {
	kept := p.live[:0]
	for i := range p.live {
		e := p.live[i]
		if !e.Advance() {
			kept = append(kept, e)
		}
	}
	clear(p.live[len(kept):])
	p.live = kept
}

func (p *EffectPool) Len() int { return len(p.live) }

func (p *EffectPool) Clear() { p.live = nil }

// Effects returns a copy of the live effects.
func (p *EffectPool) Effects() []Effect {
	if len(p.live) == 0 {
		return nil
	}
	out := make([]Effect, len(p.live))
	copy(out, p.live)
	return out
}
