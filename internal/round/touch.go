package round

// ResolveTouch returns the number of the first incomplete target, in storage
// order, whose centre lies strictly within threshold of tip, or 0 when none
// does. BeingTouched is set on that target and cleared on every other one.
func ResolveTouch(targets []Target, tip Point, threshold float64) int {
	hit := 0
	for i := range targets {
		t := &targets[i]
		t.BeingTouched = false
		if hit != 0 || t.Completed {
			continue
		}
		if tip.Dist(t.Pos) < threshold {
			t.BeingTouched = true
			hit = t.Number
		}
	}
	return hit
}

// ClearTouch drops the highlight from every target.
func ClearTouch(targets []Target) {
	for i := range targets {
		targets[i].BeingTouched = false
	}
}
