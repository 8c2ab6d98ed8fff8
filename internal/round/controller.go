package round

import (
	"math"
	"math/rand/v2"
	"time"
)

// Options configure a Controller. Zero fields fall back to DefaultRules,
// time.Now and a randomly seeded generator.
type Options struct {
	Rules   *Rules
	Clock   func() time.Time
	Rand    *rand.Rand
	OnEvent func(Event)
}

// Controller owns one game: phase, score, level, the targets of the active
// level and the live effects. It is not safe for concurrent use; call every
// method from the frame loop.
type Controller struct {
	rules   Rules
	now     func() time.Time
	rng     *rand.Rand
	onEvent func(Event)

	phase    Phase
	score    int
	level    int
	current  int
	perLevel int
	targets  []Target
	effects  EffectPool

	activatedAt time.Time
	countdown   time.Duration
	wrongAt     time.Time

	// touchedLastFrame is shared by all targets: a touch only fires after a
	// frame in which no target was touched.
	touchedLastFrame bool

	finalScore int
	finalLevel int
}

func New(opts Options) *Controller {
	c := &Controller{
		rules:   DefaultRules(),
		now:     opts.Clock,
		rng:     opts.Rand,
		onEvent: opts.OnEvent,
		phase:   AwaitingSensor,
		level:   1,
		current: 1,
	}
	if opts.Rules != nil {
		c.rules = *opts.Rules
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	c.perLevel = TargetsPerLevel(c.level, c.rules.MaxTargets)
	c.countdown = c.rules.TimeLimit
	return c
}

// Update runs one frame with the latest fingertip sample.
func (c *Controller) Update(s Sample) {
	now := c.now()
	c.effects.Advance()

	switch c.phase {
	case AwaitingSensor:
		if s.Present {
			c.startLevel(now)
			c.setPhase(Playing, now, 0)
		}
	case Playing:
		c.play(s, now)
	case WrongTouch:
		if now.Sub(c.wrongAt) >= c.rules.WrongDwell {
			c.startLevel(now)
			c.setPhase(Playing, now, 0)
		}
	}
}

func (c *Controller) play(s Sample, now time.Time) {
	if s.Present {
		hit := ResolveTouch(c.targets, s.Pos, c.rules.TouchThreshold)
		switch {
		case hit != 0 && !c.touchedLastFrame:
			c.touchedLastFrame = true
			if hit != c.current {
				c.wrongTouch(hit, now)
				return
			}
			c.complete(hit, s.Pos, now)
		case hit == 0:
			c.touchedLastFrame = false
		}
	} else {
		ClearTouch(c.targets)
		c.touchedLastFrame = false
	}

	if c.current > c.perLevel {
		if c.effects.Len() == 0 {
			c.setPhase(LevelComplete, now, 0)
		}
		return
	}

	c.countdown = max(0, c.rules.TimeLimit-now.Sub(c.activatedAt))
	if c.countdown <= 0 {
		c.finalScore, c.finalLevel = c.score, c.level
		c.setPhase(GameOver, now, c.current)
	}
}

func (c *Controller) complete(number int, at Point, now time.Time) {
	t := &c.targets[number-1]
	t.Completed = true
	t.BeingTouched = false
	c.effects.Spawn(NewEffect(at, c.rules.Anchor, c.rules.EffectRate))
	c.score++
	c.current++
	if c.current <= c.perLevel {
		c.targets[c.current-1].ActivatedAt = now
		c.activatedAt = now
	}
	c.emit(Event{Kind: EventTargetCompleted, At: now, Target: number})
}

func (c *Controller) wrongTouch(number int, now time.Time) {
	c.targets[number-1].Wrong = true
	c.wrongAt = now
	c.setPhase(WrongTouch, now, number)
}

// Reset starts a new game at level 1 from any phase.
func (c *Controller) Reset() {
	now := c.now()
	c.score = 0
	c.level = 1
	c.finalScore, c.finalLevel = 0, 0
	c.effects.Clear()
	c.startLevel(now)
	c.setPhase(Playing, now, 0)
}

// AdvanceLevel moves to the next level. It does nothing unless the current
// level is complete.
func (c *Controller) AdvanceLevel() {
	if c.phase != LevelComplete {
		return
	}
	now := c.now()
	c.level++
	c.effects.Clear()
	c.startLevel(now)
	c.setPhase(Playing, now, 0)
}

// startLevel lays out fresh targets for the current level and restarts the
// countdown at target #1.
func (c *Controller) startLevel(now time.Time) {
	c.perLevel = TargetsPerLevel(c.level, c.rules.MaxTargets)
	positions := GenerateLayout(c.perLevel, c.rules.Area, c.rules.MinGap(), c.rng, c.rules.LayoutAttempts)
	c.targets = NewTargets(positions, now)
	c.current = 1
	c.activatedAt = now
	c.countdown = c.rules.TimeLimit
	c.wrongAt = time.Time{}
	c.emit(Event{Kind: EventLevelStarted, At: now})
}

func (c *Controller) setPhase(p Phase, now time.Time, target int) {
	if p == c.phase {
		return
	}
	from := c.phase
	c.phase = p
	c.emit(Event{Kind: EventPhaseChanged, At: now, From: from, To: p, Target: target})
}

func (c *Controller) emit(e Event) {
	if c.onEvent == nil {
		return
	}
	e.Score, e.Level = c.score, c.level
	c.onEvent(e)
}

func (c *Controller) Phase() Phase { return c.phase }
func (c *Controller) Score() int   { return c.score }
func (c *Controller) Level() int   { return c.level }

// Snapshot is the read-only view the presentation layer draws from.
type Snapshot struct {
	Phase           Phase
	Score           int
	Level           int
	CurrentTarget   int
	TargetsPerLevel int
	Countdown       time.Duration
	Targets         []Target
	Effects         []Effect

	// Shown on the level-complete screen.
	NextLevel       int
	NextTargetCount int

	// Frozen when the countdown ran out.
	FinalScore int
	FinalLevel int
}

// CountdownSeconds rounds the remaining time up to whole seconds.
func (s Snapshot) CountdownSeconds() int {
	return int(math.Ceil(s.Countdown.Seconds()))
}

// Current returns the current target, if any.
func (s Snapshot) Current() (Target, bool) {
	if s.CurrentTarget < 1 || s.CurrentTarget > len(s.Targets) {
		return Target{}, false
	}
	return s.Targets[s.CurrentTarget-1], true
}

func (c *Controller) Snapshot() Snapshot {
	var targets []Target
	if len(c.targets) > 0 {
		targets = make([]Target, len(c.targets))
		copy(targets, c.targets)
	}
	return Snapshot{
		Phase:           c.phase,
		Score:           c.score,
		Level:           c.level,
		CurrentTarget:   c.current,
		TargetsPerLevel: c.perLevel,
		Countdown:       c.countdown,
		Targets:         targets,
		Effects:         c.effects.Effects(),
		NextLevel:       c.level + 1,
		NextTargetCount: TargetsPerLevel(c.level+1, c.rules.MaxTargets),
		FinalScore:      c.finalScore,
		FinalLevel:      c.finalLevel,
	}
}
