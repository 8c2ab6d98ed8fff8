package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/touch-targets/internal/audio"
	"github.com/iburimskiy/touch-targets/internal/config"
	"github.com/iburimskiy/touch-targets/internal/round"
	"github.com/iburimskiy/touch-targets/internal/scores"
	"github.com/iburimskiy/touch-targets/internal/sensor"
)

const (
	storeTimeout = 2 * time.Second
	recentRuns   = 3
)

// Trail supplies recent fingertip positions for drawing.
type Trail interface {
	Trail(n int) []round.Point
}

type Options struct {
	Source sensor.Source
	Trail  Trail
	Sounds *audio.SoundManager
	Store  *scores.Store
	// Seed fixes target layouts; 0 picks a random seed.
	Seed uint64
	// Status describes the sensor link for the HUD.
	Status func() string
	// SensorErr reports a failed sensor transport.
	SensorErr <-chan error
}

// Game adapts a round.Controller to ebiten: it reads input, feeds the
// latest fingertip sample every frame and draws the snapshot.
type Game struct {
	ctrl      *round.Controller
	source    sensor.Source
	trail     Trail
	sounds    *audio.SoundManager
	store     *scores.Store
	status    func() string
	sensorErr <-chan error

	// frame-local view
	snap   round.Snapshot
	sample round.Sample
	frame  int

	best    scores.Run
	hasBest bool
	recent  []scores.Run

	// input edge detection
	prevKey map[ebiten.Key]bool

	// button state
	buttonHovered bool
	buttonPressed bool

	lastErr error
}

func New(opts Options) *Game {
	g := &Game{
		source:    opts.Source,
		trail:     opts.Trail,
		sounds:    opts.Sounds,
		store:     opts.Store,
		status:    opts.Status,
		sensorErr: opts.SensorErr,
		prevKey:   map[ebiten.Key]bool{},
	}
	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	}
	g.ctrl = round.New(round.Options{Rand: rng, OnEvent: g.onEvent})
	g.snap = g.ctrl.Snapshot()
	g.loadBest()
	return g
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	select {
	case err := <-g.sensorErr:
		if err != nil {
			g.lastErr = fmt.Errorf("sensor: %w", err)
		}
	default:
	}

	// Phase buttons
	btn, hasButton := phaseButton(g.snap.Phase)
	mouseX, mouseY := ebiten.CursorPosition()
	g.buttonHovered = hasButton && btn.contains(mouseX, mouseY)
	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			g.press(btn.action)
		}
		g.buttonPressed = false
	}

	if justPressed(ebiten.KeyR) {
		g.ctrl.Reset()
	}
	if justPressed(ebiten.KeyEnter) || justPressed(ebiten.KeySpace) || justPressed(ebiten.KeyN) {
		g.ctrl.AdvanceLevel()
	}
	if justPressed(ebiten.KeyC) {
		if err := g.confirmClearHistory(); err != nil {
			g.lastErr = err
		}
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.sample = g.source.Latest()
	g.ctrl.Update(g.sample)
	g.snap = g.ctrl.Snapshot()
	g.frame++
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

func (g *Game) press(a action) {
	switch a {
	case actionNext:
		g.ctrl.AdvanceLevel()
	case actionRestart:
		g.ctrl.Reset()
	}
}

func (g *Game) onEvent(e round.Event) {
	switch e.Kind {
	case round.EventTargetCompleted:
		g.play(audio.CueCorrect)
	case round.EventLevelStarted:
		log.Printf("round: level %d started (score %d)", e.Level, e.Score)
	case round.EventPhaseChanged:
		log.Printf("round: %s -> %s (score %d, level %d)", e.From, e.To, e.Score, e.Level)
		switch e.To {
		case round.WrongTouch:
			g.play(audio.CueWrong)
		case round.LevelComplete:
			g.play(audio.CueLevelComplete)
		case round.GameOver:
			g.play(audio.CueGameOver)
			g.recordRun(e)
		}
	}
}

func (g *Game) play(c audio.Cue) {
	if g.sounds != nil {
		g.sounds.Play(c)
	}
}

func (g *Game) recordRun(e round.Event) {
	if g.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	run, err := g.store.Record(ctx, scores.Run{Score: e.Score, Level: e.Level, EndedAt: e.At})
	if err != nil {
		log.Printf("scores: %v", err)
		g.lastErr = err
		return
	}
	log.Printf("scores: recorded run %s (score %d, level %d)", run.ID, run.Score, run.Level)
	g.loadBest()
}

func (g *Game) loadBest() {
	if g.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	best, err := g.store.Best(ctx)
	switch {
	case errors.Is(err, scores.ErrNoRuns):
		g.hasBest = false
	case err != nil:
		log.Printf("scores: load best: %v", err)
	default:
		g.best, g.hasBest = best, true
	}

	recent, err := g.store.Recent(ctx, recentRuns)
	if err != nil {
		log.Printf("scores: load recent: %v", err)
		return
	}
	g.recent = recent
}

func (g *Game) confirmClearHistory() error {
	if g.store == nil {
		return nil
	}
	err := zenity.Question("Delete every recorded run and the best score?",
		zenity.Title("Clear history"),
		zenity.QuestionIcon,
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := g.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	log.Println("scores: history cleared")
	g.best, g.hasBest, g.recent = scores.Run{}, false, nil
	return nil
}
