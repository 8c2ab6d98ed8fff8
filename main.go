package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/touch-targets/internal/audio"
	"github.com/iburimskiy/touch-targets/internal/config"
	"github.com/iburimskiy/touch-targets/internal/game"
	"github.com/iburimskiy/touch-targets/internal/scores"
	"github.com/iburimskiy/touch-targets/internal/sensor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	cfg.LogSummary()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	latest := sensor.NewLatest(config.TrailRingSize, cfg.SampleTTL)
	opts := game.Options{Trail: latest, Seed: cfg.Seed}

	switch cfg.SensorMode {
	case config.SensorMouse:
		opts.Source = game.NewMouseSource(latest)
		opts.Status = func() string { return "Sensor: mouse" }
	default:
		srv := sensor.NewServer(cfg.SensorAddr, config.WindowWidth, config.WindowHeight, latest)
		errc := make(chan error, 1)
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Printf("sensor: %v", err)
				errc <- err
			}
		}()
		opts.Source = latest
		opts.SensorErr = errc
		opts.Status = func() string {
			return fmt.Sprintf("Sensor: ws://%s/ws (%d connected)", cfg.SensorAddr, srv.Clients())
		}
	}

	sounds := audio.NewSoundManager(cfg.Muted)
	if err := sounds.Initialize(speakerOutput); err != nil {
		log.Printf("audio: %v (continuing without sound)", err)
	}
	defer sounds.Cleanup()
	opts.Sounds = sounds

	if cfg.ScoresPath != "" {
		store, err := scores.Open(cfg.ScoresPath)
		if err != nil {
			log.Printf("scores: %v (run history disabled)", err)
		} else {
			defer store.Close()
			opts.Store = store
		}
	}

	g := game.New(opts)

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(cfg.Title)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Printf("game: %v", err)
	}
	stop()
}

func speakerOutput(sr beep.SampleRate, s beep.Streamer) error {
	if err := speaker.Init(sr, sr.N(audio.BufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(s)
	return nil
}

// fatal reports a startup error in a native dialog and exits.
func fatal(err error) {
	log.Printf("startup: %v", err)
	_ = zenity.Error(err.Error(), zenity.Title("Touch Targets"), zenity.ErrorIcon)
	os.Exit(1)
}
