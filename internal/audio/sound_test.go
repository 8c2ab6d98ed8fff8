package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/faiface/beep"
)

// captureOutput records the streamer handed to the output instead of
// opening an audio device.
type captureOutput struct {
	sr     beep.SampleRate
	stream beep.Streamer
}

func (c *captureOutput) start(sr beep.SampleRate, s beep.Streamer) error {
	c.sr, c.stream = sr, s
	return nil
}

func drain(s beep.Streamer) (samples int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		samples += n
		if !ok || n == 0 {
			return samples, peak
		}
		if samples > int(SampleRate)*10 {
			return samples, peak
		}
	}
}

func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(false)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("sound operations panicked without initialization: %v", r)
		}
	}()

	sm.Play(CueCorrect)
	sm.Play(CueWrong)
	if sm.Active() != 0 {
		t.Fatalf("cues queued before initialization: %d", sm.Active())
	}
	sm.Cleanup()
}

func TestSoundManagerPlaysCues(t *testing.T) {
	sm := NewSoundManager(false)
	out := &captureOutput{}
	if err := sm.Initialize(out.start); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if out.sr != SampleRate || out.stream == nil {
		t.Fatalf("output not started: %+v", out)
	}

	sm.Play(CueCorrect)
	sm.Play(CueGameOver)
	if sm.Active() != 2 {
		t.Fatalf("active cues = %d, want 2", sm.Active())
	}

	buf := make([][2]float64, SampleRate.N(time.Second))
	n, ok := out.stream.Stream(buf)
	if !ok || n != len(buf) {
		t.Fatalf("stream returned %d, %v", n, ok)
	}
	var peak float64
	for _, s := range buf {
		peak = math.Max(peak, math.Abs(s[0]))
	}
	if peak == 0 {
		t.Fatal("mixed stream is silent")
	}
	if sm.Active() != 0 {
		t.Fatalf("cues still active after one second: %d", sm.Active())
	}
}

func TestSoundManagerDoubleInitialization(t *testing.T) {
	sm := NewSoundManager(false)
	calls := 0
	out := func(beep.SampleRate, beep.Streamer) error {
		calls++
		return nil
	}
	if err := sm.Initialize(out); err != nil {
		t.Fatalf("first initialize: %v", err)
	}
	if err := sm.Initialize(out); err != nil {
		t.Fatalf("second initialize: %v", err)
	}
	if calls != 1 {
		t.Fatalf("output started %d times, want 1", calls)
	}
}

func TestSoundManagerInitializationError(t *testing.T) {
	sm := NewSoundManager(false)
	wantErr := errors.New("no device")
	err := sm.Initialize(func(beep.SampleRate, beep.Streamer) error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("initialize error = %v, want %v", err, wantErr)
	}
	sm.Play(CueCorrect)
	if sm.Active() != 0 {
		t.Fatal("cue queued after failed initialization")
	}
	if err := sm.Initialize(nil); err == nil {
		t.Fatal("expected error for nil output")
	}
}

func TestSoundManagerMuted(t *testing.T) {
	sm := NewSoundManager(true)
	called := false
	if err := sm.Initialize(func(beep.SampleRate, beep.Streamer) error {
		called = true
		return nil
	}); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if called {
		t.Fatal("muted manager opened the output")
	}
	sm.Play(CueLevelComplete)
	if sm.Active() != 0 {
		t.Fatal("muted manager queued a cue")
	}
}

func TestSoundManagerCleanup(t *testing.T) {
	sm := NewSoundManager(false)
	out := &captureOutput{}
	if err := sm.Initialize(out.start); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	sm.Play(CueWrong)
	sm.Cleanup()
	if sm.Active() != 0 {
		t.Fatalf("active after cleanup = %d", sm.Active())
	}
	sm.Play(CueWrong)
	if sm.Active() != 0 {
		t.Fatal("cue queued after cleanup")
	}
}

func TestCueDurations(t *testing.T) {
	cases := []struct {
		cue  Cue
		want time.Duration
	}{
		{CueCorrect, 140 * time.Millisecond},
		{CueLevelComplete, 440 * time.Millisecond},
		{CueWrong, 300 * time.Millisecond},
		{CueGameOver, 700 * time.Millisecond},
	}
	for _, tc := range cases {
		n, peak := drain(cueStreamer(tc.cue))
		want := SampleRate.N(tc.want)
		if diff := n - want; diff < -4 || diff > 4 {
			t.Errorf("cue %d: %d samples, want about %d", tc.cue, n, want)
		}
		if peak == 0 || peak > 1 {
			t.Errorf("cue %d: peak amplitude %v out of range", tc.cue, peak)
		}
	}
	if cueStreamer(Cue(99)) != nil {
		t.Error("unknown cue should have no streamer")
	}
}
