package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/faiface/beep"
)

const (
	SampleRate = beep.SampleRate(44100)

	// Speaker buffer length.
	BufferDuration = 50 * time.Millisecond
)

// Cue names a game sound.
type Cue uint8

const (
	CueCorrect Cue = iota
	CueWrong
	CueGameOver
	CueLevelComplete
)

// Output starts continuous playback of s, typically speaker.Init followed by
// speaker.Play.
type Output func(sr beep.SampleRate, s beep.Streamer) error

// SoundManager mixes short cue sounds into a single stream. Every method is
// safe to call before Initialize, after Cleanup, or when muted.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	muted       bool
	initialized bool
}

func NewSoundManager(muted bool) *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		muted: muted,
	}
}

// Initialize hands the mixed stream to out. A second call is a no-op.
func (sm *SoundManager) Initialize(out Output) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || sm.muted {
		return nil
	}
	if out == nil {
		return errors.New("audio: nil output")
	}
	if err := out(SampleRate, lockedStreamer{sm}); err != nil {
		return err
	}
	sm.initialized = true
	return nil
}

// Play queues a cue on the mixer.
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	if s := cueStreamer(c); s != nil {
		sm.mixer.Add(s)
	}
}

// Active returns the number of cues still playing.
func (sm *SoundManager) Active() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.mixer.Len()
}

// Cleanup silences all cues. The output keeps streaming silence.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.mixer.Clear()
	sm.initialized = false
}

// lockedStreamer lets the output goroutine drain the mixer while the game
// loop adds cues.
type lockedStreamer struct {
	sm *SoundManager
}

func (l lockedStreamer) Stream(samples [][2]float64) (int, bool) {
	l.sm.mu.Lock()
	defer l.sm.mu.Unlock()
	return l.sm.mixer.Stream(samples)
}

func (l lockedStreamer) Err() error { return nil }

func cueStreamer(c Cue) beep.Streamer {
	switch c {
	case CueCorrect:
		return NewTone(SampleRate, 70*time.Millisecond, 0.25, 880, 1320)
	case CueLevelComplete:
		return NewTone(SampleRate, 110*time.Millisecond, 0.25, 523.25, 659.25, 783.99, 1046.5)
	case CueWrong:
		return beep.Take(SampleRate.N(300*time.Millisecond), NewBuzzGenerator(SampleRate, 120))
	case CueGameOver:
		return NewSweep(SampleRate, 700*time.Millisecond, 440, 110, 0.3)
	default:
		return nil
	}
}
