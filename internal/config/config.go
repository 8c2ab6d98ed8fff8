package config

import "time"

const (
	WindowWidth  = 1280
	WindowHeight = 720

	TrailRingSize = 32

	// Button dimensions
	ButtonWidth  = 160
	ButtonHeight = 40

	// Targets
	TargetRadius     = 50.0
	TouchThreshold   = 80.0 // must exceed TargetRadius
	MinTargetGap     = TargetRadius * 3
	MaxTargets       = 8
	LayoutAttempts   = 100
	LayoutMargin     = 80.0
	LayoutTopBand    = 100.0
	LayoutBottomBand = 50.0

	// Timing
	TargetTimeLimit   = 10 * time.Second
	WrongTouchDwell   = 2000 * time.Millisecond
	EffectRate        = 0.05
	EffectAnchorX     = 100.0
	EffectAnchorY     = 60.0
	EffectBaseSize    = 25.0
	CountdownRingSegs = 48
)
