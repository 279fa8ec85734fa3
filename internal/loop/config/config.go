// Package config centralizes the frame driver and session parameters.
package config

import "time"

// Render limits: larger terminals get a centered, bordered area of this size.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
	MinTermWidth  = 40 // Below this the client shows a resize hint
	MinTermHeight = 16
)

// Controls
const (
	BoatNudge = 20.0 // Logical pixels per arrow/A/D press
)

// HUD
const (
	FlashDuration = 1500 * time.Millisecond // How long catch/break messages stay up
	BlinkPeriod   = 600 * time.Millisecond  // Prompt blink half-period
	TopScores     = 5                       // Leaderboard entries shown
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxFrameDelta         = 100 * time.Millisecond // Longer stalls are clamped
)
